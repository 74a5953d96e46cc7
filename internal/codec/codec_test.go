package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/swimproto/internal/recon"
	"github.com/danmuck/swimproto/internal/testutil/testlog"
	"github.com/fxamacker/cbor/v2"
)

var samples = []string{
	`@event(node:"house#kitchen",lane:"light/on")`,
	"@link(node:node_uri,lane:lane_uri,prio:0.5){a:1,foo}",
	"@get(node:node_uri)",
	"@auth{a:1,foo}",
	"@deauthed",
	"{a,b:true,c:-2.25,d:}",
	`{x:@tag{1},"with space"}`,
	"@a({})",
}

func TestCodecsRoundTrip(t *testing.T) {
	testlog.Start(t)
	for _, name := range Names() {
		c, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if c.Name() != name {
			t.Fatalf("codec name=%s want %s", c.Name(), name)
		}
		for _, src := range samples {
			t.Run(name+"/"+src, func(t *testing.T) {
				v := recon.MustParse(src)
				data, err := c.Marshal(v)
				if err != nil {
					t.Fatalf("marshal: %v", err)
				}
				got, err := c.Unmarshal(data)
				if err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if !recon.Equal(got, v) {
					t.Fatalf("got %s want %s", recon.Stringify(got), recon.Stringify(v))
				}
			})
		}
	}
}

func TestReconCodecIsCanonicalText(t *testing.T) {
	testlog.Start(t)
	data, err := Recon().Marshal(recon.MustParse("@get( node : node_uri )"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "@get(node:node_uri)" {
		t.Fatalf("unexpected text %q", data)
	}
}

func TestCBORIsDeterministic(t *testing.T) {
	testlog.Start(t)
	marshal := func(src string) []byte {
		t.Helper()
		data, err := CBOR().Marshal(recon.MustParse(src))
		if err != nil {
			t.Fatalf("marshal %s: %v", src, err)
		}
		return data
	}
	a := marshal("@link(node:n,lane:l,prio:2){a:1}")
	b := marshal("@link( node: n, lane: l, prio: 2.0 ) { a: 1 }")
	if !bytes.Equal(a, b) {
		t.Fatalf("equal values must encode identically")
	}
	if c := marshal("@link(n,l,2){a:1}"); bytes.Equal(a, c) {
		t.Fatalf("distinct values must not encode identically")
	}
}

func TestCBORExtantAndAbsent(t *testing.T) {
	testlog.Start(t)
	for _, v := range []recon.Value{recon.Extant{}, recon.Absent{}, recon.NewRecord(recon.Slot{Key: recon.Text("k"), Value: recon.Absent{}})} {
		data, err := CBOR().Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		got, err := CBOR().Unmarshal(data)
		if err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !recon.Equal(got, v) {
			t.Fatalf("got %#v want %#v", got, v)
		}
	}
}

func TestCBORRejectsMalformedValues(t *testing.T) {
	testlog.Start(t)
	cases := map[string]any{
		"bare attr tag":  cbor.Tag{Number: TagAttr, Content: []any{"a", nil}},
		"unknown tag":    []any{cbor.Tag{Number: 99, Content: []any{"a", nil}}},
		"attr not pair":  []any{cbor.Tag{Number: TagAttr, Content: "a"}},
		"attr name type": []any{cbor.Tag{Number: TagAttr, Content: []any{1, nil}}},
		"map":            map[string]int{"a": 1},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := cbor.Marshal(raw)
			if err != nil {
				t.Fatalf("fixture: %v", err)
			}
			_, err = CBOR().Unmarshal(data)
			if !errors.Is(err, ErrMalformedCBOR) {
				t.Fatalf("expected ErrMalformedCBOR, got %v", err)
			}
		})
	}
	if _, err := CBOR().Unmarshal([]byte{0xff}); err == nil {
		t.Fatalf("expected decode error for invalid cbor")
	}
}

func TestLookup(t *testing.T) {
	testlog.Start(t)
	c, err := Lookup(" CBOR ")
	if err != nil || c.Name() != NameCBOR {
		t.Fatalf("lookup cbor: %v %v", c, err)
	}
	if _, err := Lookup("json"); !errors.Is(err, ErrUnknownCodec) {
		t.Fatalf("expected ErrUnknownCodec, got %v", err)
	}
}

func TestDiagnose(t *testing.T) {
	testlog.Start(t)
	data, err := CBOR().Marshal(recon.MustParse("{a:1}"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	diag, err := Diagnose(data)
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if diag == "" {
		t.Fatalf("empty diagnostic")
	}
}

func nestedRecords(depth int) recon.Value {
	var v recon.Value = recon.Text("x")
	for i := 0; i < depth; i++ {
		v = recon.NewRecord(v)
	}
	return v
}

func TestCBORNestingLimit(t *testing.T) {
	testlog.Start(t)
	for _, depth := range []int{40, MaxNestedLevels} {
		v := nestedRecords(depth)
		data, err := CBOR().Marshal(v)
		if err != nil {
			t.Fatalf("marshal depth %d: %v", depth, err)
		}
		got, err := CBOR().Unmarshal(data)
		if err != nil {
			t.Fatalf("unmarshal depth %d: %v", depth, err)
		}
		if !recon.Equal(got, v) {
			t.Fatalf("depth %d did not round trip", depth)
		}
	}

	// attrs and slots cost a tag and an array each
	deep := recon.NewRecord(recon.Attr{Name: "a", Value: nestedRecords(MaxNestedLevels - 2)})
	if _, err := CBOR().Marshal(deep); !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("expected ErrNestingTooDeep for attr, got %v", err)
	}
	if _, err := CBOR().Marshal(nestedRecords(MaxNestedLevels + 1)); !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("expected ErrNestingTooDeep, got %v", err)
	}

	var raw any = "x"
	for i := 0; i <= MaxNestedLevels; i++ {
		raw = []any{raw}
	}
	data, err := cbor.Marshal(raw)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if _, err := CBOR().Unmarshal(data); err == nil {
		t.Fatalf("expected decode error past %d levels", MaxNestedLevels)
	}
}

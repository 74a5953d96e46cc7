package recon

import (
	"testing"

	"github.com/danmuck/swimproto/internal/testutil/testlog"
)

func TestStringifyCanonicalForms(t *testing.T) {
	testlog.Start(t)
	cases := []string{
		`@event(node:"house#kitchen",lane:"light/on")`,
		`@link(node:node_uri,lane:lane_uri,prio:0.5){a:1,foo}`,
		`@get(node:node_uri)`,
		`@auth{a:1,foo}`,
		`@foo`,
		`@a(x)`,
		`@a({x})`,
		`@a({})`,
		`{a,b:true,c:-2.25}`,
		`{x:@tag{1}}`,
		`"with space"`,
		`"true"`,
		`1e+21`,
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			v, err := Parse(src)
			if err != nil {
				t.Fatalf("parse %q: %v", src, err)
			}
			if got := Stringify(v); got != src {
				t.Fatalf("stringify: got %q want %q", got, src)
			}
		})
	}
}

func TestStringifyNormalizesWhitespace(t *testing.T) {
	testlog.Start(t)
	v := MustParse(`@event(node: "house#kitchen", lane: "light/on")`)
	want := `@event(node:"house#kitchen",lane:"light/on")`
	if got := Stringify(v); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestStringifyRoundTripsBuiltValues(t *testing.T) {
	testlog.Start(t)
	var inner Builder
	inner.Slot("x", Num(1)).Item(Text("tab\there")).Item(Bool(false))
	var b Builder
	b.Attr("put", NewRecord(Slot{Key: Text("node"), Value: Text("a/b")})).
		Slot("body", inner.Record()).
		Item(Num(0.125))
	v := b.Record()

	out, err := Parse(Stringify(v))
	if err != nil {
		t.Fatalf("reparse %q: %v", Stringify(v), err)
	}
	if !Equal(out, v) {
		t.Fatalf("round trip mismatch: got %s want %s", Stringify(out), Stringify(v))
	}
}

func TestBuilderRecordIsIsolated(t *testing.T) {
	testlog.Start(t)
	var b Builder
	b.Item(Text("a"))
	first := b.Record()
	b.Item(Text("b"))
	if first.Len() != 1 {
		t.Fatalf("builder mutated a returned record: %s", Stringify(first))
	}
	items := first.Items()
	items[0] = Text("z")
	if !Equal(first.At(0).(Value), Text("a")) {
		t.Fatalf("Items leaked the backing slice")
	}
}

package protocol

import (
	"errors"
	"testing"

	"github.com/danmuck/swimproto/internal/codec"
	"github.com/danmuck/swimproto/internal/recon"
	"github.com/danmuck/swimproto/internal/testutil/testlog"
)

func TestStringifyCanonicalForms(t *testing.T) {
	testlog.Start(t)
	var body recon.Builder
	body.Slot("a", recon.Num(1)).Item(recon.Text("foo"))
	cases := []struct {
		env  Envelope
		want string
	}{
		{NewEventMessage("house#kitchen", "light/on"), `@event(node:"house#kitchen",lane:"light/on")`},
		{NewLinkRequest("node_uri", "lane_uri").WithPrio(0.5).WithBody(body.Record()), "@link(node:node_uri,lane:lane_uri,prio:0.5){a:1,foo}"},
		{NewLinkRequest("n", "l"), "@link(node:n,lane:l)"},
		{NewSyncRequest("n", "l").WithPrio(0), "@sync(node:n,lane:l)"},
		{NewGetRequest("node_uri"), "@get(node:node_uri)"},
		{NewAuthRequest().WithBody(body.Record()), "@auth{a:1,foo}"},
		{NewDeauthedResponse(), "@deauthed"},
		{NewEventMessage("n", "l").WithVia("v"), "@event(node:n,lane:l,via:v)"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			if got := Stringify(tc.env); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
			back, ok := Parse(tc.want)
			if !ok {
				t.Fatalf("parse %s: no envelope", tc.want)
			}
			if !Equal(back, tc.env) {
				t.Fatalf("round trip mismatch: %s", Stringify(back))
			}
			if !recon.Equal(Encode(tc.env), tc.env.Encode()) {
				t.Fatalf("Encode must match the envelope's own encoding")
			}
		})
	}
}

func TestEqual(t *testing.T) {
	testlog.Start(t)
	a := NewUnlinkRequest("n", "l")
	b := NewUnlinkedResponse("n", "l")
	if Equal(a, b) {
		t.Fatalf("different kinds must not be equal")
	}
	if !Equal(a, NewUnlinkRequest("n", "l")) {
		t.Fatalf("same headers must be equal")
	}
	if Equal(a, a.WithAddress(Lane("other"))) {
		t.Fatalf("different lanes must not be equal")
	}
	if !Equal(nil, nil) || Equal(a, nil) || Equal(nil, b) {
		t.Fatalf("unexpected nil equality")
	}
}

func TestMarshalUnmarshalEveryCodec(t *testing.T) {
	testlog.Start(t)
	for _, name := range codec.Names() {
		c, err := codec.Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		for _, env := range sampleEnvelopes() {
			t.Run(name+"/"+string(env.Kind()), func(t *testing.T) {
				data, err := Marshal(env, c)
				if err != nil {
					t.Fatalf("marshal: %v", err)
				}
				got, err := Unmarshal(data, c)
				if err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if !Equal(got, env) {
					t.Fatalf("got %s want %s", Stringify(got), Stringify(env))
				}
			})
		}
	}
}

func TestUnmarshalUnrecognized(t *testing.T) {
	testlog.Start(t)
	_, err := Unmarshal([]byte("@foo(x)"), codec.Recon())
	var unrec UnrecognizedError
	if !errors.As(err, &unrec) || unrec.Tag != "foo" {
		t.Fatalf("expected UnrecognizedError{foo}, got %v", err)
	}
	if !errors.Is(err, ErrUnrecognized) {
		t.Fatalf("expected ErrUnrecognized, got %v", err)
	}

	_, err = Unmarshal([]byte("foo,bar"), codec.Recon())
	if !errors.As(err, &unrec) || unrec.Tag != "" {
		t.Fatalf("expected tagless UnrecognizedError, got %v", err)
	}

	_, err = Unmarshal([]byte("@event("), codec.Recon())
	if !errors.Is(err, recon.ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}

	lenient := Decoder{Policy: MissingHeaderEmpty}
	env, err := lenient.Unmarshal([]byte("@get"), codec.Recon())
	if err != nil {
		t.Fatalf("lenient unmarshal: %v", err)
	}
	if env.(GetRequest).Node != "" {
		t.Fatalf("unexpected node: %+v", env)
	}
}

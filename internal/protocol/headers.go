package protocol

import (
	"math"

	"github.com/danmuck/swimproto/internal/recon"
)

type headerType uint8

const (
	headerText headerType = iota + 1
	headerNum
)

// headerSpec declares one header of an envelope kind. Declaration order
// is the positional order.
type headerSpec struct {
	Name     string
	Type     headerType
	Required bool
}

// accepts reports whether v can bind to the header.
func (h headerSpec) accepts(v recon.Value) bool {
	switch h.Type {
	case headerText:
		_, ok := v.(recon.Text)
		return ok
	case headerNum:
		n, ok := v.(recon.Num)
		return ok && isFinite(float64(n))
	default:
		return false
	}
}

// zero is the value substituted for a missing required header under
// MissingHeaderEmpty.
func (h headerSpec) zero() recon.Value {
	if h.Type == headerNum {
		return recon.Num(0)
	}
	return recon.Text("")
}

var (
	hdrNode = headerSpec{Name: "node", Type: headerText, Required: true}
	hdrLane = headerSpec{Name: "lane", Type: headerText, Required: true}
	hdrVia  = headerSpec{Name: "via", Type: headerText}
	hdrPrio = headerSpec{Name: "prio", Type: headerNum}
)

// variant declares the wire layout of one envelope kind.
type variant struct {
	kind    Kind
	role    Role
	code    uint32
	headers []headerSpec
	body    bool
	build   func(h headerValues, body recon.Record) Envelope
}

// variants is filled in init so variant methods may consult it without
// forming an initialization cycle.
var variants map[Kind]variant

func init() {
	variants = map[Kind]variant{
		KindEvent: {
			kind: KindEvent, role: RoleMessage, code: 1,
			headers: []headerSpec{hdrNode, hdrLane, hdrVia}, body: true,
			build: func(h headerValues, body recon.Record) Envelope {
				return EventMessage{Node: h.text(0), Lane: h.text(1), Via: h.text(2), Body: body}
			},
		},
		KindCommand: {
			kind: KindCommand, role: RoleMessage, code: 2,
			headers: []headerSpec{hdrNode, hdrLane, hdrVia}, body: true,
			build: func(h headerValues, body recon.Record) Envelope {
				return CommandMessage{Node: h.text(0), Lane: h.text(1), Via: h.text(2), Body: body}
			},
		},
		KindLink: {
			kind: KindLink, role: RoleRequest, code: 3,
			headers: []headerSpec{hdrNode, hdrLane, hdrPrio}, body: true,
			build: func(h headerValues, body recon.Record) Envelope {
				return LinkRequest{Node: h.text(0), Lane: h.text(1), Prio: h.num(2), Body: body}
			},
		},
		KindLinked: {
			kind: KindLinked, role: RoleResponse, code: 4,
			headers: []headerSpec{hdrNode, hdrLane, hdrPrio}, body: true,
			build: func(h headerValues, body recon.Record) Envelope {
				return LinkedResponse{Node: h.text(0), Lane: h.text(1), Prio: h.num(2), Body: body}
			},
		},
		KindSync: {
			kind: KindSync, role: RoleRequest, code: 5,
			headers: []headerSpec{hdrNode, hdrLane, hdrPrio},
			build: func(h headerValues, _ recon.Record) Envelope {
				return SyncRequest{Node: h.text(0), Lane: h.text(1), Prio: h.num(2)}
			},
		},
		KindSynced: {
			kind: KindSynced, role: RoleResponse, code: 6,
			headers: []headerSpec{hdrNode, hdrLane},
			build: func(h headerValues, _ recon.Record) Envelope {
				return SyncedResponse{Node: h.text(0), Lane: h.text(1)}
			},
		},
		KindUnlink: {
			kind: KindUnlink, role: RoleRequest, code: 7,
			headers: []headerSpec{hdrNode, hdrLane}, body: true,
			build: func(h headerValues, body recon.Record) Envelope {
				return UnlinkRequest{Node: h.text(0), Lane: h.text(1), Body: body}
			},
		},
		KindUnlinked: {
			kind: KindUnlinked, role: RoleResponse, code: 8,
			headers: []headerSpec{hdrNode, hdrLane}, body: true,
			build: func(h headerValues, body recon.Record) Envelope {
				return UnlinkedResponse{Node: h.text(0), Lane: h.text(1), Body: body}
			},
		},
		KindGet: {
			kind: KindGet, role: RoleRequest, code: 9,
			headers: []headerSpec{hdrNode},
			build: func(h headerValues, _ recon.Record) Envelope {
				return GetRequest{Node: h.text(0)}
			},
		},
		KindPut: {
			kind: KindPut, role: RoleRequest, code: 10,
			headers: []headerSpec{hdrNode}, body: true,
			build: func(h headerValues, body recon.Record) Envelope {
				return PutRequest{Node: h.text(0), Body: body}
			},
		},
		KindState: {
			kind: KindState, role: RoleResponse, code: 11,
			headers: []headerSpec{hdrNode}, body: true,
			build: func(h headerValues, body recon.Record) Envelope {
				return StateResponse{Node: h.text(0), Body: body}
			},
		},
		KindAuth: {
			kind: KindAuth, role: RoleRequest, code: 12, body: true,
			build: func(_ headerValues, body recon.Record) Envelope {
				return AuthRequest{Body: body}
			},
		},
		KindAuthed: {
			kind: KindAuthed, role: RoleResponse, code: 13, body: true,
			build: func(_ headerValues, body recon.Record) Envelope {
				return AuthedResponse{Body: body}
			},
		},
		KindDeauth: {
			kind: KindDeauth, role: RoleRequest, code: 14, body: true,
			build: func(_ headerValues, body recon.Record) Envelope {
				return DeauthRequest{Body: body}
			},
		},
		KindDeauthed: {
			kind: KindDeauthed, role: RoleResponse, code: 15, body: true,
			build: func(_ headerValues, body recon.Record) Envelope {
				return DeauthedResponse{Body: body}
			},
		},
	}
}

// headerValues holds matched header values parallel to a variant's specs.
// A nil entry is an unbound optional header.
type headerValues []recon.Value

func (h headerValues) text(i int) string {
	if t, ok := h[i].(recon.Text); ok {
		return string(t)
	}
	return ""
}

func (h headerValues) num(i int) float64 {
	if n, ok := h[i].(recon.Num); ok {
		return float64(n)
	}
	return 0
}

// headerItems returns the header sequence carried by an attribute value:
// the items of a record, a lone value as one positional item, or nothing.
func headerItems(v recon.Value) []recon.Item {
	switch x := v.(type) {
	case recon.Record:
		return x.Items()
	case nil, recon.Extant, recon.Absent:
		return nil
	default:
		return []recon.Item{x}
	}
}

// matchHeaders walks items once. A slot keyed by a declared header name
// always binds it. A bare value at position i binds declaration i when
// that header is still unbound. Everything else is ignored.
func matchHeaders(specs []headerSpec, items []recon.Item) headerValues {
	bound := make(headerValues, len(specs))
	for i, it := range items {
		switch x := it.(type) {
		case recon.Slot:
			key, ok := x.Key.(recon.Text)
			if !ok {
				continue
			}
			j := headerIndex(specs, string(key))
			if j >= 0 && specs[j].accepts(x.Value) {
				bound[j] = x.Value
			}
		case recon.Attr:
			continue
		case recon.Value:
			if i < len(specs) && bound[i] == nil && specs[i].accepts(x) {
				bound[i] = x
			}
		}
	}
	return bound
}

func headerIndex(specs []headerSpec, name string) int {
	for i, spec := range specs {
		if spec.Name == name {
			return i
		}
	}
	return -1
}

// encodeHeaders renders populated headers as slots in declaration order.
// A nil entry is an optional header at its default and is omitted. The
// result is Extant when no header is emitted.
func encodeHeaders(specs []headerSpec, values []recon.Value) recon.Value {
	var b recon.Builder
	for i, spec := range specs {
		if values[i] == nil {
			continue
		}
		b.Slot(spec.Name, values[i])
	}
	if b.Len() == 0 {
		return recon.Extant{}
	}
	return b.Record()
}

func optText(s string) recon.Value {
	if s == "" {
		return nil
	}
	return recon.Text(s)
}

func optNum(f float64) recon.Value {
	if f == 0 || !isFinite(f) {
		return nil
	}
	return recon.Num(f)
}

// finitePrio maps NaN and infinities to the default priority; recon text
// has no literal for them.
func finitePrio(prio float64) float64 {
	if !isFinite(prio) {
		return 0
	}
	return prio
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

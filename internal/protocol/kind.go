package protocol

import "fmt"

// Kind is the envelope discriminant. Its string form is the wire tag.
type Kind string

const (
	KindEvent    Kind = "event"
	KindCommand  Kind = "command"
	KindLink     Kind = "link"
	KindLinked   Kind = "linked"
	KindSync     Kind = "sync"
	KindSynced   Kind = "synced"
	KindUnlink   Kind = "unlink"
	KindUnlinked Kind = "unlinked"
	KindGet      Kind = "get"
	KindPut      Kind = "put"
	KindState    Kind = "state"
	KindAuth     Kind = "auth"
	KindAuthed   Kind = "authed"
	KindDeauth   Kind = "deauth"
	KindDeauthed Kind = "deauthed"
)

// Role groups envelope kinds by direction.
type Role uint8

const (
	RoleRequest Role = iota + 1
	RoleResponse
	RoleMessage
)

func (r Role) String() string {
	switch r {
	case RoleRequest:
		return "request"
	case RoleResponse:
		return "response"
	case RoleMessage:
		return "message"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Kinds returns every envelope kind in wire-code order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// Valid reports whether k is one of the closed set of kinds.
func (k Kind) Valid() bool {
	_, ok := variants[k]
	return ok
}

// Role returns the role of k, or zero when k is not a known kind.
func (k Kind) Role() Role {
	return variants[k].role
}

// HasBody reports whether envelopes of kind k carry a body.
func (k Kind) HasBody() bool {
	return variants[k].body
}

// Code returns the numeric code used in frame headers, or zero for
// unknown kinds.
func (k Kind) Code() uint32 {
	return variants[k].code
}

// KindFromCode maps a frame message type back to its kind.
func KindFromCode(code uint32) (Kind, bool) {
	if code == 0 || int(code) > len(kindOrder) {
		return "", false
	}
	return kindOrder[code-1], true
}

var kindOrder = []Kind{
	KindEvent,
	KindCommand,
	KindLink,
	KindLinked,
	KindSync,
	KindSynced,
	KindUnlink,
	KindUnlinked,
	KindGet,
	KindPut,
	KindState,
	KindAuth,
	KindAuthed,
	KindDeauth,
	KindDeauthed,
}

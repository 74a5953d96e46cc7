package protocol

import "github.com/danmuck/swimproto/internal/recon"

// Envelope is the closed set of protocol messages. Only this package
// implements it; switch on the concrete type to select a variant.
type Envelope interface {
	Kind() Kind
	Role() Role
	// Encode returns the canonical wire value.
	Encode() recon.Value
	envelope()
}

// Request is implemented by client-to-server envelopes.
type Request interface {
	Envelope
	request()
}

// Response is implemented by server-to-client envelopes.
type Response interface {
	Envelope
	response()
}

// Message is implemented by bidirectional data envelopes.
type Message interface {
	Envelope
	message()
}

// Address is the node/lane coordinate of an envelope. Lane is empty for
// node-only kinds.
type Address struct {
	Node string
	Lane string
}

// Addressed is implemented by every envelope carrying a node header.
type Addressed interface {
	Envelope
	Address() Address
}

// AddressOption replaces one coordinate of an address.
type AddressOption func(*Address)

// Node replaces the node coordinate.
func Node(node string) AddressOption {
	return func(a *Address) { a.Node = node }
}

// Lane replaces the lane coordinate.
func Lane(lane string) AddressOption {
	return func(a *Address) { a.Lane = lane }
}

func readdress(cur Address, opts []AddressOption) Address {
	for _, opt := range opts {
		if opt != nil {
			opt(&cur)
		}
	}
	return cur
}

// WithAddress returns a copy of env with the given coordinates replaced.
// Coordinates without an option keep their current value. Envelopes
// without an address are returned unchanged with ok false.
func WithAddress(env Envelope, opts ...AddressOption) (out Envelope, ok bool) {
	switch e := env.(type) {
	case EventMessage:
		return e.WithAddress(opts...), true
	case CommandMessage:
		return e.WithAddress(opts...), true
	case LinkRequest:
		return e.WithAddress(opts...), true
	case LinkedResponse:
		return e.WithAddress(opts...), true
	case SyncRequest:
		return e.WithAddress(opts...), true
	case SyncedResponse:
		return e.WithAddress(opts...), true
	case UnlinkRequest:
		return e.WithAddress(opts...), true
	case UnlinkedResponse:
		return e.WithAddress(opts...), true
	case GetRequest:
		return e.WithAddress(opts...), true
	case PutRequest:
		return e.WithAddress(opts...), true
	case StateResponse:
		return e.WithAddress(opts...), true
	default:
		return env, false
	}
}

// Body returns the body of env, or the empty record for kinds without one.
func Body(env Envelope) recon.Record {
	switch e := env.(type) {
	case EventMessage:
		return e.Body
	case CommandMessage:
		return e.Body
	case LinkRequest:
		return e.Body
	case LinkedResponse:
		return e.Body
	case UnlinkRequest:
		return e.Body
	case UnlinkedResponse:
		return e.Body
	case PutRequest:
		return e.Body
	case StateResponse:
		return e.Body
	case AuthRequest:
		return e.Body
	case AuthedResponse:
		return e.Body
	case DeauthRequest:
		return e.Body
	case DeauthedResponse:
		return e.Body
	default:
		return recon.Record{}
	}
}

// encodeEnvelope builds `@kind(headers)` followed by the body items when
// the kind carries a body.
func encodeEnvelope(kind Kind, headers []recon.Value, body recon.Record) recon.Record {
	v := variants[kind]
	var b recon.Builder
	b.Attr(string(kind), encodeHeaders(v.headers, headers))
	if v.body {
		b.Items(body.Items()...)
	}
	return b.Record()
}

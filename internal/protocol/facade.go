package protocol

import (
	"fmt"

	"github.com/danmuck/swimproto/internal/codec"
	"github.com/danmuck/swimproto/internal/recon"
)

// Encode returns the structured value of env.
func Encode(env Envelope) recon.Value {
	return env.Encode()
}

// Stringify returns the canonical text of env.
func Stringify(env Envelope) string {
	return recon.Stringify(env.Encode())
}

// Equal reports whether a and b are the same kind with equal headers and
// bodies.
func Equal(a, b Envelope) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() && recon.Equal(a.Encode(), b.Encode())
}

// Marshal encodes env and serializes it with c.
func Marshal(env Envelope, c codec.Codec) ([]byte, error) {
	data, err := c.Marshal(env.Encode())
	if err != nil {
		return nil, fmt.Errorf("protocol: marshal %s: %w", env.Kind(), err)
	}
	return data, nil
}

// Unmarshal deserializes data with c and decodes the result. A value that
// is not an envelope yields an UnrecognizedError.
func (d Decoder) Unmarshal(data []byte, c codec.Codec) (Envelope, error) {
	v, err := c.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("protocol: unmarshal %s: %w", c.Name(), err)
	}
	env, ok := d.Decode(v)
	if !ok {
		return nil, UnrecognizedError{Tag: recon.Tag(v)}
	}
	return env, nil
}

// Unmarshal decodes data with DefaultDecoder.
func Unmarshal(data []byte, c codec.Codec) (Envelope, error) {
	return DefaultDecoder.Unmarshal(data, c)
}

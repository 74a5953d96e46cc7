package protocol

import (
	"fmt"
	"strings"

	"github.com/danmuck/swimproto/internal/recon"
	"github.com/rs/zerolog/log"
)

// MissingHeaderPolicy selects what decoding does when a required header
// is neither named nor positional.
type MissingHeaderPolicy uint8

const (
	// MissingHeaderFail rejects the envelope. This is the default.
	MissingHeaderFail MissingHeaderPolicy = iota
	// MissingHeaderEmpty substitutes the empty string for missing required
	// headers.
	MissingHeaderEmpty
)

func (p MissingHeaderPolicy) String() string {
	switch p {
	case MissingHeaderFail:
		return "fail"
	case MissingHeaderEmpty:
		return "empty"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParseMissingHeaderPolicy maps "fail" or "empty" to a policy.
func ParseMissingHeaderPolicy(raw string) (MissingHeaderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "fail":
		return MissingHeaderFail, nil
	case "empty":
		return MissingHeaderEmpty, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, raw)
	}
}

// Decoder maps recon values to envelopes under one missing-header policy.
// The zero value uses MissingHeaderFail. A Decoder is safe for concurrent use.
type Decoder struct {
	Policy MissingHeaderPolicy
}

// DefaultDecoder backs the package-level Decode and Parse.
var DefaultDecoder = Decoder{Policy: MissingHeaderFail}

// Decode returns the envelope v represents. It reports false when v does
// not start with a known envelope tag or when a required header is missing
// under MissingHeaderFail.
func (d Decoder) Decode(v recon.Value) (Envelope, bool) {
	rec, ok := v.(recon.Record)
	if !ok || rec.IsEmpty() {
		return nil, false
	}
	attr, ok := rec.At(0).(recon.Attr)
	if !ok {
		return nil, false
	}
	vt, ok := variants[Kind(attr.Name)]
	if !ok {
		log.Debug().Str("tag", attr.Name).Msg("protocol.Decode unrecognized tag")
		return nil, false
	}
	headers, ok := d.resolve(vt, matchHeaders(vt.headers, headerItems(attr.Value)))
	if !ok {
		return nil, false
	}
	var body recon.Record
	if vt.body {
		body = recon.Tail(rec)
	}
	return vt.build(headers, body), true
}

// resolve applies the missing-header policy to matched headers.
func (d Decoder) resolve(vt variant, headers headerValues) (headerValues, bool) {
	for i, spec := range vt.headers {
		if headers[i] != nil || !spec.Required {
			continue
		}
		if d.Policy != MissingHeaderEmpty {
			log.Debug().
				Str("kind", string(vt.kind)).
				Str("header", spec.Name).
				Msg("protocol.Decode missing required header")
			return nil, false
		}
		headers[i] = spec.zero()
	}
	return headers, true
}

// Parse parses text and decodes it. Malformed text reports false.
func (d Decoder) Parse(text string) (Envelope, bool) {
	v, err := recon.Parse(text)
	if err != nil {
		log.Debug().Err(err).Msg("protocol.Parse malformed text")
		return nil, false
	}
	return d.Decode(v)
}

// Decode decodes v with DefaultDecoder.
func Decode(v recon.Value) (Envelope, bool) {
	return DefaultDecoder.Decode(v)
}

// Parse parses and decodes text with DefaultDecoder.
func Parse(text string) (Envelope, bool) {
	return DefaultDecoder.Parse(text)
}

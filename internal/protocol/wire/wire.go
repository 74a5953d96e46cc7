package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/swimproto/internal/codec"
	"github.com/danmuck/swimproto/internal/protocol"
	"github.com/danmuck/swimproto/internal/protocol/frame"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownKindCode = errors.New("wire: unknown kind code")
	ErrKindMismatch    = errors.New("wire: frame message type does not match envelope kind")
)

// NewFrame builds the frame for env. The payload is env serialized with c.
func NewFrame(messageID uint64, env protocol.Envelope, c codec.Codec) (frame.Frame, error) {
	payload, err := protocol.Marshal(env, c)
	if err != nil {
		return frame.Frame{}, err
	}
	return frame.Frame{
		Header: frame.Header{
			MessageID:   messageID,
			MessageType: env.Kind().Code(),
			Flags:       flagsFor(env, c),
		},
		Payload: payload,
	}, nil
}

// EncodeFrame returns the complete framed bytes of env.
func EncodeFrame(messageID uint64, env protocol.Envelope, c codec.Codec, limits frame.Limits) ([]byte, error) {
	f, err := NewFrame(messageID, env, c)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := frame.WriteFrame(&buf, f, limits); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeFrame decodes the envelope in f and checks it against the frame's
// message type.
func DecodeFrame(f frame.Frame, dec protocol.Decoder) (protocol.Envelope, error) {
	kind, ok := protocol.KindFromCode(f.Header.MessageType)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKindCode, f.Header.MessageType)
	}
	env, err := dec.Unmarshal(f.Payload, CodecFor(f.Header.Flags))
	if err != nil {
		return nil, err
	}
	if env.Kind() != kind {
		return nil, fmt.Errorf("%w: header=%s payload=%s", ErrKindMismatch, kind, env.Kind())
	}
	return env, nil
}

// CodecFor returns the payload codec selected by frame flags.
func CodecFor(flags uint32) codec.Codec {
	if flags&frame.FlagCBOR != 0 {
		return codec.CBOR()
	}
	return codec.Recon()
}

func flagsFor(env protocol.Envelope, c codec.Codec) uint32 {
	var flags uint32
	if c.Name() == codec.NameCBOR {
		flags |= frame.FlagCBOR
	}
	switch env.Role() {
	case protocol.RoleRequest:
		flags |= frame.FlagIsRequest
	case protocol.RoleResponse:
		flags |= frame.FlagIsResponse
	}
	return flags
}

// Writer frames envelopes onto a stream with increasing message ids.
// A Writer is not safe for concurrent use.
type Writer struct {
	w      io.Writer
	codec  codec.Codec
	limits frame.Limits
	nextID uint64
}

func NewWriter(w io.Writer, c codec.Codec, limits frame.Limits) *Writer {
	return &Writer{w: w, codec: c, limits: limits, nextID: 1}
}

// Write frames env and returns the message id it was assigned.
func (w *Writer) Write(env protocol.Envelope) (uint64, error) {
	id := w.nextID
	f, err := NewFrame(id, env, w.codec)
	if err != nil {
		return 0, err
	}
	if err := frame.WriteFrame(w.w, f, w.limits); err != nil {
		return 0, err
	}
	w.nextID++
	log.Debug().
		Uint64("message_id", id).
		Str("kind", string(env.Kind())).
		Str("codec", w.codec.Name()).
		Int("payload_bytes", len(f.Payload)).
		Msg("wire.Writer frame written")
	return id, nil
}

// Reader decodes framed envelopes from a stream.
type Reader struct {
	r       io.Reader
	decoder protocol.Decoder
	limits  frame.Limits
}

func NewReader(r io.Reader, dec protocol.Decoder, limits frame.Limits) *Reader {
	return &Reader{r: r, decoder: dec, limits: limits}
}

// Read returns the next envelope and its message id. It returns io.EOF at a
// clean end of stream.
func (r *Reader) Read() (uint64, protocol.Envelope, error) {
	f, err := frame.ReadFrame(r.r, r.limits)
	if err != nil {
		return 0, nil, err
	}
	env, err := DecodeFrame(f, r.decoder)
	if err != nil {
		log.Debug().
			Err(err).
			Uint64("message_id", f.Header.MessageID).
			Uint32("message_type", f.Header.MessageType).
			Msg("wire.Reader frame rejected")
		return f.Header.MessageID, nil, err
	}
	return f.Header.MessageID, env, nil
}

package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/danmuck/swimproto/internal/testutil/testlog"
)

func TestReadWriteFrameRoundTrip(t *testing.T) {
	testlog.Start(t)
	payload := []byte("@get(node:node_uri)")
	in := Frame{
		Header:  Header{MessageID: 42, MessageType: 9, Flags: FlagIsRequest},
		Payload: payload,
	}
	var buf bytes.Buffer
	if err := WriteFrame(&buf, in, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if buf.Len() != int(FixedHeaderLen)+len(payload) {
		t.Fatalf("unexpected frame size %d", buf.Len())
	}
	out, err := ReadFrame(&buf, DefaultLimits())
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if out.Header.Magic != Magic || out.Header.Version != Version || out.Header.HeaderLen != FixedHeaderLen {
		t.Fatalf("fixed fields not filled: %+v", out.Header)
	}
	if out.Header.MessageType != in.Header.MessageType || out.Header.MessageID != in.Header.MessageID || out.Header.Flags != FlagIsRequest {
		t.Fatalf("header mismatch: got=%+v want=%+v", out.Header, in.Header)
	}
	if !bytes.Equal(out.Payload, payload) {
		t.Fatalf("payload mismatch")
	}
	if _, err := ReadFrame(&buf, DefaultLimits()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after last frame, got %v", err)
	}
}

func TestReadFrameMalformedHeaderIsDeterministic(t *testing.T) {
	testlog.Start(t)
	_, err := ReadFrame(bytes.NewReader([]byte{1, 2, 3}), DefaultLimits())
	if !errors.Is(err, ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
}

func TestReadFrameRejectsBadFixedFields(t *testing.T) {
	testlog.Start(t)
	valid := Header{Magic: Magic, Version: Version, HeaderLen: FixedHeaderLen, MessageID: 1, MessageType: 1}
	cases := []struct {
		name   string
		mutate func(*Header)
		want   error
	}{
		{"magic", func(h *Header) { h.Magic = 0xEDCE1001 }, ErrInvalidMagic},
		{"version", func(h *Header) { h.Version = 2 }, ErrUnsupportedVersion},
		{"header_len", func(h *Header) { h.HeaderLen = 8 }, ErrHeaderLenMismatch},
		{"payload", func(h *Header) { h.PayloadLen = 1 << 40 }, ErrPayloadTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := valid
			tc.mutate(&h)
			_, err := ReadFrame(bytes.NewReader(EncodeHeader(h)), DefaultLimits())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestReadFrameTruncatedPayload(t *testing.T) {
	testlog.Start(t)
	var buf bytes.Buffer
	if err := WriteFrame(&buf, Frame{Payload: []byte("@auth{a:1}")}, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	b := buf.Bytes()[:buf.Len()-2]
	_, err := ReadFrame(bytes.NewReader(b), DefaultLimits())
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestWriteFrameEnforcesLimits(t *testing.T) {
	testlog.Start(t)
	var buf bytes.Buffer
	err := WriteFrame(&buf, Frame{Payload: make([]byte, 16)}, Limits{MaxPayloadBytes: 8})
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written on limit failure")
	}
}

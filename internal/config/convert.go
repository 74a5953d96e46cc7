package config

import (
	"github.com/danmuck/swimproto/internal/codec"
	"github.com/danmuck/swimproto/internal/logging"
	"github.com/danmuck/swimproto/internal/protocol"
	"github.com/danmuck/swimproto/internal/protocol/frame"
)

// PayloadCodec resolves the configured codec.
func (c Config) PayloadCodec() (codec.Codec, error) {
	return codec.Lookup(c.Codec)
}

// Decoder returns an envelope decoder using the configured policy.
func (c Config) Decoder() (protocol.Decoder, error) {
	policy, err := protocol.ParseMissingHeaderPolicy(c.MissingHeaders)
	if err != nil {
		return protocol.Decoder{}, err
	}
	return protocol.Decoder{Policy: policy}, nil
}

func (c Config) Limits() frame.Limits {
	return frame.Limits{MaxPayloadBytes: c.MaxPayloadBytes}
}

// Logging overlays the [log] table onto base. Environment overrides are
// applied by the caller afterwards.
func (c Config) Logging(base logging.Config) logging.Config {
	if lvl, ok := logging.ParseLevel(c.Log.Level); ok {
		base.Level = lvl
	}
	base.Timestamp = c.Log.Timestamp
	base.JSON = c.Log.JSON
	return base
}

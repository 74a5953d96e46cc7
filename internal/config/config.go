package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/swimproto/internal/codec"
	"github.com/danmuck/swimproto/internal/logging"
	"github.com/danmuck/swimproto/internal/protocol"
)

const DefaultPath = "swimproto.toml"

// Config holds swimctl settings.
type Config struct {
	Codec           string    `toml:"codec"`
	MissingHeaders  string    `toml:"missing_headers"`
	MaxPayloadBytes uint64    `toml:"max_payload_bytes"`
	Log             LogConfig `toml:"log"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	JSON      bool   `toml:"json"`
}

func Default() Config {
	return Config{
		Codec:           codec.NameRecon,
		MissingHeaders:  protocol.MissingHeaderFail.String(),
		MaxPayloadBytes: 8 * 1024 * 1024,
		Log: LogConfig{
			Level:     "info",
			Timestamp: true,
		},
	}
}

// Load overlays the keys present in path onto Default and validates the
// result.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("codec") {
		cfg.Codec = strings.TrimSpace(raw.Codec)
	}
	if meta.IsDefined("missing_headers") {
		cfg.MissingHeaders = strings.TrimSpace(raw.MissingHeaders)
	}
	if meta.IsDefined("max_payload_bytes") {
		cfg.MaxPayloadBytes = raw.MaxPayloadBytes
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("log", "json") {
		cfg.Log.JSON = raw.Log.JSON
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, err := codec.Lookup(cfg.Codec); err != nil {
		return fmt.Errorf("codec: %w", err)
	}
	if _, err := protocol.ParseMissingHeaderPolicy(cfg.MissingHeaders); err != nil {
		return fmt.Errorf("missing_headers: %w", err)
	}
	if cfg.MaxPayloadBytes == 0 {
		return fmt.Errorf("max_payload_bytes must be positive")
	}
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	return nil
}

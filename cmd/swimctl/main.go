package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/danmuck/swimproto/internal/codec"
	"github.com/danmuck/swimproto/internal/config"
	"github.com/danmuck/swimproto/internal/logging"
	"github.com/danmuck/swimproto/internal/protocol"
	"github.com/danmuck/swimproto/internal/protocol/frame"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is overridden via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the per-invocation state resolved from config and flags.
type app struct {
	cfgFile   string
	codecName string
	cfg       config.Config
	decoder   protocol.Decoder
	codec     codec.Codec
	limits    frame.Limits
	in        io.Reader
	out       io.Writer
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}
	root := &cobra.Command{
		Use:   "swimctl",
		Short: "Inspect and convert swim protocol envelopes",
		Long: `swimctl decodes, encodes and frames swim envelopes.

Envelopes are read as recon text, one per line:

  echo '@link(node_uri, lane_uri, 0.5){a:1}' | swimctl decode
  swimctl encode '@get(node:node_uri)' > frames.bin
  swimctl dump < frames.bin`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./"+config.DefaultPath+" when present)")
	root.PersistentFlags().StringVar(&a.codecName, "codec", "", "payload codec override: recon or cbor")

	root.AddCommand(
		newDecodeCmd(a),
		newEncodeCmd(a),
		newDumpCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads config, applies logging and resolves the codec and decoder.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	lc := cfg.Logging(logging.DefaultConfig(logging.ProfileRuntime))
	logging.ApplyEnv(&lc)
	lc.Out = cmd.ErrOrStderr()
	logging.Apply(lc)

	if a.codecName != "" {
		cfg.Codec = a.codecName
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	if a.codec, err = cfg.PayloadCodec(); err != nil {
		return err
	}
	if a.decoder, err = cfg.Decoder(); err != nil {
		return err
	}
	a.limits = cfg.Limits()
	log.Debug().
		Str("codec", a.codec.Name()).
		Str("missing_headers", a.decoder.Policy.String()).
		Uint64("max_payload_bytes", a.limits.MaxPayloadBytes).
		Msg("swimctl configured")
	return nil
}

func (a *app) loadConfig() (config.Config, error) {
	if a.cfgFile != "" {
		return config.Load(a.cfgFile)
	}
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return config.Load(config.DefaultPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("stat %s: %w", config.DefaultPath, err)
	}
	return config.Default(), nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the swimctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "swimctl %s (codecs: %v)\n", version, codec.Names())
		},
	}
}

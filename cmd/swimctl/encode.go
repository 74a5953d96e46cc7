package main

import (
	"fmt"
	"os"

	"github.com/danmuck/swimproto/internal/protocol/wire"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "encode [text ...]",
		Short: "Frame envelopes for the wire",
		Long: `Encode decodes each argument, or each non-empty stdin line, and writes
one frame per envelope. Inputs that are not envelopes abort the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(a.in, args)
			if err != nil {
				return err
			}
			out := a.out
			if outPath != "" {
				f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			w := wire.NewWriter(out, a.codec, a.limits)
			for _, in := range inputs {
				env, ok := a.decoder.Parse(in.text)
				if !ok {
					return fmt.Errorf("line %d: not an envelope: %s", in.line, in.text)
				}
				if _, err := w.Write(env); err != nil {
					return fmt.Errorf("line %d: %w", in.line, err)
				}
			}
			log.Info().Int("frames", len(inputs)).Str("codec", a.codec.Name()).Msg("swimctl encode complete")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write frames to file instead of stdout")
	return cmd
}

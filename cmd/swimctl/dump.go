package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/swimproto/internal/codec"
	"github.com/danmuck/swimproto/internal/protocol"
	"github.com/danmuck/swimproto/internal/protocol/frame"
	"github.com/danmuck/swimproto/internal/protocol/wire"
	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	var inPath string
	var diag bool
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print framed envelopes as recon text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := a.in
			if inPath != "" {
				f, err := os.Open(inPath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			for {
				f, err := frame.ReadFrame(in, a.limits)
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				env, err := wire.DecodeFrame(f, a.decoder)
				if err != nil {
					return fmt.Errorf("message %d: %w", f.Header.MessageID, err)
				}
				fmt.Fprintf(a.out, "%d\t%s\n", f.Header.MessageID, protocol.Stringify(env))
				if diag && f.Header.Flags&frame.FlagCBOR != 0 {
					d, err := codec.Diagnose(f.Payload)
					if err != nil {
						return fmt.Errorf("message %d: %w", f.Header.MessageID, err)
					}
					fmt.Fprintf(a.out, "\t%s\n", d)
				}
			}
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "read frames from file instead of stdin")
	cmd.Flags().BoolVar(&diag, "diag", false, "also print CBOR diagnostic notation for CBOR payloads")
	return cmd
}

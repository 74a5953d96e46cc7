package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/danmuck/swimproto/internal/protocol"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// decodeRow is one decoded input line.
type decodeRow struct {
	Line      int    `json:"line"`
	Kind      string `json:"kind,omitempty"`
	Role      string `json:"role,omitempty"`
	Node      string `json:"node,omitempty"`
	Lane      string `json:"lane,omitempty"`
	Canonical string `json:"canonical,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newDecodeCmd(a *app) *cobra.Command {
	var format string
	var strict bool
	cmd := &cobra.Command{
		Use:   "decode [text ...]",
		Short: "Decode envelopes from recon text",
		Long: `Decode parses each argument, or each non-empty stdin line when no
arguments are given, and prints the envelope it represents.

Lines starting with '#' are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(a.in, args)
			if err != nil {
				return err
			}
			rows := a.decodeAll(inputs)
			switch format {
			case "json":
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rows); err != nil {
					return err
				}
			case "text":
				w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "LINE\tKIND\tROLE\tNODE\tLANE\tCANONICAL")
				for _, row := range rows {
					if row.Error != "" {
						fmt.Fprintf(w, "%d\t-\t-\t-\t-\t%s\n", row.Line, row.Error)
						continue
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", row.Line, row.Kind, row.Role, dash(row.Node), dash(row.Lane), row.Canonical)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
			if strict {
				for _, row := range rows {
					if row.Error != "" {
						return fmt.Errorf("line %d: %s", row.Line, row.Error)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any input is not an envelope")
	return cmd
}

// input is one envelope source with its 1-based position.
type input struct {
	line int
	text string
}

func readInputs(r io.Reader, args []string) ([]input, error) {
	if len(args) > 0 {
		out := make([]input, 0, len(args))
		for i, arg := range args {
			out = append(out, input{line: i + 1, text: arg})
		}
		return out, nil
	}
	var out []input
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		out = append(out, input{line: n, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return out, nil
}

func (a *app) decodeAll(inputs []input) []decodeRow {
	rows := make([]decodeRow, 0, len(inputs))
	for _, in := range inputs {
		row := decodeRow{Line: in.line}
		env, ok := a.decoder.Parse(in.text)
		if !ok {
			row.Error = "not an envelope"
			log.Warn().Int("line", in.line).Str("text", in.text).Msg("swimctl decode rejected input")
			rows = append(rows, row)
			continue
		}
		row.Kind = string(env.Kind())
		row.Role = env.Role().String()
		if addr, ok := env.(protocol.Addressed); ok {
			row.Node = addr.Address().Node
			row.Lane = addr.Address().Lane
		}
		row.Canonical = protocol.Stringify(env)
		rows = append(rows, row)
	}
	return rows
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/swimproto/internal/testutil/testlog"
)

func run(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd(stdin, &out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeArgsPrintsCanonicalText(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, nil, "decode", "@link(node_uri, lane_uri, 0.5){a:1}")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, "@link(node:node_uri,lane:lane_uri,prio:0.5){a:1}") || !strings.Contains(out, "request") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDecodeStdinJSON(t *testing.T) {
	testlog.Start(t)
	stdin := strings.NewReader("# comment\n@get(node_uri)\n\n@foo\n")
	out, err := run(t, stdin, "decode", "--format", "json")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var rows []decodeRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("unmarshal output: %v\n%s", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if rows[0].Line != 2 || rows[0].Kind != "get" || rows[0].Node != "node_uri" || rows[0].Canonical != "@get(node:node_uri)" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Line != 4 || rows[1].Error == "" {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}

	if _, err := run(t, strings.NewReader("@foo\n"), "decode", "--strict"); err == nil {
		t.Fatalf("expected strict decode to fail")
	}
	if _, err := run(t, nil, "decode", "--format", "yaml", "@auth"); err == nil {
		t.Fatalf("expected unknown format to fail")
	}
}

func TestEncodeThenDump(t *testing.T) {
	testlog.Start(t)
	for _, codecName := range []string{"recon", "cbor"} {
		t.Run(codecName, func(t *testing.T) {
			stdin := strings.NewReader("@get(node_uri)\n@event(node: n, lane: l){x}\n")
			framed, err := run(t, stdin, "--codec", codecName, "encode")
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			args := []string{"dump"}
			if codecName == "cbor" {
				args = append(args, "--diag")
			}
			out, err := run(t, strings.NewReader(framed), args...)
			if err != nil {
				t.Fatalf("dump: %v", err)
			}
			if !strings.Contains(out, "1\t@get(node:node_uri)\n") || !strings.Contains(out, "2\t@event(node:n,lane:l){x}\n") {
				t.Fatalf("unexpected dump:\n%s", out)
			}
		})
	}

	if _, err := run(t, strings.NewReader("@event()\n"), "encode"); err == nil {
		t.Fatalf("expected encode of invalid envelope to fail")
	}
}

func TestEncodeToFile(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "frames.bin")
	if _, err := run(t, nil, "encode", "-o", path, "@auth{token:abc}"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := run(t, nil, "dump", "-i", path)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if out != "1\t@auth{token:abc}\n" {
		t.Fatalf("unexpected dump %q", out)
	}
}

func TestConfigInitValidateAndUse(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "swimproto.toml")
	if _, err := run(t, nil, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := run(t, nil, "config", "init", path); err == nil {
		t.Fatalf("expected init without --force to refuse overwrite")
	}
	out, err := run(t, nil, "config", "validate", path)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "validated config") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := run(t, nil, "--config", path, "decode", "@sync(n,l)"); err != nil {
		t.Fatalf("decode with config: %v", err)
	}
	if _, err := run(t, nil, "--codec", "json", "decode", "@sync(n,l)"); err == nil {
		t.Fatalf("expected unknown codec override to fail")
	}
}

func TestVersion(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, nil, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "swimctl dev") {
		t.Fatalf("unexpected version %q", out)
	}
}

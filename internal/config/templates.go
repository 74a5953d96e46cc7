package config

import (
	"fmt"
	"os"
)

func Template() string {
	return defaultTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0o600)
}

const defaultTemplate = `# payload codec for framed output: "recon" or "cbor"
codec = "recon"
# required header missing on decode: "fail" drops the envelope, "empty" substitutes ""
missing_headers = "fail"
max_payload_bytes = 8388608

[log]
level = "info"
timestamp = true
json = false
`

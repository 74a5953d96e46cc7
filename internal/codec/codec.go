package codec

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danmuck/swimproto/internal/recon"
)

const (
	NameRecon = "recon"
	NameCBOR  = "cbor"
)

var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec converts recon values to and from bytes.
type Codec interface {
	Name() string
	Marshal(v recon.Value) ([]byte, error)
	Unmarshal(data []byte) (recon.Value, error)
}

var registry = map[string]Codec{
	NameRecon: reconCodec{},
	NameCBOR:  cborCodec{},
}

// Recon returns the text codec.
func Recon() Codec {
	return reconCodec{}
}

// CBOR returns the binary codec.
func CBOR() Codec {
	return cborCodec{}
}

// Lookup returns the codec registered under name (case-insensitive).
func Lookup(name string) (Codec, error) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

// Names returns the registered codec names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type reconCodec struct{}

func (reconCodec) Name() string { return NameRecon }

func (reconCodec) Marshal(v recon.Value) ([]byte, error) {
	return []byte(recon.Stringify(v)), nil
}

func (reconCodec) Unmarshal(data []byte) (recon.Value, error) {
	return recon.Parse(string(data))
}

package codec

import (
	"errors"
	"fmt"

	"github.com/danmuck/swimproto/internal/recon"
	"github.com/fxamacker/cbor/v2"
)

// Tag numbers for the recon items CBOR has no native form for.
const (
	TagAttr   uint64 = 27000
	TagSlot   uint64 = 27001
	TagAbsent uint64 = 27002
)

// MaxNestedLevels bounds arrays and tags nested in one CBOR payload. Marshal
// and Unmarshal share it so anything written can be read back.
const MaxNestedLevels = 1024

var (
	ErrMalformedCBOR  = errors.New("codec: malformed cbor value")
	ErrNestingTooDeep = errors.New("codec: cbor nesting too deep")
)

// encMode uses Core Deterministic Encoding so equal values always produce
// identical bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		// Unregistered tags decode to cbor.Tag so attrs and slots survive.
		TagsMd:          cbor.TagsAllowed,
		MaxNestedLevels: MaxNestedLevels,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborCodec struct{}

func (cborCodec) Name() string { return NameCBOR }

// Marshal maps Record to an array, Attr and Slot to tagged [name, value]
// pairs, Extant to null and Absent to a tagged null.
func (cborCodec) Marshal(v recon.Value) ([]byte, error) {
	raw, err := toCBOR(v, 0)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(raw)
}

func (cborCodec) Unmarshal(data []byte) (recon.Value, error) {
	var raw any
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("codec: cbor decode: %w", err)
	}
	return fromCBOR(raw)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// nest reports the depth after entering n more arrays or tags below depth,
// counted the way the decoder counts them.
func nest(depth, n int) (int, error) {
	depth += n
	if depth > MaxNestedLevels {
		return depth, fmt.Errorf("%w: more than %d levels", ErrNestingTooDeep, MaxNestedLevels)
	}
	return depth, nil
}

func toCBOR(v recon.Value, depth int) (any, error) {
	switch x := v.(type) {
	case nil, recon.Absent:
		if _, err := nest(depth, 1); err != nil {
			return nil, err
		}
		return cbor.Tag{Number: TagAbsent, Content: nil}, nil
	case recon.Extant:
		return nil, nil
	case recon.Bool:
		return bool(x), nil
	case recon.Num:
		return float64(x), nil
	case recon.Text:
		return string(x), nil
	case recon.Record:
		inner, err := nest(depth, 1)
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, x.Len())
		for _, it := range x.All() {
			raw, err := itemToCBOR(it, inner)
			if err != nil {
				return nil, err
			}
			items = append(items, raw)
		}
		return items, nil
	default:
		return nil, nil
	}
}

func itemToCBOR(it recon.Item, depth int) (any, error) {
	switch x := it.(type) {
	case recon.Attr:
		// tag plus its [name, value] array
		inner, err := nest(depth, 2)
		if err != nil {
			return nil, err
		}
		val, err := toCBOR(x.Value, inner)
		if err != nil {
			return nil, err
		}
		return cbor.Tag{Number: TagAttr, Content: []any{x.Name, val}}, nil
	case recon.Slot:
		inner, err := nest(depth, 2)
		if err != nil {
			return nil, err
		}
		key, err := toCBOR(x.Key, inner)
		if err != nil {
			return nil, err
		}
		val, err := toCBOR(x.Value, inner)
		if err != nil {
			return nil, err
		}
		return cbor.Tag{Number: TagSlot, Content: []any{key, val}}, nil
	case recon.Value:
		return toCBOR(x, depth)
	default:
		return nil, nil
	}
}

func fromCBOR(raw any) (recon.Value, error) {
	switch x := raw.(type) {
	case nil:
		return recon.Extant{}, nil
	case bool:
		return recon.Bool(x), nil
	case uint64:
		return recon.Num(float64(x)), nil
	case int64:
		return recon.Num(float64(x)), nil
	case float64:
		return recon.Num(x), nil
	case float32:
		return recon.Num(float64(x)), nil
	case string:
		return recon.Text(x), nil
	case []byte:
		return recon.Text(string(x)), nil
	case []any:
		var b recon.Builder
		for _, elem := range x {
			it, err := itemFromCBOR(elem)
			if err != nil {
				return nil, err
			}
			b.Item(it)
		}
		return b.Record(), nil
	case cbor.Tag:
		if x.Number == TagAbsent {
			return recon.Absent{}, nil
		}
		return nil, fmt.Errorf("%w: tag %d outside a record", ErrMalformedCBOR, x.Number)
	default:
		return nil, fmt.Errorf("%w: unsupported %T", ErrMalformedCBOR, raw)
	}
}

func itemFromCBOR(raw any) (recon.Item, error) {
	tag, ok := raw.(cbor.Tag)
	if !ok || tag.Number == TagAbsent {
		return fromCBOR(raw)
	}
	pair, ok := tag.Content.([]any)
	if !ok || len(pair) != 2 {
		return nil, fmt.Errorf("%w: tag %d content is not a pair", ErrMalformedCBOR, tag.Number)
	}
	switch tag.Number {
	case TagAttr:
		name, ok := pair[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: attr name is %T", ErrMalformedCBOR, pair[0])
		}
		val, err := fromCBOR(pair[1])
		if err != nil {
			return nil, err
		}
		return recon.Attr{Name: name, Value: val}, nil
	case TagSlot:
		key, err := fromCBOR(pair[0])
		if err != nil {
			return nil, err
		}
		val, err := fromCBOR(pair[1])
		if err != nil {
			return nil, err
		}
		return recon.Slot{Key: key, Value: val}, nil
	default:
		return nil, fmt.Errorf("%w: unknown tag %d", ErrMalformedCBOR, tag.Number)
	}
}

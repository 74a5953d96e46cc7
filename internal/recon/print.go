package recon

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Stringify renders v in canonical form: no optional whitespace, leading
// attributes written `@name(...)`, remaining record items in braces, and
// text unquoted only when it is a plain identifier.
func Stringify(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil, Absent, Extant:
	case Bool:
		if x {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Num:
		sb.WriteString(formatNum(float64(x)))
	case Text:
		writeText(sb, string(x))
	case Record:
		writeRecord(sb, x)
	}
}

func writeRecord(sb *strings.Builder, r Record) {
	n := 0
	for n < len(r.items) {
		a, ok := r.items[n].(Attr)
		if !ok {
			break
		}
		writeAttr(sb, a)
		n++
	}
	if n > 0 && n == len(r.items) {
		return
	}
	sb.WriteByte('{')
	writeItems(sb, r.items[n:])
	sb.WriteByte('}')
}

func writeAttr(sb *strings.Builder, a Attr) {
	sb.WriteByte('@')
	if isIdent(a.Name) {
		sb.WriteString(a.Name)
	} else {
		writeQuoted(sb, a.Name)
	}
	switch v := a.Value.(type) {
	case nil, Extant:
		return
	case Record:
		sb.WriteByte('(')
		if len(v.items) == 1 {
			if _, bare := v.items[0].(Value); bare {
				// a lone bare value inside parens would read back unwrapped
				writeRecord(sb, v)
				sb.WriteByte(')')
				return
			}
		}
		if len(v.items) == 0 {
			sb.WriteString("{}")
		}
		writeItems(sb, v.items)
		sb.WriteByte(')')
	default:
		sb.WriteByte('(')
		writeValue(sb, v)
		sb.WriteByte(')')
	}
}

func writeItems(sb *strings.Builder, items []Item) {
	for i, it := range items {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeItem(sb, it)
	}
}

func writeItem(sb *strings.Builder, it Item) {
	switch x := it.(type) {
	case Attr:
		writeAttr(sb, x)
	case Slot:
		writeValue(sb, x.Key)
		sb.WriteByte(':')
		writeValue(sb, x.Value)
	case Value:
		writeValue(sb, x)
	}
}

func writeText(sb *strings.Builder, s string) {
	if isIdent(s) {
		sb.WriteString(s)
		return
	}
	writeQuoted(sb, s)
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u`)
				h := strconv.FormatInt(int64(r), 16)
				sb.WriteString(strings.Repeat("0", 4-len(h)))
				sb.WriteString(h)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}

func isIdent(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return false
	}
	first, size := utf8.DecodeRuneInString(s)
	if !isIdentStart(first) {
		return false
	}
	for _, r := range s[size:] {
		if !isIdentChar(r) {
			return false
		}
	}
	return true
}

func formatNum(f float64) string {
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

package recon

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrSyntax is matched by every *ParseError.
var ErrSyntax = errors.New("recon: syntax error")

// ParseError reports malformed text and the byte offset where parsing stopped.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("recon: %s at offset %d", e.Reason, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}

// Parse reads one document. An empty document is Absent; a document holding
// a single bare value is that value; anything else is a Record of the
// top-level items.
func Parse(src string) (Value, error) {
	p := &parser{src: src}
	items, err := p.block(0)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.fail("unexpected %q", p.peek())
	}
	return blockValue(items, Absent{}), nil
}

// MustParse is Parse for literals known to be well formed. It panics on error.
func MustParse(src string) Value {
	v, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return v
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) next() rune {
	r, n := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += n
	return r
}

func (p *parser) fail(format string, args ...any) *ParseError {
	return &ParseError{Offset: p.pos, Reason: fmt.Sprintf(format, args...)}
}

// skipInline skips spaces that do not separate items.
func (p *parser) skipInline() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r':
			p.pos++
		default:
			return
		}
	}
}

// skipSpace skips all whitespace, newlines included.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

// block parses items up to closer. A zero closer reads to end of input.
// Items are separated by ',', ';' or a newline.
func (p *parser) block(closer byte) ([]Item, error) {
	var items []Item
	for {
		p.skipSpace()
		if p.eof() || (closer != 0 && p.src[p.pos] == closer) {
			return items, nil
		}
		it, err := p.item(closer)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		p.skipInline()
		if p.eof() {
			return items, nil
		}
		switch c := p.src[p.pos]; {
		case c == ',' || c == ';' || c == '\n':
			p.pos++
		case closer != 0 && c == closer:
			return items, nil
		default:
			return nil, p.fail("expected separator, found %q", p.peek())
		}
	}
}

func (p *parser) item(closer byte) (Item, error) {
	if p.src[p.pos] == ':' {
		return nil, p.fail("slot without key")
	}
	key, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipInline()
	if p.eof() || p.src[p.pos] != ':' {
		return key, nil
	}
	p.pos++
	p.skipInline()
	if p.eof() || p.atItemEnd(closer) {
		return Slot{Key: key, Value: Extant{}}, nil
	}
	val, err := p.value()
	if err != nil {
		return nil, err
	}
	return Slot{Key: key, Value: val}, nil
}

func (p *parser) atItemEnd(closer byte) bool {
	switch c := p.src[p.pos]; c {
	case ',', ';', '\n':
		return true
	default:
		return closer != 0 && c == closer
	}
}

func (p *parser) value() (Value, error) {
	p.skipInline()
	if p.eof() {
		return nil, p.fail("unexpected end of input")
	}
	if p.src[p.pos] == '@' {
		return p.attributed()
	}
	return p.primary()
}

// attributed parses a run of attributes optionally followed by a block or
// a primary value, yielding one Record.
func (p *parser) attributed() (Value, error) {
	var b Builder
	for {
		if p.eof() || p.src[p.pos] != '@' {
			break
		}
		attr, err := p.attr()
		if err != nil {
			return nil, err
		}
		b.Item(attr)
		p.skipInline()
	}
	if p.eof() {
		return b.Record(), nil
	}
	switch c := p.peek(); {
	case c == '{':
		p.pos++
		items, err := p.block('}')
		if err != nil {
			return nil, err
		}
		if err := p.expect('}'); err != nil {
			return nil, err
		}
		b.Items(items...)
	case startsPrimary(c):
		v, err := p.primary()
		if err != nil {
			return nil, err
		}
		b.Item(v)
	}
	return b.Record(), nil
}

func (p *parser) attr() (Attr, error) {
	p.pos++ // '@'
	if p.eof() {
		return Attr{}, p.fail("missing attribute name")
	}
	var name string
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		s, err := p.str()
		if err != nil {
			return Attr{}, err
		}
		name = s
	case isIdentStart(c):
		name = p.ident()
	default:
		return Attr{}, p.fail("invalid attribute name %q", c)
	}
	if p.eof() || p.src[p.pos] != '(' {
		return Attr{Name: name, Value: Extant{}}, nil
	}
	p.pos++
	items, err := p.block(')')
	if err != nil {
		return Attr{}, err
	}
	if err := p.expect(')'); err != nil {
		return Attr{}, err
	}
	return Attr{Name: name, Value: blockValue(items, Extant{})}, nil
}

func (p *parser) primary() (Value, error) {
	switch c := p.peek(); {
	case c == '{':
		p.pos++
		items, err := p.block('}')
		if err != nil {
			return nil, err
		}
		if err := p.expect('}'); err != nil {
			return nil, err
		}
		return NewRecord(items...), nil
	case c == '"' || c == '\'':
		s, err := p.str()
		if err != nil {
			return nil, err
		}
		return Text(s), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return p.number()
	case isIdentStart(c):
		switch id := p.ident(); id {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		default:
			return Text(id), nil
		}
	default:
		return nil, p.fail("unexpected %q", c)
	}
}

func (p *parser) expect(c byte) error {
	if p.eof() {
		return p.fail("expected %q, found end of input", c)
	}
	if p.src[p.pos] != c {
		return p.fail("expected %q, found %q", c, p.peek())
	}
	p.pos++
	return nil
}

func (p *parser) ident() string {
	start := p.pos
	p.next()
	for !p.eof() && isIdentChar(p.peek()) {
		p.next()
	}
	return p.src[start:p.pos]
}

func (p *parser) number() (Value, error) {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	if !p.digits() {
		return nil, p.fail("malformed number")
	}
	if !p.eof() && p.src[p.pos] == '.' {
		p.pos++
		if !p.digits() {
			return nil, p.fail("malformed number")
		}
	}
	if !p.eof() && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		p.pos++
		if !p.eof() && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		if !p.digits() {
			return nil, p.fail("malformed exponent")
		}
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, &ParseError{Offset: start, Reason: "number out of range"}
	}
	return Num(f), nil
}

func (p *parser) digits() bool {
	start := p.pos
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	return p.pos > start
}

func (p *parser) str() (string, error) {
	quote := p.src[p.pos]
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.fail("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			p.pos++
			if p.eof() {
				return "", p.fail("unterminated escape")
			}
			r, err := p.escape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(p.next())
		}
	}
}

func (p *parser) escape() (rune, error) {
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '"', '\'', '\\', '/', '@', '{', '}', '(', ')', '[', ']', ':', ',', ';', '#':
		return rune(c), nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		if p.pos+4 > len(p.src) {
			return 0, p.fail("short unicode escape")
		}
		n, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
		if err != nil {
			return 0, p.fail("invalid unicode escape")
		}
		p.pos += 4
		return rune(n), nil
	default:
		return 0, p.fail("invalid escape %q", c)
	}
}

// blockValue collapses parsed block items: none yields empty, a single bare
// value yields that value, anything else is a Record. Inside attribute
// parens a lone {...} is therefore the attribute's record itself, so
// @a({x,y}) and @a(x,y) are the same value; the printer relies on this to
// write a record holding one bare value as @a({x}).
func blockValue(items []Item, empty Value) Value {
	switch len(items) {
	case 0:
		return empty
	case 1:
		if v, ok := items[0].(Value); ok {
			return v
		}
	}
	return NewRecord(items...)
}

func startsPrimary(c rune) bool {
	return c == '{' || c == '"' || c == '\'' || c == '-' || (c >= '0' && c <= '9') || isIdentStart(c)
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentChar(c rune) bool {
	return c == '_' || c == '-' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

package recon

import (
	"iter"
	"slices"
)

// Item is one entry of a Record: a bare Value, an Attr or a Slot.
type Item interface {
	item()
}

// Value is a node of the structured-value tree. Every Value is also a bare Item.
type Value interface {
	Item
	value()
}

// Extant is a present value with no content, e.g. the payload of `@tag`.
type Extant struct{}

// Absent marks the lack of a value.
type Absent struct{}

// Bool is a boolean leaf.
type Bool bool

// Num is a numeric leaf.
type Num float64

// Text is a textual leaf.
type Text string

// Record is an ordered sequence of items.
type Record struct {
	items []Item
}

// Attr is a tagged item, written `@name(value)`.
type Attr struct {
	Name  string
	Value Value
}

// Slot is a keyed item, written `key:value`.
type Slot struct {
	Key   Value
	Value Value
}

func (Extant) item() {}
func (Absent) item() {}
func (Bool) item()   {}
func (Num) item()    {}
func (Text) item()   {}
func (Record) item() {}
func (Attr) item()   {}
func (Slot) item()   {}

func (Extant) value() {}
func (Absent) value() {}
func (Bool) value()   {}
func (Num) value()    {}
func (Text) value()   {}
func (Record) value() {}

// NewRecord returns a record holding a copy of items.
func NewRecord(items ...Item) Record {
	if len(items) == 0 {
		return Record{}
	}
	return Record{items: slices.Clone(items)}
}

// Len returns the number of items.
func (r Record) Len() int {
	return len(r.items)
}

// IsEmpty reports whether the record has no items.
func (r Record) IsEmpty() bool {
	return len(r.items) == 0
}

// At returns item i. It panics when i is out of range.
func (r Record) At(i int) Item {
	return r.items[i]
}

// Items returns a copy of the record's items.
func (r Record) Items() []Item {
	return slices.Clone(r.items)
}

// All iterates the record's items in order.
func (r Record) All() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		for i, it := range r.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// Get returns the value of the first slot keyed by key.
func (r Record) Get(key string) (Value, bool) {
	for _, it := range r.items {
		s, ok := it.(Slot)
		if !ok {
			continue
		}
		if k, ok := s.Key.(Text); ok && string(k) == key {
			return s.Value, true
		}
	}
	return nil, false
}

// Concat returns a new record holding r's items followed by items.
func (r Record) Concat(items ...Item) Record {
	out := make([]Item, 0, len(r.items)+len(items))
	out = append(out, r.items...)
	out = append(out, items...)
	return Record{items: out}
}

// Head returns the first item of v when v is a non-empty Record.
func Head(v Value) (Item, bool) {
	r, ok := v.(Record)
	if !ok || r.IsEmpty() {
		return nil, false
	}
	return r.items[0], true
}

// Tail returns every item of v after the first. Non-records and
// single-item records yield the empty record.
func Tail(v Value) Record {
	r, ok := v.(Record)
	if !ok || len(r.items) < 2 {
		return Record{}
	}
	return Record{items: slices.Clone(r.items[1:])}
}

// Tag returns the name of v's leading attribute, or "" when v does not
// start with one.
func Tag(v Value) string {
	head, ok := Head(v)
	if !ok {
		return ""
	}
	if a, ok := head.(Attr); ok {
		return a.Name
	}
	return ""
}

// IsDefined reports whether v carries content (not nil, Absent or Extant).
func IsDefined(v Value) bool {
	switch v.(type) {
	case nil, Absent, Extant:
		return false
	default:
		return true
	}
}

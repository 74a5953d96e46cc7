package recon

import "slices"

// Builder accumulates record items. The zero value is ready to use.
type Builder struct {
	items []Item
}

// Attr appends an attribute. A nil value is stored as Extant.
func (b *Builder) Attr(name string, v Value) *Builder {
	if v == nil {
		v = Extant{}
	}
	b.items = append(b.items, Attr{Name: name, Value: v})
	return b
}

// Slot appends a text-keyed slot. A nil value is stored as Extant.
func (b *Builder) Slot(key string, v Value) *Builder {
	if v == nil {
		v = Extant{}
	}
	b.items = append(b.items, Slot{Key: Text(key), Value: v})
	return b
}

// Item appends one item.
func (b *Builder) Item(it Item) *Builder {
	b.items = append(b.items, it)
	return b
}

// Items appends items in order.
func (b *Builder) Items(items ...Item) *Builder {
	b.items = append(b.items, items...)
	return b
}

// Len returns the number of items appended so far.
func (b *Builder) Len() int {
	return len(b.items)
}

// Record returns the accumulated items as a record. The builder may keep
// appending without affecting the returned record.
func (b *Builder) Record() Record {
	if len(b.items) == 0 {
		return Record{}
	}
	return Record{items: slices.Clone(b.items)}
}

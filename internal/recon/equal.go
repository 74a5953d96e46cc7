package recon

// Equal reports whether a and b are structurally equal. A nil Value is
// treated as Absent.
func Equal(a, b Value) bool {
	if a == nil {
		a = Absent{}
	}
	if b == nil {
		b = Absent{}
	}
	switch x := a.(type) {
	case Extant:
		_, ok := b.(Extant)
		return ok
	case Absent:
		_, ok := b.(Absent)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Num:
		y, ok := b.(Num)
		return ok && x == y
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case Record:
		y, ok := b.(Record)
		if !ok || len(x.items) != len(y.items) {
			return false
		}
		for i := range x.items {
			if !ItemEqual(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ItemEqual reports whether two record items are structurally equal.
func ItemEqual(a, b Item) bool {
	switch x := a.(type) {
	case Attr:
		y, ok := b.(Attr)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value)
	case Slot:
		y, ok := b.(Slot)
		return ok && Equal(x.Key, y.Key) && Equal(x.Value, y.Value)
	case Value:
		y, ok := b.(Value)
		return ok && Equal(x, y)
	default:
		return a == nil && b == nil
	}
}

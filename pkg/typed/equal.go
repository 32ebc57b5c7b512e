package typed

import "slices"

// Equals reports whether two types are structurally equal: they have the same
// primitive (or both none), the same dimensions in the same order and the same
// attributes in the same order. Objects with the same fields in a different
// order are not equal.
func Equals(a Type, b Type) bool {
	if !slices.Equal(a.Dimensions(), b.Dimensions()) {
		return false
	}

	ap, aok := a.Primitive()
	bp, bok := b.Primitive()
	if aok != bok || ap != bp {
		return false
	}

	aa := a.Base().attributes
	ba := b.Base().attributes
	if len(aa) != len(ba) {
		return false
	}

	for i := range aa {
		if aa[i].ID != ba[i].ID || !Equals(aa[i].Type, ba[i].Type) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of `t` that shares no memory with it.
func Clone(t Type) Type {
	clone := Type{
		kind:      t.kind,
		primitive: t.primitive,
		length:    t.length,
	}

	if t.elem != nil {
		elem := Clone(*t.elem)
		clone.elem = &elem
	}

	if t.attributes != nil {
		clone.attributes = make([]Attribute, len(t.attributes))

		for i, a := range t.attributes {
			clone.attributes[i] = Attribute{
				ID:   a.ID,
				Type: Clone(a.Type),
			}
		}
	}

	return clone
}

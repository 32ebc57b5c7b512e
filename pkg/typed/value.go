package typed

// DefaultValue returns the zero value of a type as a plain Go value:
//
//   - any array: an empty `[]any`, regardless of the number of dimensions
//   - boolean: `false`
//   - number: `float64(0)`
//   - string: `""`
//   - unknown: `nil`
//   - object: `map[string]any` with the default value of every attribute
//
// Types without a base shape and objects without attributes return `nil`.
func DefaultValue(t Type) any {
	switch t.kind {
	case KindArray:
		return []any{}
	case KindPrimitive:
		return defaultPrimitiveValue(t.primitive)
	case KindObject:
		if len(t.attributes) == 0 {
			return nil
		}

		obj := make(map[string]any, len(t.attributes))
		for _, a := range t.attributes {
			obj[a.ID] = DefaultValue(a.Type)
		}

		return obj
	}

	return nil
}

func defaultPrimitiveValue(p Primitive) any {
	switch p {
	case PrimitiveBoolean:
		return false
	case PrimitiveNumber:
		return float64(0)
	case PrimitiveString:
		return ""
	}

	return nil
}

package typed

import (
	"strconv"
	"strings"
)

// Format serializes `t` into a type-string. Primitives are always written
// with their one letter token, so `Format(Parse("boolean"))` is `b`. Array
// dimensions are written in `Dimensions` order, outermost first. The parser
// reads the last bracket group as the outermost dimension, so a type with
// differing lengths comes back with its dimensions reversed:
// `Format(Parse("n[2][3]"))` is `n[3][2]`. Types with neither a primitive nor
// attributes, including the empty object, are written as `unknown`.
func Format(t Type) string {
	var s strings.Builder
	writeType(&s, t)
	return s.String()
}

func writeType(s *strings.Builder, t Type) {
	base := t.Base()

	switch {
	case base.kind == KindObject && len(base.attributes) > 0:
		writeAttributes(s, base.attributes)
	case base.kind == KindPrimitive && len(base.primitive.Token()) != 0:
		s.WriteString(base.primitive.Token())
	default:
		s.WriteString(string(PrimitiveUnknown))
	}

	for _, d := range t.Dimensions() {
		s.WriteByte('[')
		if d != DynamicLength {
			s.WriteString(strconv.Itoa(d))
		}
		s.WriteByte(']')
	}
}

func writeAttributes(s *strings.Builder, attrs []Attribute) {
	s.WriteByte('(')

	for i, a := range attrs {
		if i != 0 {
			s.WriteString(", ")
		}

		s.WriteString(a.ID)
		s.WriteByte(':')
		writeType(s, a.Type)
	}

	s.WriteByte(')')
}

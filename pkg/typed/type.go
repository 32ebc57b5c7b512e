// Package typed implements the attribute type-description language: a compact
// textual encoding of primitives, fixed and dynamic arrays and nested composite
// types such as `(node:s, control:n[3][2])[]`.
//
// All functions in this package are pure and safe for concurrent use. A `Type`
// is an immutable value; accessors that return slices return copies.
package typed

// Kind identifies the shape of a `Type` node.
type Kind uint8

const (
	// KindNone is the kind of the zero `Type`, which has no base shape.
	KindNone Kind = iota
	KindPrimitive
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}

	return "none"
}

// DynamicLength is the array length of arrays without a fixed length,
// written as `[]` in a type string.
const DynamicLength = -1

// Type is a parsed type-string.
//
// Internally a Type is a sum of a primitive, an object with ordered attributes
// and an array wrapping an element type. The flattened view used by the type
// grammar (a list of dimensions around a single base shape) is available
// through `Dimensions`, `Attributes` and `Primitive`.
type Type struct {
	kind       Kind
	primitive  Primitive
	attributes []Attribute
	elem       *Type
	length     int
}

// Attribute is a named field of an object type. The order of attributes
// inside an object is significant.
type Attribute struct {
	ID   string
	Type Type
}

func PrimitiveType(p Primitive) Type {
	return Type{kind: KindPrimitive, primitive: p}
}

// Unknown returns the type every unrecognized type-string parses into.
func Unknown() Type {
	return PrimitiveType(PrimitiveUnknown)
}

// ObjectType returns an object type with the given attributes. The attribute
// slice is copied.
func ObjectType(attributes ...Attribute) Type {
	attrs := make([]Attribute, len(attributes))
	copy(attrs, attributes)

	return Type{kind: KindObject, attributes: attrs}
}

// ArrayType wraps `elem` in one array dimension. A negative `length` yields a
// dynamic array.
func ArrayType(elem Type, length int) Type {
	if length < 0 {
		length = DynamicLength
	}

	e := elem
	return Type{kind: KindArray, elem: &e, length: length}
}

// FromParts builds a Type from its flattened representation. `dims` lists
// the array lengths outermost first. When both `attrs` and `prim` are given
// the attributes win, the same way `Format` treats such a value.
func FromParts(dims []int, attrs []Attribute, prim *Primitive) Type {
	var t Type

	if len(attrs) > 0 {
		t = ObjectType(attrs...)
	} else if prim != nil {
		t = PrimitiveType(*prim)
	}

	for i := len(dims) - 1; i >= 0; i -= 1 {
		t = ArrayType(t, dims[i])
	}

	return t
}

func (t Type) Kind() Kind {
	return t.kind
}

func (t Type) IsArray() bool {
	return t.kind == KindArray
}

func (t Type) IsObject() bool {
	return t.kind == KindObject
}

// Elem returns the element type of an array. For other kinds it returns the
// zero Type and false.
func (t Type) Elem() (Type, bool) {
	if t.kind != KindArray {
		return Type{}, false
	}

	return *t.elem, true
}

// Length returns the length of the outermost array dimension, or
// `DynamicLength`. It is 0 for non-array types.
func (t Type) Length() int {
	if t.kind != KindArray {
		return 0
	}

	return t.length
}

// Base returns the type with all array dimensions stripped.
func (t Type) Base() Type {
	for t.kind == KindArray {
		t = *t.elem
	}

	return t
}

// Dimensions returns the array lengths wrapped around the base shape,
// outermost first. `DynamicLength` marks a dynamic dimension. An empty
// slice means the type is not an array.
func (t Type) Dimensions() []int {
	dims := make([]int, 0)

	for t.kind == KindArray {
		dims = append(dims, t.length)
		t = *t.elem
	}

	return dims
}

// Attributes returns a copy of the attributes of the base shape. It is empty
// unless the base shape is an object.
func (t Type) Attributes() []Attribute {
	base := t.Base()

	attrs := make([]Attribute, len(base.attributes))
	copy(attrs, base.attributes)

	return attrs
}

// Primitive returns the primitive of the base shape. The boolean is false when
// the base shape is not a primitive.
func (t Type) Primitive() (Primitive, bool) {
	base := t.Base()

	if base.kind != KindPrimitive {
		return "", false
	}

	return base.primitive, true
}

func (t Type) String() string {
	return Format(t)
}

// Equal reports whether `t` and `other` are structurally equal.
func (t Type) Equal(other Type) bool {
	return Equals(t, other)
}

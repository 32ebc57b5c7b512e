package typed

import "strings"

type Primitive string

const (
	PrimitiveBoolean Primitive = "boolean"
	PrimitiveNumber  Primitive = "number"
	PrimitiveString  Primitive = "string"
	PrimitiveUnknown Primitive = "unknown"
)

// primitiveTokens maps lower case tokens to primitives. Anything missing from
// this map is `PrimitiveUnknown`.
var primitiveTokens = map[string]Primitive{
	"b":       PrimitiveBoolean,
	"bool":    PrimitiveBoolean,
	"boolean": PrimitiveBoolean,
	"n":       PrimitiveNumber,
	"num":     PrimitiveNumber,
	"number":  PrimitiveNumber,
	"s":       PrimitiveString,
	"str":     PrimitiveString,
	"string":  PrimitiveString,
}

// LookupPrimitive returns the primitive named by `token`. The lookup is case
// insensitive and never fails: unrecognized tokens, including the empty
// string, map to `PrimitiveUnknown`.
func LookupPrimitive(token string) Primitive {
	if p, ok := primitiveTokens[strings.ToLower(token)]; ok {
		return p
	}

	return PrimitiveUnknown
}

// Token returns the canonical one letter token of the primitive. Unknown
// primitives have no token and return an empty string.
func (p Primitive) Token() string {
	switch p {
	case PrimitiveBoolean:
		return "b"
	case PrimitiveNumber:
		return "n"
	case PrimitiveString:
		return "s"
	}

	return ""
}

func (p Primitive) String() string {
	return string(p)
}

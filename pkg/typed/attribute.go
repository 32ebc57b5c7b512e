package typed

import "strings"

// ParseAttribute parses an attribute string of the form `<id>:<type>`. The
// string is split on the first colon. Without a colon the id is empty and the
// whole string is the type.
func ParseAttribute(s string) Attribute {
	colon := strings.IndexByte(s, ':')
	if colon == -1 {
		return Attribute{Type: Parse(s)}
	}

	return Attribute{
		ID:   strings.TrimSpace(s[:colon]),
		Type: Parse(s[colon+1:]),
	}
}

// String returns the attribute as `<id>:<type>`. The colon is written even
// when the id is empty so that types containing colons parse back correctly.
func (a Attribute) String() string {
	return a.ID + ":" + Format(a.Type)
}

// Equal reports whether both attributes have the same id and equal types.
func (a Attribute) Equal(other Attribute) bool {
	return a.ID == other.ID && Equals(a.Type, other.Type)
}

// Clone returns a deep copy of the attribute.
func (a Attribute) Clone() Attribute {
	return Attribute{
		ID:   a.ID,
		Type: Clone(a.Type),
	}
}

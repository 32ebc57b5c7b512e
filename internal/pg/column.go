package pg

import "github.com/popingalex/flowgram.ai-sub002/pkg/typed"

// Column represents a table column.
type Column struct {
	Name string
	Type DataType
}

// Attribute returns the column as an attribute of its table's type.
func (c *Column) Attribute() typed.Attribute {
	return typed.Attribute{
		ID:   c.Name,
		Type: c.Type.Typed(),
	}
}

func (c *Column) Clone() *Column {
	return &Column{
		Name: c.Name,
		Type: c.Type.Clone(),
	}
}

func (c *Column) writeString(s *stringBuilder) {
	s.WriteString(c.Name)
	s.WriteString(" ")
	c.Type.writeString(s)
}

func (c *Column) String() string {
	var s stringBuilder
	c.writeString(&s)
	return s.String()
}

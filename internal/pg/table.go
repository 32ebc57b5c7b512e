package pg

import (
	"slices"

	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
)

// Table is a table created by migrations. Columns are kept in creation order.
type Table struct {
	Name          TableName
	Columns       []*Column
	ColumnsByName map[string]*Column
}

// TableName is a table name with an optional schema.
type TableName struct {
	Name   string
	Schema string
}

func NewTable(name TableName) *Table {
	return &Table{
		Name:          name,
		Columns:       make([]*Column, 0),
		ColumnsByName: make(map[string]*Column),
	}
}

func (t *Table) AddColumn(col *Column) {
	t.ColumnsByName[col.Name] = col
	t.Columns = append(t.Columns, col)
}

func (t *Table) RemoveColumn(name string) {
	delete(t.ColumnsByName, name)
	t.Columns = slices.DeleteFunc(t.Columns, func(c *Column) bool { return c.Name == name })
}

// RenameColumn renames an existing column in place.
func (t *Table) RenameColumn(name string, newName string) {
	col := t.ColumnsByName[name]

	delete(t.ColumnsByName, name)
	col.Name = newName
	t.ColumnsByName[newName] = col
}

// Type returns the table as an object type with one attribute per column,
// in column order.
func (t *Table) Type() typed.Type {
	attrs := make([]typed.Attribute, len(t.Columns))

	for i, c := range t.Columns {
		attrs[i] = c.Attribute()
	}

	return typed.ObjectType(attrs...)
}

func (t *Table) Clone() *Table {
	clone := NewTable(t.Name)

	for _, c := range t.Columns {
		clone.AddColumn(c.Clone())
	}

	return clone
}

func (t *Table) String() string {
	var s stringBuilder

	t.Name.writeString(&s)
	s.WriteString(" (")
	s.WriteNewLine()
	s.Indent()

	for i, c := range t.Columns {
		c.writeString(&s)

		if i != len(t.Columns)-1 {
			s.WriteByte(',')
		}

		s.WriteNewLine()
	}

	s.DeIndent()
	s.WriteByte(')')

	return s.String()
}

func NewTableName(name string, schema string) TableName {
	return TableName{Name: name, Schema: schema}
}

// Matches reports whether `name` is the qualified name of the table or, for
// unqualified names, its bare name.
func (n TableName) Matches(name string) bool {
	return n.String() == name || n.Name == name
}

func (n TableName) writeString(s *stringBuilder) {
	if len(n.Schema) != 0 {
		s.WriteString(n.Schema)
		s.WriteByte('.')
	}

	s.WriteString(n.Name)
}

func (n TableName) String() string {
	var s stringBuilder
	n.writeString(&s)
	return s.String()
}

package match

import (
	"github.com/popingalex/flowgram.ai-sub002/internal/pg"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
)

// DoesTablePopulateType checks if `table` has a compatible column for every
// attribute of the object type `t`. Columns are matched to attributes by
// their normalized names and extra columns are allowed. Returns a
// `MatchError` in case the table doesn't populate the type.
func DoesTablePopulateType(table pg.Table, t typed.Type) error {
	path := &SchemaPath{Type: t}

	if !t.IsObject() {
		return matchErrorf(path, `type "%s" is not an object`, typed.Format(t))
	}

	for _, a := range t.Attributes() {
		path.Path = append(path.Path, a.ID)
		path.Type = a.Type

		if err := doesColumnPopulateAttribute(table, a, path); err != nil {
			return err
		}

		path.Path = path.Path[:len(path.Path)-1]
	}

	return nil
}

func doesColumnPopulateAttribute(table pg.Table, a typed.Attribute, path *SchemaPath) error {
	column := findColumn(table, a.ID)
	if column == nil {
		return matchErrorf(path.clone(), `column missing for attribute %s`, path.GoString())
	}

	// Json columns can hold any value.
	if column.Type.Json() {
		return nil
	}

	if a.Type.Base().IsObject() {
		return matchErrorf(path.clone(), `invalid column type "%s" for an object attribute %s`, column.Type.String(), path.GoString())
	}

	dims := len(a.Type.Dimensions())
	if dims != len(column.Type.ArrayBounds) {
		return matchErrorf(
			path.clone(),
			`column "%s" has %d array dimensions but attribute %s has %d`,
			column.Name,
			len(column.Type.ArrayBounds),
			path.GoString(),
			dims,
		)
	}

	want, ok := a.Type.Primitive()
	got := column.Type.Primitive()

	if !ok || want == typed.PrimitiveUnknown || got == typed.PrimitiveUnknown || want == got {
		return nil
	}

	return matchErrorf(path.clone(), `invalid column type "%s" for a %s attribute %s`, column.Type.String(), want, path.GoString())
}

func findColumn(table pg.Table, id string) *pg.Column {
	normID := Normalize(id)

	for _, c := range table.Columns {
		if Normalize(c.Name) == normID {
			return c
		}
	}

	return nil
}

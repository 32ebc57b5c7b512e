package pg

import (
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
)

const (
	DataTypeJson  = "json"
	DataTypeJsonb = "jsonb"
)

// typeMap resolves postgres type names to OIDs. Lookups only read the map.
var typeMap = pgtype.NewMap()

// typeAliases maps type names postgres accepts but pgtype doesn't register
// to their canonical names. Most of these are already normalized by the
// parser to `pg_catalog.<name>`, the serial types are not.
var typeAliases = map[string]string{
	"smallint":                    "int2",
	"int":                         "int4",
	"integer":                     "int4",
	"bigint":                      "int8",
	"smallserial":                 "int2",
	"serial2":                     "int2",
	"serial":                      "int4",
	"serial4":                     "int4",
	"bigserial":                   "int8",
	"serial8":                     "int8",
	"real":                        "float4",
	"double precision":            "float8",
	"decimal":                     "numeric",
	"boolean":                     "bool",
	"character varying":           "varchar",
	"character":                   "bpchar",
	"char":                        "bpchar",
	"time without time zone":      "time",
	"timestamp without time zone": "timestamp",
	"timestamp with time zone":    "timestamptz",
}

// DataType represents a postgres column type.
type DataType struct {
	Name    string
	Schema  *string
	NotNull bool

	// ArrayBounds holds one entry per array dimension in the order they
	// are written, -1 for dimensions without a size. For example `INT[3][]`
	// produces `[3, -1]`.
	ArrayBounds []int
}

func (d *DataType) Json() bool {
	return d.Name == DataTypeJson || d.Name == DataTypeJsonb
}

func (d *DataType) IsArray() bool {
	return len(d.ArrayBounds) > 0
}

// Primitive classifies the type's base name. Types that don't map to a
// boolean, number or string, such as json, are unknown.
func (d *DataType) Primitive() typed.Primitive {
	name := d.Name
	if alias, ok := typeAliases[name]; ok {
		name = alias
	}

	t, ok := typeMap.TypeForName(name)
	if !ok {
		return typed.PrimitiveUnknown
	}

	switch t.OID {
	case pgtype.BoolOID:
		return typed.PrimitiveBoolean
	case pgtype.Int2OID, pgtype.Int4OID, pgtype.Int8OID, pgtype.Float4OID, pgtype.Float8OID, pgtype.NumericOID:
		return typed.PrimitiveNumber
	case pgtype.TextOID, pgtype.VarcharOID, pgtype.BPCharOID, pgtype.NameOID, pgtype.UUIDOID,
		pgtype.DateOID, pgtype.TimeOID, pgtype.TimestampOID, pgtype.TimestamptzOID, pgtype.IntervalOID:
		return typed.PrimitiveString
	}

	return typed.PrimitiveUnknown
}

// Typed returns the column type as a type. Array bounds are applied in the
// order they are written, so `INT[3][2]` has the same type as `n[3][2]`.
func (d *DataType) Typed() typed.Type {
	t := typed.PrimitiveType(d.Primitive())

	for _, b := range d.ArrayBounds {
		t = typed.ArrayType(t, b)
	}

	return t
}

func (d *DataType) Clone() DataType {
	clone := DataType{
		Name:    d.Name,
		NotNull: d.NotNull,
		Schema:  d.Schema,
	}

	if d.ArrayBounds != nil {
		clone.ArrayBounds = make([]int, len(d.ArrayBounds))
		copy(clone.ArrayBounds, d.ArrayBounds)
	}

	return clone
}

func (d *DataType) writeString(s *stringBuilder) {
	if d.Schema != nil {
		s.WriteString(*d.Schema)
		s.WriteByte('.')
	}

	s.WriteString(d.Name)

	for _, b := range d.ArrayBounds {
		s.WriteByte('[')
		if b >= 0 {
			s.WriteString(strconv.Itoa(b))
		}
		s.WriteByte(']')
	}

	if d.NotNull {
		s.WriteString(" not null")
	}
}

func (d *DataType) String() string {
	var s stringBuilder
	d.writeString(&s)
	return s.String()
}

package pg

import (
	"testing"

	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
	assert "github.com/stretchr/testify/require"
)

const nodesMigration = `
-- +goose Up
CREATE TABLE nodes (
  id uuid PRIMARY KEY,
  name text NOT NULL,
  enabled boolean,
  weight double precision,
  position integer[3],
  control numeric[3][2],
  tags varchar(32)[],
  meta jsonb,
  seq bigserial
);

CREATE INDEX nodes_name ON nodes (name);

-- +goose Down
DROP TABLE nodes;
`

func TestMigrate(t *testing.T) {
	db := NewDB()
	assert.NoError(t, Migrate(db, nodesMigration))

	table := db.Table("nodes")
	assert.NotNil(t, table)
	assert.Len(t, table.Columns, 9)

	assert.True(t, table.ColumnsByName["id"].Type.NotNull)
	assert.True(t, table.ColumnsByName["name"].Type.NotNull)
	assert.False(t, table.ColumnsByName["enabled"].Type.NotNull)

	assert.Equal(t, []int{3}, table.ColumnsByName["position"].Type.ArrayBounds)
	assert.Equal(t, []int{3, 2}, table.ColumnsByName["control"].Type.ArrayBounds)
	assert.Equal(t, []int{-1}, table.ColumnsByName["tags"].Type.ArrayBounds)
	assert.True(t, table.ColumnsByName["meta"].Type.Json())

	assert.Equal(
		t,
		"(id:s, name:s, enabled:b, weight:n, position:n[3], control:n[2][3], tags:s[], meta:unknown, seq:n)",
		typed.Format(table.Type()),
	)
}

func TestMigrateAlterAndRename(t *testing.T) {
	db := NewDB()

	assert.NoError(t, Migrate(db, `
		CREATE TABLE edges (a int, b int, label text);
		ALTER TABLE edges ADD COLUMN weight real;
		ALTER TABLE edges DROP COLUMN label;
		ALTER TABLE edges ALTER COLUMN b TYPE text[];
		ALTER TABLE edges ALTER COLUMN a SET NOT NULL;
		ALTER TABLE edges RENAME COLUMN a TO source;
		ALTER TABLE edges RENAME TO links;
	`))

	assert.Nil(t, db.Table("edges"))

	links := db.Table("links")
	assert.NotNil(t, links)
	assert.True(t, links.ColumnsByName["source"].Type.NotNull)
	assert.Equal(t, "(source:n, b:s[], weight:n)", typed.Format(links.Type()))
}

func TestMigrateLikeAndDrop(t *testing.T) {
	db := NewDB()

	assert.NoError(t, Migrate(db, `
		CREATE TABLE base (id text, created timestamptz);
		CREATE TABLE copy (LIKE base, extra bool);
		DROP TABLE base;
		DROP TABLE IF EXISTS missing;
	`))

	assert.Nil(t, db.Table("base"))
	assert.Equal(t, "(id:s, created:s, extra:b)", typed.Format(db.Table("copy").Type()))
	assert.Len(t, db.Types(), 1)
}

func TestMigrateSchemaQualified(t *testing.T) {
	db := NewDB()
	assert.NoError(t, Migrate(db, `CREATE TABLE graph.nodes (id text);`))

	assert.NotNil(t, db.Table("graph.nodes"))
	assert.NotNil(t, db.Table("nodes"))
	assert.Contains(t, db.Types(), "graph.nodes")
}

func TestMigrateErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		err  string
	}{
		{"syntax", "CREATE TABLE (", "invalid SQL"},
		{"unknown alter", "ALTER TABLE nope ADD COLUMN a int;", `table "nope" hasn't been created`},
		{"unknown drop", "DROP TABLE nope;", `unknown table "nope"`},
		{"unknown column", "CREATE TABLE a (x int); ALTER TABLE a DROP COLUMN y;", `could not find column "y" in table "a"`},
		{"unknown like", "CREATE TABLE a (LIKE b);", `unknown table "b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, Migrate(NewDB(), tt.sql), tt.err)
		})
	}
}

func TestDataTypePrimitive(t *testing.T) {
	tests := []struct {
		name string
		want typed.Primitive
	}{
		{"bool", typed.PrimitiveBoolean},
		{"boolean", typed.PrimitiveBoolean},
		{"int4", typed.PrimitiveNumber},
		{"integer", typed.PrimitiveNumber},
		{"serial", typed.PrimitiveNumber},
		{"float8", typed.PrimitiveNumber},
		{"numeric", typed.PrimitiveNumber},
		{"text", typed.PrimitiveString},
		{"varchar", typed.PrimitiveString},
		{"uuid", typed.PrimitiveString},
		{"timestamptz", typed.PrimitiveString},
		{"json", typed.PrimitiveUnknown},
		{"jsonb", typed.PrimitiveUnknown},
		{"no_such_type", typed.PrimitiveUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DataType{Name: tt.name}
			assert.Equal(t, tt.want, d.Primitive())
		})
	}
}

func TestDataTypeString(t *testing.T) {
	d := DataType{Name: "int4", Schema: new(string), ArrayBounds: []int{3, -1}, NotNull: true}
	*d.Schema = "pg_catalog"

	assert.Equal(t, "pg_catalog.int4[3][] not null", d.String())

	clone := d.Clone()
	clone.ArrayBounds[0] = 5
	assert.Equal(t, 3, d.ArrayBounds[0])
}

func TestTableString(t *testing.T) {
	db := NewDB()
	assert.NoError(t, Migrate(db, "CREATE TABLE points (x double precision NOT NULL, y double precision);"))

	assert.Equal(
		t,
		"points (\n  x pg_catalog.float8 not null,\n  y pg_catalog.float8\n)",
		db.Table("points").String(),
	)

	clone := db.Clone()
	clone.Table("points").RemoveColumn("y")
	assert.Len(t, db.Table("points").Columns, 2)
}

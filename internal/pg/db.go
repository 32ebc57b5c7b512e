package pg

import (
	"slices"

	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
)

// DB is the in-memory schema built by applying migrations.
type DB struct {
	Tables       []*Table
	TablesByName map[TableName]*Table
}

func NewDB() *DB {
	return &DB{
		Tables:       make([]*Table, 0),
		TablesByName: make(map[TableName]*Table),
	}
}

func (db *DB) Clone() *DB {
	clone := &DB{
		Tables:       make([]*Table, 0, len(db.Tables)),
		TablesByName: make(map[TableName]*Table, len(db.Tables)),
	}

	for _, t := range db.Tables {
		clone.AddTable(t.Clone())
	}

	return clone
}

func (db *DB) AddTable(table *Table) {
	db.TablesByName[table.Name] = table
	db.Tables = append(db.Tables, table)
}

func (db *DB) RemoveTable(name TableName) {
	delete(db.TablesByName, name)
	db.Tables = slices.DeleteFunc(db.Tables, func(t *Table) bool { return t.Name == name })
}

func (db *DB) RenameTable(name TableName, newName TableName) {
	t := db.TablesByName[name]
	delete(db.TablesByName, name)

	t.Name = newName
	db.TablesByName[newName] = t
}

// Table looks up a table by its name. The name may be schema qualified
// (`schema.table`).
func (db *DB) Table(name string) *Table {
	for _, t := range db.Tables {
		if t.Name.Matches(name) {
			return t
		}
	}

	return nil
}

// Types returns the object type of every table keyed by table name.
func (db *DB) Types() map[string]typed.Type {
	types := make(map[string]typed.Type, len(db.Tables))

	for _, t := range db.Tables {
		types[t.Name.String()] = t.Type()
	}

	return types
}

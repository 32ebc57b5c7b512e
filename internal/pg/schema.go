package pg

import (
	"errors"
	"fmt"
	"os"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v5"
	"github.com/popingalex/flowgram.ai-sub002/internal/ptr"
)

// Migrate applies the table definitions of a migration to `db`. Only the up
// part of goose style migrations is applied. Statements that don't change
// tables or columns are ignored.
func Migrate(db *DB, sql string) error {
	upMigration := omitDownMigration(sql)

	ast, err := parseSql(upMigration)
	if err != nil {
		return fmt.Errorf(`failed to parse: %w`, err)
	}

	for _, s := range ast.GetStmts() {
		line := resolveLine(upMigration, int(s.GetStmtLocation()))

		switch node := s.GetStmt().GetNode().(type) {
		case *pg_query.Node_CreateStmt:
			if err := createTable(db, node.CreateStmt); err != nil {
				return fmt.Errorf(`failed to parse a create table statement on line %d: %w`, line, err)
			}
		case *pg_query.Node_DropStmt:
			if err := dropTable(db, node.DropStmt); err != nil {
				return fmt.Errorf(`failed to parse a drop table statement on line %d: %w`, line, err)
			}
		case *pg_query.Node_AlterTableStmt:
			if err := alterTable(db, node.AlterTableStmt); err != nil {
				return fmt.Errorf(`failed to parse an alter table statement on line %d: %w`, line, err)
			}
		case *pg_query.Node_RenameStmt:
			if err := rename(db, node.RenameStmt); err != nil {
				return fmt.Errorf(`failed to parse a rename statement on line %d: %w`, line, err)
			}
		}
	}

	return nil
}

func MigrateFile(db *DB, filePath string) error {
	sql, err := readMigration(filePath)
	if err != nil {
		return fmt.Errorf(`failed to read migration file "%s": %w`, filePath, err)
	}

	if err := Migrate(db, sql); err != nil {
		return fmt.Errorf(`failed to apply migration file "%s": %w`, filePath, err)
	}

	return nil
}

func createTable(db *DB, stmt *pg_query.CreateStmt) error {
	name, err := relationName(stmt.GetRelation())
	if err != nil {
		return err
	}

	table := NewTable(name)

	for _, elt := range stmt.GetTableElts() {
		switch node := elt.GetNode().(type) {
		case *pg_query.Node_ColumnDef:
			col, err := columnFromDef(node.ColumnDef)
			if err != nil {
				return err
			}

			table.AddColumn(col)
		case *pg_query.Node_TableLikeClause:
			likeName, err := relationName(node.TableLikeClause.GetRelation())
			if err != nil {
				return err
			}

			likeTable := db.TablesByName[likeName]
			if likeTable == nil {
				return fmt.Errorf(`tried to create a table using like clause with unknown table "%s"`, likeName)
			}

			for _, col := range likeTable.Columns {
				table.AddColumn(col.Clone())
			}
		}
	}

	db.AddTable(table)
	return nil
}

func relationName(rel *pg_query.RangeVar) (TableName, error) {
	if rel == nil {
		return TableName{}, errors.New("no relation")
	}

	if len(rel.GetRelname()) == 0 {
		return TableName{}, errors.New("empty table name")
	}

	return NewTableName(rel.GetRelname(), rel.GetSchemaname()), nil
}

func columnFromDef(def *pg_query.ColumnDef) (*Column, error) {
	if def == nil {
		return nil, errors.New("no column definition")
	}

	t, err := parseTypeName(def.GetTypeName())
	if err != nil {
		return nil, fmt.Errorf(`failed to parse type for column "%s": %w`, def.GetColname(), err)
	}

	t.NotNull = def.GetIsNotNull() || hasNotNullConstraint(def)

	return &Column{
		Name: def.GetColname(),
		Type: *t,
	}, nil
}

// parseTypeName converts a type name node. Names of built-in types come
// qualified with `pg_catalog`.
func parseTypeName(typeName *pg_query.TypeName) (*DataType, error) {
	if typeName == nil {
		return nil, errors.New("no type name")
	}

	t := &DataType{}

	switch names := typeName.GetNames(); len(names) {
	case 1:
		t.Name = strings.ToLower(getString(names[0]))
	case 2:
		t.Schema = ptr.V(strings.ToLower(getString(names[0])))
		t.Name = strings.ToLower(getString(names[1]))
	default:
		return nil, fmt.Errorf("a surprising amount of names (%d) in a type name", len(names))
	}

	for _, b := range typeName.GetArrayBounds() {
		t.ArrayBounds = append(t.ArrayBounds, int(b.GetInteger().GetIval()))
	}

	return t, nil
}

func hasNotNullConstraint(def *pg_query.ColumnDef) bool {
	for _, c := range def.GetConstraints() {
		switch c.GetConstraint().GetContype() {
		case pg_query.ConstrType_CONSTR_NOTNULL, pg_query.ConstrType_CONSTR_PRIMARY:
			return true
		}
	}

	return false
}

func dropTable(db *DB, stmt *pg_query.DropStmt) error {
	if stmt.GetRemoveType() != pg_query.ObjectType_OBJECT_TABLE {
		return nil
	}

	for _, o := range stmt.GetObjects() {
		name, err := getQualifiedName(o.GetList().GetItems())
		if err != nil {
			return err
		}

		table := db.TablesByName[name]
		if table == nil {
			if stmt.GetMissingOk() {
				continue
			}

			return fmt.Errorf(`unknown table "%s"`, name.String())
		}

		db.RemoveTable(table.Name)
	}

	return nil
}

func alterTable(db *DB, stmt *pg_query.AlterTableStmt) error {
	name, err := relationName(stmt.GetRelation())
	if err != nil {
		return err
	}

	table := db.TablesByName[name]
	if table == nil {
		return fmt.Errorf(`table "%s" hasn't been created`, name)
	}

	for _, cmd := range stmt.GetCmds() {
		alter := cmd.GetAlterTableCmd()

		switch alter.GetSubtype() {
		case pg_query.AlterTableType_AT_AddColumn:
			col, err := columnFromDef(alter.GetDef().GetColumnDef())
			if err != nil {
				return fmt.Errorf("failed to add column: %w", err)
			}

			table.AddColumn(col)
		case pg_query.AlterTableType_AT_DropColumn:
			if err := removeColumn(table, alter.GetName()); err != nil {
				return fmt.Errorf("failed to drop column: %w", err)
			}
		case pg_query.AlterTableType_AT_SetNotNull:
			if err := setNotNull(table, alter.GetName(), true); err != nil {
				return fmt.Errorf("failed to set column not null: %w", err)
			}
		case pg_query.AlterTableType_AT_DropNotNull:
			if err := setNotNull(table, alter.GetName(), false); err != nil {
				return fmt.Errorf("failed to drop not null: %w", err)
			}
		case pg_query.AlterTableType_AT_AlterColumnType:
			if err := alterColumnType(table, alter.GetName(), alter.GetDef().GetColumnDef()); err != nil {
				return fmt.Errorf("failed to alter column type: %w", err)
			}
		}
	}

	return nil
}

func findColumn(table *Table, colName string) (*Column, error) {
	col, ok := table.ColumnsByName[colName]
	if !ok {
		return nil, fmt.Errorf(`could not find column "%s" in table "%s"`, colName, table.Name)
	}

	return col, nil
}

func removeColumn(table *Table, colName string) error {
	if _, err := findColumn(table, colName); err != nil {
		return err
	}

	table.RemoveColumn(colName)
	return nil
}

func setNotNull(table *Table, colName string, notNull bool) error {
	col, err := findColumn(table, colName)
	if err != nil {
		return err
	}

	col.Type.NotNull = notNull
	return nil
}

func alterColumnType(table *Table, colName string, def *pg_query.ColumnDef) error {
	col, err := findColumn(table, colName)
	if err != nil {
		return err
	}

	t, err := parseTypeName(def.GetTypeName())
	if err != nil {
		return err
	}

	// Changing the type keeps the nullability of the column.
	t.NotNull = col.Type.NotNull
	col.Type = *t
	return nil
}

func rename(db *DB, stmt *pg_query.RenameStmt) error {
	name, err := relationName(stmt.GetRelation())
	if err != nil {
		return err
	}

	table := db.TablesByName[name]
	if table == nil {
		return fmt.Errorf(`unknown table "%s"`, name)
	}

	switch stmt.GetRenameType() {
	case pg_query.ObjectType_OBJECT_COLUMN:
		if _, err := findColumn(table, stmt.GetSubname()); err != nil {
			return err
		}

		table.RenameColumn(stmt.GetSubname(), stmt.GetNewname())
	case pg_query.ObjectType_OBJECT_TABLE:
		db.RenameTable(table.Name, NewTableName(stmt.GetNewname(), name.Schema))
	default:
		return fmt.Errorf("unknown rename type %s", stmt.GetRenameType().String())
	}

	return nil
}

func readMigration(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf(`failed to read file: %w`, err)
	}

	return string(data), nil
}

func omitDownMigration(m string) string {
	lines := make([]string, 0)

	for _, l := range strings.Split(m, "\n") {
		if isDownMigrationStartLine(l) {
			break
		}

		lines = append(lines, l)
	}

	return strings.Join(lines, "\n")
}

func isDownMigrationStartLine(l string) bool {
	return strings.HasPrefix(l, "-- +goose Down")
}

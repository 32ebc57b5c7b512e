package pg

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v5"
)

func parseSql(sql string) (*pg_query.ParseResult, error) {
	ast, err := pg_query.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf(`invalid SQL: %w`, err)
	}

	return ast, nil
}

func getString(node *pg_query.Node) string {
	return node.GetString_().GetSval()
}

// getQualifiedName converts the name list of a dropped object (`[table]` or
// `[schema, table]`) into a table name.
func getQualifiedName(names []*pg_query.Node) (TableName, error) {
	switch len(names) {
	case 1:
		return NewTableName(getString(names[0]), ""), nil
	case 2:
		return NewTableName(getString(names[1]), getString(names[0])), nil
	}

	return TableName{}, fmt.Errorf("a surprising amount of names (%d) in a table name", len(names))
}

// resolveLine returns the 1-based line of the byte offset `pos` in `sql`.
func resolveLine(sql string, pos int) int {
	line := 1

	for i := 0; i < len(sql); i += 1 {
		if i == pos {
			break
		}

		if sql[i] == '\n' {
			line += 1
		}
	}

	return line
}

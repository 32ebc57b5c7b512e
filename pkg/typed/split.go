package typed

import "strings"

// SplitTopLevel splits the body of a composite type into its comma separated
// fields. Commas nested inside parentheses or quotes don't split, so the body
// `a:n, b:(c:s, d:n)` yields two fields. A trailing field that only contains
// white space is dropped. Fields are returned untrimmed.
func SplitTopLevel(body string) []string {
	fields := make([]string, 0)

	var field strings.Builder
	depth := 0
	inQuote := false

	for _, r := range body {
		switch {
		case r == '"' || r == '\'':
			inQuote = !inQuote
		case r == '(' && !inQuote:
			depth += 1
		case r == ')' && !inQuote:
			depth -= 1
		case r == ',' && depth == 0 && !inQuote:
			fields = append(fields, field.String())
			field.Reset()
			continue
		}

		field.WriteRune(r)
	}

	if last := field.String(); strings.TrimSpace(last) != "" {
		fields = append(fields, last)
	}

	return fields
}

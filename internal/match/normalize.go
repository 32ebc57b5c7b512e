package match

import "strings"

// Normalize returns the form attribute ids and column names are compared in.
// `firstName`, `first_name` and `FIRSTNAME` all normalize to `firstname`.
func Normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

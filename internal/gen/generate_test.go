package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/popingalex/flowgram.ai-sub002/internal/config"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
	assert "github.com/stretchr/testify/require"
)

// normalizeSpace removes the alignment gofmt adds to struct fields.
func normalizeSpace(code []byte) string {
	return strings.Join(strings.Fields(string(code)), " ")
}

func TestRender(t *testing.T) {
	const node = "(node:s, control:n[3][2], first-name:s, 1st:b, meta:unknown, pos:(x:n, y:n)[])[]"

	code, err := Render("types", []NamedType{
		{Name: "Node", Description: "A flow node.", Type: typed.Parse(node)},
		{Name: "flag", Type: typed.Parse("b")},
		{Name: "Empty", Type: typed.Parse("()")},
	})
	assert.NoError(t, err)

	src := normalizeSpace(code)

	for _, want := range []string{
		"// Code generated by typed. DO NOT EDIT.",
		"package types",
		"// Node is a flow node. type Node []struct {",
		"Node string `json:\"node\"`",
		"Control [2][3]float64 `json:\"control\"`",
		"FirstName string `json:\"first-name\"`",
		"Field1st bool `json:\"1st\"`",
		"Meta any `json:\"meta\"`",
		"Pos []struct { X float64 `json:\"x\"` Y float64 `json:\"y\"` } `json:\"pos\"`",
		`const NodeTypeString = "(node:s, control:n[2][3], first-name:s, 1st:b, meta:unknown, pos:(x:n, y:n)[])[]"`,
		"type Flag bool",
		`const FlagTypeString = "b"`,
		"type Empty struct{}",
		`const EmptyTypeString = "unknown"`,
	} {
		assert.Contains(t, src, want)
	}
}

func TestRenderFieldNames(t *testing.T) {
	code, err := Render("types", []NamedType{
		{Name: "Names", Type: typed.Parse("(a.b:s, a-b:n, _x:s, ä:b)")},
	})
	assert.NoError(t, err)

	src := normalizeSpace(code)
	assert.Contains(t, src, "AB string `json:\"a.b\"`")
	assert.Contains(t, src, "AB2 float64 `json:\"a-b\"`")
	assert.Contains(t, src, "Field_x string `json:\"_x\"`")
	assert.Contains(t, src, "Ä bool `json:\"ä\"`")
}

func TestFieldNames(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"(a:s, b:s)", []string{"A", "B"}},
		{"(a.b:s, a-b:n)", []string{"AB", "AB2"}},
		{"(a:s, A:n, A2:b)", []string{"A", "A3", "A2"}},
		{"(A2:b, a:s, A:n)", []string{"A2", "A", "A3"}},
		{"(a:s, A:n, a2:b, A2:s)", []string{"A", "A2", "A22", "A23"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldNames(typed.Parse(tt.input).Attributes()))
		})
	}
}

func TestRenderNumberedFieldsDontCollide(t *testing.T) {
	code, err := Render("types", []NamedType{
		{Name: "Names", Type: typed.Parse("(a:s, A:n, A2:b)")},
	})
	assert.NoError(t, err)

	src := normalizeSpace(code)
	assert.Contains(t, src, "A string `json:\"a\"`")
	assert.Contains(t, src, "A3 float64 `json:\"A\"`")
	assert.Contains(t, src, "A2 bool `json:\"A2\"`")
}

func TestRenderDuplicateNames(t *testing.T) {
	_, err := Render("types", []NamedType{
		{Name: "a-b", Type: typed.Parse("n")},
		{Name: "AB", Type: typed.Parse("s")},
	})
	assert.EqualError(t, err, `types "a-b" and "AB" have the same Go name "AB"`)
}

func TestGenerateCode(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{Package: config.Package{Path: "gen/types"}}

	err := GenerateCode(cfg, dir, []NamedType{{Name: "Point", Type: typed.Parse("(x:n, y:n)")}})
	assert.NoError(t, err)

	code, err := os.ReadFile(filepath.Join(dir, "gen", "types.go"))
	assert.NoError(t, err)

	src := normalizeSpace(code)
	assert.Contains(t, src, "package types")
	assert.Contains(t, src, "type Point struct { X float64 `json:\"x\"` Y float64 `json:\"y\"` }")
}

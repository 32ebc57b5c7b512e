package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
)

// SchemaPath is a path of attribute ids from the root object to Type.
type SchemaPath struct {
	Path []string
	Type typed.Type
}

func (p *SchemaPath) clone() *SchemaPath {
	path := make([]string, len(p.Path))
	copy(path, p.Path)

	return &SchemaPath{
		Path: path,
		Type: p.Type,
	}
}

func (p *SchemaPath) String() string {
	return strings.Join(p.Path, ".")
}

// GoString returns the path as a selector of generated Go struct fields.
func (p *SchemaPath) GoString() string {
	goProps := make([]string, len(p.Path))

	for i := range p.Path {
		goProps[i] = AttributeToGo(p.Path[i])
	}

	return strings.Join(goProps, ".")
}

// AttributeToGo returns the exported Go field name of an attribute id.
func AttributeToGo(id string) string {
	r, size := utf8.DecodeRuneInString(id)
	if r == utf8.RuneError {
		return id
	}

	return string(unicode.ToUpper(r)) + id[size:]
}

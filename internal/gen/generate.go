package gen

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
	"github.com/popingalex/flowgram.ai-sub002/internal/config"
	"github.com/popingalex/flowgram.ai-sub002/internal/match"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
)

const (
	idTypeStringSuffix = "TypeString"
	idFallbackField    = "Field"
	jsonTag            = "json"
)

// NamedType is a type that gets a Go declaration of its own.
type NamedType struct {
	Name        string
	Description string
	Type        typed.Type
}

// GenerateCode writes a Go file with a declaration and a type-string constant
// for each of `types` to `cfg.Package.Path` + ".go" under `workingDir`.
func GenerateCode(cfg config.Config, workingDir string, types []NamedType) error {
	code, err := Render(path.Base(cfg.Package.Path), types)
	if err != nil {
		return err
	}

	return writeCodeToFile(code, cfg, workingDir)
}

// Render returns the source of a Go file in package `pkg` declaring `types`.
func Render(pkg string, types []NamedType) ([]byte, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by typed. DO NOT EDIT.")

	seen := make(map[string]string, len(types))

	for _, t := range types {
		id := goIdentifier(t.Name)

		if other, ok := seen[id]; ok {
			return nil, fmt.Errorf(`types "%s" and "%s" have the same Go name "%s"`, other, t.Name, id)
		}

		seen[id] = t.Name
		genNamedType(f, id, t)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render generated code: %w", err)
	}

	return buf.Bytes(), nil
}

func genNamedType(f *jen.File, id string, t NamedType) {
	if description := strings.TrimSpace(t.Description); len(description) > 0 {
		if !strings.HasPrefix(description, id) {
			description = fmt.Sprintf("%s is %s", id, firstLower(description))
		}

		f.Comment(description)
	}

	f.Type().Id(id).Add(genType(t.Type))
	f.Empty()

	f.Const().Id(id + idTypeStringSuffix).Op("=").Lit(typed.Format(t.Type))
	f.Empty()
}

// genType returns the Go type of `t`. Array dimensions are written outermost
// first, so `n[2][3]` becomes `[3][2]float64`.
func genType(t typed.Type) *jen.Statement {
	switch t.Kind() {
	case typed.KindArray:
		elem, _ := t.Elem()

		if t.Length() == typed.DynamicLength {
			return jen.Index().Add(genType(elem))
		}

		return jen.Index(jen.Lit(t.Length())).Add(genType(elem))
	case typed.KindObject:
		return genStruct(t.Attributes())
	case typed.KindPrimitive:
		p, _ := t.Primitive()

		switch p {
		case typed.PrimitiveBoolean:
			return jen.Bool()
		case typed.PrimitiveNumber:
			return jen.Float64()
		case typed.PrimitiveString:
			return jen.String()
		}
	}

	return jen.Id("any")
}

func genStruct(attrs []typed.Attribute) *jen.Statement {
	names := fieldNames(attrs)

	return jen.StructFunc(func(g *jen.Group) {
		for i, a := range attrs {
			g.Id(names[i]).Add(genType(a.Type)).Tag(map[string]string{
				jsonTag: a.ID,
			})
		}
	})
}

// fieldNames returns a distinct Go field name per attribute. Ids that only
// differ in characters Go names can't hold get numbered, skipping numbers
// already taken by another field.
func fieldNames(attrs []typed.Attribute) []string {
	names := make([]string, len(attrs))
	counts := make(map[string]int, len(attrs))
	for i, a := range attrs {
		names[i] = goIdentifier(a.ID)
		counts[names[i]]++
	}

	used := make(map[string]bool, len(attrs))
	for _, name := range names {
		if counts[name] == 1 {
			used[name] = true
		}
	}

	for i, name := range names {
		if counts[name] == 1 {
			continue
		}

		candidate := name
		for n := 2; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s%d", name, n)
		}

		used[candidate] = true
		names[i] = candidate
	}

	return names
}

// goIdentifier turns an attribute id or type name into an exported Go
// identifier. Characters that can't appear in identifiers separate words.
func goIdentifier(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	var b strings.Builder
	for _, w := range words {
		b.WriteString(match.AttributeToGo(w))
	}

	id := b.String()
	if len(id) == 0 {
		return idFallbackField
	}

	if r := []rune(id)[0]; !unicode.IsLetter(r) || !unicode.IsUpper(r) {
		return idFallbackField + id
	}

	return id
}

func writeCodeToFile(code []byte, cfg config.Config, workingDir string) error {
	filePath := path.Join(workingDir, cfg.Package.Path) + ".go"

	if err := os.MkdirAll(path.Dir(filePath), 0700); err != nil {
		return err
	}

	return os.WriteFile(filePath, code, 0600)
}

func firstLower(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

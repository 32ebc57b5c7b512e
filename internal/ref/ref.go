package ref

import (
	"fmt"
	"strings"

	"github.com/popingalex/flowgram.ai-sub002/internal/match"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
)

// Path is a resolved reference: the attribute ids from the root object and
// the type the reference points to.
type Path struct {
	Path []string
	Type typed.Type
}

// Lookup resolves a dotted reference such as `node.control` against the
// attributes of `t`. Array types are stepped through, so a reference into
// `(a:(b:n)[])` resolves `a.b` to `n`. Attribute ids are compared exactly
// first and then in normalized form (lower case, underscores removed).
func Lookup(t typed.Type, ref string) (*Path, error) {
	if len(ref) == 0 {
		return nil, fmt.Errorf("empty reference")
	}

	path := &Path{
		Path: make([]string, 0),
		Type: t,
	}

	if err := resolve(t, ref, path); err != nil {
		return nil, fmt.Errorf(`failed to resolve reference "%s": %w`, ref, err)
	}

	return path, nil
}

func resolve(t typed.Type, ref string, path *Path) error {
	refPart, rest, more := strings.Cut(ref, ".")

	base := t.Base()
	if !base.IsObject() {
		if len(path.Path) > 0 {
			return fmt.Errorf(`"%s" of type "%s" has no attributes`, path.Path[len(path.Path)-1], typed.Format(t))
		}

		return fmt.Errorf(`type "%s" has no attributes`, typed.Format(t))
	}

	a, ok := findAttribute(base.Attributes(), refPart)
	if !ok {
		if len(path.Path) > 0 {
			return fmt.Errorf(`could not resolve attribute "%s" of object "%s"`, refPart, path.Path[len(path.Path)-1])
		}

		return fmt.Errorf(`could not resolve attribute "%s"`, refPart)
	}

	path.Path = append(path.Path, a.ID)
	path.Type = a.Type

	if more {
		return resolve(a.Type, rest, path)
	}

	return nil
}

func findAttribute(attrs []typed.Attribute, id string) (typed.Attribute, bool) {
	for _, a := range attrs {
		if a.ID == id {
			return a, true
		}
	}

	normID := match.Normalize(id)
	for _, a := range attrs {
		if match.Normalize(a.ID) == normID {
			return a, true
		}
	}

	return typed.Attribute{}, false
}

// ToGo returns the path as a selector of generated Go struct fields.
func ToGo(ref Path) string {
	goProps := make([]string, len(ref.Path))

	for i := range ref.Path {
		goProps[i] = match.AttributeToGo(ref.Path[i])
	}

	return strings.Join(goProps, ".")
}

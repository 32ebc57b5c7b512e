package ref

import (
	"testing"

	"github.com/popingalex/flowgram.ai-sub002/internal/match"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
	assert "github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	typ := typed.Parse("(node:s, first_name:s, control:n[3][2], points:(x:n, y:n)[], meta:(tags:s[]))")

	tests := []struct {
		ref   string
		path  []string
		want  string
		goRef string
	}{
		{"node", []string{"node"}, "s", "Node"},
		{"firstName", []string{"first_name"}, "s", "First_name"},
		{"control", []string{"control"}, "n[2][3]", "Control"},
		{"points", []string{"points"}, "(x:n, y:n)[]", "Points"},
		{"points.y", []string{"points", "y"}, "n", "Points.Y"},
		{"meta.tags", []string{"meta", "tags"}, "s[]", "Meta.Tags"},
		{"FIRST_NAME", []string{"first_name"}, "s", "First_name"},
		{"Points.Y", []string{"points", "y"}, "n", "Points.Y"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			p, err := Lookup(typ, tt.ref)
			assert.NoError(t, err)
			assert.Equal(t, tt.path, p.Path)
			assert.Equal(t, tt.want, typed.Format(p.Type))
			assert.Equal(t, tt.goRef, ToGo(*p))
		})
	}
}

func TestLookupPrefersExactMatch(t *testing.T) {
	p, err := Lookup(typed.Parse("(a_b:s, ab:n)"), "ab")
	assert.NoError(t, err)
	assert.Equal(t, "n", typed.Format(p.Type))
}

// Lookup resolves ids the same way schema matching compares them.
func TestLookupNormalizesLikeMatch(t *testing.T) {
	typ := typed.Parse("(first_name:s, createdAt:n)")

	for _, id := range []string{"firstName", "FirstName", "FIRSTNAME", "created_at", "CREATEDAT"} {
		t.Run(id, func(t *testing.T) {
			p, err := Lookup(typ, id)
			assert.NoError(t, err)
			assert.Equal(t, match.Normalize(id), match.Normalize(p.Path[0]))
		})
	}
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		typ string
		ref string
		err string
	}{
		{"(a:s)", "", "empty reference"},
		{"(a:s)", "b", `failed to resolve reference "b": could not resolve attribute "b"`},
		{"(a:(b:n))", "a.c", `failed to resolve reference "a.c": could not resolve attribute "c" of object "a"`},
		{"(a:s)", "a.b", `failed to resolve reference "a.b": "a" of type "s" has no attributes`},
		{"n[]", "a", `failed to resolve reference "a": type "n[]" has no attributes`},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.ref, func(t *testing.T) {
			_, err := Lookup(typed.Parse(tt.typ), tt.ref)
			assert.EqualError(t, err, tt.err)
		})
	}
}

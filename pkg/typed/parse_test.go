package typed

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestLookupPrimitive(t *testing.T) {
	tests := []struct {
		token string
		want  Primitive
	}{
		{"b", PrimitiveBoolean},
		{"bool", PrimitiveBoolean},
		{"Boolean", PrimitiveBoolean},
		{"n", PrimitiveNumber},
		{"NUM", PrimitiveNumber},
		{"number", PrimitiveNumber},
		{"s", PrimitiveString},
		{"str", PrimitiveString},
		{"String", PrimitiveString},
		{"", PrimitiveUnknown},
		{"int", PrimitiveUnknown},
		{"unknown", PrimitiveUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupPrimitive(tt.token))
		})
	}
}

func TestPrimitiveToken(t *testing.T) {
	assert.Equal(t, "b", PrimitiveBoolean.Token())
	assert.Equal(t, "n", PrimitiveNumber.Token())
	assert.Equal(t, "s", PrimitiveString.Token())
	assert.Equal(t, "", PrimitiveUnknown.Token())
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"single", "a:n", []string{"a:n"}},
		{"flat", "a:n, b:s", []string{"a:n", " b:s"}},
		{"nested", "a:n, b:(c:s, d:n)", []string{"a:n", " b:(c:s, d:n)"}},
		{"deeply nested", "a:(b:(c:n, d:n), e:s), f:b", []string{"a:(b:(c:n, d:n), e:s)", " f:b"}},
		{"double quotes", `a:"x,y", b:n`, []string{`a:"x,y"`, " b:n"}},
		{"single quotes", `a:'x,y', b:n`, []string{`a:'x,y'`, " b:n"}},
		{"trailing comma", "a:n, ", []string{"a:n"}},
		{"empty middle field", "a:n,,b:s", []string{"a:n", "", "b:s"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTopLevel(tt.body))
		})
	}
}

func TestParsePrimitives(t *testing.T) {
	tests := []struct {
		input string
		want  Primitive
	}{
		{"n", PrimitiveNumber},
		{"  number  ", PrimitiveNumber},
		{"B", PrimitiveBoolean},
		{"str", PrimitiveString},
		{"garbage", PrimitiveUnknown},
		{"", PrimitiveUnknown},
		{"   ", PrimitiveUnknown},
		{"[3]", PrimitiveUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			typ := Parse(tt.input)

			p, ok := typ.Primitive()
			assert.True(t, ok)
			assert.Equal(t, tt.want, p)
			assert.Empty(t, typ.Dimensions())
			assert.Empty(t, typ.Attributes())
		})
	}
}

func TestParseArrays(t *testing.T) {
	tests := []struct {
		input string
		dims  []int
		prim  Primitive
	}{
		{"n[]", []int{-1}, PrimitiveNumber},
		{"n[3]", []int{3}, PrimitiveNumber},
		{"n[0]", []int{0}, PrimitiveNumber},
		{"s[][]", []int{-1, -1}, PrimitiveString},
		{"n[2][3]", []int{3, 2}, PrimitiveNumber},
		{"b[1][2][3]", []int{3, 2, 1}, PrimitiveBoolean},
		{"n[2][]", []int{-1, 2}, PrimitiveNumber},
		{"foo[4]", []int{4}, PrimitiveUnknown},
		{"n [ 3 ]", nil, PrimitiveUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			typ := Parse(tt.input)

			if tt.dims == nil {
				assert.Empty(t, typ.Dimensions())
			} else {
				assert.Equal(t, tt.dims, typ.Dimensions())
			}

			p, ok := typ.Primitive()
			assert.True(t, ok)
			assert.Equal(t, tt.prim, p)
		})
	}
}

func TestParseDimensionOrder(t *testing.T) {
	typ := Parse("n[2][3]")
	assert.Equal(t, []int{3, 2}, typ.Dimensions())

	assert.True(t, typ.IsArray())
	assert.Equal(t, 3, typ.Length())

	elem, ok := typ.Elem()
	assert.True(t, ok)
	assert.Equal(t, 2, elem.Length())
}

func TestParseComposite(t *testing.T) {
	typ := Parse("(x:n, y:n)")

	_, ok := typ.Primitive()
	assert.False(t, ok)
	assert.Empty(t, typ.Dimensions())
	assert.True(t, typ.IsObject())

	attrs := typ.Attributes()
	assert.Len(t, attrs, 2)
	assert.Equal(t, "x", attrs[0].ID)
	assert.True(t, attrs[0].Type.Equal(PrimitiveType(PrimitiveNumber)))
	assert.Equal(t, "y", attrs[1].ID)
	assert.True(t, attrs[1].Type.Equal(PrimitiveType(PrimitiveNumber)))
}

func TestParseNestedComposite(t *testing.T) {
	typ := Parse("(node:s,control:n[3][2])[]")
	assert.Equal(t, []int{-1}, typ.Dimensions())

	attrs := typ.Attributes()
	assert.Len(t, attrs, 2)
	assert.Equal(t, "node", attrs[0].ID)
	assert.Equal(t, "control", attrs[1].ID)
	assert.Equal(t, []int{2, 3}, attrs[1].Type.Dimensions())

	deep := Parse("(a:n, b:(c:s, d:(e:b)[]))")
	b := deep.Attributes()[1].Type
	assert.Len(t, b.Attributes(), 2)

	d := b.Attributes()[1].Type
	assert.Equal(t, []int{-1}, d.Dimensions())
	assert.Equal(t, "e", d.Attributes()[0].ID)
}

func TestParseLenientComposite(t *testing.T) {
	typ := Parse("(x:n, broken, y : s )")

	attrs := typ.Attributes()
	assert.Len(t, attrs, 2)
	assert.Equal(t, "x", attrs[0].ID)
	assert.Equal(t, "y", attrs[1].ID)

	p, _ := attrs[1].Type.Primitive()
	assert.Equal(t, PrimitiveString, p)
}

func TestParseFirstColon(t *testing.T) {
	typ := Parse("(a:(b:n))")

	attrs := typ.Attributes()
	assert.Len(t, attrs, 1)
	assert.Equal(t, "a", attrs[0].ID)
	assert.Equal(t, "b", attrs[0].Type.Attributes()[0].ID)
}

func TestParseEmptyComposite(t *testing.T) {
	for _, input := range []string{"()", "(  )"} {
		typ := Parse(input)

		assert.True(t, typ.IsObject())
		assert.Empty(t, typ.Attributes())
		assert.Empty(t, typ.Dimensions())

		_, ok := typ.Primitive()
		assert.False(t, ok)
	}
}

func TestParseStripsNewlines(t *testing.T) {
	typ := Parse("(\n  x:n,\n  y:s[]\n)\n")
	assert.Equal(t, "(x:n, y:s[])", Format(typ))
}

func TestParseAttribute(t *testing.T) {
	a := ParseAttribute("position:n[3]")
	assert.Equal(t, "position", a.ID)
	assert.Equal(t, []int{3}, a.Type.Dimensions())

	a = ParseAttribute("s")
	assert.Equal(t, "", a.ID)
	p, _ := a.Type.Primitive()
	assert.Equal(t, PrimitiveString, p)

	a = ParseAttribute("pose:(x:n, y:n)")
	assert.Equal(t, "pose", a.ID)
	assert.Len(t, a.Type.Attributes(), 2)
	assert.Equal(t, "pose:(x:n, y:n)", a.String())

	empty := Attribute{Type: Parse("(x:n)")}
	assert.Equal(t, ":(x:n)", empty.String())
	assert.True(t, empty.Equal(ParseAttribute(empty.String())))
}

package typed

import (
	"regexp"
	"strconv"
	"strings"
)

// arrayRegex matches the outermost trailing bracket group of an array type.
// The prefix is non-greedy, so for `n[2][3]` it captures `n[2]` and `3`.
var arrayRegex = regexp.MustCompile(`^(.+?)\[(\d*)\]$`)

// Parse parses a type-string. Parsing never fails: unrecognized primitives,
// empty input and other malformed input degrade to the unknown primitive, and
// composite fields without a colon are skipped. Use `ParseStrict` to get
// those problems reported.
//
// Array dimensions are collected by stripping the outermost trailing bracket
// group first and prepending its length, so `n[2][3]` has the dimensions
// `[3, 2]`.
func Parse(raw string) Type {
	p := &parser{}
	return p.parse(raw)
}

type parser struct {
	// strict enables collecting problems into `errs`.
	strict bool
	errs   []error
}

func (p *parser) parse(raw string) Type {
	s := strings.TrimSpace(stripNewlines(raw))

	if len(s) == 0 {
		p.report(raw, "empty type")
		return Unknown()
	}

	if m := arrayRegex.FindStringSubmatch(s); m != nil {
		return ArrayType(p.parse(m[1]), p.parseLength(s, m[2]))
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return p.parseObject(s)
	}

	prim := LookupPrimitive(s)
	if prim == PrimitiveUnknown && !strings.EqualFold(s, string(PrimitiveUnknown)) {
		p.reportUnknownPrimitive(s)
	}

	return PrimitiveType(prim)
}

func (p *parser) parseLength(input string, digits string) int {
	if len(digits) == 0 {
		return DynamicLength
	}

	length, err := strconv.Atoi(digits)
	if err != nil {
		p.report(input, `invalid array length "%s"`, digits)
		return DynamicLength
	}

	return length
}

func (p *parser) parseObject(s string) Type {
	body := s[1 : len(s)-1]

	if len(strings.TrimSpace(body)) == 0 {
		return ObjectType()
	}

	attrs := make([]Attribute, 0)
	seen := make(map[string]bool)

	for _, field := range SplitTopLevel(body) {
		colon := strings.IndexByte(field, ':')
		if colon == -1 {
			p.report(s, `field "%s" has no type`, strings.TrimSpace(field))
			continue
		}

		id := strings.TrimSpace(field[:colon])
		if len(id) == 0 {
			p.report(s, "field with an empty id")
		} else if seen[id] {
			p.report(s, `duplicate field "%s"`, id)
		}

		seen[id] = true
		attrs = append(attrs, Attribute{
			ID:   id,
			Type: p.parse(field[colon+1:]),
		})
	}

	return Type{kind: KindObject, attributes: attrs}
}

func stripNewlines(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}

	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

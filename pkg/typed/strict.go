package typed

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/multierr"
)

// maxSuggestionDistance is the largest edit distance for which an unknown
// primitive token gets a "did you mean" hint.
const maxSuggestionDistance = 2

// suggestionTokens are the tokens an unknown primitive is compared against,
// in order of preference.
var suggestionTokens = []string{"boolean", "number", "string", "bool", "num", "str"}

// SyntaxError describes one problem found by `ParseStrict`.
type SyntaxError struct {
	Input   string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf(`%s in type "%s"`, e.Message, e.Input)
}

func syntaxErrorf(input string, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Input:   input,
		Message: fmt.Sprintf(format, args...),
	}
}

// ParseStrict parses `raw` like `Parse` and additionally reports everything
// the lenient parser silently degrades: empty types, unrecognized primitive
// tokens, fields without a type, empty or duplicate field ids and invalid
// array lengths. The returned Type is always the result of `Parse`. The error
// combines one `*SyntaxError` per problem; use `Errors` to split it.
func ParseStrict(raw string) (Type, error) {
	p := &parser{strict: true}
	t := p.parse(raw)

	return t, multierr.Combine(p.errs...)
}

// Errors splits an error returned by `ParseStrict` into its individual
// problems.
func Errors(err error) []error {
	return multierr.Errors(err)
}

func (p *parser) report(input string, format string, args ...any) {
	if !p.strict {
		return
	}

	p.errs = append(p.errs, syntaxErrorf(input, format, args...))
}

func (p *parser) reportUnknownPrimitive(token string) {
	if !p.strict {
		return
	}

	if s := suggestPrimitive(token); len(s) != 0 {
		p.report(token, `unknown primitive "%s", did you mean "%s"?`, token, s)
	} else {
		p.report(token, `unknown primitive "%s"`, token)
	}
}

func suggestPrimitive(token string) string {
	token = strings.ToLower(token)
	best := ""
	bestDistance := maxSuggestionDistance + 1

	for _, s := range suggestionTokens {
		if d := levenshtein.ComputeDistance(token, s); d < bestDistance {
			best = s
			bestDistance = d
		}
	}

	return best
}

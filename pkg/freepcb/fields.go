package freepcb

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// valueLexer tokenizes composite record values: an optional quoted or bare
// name followed by space-separated positional numbers. Record values are
// positional, so field meaning comes from the caller, not the grammar.
var valueLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `[-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[^\s"]+`},
	{Name: "whitespace", Pattern: `\s+`},
})

var (
	symString     = valueLexer.Symbols()["String"]
	symNumber     = valueLexer.Symbols()["Number"]
	symWhitespace = valueLexer.Symbols()["whitespace"]
)

// lexValue splits a record value into its non-whitespace tokens.
func lexValue(value string, line int) ([]lexer.Token, error) {
	lx, err := valueLexer.LexString("", value)
	if err != nil {
		return nil, lineError(line, ErrMalformedField, "%v", err)
	}

	var tokens []lexer.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, lineError(line, ErrMalformedField, "%v", err)
		}
		if tok.EOF() {
			return tokens, nil
		}
		if tok.Type == symWhitespace {
			continue
		}
		tokens = append(tokens, tok)
	}
}

// numericFields parses a value that must consist of between min and max
// numbers and nothing else.
func numericFields(value string, line, min, max int) ([]float64, error) {
	tokens, err := lexValue(value, line)
	if err != nil {
		return nil, err
	}
	if len(tokens) < min || len(tokens) > max {
		return nil, lineError(line, ErrMalformedField,
			"expected %d to %d values, got %d", min, max, len(tokens))
	}

	nums := make([]float64, len(tokens))
	for i, tok := range tokens {
		if tok.Type != symNumber {
			return nil, lineError(line, ErrMalformedField, "expected number, got %q", tok.Value)
		}
		n, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, lineError(line, ErrMalformedField, "bad number %q", tok.Value)
		}
		nums[i] = n
	}
	return nums, nil
}

// nameAndNumbers parses a value of the form `"name" n1 n2 ...` with exactly
// want trailing numbers. The name may also be a bare token.
func nameAndNumbers(value string, line, want int) (string, []float64, error) {
	tokens, err := lexValue(value, line)
	if err != nil {
		return "", nil, err
	}
	if len(tokens) != want+1 {
		return "", nil, lineError(line, ErrMalformedField,
			"expected name and %d values, got %d tokens", want, len(tokens))
	}

	name := tokens[0].Value
	if tokens[0].Type == symString {
		name = unquoteName(name)
	}

	nums := make([]float64, want)
	for i, tok := range tokens[1:] {
		if tok.Type != symNumber {
			return "", nil, lineError(line, ErrMalformedField, "expected number, got %q", tok.Value)
		}
		n, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return "", nil, lineError(line, ErrMalformedField, "bad number %q", tok.Value)
		}
		nums[i] = n
	}
	return name, nums, nil
}

// unquoteName strips the surrounding quotes from a String token and undoes
// the two escapes the format can contain.
func unquoteName(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

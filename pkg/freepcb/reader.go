// Package freepcb parses FreePCB footprint library files into an in-memory
// model. The format is line-oriented: one "key: value" record per line, with
// two nesting levels (module header fields, then body fields) distinguished
// only by key, never by indentation.
package freepcb

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Reader turns a FreePCB text file into a stream of (key, value) records.
// It holds the current record; Next advances. Blank lines are skipped but
// still counted, so Line always reports the physical 1-based line of the
// current record.
type Reader struct {
	scanner *bufio.Scanner
	lineno  int
	recLine int
	key     string
	value   string
	eof     bool
}

// NewReader wraps r. Call Next to load the first record.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: sc}
}

// Next advances to the next non-blank record. At end of input it sets the
// end marker instead of failing; a record with an empty value is a
// MalformedRecord error.
func (r *Reader) Next() error {
	for r.scanner.Scan() {
		r.lineno++
		line := strings.TrimRightFunc(r.scanner.Text(), unicode.IsSpace)
		if strings.TrimSpace(line) == "" {
			continue
		}

		r.recLine = r.lineno
		key, value, _ := strings.Cut(line, ":")
		r.key = strings.TrimSpace(key)
		r.value = strings.TrimSpace(value)

		// A value wholly wrapped in quotes is unquoted here; composite
		// values with trailing tokens keep their quotes for field parsing.
		if len(r.value) >= 2 && r.value[0] == '"' && r.value[len(r.value)-1] == '"' {
			r.value, _ = ParseQuoted(r.value)
		}
		if r.value == "" {
			return lineError(r.recLine, ErrMalformedRecord, "expected value for key %q", r.key)
		}
		return nil
	}

	if err := r.scanner.Err(); err != nil {
		return err
	}
	r.eof = true
	r.key = ""
	r.value = ""
	return nil
}

// AtEnd reports whether the input is exhausted.
func (r *Reader) AtEnd() bool {
	return r.eof
}

// Key returns the current record's key.
func (r *Reader) Key() string {
	return r.key
}

// Value returns the current record's value.
func (r *Reader) Value() string {
	return r.value
}

// Line returns the physical 1-based line number of the current record.
func (r *Reader) Line() int {
	return r.recLine
}

// ParseQuoted extracts the leading token of s and reports how many bytes it
// consumed, for slicing off the positional parameters that follow.
//
// A bare token runs to the first space and consumes its length plus one. A
// quoted token runs to the next unescaped quote and consumes through the
// closing quote plus any whitespace after it; if the closing quote is
// missing, the rest of the string is the token.
func ParseQuoted(s string) (string, int) {
	if s == "" {
		return "", 0
	}

	if s[0] != '"' {
		token, _, _ := strings.Cut(s, " ")
		return strings.TrimSpace(token), len(token) + 1
	}

	closing := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '"' && s[i-1] != '\\' {
			closing = i
			break
		}
	}
	if closing < 0 {
		return s[1:], len(s)
	}

	beyond := s[closing+1:]
	stripped := len(beyond) - len(strings.TrimLeftFunc(beyond, unicode.IsSpace))
	return s[1:closing], closing + 1 + stripped
}

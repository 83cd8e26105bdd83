// Package kicad converts parsed FreePCB footprints into KiCad "pretty"
// footprint files, one s-expression tree per footprint.
package kicad

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// RoundingMode selects the pad-rounding policy for surface-mount pads.
// Through-hole pads always use the native shape mapping.
type RoundingMode int

const (
	// RoundNone maps each pad from its native shape.
	RoundNone RoundingMode = iota
	// RoundAll emits every non-excepted pad as oval.
	RoundAll
	// RoundAllButPin1 emits every non-excepted pad as oval except the pad
	// named "1", which stays rect.
	RoundAllButPin1
)

// RoundingConfig is the resolved rounding policy: a mode plus two exception
// sets matched against the unstripped module name. CenterExceptions applies
// only to pads placed exactly at the module origin, which lets a thermal pad
// stay rectangular while everything around it is rounded.
type RoundingConfig struct {
	Mode             RoundingMode
	PadExceptions    []*regexp.Regexp
	CenterExceptions []*regexp.Regexp
}

// ParseExceptions reads an exception list: one regular expression per line,
// blank lines ignored. Each pattern is anchored to match at the start of the
// module name, not found inside it.
func ParseExceptions(r io.Reader) ([]*regexp.Regexp, error) {
	var res []*regexp.Regexp

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		re, err := regexp.Compile(`\A(?:` + line + `)`)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad pattern %q: %w", lineno, line, err)
		}
		res = append(res, re)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// LoadExceptions reads the exception list at path.
func LoadExceptions(path string) ([]*regexp.Regexp, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open exception list: %w", err)
	}
	defer f.Close()

	res, err := ParseExceptions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func matchAny(res []*regexp.Regexp, name string) bool {
	for _, re := range res {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

package freepcb

import (
	"fmt"
	"io"
	"os"
)

// Library is an ordered collection of footprints, unique by name.
type Library struct {
	Modules []*Module
}

// ParseLibrary reads every footprint from one FreePCB library file. Zero
// footprints is legal. A parse failure aborts the whole file.
func ParseLibrary(r io.Reader) (*Library, error) {
	rd := NewReader(r)
	if err := rd.Next(); err != nil {
		return nil, err
	}

	lib := &Library{}
	for !rd.AtEnd() {
		m, err := parseModule(rd)
		if err != nil {
			return nil, err
		}
		lib.Modules = append(lib.Modules, m)
	}
	return lib, nil
}

// LoadLibrary parses the library file at path.
func LoadLibrary(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	defer f.Close()

	lib, err := ParseLibrary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// Merge appends another library's footprints, preserving order. Merging
// fails if any footprint name exists in both libraries.
func (l *Library) Merge(other *Library) error {
	names := make(map[string]bool, len(l.Modules))
	for _, m := range l.Modules {
		names[m.Name] = true
	}
	for _, m := range other.Modules {
		if names[m.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, m.Name)
		}
	}

	l.Modules = append(l.Modules, other.Modules...)
	return nil
}

// Find returns the footprint with the exact given name, or nil.
func (l *Library) Find(name string) *Module {
	for _, m := range l.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// StripSuffixes strips the size-variant suffix from every footprint name.
func (l *Library) StripSuffixes() {
	for _, m := range l.Modules {
		m.StripSuffix()
	}
}

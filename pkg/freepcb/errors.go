package freepcb

import (
	"errors"
	"fmt"
)

// Parse failures are unrecoverable for the file being processed; each error
// wraps one of these sentinels and carries the originating line number so
// callers can classify with errors.Is.
var (
	// ErrMalformedRecord marks a record with no value after the key.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnexpectedKey marks a key that is not valid in the current parser state.
	ErrUnexpectedKey = errors.New("unexpected key")

	// ErrMissingField marks a mandatory field that never appeared.
	ErrMissingField = errors.New("missing required field")

	// ErrMalformedField marks a composite field whose numeric sub-values are
	// absent, too few, or non-numeric.
	ErrMalformedField = errors.New("malformed field")

	// ErrDuplicateName marks a library merge that found two footprints
	// sharing a name.
	ErrDuplicateName = errors.New("duplicate module name")

	// ErrModuleNotFound marks a 3D map entry referencing an unknown footprint.
	ErrModuleNotFound = errors.New("module not found")

	// ErrUnboundMapEntry marks a 3D map that supplies geometry before naming
	// a module.
	ErrUnboundMapEntry = errors.New("map entry before module name")
)

// lineError wraps a sentinel with the 1-based line it was detected on.
func lineError(line int, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %w: %s", line, sentinel, fmt.Sprintf(format, args...))
}

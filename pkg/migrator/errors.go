package migrator

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedIdentifier is returned when a candidate filename doesn't
	// follow the V<version>__<description>.<ext> convention.
	ErrMalformedIdentifier = errors.New("malformed migration identifier")

	// ErrOrderingViolation is matched when the byte-wise order of filenames
	// disagrees with the order of their versions, or when two files share an
	// identifier or version. Such errors also match ErrMalformedIdentifier.
	ErrOrderingViolation = errors.New("migration ordering violation")
)

// IdentifierError describes a candidate file that could not be parsed or
// doesn't fit the ordering of its neighbours.
type IdentifierError struct {
	Filename string
	Err      error
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("%s: %q: %v", ErrMalformedIdentifier, e.Filename, e.Err)
}

func (e *IdentifierError) Is(target error) bool {
	return target == ErrMalformedIdentifier
}

func (e *IdentifierError) Unwrap() error {
	return e.Err
}

package ledger

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrStoreUnavailable is matched by every error raised while reaching,
	// initializing, reading or writing the ledger.
	ErrStoreUnavailable = errors.New("ledger store unavailable")

	// ErrDuplicateIdentifier is returned by RecordApplied when the identifier
	// (compared case-insensitively) is already recorded.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrMissingUniqueGuard is returned by EnsureSchema when the ledger table
	// exists without a unique index on identifier.
	ErrMissingUniqueGuard = errors.New("ledger table has no unique constraint on identifier")
)

// StoreError wraps a failure talking to the ledger table.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreUnavailable, e.Op, e.Err)
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

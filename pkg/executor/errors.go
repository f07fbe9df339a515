package executor

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/ledger"
	"github.com/pseudomuto/migrun/pkg/migrator"
)

var (
	// ErrStoreUnavailable is matched when the ledger cannot be reached or
	// initialized. No candidate is attempted.
	ErrStoreUnavailable = ledger.ErrStoreUnavailable

	// ErrMalformedIdentifier is matched when a candidate filename can't be
	// parsed or ordered. No candidate is attempted.
	ErrMalformedIdentifier = migrator.ErrMalformedIdentifier

	// ErrScriptExecutionFailed is matched when a script could not be loaded or
	// the target rejected it. The run halts at that candidate.
	ErrScriptExecutionFailed = errors.New("script execution failed")

	// ErrAppliedButNotRecorded is matched when a script ran successfully but
	// the ledger write failed for a reason other than a duplicate. The ledger
	// must be reconciled by hand before the next run.
	ErrAppliedButNotRecorded = errors.New("applied but not recorded")
)

// MigrationError is the failure of a single candidate.
type MigrationError struct {
	// Identifier of the failed candidate.
	Identifier string

	// Kind is ErrScriptExecutionFailed or ErrAppliedButNotRecorded.
	Kind error

	// Err is the underlying cause.
	Err error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Identifier, e.Kind, e.Err)
}

func (e *MigrationError) Is(target error) bool {
	return target == e.Kind
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

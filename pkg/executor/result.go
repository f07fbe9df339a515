package executor

import "time"

type (
	// Status is the outcome of a single candidate.
	Status string

	// RunStatus is the terminal status of a run.
	RunStatus string

	// Outcome records what happened to one candidate during a run.
	Outcome struct {
		// Identifier is the candidate's filename.
		Identifier string

		// Status is applied, skipped or failed.
		Status Status

		// Reason explains a skip (ReasonAlreadyApplied or
		// ReasonRecordedConcurrently). Empty otherwise.
		Reason string

		// Error is set for failed outcomes and matches either
		// ErrScriptExecutionFailed or ErrAppliedButNotRecorded.
		Error error

		// Duration is the time spent executing and recording the script.
		Duration time.Duration
	}

	// RunResult summarizes one invocation of Executor.Run.
	RunResult struct {
		// RunID correlates log lines emitted during the run.
		RunID string

		// Outcomes holds one entry per candidate that was considered, in
		// execution order. Candidates after a failure are not included.
		Outcomes []*Outcome

		// Status is success unless something failed.
		Status RunStatus

		// FailedAt is the identifier of the failed candidate, if any. It is
		// empty when the run failed before any candidate was considered.
		FailedAt string

		// Err is the failure that ended the run, nil on success.
		Err error

		// Duration is the wall time of the whole run.
		Duration time.Duration
	}
)

const (
	// StatusApplied indicates the script was executed and recorded.
	StatusApplied Status = "applied"

	// StatusSkipped indicates the script was not executed by this run.
	StatusSkipped Status = "skipped"

	// StatusFailed indicates the script failed or could not be recorded.
	StatusFailed Status = "failed"

	// RunSuccess indicates every candidate was applied or skipped.
	RunSuccess RunStatus = "success"

	// RunFailed indicates the run halted on a failure.
	RunFailed RunStatus = "failed"

	// ReasonAlreadyApplied marks candidates found in the ledger before the run.
	ReasonAlreadyApplied = "already-applied"

	// ReasonRecordedConcurrently marks candidates another runner recorded
	// while this run was executing them.
	ReasonRecordedConcurrently = "recorded-concurrently"
)

// Counts returns the number of applied, skipped and failed outcomes.
func (r *RunResult) Counts() (applied, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusApplied:
			applied++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}

	return applied, skipped, failed
}

// Failed reports whether the run ended with a failure.
func (r *RunResult) Failed() bool {
	return r.Status == RunFailed
}

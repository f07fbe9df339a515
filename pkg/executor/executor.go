package executor

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/ledger"
	"github.com/pseudomuto/migrun/pkg/migrator"
)

type (
	// Ledger is the subset of ledger.Store used to run migrations.
	Ledger interface {
		EnsureSchema(context.Context) error
		ListApplied(context.Context) (*ledger.AppliedSet, error)
		RecordApplied(context.Context, string) error
	}

	// Target executes a single script against the target database.
	Target interface {
		Execute(ctx context.Context, identifier, script string) error
	}

	// Resolver lists ordered migration candidates from a source directory.
	Resolver interface {
		ListCandidates(fs.FS) ([]*migrator.Migration, error)
	}

	// Executor applies pending migrations to a target database, exactly once
	// each, in byte-wise filename order.
	//
	// A run proceeds as follows:
	//   - ensure the ledger table exists
	//   - fetch every applied identifier in one query
	//   - list and order the candidates
	//   - for each candidate: skip it when already applied, otherwise execute
	//     it and record it in the ledger
	//
	// The first failure halts the run. Later candidates are never attempted
	// since they may depend on the one that failed. When recording loses a race
	// against another runner (the ledger rejects the identifier as a
	// duplicate) the candidate is reported as skipped and is not executed
	// again.
	//
	// Example usage:
	//
	//	exec := executor.New(executor.Config{
	//		Ledger:   store,
	//		Target:   database.NewTarget(db, database.TxModeAuto),
	//		Resolver: migrator.NewResolver(".sql"),
	//	})
	//
	//	result, err := exec.Run(ctx, os.DirFS("db/migrations"))
	//	if err != nil {
	//		fmt.Fprintf(os.Stderr, "migration %s failed: %v\n", result.FailedAt, err)
	//	}
	Executor struct {
		ledger        Ledger
		target        Target
		resolver      Resolver
		logger        *slog.Logger
		recordTimeout time.Duration
	}

	// Config contains configuration options for creating a new Executor.
	Config struct {
		// Ledger records applied migrations. Required.
		Ledger Ledger

		// Target executes scripts. Required.
		Target Target

		// Resolver lists candidates. Defaults to a .sql resolver.
		Resolver Resolver

		// Logger receives per-candidate progress. Defaults to slog.Default().
		Logger *slog.Logger

		// RecordTimeout bounds the ledger write that follows a successful
		// script. Zero means no bound.
		RecordTimeout time.Duration
	}
)

// New creates a new Executor with the provided configuration.
func New(config Config) *Executor {
	if config.Resolver == nil {
		config.Resolver = migrator.NewResolver()
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Executor{
		ledger:        config.Ledger,
		target:        config.Target,
		resolver:      config.Resolver,
		logger:        config.Logger,
		recordTimeout: config.RecordTimeout,
	}
}

// Run applies every pending migration found at the root of source.
//
// The returned RunResult is never nil. The returned error is nil exactly when
// the run succeeded (including when there was nothing to do) and is otherwise
// the same value as RunResult.Err. It matches one of ErrStoreUnavailable,
// ErrMalformedIdentifier, ErrScriptExecutionFailed or ErrAppliedButNotRecorded.
func (e *Executor) Run(ctx context.Context, source fs.FS) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{
		RunID:  uuid.NewString(),
		Status: RunSuccess,
	}
	log := e.logger.With("run_id", result.RunID)

	finish := func(err error) (*RunResult, error) {
		result.Duration = time.Since(start)
		if err != nil {
			result.Status = RunFailed
			result.Err = err
			log.Error("Migration run failed", "failed_at", result.FailedAt, "err", err)
			return result, err
		}

		applied, skipped, _ := result.Counts()
		log.Info("Migration run completed", "applied", applied, "skipped", skipped, "duration", result.Duration)
		return result, nil
	}

	if err := e.ledger.EnsureSchema(ctx); err != nil {
		return finish(errors.Wrap(err, "failed to initialize ledger"))
	}

	applied, err := e.ledger.ListApplied(ctx)
	if err != nil {
		return finish(errors.Wrap(err, "failed to list applied migrations"))
	}

	candidates, err := e.resolver.ListCandidates(source)
	if err != nil {
		return finish(errors.Wrap(err, "failed to resolve migrations"))
	}

	log.Info("Resolved migrations", "candidates", len(candidates), "applied", applied.Len())
	if len(candidates) == 0 {
		return finish(nil)
	}

	result.Outcomes = make([]*Outcome, 0, len(candidates))
	for _, m := range candidates {
		outcome := e.apply(ctx, log, m, applied)
		result.Outcomes = append(result.Outcomes, outcome)

		// Stop execution on first failure
		if outcome.Status == StatusFailed {
			result.FailedAt = outcome.Identifier
			return finish(outcome.Error)
		}
	}

	return finish(nil)
}

func (e *Executor) apply(ctx context.Context, log *slog.Logger, m *migrator.Migration, applied *ledger.AppliedSet) *Outcome {
	log = log.With("identifier", m.Identifier)

	if applied.Contains(m.Identifier) {
		log.Debug("Skipping migration", "reason", ReasonAlreadyApplied)
		return &Outcome{
			Identifier: m.Identifier,
			Status:     StatusSkipped,
			Reason:     ReasonAlreadyApplied,
		}
	}

	start := time.Now()
	fail := func(kind, err error) *Outcome {
		return &Outcome{
			Identifier: m.Identifier,
			Status:     StatusFailed,
			Error:      &MigrationError{Identifier: m.Identifier, Kind: kind, Err: err},
			Duration:   time.Since(start),
		}
	}

	script, err := m.Load()
	if err != nil {
		return fail(ErrScriptExecutionFailed, err)
	}

	log.Info("Applying migration")
	if err := e.target.Execute(ctx, m.Identifier, script); err != nil {
		return fail(ErrScriptExecutionFailed, err)
	}

	// The script has committed; the ledger write ignores cancellation of ctx.
	recordCtx := context.WithoutCancel(ctx)
	if e.recordTimeout > 0 {
		var cancel context.CancelFunc
		recordCtx, cancel = context.WithTimeout(recordCtx, e.recordTimeout)
		defer cancel()
	}

	if err := e.ledger.RecordApplied(recordCtx, m.Identifier); err != nil {
		if errors.Is(err, ledger.ErrDuplicateIdentifier) {
			log.Warn("Migration was recorded by another runner", "reason", ReasonRecordedConcurrently)
			return &Outcome{
				Identifier: m.Identifier,
				Status:     StatusSkipped,
				Reason:     ReasonRecordedConcurrently,
				Duration:   time.Since(start),
			}
		}

		return fail(ErrAppliedButNotRecorded, err)
	}

	outcome := &Outcome{
		Identifier: m.Identifier,
		Status:     StatusApplied,
		Duration:   time.Since(start),
	}
	log.Info("Applied migration", "duration", outcome.Duration)

	return outcome
}

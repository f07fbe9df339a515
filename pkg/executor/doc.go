// Package executor applies migrations to a target database.
//
// The executor ties the other packages together: the migrator package lists
// and orders candidate scripts, the ledger package records what has been
// applied, and a Target (usually database.Target) runs each script.
//
// # Core Components
//
//   - Executor: runs every pending migration in order, halting at the first
//     failure
//   - RunResult and Outcome: the per-candidate report of a run
//   - BuildPlan and Plan: a read-only preview used by status and dry runs
//
// # Guarantees
//
// A migration is executed at most once per successful ledger write. The
// ledger's unique, case-insensitive index on identifier is the backstop
// against two runners racing on the same target: the loser's insert is
// rejected and reported as skipped with ReasonRecordedConcurrently, and the
// script is never executed again by that run.
//
// Atomicity of a single script is shared with its author. The Target wraps a
// script in a transaction unless it manages its own, but engines that commit
// DDL implicitly can still leave partial effects behind. Failed scripts are
// never retried; fix forward with a new migration.
//
// # Error Handling
//
// Every failure ends the run and matches exactly one of:
//
//   - ErrStoreUnavailable: the ledger couldn't be reached or initialized
//   - ErrMalformedIdentifier: a candidate name couldn't be parsed or ordered
//   - ErrScriptExecutionFailed: the target rejected a script
//   - ErrAppliedButNotRecorded: a script ran but its ledger row couldn't be
//     written; reconcile the ledger before running again
//
// # Usage Example
//
//	exec := executor.New(executor.Config{
//		Ledger:   store,
//		Target:   database.NewTarget(db, database.TxModeAuto),
//		Resolver: migrator.NewResolver(".sql"),
//	})
//
//	result, err := exec.Run(ctx, os.DirFS("db/migrations"))
//	if err != nil {
//		return err
//	}
//
//	applied, skipped, _ := result.Counts()
//	fmt.Printf("applied %d, skipped %d\n", applied, skipped)
package executor

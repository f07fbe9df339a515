package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/pseudomuto/migrun/pkg/executor"
	"github.com/pseudomuto/migrun/pkg/migrator"
)

const timestampFormat = time.RFC3339

// reportRun writes the outcome of every candidate considered by a run followed
// by a summary line.
func reportRun(w io.Writer, result *executor.RunResult) {
	fmt.Fprintln(w, "Migration execution results:")
	fmt.Fprintln(w)

	if len(result.Outcomes) == 0 && !result.Failed() {
		fmt.Fprintln(w, "  No migrations found.")
	}

	for _, o := range result.Outcomes {
		switch o.Status {
		case executor.StatusApplied:
			fmt.Fprintf(w, "  ✅ %s applied\n", o.Identifier)
		case executor.StatusSkipped:
			fmt.Fprintf(w, "  ⏭  %s (%s)\n", o.Identifier, o.Reason)
		case executor.StatusFailed:
			fmt.Fprintf(w, "  ❌ %s failed\n", o.Identifier)
			if o.Error != nil {
				fmt.Fprintf(w, "     Error: %v\n", o.Error)
			}
		}
	}

	applied, skipped, failed := result.Counts()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d applied, %d skipped, %d failed\n", applied, skipped, failed)

	switch {
	case result.Failed():
		fmt.Fprintln(w)
		fmt.Fprintln(w, "❌ Migration run failed. Fix the failing script, or add a new one, and run again.")
	case applied == 0:
		fmt.Fprintln(w)
		fmt.Fprintln(w, "ℹ️  All migrations are up to date.")
	default:
		fmt.Fprintln(w)
		fmt.Fprintln(w, "✅ All migrations executed successfully.")
	}
}

// reportFailure writes the failing identifier and the cause of a failed run.
func reportFailure(w io.Writer, result *executor.RunResult) {
	if result.FailedAt == "" {
		fmt.Fprintf(w, "migration run failed: %v\n", result.Err)
		return
	}

	fmt.Fprintf(w, "migration %s failed: %v\n", result.FailedAt, result.Err)
}

// reportDryRun writes which candidates a run would apply.
func reportDryRun(w io.Writer, plan *executor.Plan) {
	fmt.Fprintln(w, "Dry run: showing migrations that would be executed")
	fmt.Fprintln(w)

	if !plan.Bootstrapped {
		fmt.Fprintln(w, "  Ledger table not found; it will be created.")
	}

	for _, e := range plan.Entries {
		if e.Pending {
			fmt.Fprintf(w, "  ▶  %s\n", e.Identifier)
			continue
		}

		fmt.Fprintf(w, "  ⏭  %s (already applied)\n", e.Identifier)
	}

	pending := len(plan.Pending())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d would be executed, %d already applied\n", pending, len(plan.Entries)-pending)

	if pending == 0 {
		fmt.Fprintln(w, "All migrations are up to date.")
	}
}

// reportStatus writes every candidate as applied or pending, followed by
// ledger rows that no longer have a matching file.
func reportStatus(w io.Writer, plan *executor.Plan) {
	fmt.Fprintln(w, "Migration Status")
	fmt.Fprintln(w)

	if !plan.Bootstrapped {
		fmt.Fprintln(w, "❗ Ledger table not initialized")
		fmt.Fprintln(w, "   Run 'migrun migrate' to initialize it and apply migrations")
		fmt.Fprintln(w)
	}

	if len(plan.Entries) == 0 {
		fmt.Fprintln(w, "No migration files found.")
	}

	for _, e := range plan.Entries {
		if e.Pending {
			fmt.Fprintf(w, "  ⏳ %s pending\n", e.Identifier)
			continue
		}

		fmt.Fprintf(w, "  ✅ %s applied %s\n", e.Identifier, e.AppliedAt.UTC().Format(timestampFormat))
	}

	if len(plan.Orphaned) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Applied migrations without a matching file:")
		for _, e := range plan.Orphaned {
			fmt.Fprintf(w, "  ❓ %s applied %s\n", e.Identifier, e.AppliedAt.UTC().Format(timestampFormat))
		}
	}

	pending := len(plan.Pending())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d applied, %d pending, %d orphaned\n",
		len(plan.Entries)-pending, pending, len(plan.Orphaned))
}

// reportCandidates writes the resolved migration set in execution order.
func reportCandidates(w io.Writer, candidates []*migrator.Migration) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No migration files found.")
		return
	}

	fmt.Fprintf(w, "Found %d migration files:\n", len(candidates))
	for _, m := range candidates {
		fmt.Fprintf(w, "  📄 %s (version %s)\n", m.Identifier, m.Version)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "✅ Migration set is valid.")
}

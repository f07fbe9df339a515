package executor

import (
	"context"
	"io/fs"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/ledger"
	"github.com/pseudomuto/migrun/pkg/utils"
)

type (
	// LedgerReader is the read-only subset of ledger.Store used to build plans.
	LedgerReader interface {
		Exists(context.Context) (bool, error)
		ListApplied(context.Context) (*ledger.AppliedSet, error)
	}

	// PlanEntry describes one candidate.
	PlanEntry struct {
		Identifier string
		Pending    bool

		// AppliedAt is set for entries that are not pending.
		AppliedAt time.Time
	}

	// Plan is the read-only view of which candidates a run would apply.
	Plan struct {
		// Bootstrapped is false when the ledger table doesn't exist yet.
		Bootstrapped bool

		// Entries lists every candidate in execution order.
		Entries []*PlanEntry

		// Orphaned lists ledger rows without a matching candidate, typically
		// scripts that were renamed or removed after being applied.
		Orphaned []*ledger.Entry
	}
)

// BuildPlan compares the ledger with the candidates in source without
// executing anything or creating the ledger table. When the table is missing,
// every candidate is pending.
func BuildPlan(ctx context.Context, reader LedgerReader, resolver Resolver, source fs.FS) (*Plan, error) {
	exists, err := reader.Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check ledger")
	}

	var applied *ledger.AppliedSet
	if exists {
		if applied, err = reader.ListApplied(ctx); err != nil {
			return nil, errors.Wrap(err, "failed to list applied migrations")
		}
	}

	candidates, err := resolver.ListCandidates(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve migrations")
	}

	plan := &Plan{
		Bootstrapped: exists,
		Entries:      make([]*PlanEntry, 0, len(candidates)),
	}

	known := make(map[string]bool, len(candidates))
	for _, m := range candidates {
		known[utils.FoldIdentifier(m.Identifier)] = true

		entry := &PlanEntry{Identifier: m.Identifier, Pending: true}
		if e, ok := applied.Get(m.Identifier); ok {
			entry.Pending = false
			entry.AppliedAt = e.AppliedAt
		}
		plan.Entries = append(plan.Entries, entry)
	}

	for _, e := range applied.Entries() {
		if !known[utils.FoldIdentifier(e.Identifier)] {
			plan.Orphaned = append(plan.Orphaned, e)
		}
	}

	return plan, nil
}

// Pending returns the entries a run would apply, in order.
func (p *Plan) Pending() []*PlanEntry {
	var pending []*PlanEntry
	for _, e := range p.Entries {
		if e.Pending {
			pending = append(pending, e)
		}
	}

	return pending
}

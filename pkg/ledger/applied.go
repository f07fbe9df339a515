package ledger

import (
	"time"

	"github.com/pseudomuto/migrun/pkg/utils"
)

// Entry is one row of the ledger table.
type Entry struct {
	Identifier string
	AppliedAt  time.Time
}

// AppliedSet is the set of recorded identifiers, keyed case-insensitively.
// The zero value and nil are both empty sets.
type AppliedSet struct {
	entries []*Entry
	index   map[string]*Entry
}

// NewAppliedSet builds a set from ledger entries, preserving their order. When
// two entries fold to the same key, the first one wins.
func NewAppliedSet(entries ...*Entry) *AppliedSet {
	set := &AppliedSet{
		entries: make([]*Entry, 0, len(entries)),
		index:   make(map[string]*Entry, len(entries)),
	}

	for _, e := range entries {
		key := utils.FoldIdentifier(e.Identifier)
		if _, ok := set.index[key]; ok {
			continue
		}

		set.index[key] = e
		set.entries = append(set.entries, e)
	}

	return set
}

// Contains reports whether id has been recorded, ignoring case.
func (s *AppliedSet) Contains(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Get returns the entry recorded for id, ignoring case.
func (s *AppliedSet) Get(id string) (*Entry, bool) {
	if s == nil || s.index == nil {
		return nil, false
	}

	e, ok := s.index[utils.FoldIdentifier(id)]
	return e, ok
}

// Len returns the number of recorded identifiers.
func (s *AppliedSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.entries)
}

// Entries returns the recorded entries in ledger order.
func (s *AppliedSet) Entries() []*Entry {
	if s == nil {
		return nil
	}

	return s.entries
}

package ledger

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/utils"
)

// ErrUnknownDialect is returned by LookupDialect for unsupported engines.
var ErrUnknownDialect = errors.New("unknown dialect")

// Dialect captures the engine specific SQL needed to manage the ledger table.
//
// Statement builders return the SQL text together with its bind arguments so
// that identifiers that can't be bound (table names) are quoted by the dialect
// and everything else is passed as a parameter.
type Dialect interface {
	// Name is the canonical dialect name.
	Name() string

	// Driver is the database/sql driver name registered for this dialect.
	Driver() string

	// Placeholder is the bind parameter style for generated statements.
	Placeholder() sq.PlaceholderFormat

	// Quote quotes a (possibly schema-qualified) table name.
	Quote(name string) string

	// TableExists returns a query yielding a single count that is non-zero
	// when the table exists.
	TableExists(table string) (string, []any)

	// CreateTable returns the statements that create the ledger table and its
	// case-insensitive unique guard on identifier.
	CreateTable(table string) []string

	// UniqueGuard returns a query yielding a single count that is non-zero
	// when a unique index covers the identifier column.
	UniqueGuard(table string) (string, []any)

	// IsUniqueViolation reports whether err was raised by a unique constraint.
	IsUniqueViolation(err error) bool
}

// LookupDialect returns the Dialect for the given engine name. Accepted names
// are postgres (postgresql, pg), sqlite (sqlite3) and mysql.
func LookupDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pg":
		return Postgres{}, nil
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	case "mysql":
		return MySQL{}, nil
	}

	return nil, errors.Wrapf(ErrUnknownDialect, "%q", name)
}

// indexName derives the unique index name for the ledger table. Indexes are
// created in the table's schema, so only the unqualified name is used.
func indexName(table string) string {
	_, name := utils.SplitQualified(table)
	return name + "_identifier_key"
}

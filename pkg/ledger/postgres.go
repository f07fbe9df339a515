package ledger

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/utils"
)

const pqUniqueViolation = "23505"

// Postgres is the Dialect for PostgreSQL using the lib/pq driver.
type Postgres struct{}

func (Postgres) Name() string                      { return "postgres" }
func (Postgres) Driver() string                    { return "postgres" }
func (Postgres) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

func (Postgres) Quote(name string) string {
	return utils.DoubleQuoteIdentifier(name)
}

func (p Postgres) TableExists(table string) (string, []any) {
	return "SELECT COUNT(*) FROM (SELECT to_regclass($1) AS oid) t WHERE t.oid IS NOT NULL",
		[]any{p.Quote(table)}
}

func (p Postgres) CreateTable(table string) []string {
	q := p.Quote(table)
	return []string{
		"CREATE TABLE IF NOT EXISTS " + q + ` (
	id BIGSERIAL PRIMARY KEY,
	identifier TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		"CREATE UNIQUE INDEX IF NOT EXISTS " + p.Quote(indexName(table)) + " ON " + q + " (lower(identifier))",
	}
}

// UniqueGuard matches a single-key, non-partial unique index on either the
// identifier column itself or an expression over it, such as
// lower(identifier).
func (p Postgres) UniqueGuard(table string) (string, []any) {
	return `SELECT COUNT(*) FROM pg_index i
JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attname = 'identifier' AND NOT a.attisdropped
WHERE i.indrelid = to_regclass($1)
AND i.indisunique
AND i.indpred IS NULL
AND i.indnkeyatts = 1
AND (
	a.attnum = ANY(i.indkey)
	OR pg_get_expr(i.indexprs, i.indrelid) ~ '\midentifier\M'
)`,
		[]any{p.Quote(table)}
}

func (Postgres) IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}

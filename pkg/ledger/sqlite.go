package ledger

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/utils"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLite is the Dialect for SQLite using the pure Go modernc.org/sqlite
// driver. The identifier column uses NOCASE collation so its UNIQUE constraint
// is case-insensitive.
type SQLite struct{}

func (SQLite) Name() string                      { return "sqlite" }
func (SQLite) Driver() string                    { return "sqlite" }
func (SQLite) Placeholder() sq.PlaceholderFormat { return sq.Question }

func (SQLite) Quote(name string) string {
	return utils.DoubleQuoteIdentifier(name)
}

func (SQLite) TableExists(table string) (string, []any) {
	schema, name := sqliteSchema(table)
	return "SELECT COUNT(*) FROM pragma_table_info(?, ?)", []any{name, schema}
}

func (s SQLite) CreateTable(table string) []string {
	return []string{
		"CREATE TABLE IF NOT EXISTS " + s.Quote(table) + ` (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	identifier TEXT NOT NULL COLLATE NOCASE,
	applied_at TIMESTAMP NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now')),
	CONSTRAINT ` + s.Quote(indexName(table)) + ` UNIQUE (identifier)
)`,
	}
}

func (SQLite) UniqueGuard(table string) (string, []any) {
	schema, name := sqliteSchema(table)
	return `SELECT COUNT(*) FROM pragma_index_list(?, ?) AS il
JOIN pragma_index_info(il.name, ?) AS ii
WHERE il."unique" = 1 AND ii.name = 'identifier'`,
		[]any{name, schema, schema}
}

func (SQLite) IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func sqliteSchema(table string) (string, string) {
	schema, name := utils.SplitQualified(table)
	if schema == "" {
		schema = "main"
	}

	return schema, name
}

package ledger

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/utils"
)

const mysqlDuplicateEntry = 1062

// MySQL is the Dialect for MySQL and MariaDB using go-sql-driver/mysql. The
// identifier column uses a case-insensitive collation so its unique key
// rejects identifiers differing only in case.
type MySQL struct{}

func (MySQL) Name() string                      { return "mysql" }
func (MySQL) Driver() string                    { return "mysql" }
func (MySQL) Placeholder() sq.PlaceholderFormat { return sq.Question }

func (MySQL) Quote(name string) string {
	return utils.BacktickIdentifier(name)
}

func (MySQL) TableExists(table string) (string, []any) {
	schema, name := mysqlSchema(table)
	return `SELECT COUNT(*) FROM information_schema.tables
WHERE table_schema = COALESCE(?, DATABASE()) AND table_name = ?`,
		[]any{schema, name}
}

func (m MySQL) CreateTable(table string) []string {
	return []string{
		"CREATE TABLE IF NOT EXISTS " + m.Quote(table) + ` (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	identifier VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci NOT NULL,
	applied_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	UNIQUE KEY ` + m.Quote(indexName(table)) + ` (identifier)
)`,
	}
}

func (MySQL) UniqueGuard(table string) (string, []any) {
	schema, name := mysqlSchema(table)
	return `SELECT COUNT(*) FROM information_schema.statistics
WHERE table_schema = COALESCE(?, DATABASE()) AND table_name = ?
AND column_name = 'identifier' AND non_unique = 0`,
		[]any{schema, name}
}

func (MySQL) IsUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

// mysqlSchema returns a nil schema for unqualified names so the lookup falls
// back to the connection's current database.
func mysqlSchema(table string) (any, string) {
	schema, name := utils.SplitQualified(table)
	if schema == "" {
		return nil, name
	}

	return schema, name
}

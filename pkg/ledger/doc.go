// Package ledger persists which migrations have been applied to a target
// database.
//
// The ledger is a single table in the target database itself:
//
//	id          surrogate key assigned by the database
//	identifier  migration filename, unique and compared case-insensitively
//	applied_at  timestamp assigned by the database default
//
// The unique, case-insensitive guard on identifier is the only thing standing
// between concurrent or retried runs and double application, so EnsureSchema
// refuses to use a pre-existing table that lacks it.
//
// Supported engines are PostgreSQL (lib/pq), SQLite (modernc.org/sqlite) and
// MySQL (go-sql-driver/mysql). Importing this package registers all three
// drivers with database/sql.
//
// Example usage:
//
//	dialect, _ := ledger.LookupDialect("postgres")
//	store, err := ledger.New(db, ledger.Config{Dialect: dialect})
//	if err != nil {
//		return err
//	}
//
//	if err := store.EnsureSchema(ctx); err != nil {
//		return err
//	}
//
//	applied, err := store.ListApplied(ctx)
//	if applied.Contains("v1.0.1__foo.sql") {
//		// V1.0.1__Foo.sql was recorded
//	}
package ledger

package ledger

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/consts"
	"github.com/pseudomuto/migrun/pkg/utils"
)

type (
	// Config configures a ledger Store.
	Config struct {
		// Dialect generates engine specific SQL. Required.
		Dialect Dialect

		// Table is the (optionally schema-qualified) ledger table name.
		// Defaults to consts.DefaultLedgerTable.
		Table string
	}

	// Store reads and writes the ledger table that records which migrations
	// have been applied to a target database.
	//
	// The table lives in the target database itself and has a unique,
	// case-insensitive index on identifier. That index is what prevents a
	// migration from being recorded twice when runners race, so Store never
	// relies on in-memory state for that guarantee.
	Store struct {
		db      *sql.DB
		dialect Dialect
		table   string
		builder sq.StatementBuilderType
	}
)

// New returns a Store for db. The table name is validated before it is ever
// interpolated into SQL.
func New(db *sql.DB, cfg Config) (*Store, error) {
	if cfg.Dialect == nil {
		return nil, errors.New("ledger dialect is required")
	}

	table := strings.TrimSpace(cfg.Table)
	if table == "" {
		table = consts.DefaultLedgerTable
	}

	if err := utils.ValidateTableName(table); err != nil {
		return nil, err
	}

	return &Store{
		db:      db,
		dialect: cfg.Dialect,
		table:   table,
		builder: sq.StatementBuilder.PlaceholderFormat(cfg.Dialect.Placeholder()),
	}, nil
}

// Table returns the ledger table name.
func (s *Store) Table() string {
	return s.table
}

// Dialect returns the dialect the store was configured with.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Exists reports whether the ledger table has been created.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	query, args := s.dialect.TableExists(s.table)
	n, err := s.count(ctx, query, args...)
	if err != nil {
		return false, storeError("check ledger table", err)
	}

	return n > 0, nil
}

// EnsureSchema creates the ledger table and its unique index when missing and
// verifies that an existing table carries the unique guard on identifier.
//
// Creation is idempotent and safe to race: when another runner creates the
// table first, the failed attempt is ignored as long as the table exists
// afterwards.
func (s *Store) EnsureSchema(ctx context.Context) error {
	exists, err := s.Exists(ctx)
	if err != nil {
		return err
	}

	if !exists {
		if err := s.createTable(ctx); err != nil {
			exists, checkErr := s.Exists(ctx)
			if checkErr != nil || !exists {
				return storeError("create ledger table", err)
			}
		}
	}

	query, args := s.dialect.UniqueGuard(s.table)
	n, err := s.count(ctx, query, args...)
	if err != nil {
		return storeError("verify unique guard", err)
	}

	if n == 0 {
		return storeError("verify unique guard", errors.Wrapf(ErrMissingUniqueGuard, "table %s", s.table))
	}

	return nil
}

// ListApplied returns every recorded identifier in a single query.
func (s *Store) ListApplied(ctx context.Context) (*AppliedSet, error) {
	query, args, err := s.builder.
		Select("identifier", "applied_at").
		From(s.dialect.Quote(s.table)).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, storeError("build ledger query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("list applied", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		var (
			id        string
			appliedAt any
		)

		if err := rows.Scan(&id, &appliedAt); err != nil {
			return nil, storeError("list applied", err)
		}

		ts, err := scanTimestamp(appliedAt)
		if err != nil {
			return nil, storeError("list applied", errors.Wrapf(err, "identifier %s", id))
		}

		entries = append(entries, &Entry{Identifier: id, AppliedAt: ts})
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("list applied", err)
	}

	return NewAppliedSet(entries...), nil
}

// RecordApplied inserts a ledger row for id. The database assigns applied_at.
// When the unique guard rejects the row, the returned error matches
// ErrDuplicateIdentifier.
func (s *Store) RecordApplied(ctx context.Context, id string) error {
	query, args, err := s.builder.
		Insert(s.dialect.Quote(s.table)).
		Columns("identifier").
		Values(id).
		ToSql()
	if err != nil {
		return storeError("build ledger insert", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return errors.Wrapf(ErrDuplicateIdentifier, "%s", id)
		}

		return storeError("record applied", err)
	}

	return nil
}

func (s *Store) createTable(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, stmt := range s.dialect.CreateTable(s.table) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "failed to create ledger table")
		}
	}

	return tx.Commit()
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// scanTimestamp normalizes the applied_at value returned by the different
// drivers. lib/pq returns time.Time, modernc sqlite returns time.Time or text
// depending on the stored value, and go-sql-driver/mysql returns []byte unless
// parseTime is set on the DSN.
func scanTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case []byte:
		return parseTimestamp(string(t))
	case string:
		return parseTimestamp(t)
	case nil:
		return time.Time{}, nil
	}

	return time.Time{}, errors.Errorf("unsupported timestamp type %T", v)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}

	return time.Time{}, errors.Errorf("unrecognized timestamp %q", s)
}

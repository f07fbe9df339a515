package ledger_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	. "github.com/pseudomuto/migrun/pkg/ledger"
	"github.com/pseudomuto/migrun/pkg/utils"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "ledger.db")+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func newStore(t *testing.T, db *sql.DB, table string) *Store {
	t.Helper()

	store, err := New(db, Config{Dialect: SQLite{}, Table: table})
	require.NoError(t, err)

	return store
}

func TestNew(t *testing.T) {
	db := openSQLite(t)

	store, err := New(db, Config{Dialect: SQLite{}})
	require.NoError(t, err)
	require.Equal(t, "migrun_ledger", store.Table())
	require.Equal(t, "sqlite", store.Dialect().Name())

	_, err = New(db, Config{Dialect: SQLite{}, Table: "ledger; DROP TABLE users"})
	require.ErrorIs(t, err, utils.ErrInvalidTableName)

	_, err = New(db, Config{Table: "ledger"})
	require.Error(t, err)
}

func TestEnsureSchema(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, openSQLite(t), "")

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx))

	exists, err = store.Exists(ctx)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestEnsureSchemaQualifiedTable(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, openSQLite(t), "main.schema_ledger")

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.RecordApplied(ctx, "V1__init.sql"))

	applied, err := store.ListApplied(ctx)
	require.NoError(t, err)
	require.True(t, applied.Contains("V1__init.sql"))
}

func TestEnsureSchemaMissingUniqueGuard(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	_, err := db.ExecContext(ctx, `CREATE TABLE legacy_ledger (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		identifier TEXT NOT NULL,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `CREATE INDEX legacy_ledger_identifier ON legacy_ledger (identifier)`)
	require.NoError(t, err)

	err = newStore(t, db, "legacy_ledger").EnsureSchema(ctx)
	require.ErrorIs(t, err, ErrMissingUniqueGuard)
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestRecordAndListApplied(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, openSQLite(t), "")
	require.NoError(t, store.EnsureSchema(ctx))

	applied, err := store.ListApplied(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, applied.Len())

	before := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, store.RecordApplied(ctx, "V1.0.0__create_users.sql"))
	require.NoError(t, store.RecordApplied(ctx, "V1.0.1__Foo.sql"))

	applied, err = store.ListApplied(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, applied.Len())
	require.True(t, applied.Contains("v1.0.1__foo.sql"))
	require.False(t, applied.Contains("V1.0.2__bar.sql"))

	entries := applied.Entries()
	require.Equal(t, "V1.0.0__create_users.sql", entries[0].Identifier)
	require.Equal(t, "V1.0.1__Foo.sql", entries[1].Identifier)
	for _, e := range entries {
		require.True(t, e.AppliedAt.After(before), "applied_at %s should be assigned by the database", e.AppliedAt)
	}
}

func TestRecordAppliedDuplicate(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, openSQLite(t), "")
	require.NoError(t, store.EnsureSchema(ctx))

	require.NoError(t, store.RecordApplied(ctx, "V1.0.1__Foo.sql"))

	err := store.RecordApplied(ctx, "V1.0.1__Foo.sql")
	require.ErrorIs(t, err, ErrDuplicateIdentifier)
	require.NotErrorIs(t, err, ErrStoreUnavailable)

	err = store.RecordApplied(ctx, "v1.0.1__foo.sql")
	require.ErrorIs(t, err, ErrDuplicateIdentifier)

	applied, err := store.ListApplied(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, applied.Len())
}

func TestStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	store := newStore(t, db, "")
	require.NoError(t, db.Close())

	_, err := store.Exists(ctx)
	require.ErrorIs(t, err, ErrStoreUnavailable)

	require.ErrorIs(t, store.EnsureSchema(ctx), ErrStoreUnavailable)

	_, err = store.ListApplied(ctx)
	require.ErrorIs(t, err, ErrStoreUnavailable)

	err = store.RecordApplied(ctx, "V1__init.sql")
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.NotErrorIs(t, err, ErrDuplicateIdentifier)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	require.Equal(t, "record applied", storeErr.Op)
}

func TestListAppliedWithoutTable(t *testing.T) {
	_, err := newStore(t, openSQLite(t), "").ListApplied(context.Background())
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

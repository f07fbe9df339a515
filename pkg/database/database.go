package database

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/parser"
)

// ErrScriptFailed is returned by Target.Execute when the database rejects a
// script. The cause is available through errors.Unwrap.
var ErrScriptFailed = errors.New("script execution failed")

// Open connects to a database using the given database/sql driver and verifies
// the connection with a ping. The ping is bounded only by ctx.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("database DSN is required")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s connection", driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to connect to %s", driver)
	}

	return db, nil
}

// Target executes migration scripts against a database.
type Target struct {
	db   *sql.DB
	mode TxMode
}

// NewTarget returns a Target executing scripts on db using the given
// transaction mode. An empty mode means auto.
func NewTarget(db *sql.DB, mode TxMode) *Target {
	if mode == "" {
		mode = TxModeAuto
	}

	return &Target{db: db, mode: mode}
}

// Mode returns the configured transaction mode.
func (t *Target) Mode() TxMode {
	return t.mode
}

// Execute runs script as a single unit. Scripts that are blank after trimming
// are treated as successful no-ops.
//
// In auto mode, scripts containing BEGIN, COMMIT, ROLLBACK or START
// TRANSACTION manage their own transaction and are executed unwrapped;
// everything else runs inside a transaction that is rolled back on failure.
// Multi-statement scripts require a driver that accepts them in one exec call
// (lib/pq and modernc sqlite do, go-sql-driver/mysql needs multiStatements=true).
func (t *Target) Execute(ctx context.Context, identifier, script string) error {
	if strings.TrimSpace(script) == "" {
		slog.Debug("Skipping empty script", "identifier", identifier)
		return nil
	}

	wrap, err := t.shouldWrap(script)
	if err != nil {
		return errors.Wrapf(err, "failed to inspect %s", identifier)
	}

	slog.Debug("Executing script", "identifier", identifier, "transaction", wrap)
	if wrap {
		return t.execInTx(ctx, script)
	}

	return t.exec(ctx, script)
}

func (t *Target) shouldWrap(script string) (bool, error) {
	switch t.mode {
	case TxModeAlways:
		return true, nil
	case TxModeNever:
		return false, nil
	}

	managed, err := parser.HasTransactionControl(strings.NewReader(script))
	if err != nil {
		return false, err
	}

	return !managed, nil
}

func (t *Target) exec(ctx context.Context, script string) error {
	// Scripts that manage their own transactions need every statement on the
	// same session.
	conn, err := t.db.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to acquire connection")
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, script); err != nil {
		return scriptError(err)
	}

	return nil
}

func (t *Target) execInTx(ctx context.Context, script string) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	if _, err := tx.ExecContext(ctx, script); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Warn("Failed to roll back transaction", "err", rbErr)
		}
		return scriptError(err)
	}

	if err := tx.Commit(); err != nil {
		return scriptError(errors.Wrap(err, "failed to commit"))
	}

	return nil
}

type execError struct {
	err error
}

func (e *execError) Error() string        { return e.err.Error() }
func (e *execError) Is(target error) bool { return target == ErrScriptFailed }
func (e *execError) Unwrap() error        { return e.err }

func scriptError(err error) error {
	return &execError{err: err}
}

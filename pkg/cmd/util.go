package cmd

import (
	"context"
	"database/sql"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/config"
	"github.com/pseudomuto/migrun/pkg/database"
	"github.com/pseudomuto/migrun/pkg/ledger"
	"github.com/pseudomuto/migrun/pkg/migrator"
	"github.com/urfave/cli/v3"
)

// DSNEnvVar supplies the connection string when --dsn isn't given.
const DSNEnvVar = "MIGRUN_DSN"

// settings is the configuration after command-line flags have been applied on
// top of migrun.yaml.
type settings struct {
	DSN        string
	Dir        string
	Driver     string
	Table      string
	Extensions []string
	TxMode     database.TxMode
}

func dsnFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "dsn",
		Usage:   "connection string for the target database",
		Sources: cli.EnvVars(DSNEnvVar),
		Config: cli.StringConfig{
			TrimSpace: true,
		},
	}
}

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "dir",
		Aliases:     []string{"d"},
		Usage:       "directory containing migration scripts",
		DefaultText: "dir from migrun.yaml or db/migrations",
		Config: cli.StringConfig{
			TrimSpace: true,
		},
	}
}

func driverFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "driver",
		Usage:       "target engine: postgres, sqlite or mysql",
		DefaultText: "driver from migrun.yaml or postgres",
		Config: cli.StringConfig{
			TrimSpace: true,
		},
	}
}

func tableFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "table",
		Usage:       "ledger table name, optionally schema-qualified",
		DefaultText: "ledger.table from migrun.yaml or migrun_ledger",
		Config: cli.StringConfig{
			TrimSpace: true,
		},
	}
}

func txModeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "tx-mode",
		Usage:       "transaction wrapping: auto, always or never",
		DefaultText: "tx_mode from migrun.yaml or auto",
		Config: cli.StringConfig{
			TrimSpace: true,
		},
	}
}

// resolveSettings merges flags that were explicitly set over cfg. A nil cfg
// means no migrun.yaml was loaded.
func resolveSettings(cmd *cli.Command, cfg *config.Config) (*settings, error) {
	if cfg == nil {
		cfg = config.Defaults()
	}

	merged := *cfg
	if cmd.IsSet("dir") {
		merged.Dir = cmd.String("dir")
	}
	if cmd.IsSet("driver") {
		merged.Driver = cmd.String("driver")
	}
	if cmd.IsSet("table") {
		merged.Ledger.Table = cmd.String("table")
	}
	if cmd.IsSet("tx-mode") {
		merged.TxMode = cmd.String("tx-mode")
	}

	if err := merged.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}

	mode, err := database.ParseTxMode(merged.TxMode)
	if err != nil {
		return nil, err
	}

	return &settings{
		DSN:        lookupDSN(cmd),
		Dir:        merged.Dir,
		Driver:     merged.Driver,
		Table:      merged.Ledger.Table,
		Extensions: merged.Extensions,
		TxMode:     mode,
	}, nil
}

// lookupDSN returns the --dsn value. Flag sources are read before the root Before
// hook loads --env-file, so the environment is consulted again here.
func lookupDSN(cmd *cli.Command) string {
	if cmd.IsSet("dsn") {
		return cmd.String("dsn")
	}

	return strings.TrimSpace(os.Getenv(DSNEnvVar))
}

// source returns the migrations directory as an fs.FS, failing early when it
// doesn't exist so that a typo isn't reported as "nothing to do".
func (s *settings) source() (fs.FS, error) {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open migrations directory %s", s.Dir)
	}

	if !info.IsDir() {
		return nil, errors.Errorf("migrations path %s is not a directory", s.Dir)
	}

	return os.DirFS(s.Dir), nil
}

func (s *settings) resolver() *migrator.Resolver {
	return migrator.NewResolver(s.Extensions...)
}

// openLedger connects to the target database and returns the ledger store for
// it. The caller owns the returned *sql.DB.
func (s *settings) openLedger(ctx context.Context) (*sql.DB, *ledger.Store, error) {
	if s.DSN == "" {
		return nil, nil, errors.Errorf("a connection string is required (--dsn or %s)", DSNEnvVar)
	}

	dialect, err := ledger.LookupDialect(s.Driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Open(ctx, dialect.Driver(), s.DSN)
	if err != nil {
		return nil, nil, err
	}

	store, err := ledger.New(db, ledger.Config{Dialect: dialect, Table: s.Table})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return db, store, nil
}

// stdout and stderr return the root command's writers, which default to the
// process streams and are replaced in tests.
func stdout(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func stderr(cmd *cli.Command) io.Writer {
	return cmd.Root().ErrWriter
}

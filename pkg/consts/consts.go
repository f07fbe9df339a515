package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultConfigFile is the project configuration file looked up in the
	// working directory.
	DefaultConfigFile = "migrun.yaml"

	// DefaultMigrationsDir is the directory holding migration scripts when the
	// configuration doesn't name one.
	DefaultMigrationsDir = "db/migrations"

	// DefaultDriver is the target engine used when none is configured.
	DefaultDriver = "postgres"

	// DefaultLedgerTable is the name of the table recording applied migrations.
	DefaultLedgerTable = "migrun_ledger"

	// DefaultExtension is the only script extension considered by default.
	DefaultExtension = ".sql"

	// DefaultTxMode wraps scripts in a transaction unless they manage their own.
	DefaultTxMode = "auto"
)

// Package cmd provides CLI commands for the migrun tool.
//
// Commands are constructed by functions returning a *cli.Command and are
// registered in an fx value group, so adding a command only requires an entry
// in Module.
//
// # Available Commands
//
//   - init: scaffold migrun.yaml and db/migrations
//   - new: create the next migration script
//   - migrate: apply pending migrations (--dry-run shows the plan instead)
//   - status: show which migrations are applied or pending
//   - validate: check file names and ordering without a database
//
// # Settings
//
// Every command starts from migrun.yaml (or the defaults when the file is
// absent) and applies flags on top of it:
//
//   - --dsn: connection string, also read from MIGRUN_DSN (which the global
//     --env-file flag can load from a dotenv file)
//   - --dir, -d: migrations directory
//   - --driver: postgres, sqlite or mysql
//   - --table: ledger table name
//   - --tx-mode: auto, always or never (migrate only)
//
// # Example Usage
//
//	migrun validate
//	migrun status --dsn "postgres://localhost/app?sslmode=disable"
//	migrun migrate --dsn "postgres://localhost/app?sslmode=disable"
//	migrun migrate --driver sqlite --dsn app.db --dry-run
//
// The process exits non-zero when a command fails. For migrate, the failing
// script and the underlying error are written to stderr.
package cmd

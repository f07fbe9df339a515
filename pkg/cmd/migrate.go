package cmd

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/config"
	"github.com/pseudomuto/migrun/pkg/database"
	"github.com/pseudomuto/migrun/pkg/executor"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type migrateParams struct {
	fx.In

	Config *config.Config
}

// migrate creates the migrate command for applying pending migrations.
//
// Command flags:
//   - --dsn: connection string for the target database (or MIGRUN_DSN)
//   - --dir, -d: directory containing migration scripts
//   - --driver: postgres, sqlite or mysql
//   - --table: ledger table name
//   - --tx-mode: auto, always or never
//   - --dry-run: show what would be executed without applying changes
//
// Example usage:
//
//	# Apply all pending migrations
//	migrun migrate --dsn "postgres://localhost/app?sslmode=disable"
//
//	# Show what would be executed without applying
//	migrun migrate --driver sqlite --dsn app.db --dry-run
func migrate(p migrateParams) *cli.Command {
	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"apply"},
		Usage:   "Apply pending migrations",
		Description: `Apply every pending migration to the target database, in order.

Scripts already recorded in the ledger are skipped. The run stops at the first
script that fails; scripts after it are left untouched and will be attempted by
the next run once the failure is fixed. The ledger table is created on the
first run.`,
		Flags: []cli.Flag{
			dsnFlag(),
			dirFlag(),
			driverFlag(),
			tableFlag(),
			txModeFlag(),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would be executed without applying changes",
				Value: false,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runMigrate(ctx, cmd, p)
		},
	}
}

func runMigrate(ctx context.Context, cmd *cli.Command, p migrateParams) error {
	s, err := resolveSettings(cmd, p.Config)
	if err != nil {
		return err
	}

	dryRun := cmd.Bool("dry-run")
	slog.Info("Starting migration execution",
		"dir", s.Dir,
		"driver", s.Driver,
		"table", s.Table,
		"tx_mode", s.TxMode,
		"dry_run", dryRun,
	)

	source, err := s.source()
	if err != nil {
		return err
	}

	db, store, err := s.openLedger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if dryRun {
		plan, err := executor.BuildPlan(ctx, store, s.resolver(), source)
		if err != nil {
			return errors.Wrap(err, "failed to build plan")
		}

		reportDryRun(stdout(cmd), plan)
		return nil
	}

	exec := executor.New(executor.Config{
		Ledger:   store,
		Target:   database.NewTarget(db, s.TxMode),
		Resolver: s.resolver(),
	})

	result, err := exec.Run(ctx, source)
	reportRun(stdout(cmd), result)
	if err != nil {
		reportFailure(stderr(cmd), result)
		return err
	}

	return nil
}

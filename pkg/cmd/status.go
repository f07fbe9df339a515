package cmd

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/config"
	"github.com/pseudomuto/migrun/pkg/executor"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type statusParams struct {
	fx.In

	Config *config.Config
}

// status creates the status command for showing which migrations have been
// applied.
//
// The command never writes to the target: a missing ledger table is reported
// rather than created, and every migration is shown as pending.
//
// Example usage:
//
//	migrun status --dsn "postgres://localhost/app?sslmode=disable"
func status(p statusParams) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show migration status",
		Description: `Display every migration file as applied (with the time it was recorded)
or pending, followed by ledger entries that no longer have a matching file.`,
		Flags: []cli.Flag{
			dsnFlag(),
			dirFlag(),
			driverFlag(),
			tableFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runStatus(ctx, cmd, p)
		},
	}
}

func runStatus(ctx context.Context, cmd *cli.Command, p statusParams) error {
	s, err := resolveSettings(cmd, p.Config)
	if err != nil {
		return err
	}

	slog.Info("Checking migration status", "dir", s.Dir, "driver", s.Driver, "table", s.Table)

	source, err := s.source()
	if err != nil {
		return err
	}

	db, store, err := s.openLedger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	plan, err := executor.BuildPlan(ctx, store, s.resolver(), source)
	if err != nil {
		return errors.Wrap(err, "failed to load migration status")
	}

	reportStatus(stdout(cmd), plan)
	return nil
}

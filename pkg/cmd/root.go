package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the main migrun CLI application with the given
// version and command-line arguments.
//
// Global Flags:
//   - --log-level: slog level for diagnostics written to stderr (default: info)
//   - --env-file: dotenv file loaded before commands read MIGRUN_DSN
//
// The process exits with code 0 when the command succeeds (including when
// there is nothing to apply) and 1 otherwise.
//
// Example usage:
//
//	migrun migrate --dsn "postgres://localhost/app?sslmode=disable"
//	migrun --log-level debug status --driver sqlite --dsn app.db
//	migrun validate --dir db/migrations
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "migrun",
		Usage: "A forward-only SQL migration runner",
		Description: `migrun applies versioned SQL scripts to a database exactly once and in
order, recording each applied script in a ledger table inside the target
database. Scripts are named V<version>__<description>.sql.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load environment variables (e.g. MIGRUN_DSN) from a dotenv file",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
				Value: "info",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := loadEnvFile(cmd.String("env-file")); err != nil {
				return ctx, err
			}

			return ctx, configureLogging(cmd.ErrWriter, cmd.String("log-level"))
		},
		Commands: p.Commands,
	}

	// Migrations can run far longer than fx's start timeout, so the command
	// runs outside of the start hook.
	p.Lifecycle.Append(fx.StartHook(func() {
		go func() {
			if err := app.Run(p.Ctx, p.Args); err != nil {
				slog.Error("Error running command", "err", err)
				_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				return
			}

			_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
		}()
	}))
}

func configureLogging(w io.Writer, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadEnvFile sets variables from a dotenv file. Variables already present in
// the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load env file %s", path)
	}

	return nil
}

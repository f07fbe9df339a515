package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type validateParams struct {
	fx.In

	Config *config.Config
}

// validate creates the validate command, which resolves the migration set
// without connecting to a database. It fails when a file name can't be parsed
// or when versions don't increase in file name order.
//
// Example usage:
//
//	migrun validate --dir db/migrations
func validate(p validateParams) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check migration file names and ordering",
		Description: `Resolve the migration set exactly like migrate does, without touching a
database. Use it in CI to reject malformed or misordered file names before they
reach a deployment.`,
		Flags: []cli.Flag{
			dirFlag(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return runValidate(cmd, p)
		},
	}
}

func runValidate(cmd *cli.Command, p validateParams) error {
	s, err := resolveSettings(cmd, p.Config)
	if err != nil {
		return err
	}

	slog.Debug("Validating migrations", "dir", s.Dir, "extensions", s.Extensions)

	source, err := s.source()
	if err != nil {
		return err
	}

	candidates, err := s.resolver().ListCandidates(source)
	if err != nil {
		fmt.Fprintf(stderr(cmd), "invalid migration set: %v\n", err)
		return errors.Wrap(err, "failed to validate migrations")
	}

	reportCandidates(stdout(cmd), candidates)
	return nil
}

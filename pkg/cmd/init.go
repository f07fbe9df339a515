package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/project"
	"github.com/urfave/cli/v3"
)

// initCmd creates the init command, which scaffolds migrun.yaml and the
// migrations directory in the given path (default: current directory).
//
// Example usage:
//
//	migrun init
//	migrun init --driver sqlite --table schema_history ./service
func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Initialize a migrun project",
		ArgsUsage: "[path]",
		Description: `Create migrun.yaml and db/migrations in the given directory. Existing
files are never overwritten, so running init twice is safe.`,
		Flags: []cli.Flag{
			driverFlag(),
			tableFlag(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			root := cmd.Args().First()
			if root == "" {
				root = "."
			}

			proj := project.New(root)
			err := proj.Initialize(project.InitOptions{
				Driver: cmd.String("driver"),
				Table:  cmd.String("table"),
			})
			if err != nil {
				return errors.Wrap(err, "failed to initialize project")
			}

			fmt.Fprintf(stdout(cmd), "Initialized migrun project in %s\n", root)
			fmt.Fprintf(stdout(cmd), "Add migrations to %s\n", proj.Config().Dir)
			return nil
		},
	}
}

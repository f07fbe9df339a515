package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/config"
	"github.com/pseudomuto/migrun/pkg/project"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type newParams struct {
	fx.In

	Config *config.Config
}

// newCmd creates the new command, which adds an empty migration script that
// sorts after every existing one.
//
// Example usage:
//
//	# Creates db/migrations/V20250102030405__add_users_table.sql
//	migrun new add users table
//
//	# Creates db/migrations/V1.2.0__add_email.sql
//	migrun new --set-version 1.2.0 add email
func newCmd(p newParams) *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a new migration script",
		ArgsUsage: "<description>",
		Description: `Create an empty V<version>__<description>.sql script in the migrations
directory. The version defaults to the current UTC time (yyyyMMddHHmmss).`,
		Flags: []cli.Flag{
			dirFlag(),
			&cli.StringFlag{
				Name:  "set-version",
				Usage: "explicit version, e.g. 1.2.0",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			description := strings.Join(cmd.Args().Slice(), " ")
			if description == "" {
				return errors.New("a description is required")
			}

			s, err := resolveSettings(cmd, p.Config)
			if err != nil {
				return err
			}

			path, err := project.CreateMigration(s.Dir, project.NewMigrationOptions{
				Description: description,
				Version:     cmd.String("set-version"),
				Extensions:  s.Extensions,
			})
			if err != nil {
				return errors.Wrap(err, "failed to create migration")
			}

			fmt.Fprintf(stdout(cmd), "Created %s\n", path)
			return nil
		},
	}
}

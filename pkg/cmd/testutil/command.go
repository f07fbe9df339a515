package testutil

import (
	"bytes"
	"context"
	"testing"

	"github.com/urfave/cli/v3"
)

// RunCommand executes a command with test context
func RunCommand(t *testing.T, command *cli.Command, args []string) error {
	t.Helper()
	return RunCommandWithContext(context.Background(), t, command, args)
}

// RunCommandWithContext executes a command with a custom context
func RunCommandWithContext(ctx context.Context, t *testing.T, command *cli.Command, args []string) error {
	t.Helper()

	// Create a test CLI app
	app := &cli.Command{
		Name:     "test",
		Commands: []*cli.Command{command},
	}

	// Prepend command name to args
	fullArgs := append([]string{"test", command.Name}, args...)

	return app.Run(ctx, fullArgs)
}

// CommandOutput holds what a command wrote while running.
type CommandOutput struct {
	Stdout string
	Stderr string
}

// RunCommandCaptured executes a command with its output captured in memory.
func RunCommandCaptured(t *testing.T, command *cli.Command, args []string) (CommandOutput, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := &cli.Command{
		Name:      "test",
		Commands:  []*cli.Command{command},
		Writer:    &stdout,
		ErrWriter: &stderr,
	}

	fullArgs := append([]string{"test", command.Name}, args...)
	err := app.Run(context.Background(), fullArgs)

	return CommandOutput{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

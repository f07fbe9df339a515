package cmd

import (
	"path/filepath"
	"testing"

	"github.com/pseudomuto/migrun/pkg/cmd/testutil"
	"github.com/pseudomuto/migrun/pkg/config"
	"github.com/pseudomuto/migrun/pkg/consts"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := testutil.RunCommandCaptured(t, initCmd(), []string{"--driver", "sqlite", dir})
	require.NoError(t, err)
	require.Contains(t, out.Stdout, "Initialized migrun project in "+dir)
	require.DirExists(t, filepath.Join(dir, "db", "migrations"))

	cfg, err := config.LoadConfigFile(filepath.Join(dir, consts.DefaultConfigFile))
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Driver)
	require.Equal(t, consts.DefaultLedgerTable, cfg.Ledger.Table)

	t.Run("invalid_driver", func(t *testing.T) {
		_, err := testutil.RunCommandCaptured(t, initCmd(), []string{"--driver", "oracle", t.TempDir()})
		require.ErrorContains(t, err, "failed to initialize project")
	})
}

func TestNewCommand(t *testing.T) {
	fixture := testutil.TestProject(t).WithMigrations(createUsers)
	cfg := config.Defaults()
	cfg.Dir = fixture.MigrationsDir()

	out, err := testutil.RunCommandCaptured(t, newCmd(newParams{Config: cfg}), []string{"--set-version", "1.1.0", "add", "orders"})
	require.NoError(t, err)

	path := filepath.Join(fixture.MigrationsDir(), "V1.1.0__add_orders.sql")
	require.Contains(t, out.Stdout, "Created "+path)
	require.FileExists(t, path)

	// The new script keeps the directory valid.
	_, err = testutil.RunCommandCaptured(t, validate(validateParams{Config: cfg}), nil)
	require.NoError(t, err)

	t.Run("requires_description", func(t *testing.T) {
		_, err := testutil.RunCommandCaptured(t, newCmd(newParams{Config: cfg}), nil)
		require.ErrorContains(t, err, "a description is required")
	})

	t.Run("rejects_out_of_order_version", func(t *testing.T) {
		_, err := testutil.RunCommandCaptured(t, newCmd(newParams{Config: cfg}), []string{"--set-version", "1.0.5", "late"})
		require.ErrorContains(t, err, "failed to create migration")
	})
}

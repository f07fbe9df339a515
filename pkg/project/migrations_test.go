package project_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pseudomuto/migrun/pkg/consts"
	"github.com/pseudomuto/migrun/pkg/migrator"
	"github.com/pseudomuto/migrun/pkg/project"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("timestamp_version", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "migrations")

		path, err := project.CreateMigration(dir, project.NewMigrationOptions{
			Description: "Add users table!",
			Time:        created,
		})
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "V20250102030405__add_users_table.sql"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "-- Add users table!\n", string(data))

		candidates, err := migrator.NewResolver().ListCandidates(os.DirFS(dir))
		require.NoError(t, err)
		require.Len(t, candidates, 1)
	})

	t.Run("explicit_version_and_extension", func(t *testing.T) {
		dir := t.TempDir()
		writeScript(t, dir, "V1.0.0__init.psql")

		path, err := project.CreateMigration(dir, project.NewMigrationOptions{
			Description: "seed",
			Version:     "V1.1",
			Extensions:  []string{"psql"},
		})
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "V1.1__seed.psql"), path)
	})

	tests := []struct {
		name     string
		existing []string
		opts     project.NewMigrationOptions
		err      string
	}{
		{
			name: "empty_description",
			opts: project.NewMigrationOptions{Description: " -- "},
			err:  "invalid migration description",
		},
		{
			name: "malformed_version",
			opts: project.NewMigrationOptions{Description: "x", Version: "1.a"},
			err:  "malformed migration identifier",
		},
		{
			name:     "sorts_before_existing",
			existing: []string{"V2__two.sql"},
			opts:     project.NewMigrationOptions{Description: "one", Version: "10"},
			err:      "would invalidate the migration set",
		},
		{
			name:     "not_last",
			existing: []string{"V2__two.sql"},
			opts:     project.NewMigrationOptions{Description: "one", Version: "1"},
			err:      "would sort before V2__two.sql",
		},
		{
			name:     "already_exists",
			existing: []string{"V3__three.sql"},
			opts:     project.NewMigrationOptions{Description: "three", Version: "3"},
			err:      "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.existing {
				writeScript(t, dir, name)
			}

			path, err := project.CreateMigration(dir, tt.opts)
			require.ErrorContains(t, err, tt.err)
			require.Empty(t, path)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, len(tt.existing))
		})
	}
}

func writeScript(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), consts.ModeFile))
}

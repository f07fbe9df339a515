package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/migrun/pkg/consts"
	"github.com/stretchr/testify/require"
)

// MigrationFile represents a test migration
type MigrationFile struct {
	Name string
	SQL  string
}

// ProjectFixture is a temporary project directory holding a migrun.yaml and
// a migrations directory.
type ProjectFixture struct {
	Dir string
	t   *testing.T
}

// TestProject creates an isolated temp directory with an empty migrations
// directory.
func TestProject(t *testing.T) *ProjectFixture {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, consts.DefaultMigrationsDir), consts.ModeDir))

	return &ProjectFixture{Dir: dir, t: t}
}

// WithMigrations adds migration files to the project
func (p *ProjectFixture) WithMigrations(migrations ...MigrationFile) *ProjectFixture {
	p.t.Helper()

	for _, m := range migrations {
		path := filepath.Join(p.MigrationsDir(), m.Name)
		require.NoError(p.t, os.WriteFile(path, []byte(m.SQL), consts.ModeFile), "Failed to write migration file: %s", m.Name)
	}

	return p
}

// WithConfig writes migrun.yaml with the given content
func (p *ProjectFixture) WithConfig(content string) *ProjectFixture {
	p.t.Helper()

	require.NoError(p.t, os.WriteFile(p.ConfigPath(), []byte(content), consts.ModeFile), "Failed to write config")
	return p
}

// MigrationsDir returns the path to the migrations directory
func (p *ProjectFixture) MigrationsDir() string {
	return filepath.Join(p.Dir, consts.DefaultMigrationsDir)
}

// ConfigPath returns the path to the migrun.yaml file
func (p *ProjectFixture) ConfigPath() string {
	return filepath.Join(p.Dir, consts.DefaultConfigFile)
}

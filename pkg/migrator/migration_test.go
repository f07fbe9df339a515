package migrator_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/pseudomuto/migrun/pkg/migrator"
	"github.com/stretchr/testify/require"
)

func TestNewMigration(t *testing.T) {
	fsys := fstest.MapFS{
		"V1.0.1__create_users.sql": {Data: []byte("CREATE TABLE users (id INT);")},
	}

	m, err := migrator.NewMigration(fsys, "V1.0.1__create_users.sql")
	require.NoError(t, err)
	require.Equal(t, "V1.0.1__create_users.sql", m.Identifier)
	require.Equal(t, migrator.Version{1, 0, 1}, m.Version)
	require.Equal(t, "create_users", m.Description)
	require.Equal(t, ".sql", m.Extension)
	require.Equal(t, "V1.0.1__create_users.sql", m.String())

	script, err := m.Load()
	require.NoError(t, err)
	require.Equal(t, "CREATE TABLE users (id INT);", script)
}

func TestNewMigrationMalformed(t *testing.T) {
	_, err := migrator.NewMigration(fstest.MapFS{}, "create_users.sql")
	require.ErrorIs(t, err, migrator.ErrMalformedIdentifier)

	var idErr *migrator.IdentifierError
	require.ErrorAs(t, err, &idErr)
	require.Equal(t, "create_users.sql", idErr.Filename)
}

func TestMigrationLoadMissingFile(t *testing.T) {
	m, err := migrator.NewMigration(fstest.MapFS{}, "V1__gone.sql")
	require.NoError(t, err)

	_, err = m.Load()
	require.ErrorIs(t, err, fs.ErrNotExist)
}

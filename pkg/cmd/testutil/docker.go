package testutil

import (
	"context"
	"database/sql"
	"os/exec"
	"testing"
	"time"

	"github.com/pseudomuto/migrun/pkg/database"
	"github.com/pseudomuto/migrun/pkg/docker"
	"github.com/stretchr/testify/require"

	// Drivers for the DSNs returned by StartPostgres and StartMySQL.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// SkipIfNoDocker skips the test if Docker is not available
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	// Check if Docker binary exists
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	// Check if Docker daemon is running
	cmd := exec.CommandContext(t.Context(), "docker", "ps")
	if err := cmd.Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

// StartPostgres starts a PostgreSQL container for the duration of the test
// and returns its DSN. The test is skipped in short mode or when Docker isn't
// available.
func StartPostgres(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container := docker.New()
	require.NoError(t, container.Start(ctx), "Failed to start PostgreSQL container")

	// Register cleanup
	t.Cleanup(func() {
		_ = container.Stop(context.Background())
	})

	dsn, err := container.GetDSN(ctx)
	require.NoError(t, err, "Failed to get container DSN")

	return dsn
}

// StartMySQL starts a MySQL container for the duration of the test and returns
// its DSN. The test is skipped in short mode or when Docker isn't available.
func StartMySQL(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container := docker.NewMySQL(docker.DockerOptions{})
	require.NoError(t, container.Start(ctx), "Failed to start MySQL container")

	t.Cleanup(func() {
		_ = container.Stop(context.Background())
	})

	dsn, err := container.GetDSN(ctx)
	require.NoError(t, err, "Failed to get container DSN")

	return dsn
}

// OpenMySQL opens a connection to dsn that is closed when the test ends.
func OpenMySQL(t *testing.T, dsn string) *sql.DB {
	t.Helper()

	db, err := database.Open(context.Background(), "mysql", dsn)
	require.NoError(t, err, "Failed to connect to MySQL")
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// OpenPostgres opens a connection to dsn that is closed when the test ends.
func OpenPostgres(t *testing.T, dsn string) *sql.DB {
	t.Helper()

	db, err := database.Open(context.Background(), "postgres", dsn)
	require.NoError(t, err, "Failed to connect to PostgreSQL")
	t.Cleanup(func() { _ = db.Close() })

	return db
}

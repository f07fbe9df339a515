package docker_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/pseudomuto/migrun/pkg/database"
	"github.com/pseudomuto/migrun/pkg/docker"
	"github.com/stretchr/testify/require"
)

// skipIfNoDocker skips the test if Docker is not available
func skipIfNoDocker(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	// Check if Docker daemon is running
	cmd := exec.Command("docker", "ps")
	if err := cmd.Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

func TestNewWithOptionsDefaults(t *testing.T) {
	opts := docker.New().Options()
	require.Equal(t, docker.DefaultPostgresVersion, opts.Version)
	require.Equal(t, docker.DefaultDatabase, opts.Database)
	require.Equal(t, docker.DefaultUsername, opts.Username)
	require.Equal(t, docker.DefaultPassword, opts.Password)

	opts = docker.NewWithOptions(docker.DockerOptions{Version: "15-alpine", Database: "app"}).Options()
	require.Equal(t, "15-alpine", opts.Version)
	require.Equal(t, "app", opts.Database)
	require.Equal(t, docker.DefaultUsername, opts.Username)
}

func TestNewMySQLDefaults(t *testing.T) {
	opts := docker.NewMySQL(docker.DockerOptions{}).Options()
	require.Equal(t, docker.DefaultMySQLVersion, opts.Version)
	require.Equal(t, docker.DefaultDatabase, opts.Database)
	require.Equal(t, docker.DefaultUsername, opts.Username)
	require.Equal(t, docker.DefaultPassword, opts.Password)

	opts = docker.NewMySQL(docker.DockerOptions{Version: "8.4"}).Options()
	require.Equal(t, "8.4", opts.Version)

	container := docker.NewMySQL(docker.DockerOptions{})
	require.False(t, container.IsRunning())
	_, err := container.GetDSN(context.Background())
	require.Error(t, err)
	require.NoError(t, container.Stop(context.Background()))
}

func TestContainerNotRunning(t *testing.T) {
	container := docker.New()
	require.False(t, container.IsRunning())

	_, err := container.GetDSN(context.Background())
	require.Error(t, err)

	require.NoError(t, container.Stop(context.Background()))
}

func TestDockerContainer_StartStop(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Docker tests in short mode")
	}

	skipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container := docker.New()
	defer func() {
		_ = container.Stop(ctx)
	}()

	require.NoError(t, container.Start(ctx))
	require.True(t, container.IsRunning())
	require.Error(t, container.Start(ctx), "starting twice should fail")

	dsn, err := container.GetDSN(ctx)
	require.NoError(t, err)
	require.Contains(t, dsn, "sslmode=disable")

	db, err := database.Open(ctx, "postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	require.NoError(t, container.Stop(ctx))
	require.False(t, container.IsRunning())
}

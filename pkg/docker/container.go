package docker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultPostgresVersion is the image tag used when none is configured.
	DefaultPostgresVersion = "16-alpine"

	// DefaultDatabase is the database created inside the container.
	DefaultDatabase = "migrun"

	// DefaultUsername and DefaultPassword are the superuser credentials.
	DefaultUsername = "migrun"
	DefaultPassword = "migrun"
)

type (
	// DockerOptions represents options for running PostgreSQL in Docker
	DockerOptions struct {
		// Version is the postgres image tag (default: 16-alpine)
		Version string

		// Database, Username and Password configure the initial database.
		Database string
		Username string
		Password string
	}

	// Container manages a throwaway PostgreSQL container to run migrations
	// against.
	Container struct {
		options   DockerOptions
		container *postgres.PostgresContainer
	}
)

// New creates a new Docker container with default options
//
// Example:
//
//	container := docker.New()
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer container.Stop(ctx)
//
//	dsn, _ := container.GetDSN(ctx)
func New() *Container {
	return NewWithOptions(DockerOptions{})
}

// NewWithOptions creates a new Docker container with custom options. Empty
// fields fall back to the package defaults.
func NewWithOptions(opts DockerOptions) *Container {
	if opts.Version == "" {
		opts.Version = DefaultPostgresVersion
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Username == "" {
		opts.Username = DefaultUsername
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}

	return &Container{options: opts}
}

// Options returns the effective container options.
func (c *Container) Options() DockerOptions {
	return c.options
}

// Start starts the PostgreSQL container and waits until it accepts
// connections.
func (c *Container) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	container, err := postgres.Run(ctx,
		"postgres:"+c.options.Version,
		postgres.WithDatabase(c.options.Database),
		postgres.WithUsername(c.options.Username),
		postgres.WithPassword(c.options.Password),
		testcontainers.WithWaitStrategyAndDeadline(
			2*time.Minute,
			// postgres restarts once after running its init scripts
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		),
	)
	if err != nil {
		return errors.Wrap(err, "failed to start PostgreSQL container")
	}

	c.container = container
	return nil
}

// Stop stops and removes the container
func (c *Container) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil // Already stopped
	}

	err := c.container.Terminate(ctx)
	c.container = nil

	if err != nil {
		return errors.Wrap(err, "failed to stop PostgreSQL container")
	}

	return nil
}

// GetDSN returns a lib/pq connection string for the running container
func (c *Container) GetDSN(ctx context.Context) (string, error) {
	if c.container == nil {
		return "", errors.New("container is not running")
	}

	dsn, err := c.container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}

	return dsn, nil
}

// IsRunning returns true if the container is currently running
func (c *Container) IsRunning() bool {
	return c.container != nil
}

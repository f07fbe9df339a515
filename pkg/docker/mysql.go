package docker

import (
	"context"

	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
)

// DefaultMySQLVersion is the mysql image tag used when none is configured.
const DefaultMySQLVersion = "8.0"

// MySQLContainer manages a throwaway MySQL container. It accepts the same
// DockerOptions as Container, with Version naming a mysql image tag.
type MySQLContainer struct {
	options   DockerOptions
	container *mysql.MySQLContainer
}

// NewMySQL creates a MySQL container. Empty fields fall back to the package
// defaults.
//
// Example:
//
//	container := docker.NewMySQL(docker.DockerOptions{})
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer container.Stop(ctx)
//
//	dsn, _ := container.GetDSN(ctx)
func NewMySQL(opts DockerOptions) *MySQLContainer {
	if opts.Version == "" {
		opts.Version = DefaultMySQLVersion
	}

	opts = NewWithOptions(opts).Options()
	return &MySQLContainer{options: opts}
}

// Options returns the effective container options.
func (c *MySQLContainer) Options() DockerOptions {
	return c.options
}

// Start starts the MySQL container and waits until it accepts connections.
func (c *MySQLContainer) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	container, err := mysql.Run(ctx,
		"mysql:"+c.options.Version,
		mysql.WithDatabase(c.options.Database),
		mysql.WithUsername(c.options.Username),
		mysql.WithPassword(c.options.Password),
	)
	if err != nil {
		return errors.Wrap(err, "failed to start MySQL container")
	}

	c.container = container
	return nil
}

// Stop stops and removes the container
func (c *MySQLContainer) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil
	}

	err := c.container.Terminate(ctx)
	c.container = nil

	if err != nil {
		return errors.Wrap(err, "failed to stop MySQL container")
	}

	return nil
}

// GetDSN returns a go-sql-driver/mysql connection string for the running
// container.
func (c *MySQLContainer) GetDSN(ctx context.Context) (string, error) {
	if c.container == nil {
		return "", errors.New("container is not running")
	}

	dsn, err := c.container.ConnectionString(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}

	return dsn, nil
}

// IsRunning returns true if the container is currently running
func (c *MySQLContainer) IsRunning() bool {
	return c.container != nil
}

// Package docker runs throwaway PostgreSQL and MySQL instances for exercising
// migrations against a real database.
//
// Containers are managed through the testcontainers-go postgres and mysql
// modules, so the only requirement is a reachable Docker daemon. NewMySQL
// returns a MySQLContainer with the same Start, Stop and GetDSN methods.
//
// # Usage Example
//
//	container := docker.NewWithOptions(docker.DockerOptions{Version: "16-alpine"})
//	if err := container.Start(ctx); err != nil {
//		return err
//	}
//	defer func() { _ = container.Stop(ctx) }()
//
//	dsn, err := container.GetDSN(ctx)
//	if err != nil {
//		return err
//	}
//
//	db, err := database.Open(ctx, "postgres", dsn)
package docker

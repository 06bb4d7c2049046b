package integration_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const migrationsURL = "file://../../migrations"

// testContainers holds the throwaway Postgres and Redis instances shared by a suite.
type testContainers struct {
	postgres *postgres.PostgresContainer
	redis    *tcredis.RedisContainer

	DSN       string
	RedisAddr string
}

func startContainers(ctx context.Context) (*testContainers, error) {
	tc := &testContainers{}

	err := tc.startPostgres(ctx)
	if err == nil {
		err = tc.startRedis(ctx)
	}
	if err != nil {
		return nil, errors.Join(err, tc.terminate())
	}

	return tc, nil
}

func (tc *testContainers) startPostgres(ctx context.Context) error {
	ready := wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, host, port.Port(), dbName)
	}).WithStartupTimeout(time.Minute)

	container, err := postgres.Run(ctx, dbImageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(ready),
	)
	if container != nil {
		tc.postgres = container
	}
	if err != nil {
		return fmt.Errorf("starting postgres: %w", err)
	}

	tc.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fmt.Errorf("reading postgres connection string: %w", err)
	}

	return applyMigrations(tc.DSN)
}

func (tc *testContainers) startRedis(ctx context.Context) error {
	container, err := tcredis.Run(ctx, cacheImageName)
	if container != nil {
		tc.redis = container
	}
	if err != nil {
		return fmt.Errorf("starting redis: %w", err)
	}

	// the app takes a host:port address, not a redis:// URL
	tc.RedisAddr, err = container.Endpoint(ctx, "")
	if err != nil {
		return fmt.Errorf("reading redis endpoint: %w", err)
	}

	return nil
}

func (tc *testContainers) terminate() error {
	var errs []error

	if tc.postgres != nil {
		errs = append(errs, testcontainers.TerminateContainer(tc.postgres))
	}
	if tc.redis != nil {
		errs = append(errs, testcontainers.TerminateContainer(tc.redis))
	}

	return errors.Join(errs...)
}

func applyMigrations(dsn string) error {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parsing dsn: %w", err)
	}

	db := pgxstd.OpenDB(*config)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsURL, "pgx", driver)
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	return nil
}

package repository_test

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/migrations"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// startPostgres runs a throwaway database and brings its schema up the same
// way the server does at startup.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, *pgxpool.Pool, error) {
	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.WithDatabase("storefront"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres.Run: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, fmt.Errorf("container.ConnectionString: %w", err)
	}

	if err := migrations.Up(dsn, nil); err != nil {
		return container, nil, fmt.Errorf("migrations.Up: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return container, nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	return container, pool, nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing for the batch operations. Each run works through one unit of
// work at a time, so a small pool covers the ingest fan-in plus the settlement
// pass; short-lived runs should not hold idle connections for long.
const (
	poolMaxConns        = 8
	poolMinConns        = 1
	poolMaxConnIdleTime = 30 * time.Second
	poolMaxConnLifetime = 30 * time.Minute
)

// DB wraps a pgx connection pool shared by the repositories.
type DB struct {
	*pgxpool.Pool
}

// NewConnection opens and pings a pool for the given URL. Every connection
// runs in UTC so kickoff cutoffs and settlement claims never depend on the
// host timezone.
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = poolMaxConns
	config.MinConns = poolMinConns
	config.MaxConnIdleTime = poolMaxConnIdleTime
	config.MaxConnLifetime = poolMaxConnLifetime
	config.ConnConfig.RuntimeParams["timezone"] = "UTC"

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close releases the pool.
func (db *DB) Close() {
	db.Pool.Close()
}

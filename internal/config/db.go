package config

import (
	"context"
	"fmt"
	"time"

	"kampuskitap/internal/logging"
	"kampuskitap/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var (
	connectMaxRetries    = 5
	connectRetryInterval = 5 * time.Second
)

// ConnectDB establishes a connection pool to the PostgreSQL database
func ConnectDB(ctx context.Context, dsn string, log logging.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	var pool *pgxpool.Pool
	// Retry connecting to the database a few times
	for i := 0; i < connectMaxRetries; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Info(ctx, "connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		log.Warn(ctx, "failed to connect to database",
			"attempt", i+1, "max_attempts", connectMaxRetries, "error", err)
		if i == connectMaxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectRetryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", connectMaxRetries, err)
}

// Migrate applies the embedded goose migrations
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	return nil
}

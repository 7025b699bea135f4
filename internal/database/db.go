package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"restdb/internal/config"
)

var Pool *pgxpool.Pool

// Connect builds the connection pool for the configured database. An
// unreachable database is not fatal here: the pool is returned anyway so
// the server can start degraded and recover on a later catalog refresh.
func Connect(cfg config.DBConfig) (*pgxpool.Pool, error) {
	log.Printf("Connecting to database: %s", cfg.Redacted())

	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string (check your .env file): %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		log.Printf("Database not reachable yet: %v", err)
	} else {
		log.Println("Database connection pool established successfully")
	}

	Pool = pool
	return pool, nil
}

func Close() {
	if Pool != nil {
		Pool.Close()
		log.Println("Database connection pool closed")
	}
}

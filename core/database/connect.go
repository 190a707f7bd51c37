package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m3rciful/petshop/core/logger"
)

const (
	// postgresReadyTimeout bounds how long Connect waits for a starting server.
	postgresReadyTimeout = 30 * time.Second
	pingInterval         = 2 * time.Second
)

// Connect opens the pool and pings it. A postgres server is given
// postgresReadyTimeout to come up; SQLite must answer at once.
func Connect(cfg Config) (*sqlx.DB, error) {
	start := time.Now()
	db, err := sqlx.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxConnections)

	wait := 5 * time.Second
	if cfg.Driver == DriverPostgres {
		wait = postgresReadyTimeout
	}
	if err := waitReady(db, wait); err != nil {
		_ = db.Close()
		logger.DB.Error("db connect failed",
			slog.String("event", "db.connect"),
			slog.String("driver", cfg.Driver),
			slog.String("db", cfg.Target()),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("db connect: %w", err)
	}

	logger.DB.Info("db connected",
		slog.String("event", "db.connect"),
		slog.String("driver", cfg.Driver),
		slog.String("db", cfg.Target()),
		slog.Int("pool_open", cfg.MaxConnections),
		slog.Duration("duration", logger.Took(start)),
	)
	return db, nil
}

// waitReady pings db until it answers or timeout elapses.
func waitReady(db *sqlx.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		err := db.PingContext(ctx)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("database not ready after %s: %w", timeout, err)
		case <-ticker.C:
			logger.DB.Debug("db not ready, retrying",
				slog.String("event", "db.wait"),
				slog.String("err", err.Error()),
			)
		}
	}
}

package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"pantrify/internal/config"
)

// NewDB creates a new PostgreSQL connection pool.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// Pinger checks database reachability for readiness probes.
type Pinger struct {
	db *sqlx.DB
}

// NewPinger wraps db for health checks.
func NewPinger(db *sqlx.DB) *Pinger {
	return &Pinger{db: db}
}

// Ping verifies a connection can be established within ctx.
func (p *Pinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Package store publishes cleaned TCUV rows to PostgreSQL.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/gep-fisheries/internal/config"
	"github.com/JonMunkholm/gep-fisheries/internal/core"
	"github.com/JonMunkholm/gep-fisheries/internal/logging"
)

// copyColumns lists the table columns in the order copyRows returns values.
var copyColumns = []string{"admin", "tcuv"}

// Publisher replaces the contents of one table with the latest rows.
type Publisher struct {
	pool  *pgxpool.Pool
	table pgx.Identifier
	cfg   config.DatabaseConfig
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Publisher, error) {
	table, err := parseIdentifier(cfg.Table)
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Publisher{pool: pool, table: table, cfg: cfg}, nil
}

// Close releases the pool.
func (p *Publisher) Close() {
	p.pool.Close()
}

// Publish creates the table if needed and replaces its rows in one
// transaction using the COPY protocol. Returns the number of rows copied.
func (p *Publisher) Publish(ctx context.Context, rows []core.Row) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	logger := logging.WithFields(ctx, "table", p.table.Sanitize())

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	table := p.table.Sanitize()
	if _, err := tx.Exec(ctx, fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (admin text PRIMARY KEY, tcuv numeric)", table)); err != nil {
		return 0, fmt.Errorf("create table %s: %w", table, err)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE %s", table)); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", table, err)
	}

	values, skipped := copyRows(rows)
	if skipped > 0 {
		logger.Warn("non-numeric TCUV values stored as NULL", "count", skipped)
	}

	n, err := tx.CopyFrom(ctx, p.table, copyColumns, pgx.CopyFromRows(values))
	if err != nil {
		return 0, fmt.Errorf("copy rows into %s: %w", table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	logger.Debug("rows copied", "rows", n)
	return n, nil
}

// copyRows converts rows to COPY values in copyColumns order. It also reports
// how many non-empty TCUV cells were not numeric and so become NULL.
func copyRows(rows []core.Row) ([][]any, int) {
	out := make([][]any, len(rows))
	skipped := 0

	for i, r := range rows {
		if !r.TCUV.Valid && strings.TrimSpace(r.Text) != "" {
			skipped++
		}
		out[i] = []any{
			pgtype.Text{String: r.Admin, Valid: true},
			toPgNumeric(r),
		}
	}

	return out, skipped
}

// toPgNumeric converts a row's TCUV to pgtype.Numeric.
// Returns invalid (NULL) for empty or non-numeric values.
func toPgNumeric(r core.Row) pgtype.Numeric {
	if !r.TCUV.Valid {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(r.TCUV.Decimal.String()); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// parseIdentifier splits an optionally schema-qualified table name.
func parseIdentifier(name string) (pgx.Identifier, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid table name %q", name)
	}
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("invalid table name %q", name)
		}
	}
	return pgx.Identifier(parts), nil
}

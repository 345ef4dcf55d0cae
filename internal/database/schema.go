package database

import (
	"context"
	"fmt"
)

// schema is applied on startup; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS glucose_readings (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		value_mgdl INTEGER NOT NULL,
		life_count BIGINT NOT NULL,
		measured_at TIMESTAMPTZ NOT NULL,
		color INTEGER NOT NULL DEFAULT 0,
		trend_arrow INTEGER NOT NULL DEFAULT 0,
		trend_message TEXT NOT NULL DEFAULT '',
		is_high BOOLEAN NOT NULL DEFAULT FALSE,
		is_low BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (source, life_count, measured_at)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_glucose_readings_measured_at
		ON glucose_readings (measured_at DESC)`,
	`CREATE TABLE IF NOT EXISTS alarm_events (
		event_id BIGINT PRIMARY KEY,
		kind TEXT NOT NULL,
		triggered_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sensors (
		id TEXT PRIMARY KEY,
		serial TEXT NOT NULL UNIQUE,
		product_type INTEGER NOT NULL DEFAULT 0,
		activated_at TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
		age_minutes BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the tables this service needs.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

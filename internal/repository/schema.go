package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      VARCHAR(150) NOT NULL UNIQUE,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	id                TEXT PRIMARY KEY,
	owner_id          TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	title             VARCHAR(200) NOT NULL,
	description       TEXT NOT NULL,
	category          VARCHAR(20) NOT NULL DEFAULT 'other',
	daily_price_cents BIGINT NOT NULL CHECK (daily_price_cents > 0),
	status            VARCHAR(20) NOT NULL DEFAULT 'available'
		CHECK (status IN ('available', 'rented')),
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS items_owner_id_idx ON items (owner_id);
CREATE INDEX IF NOT EXISTS items_status_idx ON items (status);

CREATE TABLE IF NOT EXISTS bookings (
	id                TEXT PRIMARY KEY,
	item_id           TEXT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
	renter_id         TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	start_date        DATE NOT NULL,
	end_date          DATE NOT NULL,
	total_price_cents BIGINT NOT NULL CHECK (total_price_cents > 0),
	status            VARCHAR(20) NOT NULL DEFAULT 'pending'
		CHECK (status IN ('pending', 'approved', 'rejected', 'returned')),
	created_at        TIMESTAMPTZ NOT NULL,
	CHECK (end_date > start_date)
);

CREATE INDEX IF NOT EXISTS bookings_item_id_idx ON bookings (item_id);
CREATE INDEX IF NOT EXISTS bookings_renter_id_idx ON bookings (renter_id);
`

// Migrate creates the marketplace tables if they do not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migrate: apply schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}
	return nil
}

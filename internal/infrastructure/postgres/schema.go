package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the persisted layout: six record collections keyed by opaque
// string ids, with the uniqueness invariants enforced at the store level so
// concurrent inserts race into a constraint instead of a duplicate. Every
// referential check is application-level; there are no foreign keys.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS rooms (
	id         TEXT PRIMARY KEY,
	number     TEXT NOT NULL UNIQUE,
	price      NUMERIC(14,2) NOT NULL,
	amenities  TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tenants (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	phone      TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	id_number  TEXT NOT NULL,
	address    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS rentals (
	id         TEXT PRIMARY KEY,
	tenant_id  TEXT NOT NULL,
	room_id    TEXT NOT NULL,
	start_date TIMESTAMPTZ NOT NULL,
	end_date   TIMESTAMPTZ,
	price      NUMERIC(14,2) NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

-- at most one active rental per room
CREATE UNIQUE INDEX IF NOT EXISTS rentals_one_active_per_room
	ON rentals (room_id) WHERE status = 'active';

CREATE TABLE IF NOT EXISTS bills (
	id              TEXT PRIMARY KEY,
	rental_id       TEXT NOT NULL,
	month           INT NOT NULL,
	year            INT NOT NULL,
	amount          NUMERIC(14,2) NOT NULL,
	kind            TEXT NOT NULL,
	note            TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	payment_method  TEXT NOT NULL DEFAULT '',
	paid_at         TIMESTAMPTZ,
	proof_reference TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL,
	UNIQUE (rental_id, month, year, kind)
);

CREATE TABLE IF NOT EXISTS transactions (
	id        TEXT PRIMARY KEY,
	kind      TEXT NOT NULL,
	amount    NUMERIC(14,2) NOT NULL,
	source    TEXT NOT NULL,
	category  TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS maintenance (
	id             TEXT PRIMARY KEY,
	location       TEXT NOT NULL,
	room_id        TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL,
	assignee       TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	cost           NUMERIC(14,2) NOT NULL DEFAULT 0,
	expense_logged BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the tables and indexes when they do not exist yet.
// Called once at process start.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

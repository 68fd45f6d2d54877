package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL bootstraps the port_logistics tables. Status columns are plain
// text enums validated in the domain layer; CHECK constraints back the
// occupancy and location invariants at the storage boundary.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS client (
        client_id      BIGSERIAL PRIMARY KEY,
        company_name   TEXT NOT NULL,
        contact_person TEXT NOT NULL DEFAULT '',
        email          TEXT NOT NULL DEFAULT '',
        phone_number   TEXT NOT NULL DEFAULT ''
    )`,
	`CREATE TABLE IF NOT EXISTS vessel (
        vessel_id   BIGSERIAL PRIMARY KEY,
        vessel_name TEXT NOT NULL,
        imo_number  TEXT NOT NULL UNIQUE
    )`,
	`CREATE TABLE IF NOT EXISTS berth (
        berth_id     BIGSERIAL PRIMARY KEY,
        berth_number TEXT NOT NULL UNIQUE,
        status       TEXT NOT NULL DEFAULT 'AVAILABLE',
        vessel_id    BIGINT UNIQUE REFERENCES vessel(vessel_id)
    )`,
	`CREATE TABLE IF NOT EXISTS yard_stack (
        yard_stack_id BIGSERIAL PRIMARY KEY,
        stack_code    TEXT NOT NULL UNIQUE,
        capacity      INT NOT NULL CHECK (capacity >= 0),
        occupancy     INT NOT NULL DEFAULT 0 CHECK (occupancy >= 0 AND occupancy <= capacity)
    )`,
	`CREATE TABLE IF NOT EXISTS shipment (
        shipment_id       BIGSERIAL PRIMARY KEY,
        client_id         BIGINT NOT NULL REFERENCES client(client_id),
        status            TEXT NOT NULL DEFAULT 'PENDING',
        bill_of_lading_no TEXT NOT NULL UNIQUE,
        origin            TEXT NOT NULL DEFAULT '',
        destination       TEXT NOT NULL DEFAULT '',
        declared_value    NUMERIC(14,2) NOT NULL DEFAULT 0,
        archived_at       TIMESTAMPTZ
    )`,
	`CREATE TABLE IF NOT EXISTS customs_declaration (
        declaration_id   BIGSERIAL PRIMARY KEY,
        shipment_id      BIGINT NOT NULL UNIQUE REFERENCES shipment(shipment_id),
        declaration_date TIMESTAMPTZ NOT NULL,
        status           TEXT NOT NULL DEFAULT 'PENDING'
    )`,
	`CREATE TABLE IF NOT EXISTS container (
        container_id     BIGSERIAL PRIMARY KEY,
        shipment_id      BIGINT NOT NULL REFERENCES shipment(shipment_id),
        container_number TEXT NOT NULL UNIQUE,
        container_type   TEXT NOT NULL DEFAULT 'DRY',
        size             INT NOT NULL DEFAULT 20,
        vessel_id        BIGINT REFERENCES vessel(vessel_id),
        yard_stack_id    BIGINT REFERENCES yard_stack(yard_stack_id),
        CHECK (vessel_id IS NULL OR yard_stack_id IS NULL)
    )`,
	`CREATE TABLE IF NOT EXISTS truck (
        truck_id     BIGSERIAL PRIMARY KEY,
        plate_no     TEXT NOT NULL UNIQUE,
        container_id BIGINT UNIQUE REFERENCES container(container_id)
    )`,
	`CREATE INDEX IF NOT EXISTS idx_container_shipment ON container(shipment_id)`,
	`CREATE INDEX IF NOT EXISTS idx_container_vessel ON container(vessel_id) WHERE vessel_id IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_shipment_status ON shipment(status) WHERE archived_at IS NULL`,
}

// EnsureSchema creates the terminal tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaDDL {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements are idempotent and run on every startup. The unique
// constraint on players.name is the enforcement point for name uniqueness.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		x DOUBLE PRECISION NOT NULL DEFAULT 0,
		y DOUBLE PRECISION NOT NULL DEFAULT 0,
		width DOUBLE PRECISION NOT NULL DEFAULT 30,
		height DOUBLE PRECISION NOT NULL DEFAULT 30,
		area VARCHAR(255),
		color VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id UUID PRIMARY KEY,
		author VARCHAR(255) NOT NULL,
		task TEXT NOT NULL,
		done BOOLEAN NOT NULL DEFAULT FALSE,
		x DOUBLE PRECISION NOT NULL DEFAULT 0,
		y DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos (created_at)`,
}

// ensureSchema creates the tables if they do not exist yet
func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	pkgdb "reading-tracker-backend/pkg/database"
)

// The three stores are flat record tables keyed the way the domain reads
// them: books by (user_id, book_id), users by user_id, counters by name.
// No secondary indexes; every search runs as a per-user partition scan.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS books (
		user_id          TEXT        NOT NULL,
		book_id          TEXT        NOT NULL,
		title            TEXT        NOT NULL,
		author           TEXT        NOT NULL,
		genre            TEXT        NOT NULL DEFAULT '',
		tags             TEXT[]      NOT NULL DEFAULT '{}',
		rating           NUMERIC,
		status           TEXT        NOT NULL,
		total_pages      INTEGER     NOT NULL DEFAULT 0,
		pages_read       INTEGER     NOT NULL DEFAULT 0,
		progress_percent NUMERIC(7,2) NOT NULL DEFAULT 0,
		deadline         TEXT,
		archived         BOOLEAN     NOT NULL DEFAULT FALSE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, book_id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id         TEXT        PRIMARY KEY,
		name            TEXT        NOT NULL,
		email           TEXT        NOT NULL,
		recommendations JSONB       NOT NULL DEFAULT '[]',
		welcome_sent    BOOLEAN     NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS counters (
		counter_name  TEXT   PRIMARY KEY,
		current_value BIGINT NOT NULL
	)`,
}

// EnsureSchema creates the tables on startup when they do not exist yet.
// All statements run in one transaction so a half-built schema never
// survives a failed start.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	err := pkgdb.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("schema bootstrap failed: %w", err)
	}
	return nil
}

package idgen

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresStore backs both CounterStore and IDScanner with the
// counters/users/books tables.
type postgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *postgresStore {
	return &postgresStore{pool: pool}
}

func (s *postgresStore) Increment(ctx context.Context, name string) (int64, bool, error) {
	query := `
		UPDATE counters
		SET current_value = current_value + 1
		WHERE counter_name = $1
		RETURNING current_value
	`

	var value int64
	err := s.pool.QueryRow(ctx, query, name).Scan(&value)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("increment counter %s: %w", name, err)
	}
	return value, true, nil
}

func (s *postgresStore) InitIfAbsent(ctx context.Context, name string, value int64) (bool, error) {
	query := `
		INSERT INTO counters (counter_name, current_value)
		VALUES ($1, $2)
		ON CONFLICT (counter_name) DO NOTHING
	`

	result, err := s.pool.Exec(ctx, query, name, value)
	if err != nil {
		return false, fmt.Errorf("init counter %s: %w", name, err)
	}
	return result.RowsAffected() == 1, nil
}

func (s *postgresStore) UserIDs(ctx context.Context) ([]string, error) {
	return s.scanIDs(ctx, `SELECT user_id FROM users`)
}

func (s *postgresStore) BookIDs(ctx context.Context) ([]string, error) {
	return s.scanIDs(ctx, `SELECT book_id FROM books`)
}

func (s *postgresStore) scanIDs(ctx context.Context, query string) ([]string, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("id scan failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/internal/domains/user"
	"reading-tracker-backend/pkg/cache"
)

const userCacheTTL = 30 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository returns the pgx-backed user repository.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func userCacheKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func storageErr(op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("User storage failure")
	return fmt.Errorf("%s: %w", op, user.ErrStorageUnavailable)
}

// Create inserts the profile only when the ID is free; an existing
// record is left untouched and reported as a duplicate.
func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (user_id, name, email, recommendations, welcome_sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query,
		u.UserID, u.Name, u.Email, u.Recommendations, u.WelcomeSent, u.CreatedAt,
	)
	if err != nil {
		return storageErr("create user", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrDuplicateUser
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, userID string) (*user.User, error) {
	cacheKey := userCacheKey(userID)

	var cached user.User
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `
		SELECT user_id, name, email, recommendations, welcome_sent, created_at
		FROM users
		WHERE user_id = $1
	`

	var u user.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&u.UserID, &u.Name, &u.Email, &u.Recommendations, &u.WelcomeSent, &u.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, storageErr("find user", err)
	}

	if err := r.cache.Set(ctx, cacheKey, &u, userCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("User cache set failed")
	}

	return &u, nil
}

func (r *postgresRepository) MarkWelcomeSent(ctx context.Context, userID string) error {
	query := `UPDATE users SET welcome_sent = TRUE WHERE user_id = $1`

	result, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return storageErr("mark welcome sent", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

func (r *postgresRepository) SetRecommendations(ctx context.Context, userID string, recs []user.Recommendation) error {
	query := `UPDATE users SET recommendations = $2 WHERE user_id = $1`

	result, err := r.pool.Exec(ctx, query, userID, recs)
	if err != nil {
		return storageErr("set recommendations", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Delete(ctx, userCacheKey(userID)); err != nil {
		log.Warn().Err(err).Msg("User cache invalidation failed")
	}
}

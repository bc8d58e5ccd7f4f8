package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/internal/domains/book"
	"reading-tracker-backend/pkg/cache"
)

const (
	bookCacheTTL = 15 * time.Minute

	bookColumns = `user_id, book_id, title, author, genre, tags, rating, status,
		total_pages, pages_read, progress_percent, deadline, archived, created_at`
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository returns the pgx-backed book repository.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) book.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func bookCacheKey(userID, bookID string) string {
	return fmt.Sprintf("book:%s:%s", userID, bookID)
}

// storageErr logs the backend failure and surfaces the generic
// retry-later error; callers never see a partial write.
func storageErr(op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("Book storage failure")
	return fmt.Errorf("%s: %w", op, book.ErrStorageUnavailable)
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) error {
	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		b.UserID, b.BookID, b.Title, b.Author, b.Genre, pq.Array(b.Tags),
		b.Rating, b.Status, b.TotalPages, b.PagesRead, b.ProgressPercent,
		b.Deadline, b.Archived, b.CreatedAt,
	)
	if err != nil {
		return storageErr("create book", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, userID, bookID string) (*book.Book, error) {
	cacheKey := bookCacheKey(userID, bookID)

	var cached book.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE user_id = $1 AND book_id = $2`

	b, err := r.scanBook(r.pool.QueryRow(ctx, query, userID, bookID))
	if err == pgx.ErrNoRows {
		return nil, book.ErrBookNotFound
	}
	if err != nil {
		return nil, storageErr("find book", err)
	}

	if err := r.cache.Set(ctx, cacheKey, b, bookCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Book cache set failed")
	}

	return b, nil
}

func (r *postgresRepository) ExistsByTitleAuthor(ctx context.Context, userID, title, author string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE user_id = $1 AND title = $2 AND author = $3)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, title, author).Scan(&exists); err != nil {
		return false, storageErr("check duplicate book", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) error {
	query := `
		UPDATE books
		SET title = $3, author = $4, genre = $5, tags = $6, rating = $7,
		    status = $8, total_pages = $9, pages_read = $10,
		    progress_percent = $11, deadline = $12, archived = $13
		WHERE user_id = $1 AND book_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		b.UserID, b.BookID, b.Title, b.Author, b.Genre, pq.Array(b.Tags),
		b.Rating, b.Status, b.TotalPages, b.PagesRead, b.ProgressPercent,
		b.Deadline, b.Archived,
	)
	if err != nil {
		return storageErr("update book", err)
	}
	if result.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidate(ctx, b.UserID, b.BookID)
	return nil
}

func (r *postgresRepository) UpdateProgress(ctx context.Context, b *book.Book) error {
	query := `
		UPDATE books
		SET pages_read = $3, total_pages = $4, progress_percent = $5,
		    status = $6, deadline = $7, rating = $8
		WHERE user_id = $1 AND book_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		b.UserID, b.BookID, b.PagesRead, b.TotalPages, b.ProgressPercent,
		b.Status, b.Deadline, b.Rating,
	)
	if err != nil {
		return storageErr("update progress", err)
	}
	if result.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidate(ctx, b.UserID, b.BookID)
	return nil
}

func (r *postgresRepository) SetArchived(ctx context.Context, userID, bookID string, archived bool) error {
	query := `UPDATE books SET archived = $3 WHERE user_id = $1 AND book_id = $2`

	result, err := r.pool.Exec(ctx, query, userID, bookID, archived)
	if err != nil {
		return storageErr("set archived", err)
	}
	if result.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidate(ctx, userID, bookID)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID, bookID string) (bool, error) {
	query := `DELETE FROM books WHERE user_id = $1 AND book_id = $2`

	result, err := r.pool.Exec(ctx, query, userID, bookID)
	if err != nil {
		return false, storageErr("delete book", err)
	}

	r.invalidate(ctx, userID, bookID)
	return result.RowsAffected() > 0, nil
}

// Search matches the keyword as a case-sensitive substring of title or
// author within the user's partition.
func (r *postgresRepository) Search(ctx context.Context, userID, keyword string) ([]book.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE user_id = $1 AND (strpos(title, $2) > 0 OR strpos(author, $2) > 0)
	`

	return r.queryBooks(ctx, "search books", query, userID, keyword)
}

func (r *postgresRepository) Filter(ctx context.Context, userID string, f book.Filter) ([]book.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE user_id = $1`
	args := []interface{}{userID}

	if f.Genre != "" {
		args = append(args, f.Genre)
		query += fmt.Sprintf(" AND genre = $%d", len(args))
	}
	if f.Rating != nil {
		args = append(args, *f.Rating)
		query += fmt.Sprintf(" AND rating = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	return r.queryBooks(ctx, "filter books", query, args...)
}

func (r *postgresRepository) History(ctx context.Context, userID string) ([]book.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE user_id = $1 AND archived = FALSE
		ORDER BY created_at DESC
	`

	return r.queryBooks(ctx, "load history", query, userID)
}

func (r *postgresRepository) ListOverdue(ctx context.Context, today string) ([]book.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE archived = FALSE AND status <> $1
		  AND deadline IS NOT NULL AND deadline < $2
	`

	return r.queryBooks(ctx, "list overdue", query, book.StatusCompleted, today)
}

func (r *postgresRepository) queryBooks(ctx context.Context, op, query string, args ...interface{}) ([]book.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		b, err := r.scanBook(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return books, nil
}

func (r *postgresRepository) scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	err := row.Scan(
		&b.UserID, &b.BookID, &b.Title, &b.Author, &b.Genre, pq.Array(&b.Tags),
		&b.Rating, &b.Status, &b.TotalPages, &b.PagesRead, &b.ProgressPercent,
		&b.Deadline, &b.Archived, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, userID, bookID string) {
	if err := r.cache.Delete(ctx, bookCacheKey(userID, bookID)); err != nil {
		log.Warn().Err(err).Msg("Book cache invalidation failed")
	}
}

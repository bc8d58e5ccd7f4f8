package book

import "context"

// Repository is the data access contract for the books table.
// Every query is scoped to a single user partition.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	FindByID(ctx context.Context, userID, bookID string) (*Book, error)
	ExistsByTitleAuthor(ctx context.Context, userID, title, author string) (bool, error)

	// Update persists the whole record in one atomic write.
	Update(ctx context.Context, b *Book) error

	// UpdateProgress persists the progress fields (pages, percent, status,
	// optional deadline/rating) in a single atomic update.
	UpdateProgress(ctx context.Context, b *Book) error

	SetArchived(ctx context.Context, userID, bookID string, archived bool) error

	// Delete reports found=false when the book did not exist; that is a
	// no-op, not an error.
	Delete(ctx context.Context, userID, bookID string) (bool, error)

	Search(ctx context.Context, userID, keyword string) ([]Book, error)
	Filter(ctx context.Context, userID string, f Filter) ([]Book, error)

	// History lists non-archived books, newest first.
	History(ctx context.Context, userID string) ([]Book, error)

	// ListOverdue returns non-archived, non-completed books across all
	// users whose deadline is strictly before today (ISO date).
	ListOverdue(ctx context.Context, today string) ([]Book, error)
}

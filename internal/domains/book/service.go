package book

import (
	"context"

	"github.com/shopspring/decimal"
)

// IDGenerator issues book IDs; satisfied by the idgen allocator.
type IDGenerator interface {
	GenerateBookID(ctx context.Context) (string, error)
}

// Service is the business contract consumed by the HTTP layer.
type Service interface {
	AddBook(ctx context.Context, userID string, req AddBookRequest) (*Book, error)
	GetBook(ctx context.Context, userID, bookID string) (*Book, error)
	EditBook(ctx context.Context, userID, bookID string, updates []FieldUpdate) (*Book, error)
	DeleteBook(ctx context.Context, userID, bookID string) (bool, error)
	SearchBooks(ctx context.Context, userID, keyword string) ([]Book, error)
	FilterBooks(ctx context.Context, userID string, f Filter) ([]Book, error)
	GetHistory(ctx context.Context, userID string) ([]Book, error)
	UpdateProgress(ctx context.Context, userID, bookID string, req UpdateProgressRequest) (decimal.Decimal, error)
	Archive(ctx context.Context, userID, bookID string) error
	Unarchive(ctx context.Context, userID, bookID string) error
}

package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the reading lifecycle of a book.
type Status string

const (
	StatusToRead    Status = "to-read"
	StatusReading   Status = "reading"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusToRead, StatusReading, StatusCompleted:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Book is the domain entity, keyed by (user_id, book_id).
// progress_percent is derived from the page counts and recomputed on every
// write that touches either of them; it is never stored stale.
type Book struct {
	UserID string `db:"user_id" json:"user_id"`
	BookID string `db:"book_id" json:"book_id"`

	Title  string   `db:"title" json:"title"`
	Author string   `db:"author" json:"author"`
	Genre  string   `db:"genre" json:"genre"`
	Tags   []string `db:"tags" json:"tags"`

	Rating *decimal.Decimal `db:"rating" json:"rating,omitempty"`
	Status Status           `db:"status" json:"status"`

	TotalPages      int             `db:"total_pages" json:"total_pages"`
	PagesRead       int             `db:"pages_read" json:"pages_read"`
	ProgressPercent decimal.Decimal `db:"progress_percent" json:"progress_percent"`

	Deadline *string `db:"deadline" json:"deadline,omitempty"`
	Archived bool    `db:"archived" json:"archived"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ComputeProgress returns round(pagesRead/totalPages*100, 2) using exact
// decimal arithmetic. A zero page count yields 0 rather than dividing.
func ComputeProgress(pagesRead, totalPages int) decimal.Decimal {
	if totalPages <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(pagesRead)).
		Div(decimal.NewFromInt(int64(totalPages))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// ParseTags splits a comma-separated tag string into trimmed, non-empty tags.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// RatingInRange reports whether r lies in the accepted [1,5] band.
func RatingInRange(r decimal.Decimal) bool {
	return r.GreaterThanOrEqual(decimal.NewFromInt(1)) && r.LessThanOrEqual(decimal.NewFromInt(5))
}

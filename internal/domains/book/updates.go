package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldUpdate is one editable field with its own validation and derivation
// rule. Edits are a closed set of variants rather than a free-form
// field-name map, so each rule is checked at compile time.
type FieldUpdate interface {
	Apply(b *Book) error
}

type TitleUpdate struct {
	Value string
}

func (u TitleUpdate) Apply(b *Book) error {
	v := strings.TrimSpace(u.Value)
	if v == "" {
		return ErrRequiredFieldMissing
	}
	b.Title = v
	return nil
}

type AuthorUpdate struct {
	Value string
}

func (u AuthorUpdate) Apply(b *Book) error {
	v := strings.TrimSpace(u.Value)
	if v == "" {
		return ErrRequiredFieldMissing
	}
	b.Author = v
	return nil
}

type GenreUpdate struct {
	Value string
}

func (u GenreUpdate) Apply(b *Book) error {
	b.Genre = strings.TrimSpace(u.Value)
	return nil
}

// TagsUpdate accepts the raw comma-separated form and stores the parsed
// sequence.
type TagsUpdate struct {
	Value string
}

func (u TagsUpdate) Apply(b *Book) error {
	b.Tags = ParseTags(u.Value)
	return nil
}

// TotalPagesUpdate always recomputes progress_percent from the existing
// pages_read and the new total, and rejects totals below pages_read.
type TotalPagesUpdate struct {
	Value int
}

func (u TotalPagesUpdate) Apply(b *Book) error {
	if u.Value <= 0 {
		return ErrInvalidPageCount
	}
	if u.Value < b.PagesRead {
		return ErrInvalidPageCount
	}
	b.TotalPages = u.Value
	b.ProgressPercent = ComputeProgress(b.PagesRead, u.Value)
	return nil
}

type RatingUpdate struct {
	Value decimal.Decimal
}

func (u RatingUpdate) Apply(b *Book) error {
	if !RatingInRange(u.Value) {
		return ErrInvalidRating
	}
	v := u.Value
	b.Rating = &v
	return nil
}

// StatusUpdate applies the status verbatim. Status-driven page derivation
// belongs to the progress engine, not to direct field edits.
type StatusUpdate struct {
	Value Status
}

func (u StatusUpdate) Apply(b *Book) error {
	if !u.Value.IsValid() {
		return ErrInvalidStatus
	}
	b.Status = u.Value
	return nil
}

type DeadlineUpdate struct {
	Value string
}

func (u DeadlineUpdate) Apply(b *Book) error {
	v := strings.TrimSpace(u.Value)
	if v == "" {
		b.Deadline = nil
		return nil
	}
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return ErrInvalidDeadline
	}
	b.Deadline = &v
	return nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"reading-tracker-backend/internal/domains/book"
)

type bookService struct {
	repo  book.Repository
	idgen book.IDGenerator
	now   func() time.Time
}

// NewBookService wires the repository and the ID allocator.
func NewBookService(repo book.Repository, idgen book.IDGenerator) book.Service {
	return &bookService{repo: repo, idgen: idgen, now: time.Now}
}

func (s *bookService) AddBook(ctx context.Context, userID string, req book.AddBookRequest) (*book.Book, error) {
	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)

	exists, err := s.repo.ExistsByTitleAuthor(ctx, userID, title, author)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, book.ErrDuplicateBook
	}

	bookID, err := s.idgen.GenerateBookID(ctx)
	if err != nil {
		return nil, err
	}

	// Pages are derived from the status exactly as in UpdateProgress, so
	// 0 <= pages_read <= total_pages holds from the first write.
	status := book.Status(req.Status)
	pagesRead := 0
	switch status {
	case book.StatusCompleted:
		pagesRead = req.TotalPages
	case book.StatusToRead:
		pagesRead = 0
	case book.StatusReading:
		if req.PagesRead < 0 || req.PagesRead > req.TotalPages {
			return nil, book.ErrInvalidPageCount
		}
		pagesRead = req.PagesRead
	default:
		return nil, book.ErrInvalidStatus
	}

	b := &book.Book{
		UserID:          userID,
		BookID:          bookID,
		Title:           title,
		Author:          author,
		Genre:           strings.TrimSpace(req.Genre),
		Tags:            book.ParseTags(req.Tags),
		Status:          status,
		TotalPages:      req.TotalPages,
		PagesRead:       pagesRead,
		ProgressPercent: book.ComputeProgress(pagesRead, req.TotalPages),
		Archived:        false,
		CreatedAt:       s.now().UTC(),
	}
	if req.Rating != nil {
		r := decimal.NewFromFloat(*req.Rating)
		b.Rating = &r
	}
	if req.Deadline != "" {
		d := req.Deadline
		b.Deadline = &d
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", userID).
		Str("book_id", bookID).
		Str("title", title).
		Msg("Book added")

	return b, nil
}

func (s *bookService) GetBook(ctx context.Context, userID, bookID string) (*book.Book, error) {
	return s.repo.FindByID(ctx, userID, bookID)
}

func (s *bookService) EditBook(ctx context.Context, userID, bookID string, updates []book.FieldUpdate) (*book.Book, error) {
	if len(updates) == 0 {
		return nil, book.ErrNoFieldsToUpdate
	}

	b, err := s.repo.FindByID(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	for _, u := range updates {
		if err := u.Apply(b); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookService) DeleteBook(ctx context.Context, userID, bookID string) (bool, error) {
	found, err := s.repo.Delete(ctx, userID, bookID)
	if err != nil {
		return false, err
	}
	if found {
		log.Info().Str("user_id", userID).Str("book_id", bookID).Msg("Book deleted")
	}
	return found, nil
}

func (s *bookService) SearchBooks(ctx context.Context, userID, keyword string) ([]book.Book, error) {
	return s.repo.Search(ctx, userID, keyword)
}

func (s *bookService) FilterBooks(ctx context.Context, userID string, f book.Filter) ([]book.Book, error) {
	return s.repo.Filter(ctx, userID, f)
}

func (s *bookService) GetHistory(ctx context.Context, userID string) ([]book.Book, error) {
	return s.repo.History(ctx, userID)
}

// UpdateProgress derives pages_read from the target status: completed
// snaps to total_pages, to-read resets to zero, and reading takes the
// caller's page count. The stored percentage always matches the stored
// pages afterwards.
func (s *bookService) UpdateProgress(ctx context.Context, userID, bookID string, req book.UpdateProgressRequest) (decimal.Decimal, error) {
	b, err := s.repo.FindByID(ctx, userID, bookID)
	if err != nil {
		return decimal.Zero, err
	}

	if b.TotalPages <= 0 {
		return decimal.Zero, book.ErrMissingPageCount
	}

	status := book.Status(req.Status)
	switch status {
	case book.StatusCompleted:
		b.PagesRead = b.TotalPages
	case book.StatusToRead:
		b.PagesRead = 0
	case book.StatusReading:
		if req.PagesRead == nil {
			return decimal.Zero, book.ErrInvalidPageCount
		}
		if *req.PagesRead < 0 || *req.PagesRead > b.TotalPages {
			return decimal.Zero, book.ErrInvalidPageCount
		}
		b.PagesRead = *req.PagesRead
	default:
		return decimal.Zero, book.ErrInvalidStatus
	}

	b.Status = status
	b.ProgressPercent = book.ComputeProgress(b.PagesRead, b.TotalPages)

	if req.Deadline != nil {
		d := strings.TrimSpace(*req.Deadline)
		if d == "" {
			b.Deadline = nil
		} else {
			b.Deadline = &d
		}
	}
	if req.Rating != nil {
		r := decimal.NewFromInt(int64(*req.Rating))
		if !book.RatingInRange(r) {
			return decimal.Zero, book.ErrInvalidRating
		}
		b.Rating = &r
	}

	if err := s.repo.UpdateProgress(ctx, b); err != nil {
		return decimal.Zero, err
	}

	log.Info().
		Str("user_id", userID).
		Str("book_id", bookID).
		Str("status", string(status)).
		Str("progress", b.ProgressPercent.String()).
		Msg("Progress updated")

	return b.ProgressPercent, nil
}

// Archive hides a finished book from the active shelf. Only completed
// books qualify; archiving twice is reported distinctly so the caller
// can treat it as a no-op.
func (s *bookService) Archive(ctx context.Context, userID, bookID string) error {
	b, err := s.repo.FindByID(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if b.Status != book.StatusCompleted {
		return book.ErrNotCompleted
	}
	if b.Archived {
		return book.ErrAlreadyArchived
	}
	return s.repo.SetArchived(ctx, userID, bookID, true)
}

func (s *bookService) Unarchive(ctx context.Context, userID, bookID string) error {
	b, err := s.repo.FindByID(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if !b.Archived {
		return book.ErrNotArchived
	}
	return s.repo.SetArchived(ctx, userID, bookID, false)
}

package book

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/internal/shared/response"
)

var (
	ErrBookNotFound         = errors.New("book not found")
	ErrDuplicateBook        = errors.New("a book with this title and author already exists")
	ErrInvalidPageCount     = errors.New("pages read must be between 0 and total pages")
	ErrMissingPageCount     = errors.New("book has no total page count set")
	ErrNotCompleted         = errors.New("only completed books can be archived")
	ErrAlreadyArchived      = errors.New("book is already archived")
	ErrNotArchived          = errors.New("book is not archived")
	ErrRequiredFieldMissing = errors.New("title and author must not be empty")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus        = errors.New("status must be to-read, reading or completed")
	ErrInvalidDeadline      = errors.New("deadline must be an ISO date (YYYY-MM-DD)")
	ErrNoFieldsToUpdate     = errors.New("no fields supplied to update")
	ErrStorageUnavailable   = errors.New("storage backend unavailable, please retry later")
)

var bookErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrBookNotFound:         {http.StatusNotFound, "BOOK_NOT_FOUND", "The specified book does not exist"},
	ErrDuplicateBook:        {http.StatusConflict, "DUPLICATE_BOOK", "You have already added this book"},
	ErrInvalidPageCount:     {http.StatusBadRequest, "INVALID_PAGE_COUNT", "Pages read must be between 0 and total pages"},
	ErrMissingPageCount:     {http.StatusBadRequest, "MISSING_PAGE_COUNT", "Set the book's total pages before updating progress"},
	ErrNotCompleted:         {http.StatusBadRequest, "NOT_COMPLETED", "Only completed books can be archived"},
	ErrAlreadyArchived:      {http.StatusConflict, "ALREADY_ARCHIVED", "The book is already archived"},
	ErrNotArchived:          {http.StatusBadRequest, "NOT_ARCHIVED", "The book is not archived"},
	ErrRequiredFieldMissing: {http.StatusBadRequest, "REQUIRED_FIELD_MISSING", "Title and author must not be empty"},
	ErrInvalidRating:        {http.StatusBadRequest, "INVALID_RATING", "Rating must be between 1 and 5"},
	ErrInvalidStatus:        {http.StatusBadRequest, "INVALID_STATUS", "Status must be to-read, reading or completed"},
	ErrInvalidDeadline:      {http.StatusBadRequest, "INVALID_DEADLINE", "Deadline must be an ISO date (YYYY-MM-DD)"},
	ErrNoFieldsToUpdate:     {http.StatusBadRequest, "NO_FIELDS", "Supply at least one field to update"},
	ErrStorageUnavailable:   {http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Storage is temporarily unavailable, please retry later"},
}

// HandleBookError writes the mapped error response and reports whether err
// was non-nil. Unknown errors are logged and surfaced as a generic failure,
// never as a partial result.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Unhandled book error")
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	return true
}

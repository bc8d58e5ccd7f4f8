package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// AddBookRequest carries the user-supplied book data. Tags arrive in the
// comma-separated form the input layer collects them in.
type AddBookRequest struct {
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Genre      string   `json:"genre"`
	Tags       string   `json:"tags"`
	Rating     *float64 `json:"rating"`
	Status     string   `json:"status"`
	TotalPages int      `json:"total_pages"`
	PagesRead  int      `json:"pages_read"`
	Deadline   string   `json:"deadline"`
}

func (r AddBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.In(string(StatusToRead), string(StatusReading), string(StatusCompleted)).
				Error("status must be to-read, reading or completed"),
		),
		validation.Field(&r.Rating,
			validation.Min(1.0).Error("rating must be between 1 and 5"),
			validation.Max(5.0).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.TotalPages, validation.Min(0)),
		validation.Field(&r.PagesRead, validation.Min(0)),
		validation.Field(&r.Deadline, validation.Date("2006-01-02").Error("deadline must be YYYY-MM-DD")),
	)
}

// EditBookRequest updates any subset of editable fields; nil means
// untouched. Updates() turns the set fields into their tagged variants.
type EditBookRequest struct {
	Title      *string  `json:"title"`
	Author     *string  `json:"author"`
	Genre      *string  `json:"genre"`
	Tags       *string  `json:"tags"`
	TotalPages *int     `json:"total_pages"`
	Rating     *float64 `json:"rating"`
	Status     *string  `json:"status"`
	Deadline   *string  `json:"deadline"`
}

func (r EditBookRequest) Updates() []FieldUpdate {
	var updates []FieldUpdate
	if r.Title != nil {
		updates = append(updates, TitleUpdate{Value: *r.Title})
	}
	if r.Author != nil {
		updates = append(updates, AuthorUpdate{Value: *r.Author})
	}
	if r.Genre != nil {
		updates = append(updates, GenreUpdate{Value: *r.Genre})
	}
	if r.Tags != nil {
		updates = append(updates, TagsUpdate{Value: *r.Tags})
	}
	if r.TotalPages != nil {
		updates = append(updates, TotalPagesUpdate{Value: *r.TotalPages})
	}
	if r.Rating != nil {
		updates = append(updates, RatingUpdate{Value: decimal.NewFromFloat(*r.Rating)})
	}
	if r.Status != nil {
		updates = append(updates, StatusUpdate{Value: Status(*r.Status)})
	}
	if r.Deadline != nil {
		updates = append(updates, DeadlineUpdate{Value: *r.Deadline})
	}
	return updates
}

// UpdateProgressRequest drives the status-driven progress derivation.
// PagesRead is only consulted when status is "reading".
type UpdateProgressRequest struct {
	Status    string  `json:"status"`
	PagesRead *int    `json:"pages_read"`
	Deadline  *string `json:"deadline"`
	Rating    *int    `json:"rating"`
}

func (r UpdateProgressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.In(string(StatusToRead), string(StatusReading), string(StatusCompleted)).
				Error("status must be to-read, reading or completed"),
		),
		validation.Field(&r.Rating,
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Deadline, validation.Date("2006-01-02").Error("deadline must be YYYY-MM-DD")),
	)
}

// Filter is the exact-match AND predicate set for listing a user's books.
// Zero values mean "not filtered on".
type Filter struct {
	Genre  string
	Rating *float64
	Status string
}

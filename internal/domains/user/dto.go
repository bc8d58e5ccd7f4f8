package user

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var userIDFormat = regexp.MustCompile(`^U[0-9]+$`)

// RegisterRequest creates a profile. UserID is optional; when empty an
// ID is allocated from the existing profile set.
type RegisterRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID,
			validation.Match(userIDFormat).Error("user ID must look like U123"),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email must be a valid address"),
		),
	)
}

// SetRecommendationsRequest replaces the user's recommendation list.
type SetRecommendationsRequest struct {
	Recommendations []Recommendation `json:"recommendations"`
}

func (r SetRecommendationsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Recommendations, validation.Required.Error("recommendations are required")),
	)
}

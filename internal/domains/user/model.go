package user

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recommendation is one suggested title attached to a user's profile.
type Recommendation struct {
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	AvgRating decimal.Decimal `json:"avg_rating"`
}

// User is keyed by user_id alone; recommendations live inline on the
// record as a JSON document.
type User struct {
	UserID          string           `db:"user_id" json:"user_id"`
	Name            string           `db:"name" json:"name"`
	Email           string           `db:"email" json:"email"`
	Recommendations []Recommendation `db:"recommendations" json:"recommendations"`
	WelcomeSent     bool             `db:"welcome_sent" json:"welcome_sent"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
}

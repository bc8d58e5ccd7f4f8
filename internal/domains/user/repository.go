package user

import "context"

// Repository is the data access contract for the users table.
type Repository interface {
	// Create registers the profile and fails with ErrDuplicateUser when
	// the ID is already taken. The existing record is never overwritten.
	Create(ctx context.Context, u *User) error

	FindByID(ctx context.Context, userID string) (*User, error)
	MarkWelcomeSent(ctx context.Context, userID string) error
	SetRecommendations(ctx context.Context, userID string, recs []Recommendation) error
}

package user

import "context"

// IDGenerator issues user IDs; satisfied by the idgen allocator.
type IDGenerator interface {
	GenerateUserID(ctx context.Context) (string, error)
}

// Service is the business contract consumed by the HTTP layer.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	SetRecommendations(ctx context.Context, userID string, recs []Recommendation) (*User, error)
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/internal/domains/user"
	"reading-tracker-backend/internal/infrastructure/email"
)

// TaskEnqueuer is the slice of asynq.Client the service needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type userService struct {
	repo     user.Repository
	idgen    user.IDGenerator
	enqueuer TaskEnqueuer
	now      func() time.Time
}

// NewUserService wires the repository, the ID allocator and the task
// queue. enqueuer may be nil, in which case no welcome email is queued.
func NewUserService(repo user.Repository, idgen user.IDGenerator, enqueuer TaskEnqueuer) user.Service {
	return &userService{repo: repo, idgen: idgen, enqueuer: enqueuer, now: time.Now}
}

// Register creates the profile if the ID is free. When no ID is given
// one is allocated first; either way an existing profile is never
// overwritten.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		allocated, err := s.idgen.GenerateUserID(ctx)
		if err != nil {
			return nil, err
		}
		userID = allocated
	}

	u := &user.User{
		UserID:          userID,
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Recommendations: []user.Recommendation{},
		WelcomeSent:     false,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.UserID).Msg("User registered")

	s.enqueueWelcome(u)
	return u, nil
}

// enqueueWelcome queues the welcome email. Registration already
// succeeded, so a queue failure is logged and swallowed.
func (s *userService) enqueueWelcome(u *user.User) {
	if s.enqueuer == nil {
		return
	}

	task, err := email.NewWelcomeEmailTask(email.WelcomeEmailData{
		UserID: u.UserID,
		Name:   u.Name,
		Email:  u.Email,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", u.UserID).Msg("Welcome email task build failed")
		return
	}

	if _, err := s.enqueuer.Enqueue(task); err != nil {
		log.Error().Err(err).Str("user_id", u.UserID).Msg("Welcome email enqueue failed")
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*user.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *userService) SetRecommendations(ctx context.Context, userID string, recs []user.Recommendation) (*user.User, error) {
	if err := s.repo.SetRecommendations(ctx, userID, recs); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, userID)
}

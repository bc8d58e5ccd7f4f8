package service

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reading-tracker-backend/internal/domains/user"
	"reading-tracker-backend/internal/infrastructure/email"
)

type fakeRepo struct {
	users map[string]*user.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*user.User{}}
}

func (r *fakeRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.users[u.UserID]; ok {
		return user.ErrDuplicateUser
	}
	cp := *u
	r.users[u.UserID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, userID string) (*user.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) MarkWelcomeSent(_ context.Context, userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.WelcomeSent = true
	return nil
}

func (r *fakeRepo) SetRecommendations(_ context.Context, userID string, recs []user.Recommendation) error {
	u, ok := r.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Recommendations = recs
	return nil
}

type fakeIDGen struct{ id string }

func (g *fakeIDGen) GenerateUserID(context.Context) (string, error) {
	return g.id, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *fakeEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func TestRegisterWithExplicitID(t *testing.T) {
	repo := newFakeRepo()
	queue := &fakeEnqueuer{}
	svc := NewUserService(repo, &fakeIDGen{id: "U1001"}, queue)

	u, err := svc.Register(context.Background(), user.RegisterRequest{
		UserID: "U2000",
		Name:   "Ada",
		Email:  "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "U2000", u.UserID)
	assert.False(t, u.WelcomeSent)
	assert.Empty(t, u.Recommendations)
}

func TestRegisterAllocatesIDWhenMissing(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, &fakeIDGen{id: "U1001"}, &fakeEnqueuer{})

	u, err := svc.Register(context.Background(), user.RegisterRequest{
		Name:  "Ada",
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "U1001", u.UserID)
}

func TestRegisterNeverOverwritesExistingProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, &fakeIDGen{id: "U1001"}, &fakeEnqueuer{})

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		UserID: "U1001", Name: "Ada", Email: "ada@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), user.RegisterRequest{
		UserID: "U1001", Name: "Eve", Email: "eve@example.com",
	})
	assert.ErrorIs(t, err, user.ErrDuplicateUser)

	stored, err := repo.FindByID(context.Background(), "U1001")
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.Name)
}

func TestRegisterQueuesWelcomeEmailOnce(t *testing.T) {
	repo := newFakeRepo()
	queue := &fakeEnqueuer{}
	svc := NewUserService(repo, &fakeIDGen{id: "U1001"}, queue)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		UserID: "U1001", Name: "Ada", Email: "ada@example.com",
	})
	require.NoError(t, err)

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, email.TypeWelcomeEmail, queue.tasks[0].Type())

	// A duplicate registration must not queue a second email.
	_, _ = svc.Register(context.Background(), user.RegisterRequest{
		UserID: "U1001", Name: "Eve", Email: "eve@example.com",
	})
	assert.Len(t, queue.tasks, 1)
}

func TestRegisterSucceedsWhenQueueIsDown(t *testing.T) {
	repo := newFakeRepo()
	queue := &fakeEnqueuer{err: assert.AnError}
	svc := NewUserService(repo, &fakeIDGen{id: "U1001"}, queue)

	u, err := svc.Register(context.Background(), user.RegisterRequest{
		UserID: "U1001", Name: "Ada", Email: "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "U1001", u.UserID)
}

func TestSetRecommendationsRoundTrips(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, &fakeIDGen{id: "U1001"}, nil)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		UserID: "U1001", Name: "Ada", Email: "ada@example.com",
	})
	require.NoError(t, err)

	recs := []user.Recommendation{{Title: "Dune", Author: "Frank Herbert"}}
	u, err := svc.SetRecommendations(context.Background(), "U1001", recs)
	require.NoError(t, err)
	require.Len(t, u.Recommendations, 1)
	assert.Equal(t, "Dune", u.Recommendations[0].Title)
}

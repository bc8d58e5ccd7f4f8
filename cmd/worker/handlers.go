package main

import (
	"github.com/hibiken/asynq"

	"reading-tracker-backend/internal/infrastructure/email"
	"reading-tracker-backend/internal/infrastructure/email/job"
	"reading-tracker-backend/pkg/container"
)

// HandlerRegistry holds every task handler the worker serves.
type HandlerRegistry struct {
	welcome  *job.WelcomeEmailHandler
	deadline *job.DeadlineReminderHandler
}

func newHandlerRegistry(c *container.Container) *HandlerRegistry {
	emails := email.NewLogService(c.Config.Email.From)

	return &HandlerRegistry{
		welcome:  job.NewWelcomeEmailHandler(emails, c.UserRepo),
		deadline: job.NewDeadlineReminderHandler(emails, c.BookRepo, c.UserRepo),
	}
}

func (r *HandlerRegistry) Register(mux *asynq.ServeMux) {
	mux.Handle(email.TypeWelcomeEmail, r.welcome)
	mux.Handle(email.TypeDeadlineReminder, r.deadline)
}

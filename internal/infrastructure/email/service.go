package email

import (
	"context"

	"github.com/rs/zerolog/log"
)

// EmailService sends the notification emails produced by the worker.
type EmailService interface {
	SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error
	SendDeadlineReminder(ctx context.Context, data DeadlineReminderData) error
}

// logService writes emails to the log instead of a real provider.
// Used in development and as the default when EMAIL_PROVIDER=log.
type logService struct {
	from string
}

func NewLogService(from string) EmailService {
	return &logService{from: from}
}

func (s *logService) SendWelcomeEmail(_ context.Context, data WelcomeEmailData) error {
	log.Info().
		Str("from", s.from).
		Str("to", data.Email).
		Str("user_id", data.UserID).
		Msgf("Welcome to Reading Tracker, %s!", data.Name)
	return nil
}

func (s *logService) SendDeadlineReminder(_ context.Context, data DeadlineReminderData) error {
	log.Info().
		Str("from", s.from).
		Str("to", data.Email).
		Str("book_id", data.BookID).
		Str("deadline", data.Deadline).
		Msgf("Reminder: %q is past its reading deadline", data.Title)
	return nil
}

package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/internal/infrastructure/email"
)

// WelcomeMarker records that the welcome email went out, so a retried
// task does not send twice after a partial failure.
type WelcomeMarker interface {
	MarkWelcomeSent(ctx context.Context, userID string) error
}

type WelcomeEmailHandler struct {
	emails email.EmailService
	users  WelcomeMarker
}

func NewWelcomeEmailHandler(emails email.EmailService, users WelcomeMarker) *WelcomeEmailHandler {
	return &WelcomeEmailHandler{emails: emails, users: users}
}

func (h *WelcomeEmailHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data email.WelcomeEmailData
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return fmt.Errorf("unmarshal welcome payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.emails.SendWelcomeEmail(ctx, data); err != nil {
		return fmt.Errorf("send welcome email to %s: %w", data.UserID, err)
	}

	if err := h.users.MarkWelcomeSent(ctx, data.UserID); err != nil {
		log.Error().Err(err).Str("user_id", data.UserID).Msg("Welcome sent but flag not recorded")
		return err
	}

	log.Info().Str("user_id", data.UserID).Msg("Welcome email delivered")
	return nil
}

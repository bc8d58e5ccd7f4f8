package email

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names shared by the API (enqueue) and the worker (handle).
const (
	TypeWelcomeEmail     = "email:welcome"
	TypeDeadlineReminder = "books:deadline_reminder"
)

func NewWelcomeEmailTask(data WelcomeEmailData) (*asynq.Task, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal welcome payload: %w", err)
	}
	return asynq.NewTask(TypeWelcomeEmail, payload, asynq.Queue("default"), asynq.MaxRetry(3)), nil
}

// NewDeadlineReminderTask builds the periodic scan task. It carries no
// payload; the handler discovers overdue books itself.
func NewDeadlineReminderTask() *asynq.Task {
	return asynq.NewTask(TypeDeadlineReminder, nil, asynq.Queue("low"))
}

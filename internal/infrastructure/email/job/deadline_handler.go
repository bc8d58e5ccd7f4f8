package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/internal/domains/book"
	"reading-tracker-backend/internal/domains/user"
	"reading-tracker-backend/internal/infrastructure/email"
)

// OverdueLister finds unfinished books whose deadline has passed.
type OverdueLister interface {
	ListOverdue(ctx context.Context, today string) ([]book.Book, error)
}

// UserLookup resolves a user ID to the profile holding the email address.
type UserLookup interface {
	FindByID(ctx context.Context, userID string) (*user.User, error)
}

type DeadlineReminderHandler struct {
	emails email.EmailService
	books  OverdueLister
	users  UserLookup
	now    func() time.Time
}

func NewDeadlineReminderHandler(emails email.EmailService, books OverdueLister, users UserLookup) *DeadlineReminderHandler {
	return &DeadlineReminderHandler{emails: emails, books: books, users: users, now: time.Now}
}

// ProcessTask scans for overdue books and sends one reminder per book.
// A failed send is logged and skipped so one bad address cannot stall
// the whole sweep.
func (h *DeadlineReminderHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	today := h.now().UTC().Format("2006-01-02")

	overdue, err := h.books.ListOverdue(ctx, today)
	if err != nil {
		return err
	}
	if len(overdue) == 0 {
		log.Debug().Str("today", today).Msg("No overdue books")
		return nil
	}

	sent := 0
	for _, b := range overdue {
		u, err := h.users.FindByID(ctx, b.UserID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", b.UserID).Str("book_id", b.BookID).
				Msg("Overdue book has no resolvable owner")
			continue
		}

		data := email.DeadlineReminderData{
			UserID:   b.UserID,
			Email:    u.Email,
			BookID:   b.BookID,
			Title:    b.Title,
			Deadline: deadlineOf(b),
		}
		if err := h.emails.SendDeadlineReminder(ctx, data); err != nil {
			log.Error().Err(err).Str("book_id", b.BookID).Msg("Deadline reminder send failed")
			continue
		}
		sent++
	}

	log.Info().Int("overdue", len(overdue)).Int("sent", sent).Msg("Deadline reminder sweep done")
	return nil
}

func deadlineOf(b book.Book) string {
	if b.Deadline == nil {
		return ""
	}
	return *b.Deadline
}

package email

// WelcomeEmailData is the payload for the welcome email task.
type WelcomeEmailData struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// DeadlineReminderData is the payload for a single overdue-book reminder.
type DeadlineReminderData struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	BookID   string `json:"book_id"`
	Title    string `json:"title"`
	Deadline string `json:"deadline"`
}

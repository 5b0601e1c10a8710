package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/reminder"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// UserResponse defines the public representation of a user.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	IsActive bool      `json:"is_active"`
}

// TokenRequest defines the payload for the token issuance endpoint.
type TokenRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// TokenResponse defines the successful response for the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateTaskRequest defines the payload for creating a task.
//
// UserEmail is accepted for backward compatibility but always overridden
// with the authenticated caller's identity; clients cannot schedule
// reminders to arbitrary addresses.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=1"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"    validate:"required"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=high moderate low"`
	UserEmail   string `json:"user_email"  validate:"omitempty,email"`
}

// UpdateTaskRequest defines the payload for partially updating a task.
// Nil fields are left unchanged; status may be forced by the user.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"    validate:"omitempty,oneof=high moderate low"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending completed"`
}

// TaskResponse defines the public representation of a task. The due date is
// rendered without an offset: it is a wall-clock value in the canonical
// timezone.
type TaskResponse struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DueDate        string     `json:"due_date"`
	Priority       string     `json:"priority"`
	UserEmail      string     `json:"user_email"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	LastRemindedAt *time.Time `json:"last_reminded_at,omitempty"`
	RemindersSent  string     `json:"reminders_sent,omitempty"`
}

// SchedulerStatusResponse describes the reminder scheduler for the status
// endpoint.
type SchedulerStatusResponse struct {
	IsRunning bool                 `json:"is_running"`
	Jobs      []reminder.JobStatus `json:"jobs"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// dueDateLayout is the canonical wire format for due dates.
const dueDateLayout = "2006-01-02T15:04:05"

// dueDateLayouts are the accepted input formats, tried in order. Offset
// bearing values are accepted but their offset is discarded: only the
// wall-clock fields matter, per the canonical-timezone convention.
var dueDateLayouts = []string{
	time.RFC3339,
	dueDateLayout,
	"2006-01-02T15:04",
}

// parseDueDate parses a client-supplied due date into a naive wall-clock
// value.
func parseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("due_date must be formatted like %s", dueDateLayout)
}

// taskToResponse converts a domain.Task to its public representation.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		DueDate:        task.DueDate.Format(dueDateLayout),
		Priority:       string(task.Priority),
		UserEmail:      task.UserEmail,
		Status:         string(task.Status),
		CreatedAt:      task.CreatedAt,
		LastRemindedAt: task.LastRemindedAt,
		RemindersSent:  task.RemindersSent,
	}
}

package domain

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors
var (
	ErrEmptyTaskID      = errors.New("task ID cannot be empty")
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrZeroDueDate      = errors.New("task due date cannot be zero")
	ErrInvalidPriority  = errors.New("priority must be one of: high, moderate, low")
	ErrInvalidStatus    = errors.New("status must be one of: pending, completed")
	ErrEmptyUserEmail   = errors.New("user email cannot be empty")
	ErrInvalidUserEmail = errors.New("user email is not a valid address")
)

// Priority indicates how important a task is. It is informational only and
// does not affect when or in what order reminders are sent.
type Priority string

const (
	PriorityHigh     Priority = "high"
	PriorityModerate Priority = "moderate"
	PriorityLow      Priority = "low"
)

// IsValid reports whether p is one of the known priority levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityModerate, PriorityLow:
		return true
	}
	return false
}

// TaskStatus represents the reminder lifecycle state of a task.
// A task is created pending and becomes completed exactly once, when the
// reminder sweep has confirmed a successful send.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// IsValid reports whether s is one of the known task statuses.
func (s TaskStatus) IsValid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// Task is the unit of schedulable work: something a user wants to be
// reminded about once its due date has passed.
//
// DueDate is a wall-clock value with no meaningful offset. It is always
// interpreted in the engine's canonical timezone, never as UTC or as the
// server's local zone; the reminder package owns that interpretation.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	Priority    Priority   `json:"priority"`
	UserEmail   string     `json:"user_email"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`

	// LastRemindedAt is nil until a reminder has been successfully sent,
	// then holds the send instant. It is set if and only if Status is
	// completed.
	LastRemindedAt *time.Time `json:"last_reminded_at,omitempty"`

	// RemindersSent is a free-form marker reserved for future milestone
	// reminders (e.g. "60,30,15,5" minutes before due). The current sweep
	// sends a single terminal reminder and leaves this untouched.
	RemindersSent string `json:"reminders_sent,omitempty"`
}

// NewTask creates a pending Task with a generated ID and creation timestamp.
// Client-supplied status is never honored: tasks always start pending.
// Returns an error if validation fails.
func NewTask(title, description string, dueDate time.Time, priority Priority, userEmail string) (*Task, error) {
	if priority == "" {
		priority = PriorityLow
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		UserEmail:   userEmail,
		Status:      TaskStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return ErrEmptyTitle
	}

	if t.DueDate.IsZero() {
		return ErrZeroDueDate
	}

	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}

	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}

	if t.UserEmail == "" {
		return ErrEmptyUserEmail
	}

	if _, err := mail.ParseAddress(t.UserEmail); err != nil {
		return ErrInvalidUserEmail
	}

	return nil
}

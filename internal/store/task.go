package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/remind-api/internal/domain"
)

// TaskStore defines the interface for task persistence. It is shared by the
// HTTP layer (create/read/update/delete) and the reminder sweep
// (ListPending/MarkReminded); the implementation must serialize conflicting
// writes to the same task row.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity (wrapping the validation error) if the task
	// data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByUserEmail retrieves all tasks whose delivery address matches
	// the given email, newest first.
	ListByUserEmail(ctx context.Context, email string) ([]*domain.Task, error)

	// ListPending retrieves every task with status pending, in no
	// particular order. Completed tasks are never returned.
	ListPending(ctx context.Context) ([]*domain.Task, error)

	// Update replaces the mutable fields of an existing task
	// (title, description, due date, priority, status, reminders_sent).
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkReminded transitions a task from pending to completed and sets
	// last_reminded_at to remindedAt. The transition is conditional on the
	// task still being pending: if it was concurrently deleted, completed,
	// or edited away from pending, MarkReminded is a no-op and returns nil.
	MarkReminded(ctx context.Context, id uuid.UUID, remindedAt time.Time) error
}

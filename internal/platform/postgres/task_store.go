package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db *sql.DB
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection that should be
// initialized and managed by the caller.
func NewPostgresTaskStore(db *sql.DB) *PostgresTaskStore {
	return &PostgresTaskStore{
		db: db,
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = "id, title, description, due_date, priority, user_email, status, created_at, last_reminded_at, reminders_sent"

// scanTask scans a single task row into a domain.Task.
func scanTask(row interface{ Scan(dest ...any) error }) (*domain.Task, error) {
	var t domain.Task
	var lastRemindedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Priority,
		&t.UserEmail,
		&t.Status,
		&t.CreatedAt,
		&lastRemindedAt,
		&t.RemindersSent,
	)
	if err != nil {
		return nil, err
	}

	if lastRemindedAt.Valid {
		t.LastRemindedAt = &lastRemindedAt.Time
	}
	return &t, nil
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var lastRemindedAt sql.NullTime
	if task.LastRemindedAt != nil {
		lastRemindedAt = sql.NullTime{Time: *task.LastRemindedAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.UserEmail,
		task.Status,
		task.CreatedAt,
		lastRemindedAt,
		task.RemindersSent,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// ListByUserEmail implements store.TaskStore.ListByUserEmail
func (s *PostgresTaskStore) ListByUserEmail(ctx context.Context, email string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_email = $1 ORDER BY created_at DESC`

	return s.listTasks(ctx, query, email)
}

// ListPending implements store.TaskStore.ListPending
func (s *PostgresTaskStore) ListPending(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = $1`

	return s.listTasks(ctx, query, domain.TaskStatusPending)
}

func (s *PostgresTaskStore) listTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update.
// The row is locked for the duration of the transaction so that a
// concurrent sweep commit and a user edit serialize rather than interleave.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT true FROM tasks WHERE id = $1 FOR UPDATE`, task.ID).Scan(&exists)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrTaskNotFound
			}
			return fmt.Errorf("failed to lock task row: %w", err)
		}

		var lastRemindedAt sql.NullTime
		if task.LastRemindedAt != nil {
			lastRemindedAt = sql.NullTime{Time: *task.LastRemindedAt, Valid: true}
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE tasks
			SET title = $2, description = $3, due_date = $4, priority = $5,
			    status = $6, last_reminded_at = $7, reminders_sent = $8
			WHERE id = $1`,
			task.ID,
			task.Title,
			task.Description,
			task.DueDate,
			task.Priority,
			task.Status,
			lastRemindedAt,
			task.RemindersSent,
		)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// MarkReminded implements store.TaskStore.MarkReminded.
// The status guard in the WHERE clause makes the transition idempotent: a
// task concurrently deleted, completed, or edited away from pending simply
// matches no rows, and that is not an error.
func (s *PostgresTaskStore) MarkReminded(ctx context.Context, id uuid.UUID, remindedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET status = $2, last_reminded_at = $3
		WHERE id = $1 AND status = $4`,
		id,
		domain.TaskStatusCompleted,
		remindedAt,
		domain.TaskStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to mark task reminded: %w", err)
	}

	return nil
}

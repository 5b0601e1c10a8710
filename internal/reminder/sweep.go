package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/remind-api/internal/domain"
)

// defaultSweepTimeout bounds a single tick's store session so a wedged
// query cannot block the scheduler indefinitely.
const defaultSweepTimeout = 55 * time.Second

// TaskSource is the slice of the task store the sweep depends on.
// store.TaskStore satisfies it.
type TaskSource interface {
	// ListPending returns every task with status pending.
	ListPending(ctx context.Context) ([]*domain.Task, error)

	// MarkReminded conditionally transitions a pending task to completed.
	// It must be a no-op, not an error, if the task is no longer pending.
	MarkReminded(ctx context.Context, id uuid.UUID, remindedAt time.Time) error
}

// Sweeper executes one reminder pass over the task store: select pending
// tasks, evaluate their due instants against a single reference "now", send
// a notification for each due task, and durably mark successful sends.
type Sweeper struct {
	tasks   TaskSource
	sender  Sender
	clock   *Clock
	logger  *slog.Logger
	timeout time.Duration
}

// NewSweeper creates a Sweeper over the given task source, sender, and
// clock.
func NewSweeper(tasks TaskSource, sender Sender, clock *Clock, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		tasks:   tasks,
		sender:  sender,
		clock:   clock,
		logger:  logger,
		timeout: defaultSweepTimeout,
	}
}

// Name identifies the sweeper to the scheduler and the status endpoint.
func (s *Sweeper) Name() string {
	return "reminder_sweep"
}

// Run executes one sweep tick. A query fault aborts the tick and is
// returned for the driver to log; per-task faults (send failure, data
// fault, concurrent mutation) are logged and skipped so the remaining
// tasks still get evaluated. Every task in one tick is compared against
// the same reference instant, even if sends are slow.
func (s *Sweeper) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := s.clock.Now()

	pending, err := s.tasks.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending tasks: %w", err)
	}

	var sent, failed int
	for _, task := range pending {
		if task.DueDate.IsZero() {
			s.logger.Warn("skipping task with unresolvable due date",
				"task_id", task.ID,
				"title", task.Title)
			continue
		}

		due := s.clock.ResolveDue(task.DueDate)
		if due.After(now) {
			continue
		}

		subject := buildSubject(task)
		body := buildBody(task, due, now)

		if err := s.sender.Send(ctx, task.UserEmail, subject, body); err != nil {
			// Task stays pending and is retried next tick.
			s.logger.Error("reminder send failed",
				"task_id", task.ID,
				"title", task.Title,
				"recipient", task.UserEmail,
				"error", err)
			failed++
			continue
		}

		if err := s.tasks.MarkReminded(ctx, task.ID, now); err != nil {
			// The send went out but the commit failed; the task will be
			// re-sent next tick. This is the documented at-least-once edge.
			s.logger.Error("failed to mark task reminded",
				"task_id", task.ID,
				"error", err)
			failed++
			continue
		}

		s.logger.Info("reminder sent",
			"task_id", task.ID,
			"title", task.Title,
			"recipient", task.UserEmail,
			"due", due,
			"sent_at", now)
		sent++
	}

	if sent > 0 || failed > 0 {
		s.logger.Info("sweep completed",
			"pending", len(pending),
			"sent", sent,
			"failed", failed)
	}

	return nil
}

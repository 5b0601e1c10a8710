package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/store"
)

// MockTaskStore is an in-memory store.TaskStore implementation for tests.
// Individual methods can be overridden via the corresponding Fn fields.
type MockTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task

	ListPendingFn  func(ctx context.Context) ([]*domain.Task, error)
	MarkRemindedFn func(ctx context.Context, id uuid.UUID, remindedAt time.Time) error
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// ListByUserEmail implements store.TaskStore.ListByUserEmail
func (m *MockTaskStore) ListByUserEmail(ctx context.Context, email string) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Task
	for _, task := range m.tasks {
		if task.UserEmail == email {
			copied := *task
			out = append(out, &copied)
		}
	}
	return out, nil
}

// ListPending implements store.TaskStore.ListPending
func (m *MockTaskStore) ListPending(ctx context.Context) ([]*domain.Task, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Task
	for _, task := range m.tasks {
		if task.Status == domain.TaskStatusPending {
			copied := *task
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Update implements store.TaskStore.Update
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

// Delete implements store.TaskStore.Delete
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// MarkReminded implements store.TaskStore.MarkReminded with the same
// pending-only guard as the real store.
func (m *MockTaskStore) MarkReminded(ctx context.Context, id uuid.UUID, remindedAt time.Time) error {
	if m.MarkRemindedFn != nil {
		return m.MarkRemindedFn(ctx, id, remindedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok || task.Status != domain.TaskStatusPending {
		// Concurrently deleted or already completed: a no-op, not an error.
		return nil
	}
	task.Status = domain.TaskStatusCompleted
	at := remindedAt
	task.LastRemindedAt = &at
	return nil
}

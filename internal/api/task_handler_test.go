package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/remind-api/internal/api/shared"
	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/reminder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTaskRouter mounts the task routes behind a stub identity middleware, the
// way the real router mounts them behind JWT authentication.
func newTaskRouter(tasks *reminder.MockTaskStore, email string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, uuid.New())
			ctx = context.WithValue(ctx, shared.UserEmailContextKey, email)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	h := NewTaskHandler(tasks)
	r.Post("/tasks", h.Create)
	r.Get("/tasks", h.List)
	r.Get("/tasks/{id}", h.Get)
	r.Put("/tasks/{id}", h.Update)
	r.Delete("/tasks/{id}", h.Delete)
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) TaskResponse {
	t.Helper()

	var resp TaskResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func seedTask(t *testing.T, tasks *reminder.MockTaskStore, title, email string) *domain.Task {
	t.Helper()

	due := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	task, err := domain.NewTask(title, "", due, domain.PriorityLow, email)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(context.Background(), task))
	return task
}

func TestTaskCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates pending task for the caller", func(t *testing.T) {
		t.Parallel()

		tasks := reminder.NewMockTaskStore()
		router := newTaskRouter(tasks, "caller@example.com")

		rec := doJSON(t, router, http.MethodPost, "/tasks", map[string]any{
			"title":       "Pay rent",
			"description": "before the 10th",
			"due_date":    "2026-03-10T09:30:00",
			"priority":    "high",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeTask(t, rec)
		assert.Equal(t, "Pay rent", resp.Title)
		assert.Equal(t, "2026-03-10T09:30:00", resp.DueDate)
		assert.Equal(t, "high", resp.Priority)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "caller@example.com", resp.UserEmail)
	})

	t.Run("ignores client-supplied user_email", func(t *testing.T) {
		t.Parallel()

		tasks := reminder.NewMockTaskStore()
		router := newTaskRouter(tasks, "caller@example.com")

		rec := doJSON(t, router, http.MethodPost, "/tasks", map[string]any{
			"title":      "Pay rent",
			"due_date":   "2026-03-10T09:30:00",
			"user_email": "victim@example.com",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeTask(t, rec)
		assert.Equal(t, "caller@example.com", resp.UserEmail,
			"reminders must only go to the authenticated caller")
	})

	t.Run("defaults priority to low", func(t *testing.T) {
		t.Parallel()

		tasks := reminder.NewMockTaskStore()
		router := newTaskRouter(tasks, "caller@example.com")

		rec := doJSON(t, router, http.MethodPost, "/tasks", map[string]any{
			"title":    "Pay rent",
			"due_date": "2026-03-10T09:30:00",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "low", decodeTask(t, rec).Priority)
	})

	t.Run("accepts offset-bearing due date and keeps wall clock", func(t *testing.T) {
		t.Parallel()

		tasks := reminder.NewMockTaskStore()
		router := newTaskRouter(tasks, "caller@example.com")

		rec := doJSON(t, router, http.MethodPost, "/tasks", map[string]any{
			"title":    "Pay rent",
			"due_date": "2026-03-10T09:30:00+05:30",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "2026-03-10T09:30:00", decodeTask(t, rec).DueDate)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			body map[string]any
		}{
			{"missing title", map[string]any{"due_date": "2026-03-10T09:30:00"}},
			{"missing due date", map[string]any{"title": "Pay rent"}},
			{"malformed due date", map[string]any{"title": "Pay rent", "due_date": "next tuesday"}},
			{"unknown priority", map[string]any{
				"title": "Pay rent", "due_date": "2026-03-10T09:30:00", "priority": "urgent",
			}},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				tasks := reminder.NewMockTaskStore()
				router := newTaskRouter(tasks, "caller@example.com")

				rec := doJSON(t, router, http.MethodPost, "/tasks", tc.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		}
	})
}

func TestTaskList(t *testing.T) {
	t.Parallel()

	t.Run("returns only the caller's tasks", func(t *testing.T) {
		t.Parallel()

		tasks := reminder.NewMockTaskStore()
		seedTask(t, tasks, "Mine", "caller@example.com")
		seedTask(t, tasks, "Someone else's", "other@example.com")

		router := newTaskRouter(tasks, "caller@example.com")
		rec := doJSON(t, router, http.MethodGet, "/tasks", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Mine", resp[0].Title)
	})

	t.Run("empty result is a JSON array", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(reminder.NewMockTaskStore(), "caller@example.com")
		rec := doJSON(t, router, http.MethodGet, "/tasks", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestTaskGet(t *testing.T) {
	t.Parallel()

	tasks := reminder.NewMockTaskStore()
	task := seedTask(t, tasks, "Mine", "caller@example.com")
	foreign := seedTask(t, tasks, "Foreign", "other@example.com")
	router := newTaskRouter(tasks, "caller@example.com")

	t.Run("returns owned task", func(t *testing.T) {
		t.Parallel()

		rec := doJSON(t, router, http.MethodGet, "/tasks/"+task.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, task.ID, decodeTask(t, rec).ID)
	})

	t.Run("foreign task reads as not found", func(t *testing.T) {
		t.Parallel()

		rec := doJSON(t, router, http.MethodGet, "/tasks/"+foreign.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		t.Parallel()

		rec := doJSON(t, router, http.MethodGet, "/tasks/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		t.Parallel()

		rec := doJSON(t, router, http.MethodGet, "/tasks/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskUpdate(t *testing.T) {
	t.Parallel()

	t.Run("applies partial update", func(t *testing.T) {
		t.Parallel()

		tasks := reminder.NewMockTaskStore()
		task := seedTask(t, tasks, "Old title", "caller@example.com")
		router := newTaskRouter(tasks, "caller@example.com")

		rec := doJSON(t, router, http.MethodPut, "/tasks/"+task.ID.String(), map[string]any{
			"title":  "New title",
			"status": "completed",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeTask(t, rec)
		assert.Equal(t, "New title", resp.Title)
		assert.Equal(t, "completed", resp.Status)

		stored, err := tasks.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, "New title", stored.Title)
		assert.Equal(t, domain.TaskStatusCompleted, stored.Status)
	})

	t.Run("leaves omitted fields unchanged", func(t *testing.T) {
		t.Parallel()

		tasks := reminder.NewMockTaskStore()
		task := seedTask(t, tasks, "Keep me", "caller@example.com")
		router := newTaskRouter(tasks, "caller@example.com")

		rec := doJSON(t, router, http.MethodPut, "/tasks/"+task.ID.String(), map[string]any{
			"description": "now with a description",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeTask(t, rec)
		assert.Equal(t, "Keep me", resp.Title)
		assert.Equal(t, "now with a description", resp.Description)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		tasks := reminder.NewMockTaskStore()
		task := seedTask(t, tasks, "Mine", "caller@example.com")
		router := newTaskRouter(tasks, "caller@example.com")

		rec := doJSON(t, router, http.MethodPut, "/tasks/"+task.ID.String(), map[string]any{
			"status": "archived",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("foreign task reads as not found", func(t *testing.T) {
		t.Parallel()

		tasks := reminder.NewMockTaskStore()
		foreign := seedTask(t, tasks, "Foreign", "other@example.com")
		router := newTaskRouter(tasks, "caller@example.com")

		rec := doJSON(t, router, http.MethodPut, "/tasks/"+foreign.ID.String(), map[string]any{
			"title": "Hijack",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskDelete(t *testing.T) {
	t.Parallel()

	tasks := reminder.NewMockTaskStore()
	task := seedTask(t, tasks, "Short lived", "caller@example.com")
	router := newTaskRouter(tasks, "caller@example.com")

	rec := doJSON(t, router, http.MethodDelete, "/tasks/"+task.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Deleted successfully", resp.Message)

	rec = doJSON(t, router, http.MethodGet, "/tasks/"+task.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

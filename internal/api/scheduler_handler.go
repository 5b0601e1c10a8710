package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/phrazzld/remind-api/internal/api/shared"
	"github.com/phrazzld/remind-api/internal/platform/brevo"
	"github.com/phrazzld/remind-api/internal/reminder"
)

// SchedulerHandler exposes the reminder engine's introspection and manual
// test endpoints.
type SchedulerHandler struct {
	scheduler *reminder.Scheduler
	sender    reminder.Sender
}

// NewSchedulerHandler creates a new SchedulerHandler with the given
// dependencies.
func NewSchedulerHandler(scheduler *reminder.Scheduler, sender reminder.Sender) *SchedulerHandler {
	return &SchedulerHandler{
		scheduler: scheduler,
		sender:    sender,
	}
}

// Status handles GET /scheduler-status.
func (h *SchedulerHandler) Status(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, SchedulerStatusResponse{
		IsRunning: h.scheduler.Running(),
		Jobs:      h.scheduler.Jobs(),
	})
}

// TestEmail handles POST /test-email?to_email=. It exercises the send path
// directly, bypassing the task store entirely.
func (h *SchedulerHandler) TestEmail(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to_email")
	if to == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "to_email query parameter is required")
		return
	}
	if _, err := mail.ParseAddress(to); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "to_email is not a valid address")
		return
	}

	err := h.sender.Send(r.Context(), to,
		"Test Email from Task Reminder",
		"If you see this, your email settings are correct!")
	if err != nil {
		if errors.Is(err, brevo.ErrMissingCredentials) {
			shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Email transport not configured")
			return
		}
		slog.Error("test email failed", "error", err, "recipient", to)
		shared.RespondWithError(w, r, http.StatusBadGateway, "Failed to send test email")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Email sent successfully"})
}

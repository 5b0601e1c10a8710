package reminder

import (
	"fmt"
	"time"

	"github.com/phrazzld/remind-api/internal/domain"
)

// timestampFormat is the human-readable layout used for every instant
// rendered into a reminder message.
const timestampFormat = "2006-01-02 15:04:05"

// buildSubject returns the reminder subject line for a task.
func buildSubject(task *domain.Task) string {
	return fmt.Sprintf("Reminder: %s", task.Title)
}

// buildBody renders the reminder body. Both the scheduled instant and the
// send instant are shown in the canonical timezone.
func buildBody(task *domain.Task, due, sentAt time.Time) string {
	zone, _ := due.Zone()
	return fmt.Sprintf(`Hello, this is your scheduled reminder for: %s

Priority: %s
Description:
%s

Scheduled for (%s): %s
Sent at (%s): %s
`,
		task.Title,
		task.Priority,
		task.Description,
		zone, due.Format(timestampFormat),
		zone, sentAt.Format(timestampFormat),
	)
}

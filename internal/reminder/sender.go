package reminder

import "context"

// Sender delivers a formatted notification to a recipient address. Send is
// synchronous: the sweep blocks on the outcome and only marks a task
// completed after a nil return.
//
// Implementations distinguish configuration faults (missing credentials)
// from transport faults via sentinel errors; the sweep treats both as
// non-fatal and retries the task on the next tick.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

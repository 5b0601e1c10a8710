package reminder

import (
	"fmt"
	"time"
)

// Clock resolves stored wall-clock due dates to absolute instants in the
// engine's canonical timezone, and supplies "now" in that same zone.
//
// Due dates are stored without an offset by convention; the zone attached
// when they travel through the database or JSON carries no meaning. Clock
// therefore never branches on whether a value "is" zoned: it always
// reinterprets the wall-clock fields in the canonical zone, which makes
// resolution total and deterministic (DST-gap inputs normalize forward per
// time.Date).
type Clock struct {
	loc   *time.Location
	nowFn func() time.Time
}

// NewClock creates a Clock for the given IANA timezone identifier.
// Returns an error if the zone is unknown.
func NewClock(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load canonical timezone %q: %w", timezone, err)
	}

	return &Clock{
		loc:   loc,
		nowFn: time.Now,
	}, nil
}

// Now returns the current instant in the canonical timezone.
func (c *Clock) Now() time.Time {
	return c.nowFn().In(c.loc)
}

// ResolveDue attaches the canonical timezone's offset to the wall-clock
// fields of t, producing the absolute instant the due date refers to.
func (c *Clock) ResolveDue(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), c.loc)
}

// Location returns the canonical timezone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

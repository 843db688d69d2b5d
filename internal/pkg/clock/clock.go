// Package clock provides the single source of "now" and "today" for the
// attendance ledger. Every day boundary is computed in one fixed location.
package clock

import (
	"fmt"
	"time"
)

type Clock interface {
	// Now returns the current instant in the deployment location, truncated to microseconds
	// so it survives a round trip through a TIMESTAMPTZ column unchanged.
	Now() time.Time
	// Today returns the civil date of Now as midnight UTC. It is the ledger's partition key.
	Today() time.Time
	Location() *time.Location
}

type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(timezone string) (*SystemClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &SystemClock{loc: loc}, nil
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc).Truncate(time.Microsecond)
}

func (c *SystemClock) Today() time.Time {
	return CivilDate(c.Now())
}

func (c *SystemClock) Location() *time.Location {
	return c.loc
}

// CivilDate drops the time of day of t as observed in t's own location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FixedClock is a manually advanced clock for tests and tooling.
type FixedClock struct {
	now time.Time
	loc *time.Location
}

func NewFixedClock(now time.Time, loc *time.Location) *FixedClock {
	return &FixedClock{now: now.In(loc).Truncate(time.Microsecond), loc: loc}
}

func (c *FixedClock) Now() time.Time {
	return c.now
}

func (c *FixedClock) Today() time.Time {
	return CivilDate(c.now)
}

func (c *FixedClock) Location() *time.Location {
	return c.loc
}

func (c *FixedClock) Set(now time.Time) {
	c.now = now.In(c.loc).Truncate(time.Microsecond)
}

func (c *FixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

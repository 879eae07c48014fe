package clock

import "time"

// FakeClock is a Clock pinned to a fixed instant, for tests that assert on
// persisted timestamps. Not safe for concurrent Advance.
type FakeClock struct {
	now time.Time
}

// NewFakeClock returns a FakeClock reporting t (normalized to UTC) until
// advanced.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the reported instant forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

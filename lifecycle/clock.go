package lifecycle

import "time"

// =============================================================================
// CLOCK - Injected time source
// =============================================================================

// Clock supplies the current time to services. Production code uses
// SystemClock; tests use a FixedClock so timestamps are deterministic.
// Services never call time.Now directly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system time in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock returns a constant instant until advanced. Advancing between
// mutations keeps timestamps monotonically increasing in tests.
type FixedClock struct {
	Current time.Time
}

func NewFixedClock(t time.Time) *FixedClock { return &FixedClock{Current: t} }

func (c *FixedClock) Now() time.Time { return c.Current }

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }

// =============================================================================
// TIMESTAMP FORMATS - Entities store ISO strings, views format for display
// =============================================================================

// Stamp renders t the way entities store audit timestamps.
func Stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// DateStamp renders t as a calendar date.
func DateStamp(t time.Time) string { return t.UTC().Format("2006-01-02") }

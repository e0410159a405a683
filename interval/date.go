/*
Package interval provides the temporal value types for rate versioning.

PURPOSE:
  Day-granularity dates, half-open-or-unbounded validity intervals, and the
  Future/Active/Inactive status derivation that every rate version carries.
  Everything here is pure: no storage, no wall clock unless you ask for one.

KEY CONCEPTS:
  - Date:     A calendar day. Time-of-day is always normalized to midnight UTC
              before comparison, so "2025-03-01 14:32" and "2025-03-01 00:00"
              are the same Date.
  - Interval: [From, To] where To may be unbounded (open-ended rate).
  - Status:   Derived from an interval and "today". Never a source of truth.
  - Clock:    Injectable "today" source so status derivation is testable.

SEE ALSO:
  - interval.go: Overlap predicate and status derivation
  - rates:       The version manager built on these types
*/
package interval

import "time"

// =============================================================================
// DATE - Calendar day, normalized to midnight UTC
// =============================================================================

type Date struct {
	t time.Time
}

// NewDate constructs a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates any time.Time to its calendar day in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison. All comparisons are at day granularity.
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return DateOf(d.t.AddDate(0, 0, n)) }

func (d Date) IsZero() bool     { return d.t.IsZero() }
func (d Date) Time() time.Time  { return d.t }
func (d Date) String() string   { return d.t.Format("2006-01-02") }

// DaysBetween returns the whole days from one date to another.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// =============================================================================
// CLOCK - Injectable "today" source
// =============================================================================

// Clock supplies the current day. Status derivation depends only on this,
// which keeps boundary-crossing behavior testable.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// FixedClock always reports the same day. For tests.
type FixedClock struct {
	Day Date
}

func (c FixedClock) Today() Date { return c.Day }

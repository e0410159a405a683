package interval

// =============================================================================
// INTERVAL - Inclusive date range with optional unbounded end
// =============================================================================

// Interval is an inclusive validity range [From, To]. A nil To means the
// interval is open-ended: valid indefinitely until superseded.
type Interval struct {
	From Date
	To   *Date
}

// New returns a bounded interval.
func New(from, to Date) Interval {
	return Interval{From: from, To: &to}
}

// OpenEnded returns an interval with no end date.
func OpenEnded(from Date) Interval {
	return Interval{From: from}
}

// IsOpenEnded reports whether the interval has no end date.
func (iv Interval) IsOpenEnded() bool { return iv.To == nil }

// Contains reports whether the day falls inside the interval.
func (iv Interval) Contains(d Date) bool {
	if d.Before(iv.From) {
		return false
	}
	return iv.To == nil || d.BeforeOrEqual(*iv.To)
}

// Overlaps reports whether two intervals share at least one day.
// Two intervals overlap iff neither is strictly before the other; an
// unbounded end extends to infinity, so two open-ended intervals always
// overlap.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.To != nil && iv.To.Before(other.From) {
		return false
	}
	if other.To != nil && other.To.Before(iv.From) {
		return false
	}
	return true
}

func (iv Interval) String() string {
	if iv.To == nil {
		return "[" + iv.From.String() + ", ∞)"
	}
	return "[" + iv.From.String() + ", " + iv.To.String() + "]"
}

// =============================================================================
// STATUS - Derived lifecycle state of a rate version
// =============================================================================

type Status string

const (
	StatusFuture   Status = "Future"   // starts after today
	StatusActive   Status = "Active"   // today falls inside the interval
	StatusInactive Status = "Inactive" // ended before today
)

// DeriveStatus classifies an interval against "today". Pure: fixed inputs
// always yield the same result, and the Future→Active and Active→Inactive
// transitions happen exactly at midnight of the boundary day.
func DeriveStatus(iv Interval, today Date) Status {
	if iv.From.After(today) {
		return StatusFuture
	}
	if iv.To != nil && iv.To.Before(today) {
		return StatusInactive
	}
	return StatusActive
}

package interval_test

import (
	"testing"
	"time"

	"github.com/stonehaul/haulage-engine/interval"
)

func d(y int, m time.Month, day int) interval.Date {
	return interval.NewDate(y, m, day)
}

func dp(y int, m time.Month, day int) *interval.Date {
	v := interval.NewDate(y, m, day)
	return &v
}

// =============================================================================
// OVERLAP PREDICATE
// =============================================================================

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b interval.Interval
		want bool
	}{
		{
			name: "disjoint bounded intervals",
			a:    interval.New(d(2025, time.January, 1), d(2025, time.January, 31)),
			b:    interval.New(d(2025, time.February, 1), d(2025, time.February, 28)),
			want: false,
		},
		{
			name: "touching at a shared day",
			a:    interval.New(d(2025, time.January, 1), d(2025, time.January, 31)),
			b:    interval.New(d(2025, time.January, 31), d(2025, time.February, 28)),
			want: true,
		},
		{
			name: "contained interval",
			a:    interval.New(d(2025, time.January, 1), d(2025, time.December, 31)),
			b:    interval.New(d(2025, time.March, 1), d(2025, time.March, 15)),
			want: true,
		},
		{
			name: "open-ended covers later bounded",
			a:    interval.OpenEnded(d(2025, time.January, 1)),
			b:    interval.New(d(2025, time.June, 1), d(2025, time.June, 30)),
			want: true,
		},
		{
			name: "bounded ends before open-ended starts",
			a:    interval.New(d(2025, time.January, 1), d(2025, time.January, 31)),
			b:    interval.OpenEnded(d(2025, time.February, 1)),
			want: false,
		},
		{
			name: "two open-ended intervals always overlap",
			a:    interval.OpenEnded(d(2025, time.January, 1)),
			b:    interval.OpenEnded(d(2030, time.January, 1)),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v overlaps %v = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("%v overlaps %v = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

// =============================================================================
// STATUS DERIVATION
// =============================================================================

func TestDeriveStatus_Boundaries(t *testing.T) {
	// GIVEN: A version valid [2025-03-01, 2025-03-31]
	iv := interval.Interval{From: d(2025, time.March, 1), To: dp(2025, time.March, 31)}

	tests := []struct {
		today interval.Date
		want  interval.Status
	}{
		{d(2025, time.February, 28), interval.StatusFuture},
		{d(2025, time.March, 1), interval.StatusActive},   // flips at midnight of From
		{d(2025, time.March, 31), interval.StatusActive},  // To is inclusive
		{d(2025, time.April, 1), interval.StatusInactive}, // flips at midnight after To
	}

	for _, tt := range tests {
		if got := interval.DeriveStatus(iv, tt.today); got != tt.want {
			t.Errorf("DeriveStatus(%v, today=%v) = %v, want %v", iv, tt.today, got, tt.want)
		}
	}
}

func TestDeriveStatus_OpenEnded_NeverInactive(t *testing.T) {
	// GIVEN: An open-ended version
	iv := interval.OpenEnded(d(2025, time.January, 1))

	// THEN: It can only be Future or Active
	if got := interval.DeriveStatus(iv, d(2024, time.December, 31)); got != interval.StatusFuture {
		t.Errorf("before start: got %v, want Future", got)
	}
	if got := interval.DeriveStatus(iv, d(2099, time.January, 1)); got != interval.StatusActive {
		t.Errorf("far future: got %v, want Active", got)
	}
}

func TestDeriveStatus_Deterministic(t *testing.T) {
	iv := interval.New(d(2025, time.May, 1), d(2025, time.May, 31))
	today := d(2025, time.May, 10)

	first := interval.DeriveStatus(iv, today)
	for i := 0; i < 5; i++ {
		if got := interval.DeriveStatus(iv, today); got != first {
			t.Fatalf("status not deterministic: %v then %v", first, got)
		}
	}
}

func TestDateNormalization(t *testing.T) {
	// GIVEN: A timestamp with time-of-day
	noon := time.Date(2025, time.March, 1, 12, 30, 45, 0, time.UTC)

	// WHEN: Converted to a Date
	got := interval.DateOf(noon)

	// THEN: It equals the midnight date
	if !got.Equal(d(2025, time.March, 1)) {
		t.Errorf("DateOf(%v) = %v, want 2025-03-01", noon, got)
	}
}

func TestDaysBetween(t *testing.T) {
	if got := interval.DaysBetween(d(2025, time.February, 28), d(2025, time.March, 1)); got != 1 {
		t.Errorf("DaysBetween Feb 28 → Mar 1 = %d, want 1 (2025 not a leap year)", got)
	}
}

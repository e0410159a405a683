/*
errors.go - Conflict taxonomy for rate versioning

ERROR CATEGORIES:
  1. Conflict errors - Duplicate or overlapping intervals. Client must adjust
     dates; never retried.
  2. Not-found errors - Referenced version does not exist.
  3. Transaction failures - The storage transaction aborted; the whole
     operation rolled back and may be retried.

USAGE:
  if errors.Is(err, rates.ErrOverlappingRate) { ... }

  var conflict *rates.OverlappingRateError
  if errors.As(err, &conflict) {
      log.Printf("conflicts with version %s", conflict.ConflictingID)
  }
*/
package rates

import (
	"errors"
	"fmt"

	"github.com/stonehaul/haulage-engine/interval"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDuplicateRate is returned when a new version has exactly the same
	// validity interval as an existing version for the same key.
	ErrDuplicateRate = errors.New("duplicate rate: identical validity interval exists")

	// ErrOverlappingRate is returned when an interval conflict cannot be
	// resolved by supersession.
	ErrOverlappingRate = errors.New("overlapping rate")

	// ErrRateNotFound is returned when a referenced version id does not exist.
	ErrRateNotFound = errors.New("rate version not found")

	// ErrTransactionFailed is returned when the underlying storage transaction
	// aborted. No partial state was persisted; the caller may retry.
	ErrTransactionFailed = errors.New("rate transaction failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the conflicting version
// =============================================================================

// OverlappingRateError identifies the version the submitted interval
// conflicts with, so the caller can surface enough detail to adjust dates.
type OverlappingRateError struct {
	ConflictingID string
	Conflicting   interval.Interval
	Submitted     interval.Interval
}

func (e *OverlappingRateError) Error() string {
	return fmt.Sprintf("overlapping rate: %v conflicts with version %s %v",
		e.Submitted, e.ConflictingID, e.Conflicting)
}

func (e *OverlappingRateError) Unwrap() error { return ErrOverlappingRate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConflict reports whether the error is a duplicate or overlap the client
// must resolve by picking different dates.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateRate) || errors.Is(err, ErrOverlappingRate)
}

// IsRetryable reports whether the operation may succeed if retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransactionFailed)
}

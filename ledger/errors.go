package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrTransactionNotFound is returned when a referenced transaction id
	// does not exist.
	ErrTransactionNotFound = errors.New("ledger transaction not found")

	// ErrInvalidAmount is returned for negative amounts. Sign is carried by
	// the direction, never by the magnitude.
	ErrInvalidAmount = errors.New("amount must not be negative")

	// ErrInvalidDirection is returned when the direction is neither DEBIT
	// nor CREDIT.
	ErrInvalidDirection = errors.New("direction must be DEBIT or CREDIT")

	// ErrRecomputeFailed is returned when the storage transaction around a
	// mutation + recompute aborted. Nothing was applied; safe to retry.
	ErrRecomputeFailed = errors.New("ledger transaction failed")
)

// IsValidation reports whether the error is invalid client input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidDirection)
}

// IsRetryable reports whether the operation may succeed if retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRecomputeFailed)
}

// classify passes domain errors through and wraps storage failures.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if IsValidation(err) || errors.Is(err, ErrTransactionNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrRecomputeFailed, err)
}

/*
Package ledger maintains per-account running balances.

PURPOSE:
  Every account (a supervisor's daily cash book, a main-ledger account) holds
  an ordered sequence of dated debit/credit transactions. Each transaction
  carries two derived numbers: the balance immediately before it (available)
  and immediately after it (closing). Those pairs are never written by users;
  they are recomputed for the whole account on every mutation, because a row
  inserted, edited, or removed anywhere in the sequence shifts every later
  row's balances.

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal everywhere. Balances are compared across long
     chains and binary floating point drifts.
  2. Sign by direction: amounts are non-negative magnitudes; DEBIT decreases
     the balance, CREDIT increases it.
  3. Chronological order: (date, creation order). Same-day rows keep the
     order they were entered in.

SEE ALSO:
  - engine.go:     Mutations and the full-sequence recompute
  - repository.go: Persistence contract
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonehaul/haulage-engine/interval"
)

// =============================================================================
// DIRECTION
// =============================================================================

type Direction string

const (
	Debit  Direction = "DEBIT"  // decreases the balance
	Credit Direction = "CREDIT" // increases the balance
)

// Valid reports whether the direction is one of the two known values.
func (d Direction) Valid() bool { return d == Debit || d == Credit }

// =============================================================================
// TRANSACTION
// =============================================================================

// Transaction is a single dated movement against one account.
//
// AvailableBalance and ClosingBalance are derived: for the account's ordered
// sequence, available[i] == closing[i-1] (the opening balance for i == 0) and
// closing[i] == available[i] ± amount. Only Engine.Recompute writes them.
type Transaction struct {
	ID         string
	AccountKey string
	Date       interval.Date
	Amount     decimal.Decimal // non-negative magnitude
	Direction  Direction
	Narration  string

	AvailableBalance decimal.Decimal
	ClosingBalance   decimal.Decimal

	// Seq is the creation-order tiebreak for same-day rows, assigned by the
	// store at insert.
	Seq       int64
	CreatedAt time.Time
}

// signed returns the balance delta this transaction contributes.
func (t Transaction) signed() decimal.Decimal {
	if t.Direction == Credit {
		return t.Amount
	}
	return t.Amount.Neg()
}

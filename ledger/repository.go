package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository persists ledger transactions and account opening balances.
//
// Accounts are implicit: an account exists once anything references it, and
// OpeningBalance materializes a zero opening row on first reference.
type Repository interface {
	// Insert adds a transaction and assigns its creation-order Seq.
	Insert(ctx context.Context, tx Transaction) error

	// Update replaces the stored transaction with the same id, keeping its
	// original Seq. Returns ErrTransactionNotFound for unknown ids.
	Update(ctx context.Context, tx Transaction) error

	// Get returns one transaction, or ErrTransactionNotFound.
	Get(ctx context.Context, id string) (Transaction, error)

	// Delete removes a transaction, or returns ErrTransactionNotFound.
	Delete(ctx context.Context, id string) error

	// ListByAccount returns the account's transactions ordered by
	// (date, seq) ascending.
	ListByAccount(ctx context.Context, accountKey string) ([]Transaction, error)

	// SetBalances persists the derived available/closing pair for one row.
	// Only the recompute pass calls this.
	SetBalances(ctx context.Context, id string, available, closing decimal.Decimal) error

	// OpeningBalance returns the account's opening balance, creating a zero
	// record if the account was never seen before.
	OpeningBalance(ctx context.Context, accountKey string) (decimal.Decimal, error)

	// SetOpeningBalance records the account's opening balance.
	SetOpeningBalance(ctx context.Context, accountKey string, amount decimal.Decimal) error

	// WithTx executes fn atomically; on error everything is rolled back.
	WithTx(ctx context.Context, fn func(Repository) error) error
}

/*
engine.go - Ledger mutations and the full-sequence recompute

RECOMPUTE:
  The only writer of available/closing balances. Loads the account's ordered
  sequence and walks it with a running total:

    running := opening
    for each tx:
        available = running
        running  += (CREDIT ? +amount : -amount)
        closing   = running

  Every Insert/Update/Delete runs its storage mutation and then this pass,
  unconditionally and synchronously, inside one storage transaction. A row
  inserted with an earlier date than existing rows therefore shifts every
  later row's balances before the call returns.

COST:
  O(n) per mutation over one account's rows. Accounts are expected to hold
  tens to low hundreds of rows, so a full pass is cheaper than being clever.
*/
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine owns all mutations of an account's transaction sequence.
type Engine struct {
	repo Repository
}

func NewEngine(repo Repository) *Engine {
	return &Engine{repo: repo}
}

// Insert validates and stores a new transaction, then recomputes the whole
// account. The returned row carries its freshly computed balances.
func (e *Engine) Insert(ctx context.Context, tx Transaction) (Transaction, error) {
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	err := e.repo.WithTx(ctx, func(repo Repository) error {
		if err := repo.Insert(ctx, tx); err != nil {
			return err
		}
		_, err := e.recompute(ctx, repo, tx.AccountKey)
		return err
	})
	if err != nil {
		return Transaction{}, classify(err)
	}
	return e.reload(ctx, tx.ID)
}

// Update rewrites an existing transaction and recomputes. If the account key
// changed, both the old and new account sequences are recomputed.
func (e *Engine) Update(ctx context.Context, tx Transaction) (Transaction, error) {
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}

	err := e.repo.WithTx(ctx, func(repo Repository) error {
		prev, err := repo.Get(ctx, tx.ID)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, tx); err != nil {
			return err
		}
		if prev.AccountKey != tx.AccountKey {
			if _, err := e.recompute(ctx, repo, prev.AccountKey); err != nil {
				return err
			}
		}
		_, err = e.recompute(ctx, repo, tx.AccountKey)
		return err
	})
	if err != nil {
		return Transaction{}, classify(err)
	}
	return e.reload(ctx, tx.ID)
}

// Delete removes a transaction and recomputes the remaining sequence.
func (e *Engine) Delete(ctx context.Context, id string) error {
	err := e.repo.WithTx(ctx, func(repo Repository) error {
		prev, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		_, err = e.recompute(ctx, repo, prev.AccountKey)
		return err
	})
	return classify(err)
}

// Recompute rebuilds every derived balance for the account and returns the
// (unchanged) opening balance. Idempotent: a second call with no intervening
// mutation writes identical pairs.
func (e *Engine) Recompute(ctx context.Context, accountKey string) (decimal.Decimal, error) {
	var opening decimal.Decimal
	err := e.repo.WithTx(ctx, func(repo Repository) error {
		var err error
		opening, err = e.recompute(ctx, repo, accountKey)
		return err
	})
	if err != nil {
		return decimal.Zero, classify(err)
	}
	return opening, nil
}

// Transactions returns the account's sequence in chronological order.
func (e *Engine) Transactions(ctx context.Context, accountKey string) ([]Transaction, error) {
	txs, err := e.repo.ListByAccount(ctx, accountKey)
	if err != nil {
		return nil, classify(err)
	}
	return txs, nil
}

// OpeningBalance returns the account's opening balance, opening the account
// at zero on first reference.
func (e *Engine) OpeningBalance(ctx context.Context, accountKey string) (decimal.Decimal, error) {
	b, err := e.repo.OpeningBalance(ctx, accountKey)
	if err != nil {
		return decimal.Zero, classify(err)
	}
	return b, nil
}

// SetOpeningBalance records the opening balance and recomputes, since every
// derived pair shifts with it.
func (e *Engine) SetOpeningBalance(ctx context.Context, accountKey string, amount decimal.Decimal) error {
	err := e.repo.WithTx(ctx, func(repo Repository) error {
		if err := repo.SetOpeningBalance(ctx, accountKey, amount); err != nil {
			return err
		}
		_, err := e.recompute(ctx, repo, accountKey)
		return err
	})
	return classify(err)
}

func (e *Engine) recompute(ctx context.Context, repo Repository, accountKey string) (decimal.Decimal, error) {
	opening, err := repo.OpeningBalance(ctx, accountKey)
	if err != nil {
		return decimal.Zero, err
	}

	txs, err := repo.ListByAccount(ctx, accountKey)
	if err != nil {
		return decimal.Zero, err
	}

	running := opening
	for _, tx := range txs {
		available := running
		running = running.Add(tx.signed())
		if err := repo.SetBalances(ctx, tx.ID, available, running); err != nil {
			return decimal.Zero, err
		}
	}
	return opening, nil
}

func (e *Engine) reload(ctx context.Context, id string) (Transaction, error) {
	tx, err := e.repo.Get(ctx, id)
	if err != nil {
		return Transaction{}, classify(err)
	}
	return tx, nil
}

func validate(tx Transaction) error {
	if tx.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !tx.Direction.Valid() {
		return ErrInvalidDirection
	}
	return nil
}

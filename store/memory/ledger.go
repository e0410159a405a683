package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stonehaul/haulage-engine/ledger"
)

type ledgerRepo struct {
	store *Store
}

func (r *ledgerRepo) Insert(_ context.Context, tx ledger.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.insertTxLocked(tx)
}

func (r *ledgerRepo) Update(_ context.Context, tx ledger.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.updateTxLocked(tx)
}

func (r *ledgerRepo) Get(_ context.Context, id string) (ledger.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.getTxLocked(id)
}

func (r *ledgerRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteTxLocked(id)
}

func (r *ledgerRepo) ListByAccount(_ context.Context, accountKey string) ([]ledger.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.listTxLocked(accountKey), nil
}

func (r *ledgerRepo) SetBalances(_ context.Context, id string, available, closing decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.setBalancesLocked(id, available, closing)
}

func (r *ledgerRepo) OpeningBalance(_ context.Context, accountKey string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.openingBalanceLocked(accountKey), nil
}

func (r *ledgerRepo) SetOpeningBalance(_ context.Context, accountKey string, amount decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.openings[accountKey] = amount
	return nil
}

func (r *ledgerRepo) WithTx(_ context.Context, fn func(ledger.Repository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	if err := fn(&ledgerTxView{store: r.store}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

type ledgerTxView struct {
	store *Store
}

func (v *ledgerTxView) Insert(_ context.Context, tx ledger.Transaction) error {
	return v.store.insertTxLocked(tx)
}

func (v *ledgerTxView) Update(_ context.Context, tx ledger.Transaction) error {
	return v.store.updateTxLocked(tx)
}

func (v *ledgerTxView) Get(_ context.Context, id string) (ledger.Transaction, error) {
	return v.store.getTxLocked(id)
}

func (v *ledgerTxView) Delete(_ context.Context, id string) error {
	return v.store.deleteTxLocked(id)
}

func (v *ledgerTxView) ListByAccount(_ context.Context, accountKey string) ([]ledger.Transaction, error) {
	return v.store.listTxLocked(accountKey), nil
}

func (v *ledgerTxView) SetBalances(_ context.Context, id string, available, closing decimal.Decimal) error {
	return v.store.setBalancesLocked(id, available, closing)
}

func (v *ledgerTxView) OpeningBalance(_ context.Context, accountKey string) (decimal.Decimal, error) {
	return v.store.openingBalanceLocked(accountKey), nil
}

func (v *ledgerTxView) SetOpeningBalance(_ context.Context, accountKey string, amount decimal.Decimal) error {
	v.store.openings[accountKey] = amount
	return nil
}

func (v *ledgerTxView) WithTx(ctx context.Context, fn func(ledger.Repository) error) error {
	// Already inside a transaction; nested calls join it.
	return fn(v)
}

// =============================================================================
// LOCKED HELPERS
// =============================================================================

func (s *Store) insertTxLocked(tx ledger.Transaction) error {
	s.seq++
	tx.Seq = s.seq
	s.transactions[tx.ID] = tx
	return nil
}

func (s *Store) updateTxLocked(tx ledger.Transaction) error {
	prev, ok := s.transactions[tx.ID]
	if !ok {
		return ledger.ErrTransactionNotFound
	}
	tx.Seq = prev.Seq
	tx.CreatedAt = prev.CreatedAt
	s.transactions[tx.ID] = tx
	return nil
}

func (s *Store) getTxLocked(id string) (ledger.Transaction, error) {
	tx, ok := s.transactions[id]
	if !ok {
		return ledger.Transaction{}, ledger.ErrTransactionNotFound
	}
	return tx, nil
}

func (s *Store) deleteTxLocked(id string) error {
	if _, ok := s.transactions[id]; !ok {
		return ledger.ErrTransactionNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) listTxLocked(accountKey string) []ledger.Transaction {
	var out []ledger.Transaction
	for _, tx := range s.transactions {
		if tx.AccountKey == accountKey {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

func (s *Store) setBalancesLocked(id string, available, closing decimal.Decimal) error {
	tx, ok := s.transactions[id]
	if !ok {
		return ledger.ErrTransactionNotFound
	}
	tx.AvailableBalance = available
	tx.ClosingBalance = closing
	s.transactions[id] = tx
	return nil
}

// openingBalanceLocked opens the account at zero on first reference.
func (s *Store) openingBalanceLocked(accountKey string) decimal.Decimal {
	if b, ok := s.openings[accountKey]; ok {
		return b
	}
	s.openings[accountKey] = decimal.Zero
	return decimal.Zero
}

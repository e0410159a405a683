// Package memory provides in-memory repository implementations for tests
// and development. Transactions are simulated with snapshot + rollback, the
// same way a real store's rollback leaves prior state untouched.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/stonehaul/haulage-engine/ledger"
	"github.com/stonehaul/haulage-engine/rates"
	"github.com/stonehaul/haulage-engine/summary"
)

// Store holds all in-memory records behind one lock. Repository views are
// obtained with Rates() and Ledger().
type Store struct {
	mu sync.RWMutex

	rateVersions map[string]rates.RateVersion

	transactions map[string]ledger.Transaction
	openings     map[string]decimal.Decimal
	seq          int64

	parties  []summary.Party
	trips    []summary.Trip
	postings []summary.Posting
}

func New() *Store {
	return &Store{
		rateVersions: make(map[string]rates.RateVersion),
		transactions: make(map[string]ledger.Transaction),
		openings:     make(map[string]decimal.Decimal),
	}
}

// Rates returns the rate-version repository backed by this store.
func (s *Store) Rates() rates.Repository { return &rateRepo{store: s} }

// Ledger returns the ledger-transaction repository backed by this store.
func (s *Store) Ledger() ledger.Repository { return &ledgerRepo{store: s} }

// =============================================================================
// SNAPSHOT / RESTORE - Transaction simulation
// =============================================================================

type snapshot struct {
	rateVersions map[string]rates.RateVersion
	transactions map[string]ledger.Transaction
	openings     map[string]decimal.Decimal
	seq          int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		rateVersions: make(map[string]rates.RateVersion, len(s.rateVersions)),
		transactions: make(map[string]ledger.Transaction, len(s.transactions)),
		openings:     make(map[string]decimal.Decimal, len(s.openings)),
		seq:          s.seq,
	}
	for k, v := range s.rateVersions {
		snap.rateVersions[k] = v
	}
	for k, v := range s.transactions {
		snap.transactions[k] = v
	}
	for k, v := range s.openings {
		snap.openings[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.rateVersions = snap.rateVersions
	s.transactions = snap.transactions
	s.openings = snap.openings
	s.seq = snap.seq
}

// =============================================================================
// REFERENCE DATA - Parties, trips, postings (aggregator inputs)
// =============================================================================

func (s *Store) SaveParty(_ context.Context, p summary.Party) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.parties {
		if s.parties[i].ID == p.ID {
			s.parties[i] = p
			return nil
		}
	}
	s.parties = append(s.parties, p)
	return nil
}

func (s *Store) GetParty(_ context.Context, id string) (summary.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parties {
		if p.ID == id {
			return p, nil
		}
	}
	return summary.Party{}, summary.ErrPartyNotFound
}

func (s *Store) ListParties(_ context.Context) ([]summary.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]summary.Party, len(s.parties))
	copy(out, s.parties)
	return out, nil
}

func (s *Store) SaveTrip(_ context.Context, t summary.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = append(s.trips, t)
	return nil
}

func (s *Store) ListTrips(_ context.Context) ([]summary.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]summary.Trip, len(s.trips))
	copy(out, s.trips)
	return out, nil
}

func (s *Store) SavePosting(_ context.Context, p summary.Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postings = append(s.postings, p)
	return nil
}

func (s *Store) ListPostings(_ context.Context) ([]summary.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]summary.Posting, len(s.postings))
	copy(out, s.postings)
	return out, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/stonehaul/haulage-engine/interval"
	"github.com/stonehaul/haulage-engine/rates"
)

// rateRepo is the locking view over Store; rateTxView is the lock-free view
// used inside WithTx while the store lock is already held.
type rateRepo struct {
	store *Store
}

func (r *rateRepo) Insert(_ context.Context, v rates.RateVersion) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.insertRateLocked(v)
}

func (r *rateRepo) Update(_ context.Context, v rates.RateVersion) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.updateRateLocked(v)
}

func (r *rateRepo) UpdateStatus(_ context.Context, id string, status interval.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.updateRateStatusLocked(id, status)
}

func (r *rateRepo) Get(_ context.Context, id string) (rates.RateVersion, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.getRateLocked(id)
}

func (r *rateRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteRateLocked(id)
}

func (r *rateRepo) ListByKey(_ context.Context, key rates.PartyKey) ([]rates.RateVersion, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.listRatesLocked(key), nil
}

func (r *rateRepo) WithTx(_ context.Context, fn func(rates.Repository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	if err := fn(&rateTxView{store: r.store}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

type rateTxView struct {
	store *Store
}

func (v *rateTxView) Insert(_ context.Context, rv rates.RateVersion) error {
	return v.store.insertRateLocked(rv)
}

func (v *rateTxView) Update(_ context.Context, rv rates.RateVersion) error {
	return v.store.updateRateLocked(rv)
}

func (v *rateTxView) UpdateStatus(_ context.Context, id string, status interval.Status) error {
	return v.store.updateRateStatusLocked(id, status)
}

func (v *rateTxView) Get(_ context.Context, id string) (rates.RateVersion, error) {
	return v.store.getRateLocked(id)
}

func (v *rateTxView) Delete(_ context.Context, id string) error {
	return v.store.deleteRateLocked(id)
}

func (v *rateTxView) ListByKey(_ context.Context, key rates.PartyKey) ([]rates.RateVersion, error) {
	return v.store.listRatesLocked(key), nil
}

func (v *rateTxView) WithTx(ctx context.Context, fn func(rates.Repository) error) error {
	// Already inside a transaction; nested calls join it.
	return fn(v)
}

// =============================================================================
// LOCKED HELPERS
// =============================================================================

func (s *Store) insertRateLocked(v rates.RateVersion) error {
	s.rateVersions[v.ID] = v
	return nil
}

func (s *Store) updateRateLocked(v rates.RateVersion) error {
	if _, ok := s.rateVersions[v.ID]; !ok {
		return rates.ErrRateNotFound
	}
	s.rateVersions[v.ID] = v
	return nil
}

func (s *Store) updateRateStatusLocked(id string, status interval.Status) error {
	v, ok := s.rateVersions[id]
	if !ok {
		return rates.ErrRateNotFound
	}
	v.Status = status
	s.rateVersions[id] = v
	return nil
}

func (s *Store) getRateLocked(id string) (rates.RateVersion, error) {
	v, ok := s.rateVersions[id]
	if !ok {
		return rates.RateVersion{}, rates.ErrRateNotFound
	}
	return v, nil
}

func (s *Store) deleteRateLocked(id string) error {
	if _, ok := s.rateVersions[id]; !ok {
		return rates.ErrRateNotFound
	}
	delete(s.rateVersions, id)
	return nil
}

func (s *Store) listRatesLocked(key rates.PartyKey) []rates.RateVersion {
	var out []rates.RateVersion
	for _, v := range s.rateVersions {
		if v.Key == key {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Validity.From.Before(out[j].Validity.From)
	})
	return out
}

/*
manager.go - Rate version lifecycle with supersession

CREATE ALGORITHM (single storage transaction):
  1. Load all versions for the key.
  2. Reject ErrDuplicateRate on an identical (from, to) pair.
  3. Reject ErrOverlappingRate if a version starting on or after the new start
     overlaps - a future conflict supersession cannot resolve.
  4. Close every earlier-starting version whose interval reaches the new
     start: its end becomes (new start - 1 day). This is supersession: the
     common "rate changed today" workflow silently terminates the open-ended
     predecessor.
  5. Insert the new version with its derived status.

UPDATE is stricter: same overlap rejection (excluding the row itself) but no
supersession. Editing a historical row must not silently rewrite other rows.

STATUS SELF-HEALING:
  Statuses are recomputed against "today" on every list and persisted when
  changed. A version that crossed Future→Active overnight is corrected on the
  next read; no background scheduler exists.
*/
package rates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stonehaul/haulage-engine/interval"
)

// Manager enforces the non-overlap invariant for rate versions.
type Manager struct {
	repo  Repository
	clock interval.Clock
}

// NewManager creates a manager. A nil clock falls back to the system clock.
func NewManager(repo Repository, clock interval.Clock) *Manager {
	if clock == nil {
		clock = interval.SystemClock{}
	}
	return &Manager{repo: repo, clock: clock}
}

// CreateVersion inserts a new rate version for the key, terminating any
// conflicting predecessor that started earlier. Atomic: on conflict or
// storage failure nothing is changed.
func (m *Manager) CreateVersion(ctx context.Context, key PartyKey, validity interval.Interval, fields RateFields) (RateVersion, error) {
	created := RateVersion{
		ID:        uuid.NewString(),
		Key:       key,
		Validity:  validity,
		Fields:    fields,
		Status:    interval.DeriveStatus(validity, m.clock.Today()),
		CreatedAt: time.Now().UTC(),
	}

	err := m.repo.WithTx(ctx, func(repo Repository) error {
		existing, err := repo.ListByKey(ctx, key)
		if err != nil {
			return err
		}

		for _, v := range existing {
			if sameInterval(v.Validity, validity) {
				return ErrDuplicateRate
			}
		}

		for _, v := range existing {
			if v.Validity.From.AfterOrEqual(validity.From) && v.Validity.Overlaps(validity) {
				return &OverlappingRateError{
					ConflictingID: v.ID,
					Conflicting:   v.Validity,
					Submitted:     validity,
				}
			}
		}

		// Supersession: earlier-starting versions whose tail reaches into the
		// new start are closed the day before it.
		cutoff := validity.From.AddDays(-1)
		for _, v := range existing {
			if !v.Validity.From.Before(validity.From) {
				continue
			}
			if v.Validity.To != nil && v.Validity.To.Before(validity.From) {
				continue
			}
			end := cutoff
			v.Validity.To = &end
			v.Status = interval.DeriveStatus(v.Validity, m.clock.Today())
			if err := repo.Update(ctx, v); err != nil {
				return err
			}
		}

		return repo.Insert(ctx, created)
	})
	if err != nil {
		return RateVersion{}, classify(err)
	}
	return created, nil
}

// UpdateVersion rewrites one version's validity and fields. Overlaps are
// always rejected here; no supersession happens on edit.
func (m *Manager) UpdateVersion(ctx context.Context, id string, validity interval.Interval, fields RateFields) (RateVersion, error) {
	var updated RateVersion

	err := m.repo.WithTx(ctx, func(repo Repository) error {
		current, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		siblings, err := repo.ListByKey(ctx, current.Key)
		if err != nil {
			return err
		}
		for _, v := range siblings {
			if v.ID == id {
				continue
			}
			if v.Validity.Overlaps(validity) {
				return &OverlappingRateError{
					ConflictingID: v.ID,
					Conflicting:   v.Validity,
					Submitted:     validity,
				}
			}
		}

		current.Validity = validity
		current.Fields = fields
		current.Status = interval.DeriveStatus(validity, m.clock.Today())
		updated = current
		return repo.Update(ctx, current)
	})
	if err != nil {
		return RateVersion{}, classify(err)
	}
	return updated, nil
}

// ListVersions returns every version for the key with statuses recomputed
// against today. Changed statuses are persisted (self-healing cache), so a
// stale status is corrected on the very next read.
func (m *Manager) ListVersions(ctx context.Context, key PartyKey) ([]RateVersion, error) {
	versions, err := m.repo.ListByKey(ctx, key)
	if err != nil {
		return nil, classify(err)
	}

	today := m.clock.Today()
	for i := range versions {
		s := interval.DeriveStatus(versions[i].Validity, today)
		if s == versions[i].Status {
			continue
		}
		if err := m.repo.UpdateStatus(ctx, versions[i].ID, s); err != nil {
			return nil, classify(err)
		}
		versions[i].Status = s
	}
	return versions, nil
}

// GetVersion returns a single version by id.
func (m *Manager) GetVersion(ctx context.Context, id string) (RateVersion, error) {
	v, err := m.repo.Get(ctx, id)
	if err != nil {
		return RateVersion{}, classify(err)
	}
	return v, nil
}

// DeleteVersion removes a version. Versions are never deleted automatically,
// only through this explicit call.
func (m *Manager) DeleteVersion(ctx context.Context, id string) error {
	return classify(m.repo.Delete(ctx, id))
}

func sameInterval(a, b interval.Interval) bool {
	if !a.From.Equal(b.From) {
		return false
	}
	if (a.To == nil) != (b.To == nil) {
		return false
	}
	return a.To == nil || a.To.Equal(*b.To)
}

// classify passes domain errors through and wraps everything else as a
// retryable transaction failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if IsConflict(err) || errors.Is(err, ErrRateNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
}

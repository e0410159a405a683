/*
repository.go - Persistence contract for rate versions

PURPOSE:
  Defines the interface between the version manager and the database. The
  manager only ever mutates versions inside WithTx; the non-overlap invariant
  depends on create's load-check-supersede-insert sequence being atomic.

IMPLEMENTATIONS:
  - store/sqlite: Production store (sql.Tx-backed WithTx)
  - store/memory: In-memory store for tests (snapshot/rollback WithTx)
*/
package rates

import (
	"context"

	"github.com/stonehaul/haulage-engine/interval"
)

// Repository persists rate versions.
type Repository interface {
	// Insert adds a new version. The id must be unique.
	Insert(ctx context.Context, v RateVersion) error

	// Update replaces the stored version with the same id.
	Update(ctx context.Context, v RateVersion) error

	// UpdateStatus persists only the derived status. Used by the lazy
	// self-healing pass on list.
	UpdateStatus(ctx context.Context, id string, status interval.Status) error

	// Get returns the version with the given id, or ErrRateNotFound.
	Get(ctx context.Context, id string) (RateVersion, error)

	// Delete removes a version, or returns ErrRateNotFound.
	Delete(ctx context.Context, id string) error

	// ListByKey returns all versions for a key, ordered by EffectiveFrom
	// ascending.
	ListByKey(ctx context.Context, key PartyKey) ([]RateVersion, error)

	// WithTx executes fn atomically. If fn returns an error the transaction
	// is rolled back and no partial state is observable by readers.
	WithTx(ctx context.Context, fn func(Repository) error) error
}

/*
Package rates implements time-bounded rate versioning for business parties.

PURPOSE:
  A rate (material, transport, royalty, or customer pricing) is never edited
  in place when prices change - a new version is created and the previous
  open-ended version is automatically terminated the day before. The manager
  guarantees that, per versioning scope, no two versions' validity intervals
  ever overlap.

KEY CONCEPTS IN THIS FILE (types.go):
  - PartyKey:    The versioning scope (party + material + route). Versions
                 from different keys are fully independent.
  - RateFields:  The priced components. Opaque to the versioning logic.
  - RateVersion: One time-bounded pricing record.

SEE ALSO:
  - manager.go:    Create/update with supersession and overlap rejection
  - errors.go:     Conflict taxonomy
  - repository.go: Persistence contract
*/
package rates

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonehaul/haulage-engine/interval"
)

// =============================================================================
// PARTY KEY - The versioning scope
// =============================================================================

// PartyType identifies which kind of business party a rate prices.
type PartyType string

const (
	PartyCustomer     PartyType = "customer"
	PartyQuarryOwner  PartyType = "quarry"
	PartyTransporter  PartyType = "transport"
	PartyRoyaltyOwner PartyType = "royalty"
	PartyAccount      PartyType = "account" // generic account, no rate versions in practice
)

// PartyKey is the composite scope a rate version belongs to. The non-overlap
// invariant holds per key; versions under different keys never interact.
type PartyKey struct {
	PartyType         PartyType
	PartyID           string
	MaterialType      string
	PickupLocationID  string
	DropOffLocationID string
}

// =============================================================================
// RATE FIELDS - Priced components, opaque to versioning
// =============================================================================

// RateFields carries the numeric rate components. The version manager never
// interprets these; it only stores and returns them.
type RateFields struct {
	PerKM         decimal.Decimal
	PerTon        decimal.Decimal
	PerCubicMeter decimal.Decimal
	GSTPercent    decimal.Decimal
	GSTAmount     decimal.Decimal
	Total         decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// WithComputedTotals fills GSTAmount and Total from the rate components and
// GST percentage. Callers that already carry computed totals keep them.
func (f RateFields) WithComputedTotals() RateFields {
	base := f.PerKM.Add(f.PerTon).Add(f.PerCubicMeter)
	f.GSTAmount = base.Mul(f.GSTPercent).Div(hundred)
	f.Total = base.Add(f.GSTAmount)
	return f
}

// =============================================================================
// RATE VERSION
// =============================================================================

// RateVersion is one time-bounded pricing record for a PartyKey.
//
// Status is derived from Validity and "today". It is persisted only as a
// read cache and self-healed on every list (see Manager.ListVersions).
type RateVersion struct {
	ID        string
	Key       PartyKey
	Validity  interval.Interval
	Fields    RateFields
	Status    interval.Status
	CreatedAt time.Time
}

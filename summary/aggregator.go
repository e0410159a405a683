/*
Package summary builds report-time balances per business party.

PURPOSE:
  A pure, stateless fold executed per report request. It seeds one summary
  per known party from its opening balance, folds in trips and postings for
  the requested period, and classifies each party into a reporting bucket
  (payable / vendor receivable / customer receivable / other) plus an "aged"
  flag for stale balances. Nothing here is persisted; summaries are never a
  source of truth.

MONEY FLOW PER TRIP:
  customer     +revenue        (they owe more)
  quarry owner -materialCost   (we owe them)
  transporter  -transportCost  (we owe them)
  royalty      -royaltyCost    (we owe them)

POSTINGS:
  A posting moves money from one party to another. A CREDIT posting adds to
  the receiver and subtracts from the sender; a DEBIT posting is the inverse.
*/
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/stonehaul/haulage-engine/interval"
	"github.com/stonehaul/haulage-engine/ledger"
	"github.com/stonehaul/haulage-engine/rates"
)

// =============================================================================
// INPUT RECORDS (read-only; owned by the party/trip/posting stores)
// =============================================================================

// Party is one business party with its standing opening balance.
type Party struct {
	ID             string
	Name           string
	Category       rates.PartyType
	OpeningBalance decimal.Decimal
}

// Trip is one completed haulage trip touching up to four party roles.
type Trip struct {
	ID             string
	Date           interval.Date
	CustomerID     string
	QuarryOwnerID  string
	TransporterID  string
	RoyaltyOwnerID string

	Revenue       decimal.Decimal
	MaterialCost  decimal.Decimal
	TransportCost decimal.Decimal
	RoyaltyCost   decimal.Decimal

	Tonnage  decimal.Decimal // customer/quarry/transport quantity
	VolumeM3 decimal.Decimal // royalty quantity, kept separate
}

// Posting is a party-to-party money movement.
type Posting struct {
	ID          string
	Date        interval.Date
	FromPartyID string
	ToPartyID   string
	Amount      decimal.Decimal
	Direction   ledger.Direction
}

// =============================================================================
// OUTPUT
// =============================================================================

// Bucket is the reporting classification of a party's balance.
type Bucket string

const (
	BucketPayable            Bucket = "payable"
	BucketVendorReceivable   Bucket = "vendor_receivable"
	BucketCustomerReceivable Bucket = "customer_receivable"
	BucketOther              Bucket = "other"
)

// AccountSummary is the report row for one party. Rebuilt per request.
type AccountSummary struct {
	ID           string
	Name         string
	Category     rates.PartyType
	Balance      decimal.Decimal
	TotalTrips   int
	TotalTonnage decimal.Decimal
	TotalVolume  decimal.Decimal // m³, royalty only
	LastActivity *interval.Date  // nil when the party has no activity at all
	Bucket       Bucket
	Aged         bool
}

// negligible is the threshold below which a balance is treated as settled.
var negligible = decimal.RequireFromString("0.01")

const agedAfterDays = 30

// =============================================================================
// THE FOLD
// =============================================================================

// BuildSummaries folds trips and postings into per-party balances for the
// period [from, to]. Balance movements honor the period; last-activity dates
// consider the entire history so a party active outside the period is not
// reported as aged.
func BuildSummaries(from, to interval.Date, today interval.Date, parties []Party, trips []Trip, postings []Posting) []AccountSummary {
	period := interval.New(from, to)

	summaries := make([]AccountSummary, len(parties))
	index := make(map[string]*AccountSummary, len(parties))
	for i, p := range parties {
		summaries[i] = AccountSummary{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Balance:  p.OpeningBalance,
		}
		index[p.ID] = &summaries[i]
	}

	touch := func(id string, date interval.Date) *AccountSummary {
		s, ok := index[id]
		if !ok {
			return nil
		}
		if s.LastActivity == nil || date.After(*s.LastActivity) {
			d := date
			s.LastActivity = &d
		}
		return s
	}

	for _, trip := range trips {
		inPeriod := period.Contains(trip.Date)

		if s := touch(trip.CustomerID, trip.Date); s != nil && inPeriod {
			s.Balance = s.Balance.Add(trip.Revenue)
			s.TotalTrips++
			s.TotalTonnage = s.TotalTonnage.Add(trip.Tonnage)
		}
		if s := touch(trip.QuarryOwnerID, trip.Date); s != nil && inPeriod {
			s.Balance = s.Balance.Sub(trip.MaterialCost)
			s.TotalTrips++
			s.TotalTonnage = s.TotalTonnage.Add(trip.Tonnage)
		}
		if s := touch(trip.TransporterID, trip.Date); s != nil && inPeriod {
			s.Balance = s.Balance.Sub(trip.TransportCost)
			s.TotalTrips++
			s.TotalTonnage = s.TotalTonnage.Add(trip.Tonnage)
		}
		if s := touch(trip.RoyaltyOwnerID, trip.Date); s != nil && inPeriod {
			s.Balance = s.Balance.Sub(trip.RoyaltyCost)
			s.TotalVolume = s.TotalVolume.Add(trip.VolumeM3)
		}
	}

	for _, p := range postings {
		inPeriod := period.Contains(p.Date)

		delta := p.Amount
		if p.Direction == ledger.Debit {
			delta = delta.Neg()
		}
		if s := touch(p.ToPartyID, p.Date); s != nil && inPeriod {
			s.Balance = s.Balance.Add(delta)
		}
		if s := touch(p.FromPartyID, p.Date); s != nil && inPeriod {
			s.Balance = s.Balance.Sub(delta)
		}
	}

	for i := range summaries {
		summaries[i].Bucket = classify(&summaries[i])
		summaries[i].Aged = isAged(&summaries[i], today)
	}
	return summaries
}

func classify(s *AccountSummary) Bucket {
	vendor := s.Category == rates.PartyQuarryOwner ||
		s.Category == rates.PartyTransporter ||
		s.Category == rates.PartyRoyaltyOwner

	switch {
	case vendor && s.Balance.IsNegative():
		return BucketPayable
	case vendor && s.Balance.IsPositive():
		// Overpaid vendor: money owed back to us.
		return BucketVendorReceivable
	case s.Category == rates.PartyCustomer && s.Balance.IsPositive():
		return BucketCustomerReceivable
	default:
		return BucketOther
	}
}

func isAged(s *AccountSummary, today interval.Date) bool {
	if s.Balance.Abs().LessThanOrEqual(negligible) {
		return false
	}
	if s.LastActivity == nil {
		return true
	}
	return interval.DaysBetween(*s.LastActivity, today) > agedAfterDays
}

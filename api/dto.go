/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  All dates cross the wire as YYYY-MM-DD strings. An absent or null
  effective_to means the rate version is open-ended.

AMOUNTS:
  Decimal amounts cross the wire as strings so clients never receive
  float-rounded money.

SEE ALSO:
  - handlers.go: Uses these types
  - server.go: Route definitions
*/
package api

import (
	"time"

	"github.com/stonehaul/haulage-engine/ledger"
	"github.com/stonehaul/haulage-engine/rates"
	"github.com/stonehaul/haulage-engine/summary"
)

// =============================================================================
// RATE VERSIONS
// =============================================================================

// RateKeyDTO is the versioning scope in requests and responses.
type RateKeyDTO struct {
	PartyType         string `json:"party_type"`
	PartyID           string `json:"party_id"`
	MaterialType      string `json:"material_type,omitempty"`
	PickupLocationID  string `json:"pickup_location_id,omitempty"`
	DropOffLocationID string `json:"dropoff_location_id,omitempty"`
}

// RateFieldsDTO carries the priced components as decimal strings.
type RateFieldsDTO struct {
	PerKM         string `json:"per_km,omitempty"`
	PerTon        string `json:"per_ton,omitempty"`
	PerCubicMeter string `json:"per_m3,omitempty"`
	GSTPercent    string `json:"gst_percent,omitempty"`
	GSTAmount     string `json:"gst_amount,omitempty"`
	Total         string `json:"total,omitempty"`
}

// RateVersionDTO represents one rate version in API responses.
type RateVersionDTO struct {
	ID            string        `json:"id"`
	Key           RateKeyDTO    `json:"key"`
	EffectiveFrom string        `json:"effective_from"`
	EffectiveTo   *string       `json:"effective_to,omitempty"`
	Fields        RateFieldsDTO `json:"fields"`
	Status        string        `json:"status"`
	CreatedAt     string        `json:"created_at,omitempty"`
}

// CreateRateRequest creates a rate version, superseding any open predecessor.
type CreateRateRequest struct {
	Key           RateKeyDTO    `json:"key"`
	EffectiveFrom string        `json:"effective_from"`
	EffectiveTo   *string       `json:"effective_to,omitempty"`
	Fields        RateFieldsDTO `json:"fields"`
}

// UpdateRateRequest rewrites one version's validity and fields.
type UpdateRateRequest struct {
	EffectiveFrom string        `json:"effective_from"`
	EffectiveTo   *string       `json:"effective_to,omitempty"`
	Fields        RateFieldsDTO `json:"fields"`
}

// =============================================================================
// LEDGER TRANSACTIONS
// =============================================================================

// TransactionDTO represents one ledger row with its derived balances.
type TransactionDTO struct {
	ID               string `json:"id"`
	AccountKey       string `json:"account_key"`
	Date             string `json:"date"`
	Amount           string `json:"amount"`
	Direction        string `json:"direction"`
	Narration        string `json:"narration,omitempty"`
	AvailableBalance string `json:"available_balance"`
	ClosingBalance   string `json:"closing_balance"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// CreateTransactionRequest inserts a ledger transaction.
type CreateTransactionRequest struct {
	AccountKey string `json:"account_key"`
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	Direction  string `json:"direction"`
	Narration  string `json:"narration,omitempty"`
}

// UpdateTransactionRequest rewrites a ledger transaction.
type UpdateTransactionRequest struct {
	AccountKey string `json:"account_key"`
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	Direction  string `json:"direction"`
	Narration  string `json:"narration,omitempty"`
}

// AccountStatementDTO is an account's full ordered sequence plus opening
// balance.
type AccountStatementDTO struct {
	AccountKey     string           `json:"account_key"`
	OpeningBalance string           `json:"opening_balance"`
	Transactions   []TransactionDTO `json:"transactions"`
}

// SetOpeningBalanceRequest records an account's opening balance.
type SetOpeningBalanceRequest struct {
	Amount string `json:"amount"`
}

// =============================================================================
// PARTIES / TRIPS / POSTINGS
// =============================================================================

// PartyDTO represents a business party.
type PartyDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	OpeningBalance string `json:"opening_balance"`
}

// TripDTO represents one haulage trip.
type TripDTO struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	CustomerID     string `json:"customer_id,omitempty"`
	QuarryOwnerID  string `json:"quarry_owner_id,omitempty"`
	TransporterID  string `json:"transporter_id,omitempty"`
	RoyaltyOwnerID string `json:"royalty_owner_id,omitempty"`
	Revenue        string `json:"revenue"`
	MaterialCost   string `json:"material_cost"`
	TransportCost  string `json:"transport_cost"`
	RoyaltyCost    string `json:"royalty_cost"`
	Tonnage        string `json:"tonnage"`
	VolumeM3       string `json:"volume_m3"`
}

// PostingDTO represents a party-to-party money movement.
type PostingDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	FromPartyID string `json:"from_party_id"`
	ToPartyID   string `json:"to_party_id"`
	Amount      string `json:"amount"`
	Direction   string `json:"direction"`
}

// =============================================================================
// SUMMARIES
// =============================================================================

// SummaryDTO is one report row per party.
type SummaryDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Balance      string  `json:"balance"`
	TotalTrips   int     `json:"total_trips"`
	TotalTonnage string  `json:"total_tonnage"`
	TotalVolume  string  `json:"total_volume_m3"`
	LastActivity *string `json:"last_activity,omitempty"`
	Bucket       string  `json:"bucket"`
	Aged         bool    `json:"aged"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error         string `json:"error"`
	Details       string `json:"details,omitempty"`
	ConflictingID string `json:"conflicting_id,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toRateVersionDTO(v rates.RateVersion) RateVersionDTO {
	dto := RateVersionDTO{
		ID: v.ID,
		Key: RateKeyDTO{
			PartyType:         string(v.Key.PartyType),
			PartyID:           v.Key.PartyID,
			MaterialType:      v.Key.MaterialType,
			PickupLocationID:  v.Key.PickupLocationID,
			DropOffLocationID: v.Key.DropOffLocationID,
		},
		EffectiveFrom: v.Validity.From.String(),
		Fields: RateFieldsDTO{
			PerKM:         v.Fields.PerKM.String(),
			PerTon:        v.Fields.PerTon.String(),
			PerCubicMeter: v.Fields.PerCubicMeter.String(),
			GSTPercent:    v.Fields.GSTPercent.String(),
			GSTAmount:     v.Fields.GSTAmount.String(),
			Total:         v.Fields.Total.String(),
		},
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
	}
	if v.Validity.To != nil {
		s := v.Validity.To.String()
		dto.EffectiveTo = &s
	}
	return dto
}

func toTransactionDTO(tx ledger.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:               tx.ID,
		AccountKey:       tx.AccountKey,
		Date:             tx.Date.String(),
		Amount:           tx.Amount.String(),
		Direction:        string(tx.Direction),
		Narration:        tx.Narration,
		AvailableBalance: tx.AvailableBalance.String(),
		ClosingBalance:   tx.ClosingBalance.String(),
		CreatedAt:        tx.CreatedAt.Format(time.RFC3339),
	}
}

func toPartyDTO(p summary.Party) PartyDTO {
	return PartyDTO{
		ID:             p.ID,
		Name:           p.Name,
		Category:       string(p.Category),
		OpeningBalance: p.OpeningBalance.String(),
	}
}

func toTripDTO(t summary.Trip) TripDTO {
	return TripDTO{
		ID:             t.ID,
		Date:           t.Date.String(),
		CustomerID:     t.CustomerID,
		QuarryOwnerID:  t.QuarryOwnerID,
		TransporterID:  t.TransporterID,
		RoyaltyOwnerID: t.RoyaltyOwnerID,
		Revenue:        t.Revenue.String(),
		MaterialCost:   t.MaterialCost.String(),
		TransportCost:  t.TransportCost.String(),
		RoyaltyCost:    t.RoyaltyCost.String(),
		Tonnage:        t.Tonnage.String(),
		VolumeM3:       t.VolumeM3.String(),
	}
}

func toPostingDTO(p summary.Posting) PostingDTO {
	return PostingDTO{
		ID:          p.ID,
		Date:        p.Date.String(),
		FromPartyID: p.FromPartyID,
		ToPartyID:   p.ToPartyID,
		Amount:      p.Amount.String(),
		Direction:   string(p.Direction),
	}
}

func toSummaryDTO(s summary.AccountSummary) SummaryDTO {
	dto := SummaryDTO{
		ID:           s.ID,
		Name:         s.Name,
		Category:     string(s.Category),
		Balance:      s.Balance.String(),
		TotalTrips:   s.TotalTrips,
		TotalTonnage: s.TotalTonnage.String(),
		TotalVolume:  s.TotalVolume.String(),
		Bucket:       string(s.Bucket),
		Aged:         s.Aged,
	}
	if s.LastActivity != nil {
		d := s.LastActivity.String()
		dto.LastActivity = &d
	}
	return dto
}

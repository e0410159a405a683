package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stonehaul/haulage-engine/interval"
	"github.com/stonehaul/haulage-engine/ledger"
	"github.com/stonehaul/haulage-engine/rates"
	"github.com/stonehaul/haulage-engine/summary"
)

// Reference data read by the summary aggregator: parties, trips, postings.
// Plain CRUD; the aggregator itself never writes.

// =============================================================================
// PARTIES
// =============================================================================

func (s *Store) SaveParty(ctx context.Context, p summary.Party) error {
	query := `
		INSERT INTO parties (id, name, category, opening_balance, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			opening_balance = excluded.opening_balance
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.Name, string(p.Category), p.OpeningBalance.String(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save party: %w", err)
	}
	return nil
}

func (s *Store) GetParty(ctx context.Context, id string) (summary.Party, error) {
	var (
		p        summary.Party
		category string
		opening  string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, category, opening_balance FROM parties WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &category, &opening)
	if errors.Is(err, sql.ErrNoRows) {
		return summary.Party{}, summary.ErrPartyNotFound
	}
	if err != nil {
		return summary.Party{}, fmt.Errorf("failed to get party: %w", err)
	}
	p.Category = rates.PartyType(category)
	p.OpeningBalance = parseDecimal(opening)
	return p, nil
}

func (s *Store) ListParties(ctx context.Context) ([]summary.Party, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category, opening_balance FROM parties ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	var parties []summary.Party
	for rows.Next() {
		var (
			p        summary.Party
			category string
			opening  string
		)
		if err := rows.Scan(&p.ID, &p.Name, &category, &opening); err != nil {
			return nil, err
		}
		p.Category = rates.PartyType(category)
		p.OpeningBalance = parseDecimal(opening)
		parties = append(parties, p)
	}
	return parties, rows.Err()
}

// =============================================================================
// TRIPS
// =============================================================================

func (s *Store) SaveTrip(ctx context.Context, t summary.Trip) error {
	query := `
		INSERT INTO trips
		(id, trip_date, customer_id, quarry_owner_id, transporter_id, royalty_owner_id,
		 revenue, material_cost, transport_cost, royalty_cost, tonnage, volume_m3, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.Date.String(),
		nullString(t.CustomerID), nullString(t.QuarryOwnerID),
		nullString(t.TransporterID), nullString(t.RoyaltyOwnerID),
		t.Revenue.String(), t.MaterialCost.String(),
		t.TransportCost.String(), t.RoyaltyCost.String(),
		t.Tonnage.String(), t.VolumeM3.String(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save trip: %w", err)
	}
	return nil
}

func (s *Store) ListTrips(ctx context.Context) ([]summary.Trip, error) {
	query := `
		SELECT id, trip_date, customer_id, quarry_owner_id, transporter_id,
		       royalty_owner_id, revenue, material_cost, transport_cost,
		       royalty_cost, tonnage, volume_m3
		FROM trips
		ORDER BY trip_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []summary.Trip
	for rows.Next() {
		var (
			t                                    summary.Trip
			date                                 string
			customer, quarry, transport, royalty sql.NullString
			revenue, material, transCost         string
			royaltyCost, tonnage, volume         string
		)
		if err := rows.Scan(&t.ID, &date, &customer, &quarry, &transport, &royalty,
			&revenue, &material, &transCost, &royaltyCost, &tonnage, &volume); err != nil {
			return nil, err
		}
		t.Date, _ = interval.ParseDate(date)
		t.CustomerID = customer.String
		t.QuarryOwnerID = quarry.String
		t.TransporterID = transport.String
		t.RoyaltyOwnerID = royalty.String
		t.Revenue = parseDecimal(revenue)
		t.MaterialCost = parseDecimal(material)
		t.TransportCost = parseDecimal(transCost)
		t.RoyaltyCost = parseDecimal(royaltyCost)
		t.Tonnage = parseDecimal(tonnage)
		t.VolumeM3 = parseDecimal(volume)
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// =============================================================================
// POSTINGS
// =============================================================================

func (s *Store) SavePosting(ctx context.Context, p summary.Posting) error {
	query := `
		INSERT INTO postings (id, posting_date, from_party_id, to_party_id, amount, direction, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.Date.String(), p.FromPartyID, p.ToPartyID,
		p.Amount.String(), string(p.Direction),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save posting: %w", err)
	}
	return nil
}

func (s *Store) ListPostings(ctx context.Context) ([]summary.Posting, error) {
	query := `
		SELECT id, posting_date, from_party_id, to_party_id, amount, direction
		FROM postings
		ORDER BY posting_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	defer rows.Close()

	var postings []summary.Posting
	for rows.Next() {
		var (
			p                 summary.Posting
			date              string
			amount, direction string
		)
		if err := rows.Scan(&p.ID, &date, &p.FromPartyID, &p.ToPartyID, &amount, &direction); err != nil {
			return nil, err
		}
		p.Date, _ = interval.ParseDate(date)
		p.Amount = parseDecimal(amount)
		p.Direction = ledger.Direction(direction)
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stonehaul/haulage-engine/interval"
	"github.com/stonehaul/haulage-engine/rates"
)

// rateRepo implements rates.Repository. Inside WithTx, db is the *sql.Tx.
type rateRepo struct {
	store *Store
	db    dbtx
}

const rateColumns = `id, party_type, party_id, material_type, pickup_location_id,
	dropoff_location_id, effective_from, effective_to, per_km, per_ton, per_m3,
	gst_percent, gst_amount, total, status, created_at`

func (r *rateRepo) Insert(ctx context.Context, v rates.RateVersion) error {
	query := `
		INSERT INTO rate_versions (` + rateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		string(v.Key.PartyType),
		v.Key.PartyID,
		v.Key.MaterialType,
		v.Key.PickupLocationID,
		v.Key.DropOffLocationID,
		v.Validity.From.String(),
		endDate(v.Validity),
		v.Fields.PerKM.String(),
		v.Fields.PerTon.String(),
		v.Fields.PerCubicMeter.String(),
		v.Fields.GSTPercent.String(),
		v.Fields.GSTAmount.String(),
		v.Fields.Total.String(),
		string(v.Status),
		v.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return rates.ErrDuplicateRate
		}
		return fmt.Errorf("failed to insert rate version: %w", err)
	}
	return nil
}

func (r *rateRepo) Update(ctx context.Context, v rates.RateVersion) error {
	query := `
		UPDATE rate_versions
		SET effective_from = ?, effective_to = ?, per_km = ?, per_ton = ?,
		    per_m3 = ?, gst_percent = ?, gst_amount = ?, total = ?, status = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		v.Validity.From.String(),
		endDate(v.Validity),
		v.Fields.PerKM.String(),
		v.Fields.PerTon.String(),
		v.Fields.PerCubicMeter.String(),
		v.Fields.GSTPercent.String(),
		v.Fields.GSTAmount.String(),
		v.Fields.Total.String(),
		string(v.Status),
		v.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return rates.ErrDuplicateRate
		}
		return fmt.Errorf("failed to update rate version: %w", err)
	}
	return affectedOrNotFound(res, rates.ErrRateNotFound)
}

func (r *rateRepo) UpdateStatus(ctx context.Context, id string, status interval.Status) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE rate_versions SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update rate status: %w", err)
	}
	return affectedOrNotFound(res, rates.ErrRateNotFound)
}

func (r *rateRepo) Get(ctx context.Context, id string) (rates.RateVersion, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+rateColumns+" FROM rate_versions WHERE id = ?", id)

	v, err := scanRateVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rates.RateVersion{}, rates.ErrRateNotFound
	}
	if err != nil {
		return rates.RateVersion{}, fmt.Errorf("failed to get rate version: %w", err)
	}
	return v, nil
}

func (r *rateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rate_versions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete rate version: %w", err)
	}
	return affectedOrNotFound(res, rates.ErrRateNotFound)
}

func (r *rateRepo) ListByKey(ctx context.Context, key rates.PartyKey) ([]rates.RateVersion, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM rate_versions
		WHERE party_type = ? AND party_id = ? AND material_type = ?
		  AND pickup_location_id = ? AND dropoff_location_id = ?
		ORDER BY effective_from ASC
	`

	rows, err := r.db.QueryContext(ctx, query,
		string(key.PartyType), key.PartyID, key.MaterialType,
		key.PickupLocationID, key.DropOffLocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate versions: %w", err)
	}
	defer rows.Close()

	var versions []rates.RateVersion
	for rows.Next() {
		v, err := scanRateVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// WithTx runs fn inside a database transaction.
func (r *rateRepo) WithTx(ctx context.Context, fn func(rates.Repository) error) error {
	if _, nested := r.db.(*sql.Tx); nested {
		return fn(r)
	}

	sqlTx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&rateRepo{store: r.store, db: sqlTx}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// =============================================================================
// SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRateVersion(row rowScanner) (rates.RateVersion, error) {
	var (
		v             rates.RateVersion
		partyType     string
		from          string
		to            sql.NullString
		perKM, perTon string
		perM3         string
		gstPct        string
		gstAmt        string
		total         string
		status        string
		createdAt     string
	)

	err := row.Scan(
		&v.ID, &partyType, &v.Key.PartyID, &v.Key.MaterialType,
		&v.Key.PickupLocationID, &v.Key.DropOffLocationID,
		&from, &to, &perKM, &perTon, &perM3, &gstPct, &gstAmt, &total,
		&status, &createdAt,
	)
	if err != nil {
		return v, err
	}

	v.Key.PartyType = rates.PartyType(partyType)
	v.Validity.From, _ = interval.ParseDate(from)
	if to.Valid {
		d, err := interval.ParseDate(to.String)
		if err == nil {
			v.Validity.To = &d
		}
	}
	v.Fields.PerKM = parseDecimal(perKM)
	v.Fields.PerTon = parseDecimal(perTon)
	v.Fields.PerCubicMeter = parseDecimal(perM3)
	v.Fields.GSTPercent = parseDecimal(gstPct)
	v.Fields.GSTAmount = parseDecimal(gstAmt)
	v.Fields.Total = parseDecimal(total)
	v.Status = interval.Status(status)
	v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return v, nil
}

func endDate(iv interval.Interval) sql.NullString {
	if iv.To == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: iv.To.String(), Valid: true}
}

func affectedOrNotFound(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

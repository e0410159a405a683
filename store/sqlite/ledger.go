package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonehaul/haulage-engine/interval"
	"github.com/stonehaul/haulage-engine/ledger"
)

// ledgerRepo implements ledger.Repository. Inside WithTx, db is the *sql.Tx.
type ledgerRepo struct {
	store *Store
	db    dbtx
}

const ledgerColumns = `seq, id, account_key, tx_date, amount, direction,
	narration, available_balance, closing_balance, created_at`

func (r *ledgerRepo) Insert(ctx context.Context, tx ledger.Transaction) error {
	query := `
		INSERT INTO ledger_transactions
		(id, account_key, tx_date, amount, direction, narration,
		 available_balance, closing_balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.AccountKey,
		tx.Date.String(),
		tx.Amount.String(),
		string(tx.Direction),
		nullString(tx.Narration),
		tx.AvailableBalance.String(),
		tx.ClosingBalance.String(),
		tx.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger transaction: %w", err)
	}
	return nil
}

func (r *ledgerRepo) Update(ctx context.Context, tx ledger.Transaction) error {
	// seq and created_at are immutable; the row keeps its creation order.
	query := `
		UPDATE ledger_transactions
		SET account_key = ?, tx_date = ?, amount = ?, direction = ?, narration = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		tx.AccountKey,
		tx.Date.String(),
		tx.Amount.String(),
		string(tx.Direction),
		nullString(tx.Narration),
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger transaction: %w", err)
	}
	return affectedOrNotFound(res, ledger.ErrTransactionNotFound)
}

func (r *ledgerRepo) Get(ctx context.Context, id string) (ledger.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ledgerColumns+" FROM ledger_transactions WHERE id = ?", id)

	tx, err := scanLedgerTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Transaction{}, ledger.ErrTransactionNotFound
	}
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("failed to get ledger transaction: %w", err)
	}
	return tx, nil
}

func (r *ledgerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ledger_transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete ledger transaction: %w", err)
	}
	return affectedOrNotFound(res, ledger.ErrTransactionNotFound)
}

func (r *ledgerRepo) ListByAccount(ctx context.Context, accountKey string) ([]ledger.Transaction, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_transactions
		WHERE account_key = ?
		ORDER BY tx_date ASC, seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger transactions: %w", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction
	for rows.Next() {
		tx, err := scanLedgerTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *ledgerRepo) SetBalances(ctx context.Context, id string, available, closing decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE ledger_transactions SET available_balance = ?, closing_balance = ? WHERE id = ?",
		available.String(), closing.String(), id)
	if err != nil {
		return fmt.Errorf("failed to set balances: %w", err)
	}
	return affectedOrNotFound(res, ledger.ErrTransactionNotFound)
}

// OpeningBalance opens the account at zero on first reference.
func (r *ledgerRepo) OpeningBalance(ctx context.Context, accountKey string) (decimal.Decimal, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		"SELECT opening_balance FROM accounts WHERE account_key = ?", accountKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO accounts (account_key, opening_balance, created_at) VALUES (?, '0', ?)",
			accountKey, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to open account: %w", err)
		}
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read opening balance: %w", err)
	}
	return parseDecimal(raw), nil
}

func (r *ledgerRepo) SetOpeningBalance(ctx context.Context, accountKey string, amount decimal.Decimal) error {
	query := `
		INSERT INTO accounts (account_key, opening_balance, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(account_key) DO UPDATE SET opening_balance = excluded.opening_balance
	`

	_, err := r.db.ExecContext(ctx, query,
		accountKey, amount.String(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set opening balance: %w", err)
	}
	return nil
}

// WithTx runs fn inside a database transaction.
func (r *ledgerRepo) WithTx(ctx context.Context, fn func(ledger.Repository) error) error {
	if _, nested := r.db.(*sql.Tx); nested {
		return fn(r)
	}

	sqlTx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&ledgerRepo{store: r.store, db: sqlTx}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

func scanLedgerTransaction(row rowScanner) (ledger.Transaction, error) {
	var (
		tx        ledger.Transaction
		date      string
		amount    string
		direction string
		narration sql.NullString
		available string
		closing   string
		createdAt string
	)

	err := row.Scan(
		&tx.Seq, &tx.ID, &tx.AccountKey, &date, &amount, &direction,
		&narration, &available, &closing, &createdAt,
	)
	if err != nil {
		return tx, err
	}

	tx.Date, _ = interval.ParseDate(date)
	tx.Amount = parseDecimal(amount)
	tx.Direction = ledger.Direction(direction)
	tx.Narration = narration.String
	tx.AvailableBalance = parseDecimal(available)
	tx.ClosingBalance = parseDecimal(closing)
	tx.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return tx, nil
}

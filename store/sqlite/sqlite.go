/*
Package sqlite provides the SQLite-backed repository implementations.

PURPOSE:
  Implements the rates and ledger repository contracts plus the reference
  stores (parties, trips, postings) the summary aggregator reads. The same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  rate_versions:       Time-bounded rate records, one row per version
  ledger_transactions: Per-account dated movements with derived balances
  accounts:            Opening balance per account key
  parties:             Business parties (category + opening balance)
  trips:               Haulage trips (aggregator input)
  postings:            Party-to-party money movements (aggregator input)

ATOMICITY:
  WithTx wraps a function in a database transaction. The rate manager's
  load-check-supersede-insert sequence and the ledger's mutate-then-recompute
  sequence run entirely inside one; a failure rolls everything back so no
  partial state (a terminated predecessor without its successor, stale
  balances after a half-applied mutation) is ever observable.

WAL MODE:
  SQLite is opened with WAL so readers don't block and there is a single
  writer at a time.

AMOUNTS:
  All decimal values are stored as TEXT and parsed back through
  shopspring/decimal; REAL columns would reintroduce binary rounding drift.

USAGE:
  store, err := sqlite.New("./data/haulage.db")
  mgr := rates.NewManager(store.Rates(), nil)
  eng := ledger.NewEngine(store.Ledger())
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/stonehaul/haulage-engine/ledger"
	"github.com/stonehaul/haulage-engine/rates"
)

// Store owns the database handle. Repository views share it.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the handle for metric gauges.
func (s *Store) DB() *sql.DB { return s.db }

// Rates returns the rate-version repository.
func (s *Store) Rates() rates.Repository { return &rateRepo{store: s, db: s.db} }

// Ledger returns the ledger-transaction repository.
func (s *Store) Ledger() ledger.Repository { return &ledgerRepo{store: s, db: s.db} }

func (s *Store) migrate() error {
	schema := `
	-- Rate versions (time-bounded pricing records)
	CREATE TABLE IF NOT EXISTS rate_versions (
		id TEXT PRIMARY KEY,
		party_type TEXT NOT NULL,
		party_id TEXT NOT NULL,
		material_type TEXT NOT NULL,
		pickup_location_id TEXT NOT NULL,
		dropoff_location_id TEXT NOT NULL,
		effective_from TEXT NOT NULL,
		effective_to TEXT,
		per_km TEXT NOT NULL,
		per_ton TEXT NOT NULL,
		per_m3 TEXT NOT NULL,
		gst_percent TEXT NOT NULL,
		gst_amount TEXT NOT NULL,
		total TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Hot path: load all versions for one key, in start order
	CREATE INDEX IF NOT EXISTS idx_rate_versions_key
		ON rate_versions(party_type, party_id, material_type,
		                 pickup_location_id, dropoff_location_id, effective_from);

	-- Backstop for the exact-duplicate rule; the manager checks first, this
	-- catches races between writers
	CREATE UNIQUE INDEX IF NOT EXISTS idx_rate_versions_exact_interval
		ON rate_versions(party_type, party_id, material_type,
		                 pickup_location_id, dropoff_location_id,
		                 effective_from, IFNULL(effective_to, ''));

	-- Ledger transactions. seq is the creation-order tiebreak for same-day rows.
	CREATE TABLE IF NOT EXISTS ledger_transactions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		account_key TEXT NOT NULL,
		tx_date TEXT NOT NULL,
		amount TEXT NOT NULL,
		direction TEXT NOT NULL,
		narration TEXT,
		available_balance TEXT NOT NULL DEFAULT '0',
		closing_balance TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_account_date
		ON ledger_transactions(account_key, tx_date, seq);

	-- Accounts are created implicitly on first reference
	CREATE TABLE IF NOT EXISTS accounts (
		account_key TEXT PRIMARY KEY,
		opening_balance TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	-- Business parties
	CREATE TABLE IF NOT EXISTS parties (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		opening_balance TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	-- Trips (read-only input to summaries)
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		trip_date TEXT NOT NULL,
		customer_id TEXT,
		quarry_owner_id TEXT,
		transporter_id TEXT,
		royalty_owner_id TEXT,
		revenue TEXT NOT NULL DEFAULT '0',
		material_cost TEXT NOT NULL DEFAULT '0',
		transport_cost TEXT NOT NULL DEFAULT '0',
		royalty_cost TEXT NOT NULL DEFAULT '0',
		tonnage TEXT NOT NULL DEFAULT '0',
		volume_m3 TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trips_date ON trips(trip_date);

	-- Postings (party-to-party movements, summary input)
	CREATE TABLE IF NOT EXISTS postings (
		id TEXT PRIMARY KEY,
		posting_date TEXT NOT NULL,
		from_party_id TEXT NOT NULL,
		to_party_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		direction TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_postings_date ON postings(posting_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// dbtx is satisfied by both *sql.DB and *sql.Tx, so repository queries run
// identically inside and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var (
	_ rates.Repository  = (*rateRepo)(nil)
	_ ledger.Repository = (*ledgerRepo)(nil)
)

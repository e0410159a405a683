/*
handlers.go - HTTP API handlers for the haulage back-office engine

PURPOSE:
  Exposes rate versioning, the running-balance ledger, and the summary
  reports via REST. Handles HTTP request/response, JSON serialization, and
  delegates to domain logic.

ENDPOINTS:
  Rates:
    POST   /api/rates                        Create version (with supersession)
    GET    /api/rates                        List versions for a key (query params)
    GET    /api/rates/{id}                   Get one version
    PUT    /api/rates/{id}                   Update version (no supersession)
    DELETE /api/rates/{id}                   Delete version

  Ledger:
    POST   /api/transactions                 Insert transaction (recomputes account)
    PUT    /api/transactions/{id}            Update transaction
    DELETE /api/transactions/{id}            Delete transaction
    GET    /api/accounts/{key}/transactions  Ordered statement with balances
    PUT    /api/accounts/{key}/opening-balance

  Reference data:
    GET/POST /api/parties,  GET /api/parties/{id}
    GET/POST /api/trips
    GET/POST /api/postings

  Reports:
    GET    /api/summaries?from=&to=          Per-party summary rows

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (duplicate interval, overlap); the conflicting version id
         is included so clients can show what blocked the write
  - 500: Storage failures (safe to retry)

SEE ALSO:
  - dto.go:    Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stonehaul/haulage-engine/interval"
	"github.com/stonehaul/haulage-engine/ledger"
	"github.com/stonehaul/haulage-engine/rates"
	"github.com/stonehaul/haulage-engine/summary"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// ReferenceStore persists the parties, trips, and postings the summary
// aggregator reads. Both the sqlite and memory stores satisfy it.
type ReferenceStore interface {
	SaveParty(ctx context.Context, p summary.Party) error
	GetParty(ctx context.Context, id string) (summary.Party, error)
	ListParties(ctx context.Context) ([]summary.Party, error)
	SaveTrip(ctx context.Context, t summary.Trip) error
	ListTrips(ctx context.Context) ([]summary.Trip, error)
	SavePosting(ctx context.Context, p summary.Posting) error
	ListPostings(ctx context.Context) ([]summary.Posting, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Rates  *rates.Manager
	Ledger *ledger.Engine
	Refs   ReferenceStore
	Clock  interval.Clock
}

// NewHandler creates a handler. A nil clock falls back to the system clock.
func NewHandler(mgr *rates.Manager, eng *ledger.Engine, refs ReferenceStore, clock interval.Clock) *Handler {
	if clock == nil {
		clock = interval.SystemClock{}
	}
	return &Handler{Rates: mgr, Ledger: eng, Refs: refs, Clock: clock}
}

// =============================================================================
// RATE HANDLERS
// =============================================================================

// CreateRate creates a rate version, superseding any open predecessor.
// POST /api/rates
func (h *Handler) CreateRate(w http.ResponseWriter, r *http.Request) {
	var req CreateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	key, err := parseRateKey(req.Key)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate key", err)
		return
	}
	validity, err := parseValidity(req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid validity interval", err)
		return
	}
	fields, err := parseRateFields(req.Fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate fields", err)
		return
	}

	created, err := h.Rates.CreateVersion(r.Context(), key, validity, fields)
	if err != nil {
		ObserveRateWrite("create", rateResult(err))
		writeRateError(w, err)
		return
	}

	ObserveRateWrite("create", resultSuccess)
	writeJSON(w, http.StatusCreated, toRateVersionDTO(created))
}

// ListRates lists every version for one key, statuses freshly healed.
// GET /api/rates?party_type=&party_id=&material_type=&pickup_location_id=&dropoff_location_id=
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key, err := parseRateKey(RateKeyDTO{
		PartyType:         q.Get("party_type"),
		PartyID:           q.Get("party_id"),
		MaterialType:      q.Get("material_type"),
		PickupLocationID:  q.Get("pickup_location_id"),
		DropOffLocationID: q.Get("dropoff_location_id"),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate key", err)
		return
	}

	versions, err := h.Rates.ListVersions(r.Context(), key)
	if err != nil {
		writeRateError(w, err)
		return
	}

	dtos := make([]RateVersionDTO, len(versions))
	for i, v := range versions {
		dtos[i] = toRateVersionDTO(v)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRate returns a single version.
// GET /api/rates/{id}
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	v, err := h.Rates.GetVersion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRateVersionDTO(v))
}

// UpdateRate rewrites one version's validity and fields. Overlapping edits
// are rejected; nothing else is touched.
// PUT /api/rates/{id}
func (h *Handler) UpdateRate(w http.ResponseWriter, r *http.Request) {
	var req UpdateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	validity, err := parseValidity(req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid validity interval", err)
		return
	}
	fields, err := parseRateFields(req.Fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate fields", err)
		return
	}

	updated, err := h.Rates.UpdateVersion(r.Context(), chi.URLParam(r, "id"), validity, fields)
	if err != nil {
		ObserveRateWrite("update", rateResult(err))
		writeRateError(w, err)
		return
	}

	ObserveRateWrite("update", resultSuccess)
	writeJSON(w, http.StatusOK, toRateVersionDTO(updated))
}

// DeleteRate removes a version.
// DELETE /api/rates/{id}
func (h *Handler) DeleteRate(w http.ResponseWriter, r *http.Request) {
	if err := h.Rates.DeleteVersion(r.Context(), chi.URLParam(r, "id")); err != nil {
		ObserveRateWrite("delete", rateResult(err))
		writeRateError(w, err)
		return
	}
	ObserveRateWrite("delete", resultSuccess)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// LEDGER HANDLERS
// =============================================================================

// CreateTransaction inserts a ledger transaction and recomputes the account.
// POST /api/transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := parseTransaction("", req.AccountKey, req.Date, req.Amount, req.Direction, req.Narration)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transaction", err)
		return
	}

	inserted, err := h.Ledger.Insert(r.Context(), tx)
	if err != nil {
		ObserveLedgerMutation("insert", ledgerResult(err))
		writeLedgerError(w, err)
		return
	}

	ObserveLedgerMutation("insert", resultSuccess)
	writeJSON(w, http.StatusCreated, toTransactionDTO(inserted))
}

// UpdateTransaction rewrites a transaction and recomputes every affected
// account.
// PUT /api/transactions/{id}
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := parseTransaction(chi.URLParam(r, "id"), req.AccountKey, req.Date, req.Amount, req.Direction, req.Narration)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transaction", err)
		return
	}

	updated, err := h.Ledger.Update(r.Context(), tx)
	if err != nil {
		ObserveLedgerMutation("update", ledgerResult(err))
		writeLedgerError(w, err)
		return
	}

	ObserveLedgerMutation("update", resultSuccess)
	writeJSON(w, http.StatusOK, toTransactionDTO(updated))
}

// DeleteTransaction removes a transaction and recomputes the remainder.
// DELETE /api/transactions/{id}
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		ObserveLedgerMutation("delete", ledgerResult(err))
		writeLedgerError(w, err)
		return
	}
	ObserveLedgerMutation("delete", resultSuccess)
	w.WriteHeader(http.StatusNoContent)
}

// GetStatement returns the account's ordered sequence with opening balance.
// GET /api/accounts/{key}/transactions
func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	accountKey := chi.URLParam(r, "key")
	ctx := r.Context()

	opening, err := h.Ledger.OpeningBalance(ctx, accountKey)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	txs, err := h.Ledger.Transactions(ctx, accountKey)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	dtos := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		dtos[i] = toTransactionDTO(tx)
	}
	writeJSON(w, http.StatusOK, AccountStatementDTO{
		AccountKey:     accountKey,
		OpeningBalance: opening.String(),
		Transactions:   dtos,
	})
}

// SetOpeningBalance records the opening balance and recomputes the account.
// PUT /api/accounts/{key}/opening-balance
func (h *Handler) SetOpeningBalance(w http.ResponseWriter, r *http.Request) {
	var req SetOpeningBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	if err := h.Ledger.SetOpeningBalance(r.Context(), chi.URLParam(r, "key"), amount); err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REFERENCE DATA HANDLERS
// =============================================================================

// CreateParty registers or updates a business party.
// POST /api/parties
func (h *Handler) CreateParty(w http.ResponseWriter, r *http.Request) {
	var dto PartyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if dto.ID == "" {
		dto.ID = uuid.NewString()
	}
	opening, err := parseOptionalDecimal(dto.OpeningBalance)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid opening_balance", err)
		return
	}

	p := summary.Party{
		ID:             dto.ID,
		Name:           dto.Name,
		Category:       rates.PartyType(dto.Category),
		OpeningBalance: opening,
	}
	if err := h.Refs.SaveParty(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save party", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPartyDTO(p))
}

// GetParty returns one party.
// GET /api/parties/{id}
func (h *Handler) GetParty(w http.ResponseWriter, r *http.Request) {
	p, err := h.Refs.GetParty(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, summary.ErrPartyNotFound) {
		writeError(w, http.StatusNotFound, "Party not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get party", err)
		return
	}
	writeJSON(w, http.StatusOK, toPartyDTO(p))
}

// ListParties returns all parties.
// GET /api/parties
func (h *Handler) ListParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.Refs.ListParties(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list parties", err)
		return
	}
	dtos := make([]PartyDTO, len(parties))
	for i, p := range parties {
		dtos[i] = toPartyDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTrip records a haulage trip.
// POST /api/trips
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var dto TripDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	trip, err := parseTrip(dto)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid trip", err)
		return
	}

	if err := h.Refs.SaveTrip(r.Context(), trip); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTripDTO(trip))
}

// ListTrips returns all trips.
// GET /api/trips
func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Refs.ListTrips(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list trips", err)
		return
	}
	dtos := make([]TripDTO, len(trips))
	for i, t := range trips {
		dtos[i] = toTripDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePosting records a party-to-party money movement.
// POST /api/postings
func (h *Handler) CreatePosting(w http.ResponseWriter, r *http.Request) {
	var dto PostingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	posting, err := parsePosting(dto)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid posting", err)
		return
	}

	if err := h.Refs.SavePosting(r.Context(), posting); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save posting", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostingDTO(posting))
}

// ListPostings returns all postings.
// GET /api/postings
func (h *Handler) ListPostings(w http.ResponseWriter, r *http.Request) {
	postings, err := h.Refs.ListPostings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list postings", err)
		return
	}
	dtos := make([]PostingDTO, len(postings))
	for i, p := range postings {
		dtos[i] = toPostingDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SUMMARY HANDLER
// =============================================================================

// GetSummaries rebuilds the per-party report for the requested period.
// GET /api/summaries?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx := r.Context()

	from, err := interval.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
		return
	}
	to, err := interval.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "to must not precede from", nil)
		return
	}

	parties, err := h.Refs.ListParties(ctx)
	if err != nil {
		ObserveSummaryBuild(resultError, time.Since(started))
		writeError(w, http.StatusInternalServerError, "Failed to load parties", err)
		return
	}
	trips, err := h.Refs.ListTrips(ctx)
	if err != nil {
		ObserveSummaryBuild(resultError, time.Since(started))
		writeError(w, http.StatusInternalServerError, "Failed to load trips", err)
		return
	}
	postings, err := h.Refs.ListPostings(ctx)
	if err != nil {
		ObserveSummaryBuild(resultError, time.Since(started))
		writeError(w, http.StatusInternalServerError, "Failed to load postings", err)
		return
	}

	rows := summary.BuildSummaries(from, to, h.Clock.Today(), parties, trips, postings)

	dtos := make([]SummaryDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toSummaryDTO(row)
	}
	ObserveSummaryBuild(resultSuccess, time.Since(started))
	writeJSON(w, http.StatusOK, dtos)
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// PARSING
// =============================================================================

func parseRateKey(dto RateKeyDTO) (rates.PartyKey, error) {
	if dto.PartyType == "" || dto.PartyID == "" {
		return rates.PartyKey{}, errors.New("party_type and party_id are required")
	}
	return rates.PartyKey{
		PartyType:         rates.PartyType(dto.PartyType),
		PartyID:           dto.PartyID,
		MaterialType:      dto.MaterialType,
		PickupLocationID:  dto.PickupLocationID,
		DropOffLocationID: dto.DropOffLocationID,
	}, nil
}

func parseValidity(from string, to *string) (interval.Interval, error) {
	fromDate, err := interval.ParseDate(from)
	if err != nil {
		return interval.Interval{}, err
	}
	if to == nil || *to == "" {
		return interval.OpenEnded(fromDate), nil
	}
	toDate, err := interval.ParseDate(*to)
	if err != nil {
		return interval.Interval{}, err
	}
	if toDate.Before(fromDate) {
		return interval.Interval{}, errors.New("effective_to precedes effective_from")
	}
	return interval.New(fromDate, toDate), nil
}

func parseRateFields(dto RateFieldsDTO) (rates.RateFields, error) {
	perKM, err := parseOptionalDecimal(dto.PerKM)
	if err != nil {
		return rates.RateFields{}, err
	}
	perTon, err := parseOptionalDecimal(dto.PerTon)
	if err != nil {
		return rates.RateFields{}, err
	}
	perM3, err := parseOptionalDecimal(dto.PerCubicMeter)
	if err != nil {
		return rates.RateFields{}, err
	}
	gstPct, err := parseOptionalDecimal(dto.GSTPercent)
	if err != nil {
		return rates.RateFields{}, err
	}

	return rates.RateFields{
		PerKM:         perKM,
		PerTon:        perTon,
		PerCubicMeter: perM3,
		GSTPercent:    gstPct,
	}.WithComputedTotals(), nil
}

func parseTransaction(id, accountKey, date, amount, direction, narration string) (ledger.Transaction, error) {
	if accountKey == "" {
		return ledger.Transaction{}, errors.New("account_key is required")
	}
	d, err := interval.ParseDate(date)
	if err != nil {
		return ledger.Transaction{}, err
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return ledger.Transaction{}, err
	}
	return ledger.Transaction{
		ID:         id,
		AccountKey: accountKey,
		Date:       d,
		Amount:     amt,
		Direction:  ledger.Direction(direction),
		Narration:  narration,
	}, nil
}

func parseTrip(dto TripDTO) (summary.Trip, error) {
	d, err := interval.ParseDate(dto.Date)
	if err != nil {
		return summary.Trip{}, err
	}

	trip := summary.Trip{
		ID:             dto.ID,
		Date:           d,
		CustomerID:     dto.CustomerID,
		QuarryOwnerID:  dto.QuarryOwnerID,
		TransporterID:  dto.TransporterID,
		RoyaltyOwnerID: dto.RoyaltyOwnerID,
	}
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"revenue", dto.Revenue, &trip.Revenue},
		{"material_cost", dto.MaterialCost, &trip.MaterialCost},
		{"transport_cost", dto.TransportCost, &trip.TransportCost},
		{"royalty_cost", dto.RoyaltyCost, &trip.RoyaltyCost},
		{"tonnage", dto.Tonnage, &trip.Tonnage},
		{"volume_m3", dto.VolumeM3, &trip.VolumeM3},
	}
	for _, f := range fields {
		v, err := parseOptionalDecimal(f.raw)
		if err != nil {
			return summary.Trip{}, err
		}
		if v.IsNegative() {
			return summary.Trip{}, fmt.Errorf("%s must not be negative", f.name)
		}
		*f.dst = v
	}
	return trip, nil
}

func parsePosting(dto PostingDTO) (summary.Posting, error) {
	d, err := interval.ParseDate(dto.Date)
	if err != nil {
		return summary.Posting{}, err
	}
	amount, err := decimal.NewFromString(dto.Amount)
	if err != nil {
		return summary.Posting{}, err
	}
	if amount.IsNegative() {
		return summary.Posting{}, errors.New("amount must not be negative")
	}
	dir := ledger.Direction(dto.Direction)
	if !dir.Valid() {
		return summary.Posting{}, errors.New("direction must be DEBIT or CREDIT")
	}
	if dto.FromPartyID == "" || dto.ToPartyID == "" {
		return summary.Posting{}, errors.New("from_party_id and to_party_id are required")
	}

	posting := summary.Posting{
		ID:          dto.ID,
		Date:        d,
		FromPartyID: dto.FromPartyID,
		ToPartyID:   dto.ToPartyID,
		Amount:      amount,
		Direction:   dir,
	}
	if posting.ID == "" {
		posting.ID = uuid.NewString()
	}
	return posting, nil
}

func parseOptionalDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func writeRateError(w http.ResponseWriter, err error) {
	var overlapErr *rates.OverlappingRateError
	switch {
	case errors.As(err, &overlapErr):
		IncRateConflict("overlap")
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:         "Validity interval overlaps an existing version",
			Details:       overlapErr.Error(),
			ConflictingID: overlapErr.ConflictingID,
		})
	case errors.Is(err, rates.ErrDuplicateRate):
		IncRateConflict("duplicate")
		writeError(w, http.StatusConflict, "A version with this exact interval already exists", err)
	case errors.Is(err, rates.ErrRateNotFound):
		writeError(w, http.StatusNotFound, "Rate version not found", nil)
	default:
		writeError(w, http.StatusInternalServerError, "Rate operation failed", err)
	}
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case ledger.IsValidation(err):
		writeError(w, http.StatusBadRequest, "Invalid transaction", err)
	case errors.Is(err, ledger.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found", nil)
	default:
		writeError(w, http.StatusInternalServerError, "Ledger operation failed", err)
	}
}

func rateResult(err error) string {
	if rates.IsConflict(err) {
		return resultConflict
	}
	return resultError
}

func ledgerResult(err error) string {
	if ledger.IsValidation(err) {
		return "invalid"
	}
	return resultError
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

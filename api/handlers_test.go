/*
handlers_test.go - Unit tests for API handlers

Drives the full router over httptest with the in-memory store, so every
test exercises routing, JSON codec, error mapping, and domain logic
together.
*/
package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonehaul/haulage-engine/api"
	"github.com/stonehaul/haulage-engine/interval"
	"github.com/stonehaul/haulage-engine/ledger"
	"github.com/stonehaul/haulage-engine/rates"
	"github.com/stonehaul/haulage-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.New()
	clock := interval.FixedClock{Day: interval.NewDate(2025, time.March, 5)}
	h := api.NewHandler(
		rates.NewManager(store.Rates(), clock),
		ledger.NewEngine(store.Ledger()),
		store,
		clock,
	)

	srv := httptest.NewServer(api.NewRouter(h, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func strPtr(s string) *string { return &s }

func quarryRateRequest(from string, to *string, perTon string) api.CreateRateRequest {
	return api.CreateRateRequest{
		Key: api.RateKeyDTO{
			PartyType:    "quarry",
			PartyID:      "quarry-1",
			MaterialType: "msand",
		},
		EffectiveFrom: from,
		EffectiveTo:   to,
		Fields:        api.RateFieldsDTO{PerTon: perTon, GSTPercent: "18"},
	}
}

// =============================================================================
// RATE ENDPOINT TESTS
// =============================================================================

func TestAPI_CreateRate_ComputesTotals(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/rates", quarryRateRequest("2025-01-01", nil, "400"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[api.RateVersionDTO](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Active", created.Status)
	assert.Nil(t, created.EffectiveTo)
	assert.Equal(t, "72", created.Fields.GSTAmount)
	assert.Equal(t, "472", created.Fields.Total)
}

func TestAPI_CreateRate_SupersessionVisibleInList(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/rates", quarryRateRequest("2025-01-01", nil, "400"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/rates", quarryRateRequest("2025-03-01", nil, "425"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/rates?party_type=quarry&party_id=quarry-1&material_type=msand", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	versions := decode[[]api.RateVersionDTO](t, resp)
	require.Len(t, versions, 2)
	require.NotNil(t, versions[0].EffectiveTo)
	assert.Equal(t, "2025-02-28", *versions[0].EffectiveTo)
	assert.Equal(t, "Inactive", versions[0].Status)
	assert.Equal(t, "Active", versions[1].Status)
}

func TestAPI_CreateRate_OverlapReturns409WithConflictingID(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/rates",
		quarryRateRequest("2025-04-01", strPtr("2025-04-30"), "400"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	existing := decode[api.RateVersionDTO](t, resp)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/rates", quarryRateRequest("2025-03-01", nil, "425"))
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	errResp := decode[api.ErrorResponse](t, resp)
	assert.Equal(t, existing.ID, errResp.ConflictingID)
}

func TestAPI_CreateRate_DuplicateReturns409(t *testing.T) {
	srv := newTestServer(t)

	req := quarryRateRequest("2025-01-01", strPtr("2025-06-30"), "400")
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/rates", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/rates", req)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_CreateRate_BadDate(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/rates", quarryRateRequest("01/03/2025", nil, "400"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_UpdateRate_AndGet(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/rates",
		quarryRateRequest("2025-01-01", strPtr("2025-06-30"), "400"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.RateVersionDTO](t, resp)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/rates/"+created.ID, api.UpdateRateRequest{
		EffectiveFrom: "2025-01-01",
		EffectiveTo:   strPtr("2025-01-31"),
		Fields:        api.RateFieldsDTO{PerTon: "410", GSTPercent: "18"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[api.RateVersionDTO](t, resp)
	assert.Equal(t, "2025-01-31", *updated.EffectiveTo)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/rates/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.RateVersionDTO](t, resp)
	assert.Equal(t, "410", got.Fields.PerTon)
}

func TestAPI_DeleteRate_ThenGetReturns404(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/rates", quarryRateRequest("2025-01-01", nil, "400"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.RateVersionDTO](t, resp)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/rates/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/rates/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// LEDGER ENDPOINT TESTS
// =============================================================================

func TestAPI_Transactions_StatementCarriesBalances(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/accounts/acct-1/opening-balance",
		api.SetOpeningBalanceRequest{Amount: "1000"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/transactions", api.CreateTransactionRequest{
		AccountKey: "acct-1", Date: "2025-03-02", Amount: "300", Direction: "DEBIT",
		Narration: "diesel advance",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.TransactionDTO](t, resp)
	assert.Equal(t, "1000", created.AvailableBalance)
	assert.Equal(t, "700", created.ClosingBalance)

	// Backdated credit shifts the existing row.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/transactions", api.CreateTransactionRequest{
		AccountKey: "acct-1", Date: "2025-03-01", Amount: "200", Direction: "CREDIT",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/accounts/acct-1/transactions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	statement := decode[api.AccountStatementDTO](t, resp)

	assert.Equal(t, "1000", statement.OpeningBalance)
	require.Len(t, statement.Transactions, 2)
	assert.Equal(t, "1200", statement.Transactions[0].ClosingBalance)
	assert.Equal(t, "1200", statement.Transactions[1].AvailableBalance)
	assert.Equal(t, "900", statement.Transactions[1].ClosingBalance)
}

func TestAPI_CreateTransaction_NegativeAmountReturns400(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/transactions", api.CreateTransactionRequest{
		AccountKey: "acct-1", Date: "2025-03-01", Amount: "-50", Direction: "DEBIT",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_DeleteTransaction_RecomputesStatement(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/transactions", api.CreateTransactionRequest{
		AccountKey: "acct-1", Date: "2025-03-01", Amount: "100", Direction: "CREDIT",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decode[api.TransactionDTO](t, resp)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/transactions", api.CreateTransactionRequest{
		AccountKey: "acct-1", Date: "2025-03-02", Amount: "40", Direction: "DEBIT",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/transactions/"+first.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/accounts/acct-1/transactions", nil)
	statement := decode[api.AccountStatementDTO](t, resp)
	require.Len(t, statement.Transactions, 1)
	assert.Equal(t, "0", statement.Transactions[0].AvailableBalance)
	assert.Equal(t, "-40", statement.Transactions[0].ClosingBalance)
}

func TestAPI_UpdateTransaction_UnknownID(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/transactions/ghost", api.UpdateTransactionRequest{
		AccountKey: "acct-1", Date: "2025-03-01", Amount: "10", Direction: "CREDIT",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// SUMMARY ENDPOINT TESTS
// =============================================================================

func TestAPI_Summaries_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	parties := []api.PartyDTO{
		{ID: "cust-1", Name: "BuildCo", Category: "customer", OpeningBalance: "0"},
		{ID: "quarry-1", Name: "Shree Aggregates", Category: "quarry", OpeningBalance: "-500"},
	}
	for _, p := range parties {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/parties", p)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/trips", api.TripDTO{
		Date: "2025-03-02", CustomerID: "cust-1", QuarryOwnerID: "quarry-1",
		Revenue: "5000", MaterialCost: "2000", Tonnage: "25",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/postings", api.PostingDTO{
		Date: "2025-03-04", FromPartyID: "cust-1", ToPartyID: "quarry-1",
		Amount: "800", Direction: "CREDIT",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/summaries?from=2025-03-01&to=2025-03-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decode[[]api.SummaryDTO](t, resp)
	require.Len(t, rows, 2)

	byID := map[string]api.SummaryDTO{}
	for _, row := range rows {
		byID[row.ID] = row
	}

	cust := byID["cust-1"]
	assert.Equal(t, "4200", cust.Balance) // 5000 revenue - 800 paid out
	assert.Equal(t, 1, cust.TotalTrips)
	assert.Equal(t, "customer_receivable", cust.Bucket)
	assert.False(t, cust.Aged)

	quarry := byID["quarry-1"]
	assert.Equal(t, "-1700", quarry.Balance) // -500 opening - 2000 material + 800 received
	assert.Equal(t, "payable", quarry.Bucket)
	require.NotNil(t, quarry.LastActivity)
	assert.Equal(t, "2025-03-04", *quarry.LastActivity)
}

func TestAPI_Summaries_RejectsInvertedPeriod(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/summaries?from=2025-03-31&to=2025-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// REFERENCE DATA AND HEALTH
// =============================================================================

func TestAPI_Parties_RoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/parties", api.PartyDTO{
		ID: "p-1", Name: "Test Party", Category: "transport", OpeningBalance: "100",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/parties/p-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.PartyDTO](t, resp)
	assert.Equal(t, "Test Party", got.Name)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/parties/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_CreateTrip_NegativeAmountReturns400(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/trips", api.TripDTO{
		Date: "2025-03-02", CustomerID: "cust-1",
		Revenue: "-5000", Tonnage: "25",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/trips", api.TripDTO{
		Date: "2025-03-02", QuarryOwnerID: "quarry-1",
		MaterialCost: "2000", Tonnage: "-1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Nothing was stored.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/trips", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	trips := decode[[]api.TripDTO](t, resp)
	assert.Empty(t, trips)
}

func TestAPI_CreatePosting_NegativeAmountReturns400(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/postings", api.PostingDTO{
		Date: "2025-03-04", FromPartyID: "cust-1", ToPartyID: "quarry-1",
		Amount: "-100", Direction: "CREDIT",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/postings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	postings := decode[[]api.PostingDTO](t, resp)
	assert.Empty(t, postings)
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

package summary_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonehaul/haulage-engine/interval"
	"github.com/stonehaul/haulage-engine/ledger"
	"github.com/stonehaul/haulage-engine/rates"
	"github.com/stonehaul/haulage-engine/summary"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(d int) interval.Date { return interval.NewDate(2025, time.March, d) }

func party(id string, category rates.PartyType, opening string) summary.Party {
	return summary.Party{ID: id, Name: "party " + id, Category: category, OpeningBalance: amt(opening)}
}

func findSummary(t *testing.T, summaries []summary.AccountSummary, id string) summary.AccountSummary {
	t.Helper()
	for _, s := range summaries {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("no summary for %s", id)
	return summary.AccountSummary{}
}

// =============================================================================
// BALANCE FOLD TESTS
// =============================================================================

func TestBuildSummaries_TripTouchesAllFourRoles(t *testing.T) {
	// GIVEN: One trip wired to a customer, quarry, transporter, and royalty owner
	// WHEN: Summaries are built over a period containing the trip
	// THEN: The customer gains revenue and each vendor's balance drops by its cost

	parties := []summary.Party{
		party("cust", rates.PartyCustomer, "0"),
		party("quarry", rates.PartyQuarryOwner, "0"),
		party("trans", rates.PartyTransporter, "0"),
		party("roy", rates.PartyRoyaltyOwner, "0"),
	}
	trips := []summary.Trip{{
		ID: "trip-1", Date: day(10),
		CustomerID: "cust", QuarryOwnerID: "quarry", TransporterID: "trans", RoyaltyOwnerID: "roy",
		Revenue: amt("5000"), MaterialCost: amt("2000"), TransportCost: amt("1200"), RoyaltyCost: amt("300"),
		Tonnage: amt("25"), VolumeM3: amt("10"),
	}}

	summaries := summary.BuildSummaries(day(1), day(31), day(15), parties, trips, nil)

	cust := findSummary(t, summaries, "cust")
	if !cust.Balance.Equal(amt("5000")) {
		t.Errorf("customer balance = %s, want 5000", cust.Balance)
	}
	if cust.TotalTrips != 1 || !cust.TotalTonnage.Equal(amt("25")) {
		t.Errorf("customer trips/tonnage = %d/%s", cust.TotalTrips, cust.TotalTonnage)
	}

	quarry := findSummary(t, summaries, "quarry")
	if !quarry.Balance.Equal(amt("-2000")) {
		t.Errorf("quarry balance = %s, want -2000", quarry.Balance)
	}

	trans := findSummary(t, summaries, "trans")
	if !trans.Balance.Equal(amt("-1200")) {
		t.Errorf("transporter balance = %s, want -1200", trans.Balance)
	}

	roy := findSummary(t, summaries, "roy")
	if !roy.Balance.Equal(amt("-300")) {
		t.Errorf("royalty balance = %s, want -300", roy.Balance)
	}
	if roy.TotalTrips != 0 {
		t.Errorf("royalty should not count trips, got %d", roy.TotalTrips)
	}
	if !roy.TotalVolume.Equal(amt("10")) {
		t.Errorf("royalty volume = %s, want 10", roy.TotalVolume)
	}
}

func TestBuildSummaries_OpeningBalanceSeedsTheFold(t *testing.T) {
	parties := []summary.Party{party("quarry", rates.PartyQuarryOwner, "-500")}
	trips := []summary.Trip{{
		ID: "trip-1", Date: day(10), QuarryOwnerID: "quarry",
		MaterialCost: amt("250"), Tonnage: amt("10"),
	}}

	summaries := summary.BuildSummaries(day(1), day(31), day(15), parties, trips, nil)

	got := findSummary(t, summaries, "quarry")
	if !got.Balance.Equal(amt("-750")) {
		t.Errorf("balance = %s, want -750", got.Balance)
	}
}

func TestBuildSummaries_OutOfPeriodTripMovesNoMoney(t *testing.T) {
	// GIVEN: A trip dated outside the requested period
	// WHEN: Summaries are built
	// THEN: The balance ignores it but last-activity still sees it

	parties := []summary.Party{party("cust", rates.PartyCustomer, "100")}
	trips := []summary.Trip{{
		ID: "trip-1", Date: day(2), CustomerID: "cust", Revenue: amt("5000"), Tonnage: amt("25"),
	}}

	summaries := summary.BuildSummaries(day(10), day(31), day(15), parties, trips, nil)

	got := findSummary(t, summaries, "cust")
	if !got.Balance.Equal(amt("100")) {
		t.Errorf("balance = %s, want 100 (trip outside period)", got.Balance)
	}
	if got.TotalTrips != 0 {
		t.Errorf("trips = %d, want 0", got.TotalTrips)
	}
	if got.LastActivity == nil || !got.LastActivity.Equal(day(2)) {
		t.Errorf("last activity = %v, want 2025-03-02", got.LastActivity)
	}
}

func TestBuildSummaries_PostingsMoveMoneyBetweenParties(t *testing.T) {
	// GIVEN: A payment of 800 posted from "us" to a quarry owner we owe 2000
	// WHEN: Summaries are built
	// THEN: The quarry's debt shrinks to -1200 and the sender drops by 800

	parties := []summary.Party{
		party("us", rates.PartyAccount, "10000"),
		party("quarry", rates.PartyQuarryOwner, "-2000"),
	}
	postings := []summary.Posting{{
		ID: "pay-1", Date: day(12),
		FromPartyID: "us", ToPartyID: "quarry",
		Amount: amt("800"), Direction: ledger.Credit,
	}}

	summaries := summary.BuildSummaries(day(1), day(31), day(15), parties, nil, postings)

	quarry := findSummary(t, summaries, "quarry")
	if !quarry.Balance.Equal(amt("-1200")) {
		t.Errorf("quarry balance = %s, want -1200", quarry.Balance)
	}
	us := findSummary(t, summaries, "us")
	if !us.Balance.Equal(amt("9200")) {
		t.Errorf("sender balance = %s, want 9200", us.Balance)
	}
}

func TestBuildSummaries_DebitPostingInvertsTheFlow(t *testing.T) {
	parties := []summary.Party{
		party("a", rates.PartyAccount, "0"),
		party("b", rates.PartyAccount, "0"),
	}
	postings := []summary.Posting{{
		ID: "p-1", Date: day(12),
		FromPartyID: "a", ToPartyID: "b",
		Amount: amt("100"), Direction: ledger.Debit,
	}}

	summaries := summary.BuildSummaries(day(1), day(31), day(15), parties, nil, postings)

	if got := findSummary(t, summaries, "b").Balance; !got.Equal(amt("-100")) {
		t.Errorf("debit receiver balance = %s, want -100", got)
	}
	if got := findSummary(t, summaries, "a").Balance; !got.Equal(amt("100")) {
		t.Errorf("debit sender balance = %s, want 100", got)
	}
}

func TestBuildSummaries_UnknownPartyReferencesIgnored(t *testing.T) {
	// Trips may reference parties that were deleted or never registered.
	parties := []summary.Party{party("cust", rates.PartyCustomer, "0")}
	trips := []summary.Trip{{
		ID: "trip-1", Date: day(10),
		CustomerID: "cust", QuarryOwnerID: "ghost",
		Revenue: amt("1000"), MaterialCost: amt("400"), Tonnage: amt("5"),
	}}

	summaries := summary.BuildSummaries(day(1), day(31), day(15), parties, trips, nil)
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1 (no phantom rows)", len(summaries))
	}
	if !summaries[0].Balance.Equal(amt("1000")) {
		t.Errorf("balance = %s, want 1000", summaries[0].Balance)
	}
}

// =============================================================================
// CLASSIFICATION TESTS
// =============================================================================

func TestBuildSummaries_Buckets(t *testing.T) {
	tests := []struct {
		name     string
		category rates.PartyType
		opening  string
		want     summary.Bucket
	}{
		{"vendor owed money is payable", rates.PartyQuarryOwner, "-500", summary.BucketPayable},
		{"overpaid vendor is vendor receivable", rates.PartyTransporter, "500", summary.BucketVendorReceivable},
		{"customer owing us is customer receivable", rates.PartyCustomer, "500", summary.BucketCustomerReceivable},
		{"customer in credit is other", rates.PartyCustomer, "-500", summary.BucketOther},
		{"settled vendor is other", rates.PartyRoyaltyOwner, "0", summary.BucketOther},
		{"generic account is other", rates.PartyAccount, "900", summary.BucketOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parties := []summary.Party{party("p", tt.category, tt.opening)}
			summaries := summary.BuildSummaries(day(1), day(31), day(15), parties, nil, nil)
			if summaries[0].Bucket != tt.want {
				t.Errorf("bucket = %s, want %s", summaries[0].Bucket, tt.want)
			}
		})
	}
}

// =============================================================================
// AGED FLAG TESTS
// =============================================================================

func TestBuildSummaries_AgedFlag(t *testing.T) {
	today := interval.NewDate(2025, time.June, 1)
	from := interval.NewDate(2025, time.January, 1)
	to := interval.NewDate(2025, time.June, 30)

	recent := interval.NewDate(2025, time.May, 20)  // 12 days before today
	stale := interval.NewDate(2025, time.April, 15) // 47 days before today

	parties := []summary.Party{
		party("recent", rates.PartyQuarryOwner, "-500"),
		party("stale", rates.PartyQuarryOwner, "-500"),
		party("settled", rates.PartyQuarryOwner, "0"),
		party("silent", rates.PartyQuarryOwner, "-500"),
	}
	trips := []summary.Trip{
		{ID: "t1", Date: recent, QuarryOwnerID: "recent", MaterialCost: amt("0")},
		{ID: "t2", Date: stale, QuarryOwnerID: "stale", MaterialCost: amt("0")},
		{ID: "t3", Date: stale, QuarryOwnerID: "settled", MaterialCost: amt("0")},
	}

	summaries := summary.BuildSummaries(from, to, today, parties, trips, nil)

	if findSummary(t, summaries, "recent").Aged {
		t.Error("recent activity should not be aged")
	}
	if !findSummary(t, summaries, "stale").Aged {
		t.Error("47-day-old balance should be aged")
	}
	if findSummary(t, summaries, "settled").Aged {
		t.Error("near-zero balance is never aged")
	}
	if !findSummary(t, summaries, "silent").Aged {
		t.Error("balance with no activity at all should be aged")
	}
}

func TestBuildSummaries_AgedBoundary(t *testing.T) {
	// Exactly 30 days old is not yet aged; 31 is.
	today := interval.NewDate(2025, time.June, 1)

	exactly30 := today.AddDays(-30)
	exactly31 := today.AddDays(-31)

	parties := []summary.Party{
		party("edge", rates.PartyQuarryOwner, "-500"),
		party("over", rates.PartyQuarryOwner, "-500"),
	}
	trips := []summary.Trip{
		{ID: "t1", Date: exactly30, QuarryOwnerID: "edge", MaterialCost: amt("0")},
		{ID: "t2", Date: exactly31, QuarryOwnerID: "over", MaterialCost: amt("0")},
	}

	summaries := summary.BuildSummaries(exactly31, today, today, parties, trips, nil)

	if findSummary(t, summaries, "edge").Aged {
		t.Error("30 days should not be aged")
	}
	if !findSummary(t, summaries, "over").Aged {
		t.Error("31 days should be aged")
	}
}

// =============================================================================
// DETERMINISM
// =============================================================================

func TestBuildSummaries_Deterministic(t *testing.T) {
	parties := []summary.Party{
		party("cust", rates.PartyCustomer, "100"),
		party("quarry", rates.PartyQuarryOwner, "-200"),
	}
	trips := []summary.Trip{{
		ID: "t1", Date: day(10), CustomerID: "cust", QuarryOwnerID: "quarry",
		Revenue: amt("1000"), MaterialCost: amt("400"), Tonnage: amt("5"),
	}}
	postings := []summary.Posting{{
		ID: "p1", Date: day(12), FromPartyID: "cust", ToPartyID: "quarry",
		Amount: amt("50"), Direction: ledger.Credit,
	}}

	first := summary.BuildSummaries(day(1), day(31), day(15), parties, trips, postings)
	second := summary.BuildSummaries(day(1), day(31), day(15), parties, trips, postings)

	for i := range first {
		if first[i].ID != second[i].ID || !first[i].Balance.Equal(second[i].Balance) ||
			first[i].Bucket != second[i].Bucket || first[i].Aged != second[i].Aged {
			t.Fatalf("row %d differs between identical runs", i)
		}
	}
}

package filter

import (
	"testing"

	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.InvoiceRecord {
	return []models.InvoiceRecord{
		{InvoiceID: "1", VendorNumber: "V1", Plant: "P1", MatchStatus: models.MatchStatusPass, MatchDate: "2024-01-01"},
		{InvoiceID: "2", VendorNumber: "V1", Plant: "P2", MatchStatus: models.MatchStatusFail, IRDate: "2024-01-15", ExceptionType: "Price"},
		{InvoiceID: "3", VendorNumber: "V2", Plant: "P1", MatchStatus: models.MatchStatusFail, GRDate: "2024-01-31", BlockReason: "Quality"},
		{InvoiceID: "4", VendorNumber: "v1", Plant: "P1", MatchStatus: models.MatchStatusTolerancePass, MatchDate: "2024-02-01", ResponsibleTeam: "AP"},
		{InvoiceID: "5", VendorNumber: "V1", Plant: "P1", MatchStatus: models.MatchStatusPass},
	}
}

func ids(records []models.InvoiceRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.InvoiceID)
	}
	return out
}

func TestApply_EmptyFiltersIdentity(t *testing.T) {
	records := sampleRecords()
	got := Apply(records, models.FiltersState{})
	assert.Equal(t, records, got)
	assert.Empty(t, BuildPredicates(models.FiltersState{}))

	got = Apply(records, models.FiltersState{MatchStatus: models.MatchStatusAll})
	assert.Equal(t, records, got, "ALL is the unconstrained match status")
}

func TestApply_DoesNotAliasInput(t *testing.T) {
	records := sampleRecords()
	got := Apply(records, models.FiltersState{})
	got[0].InvoiceID = "changed"
	assert.Equal(t, "1", records[0].InvoiceID)
}

func TestApply_Criteria(t *testing.T) {
	tests := []struct {
		name    string
		filters models.FiltersState
		want    []string
	}{
		{"vendor is case sensitive", models.FiltersState{Vendor: "V1"}, []string{"1", "2", "5"}},
		{"plant", models.FiltersState{Plant: "P2"}, []string{"2"}},
		{"match status", models.FiltersState{MatchStatus: models.MatchStatusFail}, []string{"2", "3"}},
		{"exception type", models.FiltersState{ExceptionType: "Price"}, []string{"2"}},
		{"block reason", models.FiltersState{BlockReason: "Quality"}, []string{"3"}},
		{"team", models.FiltersState{ResponsibleTeam: "AP"}, []string{"4"}},
		{"conjunction", models.FiltersState{Vendor: "V1", MatchStatus: models.MatchStatusPass, Plant: "P1"}, []string{"1", "5"}},
		{"no match", models.FiltersState{Vendor: "V9"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sampleRecords(), tt.filters)))
		})
	}
}

func TestApply_ConjunctionOfSingleFilters(t *testing.T) {
	records := sampleRecords()
	vendor := models.FiltersState{Vendor: "V1"}
	status := models.FiltersState{MatchStatus: models.MatchStatusPass}

	combined := Apply(records, vendor.Merge(status))
	chained := Apply(Apply(records, vendor), status)
	assert.Equal(t, chained, combined)
}

func TestApply_DateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"inclusive bounds", "2024-01-01", "2024-01-31", []string{"1", "2", "3"}},
		{"start only", "2024-01-15", "", []string{"2", "3", "4"}},
		{"end only", "", "2024-01-01", []string{"1"}},
		{"single day", "2024-01-15", "2024-01-15", []string{"2"}},
		{"inverted range", "2024-02-01", "2024-01-01", []string{}},
		{"unparseable bound keeps dated records", "soon", "", []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleRecords(), models.FiltersState{StartDate: tt.start, EndDate: tt.end})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_DatelessRecordsExcludedByRange(t *testing.T) {
	got := Apply(sampleRecords(), models.FiltersState{StartDate: "2000-01-01"})
	require.NotContains(t, ids(got), "5")
}

func TestApply_RangeEdges(t *testing.T) {
	records := []models.InvoiceRecord{
		{InvoiceID: "bad-match-date", MatchDate: "2024-13-45", IRDate: "2024-01-10"},
		{InvoiceID: "day-before", MatchDate: "2023-12-31"},
		{InvoiceID: "first-day", MatchDate: "2024-01-01"},
		{InvoiceID: "last-day", MatchDate: "2024-01-31"},
		{InvoiceID: "day-after", MatchDate: "2024-02-01"},
		{InvoiceID: "no-date"},
	}
	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"both bounds", "2024-01-01", "2024-01-31", []string{"first-day", "last-day"}},
		{"start only", "2024-01-01", "", []string{"first-day", "last-day", "day-after"}},
		{"end only", "", "2024-01-31", []string{"day-before", "first-day", "last-day"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, models.FiltersState{StartDate: tt.start, EndDate: tt.end})
			assert.Equal(t, tt.want, ids(got))
		})
	}

	// no bound, no date check
	assert.Len(t, Apply(records, models.FiltersState{}), len(records))
}

func TestApply_ReferenceDatePrecedence(t *testing.T) {
	records := []models.InvoiceRecord{
		{InvoiceID: "A", MatchDate: "2024-03-01", IRDate: "2024-01-01", GRDate: "2024-01-01"},
		{InvoiceID: "B", IRDate: "2024-03-01", GRDate: "2024-01-01"},
	}
	got := Apply(records, models.FiltersState{StartDate: "2024-02-01"})
	assert.Equal(t, []string{"A", "B"}, ids(got))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiltersState_Merge(t *testing.T) {
	base := FiltersState{Vendor: "V1", StartDate: "2024-01-01"}
	next := FiltersState{Vendor: "V2", MatchStatus: MatchStatusFail}

	merged := base.Merge(next)
	assert.Equal(t, FiltersState{Vendor: "V2", StartDate: "2024-01-01", MatchStatus: MatchStatusFail}, merged)
	assert.Equal(t, "V1", base.Vendor, "receiver must not change")
	assert.Equal(t, base, base.Merge(FiltersState{}))
}

func TestFiltersState_IsEmpty(t *testing.T) {
	assert.True(t, FiltersState{}.IsEmpty())
	assert.True(t, FiltersState{MatchStatus: MatchStatusAll}.IsEmpty())
	assert.False(t, FiltersState{Plant: "P1"}.IsEmpty())
	assert.True(t, FiltersState{EndDate: "2024-01-01"}.HasDateRange())
}

func TestCollectFilterOptions(t *testing.T) {
	records := []InvoiceRecord{
		{VendorNumber: "V2", Plant: "P1", MatchStatus: MatchStatusFail, BlockReason: "Price"},
		{VendorNumber: "V1", Plant: "P1", MatchStatus: MatchStatusPass},
		{VendorNumber: "V2", ResponsibleTeam: "AP", MatchStatus: MatchStatusFail},
	}

	opts := CollectFilterOptions(records)
	assert.Equal(t, []string{"V2", "V1"}, opts.Vendors)
	assert.Equal(t, []string{"P1"}, opts.Plants)
	assert.Equal(t, []MatchStatus{MatchStatusFail, MatchStatusPass}, opts.MatchStatuses)
	assert.Equal(t, []string{"Price"}, opts.BlockReasons)
	assert.Equal(t, []string{"AP"}, opts.Teams)
	assert.Empty(t, opts.Materials)
}

func TestInvoiceRecord_Derived(t *testing.T) {
	r := InvoiceRecord{GRDate: "2024-01-01", IRDate: "2024-01-02"}
	assert.Equal(t, "2024-01-02", r.ReferenceDate())
	r.MatchDate = "2024-01-03"
	assert.Equal(t, "2024-01-03", r.ReferenceDate())

	assert.False(t, r.IsException())
	assert.True(t, InvoiceRecord{MatchStatus: MatchStatusFail}.IsException())
	assert.True(t, InvoiceRecord{BlockReason: "Price"}.IsException())

	assert.True(t, InvoiceRecord{AutoReleaseFlag: true}.IsAutomated())
	assert.False(t, r.IsAutomated())

	first := FirstOf(ResolutionDate, BlockDate)
	assert.Equal(t, "2024-05-01", first(InvoiceRecord{BlockDate: "2024-05-01"}))
	assert.Empty(t, first(InvoiceRecord{}))
}

package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/garyjia/p2p-dashboard/internal/decision"
	"github.com/garyjia/p2p-dashboard/internal/metrics"
	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockLoader mocks the dataset Loader interface
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context, path string) ([]models.InvoiceRecord, error) {
	args := m.Called(ctx, path)
	records, _ := args.Get(0).([]models.InvoiceRecord)
	return records, args.Error(1)
}

func testRecords() []models.InvoiceRecord {
	return []models.InvoiceRecord{
		{InvoiceID: "INV-1", VendorNumber: "V1", Plant: "P1", MatchStatus: models.MatchStatusPass, MatchDate: "2024-01-05"},
		{InvoiceID: "INV-2", VendorNumber: "V1", Plant: "P2", MatchStatus: models.MatchStatusFail, MatchDate: "2024-01-20", ExceptionType: "Price"},
		{InvoiceID: "INV-3", VendorNumber: "V2", Plant: "P1", MatchStatus: models.MatchStatusFail, MatchDate: "2024-02-03", BlockReason: "Quality", PONumber: "4500003"},
		{InvoiceID: "INV-4", VendorNumber: "V2", Plant: "P1", MatchStatus: models.MatchStatusTolerancePass, MatchDate: "2024-02-09"},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testRecords(), DefaultOptions(), zap.NewNop())
}

func TestOpen(t *testing.T) {
	loader := new(MockLoader)
	ctx := context.Background()
	loader.On("Load", ctx, "data.json").Return(testRecords(), nil)

	svc, err := Open(ctx, loader, "data.json", DefaultOptions(), zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, svc.Filtered(), 4)
	loader.AssertExpectations(t)
}

func TestOpen_LoadError(t *testing.T) {
	loader := new(MockLoader)
	ctx := context.Background()
	loadErr := errors.New("boom")
	loader.On("Load", ctx, "broken.csv").Return(nil, loadErr)

	_, err := Open(ctx, loader, "broken.csv", DefaultOptions(), zap.NewNop())
	assert.ErrorIs(t, err, loadErr)
	loader.AssertExpectations(t)
}

func TestService_FiltersDrivePanels(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, 50, svc.Agent1().Status.FailRate)

	svc.SetFilters(models.FiltersState{Vendor: "V1"})
	assert.Len(t, svc.Filtered(), 2)
	assert.Equal(t, 50, svc.Agent1().Status.FailRate)

	svc.Navigate(models.FiltersState{Plant: "P2"})
	assert.Equal(t, models.FiltersState{Vendor: "V1", Plant: "P2"}, svc.Filters())
	assert.Equal(t, 100, svc.Agent1().Status.FailRate)

	svc.Reset()
	assert.True(t, svc.Filters().IsEmpty())
	assert.Len(t, svc.Filtered(), 4)
}

func TestService_DefaultFilters(t *testing.T) {
	opts := DefaultOptions()
	opts.DefaultFilters = models.FiltersState{StartDate: "2024-02-01"}
	svc := NewService(testRecords(), opts, zap.NewNop())
	assert.Len(t, svc.Filtered(), 2)

	svc.SetFilters(models.FiltersState{})
	svc.Reset()
	assert.Len(t, svc.Filtered(), 2)
}

func TestService_Memoization(t *testing.T) {
	svc := newTestService(t)

	first := svc.ExecutiveSummary()
	second := svc.ExecutiveSummary()
	assert.Equal(t, first, second)
	hits, misses := svc.CacheStats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	svc.SetFilters(models.FiltersState{Vendor: "V2"})
	summary := svc.ExecutiveSummary()
	assert.Equal(t, "2", summary.KPIs[0].Value)
	_, misses = svc.CacheStats()
	assert.Equal(t, 2, misses)
}

func TestService_Options(t *testing.T) {
	svc := newTestService(t)
	svc.SetFilters(models.FiltersState{Vendor: "V1"})

	opts := svc.Options()
	assert.Equal(t, []string{"V1", "V2"}, opts.Vendors, "options come from the full dataset")
}

func TestService_DecisionCenter(t *testing.T) {
	svc := newTestService(t)

	board := svc.DecisionCenter()
	require.Len(t, board.Rows, 2)
	assert.Equal(t, 0, board.Selected)

	svc.Toggle("INV-2")
	svc.Toggle("INV-3")
	res, err := svc.Bulk(decision.ActionApplyResolution)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 2, svc.Selection().Len(), "selection survives bulk actions")

	svc.Toggle("INV-3")
	assert.Equal(t, []string{"INV-2"}, svc.Selection().IDs())

	svc.ClearSelection()
	res, err = svc.Bulk(decision.ActionDefer)
	require.NoError(t, err)
	assert.Equal(t, "No invoices selected", res.Description)

	_, err = svc.Bulk("Archive")
	assert.ErrorIs(t, err, decision.ErrUnknownAction)
}

func TestService_RowAction(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.RowAction(decision.ActionAmendPO, "INV-3")
	require.NoError(t, err)
	assert.Equal(t, "PO 4500003 for Invoice INV-3", res.Description)

	_, err = svc.RowAction(decision.ActionApply, "INV-404")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestService_InvalidDateBoundStillFilters(t *testing.T) {
	svc := newTestService(t)
	svc.SetFilters(models.FiltersState{StartDate: "whenever"})
	assert.Len(t, svc.Filtered(), 4)
}

func TestService_ResultsAreDetached(t *testing.T) {
	svc := newTestService(t)

	panel := svc.Agent1()
	require.NotEmpty(t, panel.VendorVolume)
	require.NotEmpty(t, panel.StatusTrend)
	wantCount := panel.VendorVolume[0].Count
	wantFail := panel.StatusTrend[0].Values[metrics.SeriesFail]

	panel.VendorVolume[0].Count = 999
	panel.StatusTrend[0].Values[metrics.SeriesFail] = 42
	panel.KPIs = nil

	again := svc.Agent1()
	assert.Equal(t, wantCount, again.VendorVolume[0].Count)
	assert.Equal(t, wantFail, again.StatusTrend[0].Values[metrics.SeriesFail])
	assert.NotEmpty(t, again.KPIs)

	summary := svc.ExecutiveSummary()
	summary.InvoiceTrend[0].Period = "edited"
	assert.NotEqual(t, "edited", svc.ExecutiveSummary().InvoiceTrend[0].Period)

	filtered := svc.Filtered()
	for i := range filtered {
		filtered[i].MatchStatus = models.MatchStatusPass
		filtered[i].ExceptionType = ""
		filtered[i].BlockReason = ""
	}
	assert.Len(t, svc.DecisionCenter().Rows, 2)

	records := svc.Records()
	records[0].VendorNumber = "V9"
	assert.Equal(t, "V1", svc.Records()[0].VendorNumber)
}

func TestNewService_CopiesInput(t *testing.T) {
	records := testRecords()
	svc := NewService(records, DefaultOptions(), zap.NewNop())

	records[0].VendorNumber = "V9"
	assert.Equal(t, "V1", svc.Records()[0].VendorNumber)
	assert.Equal(t, []string{"V1", "V2"}, svc.Options().Vendors)
}

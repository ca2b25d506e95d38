package metrics

import (
	"strconv"
	"strings"

	"github.com/garyjia/p2p-dashboard/internal/models"
)

// Payment term days assumed by the simplified DPO estimate
const (
	standardTermDays = 30
	extendedTermDays = 45
)

// Exception trend series, one per agent
const (
	SeriesMatchFailures = "A1"
	SeriesExceptions    = "A2"
	SeriesBlocks        = "A3"
	SeriesInvoices      = "value"
)

// TopVendorCount is how many vendors the exception volume ranking keeps
const TopVendorCount = 5

// ExecutiveSummary is the cross-agent overview
type ExecutiveSummary struct {
	KPIs              []models.KPI           `json:"kpis"`
	Status            StatusBreakdown        `json:"status"`
	AvgResolutionDays string                 `json:"avgResolutionDays"`
	DPO               int                    `json:"dpo"`
	AutomationRate    int                    `json:"automationRate"`
	InvoiceTrend      []models.TrendPoint    `json:"invoiceTrend"`
	ExceptionTrend    []models.TrendPoint    `json:"exceptionTrend"`
	Automation        []models.CategoryCount `json:"automation"`
	VendorExceptions  []models.CategoryCount `json:"vendorExceptions"`
	TopVendors        []models.CategoryCount `json:"topVendors"`
}

// EstimateDPO approximates days payable outstanding from payment terms:
// terms mentioning 45 count as 45 days, everything else as 30.
func EstimateDPO(records []models.InvoiceRecord) int {
	var sum float64
	for _, r := range records {
		if strings.Contains(r.PaymentTerms, strconv.Itoa(extendedTermDays)) {
			sum += extendedTermDays
		} else {
			sum += standardTermDays
		}
	}
	return RoundMean(sum, len(records))
}

// AutomationSplit counts automated versus manually handled invoices
func AutomationSplit(records []models.InvoiceRecord) []models.CategoryCount {
	auto := CountIf(records, models.InvoiceRecord.IsAutomated)
	return []models.CategoryCount{
		{Label: "Automated", Count: auto},
		{Label: "Manual", Count: len(records) - auto},
	}
}

// VendorExceptionVolume counts exceptions per vendor, busiest first
func VendorExceptionVolume(records []models.InvoiceRecord) []models.CategoryCount {
	return SortDesc(GroupBy(Where(records, models.InvoiceRecord.IsException), ByVendor, ""))
}

// Executive derives the executive summary panel
func Executive(records []models.InvoiceRecord, topVendors int) ExecutiveSummary {
	if topVendors <= 0 {
		topVendors = TopVendorCount
	}
	status := StatusRates(records)
	automated := CountIf(records, models.InvoiceRecord.IsAutomated)

	s := ExecutiveSummary{
		Status:            status,
		AvgResolutionDays: AverageDuration(records, models.MatchDate, models.ResolutionDate),
		DPO:               EstimateDPO(records),
		AutomationRate:    Rate(automated, status.Total),
		InvoiceTrend:      MonthlyTrend(records, models.MatchDate, Count(SeriesInvoices)),
		ExceptionTrend: MonthlyTrend(records, models.FirstOf(models.MatchDate, models.BlockDate),
			CountWhen(SeriesMatchFailures, func(r models.InvoiceRecord) bool { return r.MatchStatus == models.MatchStatusFail }),
			CountWhen(SeriesExceptions, func(r models.InvoiceRecord) bool { return r.ExceptionType != "" }),
			CountWhen(SeriesBlocks, func(r models.InvoiceRecord) bool { return r.BlockReason != "" }),
		),
		Automation:       AutomationSplit(records),
		VendorExceptions: VendorExceptionVolume(records),
	}
	s.TopVendors = Top(s.VendorExceptions, topVendors)

	s.KPIs = []models.KPI{
		{Label: "Total Invoices", Value: strconv.Itoa(status.Total)},
		{Label: "% Fully Matched", Value: FormatPercent(status.PassRate)},
		{Label: "% Tolerance Matched", Value: FormatPercent(status.TolerancePassRate)},
		{Label: "% Failed Matches", Value: FormatPercent(status.FailRate)},
		{Label: "Avg Resolution Time (days)", Value: s.AvgResolutionDays},
		{Label: "Current DPO", Value: strconv.Itoa(s.DPO)},
		{Label: "Automation Rate", Value: FormatPercent(s.AutomationRate)},
	}
	return s
}

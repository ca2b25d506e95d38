package metrics

import (
	"github.com/garyjia/p2p-dashboard/internal/models"
)

// Match status trend series
const (
	SeriesPass          = "PASS"
	SeriesTolerancePass = "TOL"
	SeriesFail          = "FAIL"
)

// TopVendorVolume is how many vendors the agent 1 vendor chart keeps
const TopVendorVolume = 7

// MatchPanel covers agent 1, the four-way match
type MatchPanel struct {
	KPIs                  []models.KPI           `json:"kpis"`
	Status                StatusBreakdown        `json:"status"`
	AvgMatchDays          string                 `json:"avgMatchDays"`
	FailReasons           []models.CategoryCount `json:"failReasons"`
	StatusTrend           []models.TrendPoint    `json:"statusTrend"`
	ToleranceDistribution []models.CategoryCount `json:"toleranceDistribution"`
	VendorVolume          []models.CategoryCount `json:"vendorVolume"`
	TopVendors            []models.CategoryCount `json:"topVendors"`
}

func hasStatus(s models.MatchStatus) func(models.InvoiceRecord) bool {
	return func(r models.InvoiceRecord) bool { return r.MatchStatus == s }
}

// FailReasons counts failed matches per root cause code
func FailReasons(records []models.InvoiceRecord) []models.CategoryCount {
	return GroupBy(Where(records, hasStatus(models.MatchStatusFail)), ByRootCauseCode, FallbackUnknown)
}

// StatusTrend counts each match status per month of Match_Date
func StatusTrend(records []models.InvoiceRecord) []models.TrendPoint {
	return MonthlyTrend(records, models.MatchDate,
		CountWhen(SeriesPass, hasStatus(models.MatchStatusPass)),
		CountWhen(SeriesTolerancePass, hasStatus(models.MatchStatusTolerancePass)),
		CountWhen(SeriesFail, hasStatus(models.MatchStatusFail)),
	)
}

// ToleranceDistribution splits records by the tolerance pass flag
func ToleranceDistribution(records []models.InvoiceRecord) []models.CategoryCount {
	yes := CountIf(records, func(r models.InvoiceRecord) bool { return r.TolerancePassFlag })
	return []models.CategoryCount{
		{Label: "Tolerance Pass", Count: yes},
		{Label: "Others", Count: len(records) - yes},
	}
}

// Match derives the agent 1 panel
func Match(records []models.InvoiceRecord, topVendors int) MatchPanel {
	if topVendors <= 0 {
		topVendors = TopVendorVolume
	}
	status := StatusRates(records)
	p := MatchPanel{
		Status:                status,
		AvgMatchDays:          AverageDuration(records, models.GRDate, models.MatchDate),
		FailReasons:           FailReasons(records),
		StatusTrend:           StatusTrend(records),
		ToleranceDistribution: ToleranceDistribution(records),
		VendorVolume:          SortDesc(GroupBy(records, ByVendor, "")),
	}
	p.TopVendors = Top(p.VendorVolume, topVendors)
	p.KPIs = []models.KPI{
		{Label: "Match Rate (PASS)", Value: FormatPercent(status.PassRate)},
		{Label: "Tolerance Pass Rate", Value: FormatPercent(status.TolerancePassRate)},
		{Label: "Fail Rate", Value: FormatPercent(status.FailRate)},
		{Label: "Avg Matching Time (days)", Value: p.AvgMatchDays},
	}
	return p
}

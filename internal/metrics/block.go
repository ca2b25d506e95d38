package metrics

import (
	"fmt"
	"strconv"

	"github.com/garyjia/p2p-dashboard/internal/models"
)

// Series names for the payment block trends
const (
	SeriesBreachPct = "pct"
	SeriesDPOImpact = "value"

	seriesTotal  = "total"
	seriesBreach = "breach"
)

// ActionSuccess is the resolution rate of one suggested action
type ActionSuccess struct {
	Action   string `json:"name"`
	Total    int    `json:"total"`
	Resolved int    `json:"resolved"`
	Rate     int    `json:"value"`
}

// BlockPanel covers agent 3, payment block resolution
type BlockPanel struct {
	KPIs              []models.KPI           `json:"kpis"`
	Blocked           int                    `json:"blocked"`
	AvgResolutionDays string                 `json:"avgResolutionDays"`
	AutoReleasedRate  int                    `json:"autoReleasedRate"`
	SLABreaches       int                    `json:"slaBreaches"`
	SLABreachRate     int                    `json:"slaBreachRate"`
	BlockReasons      []models.CategoryCount `json:"blockReasons"`
	SuccessByAction   []ActionSuccess        `json:"successByAction"`
	SLATrend          []models.TrendPoint    `json:"slaTrend"`
	DPOImpactTrend    []models.TrendPoint    `json:"dpoImpactTrend"`
}

// Blocked returns the records carrying a payment block
func Blocked(records []models.InvoiceRecord) []models.InvoiceRecord {
	return Where(records, func(r models.InvoiceRecord) bool { return r.BlockReason != "" })
}

// SuccessByAction computes, per suggested resolution, the share of blocked
// invoices that reached a resolution date.
func SuccessByAction(records []models.InvoiceRecord) []ActionSuccess {
	buckets := Partition(records, BySuggestion, FallbackOther)
	out := make([]ActionSuccess, 0, len(buckets))
	for _, b := range buckets {
		resolved := CountIf(b.Records, func(r models.InvoiceRecord) bool { return r.ResolutionDate != "" })
		out = append(out, ActionSuccess{
			Action:   b.Key,
			Total:    len(b.Records),
			Resolved: resolved,
			Rate:     Rate(resolved, len(b.Records)),
		})
	}
	return out
}

// SLATrend reports the SLA breach percentage per month of the resolution
// date, falling back to the block date.
func SLATrend(records []models.InvoiceRecord) []models.TrendPoint {
	points := MonthlyTrend(records, models.FirstOf(models.ResolutionDate, models.BlockDate),
		Count(seriesTotal),
		CountWhen(seriesBreach, func(r models.InvoiceRecord) bool { return r.SLABreachFlag }),
	)
	return RatioTrend(points, SeriesBreachPct, seriesBreach, seriesTotal)
}

// DPOImpactTrend weighs blocked invoices per month of the block date,
// counting SLA breaches double.
func DPOImpactTrend(records []models.InvoiceRecord) []models.TrendPoint {
	return MonthlyTrend(records, models.BlockDate, Counter{
		Name: SeriesDPOImpact,
		Add: func(r models.InvoiceRecord) float64 {
			if r.SLABreachFlag {
				return 2
			}
			return 1
		},
	})
}

// Block derives the agent 3 panel over the blocked invoices
func Block(records []models.InvoiceRecord) BlockPanel {
	blocked := Blocked(records)
	autoReleased := CountIf(blocked, func(r models.InvoiceRecord) bool { return r.AutoReleaseFlag })
	breaches := CountIf(blocked, func(r models.InvoiceRecord) bool { return r.SLABreachFlag })

	p := BlockPanel{
		Blocked:           len(blocked),
		AvgResolutionDays: AverageDuration(blocked, models.BlockDate, models.ResolutionDate),
		AutoReleasedRate:  Rate(autoReleased, len(blocked)),
		SLABreaches:       breaches,
		SLABreachRate:     Rate(breaches, len(blocked)),
		BlockReasons:      GroupBy(blocked, ByBlockReason, FallbackOther),
		SuccessByAction:   SuccessByAction(blocked),
		SLATrend:          SLATrend(blocked),
		DPOImpactTrend:    DPOImpactTrend(blocked),
	}
	p.KPIs = []models.KPI{
		{Label: "Blocked Invoices in Queue", Value: strconv.Itoa(p.Blocked)},
		{Label: "Avg Resolution Time (days)", Value: p.AvgResolutionDays},
		{Label: "% Auto-Released", Value: FormatPercent(p.AutoReleasedRate)},
		{Label: "SLA Breaches Count & %", Value: fmt.Sprintf("%d (%s)", p.SLABreaches, FormatPercent(p.SLABreachRate))},
	}
	return p
}

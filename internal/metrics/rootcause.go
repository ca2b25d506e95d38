package metrics

import (
	"strconv"

	"github.com/garyjia/p2p-dashboard/internal/models"
)

// NoRootCause is shown when there are no exceptions to rank
const NoRootCause = "-"

// recurringThreshold is the occurrence count above which a cluster recurs
const recurringThreshold = 1

// RootCausePanel covers agent 2, exception root cause classification
type RootCausePanel struct {
	KPIs                  []models.KPI             `json:"kpis"`
	Exceptions            int                      `json:"exceptions"`
	AvgConfidence         float64                  `json:"avgConfidence"`
	MostFrequentRootCause string                   `json:"mostFrequentRootCause"`
	RecurringClusters     int                      `json:"recurringClusters"`
	RootCauses            []models.CategoryCount   `json:"rootCauses"`
	ConfidenceHistogram   []models.HistogramBucket `json:"confidenceHistogram"`
	VendorExceptions      []models.CategoryCount   `json:"vendorExceptions"`
	RecurringTrend        []models.TrendPoint      `json:"recurringTrend"`
}

// Exceptions returns the records agent 2 classified
func Exceptions(records []models.InvoiceRecord) []models.InvoiceRecord {
	return Where(records, func(r models.InvoiceRecord) bool { return r.ExceptionType != "" })
}

// RecurringClusters counts the cluster ids seen more than once
func RecurringClusters(records []models.InvoiceRecord) int {
	n := 0
	for _, c := range GroupBy(records, ByCluster, "") {
		if c.Count > recurringThreshold {
			n++
		}
	}
	return n
}

// RootCause derives the agent 2 panel over the classified exceptions
func RootCause(records []models.InvoiceRecord) RootCausePanel {
	exceptions := Exceptions(records)
	rootCauses := GroupBy(exceptions, ByRootCause, FallbackOther)

	p := RootCausePanel{
		Exceptions:            len(exceptions),
		AvgConfidence:         AverageScore(exceptions),
		MostFrequentRootCause: MostFrequent(rootCauses, NoRootCause),
		RecurringClusters:     RecurringClusters(exceptions),
		RootCauses:            rootCauses,
		ConfidenceHistogram:   ConfidenceHistogram(exceptions),
		VendorExceptions:      GroupBy(exceptions, ByVendor, ""),
		RecurringTrend:        MonthlyTrend(exceptions, models.MatchDate, Count(SeriesInvoices)),
	}
	p.KPIs = []models.KPI{
		{Label: "Exceptions Processed", Value: strconv.Itoa(p.Exceptions)},
		{Label: "Avg Confidence Score", Value: FormatScorePercent(p.AvgConfidence)},
		{Label: "Most Frequent Root Cause", Value: p.MostFrequentRootCause},
		{Label: "Recurring Clusters Detected", Value: strconv.Itoa(p.RecurringClusters)},
	}
	return p
}

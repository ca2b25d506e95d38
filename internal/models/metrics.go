package models

// KPI is a labeled scalar ready for display
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CategoryCount is one entry of a categorical distribution
type CategoryCount struct {
	Label string `json:"name"`
	Count int    `json:"value"`
}

// TrendPoint is one period of a time-bucketed series.
// Period is "YYYY-MM" or "Unknown".
type TrendPoint struct {
	Period string             `json:"name"`
	Values map[string]float64 `json:"values"`
}

// HistogramBucket is one fixed-width bucket of a histogram
type HistogramBucket struct {
	Label string `json:"name"`
	Count int    `json:"value"`
}

// Period key used when a record has no resolvable date
const UnknownPeriod = "Unknown"

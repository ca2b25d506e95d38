package metrics

import (
	"sort"

	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/garyjia/p2p-dashboard/pkg/utils"
)

// Counter accumulates one named value per period
type Counter struct {
	Name string
	Add  func(models.InvoiceRecord) float64
}

// Count adds 1 for every record in the period
func Count(name string) Counter {
	return Counter{Name: name, Add: func(models.InvoiceRecord) float64 { return 1 }}
}

// CountWhen adds 1 for every record matching pred
func CountWhen(name string, pred func(models.InvoiceRecord) bool) Counter {
	return Counter{Name: name, Add: func(r models.InvoiceRecord) float64 {
		if pred(r) {
			return 1
		}
		return 0
	}}
}

// MonthKey buckets a date string by calendar month, "Unknown" when absent
// or unparseable.
func MonthKey(date string) string {
	if k, ok := utils.MonthKey(date); ok {
		return k
	}
	return models.UnknownPeriod
}

// ByMonth keys a record by the month of the selected date
func ByMonth(field models.DateField) KeyFunc {
	return func(r models.InvoiceRecord) string {
		return MonthKey(field(r))
	}
}

// MonthlyTrend buckets records by the month of date and accumulates every
// counter per bucket. Periods are sorted ascending; "Unknown" sorts after
// the real months and is always kept.
func MonthlyTrend(records []models.InvoiceRecord, date models.DateField, counters ...Counter) []models.TrendPoint {
	buckets := Partition(records, ByMonth(date), models.UnknownPeriod)
	points := make([]models.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		values := make(map[string]float64, len(counters))
		for _, c := range counters {
			values[c.Name] = 0
		}
		for _, r := range b.Records {
			for _, c := range counters {
				values[c.Name] += c.Add(r)
			}
		}
		points = append(points, models.TrendPoint{Period: b.Key, Values: values})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Period < points[j].Period
	})
	return points
}

// RatioTrend replaces two counters of each point with a single rounded
// percentage num/den named name. Inputs are not modified.
func RatioTrend(points []models.TrendPoint, name, num, den string) []models.TrendPoint {
	out := make([]models.TrendPoint, 0, len(points))
	for _, p := range points {
		pct := Rate(int(p.Values[num]), int(p.Values[den]))
		out = append(out, models.TrendPoint{
			Period: p.Period,
			Values: map[string]float64{name: float64(pct)},
		})
	}
	return out
}

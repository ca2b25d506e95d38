package metrics

import (
	"sort"

	"github.com/garyjia/p2p-dashboard/internal/models"
)

// Common fallback labels for records missing the grouped field
const (
	FallbackOther   = "Other"
	FallbackUnknown = "UNKNOWN"
)

// KeyFunc extracts the grouping key of a record; "" means missing
type KeyFunc func(models.InvoiceRecord) string

// Bucket is the set of records sharing one key
type Bucket struct {
	Key     string
	Records []models.InvoiceRecord
}

// Partition groups records by key in first-seen key order. Records with a
// missing key go to fallback; when fallback is "" they are dropped.
func Partition(records []models.InvoiceRecord, key KeyFunc, fallback string) []Bucket {
	index := make(map[string]int)
	var buckets []Bucket
	for _, r := range records {
		k := key(r)
		if k == "" {
			k = fallback
		}
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, Bucket{Key: k})
		}
		buckets[i].Records = append(buckets[i].Records, r)
	}
	return buckets
}

// GroupBy counts records per key in first-seen order
func GroupBy(records []models.InvoiceRecord, key KeyFunc, fallback string) []models.CategoryCount {
	buckets := Partition(records, key, fallback)
	out := make([]models.CategoryCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, models.CategoryCount{Label: b.Key, Count: len(b.Records)})
	}
	return out
}

// SortDesc returns a copy of dist ordered by descending count.
// Ties keep their first-seen order.
func SortDesc(dist []models.CategoryCount) []models.CategoryCount {
	out := make([]models.CategoryCount, len(dist))
	copy(out, dist)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns the first n entries of dist (all when n <= 0)
func Top(dist []models.CategoryCount, n int) []models.CategoryCount {
	if n <= 0 || n >= len(dist) {
		out := make([]models.CategoryCount, len(dist))
		copy(out, dist)
		return out
	}
	out := make([]models.CategoryCount, n)
	copy(out, dist[:n])
	return out
}

// MostFrequent returns the label with the highest count, the earliest seen
// on ties, or none when dist is empty.
func MostFrequent(dist []models.CategoryCount, none string) string {
	if len(dist) == 0 {
		return none
	}
	return SortDesc(dist)[0].Label
}

// Key extractors shared by the panels
var (
	ByVendor        KeyFunc = func(r models.InvoiceRecord) string { return r.VendorNumber }
	ByRootCauseCode KeyFunc = func(r models.InvoiceRecord) string { return r.RootCauseCode }
	ByRootCause     KeyFunc = func(r models.InvoiceRecord) string { return r.RootCause }
	ByBlockReason   KeyFunc = func(r models.InvoiceRecord) string { return r.BlockReason }
	ByCluster       KeyFunc = func(r models.InvoiceRecord) string { return r.ClusterID }
	BySuggestion    KeyFunc = func(r models.InvoiceRecord) string { return r.ResolutionSuggestion }
	ByExceptionType KeyFunc = func(r models.InvoiceRecord) string { return r.ExceptionType }
	ByTeam          KeyFunc = func(r models.InvoiceRecord) string { return r.ResponsibleTeam }
)

package metrics

import (
	"fmt"
	"math"

	"github.com/garyjia/p2p-dashboard/internal/models"
)

// ConfidenceBuckets is the number of equal-width confidence buckets over [0,1]
const ConfidenceBuckets = 5

// BucketIndex maps a score in [0,1] to its bucket. A score of exactly 1
// lands in the last bucket; negative scores land in the first.
func BucketIndex(score float64, buckets int) int {
	if buckets <= 0 || math.IsNaN(score) || score <= 0 {
		return 0
	}
	idx := int(math.Floor(score * float64(buckets)))
	if idx > buckets-1 {
		idx = buckets - 1
	}
	return idx
}

// ConfidenceHistogram counts records per confidence bucket, labeled
// "0-20%" through "80-100%". Absent scores count as 0.
func ConfidenceHistogram(records []models.InvoiceRecord) []models.HistogramBucket {
	width := 100 / ConfidenceBuckets
	out := make([]models.HistogramBucket, ConfidenceBuckets)
	for i := range out {
		out[i].Label = fmt.Sprintf("%d-%d%%", i*width, (i+1)*width)
	}
	for _, r := range records {
		out[BucketIndex(r.ConfidenceScore, ConfidenceBuckets)].Count++
	}
	return out
}

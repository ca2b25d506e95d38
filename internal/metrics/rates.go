// Package metrics derives KPI scalars, distributions, trends and histograms
// from an already filtered invoice record collection. Every derivation is a
// pure function of its input and is defined for the empty collection.
package metrics

import (
	"strconv"

	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/garyjia/p2p-dashboard/pkg/utils"
	"github.com/shopspring/decimal"
)

// NoDuration is reported when no record has both endpoint dates
const NoDuration = "0.0"

var hundred = decimal.NewFromInt(100)

// Rate returns count/total*100 rounded to the nearest integer, halves up.
// A zero total yields 0.
func Rate(count, total int) int {
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(count)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
	return int(pct.Round(0).IntPart())
}

// FormatPercent renders an integer percentage as "NN%"
func FormatPercent(pct int) string {
	return strconv.Itoa(pct) + "%"
}

// RoundMean returns sum/n rounded to the nearest integer, using max(1, n)
// as the divisor.
func RoundMean(sum float64, n int) int {
	if n < 1 {
		n = 1
	}
	return int(decimal.NewFromFloat(sum).Div(decimal.NewFromInt(int64(n))).Round(0).IntPart())
}

// CountIf counts records matching pred
func CountIf(records []models.InvoiceRecord, pred func(models.InvoiceRecord) bool) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}

// Where returns the records matching pred, in input order
func Where(records []models.InvoiceRecord, pred func(models.InvoiceRecord) bool) []models.InvoiceRecord {
	out := make([]models.InvoiceRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// StatusBreakdown holds match status counts and their share of the total
type StatusBreakdown struct {
	Total             int `json:"total"`
	Pass              int `json:"pass"`
	TolerancePass     int `json:"tolerancePass"`
	Fail              int `json:"fail"`
	PassRate          int `json:"passRate"`
	TolerancePassRate int `json:"tolerancePassRate"`
	FailRate          int `json:"failRate"`
}

// StatusRates counts each match status and converts it to a rate over the
// whole collection. Records without a status count toward the total only.
func StatusRates(records []models.InvoiceRecord) StatusBreakdown {
	b := StatusBreakdown{Total: len(records)}
	for _, r := range records {
		switch r.MatchStatus {
		case models.MatchStatusPass:
			b.Pass++
		case models.MatchStatusTolerancePass:
			b.TolerancePass++
		case models.MatchStatusFail:
			b.Fail++
		}
	}
	b.PassRate = Rate(b.Pass, b.Total)
	b.TolerancePassRate = Rate(b.TolerancePass, b.Total)
	b.FailRate = Rate(b.Fail, b.Total)
	return b
}

// AverageDuration averages (end - start) in fractional days over the
// records that carry both dates, formatted with one decimal. Records missing
// either date are left out of the denominator. Negative spans are kept.
func AverageDuration(records []models.InvoiceRecord, start, end models.DateField) string {
	var sum float64
	n := 0
	for _, r := range records {
		days, ok := utils.DaysBetween(start(r), end(r))
		if !ok {
			continue
		}
		sum += days
		n++
	}
	if n == 0 {
		return NoDuration
	}
	return decimal.NewFromFloat(sum / float64(n)).StringFixed(1)
}

// AverageScore averages the confidence score over records, absent scores
// counting as 0. Returns 0 for an empty collection.
func AverageScore(records []models.InvoiceRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.ConfidenceScore
	}
	return sum / float64(len(records))
}

// FormatScorePercent renders a [0,1] score as a whole percentage
func FormatScorePercent(score float64) string {
	return decimal.NewFromFloat(score).Mul(hundred).StringFixed(0) + "%"
}

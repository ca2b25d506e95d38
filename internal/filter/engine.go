// Package filter narrows an invoice record collection by a FiltersState.
package filter

import (
	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/garyjia/p2p-dashboard/pkg/utils"
)

// Predicate reports whether a record satisfies one criterion
type Predicate func(models.InvoiceRecord) bool

// BuildPredicates turns each set criterion of f into a predicate.
// Unset criteria contribute nothing, so an empty state yields no predicates.
// A date bound that cannot be parsed places no limit on the comparison,
// but records still need a resolvable reference date.
func BuildPredicates(f models.FiltersState) []Predicate {
	var preds []Predicate

	if p := dateRange(f.StartDate, f.EndDate); p != nil {
		preds = append(preds, p)
	}

	preds = appendEquals(preds, f.Vendor, func(r models.InvoiceRecord) string { return r.VendorNumber })
	preds = appendEquals(preds, f.Plant, func(r models.InvoiceRecord) string { return r.Plant })
	preds = appendEquals(preds, f.Material, func(r models.InvoiceRecord) string { return r.MaterialNumber })
	preds = appendEquals(preds, f.POType, func(r models.InvoiceRecord) string { return r.POType })
	if f.MatchStatus != models.MatchStatusAll {
		preds = appendEquals(preds, string(f.MatchStatus), func(r models.InvoiceRecord) string { return string(r.MatchStatus) })
	}
	preds = appendEquals(preds, f.ExceptionType, func(r models.InvoiceRecord) string { return r.ExceptionType })
	preds = appendEquals(preds, f.BlockReason, func(r models.InvoiceRecord) string { return r.BlockReason })
	preds = appendEquals(preds, f.ResponsibleTeam, func(r models.InvoiceRecord) string { return r.ResponsibleTeam })

	return preds
}

// Apply returns the records satisfying every criterion of f, in input order.
// The result never shares a backing array with records.
func Apply(records []models.InvoiceRecord, f models.FiltersState) []models.InvoiceRecord {
	return Match(records, BuildPredicates(f))
}

// Match returns the records satisfying all predicates, in input order
func Match(records []models.InvoiceRecord, preds []Predicate) []models.InvoiceRecord {
	out := make([]models.InvoiceRecord, 0, len(records))
	for _, r := range records {
		if all(preds, r) {
			out = append(out, r)
		}
	}
	return out
}

func all(preds []Predicate, r models.InvoiceRecord) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

// appendEquals adds a strict, case-sensitive equality check when want is set
func appendEquals(preds []Predicate, want string, field func(models.InvoiceRecord) string) []Predicate {
	if want == "" {
		return preds
	}
	return append(preds, func(r models.InvoiceRecord) bool {
		return field(r) == want
	})
}

// dateRange checks the record's reference date against inclusive bounds.
// Records without a resolvable reference date fail whenever a bound is set.
func dateRange(start, end string) Predicate {
	if start == "" && end == "" {
		return nil
	}
	from, hasFrom := utils.ParseDate(start)
	to, hasTo := utils.ParseDate(end)

	return func(r models.InvoiceRecord) bool {
		t, ok := utils.ParseDate(r.ReferenceDate())
		if !ok {
			return false
		}
		if hasFrom && t.Before(from) {
			return false
		}
		if hasTo && t.After(to) {
			return false
		}
		return true
	}
}

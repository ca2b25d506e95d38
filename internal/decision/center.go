package decision

import (
	"github.com/garyjia/p2p-dashboard/internal/models"
)

// NoValue is displayed for missing cells
const NoValue = "-"

// ExceptionRow is one active exception as listed in the center
type ExceptionRow struct {
	InvoiceID           string             `json:"invoiceId"`
	Vendor              string             `json:"vendor"`
	MatchStatus         models.MatchStatus `json:"matchStatus,omitempty"`
	RootCause           string             `json:"rootCause,omitempty"`
	BlockReason         string             `json:"blockReason,omitempty"`
	SuggestedResolution string             `json:"suggestedResolution"`
	Selected            bool               `json:"selected"`
}

// Board is the Decision Center view
type Board struct {
	Rows     []ExceptionRow `json:"rows"`
	Selected int            `json:"selected"`
}

// ActiveExceptions returns the records needing a decision: failed matches,
// classified exceptions and payment blocks, in input order.
func ActiveExceptions(records []models.InvoiceRecord) []models.InvoiceRecord {
	out := make([]models.InvoiceRecord, 0, len(records))
	for _, r := range records {
		if r.IsException() {
			out = append(out, r)
		}
	}
	return out
}

// SuggestedResolution prefers the agent 2 suggestion over the agent 3 one
func SuggestedResolution(r models.InvoiceRecord) string {
	switch {
	case r.SuggestedAction != "":
		return r.SuggestedAction
	case r.ResolutionSuggestion != "":
		return r.ResolutionSuggestion
	default:
		return NoValue
	}
}

// BuildBoard lists the active exceptions and marks the selected ones.
// Selected counts the whole selection, including ids filtered out of view.
func BuildBoard(records []models.InvoiceRecord, sel Selection) Board {
	active := ActiveExceptions(records)
	b := Board{Rows: make([]ExceptionRow, 0, len(active)), Selected: sel.Len()}
	for _, r := range active {
		b.Rows = append(b.Rows, ExceptionRow{
			InvoiceID:           r.InvoiceID,
			Vendor:              r.VendorNumber,
			MatchStatus:         r.MatchStatus,
			RootCause:           r.RootCause,
			BlockReason:         r.BlockReason,
			SuggestedResolution: SuggestedResolution(r),
			Selected:            sel.Has(r.InvoiceID),
		})
	}
	return b
}

package decision

import (
	"errors"
	"fmt"
	"time"

	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/google/uuid"
)

// ErrUnknownAction is returned for an action kind the center does not offer
var ErrUnknownAction = errors.New("unknown action")

// ActionKind names an operator action
type ActionKind string

// Bulk actions offered over the selection
const (
	ActionApplyResolution ActionKind = "Apply Resolution"
	ActionEscalate        ActionKind = "Escalate"
	ActionDefer           ActionKind = "Defer"
)

// Per-invoice actions
const (
	ActionApply         ActionKind = "Apply"
	ActionGRPosting     ActionKind = "Initiate GR Posting"
	ActionAmendPO       ActionKind = "Amend PO"
	ActionAutoRelease   ActionKind = "Trigger Auto-Release"
	ActionEscalateToMgr ActionKind = "Escalate to Manager"
)

// BulkActions lists the bulk actions in display order
var BulkActions = []ActionKind{ActionApplyResolution, ActionEscalate, ActionDefer}

// rowTitles maps per-invoice actions to their confirmation title
var rowTitles = map[ActionKind]string{
	ActionApply:         "Resolution Applied",
	ActionEscalate:      "Escalated",
	ActionDefer:         "Deferred",
	ActionGRPosting:     "Initiated GR Posting",
	ActionAmendPO:       "PO Amendment Requested",
	ActionAutoRelease:   "Auto-Release Triggered",
	ActionEscalateToMgr: "Escalated to Manager",
}

// ActionResult is the notification produced by an action
type ActionResult struct {
	ID          string     `json:"id"`
	Action      ActionKind `json:"action"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Count       int        `json:"count"`
	InvoiceIDs  []string   `json:"invoiceIds,omitempty"`
	ExecutedAt  time.Time  `json:"executedAt"`
}

// IsBulkAction reports whether kind can run over a selection
func IsBulkAction(kind ActionKind) bool {
	for _, k := range BulkActions {
		if k == kind {
			return true
		}
	}
	return false
}

// Bulk runs kind over the selection as it is at invocation time.
// The selection is left untouched; clearing it is the caller's decision.
func Bulk(kind ActionKind, sel Selection) (ActionResult, error) {
	if !IsBulkAction(kind) {
		return ActionResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}

	count := sel.Len()
	desc := "No invoices selected"
	if count > 0 {
		desc = fmt.Sprintf("%d invoice(s) affected", count)
	}
	return ActionResult{
		ID:          uuid.NewString(),
		Action:      kind,
		Title:       fmt.Sprintf("%s executed", kind),
		Description: desc,
		Count:       count,
		InvoiceIDs:  sel.IDs(),
		ExecutedAt:  time.Now(),
	}, nil
}

// Row runs a single-invoice action
func Row(kind ActionKind, r models.InvoiceRecord) (ActionResult, error) {
	title, ok := rowTitles[kind]
	if !ok {
		return ActionResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}

	desc := fmt.Sprintf("Invoice %s", r.InvoiceID)
	if kind == ActionAmendPO {
		desc = fmt.Sprintf("PO %s for Invoice %s", r.PONumber, r.InvoiceID)
	}
	return ActionResult{
		ID:          uuid.NewString(),
		Action:      kind,
		Title:       title,
		Description: desc,
		Count:       1,
		InvoiceIDs:  []string{r.InvoiceID},
		ExecutedAt:  time.Now(),
	}, nil
}

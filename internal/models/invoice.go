package models

// MatchStatus is the outcome of the automated PO / goods receipt / invoice comparison
type MatchStatus string

// Match status constants
const (
	MatchStatusPass          MatchStatus = "PASS"
	MatchStatusTolerancePass MatchStatus = "TOLERANCE_PASS"
	MatchStatusFail          MatchStatus = "FAIL"

	// MatchStatusAll is the filter sentinel meaning "no constraint"
	MatchStatusAll MatchStatus = "ALL"
)

// MatchStatuses lists the evaluated statuses in display order
var MatchStatuses = []MatchStatus{MatchStatusPass, MatchStatusTolerancePass, MatchStatusFail}

// InvoiceRecord is one procure-to-pay exception tracking unit.
// Optional strings use "" for absent; flags default to false and
// an absent confidence score reads as 0.
type InvoiceRecord struct {
	InvoiceID      string `json:"Invoice_ID" validate:"required"`
	VendorNumber   string `json:"Vendor_Number" validate:"required"`
	VendorName     string `json:"Vendor_Name,omitempty"`
	MaterialNumber string `json:"Material_Number,omitempty"`
	Plant          string `json:"Plant,omitempty"`
	PONumber       string `json:"PO_Number,omitempty"`
	POItem         string `json:"PO_Item,omitempty"`
	POType         string `json:"PO_Type,omitempty"`

	GRDate         string `json:"GR_Date,omitempty"`         // goods receipt
	IRDate         string `json:"IR_Date,omitempty"`         // invoice receipt
	MatchDate      string `json:"Match_Date,omitempty"`      // agent 1 match
	ResolutionDate string `json:"Resolution_Date,omitempty"` // agent 3 resolution
	BlockDate      string `json:"Block_Date,omitempty"`
	PaymentDate    string `json:"Payment_Date,omitempty"`
	PaymentTerms   string `json:"Payment_Terms,omitempty"`

	// Agent 1
	MatchStatus       MatchStatus `json:"Match_Status,omitempty" validate:"omitempty,oneof=PASS TOLERANCE_PASS FAIL"`
	RootCauseCode     string      `json:"Root_Cause_Code,omitempty"`
	TolerancePassFlag bool        `json:"Tolerance_Pass_Flag,omitempty"`
	EscalationFlag    bool        `json:"Escalation_Flag,omitempty"`

	// Agent 2
	ExceptionType   string  `json:"Exception_Type,omitempty"`
	RootCause       string  `json:"Root_Cause,omitempty"` // System | Policy | Master Data | Other
	ConfidenceScore float64 `json:"Confidence_Score,omitempty" validate:"gte=0,lte=1"`
	ClusterID       string  `json:"Cluster_ID,omitempty"`
	SuggestedAction string  `json:"Suggested_Action,omitempty"`

	// Agent 3
	BlockReason          string `json:"Block_Reason,omitempty"`
	ResolutionSuggestion string `json:"Resolution_Suggestion,omitempty"`
	ResponsibleTeam      string `json:"Responsible_Team,omitempty"`
	AutoReleaseFlag      bool   `json:"Auto_Release_Flag,omitempty"`
	SLABreachFlag        bool   `json:"SLA_Breach_Flag,omitempty"`
}

// ReferenceDate returns the date used for range filtering:
// Match_Date, then IR_Date, then GR_Date.
func (r InvoiceRecord) ReferenceDate() string {
	switch {
	case r.MatchDate != "":
		return r.MatchDate
	case r.IRDate != "":
		return r.IRDate
	default:
		return r.GRDate
	}
}

// IsException reports whether any agent flagged the invoice:
// a failed match, a classified exception or a payment block.
func (r InvoiceRecord) IsException() bool {
	return r.MatchStatus == MatchStatusFail || r.ExceptionType != "" || r.BlockReason != ""
}

// IsAutomated reports whether the invoice cleared without manual handling
func (r InvoiceRecord) IsAutomated() bool {
	return r.TolerancePassFlag || r.AutoReleaseFlag
}

// DateField selects one of the record's date attributes
type DateField func(InvoiceRecord) string

// Date field selectors
var (
	GRDate         DateField = func(r InvoiceRecord) string { return r.GRDate }
	IRDate         DateField = func(r InvoiceRecord) string { return r.IRDate }
	MatchDate      DateField = func(r InvoiceRecord) string { return r.MatchDate }
	ResolutionDate DateField = func(r InvoiceRecord) string { return r.ResolutionDate }
	BlockDate      DateField = func(r InvoiceRecord) string { return r.BlockDate }
	PaymentDate    DateField = func(r InvoiceRecord) string { return r.PaymentDate }
)

// FirstOf returns a selector yielding the first non-empty date among fields
func FirstOf(fields ...DateField) DateField {
	return func(r InvoiceRecord) string {
		for _, f := range fields {
			if v := f(r); v != "" {
				return v
			}
		}
		return ""
	}
}

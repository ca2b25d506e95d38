package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/garyjia/p2p-dashboard/pkg/utils"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

const isoDate = "2006-01-02"

type columnKind int

const (
	kindString columnKind = iota
	kindDate
	kindBool
	kindFloat
)

type column struct {
	kind  columnKind
	str   func(*models.InvoiceRecord) *string
	flag  func(*models.InvoiceRecord) *bool
	float func(*models.InvoiceRecord) *float64
}

func text(f func(*models.InvoiceRecord) *string) column {
	return column{kind: kindString, str: f}
}

func date(f func(*models.InvoiceRecord) *string) column {
	return column{kind: kindDate, str: f}
}

func flag(f func(*models.InvoiceRecord) *bool) column {
	return column{kind: kindBool, flag: f}
}

// columns maps source column names to record fields
var columns = map[string]column{
	"Invoice_ID":      text(func(r *models.InvoiceRecord) *string { return &r.InvoiceID }),
	"Vendor_Number":   text(func(r *models.InvoiceRecord) *string { return &r.VendorNumber }),
	"Vendor_Name":     text(func(r *models.InvoiceRecord) *string { return &r.VendorName }),
	"Material_Number": text(func(r *models.InvoiceRecord) *string { return &r.MaterialNumber }),
	"Plant":           text(func(r *models.InvoiceRecord) *string { return &r.Plant }),
	"PO_Number":       text(func(r *models.InvoiceRecord) *string { return &r.PONumber }),
	"PO_Item":         text(func(r *models.InvoiceRecord) *string { return &r.POItem }),
	"PO_Type":         text(func(r *models.InvoiceRecord) *string { return &r.POType }),
	"Payment_Terms":   text(func(r *models.InvoiceRecord) *string { return &r.PaymentTerms }),

	"GR_Date":         date(func(r *models.InvoiceRecord) *string { return &r.GRDate }),
	"IR_Date":         date(func(r *models.InvoiceRecord) *string { return &r.IRDate }),
	"Match_Date":      date(func(r *models.InvoiceRecord) *string { return &r.MatchDate }),
	"Resolution_Date": date(func(r *models.InvoiceRecord) *string { return &r.ResolutionDate }),
	"Block_Date":      date(func(r *models.InvoiceRecord) *string { return &r.BlockDate }),
	"Payment_Date":    date(func(r *models.InvoiceRecord) *string { return &r.PaymentDate }),

	"Root_Cause_Code":       text(func(r *models.InvoiceRecord) *string { return &r.RootCauseCode }),
	"Tolerance_Pass_Flag":   flag(func(r *models.InvoiceRecord) *bool { return &r.TolerancePassFlag }),
	"Escalation_Flag":       flag(func(r *models.InvoiceRecord) *bool { return &r.EscalationFlag }),
	"Exception_Type":        text(func(r *models.InvoiceRecord) *string { return &r.ExceptionType }),
	"Root_Cause":            text(func(r *models.InvoiceRecord) *string { return &r.RootCause }),
	"Cluster_ID":            text(func(r *models.InvoiceRecord) *string { return &r.ClusterID }),
	"Suggested_Action":      text(func(r *models.InvoiceRecord) *string { return &r.SuggestedAction }),
	"Block_Reason":          text(func(r *models.InvoiceRecord) *string { return &r.BlockReason }),
	"Resolution_Suggestion": text(func(r *models.InvoiceRecord) *string { return &r.ResolutionSuggestion }),
	"Responsible_Team":      text(func(r *models.InvoiceRecord) *string { return &r.ResponsibleTeam }),
	"Auto_Release_Flag":     flag(func(r *models.InvoiceRecord) *bool { return &r.AutoReleaseFlag }),
	"SLA_Breach_Flag":       flag(func(r *models.InvoiceRecord) *bool { return &r.SLABreachFlag }),

	"Confidence_Score": {kind: kindFloat, float: func(r *models.InvoiceRecord) *float64 { return &r.ConfidenceScore }},
}

// Match_Status is handled apart since it is a typed string. The value is
// kept as written; validation rejects anything but the exact status names.
const matchStatusColumn = "Match_Status"

// decoder turns loosely typed rows into records
type decoder struct {
	dateLayouts []string
	serialDates bool // numeric date cells are spreadsheet serials
}

func (d decoder) record(row map[string]any) (models.InvoiceRecord, error) {
	var rec models.InvoiceRecord
	for name, raw := range row {
		if name == matchStatusColumn {
			s, err := cast.ToStringE(raw)
			if err != nil {
				return rec, fmt.Errorf("column %s: %w", name, err)
			}
			rec.MatchStatus = models.MatchStatus(utils.SanitizeString(s))
			continue
		}
		col, ok := columns[name]
		if !ok {
			continue
		}
		if err := d.set(&rec, col, raw); err != nil {
			return rec, fmt.Errorf("column %s: %w", name, err)
		}
	}
	return rec, nil
}

func (d decoder) set(rec *models.InvoiceRecord, col column, raw any) error {
	switch col.kind {
	case kindBool:
		v, err := toBool(raw)
		if err != nil {
			return err
		}
		*col.flag(rec) = v
	case kindFloat:
		v, err := toFloat(raw)
		if err != nil {
			return err
		}
		*col.float(rec) = v
	case kindDate:
		s, err := d.toDate(raw)
		if err != nil {
			return err
		}
		*col.str(rec) = s
	default:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return err
		}
		*col.str(rec) = strings.TrimSpace(utils.SanitizeString(s))
	}
	return nil
}

// toDate normalizes configured layouts and spreadsheet serials to
// YYYY-MM-DD. Other values are kept as written.
func (d decoder) toDate(raw any) (string, error) {
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if d.serialDates {
		if serial, err := cast.ToFloat64E(s); err == nil {
			t, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				return "", err
			}
			return t.Format(isoDate), nil
		}
	}
	for _, layout := range d.dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate), nil
		}
	}
	return s, nil
}

func toBool(raw any) (bool, error) {
	if s, ok := raw.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "":
			return false, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
	return cast.ToBoolE(raw)
}

func toFloat(raw any) (float64, error) {
	if raw == nil {
		return 0, nil
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return cast.ToFloat64E(raw)
}

package report

import (
	"fmt"
	"time"

	"github.com/garyjia/p2p-dashboard/internal/decision"
	"github.com/garyjia/p2p-dashboard/internal/metrics"
	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Sheet names of the exported workbook
const (
	SheetSummary   = "Summary"
	SheetMatch     = "Agent 1"
	SheetRootCause = "Agent 2"
	SheetBlock     = "Agent 3"
	SheetDecisions = "Decision Center"
	SheetRecords   = "Records"
)

// Snapshot is every panel computed for one filter state
type Snapshot struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	Filters     models.FiltersState      `json:"filters"`
	Executive   metrics.ExecutiveSummary `json:"executive"`
	Match       metrics.MatchPanel       `json:"agent1"`
	RootCause   metrics.RootCausePanel   `json:"agent2"`
	Block       metrics.BlockPanel       `json:"agent3"`
	Board       decision.Board           `json:"decisionCenter"`
	Records     []models.InvoiceRecord   `json:"-"`
}

// WorkbookExporter writes a snapshot to an .xlsx file, one sheet per panel
type WorkbookExporter struct {
	logger *zap.Logger
}

// NewWorkbookExporter creates a new workbook exporter
func NewWorkbookExporter(logger *zap.Logger) *WorkbookExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkbookExporter{logger: logger}
}

// Export writes snap to outputPath
func (we *WorkbookExporter) Export(snap Snapshot, outputPath string) error {
	we.logger.Info("Exporting workbook",
		zap.String("output_path", outputPath),
		zap.Int("records", len(snap.Records)))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetMatch, SheetRootCause, SheetBlock, SheetDecisions, SheetRecords} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	w := &sheetWriter{f: f, header: header, logger: we.logger}

	w.summary(snap)
	w.match(snap.Match)
	w.rootCause(snap.RootCause)
	w.block(snap.Block)
	w.board(snap.Board)
	w.records(snap.Records)

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	we.logger.Info("Workbook exported successfully", zap.String("output_path", outputPath))
	return nil
}

// sheetWriter appends rows to sheets, tracking the next free row per sheet
type sheetWriter struct {
	f      *excelize.File
	header int
	next   map[string]int
	logger *zap.Logger
}

func (w *sheetWriter) row(sheet string, values ...any) {
	if w.next == nil {
		w.next = make(map[string]int)
	}
	w.next[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, w.next[sheet])
	if err == nil {
		err = w.f.SetSheetRow(sheet, cell, &values)
	}
	if err != nil {
		w.logger.Warn("Failed to write row",
			zap.String("sheet", sheet),
			zap.Int("row", w.next[sheet]),
			zap.Error(err))
	}
}

func (w *sheetWriter) heading(sheet string, values ...any) {
	w.row(sheet, values...)
	r := w.next[sheet]
	end, _ := excelize.CoordinatesToCellName(max(1, len(values)), r)
	start, _ := excelize.CoordinatesToCellName(1, r)
	if err := w.f.SetCellStyle(sheet, start, end, w.header); err != nil {
		w.logger.Warn("Failed to style heading", zap.String("sheet", sheet), zap.Error(err))
	}
}

func (w *sheetWriter) blank(sheet string) {
	if w.next == nil {
		w.next = make(map[string]int)
	}
	w.next[sheet]++
}

func (w *sheetWriter) kpis(sheet string, kpis []models.KPI) {
	w.heading(sheet, "KPI", "Value")
	for _, k := range kpis {
		w.row(sheet, k.Label, k.Value)
	}
	w.blank(sheet)
}

func (w *sheetWriter) dist(sheet, title string, dist []models.CategoryCount) {
	w.heading(sheet, title, "Count")
	for _, c := range dist {
		w.row(sheet, c.Label, c.Count)
	}
	w.blank(sheet)
}

func (w *sheetWriter) trend(sheet, title string, series []string, points []models.TrendPoint) {
	head := append([]any{title}, toAny(series)...)
	w.heading(sheet, head...)
	for _, p := range points {
		values := []any{p.Period}
		for _, s := range series {
			values = append(values, p.Values[s])
		}
		w.row(sheet, values...)
	}
	w.blank(sheet)
}

func (w *sheetWriter) summary(snap Snapshot) {
	w.heading(SheetSummary, "Generated", snap.GeneratedAt.Format(time.RFC3339))
	f := snap.Filters
	for _, kv := range [][2]string{
		{"Start Date", f.StartDate},
		{"End Date", f.EndDate},
		{"Vendor", f.Vendor},
		{"Plant", f.Plant},
		{"Material", f.Material},
		{"PO Type", f.POType},
		{"Match Status", string(f.MatchStatus)},
		{"Exception Type", f.ExceptionType},
		{"Block Reason", f.BlockReason},
		{"Responsible Team", f.ResponsibleTeam},
	} {
		if kv[1] != "" {
			w.row(SheetSummary, kv[0], kv[1])
		}
	}
	w.blank(SheetSummary)

	w.kpis(SheetSummary, snap.Executive.KPIs)
	w.trend(SheetSummary, "Month", []string{metrics.SeriesInvoices}, snap.Executive.InvoiceTrend)
	w.trend(SheetSummary, "Month",
		[]string{metrics.SeriesMatchFailures, metrics.SeriesExceptions, metrics.SeriesBlocks},
		snap.Executive.ExceptionTrend)
	w.dist(SheetSummary, "Automation", snap.Executive.Automation)
	w.dist(SheetSummary, "Vendor", snap.Executive.TopVendors)
}

func (w *sheetWriter) match(p metrics.MatchPanel) {
	w.kpis(SheetMatch, p.KPIs)
	w.dist(SheetMatch, "Fail Reason", p.FailReasons)
	w.trend(SheetMatch, "Month",
		[]string{metrics.SeriesPass, metrics.SeriesTolerancePass, metrics.SeriesFail}, p.StatusTrend)
	w.dist(SheetMatch, "Tolerance", p.ToleranceDistribution)
	w.dist(SheetMatch, "Vendor", p.TopVendors)
}

func (w *sheetWriter) rootCause(p metrics.RootCausePanel) {
	w.kpis(SheetRootCause, p.KPIs)
	w.dist(SheetRootCause, "Root Cause", p.RootCauses)
	w.heading(SheetRootCause, "Confidence", "Count")
	for _, b := range p.ConfidenceHistogram {
		w.row(SheetRootCause, b.Label, b.Count)
	}
	w.blank(SheetRootCause)
	w.dist(SheetRootCause, "Vendor", p.VendorExceptions)
	w.trend(SheetRootCause, "Month", []string{metrics.SeriesInvoices}, p.RecurringTrend)
}

func (w *sheetWriter) block(p metrics.BlockPanel) {
	w.kpis(SheetBlock, p.KPIs)
	w.dist(SheetBlock, "Block Reason", p.BlockReasons)
	w.heading(SheetBlock, "Suggested Action", "Total", "Resolved", "Success %")
	for _, a := range p.SuccessByAction {
		w.row(SheetBlock, a.Action, a.Total, a.Resolved, a.Rate)
	}
	w.blank(SheetBlock)
	w.trend(SheetBlock, "Month", []string{metrics.SeriesBreachPct}, p.SLATrend)
	w.trend(SheetBlock, "Month", []string{metrics.SeriesDPOImpact}, p.DPOImpactTrend)
}

func (w *sheetWriter) board(b decision.Board) {
	w.heading(SheetDecisions, "Invoice", "Vendor", "Match Status", "Root Cause", "Block Reason", "Suggested Resolution", "Selected")
	for _, r := range b.Rows {
		w.row(SheetDecisions, r.InvoiceID, r.Vendor, string(r.MatchStatus), r.RootCause, r.BlockReason, r.SuggestedResolution, r.Selected)
	}
}

func (w *sheetWriter) records(records []models.InvoiceRecord) {
	w.heading(SheetRecords, "Invoice_ID", "Vendor_Number", "Plant", "PO_Number", "Match_Status",
		"Match_Date", "Exception_Type", "Root_Cause", "Confidence_Score", "Block_Reason",
		"Responsible_Team", "SLA_Breach_Flag")
	for _, r := range records {
		w.row(SheetRecords, r.InvoiceID, r.VendorNumber, r.Plant, r.PONumber, string(r.MatchStatus),
			r.MatchDate, r.ExceptionType, r.RootCause, r.ConfidenceScore, r.BlockReason,
			r.ResponsibleTeam, r.SLABreachFlag)
	}
}

func toAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

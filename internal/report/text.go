package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/garyjia/p2p-dashboard/internal/decision"
	"github.com/garyjia/p2p-dashboard/internal/logistics"
	"github.com/garyjia/p2p-dashboard/internal/metrics"
	"github.com/garyjia/p2p-dashboard/internal/models"
)

const barWidth = 30

// TextFormatter renders panels for terminal display
type TextFormatter struct {
	styles *Styles
}

// NewTextFormatter creates a formatter with the default styles
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{styles: NewStyles()}
}

// FormatKPIs renders KPI cards side by side
func (f *TextFormatter) FormatKPIs(kpis []models.KPI) string {
	if len(kpis) == 0 {
		return f.styles.Subtle.Render("No KPIs")
	}
	cards := make([]string, 0, len(kpis))
	for _, k := range kpis {
		body := f.styles.Label.Render(k.Label) + "\n" + f.styles.Value.Render(k.Value)
		cards = append(cards, f.styles.Card.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// FormatDistribution renders a categorical distribution as bars
func (f *TextFormatter) FormatDistribution(title string, dist []models.CategoryCount) string {
	lines := []string{f.styles.Section.Render(title)}
	if len(dist) == 0 {
		return strings.Join(append(lines, f.styles.Subtle.Render("  no data")), "\n")
	}

	maxCount, width := 0, 0
	for _, c := range dist {
		maxCount = max(maxCount, c.Count)
		width = max(width, len(c.Label))
	}
	for _, c := range dist {
		lines = append(lines, fmt.Sprintf("  %-*s %s %d", width, c.Label, f.bar(c.Count, maxCount), c.Count))
	}
	return strings.Join(lines, "\n")
}

// FormatHistogram renders histogram buckets as bars
func (f *TextFormatter) FormatHistogram(title string, buckets []models.HistogramBucket) string {
	dist := make([]models.CategoryCount, 0, len(buckets))
	for _, b := range buckets {
		dist = append(dist, models.CategoryCount{Label: b.Label, Count: b.Count})
	}
	return f.FormatDistribution(title, dist)
}

// FormatTrend renders one row per period with every series value
func (f *TextFormatter) FormatTrend(title string, points []models.TrendPoint) string {
	lines := []string{f.styles.Section.Render(title)}
	if len(points) == 0 {
		return strings.Join(append(lines, f.styles.Subtle.Render("  no data")), "\n")
	}
	for _, p := range points {
		names := make([]string, 0, len(p.Values))
		for name := range p.Values {
			names = append(names, name)
		}
		sort.Strings(names)

		cells := make([]string, 0, len(names))
		for _, name := range names {
			cells = append(cells, fmt.Sprintf("%s=%g", name, p.Values[name]))
		}
		lines = append(lines, fmt.Sprintf("  %-8s %s", p.Period, strings.Join(cells, "  ")))
	}
	return strings.Join(lines, "\n")
}

// FormatExecutive renders the executive summary panel
func (f *TextFormatter) FormatExecutive(s metrics.ExecutiveSummary) string {
	return f.panel("Executive Summary", f.FormatKPIs(s.KPIs),
		f.FormatTrend("Invoice Volume", s.InvoiceTrend),
		f.FormatTrend("Exceptions by Agent", s.ExceptionTrend),
		f.FormatDistribution("Automation", s.Automation),
		f.FormatDistribution("Top Vendors by Exceptions", s.TopVendors),
	)
}

// FormatMatch renders the agent 1 panel
func (f *TextFormatter) FormatMatch(p metrics.MatchPanel) string {
	return f.panel("Agent 1 - Invoice Matching", f.FormatKPIs(p.KPIs),
		f.FormatDistribution("Fail Reasons", p.FailReasons),
		f.FormatTrend("Match Status Trend", p.StatusTrend),
		f.FormatDistribution("Tolerance", p.ToleranceDistribution),
		f.FormatDistribution("Vendor Volume", p.TopVendors),
	)
}

// FormatRootCause renders the agent 2 panel
func (f *TextFormatter) FormatRootCause(p metrics.RootCausePanel) string {
	return f.panel("Agent 2 - Root Cause Analysis", f.FormatKPIs(p.KPIs),
		f.FormatDistribution("Root Causes", p.RootCauses),
		f.FormatHistogram("Confidence", p.ConfidenceHistogram),
		f.FormatDistribution("Exceptions by Vendor", p.VendorExceptions),
		f.FormatTrend("Exception Trend", p.RecurringTrend),
	)
}

// FormatBlock renders the agent 3 panel
func (f *TextFormatter) FormatBlock(p metrics.BlockPanel) string {
	success := make([]models.CategoryCount, 0, len(p.SuccessByAction))
	for _, a := range p.SuccessByAction {
		success = append(success, models.CategoryCount{Label: a.Action, Count: a.Rate})
	}
	return f.panel("Agent 3 - Payment Blocks", f.FormatKPIs(p.KPIs),
		f.FormatDistribution("Block Reasons", p.BlockReasons),
		f.FormatDistribution("Resolution Success (%)", success),
		f.FormatTrend("SLA Breach %", p.SLATrend),
		f.FormatTrend("DPO Impact", p.DPOImpactTrend),
	)
}

// FormatBoard renders the Decision Center exception list
func (f *TextFormatter) FormatBoard(b decision.Board) string {
	lines := []string{
		f.styles.Title.Render("Decision Center"),
		f.styles.Subtle.Render(fmt.Sprintf("%d active exception(s), %d selected", len(b.Rows), b.Selected)),
	}
	for _, r := range b.Rows {
		mark := "[ ]"
		if r.Selected {
			mark = f.styles.Success.Render("[x]")
		}
		status := string(r.MatchStatus)
		if status == "" {
			status = decision.NoValue
		}
		lines = append(lines, fmt.Sprintf("%s %-12s %-8s %-14s %s", mark, r.InvoiceID, r.Vendor, status, r.SuggestedResolution))
	}
	return strings.Join(lines, "\n")
}

// FormatAction renders an action confirmation
func (f *TextFormatter) FormatAction(res decision.ActionResult) string {
	return f.styles.Success.Render(res.Title) + "\n" + res.Description
}

// FormatOptions renders the available filter values
func (f *TextFormatter) FormatOptions(o models.FilterOptions) string {
	statuses := make([]string, 0, len(o.MatchStatuses))
	for _, s := range o.MatchStatuses {
		statuses = append(statuses, string(s))
	}
	rows := []struct {
		label  string
		values []string
	}{
		{"Vendors", o.Vendors},
		{"Plants", o.Plants},
		{"Materials", o.Materials},
		{"PO Types", o.POTypes},
		{"Match Status", statuses},
		{"Exception Types", o.ExceptionTypes},
		{"Block Reasons", o.BlockReasons},
		{"Teams", o.Teams},
	}
	lines := []string{f.styles.Title.Render("Filter Options")}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s %s", f.styles.Label.Render(r.label+":"), strings.Join(r.values, ", ")))
	}
	return strings.Join(lines, "\n")
}

// FormatLogistics renders the warehouse capacity panel
func (f *TextFormatter) FormatLogistics(p logistics.Panel) string {
	cards := make([]string, 0, len(p.Capacity.Metrics))
	for _, m := range p.Capacity.Metrics {
		value := f.statusStyle(m.Status).Render(fmt.Sprintf("%d %s", m.Value, m.Unit))
		body := f.styles.Label.Render(m.Title) + "\n" + value + "\n" +
			f.styles.Subtle.Render(fmt.Sprintf("target %d", m.Target))
		cards = append(cards, f.styles.Card.Render(body))
	}

	sections := []string{
		f.styles.Title.Render("Warehouse Capacity - " + p.Capacity.Depot),
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	}
	if p.Capacity.CriticalAlert {
		sections = append(sections, f.styles.Critical.Render("Critical: "+p.Capacity.Alert))
	}

	shifts := []string{f.styles.Section.Render("Shifts")}
	for _, s := range p.Shifts {
		verdict := f.styles.Success.Render("adequate")
		if !s.Adequate {
			verdict = f.styles.Warning.Render(fmt.Sprintf("short %d", s.Shortfall))
		}
		shifts = append(shifts, fmt.Sprintf("  %-8s %d/%d %s", s.Name, s.Current, s.Planned, verdict))
	}
	sections = append(sections, strings.Join(shifts, "\n"))

	if len(p.Factors) > 0 {
		factors := []string{f.styles.Section.Render("External Factors")}
		for _, fa := range p.Factors {
			factors = append(factors, fmt.Sprintf("  %-9s %s: %s", fa.Impact, fa.Name, fa.Effect))
		}
		sections = append(sections, strings.Join(factors, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

func (f *TextFormatter) panel(title string, sections ...string) string {
	return strings.Join(append([]string{f.styles.Title.Render(title)}, sections...), "\n\n")
}

func (f *TextFormatter) bar(count, maxCount int) string {
	if maxCount <= 0 {
		return ""
	}
	n := count * barWidth / maxCount
	return f.styles.Info.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
}

func (f *TextFormatter) statusStyle(s logistics.Status) lipgloss.Style {
	switch s {
	case logistics.StatusSuccess:
		return f.styles.Success
	case logistics.StatusCritical:
		return f.styles.Critical
	case logistics.StatusWarning:
		return f.styles.Warning
	default:
		return f.styles.Info
	}
}

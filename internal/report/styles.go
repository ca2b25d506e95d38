package report

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4")
	SuccessColor = lipgloss.Color("#04B575")
	WarningColor = lipgloss.Color("#FFA500")
	ErrorColor   = lipgloss.Color("#FF5F87")
	InfoColor    = lipgloss.Color("#00BFFF")
	SubtleColor  = lipgloss.Color("#626262")
)

// Styles groups the lipgloss styles used by the text formatter
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Subtle   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Critical lipgloss.Style
	Info     lipgloss.Style
	Card     lipgloss.Style
}

// NewStyles creates the default style set
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1),
		Section: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
		Label:    lipgloss.NewStyle().Foreground(SubtleColor),
		Value:    lipgloss.NewStyle().Bold(true),
		Subtle:   lipgloss.NewStyle().Foreground(SubtleColor).Italic(true),
		Success:  lipgloss.NewStyle().Foreground(SuccessColor),
		Warning:  lipgloss.NewStyle().Foreground(WarningColor),
		Critical: lipgloss.NewStyle().Bold(true).Foreground(ErrorColor),
		Info:     lipgloss.NewStyle().Foreground(InfoColor),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1),
	}
}

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#1976D2")
	colorMuted   = lipgloss.Color("#9E9E9E")
	colorDanger  = lipgloss.Color("#E53935")
	colorAccent  = lipgloss.Color("#8BC34A")
)

// Styles holds the lipgloss styles used by every page.
type Styles struct {
	Bar      lipgloss.Style
	Brand    lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Cursor   lipgloss.Style
	Active   lipgloss.Style
	Price    lipgloss.Style
	Danger   lipgloss.Style
	Total    lipgloss.Style
	Divider  lipgloss.Style
	Slider   lipgloss.Style
	Selected lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Bar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1),
		Brand:    lipgloss.NewStyle().Bold(true),
		Title:    lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Body:     lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Cursor:   lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Active:   lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Underline(true),
		Price:    lipgloss.NewStyle().Foreground(colorAccent),
		Danger:   lipgloss.NewStyle().Foreground(colorDanger),
		Total:    lipgloss.NewStyle().Bold(true),
		Divider:  lipgloss.NewStyle().Foreground(colorMuted),
		Slider:   lipgloss.NewStyle().Foreground(colorPrimary),
		Selected: lipgloss.NewStyle().Bold(true),
	}
}

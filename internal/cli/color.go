package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/emRival/rekap-absensi/internal/recap"
)

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CFCF"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	textStyle    = lipgloss.NewStyle()
)

func Primary(text string) string { return primaryStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }
func Text(text string) string    { return textStyle.Render(text) }

var tierStyles = map[recap.Tier]lipgloss.Style{
	recap.Excellent:      lipgloss.NewStyle().Foreground(lipgloss.Color("#1E823C")).Bold(true),
	recap.Good:           lipgloss.NewStyle().Foreground(lipgloss.Color("#00788C")).Bold(true),
	recap.NeedsAttention: lipgloss.NewStyle().Foreground(lipgloss.Color("#C87800")).Bold(true),
	recap.Poor:           lipgloss.NewStyle().Foreground(lipgloss.Color("#BE1E1E")).Bold(true),
	recap.NoData:         silentStyle,
}

// Tier renders a tier label in its colour.
func Tier(t recap.Tier) string {
	return tierStyles[t].Render(t.String())
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/tui/components/heatmap"
)

var (
	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// Styles are derived from the active theme.
type Styles struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Card        lipgloss.Style
	Selected    lipgloss.Style
	Accent      lipgloss.Color
}

func NewStyles(t models.Theme) Styles {
	accent := lipgloss.Color(t.Accent)
	return Styles{
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.CardBackground)).
			Background(accent).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextSecondary)).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextSecondary)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Reverse(true),
		Accent: accent,
	}
}

func (s Styles) heatmapPalette() heatmap.Palette {
	p := heatmap.DefaultPalette()
	p.Cursor = s.Accent
	return p
}

func moodStyle(id models.MoodID) lipgloss.Style {
	level, ok := models.LookupMood(id)
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(level.Color))
}

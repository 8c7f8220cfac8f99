// Package heatmap draws a routine's completion grid with a movable cursor.
package heatmap

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/routines"
)

// ToggleMsg asks the parent to flip the completion on Day.
type ToggleMsg struct {
	RoutineID string
	Day       time.Time
}

// UnscheduledMsg reports a toggle attempt on a day the routine does not run.
type UnscheduledMsg struct {
	Day time.Time
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev day")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next day")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	}
}

// Colours for the cell states; the accent is replaced with the active theme's.
type Palette struct {
	Done        lipgloss.Color
	Missed      lipgloss.Color
	Upcoming    lipgloss.Color
	Unscheduled lipgloss.Color
	Cursor      lipgloss.Color
}

func DefaultPalette() Palette {
	return Palette{
		Done:        lipgloss.Color("#10b981"),
		Missed:      lipgloss.Color("#ef4444"),
		Upcoming:    lipgloss.Color("#6b7280"),
		Unscheduled: lipgloss.Color("#374151"),
		Cursor:      lipgloss.Color("205"),
	}
}

type Model struct {
	Routine models.Routine
	cells   []routines.Cell
	cursor  int
	keys    KeyMap
	palette Palette
}

// New lays out r's heatmap as of today with the cursor on today.
func New(r models.Routine, today time.Time, palette Palette) Model {
	m := Model{keys: DefaultKeyMap(), palette: palette}
	m.SetRoutine(r, today)
	return m
}

// SetRoutine refreshes the cells, keeping the cursor on the same day.
func (m *Model) SetRoutine(r models.Routine, today time.Time) {
	var focused string
	if m.cursor < len(m.cells) {
		focused = m.cells[m.cursor].Key
	}
	m.Routine = r
	m.cells = slices.Collect(routines.Heatmap(r, today))

	m.cursor = 0
	target := focused
	if target == "" {
		target = today.Format("2006-01-02")
	}
	for i, c := range m.cells {
		if c.Key == target {
			m.cursor = i
			break
		}
	}
}

// Focused returns the cell under the cursor.
func (m Model) Focused() (routines.Cell, bool) {
	if m.cursor < 0 || m.cursor >= len(m.cells) {
		return routines.Cell{}, false
	}
	return m.cells[m.cursor], true
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.move(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.move(-7)
	case key.Matches(keyMsg, m.keys.Down):
		m.move(7)
	case key.Matches(keyMsg, m.keys.Toggle):
		cell, ok := m.Focused()
		if !ok {
			return m, nil
		}
		if !cell.Scheduled {
			return m, func() tea.Msg { return UnscheduledMsg{Day: cell.Date} }
		}
		id := m.Routine.ID
		return m, func() tea.Msg { return ToggleMsg{RoutineID: id, Day: cell.Date} }
	}
	return m, nil
}

func (m *Model) move(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.cells) {
		return
	}
	m.cursor = next
}

func (m Model) cellStyle(c routines.Cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch {
	case !c.Scheduled:
		style = style.Foreground(m.palette.Unscheduled)
	case c.Completed:
		style = style.Foreground(m.palette.Done)
	case c.Past:
		style = style.Foreground(m.palette.Missed)
	default:
		style = style.Foreground(m.palette.Upcoming)
	}
	return style
}

func glyph(c routines.Cell) string {
	switch {
	case !c.Scheduled:
		return "·"
	case c.Completed:
		return "■"
	default:
		return "□"
	}
}

func (m Model) View() string {
	var b strings.Builder
	for start := 0; start < len(m.cells); start += 7 {
		end := min(start+7, len(m.cells))
		row := m.cells[start:end]
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(8).Render(row[0].Date.Format("Jan 02")))
		for i, c := range row {
			cell := " " + glyph(c) + " "
			style := m.cellStyle(c)
			if start+i == m.cursor {
				style = style.Reverse(true).Foreground(m.palette.Cursor)
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}

	if c, ok := m.Focused(); ok {
		status := "not scheduled"
		switch {
		case c.Scheduled && c.Completed:
			status = "done"
		case c.Scheduled && c.Past:
			status = "missed"
		case c.Scheduled:
			status = "open"
		}
		b.WriteString("\n")
		b.WriteString(c.Date.Format("Mon Jan 2, 2006") + ": " + status)
	}
	return b.String()
}

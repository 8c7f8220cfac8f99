// Package reader shows one rendered journal entry in a scrollable viewport.
package reader

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Entry    *models.JournalEntry
	Emoji    string
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Entry == nil {
		return "No entry selected."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetEntry shows e, with emoji drawn next to the title when e has a mood.
func (m *Model) SetEntry(e models.JournalEntry, emoji string) {
	m.Entry = &e
	m.Emoji = emoji
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.Entry == nil {
		m.viewport.SetContent("No entry loaded.")
		return
	}

	var b strings.Builder
	title := m.Entry.Title
	if m.Emoji != "" {
		title += " " + m.Emoji
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(dateStyle.Render(m.Entry.CreatedAt.Local().Format("Monday, January 2, 2006 15:04")))
	if len(m.Entry.Tags) > 0 {
		b.WriteString("  ")
		b.WriteString(tagStyle.Render("#" + strings.Join(m.Entry.Tags, " #")))
	}
	b.WriteString("\n")

	width := m.width
	if width <= 0 {
		width = 80
	}
	body, err := journal.Render(*m.Entry, width)
	if err != nil {
		body = fmt.Sprintf("\n%s\n", m.Entry.Content)
	}
	b.WriteString(body)
	m.viewport.SetContent(b.String())
}

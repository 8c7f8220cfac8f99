// Package itemlist is a filterable list of reminders, routines or journal
// entries that turns add/edit/delete/toggle keys into messages.
package itemlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Item is one row. ID identifies the underlying entity.
type Item struct {
	ID    string
	Head  string
	Desc  string
	Match string
}

func (i Item) Title() string       { return i.Head }
func (i Item) Description() string { return i.Desc }
func (i Item) FilterValue() string {
	if i.Match != "" {
		return i.Match
	}
	return i.Head
}

type AddMsg struct{ List string }

type EditMsg struct {
	List string
	ID   string
}

type DeleteMsg struct {
	List string
	ID   string
}

type ToggleMsg struct {
	List string
	ID   string
}

type OpenMsg struct {
	List string
	ID   string
}

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding
	Open   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
	}
}

type Model struct {
	name  string
	empty string
	list  list.Model
	keys  KeyMap
}

// New builds a list named name; the name is echoed in every message so the
// parent can tell lists apart. Bindings that should not apply can be
// disabled on the returned KeyMap via SetKeys.
func New(name, empty string, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = name
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered globally

	keys := DefaultKeyMap()
	m := Model{name: name, empty: empty, list: l, keys: keys}
	m.setHelpKeys()
	return m
}

func (m *Model) setHelpKeys() {
	keys := m.keys
	bindings := func() []key.Binding {
		var out []key.Binding
		for _, b := range []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Toggle, keys.Open} {
			if b.Enabled() {
				out = append(out, b)
			}
		}
		return out
	}
	m.list.AdditionalShortHelpKeys = bindings
	m.list.AdditionalFullHelpKeys = bindings
}

// SetKeys replaces the action bindings.
func (m *Model) SetKeys(keys KeyMap) {
	m.keys = keys
	m.setHelpKeys()
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) SetItems(items []Item) {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	m.list.SetItems(listItems)
}

// Selected returns the highlighted item.
func (m Model) Selected() (Item, bool) {
	it, ok := m.list.SelectedItem().(Item)
	return it, ok
}

// Filtering reports whether the user is typing a filter, in which case
// global keys must not be intercepted.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		name := m.name
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMsg{List: name} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditMsg{List: name, ID: i.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteMsg{List: name, ID: i.ID} }
			}
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleMsg{List: name, ID: i.ID} }
			}
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenMsg{List: name, ID: i.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  " + m.empty
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/julianstephens/daybook/internal/app"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/notifier"
	"github.com/julianstephens/daybook/internal/tui/components/heatmap"
	"github.com/julianstephens/daybook/internal/tui/components/itemlist"
	"github.com/julianstephens/daybook/internal/tui/components/reader"
	"github.com/julianstephens/daybook/internal/utils"
)

// List names carried in itemlist messages.
const (
	listReminders = "reminders"
	listRoutines  = "routines"
	listJournal   = "journal"
)

var tabTitles = []string{"Dashboard", "Mood", "Routines", "Reminders", "Journal", "Pomodoro", "Themes"}

type ReminderFormModel struct {
	Title       string
	Description string
	DateTime    string
	Priority    models.Priority
}

type RoutineFormModel struct {
	Title         string
	Time          string
	Days          []models.Weekday
	Notifications bool
	Category      models.Category
}

type JournalFormModel struct {
	Title   string
	Content string
	Tags    string
	Mood    models.MoodID
}

// shopItem is one row of the Themes tab: a colour theme or a sticker pack.
type shopItem struct {
	sticker bool
	key     string
}

type Options struct {
	Now      func() time.Time
	Notifier notifier.Sender
}

type Model struct {
	app           *app.App
	now           func() time.Time
	notifier      notifier.Sender
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	styles        Styles

	reminderList itemlist.Model
	routineList  itemlist.Model
	journalList  itemlist.Model
	reader       reader.Model
	heatmap      heatmap.Model

	moodCursor time.Time

	timerGen int
	bar      progress.Model

	shop        []shopItem
	shopCursor  int
	purchaseFor shopItem

	form         *huh.Form
	reminderForm *ReminderFormModel
	routineForm  *RoutineFormModel
	journalForm  *JournalFormModel
	editingID    string
	formError    string

	deleteList string
	deleteID   string

	events      chan events.Event
	unsubscribe func()
	status      string
	quitting    bool
	width       int
	height      int
}

func NewModel(a *app.App, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		app:          a,
		now:          now,
		notifier:     opts.Notifier,
		state:        constants.StateDashboard,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		reminderList: itemlist.New(listReminders, "No reminders yet. Press a to add one.", 0, 0),
		routineList:  itemlist.New(listRoutines, "No routines yet. Press a to add one.", 0, 0),
		journalList:  itemlist.New(listJournal, "No journal entries yet. Press a to write one.", 0, 0),
		reader:       reader.New(0, 0),
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		events:       make(chan events.Event, 64),
		unsubscribe:  func() {},
	}
	m.moodCursor = utils.StartOfDay(m.today())

	routineKeys := m.routineList.Keys()
	routineKeys.Open.SetHelp("enter", "heatmap")
	m.routineList.SetKeys(routineKeys)

	journalKeys := m.journalList.Keys()
	journalKeys.Toggle.SetEnabled(false)
	journalKeys.Open.SetHelp("enter", "read")
	m.journalList.SetKeys(journalKeys)

	reminderKeys := m.reminderList.Keys()
	reminderKeys.Open.SetEnabled(false)
	m.reminderList.SetKeys(reminderKeys)

	for _, t := range models.Themes {
		m.shop = append(m.shop, shopItem{key: t.Key})
	}
	for _, p := range models.StickerPacks {
		m.shop = append(m.shop, shopItem{sticker: true, key: p.Key})
	}

	if a.Bus != nil {
		ch := m.events
		m.unsubscribe = a.Bus.Subscribe(func(e events.Event) {
			select {
			case ch <- e:
			default:
				logger.Warn("Dropped change notification", "kind", e.Kind)
			}
		})
	}

	m.refreshAll()
	return m
}

func (m Model) today() time.Time {
	return m.now().In(m.app.Loc)
}

type eventMsg events.Event

func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-ch)
	}
}

type timerTickMsg struct{ gen int }

func timerTick(gen int) tea.Cmd {
	return tea.Tick(constants.TimerTickInterval, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m *Model) refreshAll() {
	m.refreshStyles()
	m.refreshReminders()
	m.refreshRoutines()
	m.refreshJournal()
}

// refresh re-reads whatever a change of kind can affect.
func (m *Model) refresh(kind events.Kind) {
	switch kind {
	case events.KindReminders:
		m.refreshReminders()
	case events.KindRoutines:
		m.refreshRoutines()
	case events.KindJournal, events.KindStickers:
		m.refreshJournal()
	case events.KindThemes:
		m.refreshStyles()
	case events.KindExternal:
		if err := m.app.Reload(); err != nil {
			logger.Error("Failed to reload after external change", "error", err)
			m.status = fmt.Sprintf("Reload failed: %v", err)
			return
		}
		m.refreshAll()
	}
}

func (m *Model) refreshStyles() {
	m.styles = NewStyles(m.app.Themes.ActiveTheme())
}

func (m *Model) refreshReminders() {
	rs := m.app.Reminders.List()
	items := make([]itemlist.Item, len(rs))
	for i, r := range rs {
		check := "[ ]"
		if r.Completed {
			check = "[x]"
		}
		desc := strings.Replace(r.DateTime, "T", " ", 1) + " · " + label(string(r.Priority))
		if r.Description != "" {
			desc += " · " + r.Description
		}
		items[i] = itemlist.Item{
			ID:    r.ID,
			Head:  check + " " + r.Title,
			Desc:  desc,
			Match: r.Title + " " + r.Description,
		}
	}
	m.reminderList.SetItems(items)
}

func (m *Model) refreshRoutines() {
	today := utils.DayKey(m.today())
	rs := m.app.Routines.List()
	items := make([]itemlist.Item, len(rs))
	for i, r := range rs {
		days := make([]string, len(r.Days))
		for j, d := range r.Days {
			days[j] = d.Short()
		}
		desc := r.Time + " · " + strings.Join(days, ",") + " · " + label(string(r.Category))
		head := r.Title
		if r.CompletedOn(today) {
			head = "✓ " + head
		}
		items[i] = itemlist.Item{ID: r.ID, Head: head, Desc: desc}
	}
	m.routineList.SetItems(items)

	if m.state == constants.StateHeatmap {
		if r, err := m.app.Routines.Get(m.heatmap.Routine.ID); err == nil {
			m.heatmap.SetRoutine(r, m.today())
		} else {
			m.state = constants.StateRoutines
		}
	}
}

func (m *Model) refreshJournal() {
	es := m.app.Journal.List()
	items := make([]itemlist.Item, len(es))
	for i, e := range es {
		head := e.Title
		if e.Mood != "" {
			head += " " + m.app.Themes.Emoji(e.Mood)
		}
		desc := e.CreatedAt.In(m.app.Loc).Format("Jan 2, 2006 15:04")
		if len(e.Tags) > 0 {
			desc += " · #" + strings.Join(e.Tags, " #")
		}
		items[i] = itemlist.Item{
			ID:    e.ID,
			Head:  head,
			Desc:  desc,
			Match: e.Title + " " + e.Content + " " + strings.Join(e.Tags, " "),
		}
	}
	m.journalList.SetItems(items)

	if m.state == constants.StateReadJournal && m.reader.Entry != nil {
		if e, err := m.app.Journal.Get(m.reader.Entry.ID); err == nil {
			m.reader.SetEntry(e, m.app.Themes.Emoji(e.Mood))
		} else {
			m.state = constants.StateJournal
		}
	}
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h, v := docStyle.GetFrameSize()
	listHeight := height - v - 4 // tabs, status and help lines
	if listHeight < 0 {
		listHeight = 0
	}
	m.reminderList.SetSize(width-h, listHeight)
	m.routineList.SetSize(width-h, listHeight)
	m.journalList.SetSize(width-h, listHeight)
	m.reader.SetSize(width-h, listHeight)

	barWidth := width - h - 10
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth > 0 {
		m.bar.Width = barWidth
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateMood:
		keys = append(keys, m.keys.SetMood, m.keys.PrevMonth, m.keys.NextMonth)
	case constants.StateRoutines:
		lk := m.routineList.Keys()
		keys = append(keys, lk.Add, lk.Toggle, lk.Open)
	case constants.StateReminders:
		lk := m.reminderList.Keys()
		keys = append(keys, lk.Add, lk.Toggle)
	case constants.StateJournal:
		lk := m.journalList.Keys()
		keys = append(keys, lk.Add, lk.Open)
	case constants.StatePomodoro:
		keys = append(keys, m.keys.StartPause, m.keys.Reset, m.keys.Duration)
	case constants.StateThemes:
		keys = append(keys, m.keys.Enter, m.keys.Buy)
	case constants.StateHeatmap:
		hk := m.heatmap.Keys()
		keys = []key.Binding{m.keys.Back, hk.Toggle, m.keys.Help}
	case constants.StateReadJournal:
		keys = []key.Binding{m.keys.Back, m.keys.Up, m.keys.Down}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateMood:
		actions = []key.Binding{m.keys.SetMood, m.keys.PrevMonth, m.keys.NextMonth}
	case constants.StateRoutines:
		lk := m.routineList.Keys()
		actions = []key.Binding{lk.Add, lk.Edit, lk.Delete, lk.Toggle, lk.Open}
	case constants.StateReminders:
		lk := m.reminderList.Keys()
		actions = []key.Binding{lk.Add, lk.Edit, lk.Delete, lk.Toggle}
	case constants.StateJournal:
		lk := m.journalList.Keys()
		actions = []key.Binding{lk.Add, lk.Edit, lk.Delete, lk.Open}
	case constants.StatePomodoro:
		actions = []key.Binding{m.keys.StartPause, m.keys.Reset, m.keys.Duration}
	case constants.StateThemes:
		actions = []key.Binding{m.keys.Enter, m.keys.Buy}
	case constants.StateHeatmap:
		hk := m.heatmap.Keys()
		navigation = []key.Binding{hk.Up, hk.Down, hk.Left, hk.Right}
		actions = []key.Binding{hk.Toggle, m.keys.Back}
	}

	return [][]key.Binding{global, navigation, actions}
}

// Close detaches the model from the event bus.
func (m Model) Close() {
	m.unsubscribe()
}

func (m Model) isTab() bool {
	return int(m.state) < constants.TabCount
}

// filtering reports whether the visible list is capturing keystrokes.
func (m Model) filtering() bool {
	switch m.state {
	case constants.StateReminders:
		return m.reminderList.Filtering()
	case constants.StateRoutines:
		return m.routineList.Filtering()
	case constants.StateJournal:
		return m.journalList.Filtering()
	}
	return false
}

var titleCaser = cases.Title(language.English)

func label(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "-", " "))
}

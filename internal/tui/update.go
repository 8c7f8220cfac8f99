package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/notifier"
	"github.com/julianstephens/daybook/internal/reminders"
	"github.com/julianstephens/daybook/internal/routines"
	"github.com/julianstephens/daybook/internal/tui/components/heatmap"
	"github.com/julianstephens/daybook/internal/tui/components/itemlist"
	"github.com/julianstephens/daybook/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case eventMsg:
		m.refresh(msg.Kind)
		return m, waitForEvent(m.events)

	case timerTickMsg:
		return m.handleTimerTick(msg)

	case heatmap.ToggleMsg:
		if _, err := m.app.Routines.ToggleCompletion(msg.RoutineID, msg.Day); err != nil {
			m.status = err.Error()
		}
		return m, nil

	case heatmap.UnscheduledMsg:
		m.status = msg.Day.Format("Mon Jan 2") + " is not scheduled for this routine"
		return m, nil

	case itemlist.AddMsg:
		return m.openForm(msg.List, "")

	case itemlist.EditMsg:
		return m.openForm(msg.List, msg.ID)

	case itemlist.DeleteMsg:
		m.deleteList = msg.List
		m.deleteID = msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case itemlist.ToggleMsg:
		m.handleToggle(msg)
		return m, nil

	case itemlist.OpenMsg:
		return m.handleOpen(msg)
	}

	switch m.state {
	case constants.StateReminderForm, constants.StateRoutineForm, constants.StateJournalForm:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case constants.StateConfirmPurchase:
		return m.updateConfirmPurchase(msg)
	case constants.StateHeatmap, constants.StateReadJournal:
		return m.updateSubview(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			return m.quit()
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(keyMsg, m.keys.Tab):
			m.state = constants.SessionState((int(m.state) + 1) % constants.TabCount)
			m.status = ""
			return m, nil
		case key.Matches(keyMsg, m.keys.ShiftTab):
			m.state = constants.SessionState((int(m.state) - 1 + constants.TabCount) % constants.TabCount)
			m.status = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateMood:
		return m.updateMood(msg)
	case constants.StatePomodoro:
		return m.updatePomodoro(msg)
	case constants.StateThemes:
		return m.updateThemes(msg)
	case constants.StateReminders:
		m.reminderList, cmd = m.reminderList.Update(msg)
	case constants.StateRoutines:
		m.routineList, cmd = m.routineList.Update(msg)
	case constants.StateJournal:
		m.journalList, cmd = m.journalList.Update(msg)
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.app.Pomodoro.Timer.Pause()
	m.unsubscribe()
	return m, tea.Quit
}

func (m *Model) handleToggle(msg itemlist.ToggleMsg) {
	var err error
	switch msg.List {
	case listReminders:
		_, err = m.app.Reminders.Toggle(msg.ID)
	case listRoutines:
		var done bool
		done, err = m.app.Routines.ToggleCompletion(msg.ID, m.today())
		if err == nil {
			m.status = "Marked open for today"
			if done {
				m.status = "Marked done for today"
			}
		}
		if errors.Is(err, apperrors.ErrNotScheduled) {
			m.status = "Not scheduled today"
			return
		}
	}
	if err != nil {
		m.status = err.Error()
	}
}

func (m Model) handleOpen(msg itemlist.OpenMsg) (tea.Model, tea.Cmd) {
	switch msg.List {
	case listRoutines:
		r, err := m.app.Routines.Get(msg.ID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.heatmap = heatmap.New(r, m.today(), m.styles.heatmapPalette())
		m.previousState = m.state
		m.state = constants.StateHeatmap
	case listJournal:
		e, err := m.app.Journal.Get(msg.ID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.reader.SetEntry(e, m.app.Themes.Emoji(e.Mood))
		m.previousState = m.state
		m.state = constants.StateReadJournal
	}
	return m, nil
}

// updateSubview handles the heatmap and the journal reader, which both
// return to their list on esc.
func (m Model) updateSubview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			m.state = m.previousState
			m.status = ""
			return m, nil
		case keyMsg.String() == "ctrl+c":
			return m.quit()
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.state == constants.StateHeatmap {
		m.heatmap, cmd = m.heatmap.Update(msg)
	} else {
		m.reader, cmd = m.reader.Update(msg)
	}
	return m, cmd
}

func (m Model) updateMood(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.moodCursor = m.moodCursor.AddDate(0, 0, -1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moodCursor = m.moodCursor.AddDate(0, 0, 1)
	case key.Matches(keyMsg, m.keys.Up):
		m.moodCursor = m.moodCursor.AddDate(0, 0, -7)
	case key.Matches(keyMsg, m.keys.Down):
		m.moodCursor = m.moodCursor.AddDate(0, 0, 7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.moodCursor = utils.FirstOfMonth(m.moodCursor, -1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.moodCursor = utils.FirstOfMonth(m.moodCursor, 1)
	case key.Matches(keyMsg, m.keys.SetMood):
		i := int(keyMsg.String()[0] - '1')
		level := models.MoodLevels[i]
		if err := m.app.Mood.Set(utils.DayKey(m.moodCursor), level.ID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("%s: %s %s", m.moodCursor.Format("Jan 2"), m.app.Themes.Emoji(level.ID), level.Label)
	}
	return m, nil
}

func (m Model) updatePomodoro(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	t := m.app.Pomodoro.Timer
	switch {
	case key.Matches(keyMsg, m.keys.StartPause):
		t.Toggle()
		m.timerGen++
		m.status = ""
		if t.Running() {
			return m, timerTick(m.timerGen)
		}
	case key.Matches(keyMsg, m.keys.Reset):
		t.Reset()
		m.timerGen++
	case key.Matches(keyMsg, m.keys.Duration):
		i := int(keyMsg.String()[0] - '1')
		if err := m.app.Pomodoro.SelectDuration(constants.TimerOptions[i]); err != nil {
			m.status = err.Error()
		}
		m.timerGen++
	}
	return m, nil
}

// handleTimerTick advances the countdown. Ticks from an earlier start are
// dropped so pausing and restarting never double the speed.
func (m Model) handleTimerTick(msg timerTickMsg) (tea.Model, tea.Cmd) {
	t := m.app.Pomodoro.Timer
	if msg.gen != m.timerGen || !t.Running() {
		return m, nil
	}
	if t.Tick() {
		m.status = "Time's up! Take a break."
		notifier.Dispatch(m.notifier, "Pomodoro", "Time's up! Take a break.")
		return m, nil
	}
	return m, timerTick(m.timerGen)
}

func (m Model) updateThemes(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.shopCursor > 0 {
			m.shopCursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.shopCursor < len(m.shop)-1 {
			m.shopCursor++
		}
	case key.Matches(keyMsg, m.keys.Enter):
		item := m.shop[m.shopCursor]
		err := m.selectShopItem(item)
		if errors.Is(err, apperrors.ErrNotPurchased) {
			return m.askPurchase(item), nil
		}
		if err != nil {
			m.status = err.Error()
		}
	case key.Matches(keyMsg, m.keys.Buy):
		item := m.shop[m.shopCursor]
		if m.shopOwned(item) {
			m.status = m.shopName(item) + " is already available"
			return m, nil
		}
		return m.askPurchase(item), nil
	}
	return m, nil
}

func (m Model) askPurchase(item shopItem) Model {
	m.purchaseFor = item
	m.previousState = m.state
	m.state = constants.StateConfirmPurchase
	return m
}

func (m *Model) selectShopItem(item shopItem) error {
	var err error
	if item.sticker {
		err = m.app.Themes.SelectStickerPack(item.key)
	} else {
		err = m.app.Themes.SelectTheme(item.key)
	}
	if err == nil {
		m.status = "Now using " + m.shopName(item)
	}
	return err
}

func (m Model) shopOwned(item shopItem) bool {
	if item.sticker {
		return m.app.Themes.StickerPackAvailable(item.key)
	}
	return m.app.Themes.ThemeAvailable(item.key)
}

func (m Model) shopName(item shopItem) string {
	if item.sticker {
		if p, ok := models.LookupStickerPack(item.key); ok {
			return p.Name
		}
	} else if t, ok := models.LookupTheme(item.key); ok {
		return t.Name
	}
	return item.key
}

func (m Model) updateConfirmPurchase(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch strings.ToLower(keyMsg.String()) {
	case "y", "enter":
		item := m.purchaseFor
		var err error
		if item.sticker {
			err = m.app.Themes.PurchaseStickerPack(item.key)
		} else {
			err = m.app.Themes.PurchaseTheme(item.key)
		}
		if err == nil {
			err = m.selectShopItem(item)
		}
		if err != nil {
			m.status = err.Error()
		}
		m.state = m.previousState
	case "n", "esc":
		m.status = ""
		m.state = m.previousState
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch strings.ToLower(keyMsg.String()) {
	case "y":
		var err error
		switch m.deleteList {
		case listReminders:
			err = m.app.Reminders.Delete(m.deleteID)
		case listRoutines:
			err = m.app.Routines.Delete(m.deleteID)
		case listJournal:
			err = m.app.Journal.Delete(m.deleteID)
		}
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = "Deleted"
		}
		m.deleteID = ""
		m.state = m.previousState
	case "n", "esc":
		m.deleteID = ""
		m.state = m.previousState
	}
	return m, nil
}

func (m Model) openForm(list, id string) (tea.Model, tea.Cmd) {
	m.editingID = id
	m.formError = ""
	m.previousState = m.state

	switch list {
	case listReminders:
		fm := &ReminderFormModel{Priority: models.PriorityMedium}
		if id != "" {
			r, err := m.app.Reminders.Get(id)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			fm = &ReminderFormModel{
				Title:       r.Title,
				Description: r.Description,
				DateTime:    strings.Replace(r.DateTime, "T", " ", 1),
				Priority:    r.Priority,
			}
		}
		m.reminderForm = fm
		m.form = NewReminderForm(fm, m.app.Loc)
		m.state = constants.StateReminderForm

	case listRoutines:
		fm := &RoutineFormModel{Time: "09:00", Notifications: true, Category: models.CategoryPersonal}
		if id != "" {
			r, err := m.app.Routines.Get(id)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			fm = &RoutineFormModel{
				Title:         r.Title,
				Time:          r.Time,
				Days:          r.Days,
				Notifications: r.Notifications,
				Category:      r.Category,
			}
		}
		m.routineForm = fm
		m.form = NewRoutineForm(fm)
		m.state = constants.StateRoutineForm

	case listJournal:
		fm := &JournalFormModel{}
		if id != "" {
			e, err := m.app.Journal.Get(id)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			fm = &JournalFormModel{
				Title:   e.Title,
				Content: e.Content,
				Tags:    strings.Join(e.Tags, ", "),
				Mood:    e.Mood,
			}
		}
		m.journalForm = fm
		m.form = NewJournalForm(fm, m.app.Themes.ActiveStickerPack())
		m.state = constants.StateJournalForm

	default:
		return m, nil
	}
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			// Stay in the form so the input can be corrected
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.formError = ""
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

// submitForm saves the open form through its controller.
func (m *Model) submitForm() error {
	var err error
	switch m.state {
	case constants.StateReminderForm:
		fm := m.reminderForm
		in := reminders.Input{
			Title:       fm.Title,
			Description: fm.Description,
			DateTime:    fm.DateTime,
			Priority:    fm.Priority,
		}
		if m.editingID == "" {
			_, err = m.app.Reminders.Add(in)
		} else {
			_, err = m.app.Reminders.Update(m.editingID, in)
		}

	case constants.StateRoutineForm:
		fm := m.routineForm
		in := routines.Input{
			Title:         fm.Title,
			Time:          fm.Time,
			Days:          fm.Days,
			Notifications: fm.Notifications,
			Category:      fm.Category,
		}
		if m.editingID == "" {
			_, err = m.app.Routines.Add(in)
		} else {
			_, err = m.app.Routines.Update(m.editingID, in)
		}

	case constants.StateJournalForm:
		fm := m.journalForm
		in := journal.Input{
			Title:   fm.Title,
			Content: fm.Content,
			Tags:    fm.Tags,
			Mood:    fm.Mood,
		}
		if m.editingID == "" {
			_, err = m.app.Journal.Add(in)
		} else {
			_, err = m.app.Journal.Update(m.editingID, in)
		}
	}
	return err
}

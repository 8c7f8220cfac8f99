package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateMood:
		content = m.viewMood()
	case constants.StateRoutines:
		content = m.routineList.View()
	case constants.StateReminders:
		content = m.reminderList.View()
	case constants.StateJournal:
		content = m.journalList.View()
	case constants.StatePomodoro:
		content = m.viewPomodoro()
	case constants.StateThemes:
		content = m.viewThemes()
	case constants.StateHeatmap:
		content = m.viewHeatmap()
	case constants.StateReadJournal:
		content = m.reader.View()
	case constants.StateReminderForm, constants.StateRoutineForm, constants.StateJournalForm:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	case constants.StateConfirmPurchase:
		content = m.viewConfirmPurchase()
	}

	var status string
	if m.status != "" {
		status = m.styles.Muted.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if !m.isTab() {
		active = m.previousState
	}

	var tabs []string
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	s := m.app.Dashboard(m.now())

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(s.Date.Format("Monday, January 2, 2006")))
	b.WriteString("\n\n")

	mood := m.styles.Card.Render("Today's mood\n" + s.MoodLabel())
	progress := m.styles.Card.Render(fmt.Sprintf("This week\n%d%% of %d routine days", s.Progress.Percent(), s.Progress.Scheduled))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, mood, " ", progress))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Title.Render("Upcoming reminders"))
	b.WriteString("\n")
	if len(s.Upcoming) == 0 {
		b.WriteString(m.styles.Muted.Render("  No upcoming reminders"))
		b.WriteString("\n")
	}
	for _, r := range s.Upcoming {
		prio := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Priority.Color())).Render("●")
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", prio, r.Title, m.styles.Muted.Render(strings.Replace(r.DateTime, "T", " ", 1))))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("Recent journal entries"))
	b.WriteString("\n")
	if len(s.RecentEntries) == 0 {
		b.WriteString(m.styles.Muted.Render("  No journal entries yet"))
		b.WriteString("\n")
	}
	for _, e := range s.RecentEntries {
		line := "  " + e.Title
		if e.Mood != "" {
			line += " " + m.app.Themes.Emoji(e.Mood)
		}
		b.WriteString(line + "  " + m.styles.Muted.Render(e.CreatedAt.In(m.app.Loc).Format("Jan 2")) + "\n")
	}
	return b.String()
}

func (m Model) viewMood() string {
	cursor := m.moodCursor
	days := m.app.Mood.Month(cursor.Year(), cursor.Month(), m.app.Loc)
	today := utils.DayKey(m.today())
	cursorKey := utils.DayKey(cursor)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(cursor.Format("January 2006")))
	b.WriteString("\n\n")
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(fmt.Sprintf(" %-3s", d))
	}
	b.WriteString("\n")

	for i, d := range days {
		cell := "    "
		if !d.Blank {
			text := fmt.Sprintf("%2d", d.Date.Day())
			if d.Mood != "" {
				text = m.app.Themes.Emoji(d.Mood)
			}
			style := moodStyle(d.Mood)
			if d.Key == today {
				style = style.Underline(true)
			}
			if d.Key == cursorKey {
				style = m.styles.Selected
			}
			cell = " " + style.Render(text) + " "
		}
		b.WriteString(cell)
		if i%constants.HeatmapRowSize == constants.HeatmapRowSize-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")

	var legend []string
	for i, level := range models.MoodLevels {
		legend = append(legend, fmt.Sprintf("%d %s %s", i+1, m.app.Themes.Emoji(level.ID), level.Label))
	}
	b.WriteString(m.styles.Muted.Render(strings.Join(legend, "  ")))
	return b.String()
}

func (m Model) viewPomodoro() string {
	t := m.app.Pomodoro.Timer

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Focus · %d minutes", t.Minutes())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(t.Remaining()))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(t.Progress()))
	b.WriteString("\n\n")

	state := "Paused"
	if t.Running() {
		state = "Running"
	} else if t.State().Completed {
		state = "Done"
	}
	b.WriteString(m.styles.Muted.Render(state))
	b.WriteString("\n\n")

	var opts []string
	for i, minutes := range constants.TimerOptions {
		opt := fmt.Sprintf("%d: %d min", i+1, minutes)
		if minutes == t.Minutes() {
			opt = m.styles.Selected.Render(opt)
		}
		opts = append(opts, opt)
	}
	b.WriteString(strings.Join(opts, "  "))
	return b.String()
}

func (m Model) viewThemes() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Themes"))
	b.WriteString("\n")

	active := m.app.Themes.ActiveTheme().Key
	activePack := m.app.Themes.ActiveStickerPack().Key
	for i, item := range m.shop {
		if i == len(models.Themes) {
			b.WriteString("\n")
			b.WriteString(m.styles.Title.Render("Sticker packs"))
			b.WriteString("\n")
		}

		marker := "  "
		if (item.sticker && item.key == activePack) || (!item.sticker && item.key == active) {
			marker = "● "
		}

		name := m.shopName(item)
		if item.sticker {
			if p, ok := models.LookupStickerPack(item.key); ok {
				name += " " + strings.Join(stickerPreview(p), "")
			}
		} else if t, ok := models.LookupTheme(item.key); ok {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Render("■") + " " + name
		}

		line := marker + name
		if i == m.shopCursor {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString(line + "  " + m.styles.Muted.Render(m.shopPrice(item)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Spent: $" + m.app.Themes.Spent().StringFixed(2)))
	return b.String()
}

func (m Model) shopPrice(item shopItem) string {
	var premium bool
	if item.sticker {
		p, _ := models.LookupStickerPack(item.key)
		premium = p.Premium
		if premium && !m.shopOwned(item) {
			return "$" + p.Price.StringFixed(2)
		}
	} else {
		t, _ := models.LookupTheme(item.key)
		premium = t.Premium
		if premium && !m.shopOwned(item) {
			return "$" + t.Price.StringFixed(2)
		}
	}
	if premium {
		return "Owned"
	}
	return "Free"
}

func stickerPreview(p models.StickerPack) []string {
	out := make([]string, len(models.MoodLevels))
	for i, level := range models.MoodLevels {
		out[i] = p.EmojiFor(level.ID)
	}
	return out
}

func (m Model) viewHeatmap() string {
	r := m.heatmap.Routine
	header := m.styles.Title.Render(r.Title) + "  " + m.styles.Muted.Render(r.Time)
	return header + "\n\n" + m.heatmap.View()
}

func (m Model) viewForm() string {
	var title string
	verb := "New"
	if m.editingID != "" {
		verb = "Edit"
	}
	switch m.state {
	case constants.StateReminderForm:
		title = verb + " reminder"
	case constants.StateRoutineForm:
		title = verb + " routine"
	case constants.StateJournalForm:
		title = verb + " journal entry"
	}

	out := m.styles.Title.Render(title) + "\n\n" + m.form.View()
	if m.formError != "" {
		out += "\n" + dangerStyle.Render(m.formError)
	}
	return out
}

func (m Model) viewConfirmDelete() string {
	var name string
	switch m.deleteList {
	case listReminders:
		if r, err := m.app.Reminders.Get(m.deleteID); err == nil {
			name = r.Title
		}
	case listRoutines:
		if r, err := m.app.Routines.Get(m.deleteID); err == nil {
			name = r.Title
		}
	case listJournal:
		if e, err := m.app.Journal.Get(m.deleteID); err == nil {
			name = e.Title
		}
	}
	return fmt.Sprintf("%s\n\n%q will be removed permanently.\n\n%s",
		dangerStyle.Render("Delete?"), name, warningStyle.Render("y to confirm, n or esc to cancel"))
}

func (m Model) viewConfirmPurchase() string {
	item := m.purchaseFor
	return fmt.Sprintf("%s\n\n%s is a premium item (%s).\n\n%s",
		m.styles.Title.Render("Unlock?"), m.shopName(item), m.shopPrice(item),
		warningStyle.Render("y to buy, n or esc to cancel"))
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ledgerdesk/internal/records"
)

// openDatePrompt starts editing the date range in the status bar.
func (m *Model) openDatePrompt() {
	m.editingDates = true
	value := ""
	if !m.filter.From.IsZero() {
		value = m.filter.From.Format("2006-01-02")
		if !m.filter.To.IsZero() && !m.filter.To.Equal(m.filter.From) {
			value += " " + m.filter.To.Format("2006-01-02")
		}
	}
	m.dateInput.SetValue(value)
	m.dateInput.CursorEnd()
	m.dateInput.Focus()
}

// handleDateKey edits the date prompt. Enter applies "FROM [TO]"; an empty
// value clears the range.
func (m Model) handleDateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.editingDates = false
		m.dateInput.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		filter, err := parseDateRange(m.dateInput.Value(), m.filter, m.now().Location())
		if err != nil {
			cmd := m.showAlert(alertDanger, err.Error())
			return m, cmd
		}
		m.editingDates = false
		m.dateInput.Blur()
		m.filter = filter
		m.loading = m.lister != nil
		return m, m.loadRecordsCmd()
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func parseDateRange(value string, current records.Filter, loc *time.Location) (records.Filter, error) {
	fields := strings.Fields(value)
	var from, to string
	switch len(fields) {
	case 0:
	case 1:
		from, to = fields[0], fields[0]
	case 2:
		from, to = fields[0], fields[1]
	default:
		return records.Filter{}, fmt.Errorf("invalid date range %q: want FROM [TO]", strings.TrimSpace(value))
	}
	return records.NewFilter(from, to, string(current.Status), loc)
}

func (m Model) renderDatePrompt() string {
	styles := m.theme.Styles()
	return styles.AccentText.Render("Dates ") + m.dateInput.View() +
		styles.FaintText.Render("  enter apply • esc cancel")
}

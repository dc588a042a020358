package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type alertKind int

const (
	alertNone alertKind = iota
	alertSuccess
	alertDanger
	alertInfo
)

// alert is a transient status banner. Each alert carries an id so an expiry
// tick only clears the alert it was scheduled for.
type alert struct {
	id   int
	kind alertKind
	text string
}

// showAlert replaces the current alert and schedules its dismissal.
func (m *Model) showAlert(kind alertKind, text string) tea.Cmd {
	m.alertSeq++
	m.alert = alert{id: m.alertSeq, kind: kind, text: text}
	id := m.alertSeq
	return tea.Tick(AlertDuration, func(_ time.Time) tea.Msg {
		return alertExpiredMsg{id: id}
	})
}

// renderAlert renders the alert line, or an empty string when none is shown.
func (m Model) renderAlert() string {
	if m.alert.kind == alertNone {
		return ""
	}
	styles := m.theme.Styles()
	style := styles.SuccessText
	icon := "✓"
	switch m.alert.kind {
	case alertDanger:
		style = styles.DangerText
		icon = "✗"
	case alertInfo:
		style = styles.InfoText
		icon = "•"
	}
	return style.Render(icon + " " + truncate(m.alert.text, maxInt(m.width-4, 10)))
}

// AlertText returns the text of the alert on screen.
func (m Model) AlertText() string {
	return m.alert.text
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// handleActivity loads freshly read log lines into the viewport, keeping the
// view pinned to the bottom when it already was.
func (m *Model) handleActivity(msg activityMsg) {
	if msg.err != nil {
		m.activityLines = []string{"Could not read " + m.logFile + ": " + msg.err.Error()}
	} else {
		m.activityLines = msg.lines
	}
	m.resizeActivity()
	atBottom := m.activityViewport.AtBottom() || m.activityViewport.TotalLineCount() == 0
	m.activityViewport.SetContent(strings.Join(m.activityLines, "\n"))
	if atBottom {
		m.activityViewport.GotoBottom()
	}
}

// resizeActivity fits the viewport inside the activity box.
func (m *Model) resizeActivity() {
	width := maxInt(m.width-2, 10)
	height := maxInt(m.contentHeight()-2, 1)
	if m.activityViewport.Width == 0 && m.activityViewport.Height == 0 {
		m.activityViewport = viewport.New(width, height)
		return
	}
	m.activityViewport.Width = width
	m.activityViewport.Height = height
}

// renderActivity renders ledgerdesk's own log tail.
func (m Model) renderActivity() string {
	content := m.activityViewport.View()
	if len(m.activityLines) == 0 {
		msg := "No activity yet"
		if m.logFile == "" {
			msg = "Logging to file is disabled"
		}
		content = m.theme.Styles().MutedText.Render(msg)
	}
	return m.titledBox("Activity", content, m.width, m.contentHeight(), true)
}

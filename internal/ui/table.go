package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ledgerdesk/internal/ledger"
	"github.com/five82/ledgerdesk/internal/records"
)

// Fixed column widths; the operator column takes the rest.
const (
	colID     = 8
	colDate   = 12
	colAmount = 14
	colStatus = 12
)

// renderCommandBar renders the key hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().OnBackground(m.theme.Surface)
	p := newPainter(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewActivity:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"esc", "Records"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"enter", "Toggle"},
			{"f", m.statusFilterLabel()},
			{"t", "Today"},
			{"a", "All dates"},
			{"d", "Dates"},
			{"r", "Reload"},
			{"l", "Activity"},
			{"?", "More"},
		}
	}

	colon := p.text(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			p.text(c.key, styles.AccentText)+colon+p.text(c.desc, styles.MutedText))
	}
	segments = append(segments,
		p.text("T", styles.AccentText)+colon+p.text(m.theme.Name, styles.FaintText))

	return p.fill(p.join(segments, 2), m.width)
}

func (m Model) statusFilterLabel() string {
	switch m.filter.Status {
	case ledger.StatusDone:
		return "Filter " + m.labels.Done
	case ledger.StatusPending:
		return "Filter " + m.labels.Pending
	default:
		return "Filter All"
	}
}

// renderStatusBar renders the alert line, or the filter summary when no
// alert is shown.
func (m Model) renderStatusBar() string {
	if text := m.renderAlert(); text != "" {
		return text
	}
	if m.editingDates {
		return m.renderDatePrompt()
	}
	styles := m.theme.Styles()
	parts := []string{styles.MutedText.Render(m.filter.Describe())}
	if m.apiURL != "" {
		parts = append(parts, styles.FaintText.Render(m.apiURL))
	}
	return strings.Join(parts, "  ")
}

// renderRecords renders the record table.
func (m Model) renderRecords() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	title := fmt.Sprintf("Records (%d)", len(m.rows))

	bg := m.theme.FocusBg
	var content string
	switch {
	case m.loading && len(m.rows) == 0:
		content = styles.MutedText.Background(lipgloss.Color(bg)).Render("Loading records...")
	case m.loadErr != nil && len(m.rows) == 0:
		content = styles.DangerText.Background(lipgloss.Color(bg)).Render("Could not load records")
	case len(m.rows) == 0:
		content = styles.MutedText.Background(lipgloss.Color(bg)).Render("No records match " + m.filter.Describe())
	default:
		content = m.renderRecordTable(m.width-2, height-2, bg)
	}
	return m.titledBox(title, content, m.width, height, true)
}

// renderRecordTable renders a header line and the rows around the selection
// that fit in height.
func (m Model) renderRecordTable(width, height int, bgColor string) string {
	styles := m.theme.Styles().OnBackground(bgColor)
	opWidth := maxInt(width-colID-colDate-colAmount-colStatus-1, LayoutOperatorWidth)

	header := padRight("ID", colID) + padRight("Date", colDate) +
		padRight("Amount", colAmount) + padRight("Status", colStatus) + "Operator"
	lines := []string{styles.FaintText.Render(padRight(header, width))}

	visible := maxInt(height-1, 1)
	start := 0
	if m.selectedRow >= visible {
		start = m.selectedRow - visible + 1
	}
	end := minInt(start+visible, len(m.rows))

	for i := start; i < end; i++ {
		lines = append(lines, m.formatRecordRow(m.rows[i], width, opWidth, bgColor, i == m.selectedRow))
	}
	return strings.Join(lines, "\n")
}

// formatRecordRow renders one row. The status badge keeps its colors on the
// selected row so done and pending stay distinguishable.
func (m Model) formatRecordRow(row records.Row, width, opWidth int, bgColor string, selected bool) string {
	if selected {
		bgColor = m.theme.SelectionBg
	}
	p := newPainter(bgColor)

	var idStyle, textStyle, amountStyle lipgloss.Style
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, textStyle, amountStyle = sel, sel, sel.Bold(true)
	} else {
		styles := m.theme.Styles()
		idStyle, textStyle, amountStyle = styles.MutedText, styles.Text, styles.Text.Bold(true)
	}

	badge := m.theme.Badge(row.Status).Render(m.labels.For(row.Status))
	content := p.text(padRight(fmt.Sprintf("#%d", row.ID), colID), idStyle) +
		p.text(padRight(row.Date, colDate), textStyle) +
		p.text(padRight(formatAmount(row.Amount), colAmount), amountStyle) +
		badge + p.gap(colStatus-lipgloss.Width(badge)) +
		p.text(truncate(row.OperatorText, opWidth), textStyle)

	return p.fill(content, width)
}

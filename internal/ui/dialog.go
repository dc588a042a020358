package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ledgerdesk/internal/ledger"
	"github.com/five82/ledgerdesk/internal/selection"
)

// handleDialogKey routes keys while the selection dialog is open.
func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.dialog.State() == selection.NewOperatorForm {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		if out, ok := m.dialog.Close(); ok {
			m.logger.Debug("selection cancelled", "record_id", out.RecordID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.dialog.Back()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.dialog.MoveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.dialog.MoveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.dialog.MoveCursor(-len(m.dialog.Options()) - 1)
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.dialog.MoveCursor(len(m.dialog.Options()) + 1)
		return m, nil

	case key.Matches(msg, m.keys.Choose):
		out, ok := m.dialog.Confirm()
		if !ok {
			if m.dialog.State() == selection.NewOperatorForm {
				m.resetForm()
			}
			return m, nil
		}
		m.logger.Info("selection made",
			"record_id", out.RecordID,
			"operator", out.Selection.OperatorName,
			"channel", out.Selection.ChannelName,
		)
		return m, m.markDoneCmd(out.RecordID, out.Selection)
	}
	return m, nil
}

// handleFormKey edits the new-operator form.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.dialog.Back()
		m.resetForm()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.setFormFocus(1 - m.formFocus)
		return m, nil

	case msg.Type == tea.KeyEnter:
		if m.dialog.Saving() {
			return m, nil
		}
		m.dialog.SetForm(m.nameInput.Value(), m.channelsInput.Value())
		req, err := m.dialog.Submit()
		if err != nil {
			cmd := m.showAlert(alertDanger, ledger.Message(err, err.Error()))
			return m, cmd
		}
		return m, m.saveOperatorCmd(req)
	}

	if m.dialog.Saving() {
		return m, nil
	}
	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.channelsInput, cmd = m.channelsInput.Update(msg)
	}
	return m, cmd
}

// resetForm clears both inputs and focuses the name field.
func (m *Model) resetForm() {
	m.nameInput.Reset()
	m.channelsInput.Reset()
	m.setFormFocus(0)
}

func (m *Model) setFormFocus(field int) {
	m.formFocus = field
	if field == 0 {
		m.nameInput.Focus()
		m.channelsInput.Blur()
		return
	}
	m.nameInput.Blur()
	m.channelsInput.Focus()
}

// renderDialog draws the dialog over the records screen.
func (m Model) renderDialog() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(m.dialogTitle()))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", dialogWidth-6)))
	b.WriteString("\n\n")

	switch m.dialog.State() {
	case selection.ListVisible:
		labels := make([]string, 0, len(m.dialog.Options()))
		for _, opt := range m.dialog.Options() {
			label := opt.Label
			if opt.Kind == selection.OptionOperator && len(opt.Operator.Channels) > 0 {
				label += fmt.Sprintf("  (%d)", len(opt.Operator.Channels))
			}
			labels = append(labels, label)
		}
		b.WriteString(m.renderOptionList(labels))
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("enter choose • esc cancel"))

	case selection.ChannelVisible:
		op := m.dialog.Operator()
		labels := make([]string, 0, len(op.Channels))
		for _, ch := range op.Channels {
			labels = append(labels, ch.Name)
		}
		b.WriteString(m.renderOptionList(labels))
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("enter choose • b back • esc cancel"))

	case selection.NewOperatorForm:
		b.WriteString(styles.MutedText.Render("Name"))
		b.WriteString("\n")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Channels"))
		b.WriteString("\n")
		b.WriteString(m.channelsInput.View())
		b.WriteString("\n\n")
		switch {
		case m.dialog.Saving():
			b.WriteString(styles.WarningText.Render("Saving..."))
		case m.dialog.Err() != "":
			b.WriteString(styles.DangerText.Render(m.dialog.Err()))
		default:
			b.WriteString(styles.FaintText.Render("enter save • tab next field • esc back"))
		}
	}

	return m.overlay(b.String(), dialogWidth)
}

func (m Model) dialogTitle() string {
	switch m.dialog.State() {
	case selection.ChannelVisible:
		return "Channel for " + m.dialog.Operator().Name
	case selection.NewOperatorForm:
		return "New operator"
	default:
		return fmt.Sprintf("Who handled record #%d?", m.dialog.RecordID())
	}
}

// renderOptionList draws labels with the dialog cursor highlighted, scrolling
// so the cursor stays visible.
func (m Model) renderOptionList(labels []string) string {
	styles := m.theme.Styles()
	if len(labels) == 0 {
		return styles.MutedText.Render("Nothing to choose")
	}
	cursor := m.dialog.Cursor()
	start := 0
	if cursor >= dialogMaxRows {
		start = cursor - dialogMaxRows + 1
	}
	end := minInt(start+dialogMaxRows, len(labels))

	width := dialogWidth - 8
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		label := padRight(truncate(labels[i], width-2), width-2)
		if i == cursor {
			lines = append(lines, styles.Selected.Render("▸ "+label))
			continue
		}
		lines = append(lines, styles.Text.Render("  "+label))
	}
	return strings.Join(lines, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// painter renders text segments on a fixed background. Styling words and gaps
// separately keeps the background continuous across ANSI resets.
type painter struct {
	bg lipgloss.Color
}

func newPainter(bgColor string) painter {
	return painter{bg: lipgloss.Color(bgColor)}
}

// text renders s with style on the painter's background.
func (p painter) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	styled := style.Background(p.bg)
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, p.gap(1))
}

// gap renders n background-colored spaces.
func (p painter) gap(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(p.bg).Render(strings.Repeat(" ", n))
}

func (p painter) join(parts []string, spacing int) string {
	return strings.Join(parts, p.gap(spacing))
}

// fill pads rendered content to width with the background color.
func (p painter) fill(content string, width int) string {
	return lipgloss.NewStyle().Background(p.bg).Width(width).Render(content)
}

// titledBox renders content in a box with title set into the top border.
func (m Model) titledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	p := newPainter(bgColor)
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	inner := width - 2
	if inner < 4 {
		inner = 4
	}
	title = truncate(title, inner-4)
	titleWidth := lipgloss.Width(title) + 2
	left := (inner - titleWidth) / 2
	right := inner - titleWidth - left

	var b strings.Builder
	b.WriteString(p.text("┌"+strings.Repeat("─", left), border))
	b.WriteString(p.text(" "+title+" ", heading))
	b.WriteString(p.text(strings.Repeat("─", right)+"┐", border))
	b.WriteString("\n")

	lines := strings.Split(content, "\n")
	cell := lipgloss.NewStyle().Width(inner).MaxWidth(inner).Background(lipgloss.Color(bgColor))
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		b.WriteString(p.text("│", border))
		b.WriteString(cell.Render(line))
		b.WriteString(p.text("│", border))
		b.WriteString("\n")
	}
	b.WriteString(p.text("└"+strings.Repeat("─", inner)+"┘", border))
	return b.String()
}

// overlay centers a rounded modal over the screen.
func (m Model) overlay(content string, width int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(width).
		Render(content)
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// formatAmount renders a money amount with thousands separators and two
// decimals.
func formatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// truncate shortens a string to the given limit, adding an ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the summary bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().OnBackground(m.theme.Surface)
	p := newPainter(m.theme.Surface)

	if !m.snapshot.HasStats {
		return m.renderConnectingHeader(styles, p)
	}

	content := m.buildStatsContent(styles, p)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(content)
}

// renderConnectingHeader shows the state before the first summary arrives.
func (m Model) renderConnectingHeader(styles Styles, p painter) string {
	sep := p.gap(2)

	if m.snapshot.LastError != nil {
		last := "soon"
		if !m.lastUpdated.IsZero() {
			last = m.lastUpdated.Format("15:04:05")
		}
		parts := []string{
			p.text("ledgerdesk", styles.Logo),
			p.text("API unreachable", styles.DangerText),
			p.text("Retrying...", styles.WarningText.Bold(true)),
			p.text(last, styles.MutedText),
		}
		if m.apiURL != "" {
			parts = append(parts, p.text(truncate(m.apiURL, 50), styles.FaintText))
		}
		return styles.Header.Width(m.width).Render(p.join(parts, 2))
	}

	return styles.Header.Width(m.width).Render(
		p.text("ledgerdesk", styles.Logo) + sep +
			p.text("Connecting...", styles.WarningText.Bold(true)),
	)
}

// buildStatsContent lays out amounts, counts, and progress.
func (m Model) buildStatsContent(styles Styles, p painter) string {
	compact := m.width < LayoutCompactWidth
	stats := m.snapshot.Stats

	parts := []string{p.text("ledgerdesk", styles.Logo)}

	if m.snapshot.IsOffline() {
		parts = append(parts, p.text("● OFFLINE", styles.DangerText))
	} else {
		parts = append(parts, p.text("● ONLINE", styles.SuccessText))
	}

	doneLabel, pendingLabel := m.labels.Done+":", m.labels.Pending+":"
	if compact {
		parts = append(parts,
			p.text(doneLabel, styles.MutedText)+p.gap(1)+
				p.text(formatAmount(stats.Completed), styles.SuccessText),
			p.text(pendingLabel, styles.MutedText)+p.gap(1)+
				p.text(formatAmount(stats.Pending), styles.DangerText),
		)
	} else {
		parts = append(parts,
			p.text(doneLabel, styles.MutedText)+p.gap(1)+
				p.text(formatAmount(stats.Completed), styles.SuccessText)+p.gap(1)+
				p.text(fmt.Sprintf("(%d)", stats.CompletedCount), styles.FaintText),
			p.text(pendingLabel, styles.MutedText)+p.gap(1)+
				p.text(formatAmount(stats.Pending), styles.DangerText)+p.gap(1)+
				p.text(fmt.Sprintf("(%d)", stats.PendingCount), styles.FaintText),
		)
	}

	parts = append(parts,
		p.text("Progress:", styles.MutedText)+p.gap(1)+
			p.text(formatProgress(stats.Progress), styles.InfoText),
	)

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, p.text(ts, styles.MutedText))
	}

	if m.snapshot.LastError != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			p.text("ERROR", styles.DangerText)+p.gap(1)+
				p.text(truncate(m.snapshot.LastError.Error(), maxErr), styles.DangerText),
		)
	}

	return p.join(parts, 2)
}

// formatTimestamp renders when the summary last refreshed.
func (m Model) formatTimestamp() string {
	if m.snapshot.LastUpdated.IsZero() {
		return ""
	}
	age := m.now().Sub(m.snapshot.LastUpdated)
	if age < 5*time.Second {
		return m.snapshot.LastUpdated.Format("15:04:05")
	}
	return m.snapshot.LastUpdated.Format("15:04:05") + " (" + age.Truncate(time.Second).String() + " ago)"
}

func formatProgress(v float64) string {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return fmt.Sprintf("%.1f%%", v)
}

package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutOperatorWidth is the minimum width of the operator column.
	LayoutOperatorWidth = 16
)

// Dialog and overlay sizes.
const (
	dialogWidth = 48
	helpWidth   = 52

	// dialogMaxRows caps the number of options drawn at once.
	dialogMaxRows = 12
)

// Activity log limits.
const (
	// activityMaxLines is the number of log lines read for the activity view.
	activityMaxLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// AlertDuration is how long a transient alert stays on screen.
	AlertDuration = 3 * time.Second
)

// contentHeight returns the rows left for the main box after the header,
// command bar, and status bar.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 5 {
		h = 5
	}
	return h
}

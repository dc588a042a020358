package ui

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ledgerdesk/internal/ledger"
	"github.com/five82/ledgerdesk/internal/logtail"
	"github.com/five82/ledgerdesk/internal/records"
	"github.com/five82/ledgerdesk/internal/selection"
	"github.com/five82/ledgerdesk/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type recordsLoadedMsg struct {
	rows   []records.Row
	filter records.Filter
	err    error
}

type operatorsLoadedMsg struct {
	err   error
	quiet bool
}

type toggleResultMsg records.Result

type operatorSavedMsg struct {
	ticket    selection.Ticket
	id        int64
	operators []ledger.Operator
	err       error
}

type alertExpiredMsg struct {
	id int
}

type activityMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// loadRecordsCmd lists records for the current filter.
func (m Model) loadRecordsCmd() tea.Cmd {
	if m.lister == nil {
		return nil
	}
	ctx, lister, filter := m.ctx, m.lister, m.filter
	return func() tea.Msg {
		recs, err := lister.ListRecords(ctx, filter.Query())
		if err != nil {
			return recordsLoadedMsg{filter: filter, err: err}
		}
		return recordsLoadedMsg{rows: records.RowsFromRecords(recs), filter: filter}
	}
}

// loadOperatorsCmd refreshes the operator directory. A quiet load does not
// announce success.
func (m Model) loadOperatorsCmd(quiet bool) tea.Cmd {
	if m.dir == nil {
		return nil
	}
	ctx, dir := m.ctx, m.dir
	return func() tea.Msg {
		return operatorsLoadedMsg{err: dir.Load(ctx), quiet: quiet}
	}
}

func (m Model) markDoneCmd(recordID int64, sel selection.Selection) tea.Cmd {
	if m.toggler == nil {
		return nil
	}
	ctx, toggler := m.ctx, m.toggler
	return func() tea.Msg {
		return toggleResultMsg(toggler.MarkDone(ctx, recordID, sel))
	}
}

func (m Model) markPendingCmd(recordID int64) tea.Cmd {
	if m.toggler == nil {
		return nil
	}
	ctx, toggler := m.ctx, m.toggler
	return func() tea.Msg {
		return toggleResultMsg(toggler.MarkPending(ctx, recordID))
	}
}

// saveOperatorCmd creates an operator and reports back with the refreshed
// directory contents.
func (m Model) saveOperatorCmd(req selection.SaveRequest) tea.Cmd {
	if m.dir == nil {
		return nil
	}
	ctx, dir := m.ctx, m.dir
	return func() tea.Msg {
		id, err := dir.Save(ctx, req.Name, req.Channels...)
		if err != nil {
			return operatorSavedMsg{ticket: req.Ticket, err: err}
		}
		return operatorSavedMsg{ticket: req.Ticket, id: id, operators: dir.Operators()}
	}
}

// refreshStatsCmd re-fetches the summary after a confirmed update.
func (m Model) refreshStatsCmd() tea.Cmd {
	if m.store == nil || m.stats == nil {
		return nil
	}
	ctx, store, stats := m.ctx, m.store, m.stats
	return func() tea.Msg {
		_ = store.Refresh(ctx, stats)
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) readActivityCmd() tea.Cmd {
	path := m.logFile
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		lines, err := logtail.Read(path, activityMaxLines)
		if err != nil {
			return activityMsg{err: err}
		}
		return activityMsg{lines: logtail.FormatLines(lines)}
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

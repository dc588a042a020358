package ui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ledgerdesk/internal/ledger"
	"github.com/five82/ledgerdesk/internal/prefs"
	"github.com/five82/ledgerdesk/internal/records"
	"github.com/five82/ledgerdesk/internal/selection"
	"github.com/five82/ledgerdesk/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewRecords View = iota
	ViewActivity
)

// RecordLister reads the record listing.
type RecordLister interface {
	ListRecords(ctx context.Context, query ledger.RecordQuery) ([]ledger.Record, error)
}

// OperatorDirectory is the operator cache the dialog draws from.
type OperatorDirectory interface {
	Load(ctx context.Context) error
	Save(ctx context.Context, name string, channels ...string) (int64, error)
	Operators() []ledger.Operator
}

// StatusToggler issues record status updates.
type StatusToggler interface {
	MarkDone(ctx context.Context, recordID int64, sel selection.Selection) records.Result
	MarkPending(ctx context.Context, recordID int64) records.Result
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Records   RecordLister
	Directory OperatorDirectory
	Toggler   StatusToggler
	Store     *state.Store
	Stats     state.StatsFetcher
	Logger    *slog.Logger

	Filter    records.Filter
	Labels    records.Labels
	SelfLabel string
	APIURL    string
	LogFile   string

	UITick    time.Duration
	ThemeName string
	PrefsPath string
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx       context.Context
	lister    RecordLister
	dir       OperatorDirectory
	toggler   StatusToggler
	store     *state.Store
	stats     state.StatsFetcher
	logger    *slog.Logger
	keys      keyMap
	now       func() time.Time
	prefsPath string
	logFile   string
	apiURL    string
	uiTick    time.Duration

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Records state
	rows        []records.Row
	selectedRow int
	filter      records.Filter
	labels      records.Labels
	loading     bool
	loadErr     error

	// Date range prompt
	dateInput    textinput.Model
	editingDates bool

	// Dialog state
	dialog        *selection.Dialog
	nameInput     textinput.Model
	channelsInput textinput.Model
	formFocus     int // 0 = name, 1 = channels

	// Alert banner
	alert    alert
	alertSeq int

	// Activity log
	activityViewport viewport.Model
	activityLines    []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	uiTick := opts.UITick
	if uiTick <= 0 {
		uiTick = DefaultUIInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	labels := opts.Labels
	if labels.Done == "" || labels.Pending == "" {
		def := records.DefaultLabels()
		if labels.Done == "" {
			labels.Done = def.Done
		}
		if labels.Pending == "" {
			labels.Pending = def.Pending
		}
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	nameInput := textinput.New()
	nameInput.Placeholder = "Operator name"
	nameInput.CharLimit = 64
	channelsInput := textinput.New()
	channelsInput.Placeholder = "WeChat, Alipay (optional)"
	channelsInput.CharLimit = 256
	dateInput := textinput.New()
	dateInput.Placeholder = "YYYY-MM-DD [YYYY-MM-DD]"
	dateInput.CharLimit = 40

	return Model{
		ctx:           ctx,
		lister:        opts.Records,
		dir:           opts.Directory,
		toggler:       opts.Toggler,
		store:         opts.Store,
		stats:         opts.Stats,
		logger:        logger,
		keys:          DefaultKeyMap(),
		now:           now,
		prefsPath:     prefsPath,
		logFile:       opts.LogFile,
		apiURL:        opts.APIURL,
		uiTick:        uiTick,
		theme:         GetTheme(opts.ThemeName),
		currentView:   ViewRecords,
		filter:        opts.Filter,
		labels:        labels,
		loading:       opts.Records != nil,
		dialog:        selection.New(opts.SelfLabel),
		nameInput:     nameInput,
		channelsInput: channelsInput,
		dateInput:     dateInput,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.uiTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if cmd := m.loadRecordsCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.loadOperatorsCmd(true); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeActivity()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = m.now()
		return m, nil

	case recordsLoadedMsg:
		if !msg.filter.Equal(m.filter) {
			// A newer load is in flight.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			cmd := m.showAlert(alertDanger, "Failed to load records: "+ledger.Message(msg.err, msg.err.Error()))
			return m, cmd
		}
		m.loadErr = nil
		m.rows = msg.rows
		if m.selectedRow >= len(m.rows) {
			m.selectedRow = maxInt(len(m.rows)-1, 0)
		}
		return m, nil

	case operatorsLoadedMsg:
		if msg.err != nil {
			// The directory is already reset; the dialog offers Self and new operator.
			m.logger.Debug("operator load failed", "err", msg.err)
			return m, nil
		}
		if msg.quiet {
			return m, nil
		}
		cmd := m.showAlert(alertInfo, "Operators reloaded")
		return m, cmd

	case toggleResultMsg:
		return m.handleToggleResult(records.Result(msg))

	case operatorSavedMsg:
		return m.handleOperatorSaved(msg)

	case alertExpiredMsg:
		if msg.id == m.alert.id {
			m.alert = alert{}
		}
		return m, nil

	case activityMsg:
		m.handleActivity(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.dialog.Visible() {
		return m.renderDialog()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. The dialog captures all keys while it
// is open.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.dialog.Visible() {
		return m.handleDialogKey(msg)
	}

	if m.editingDates {
		return m.handleDateKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewRecords
		return m, nil

	case key.Matches(msg, m.keys.ViewActivity):
		m.currentView = ViewActivity
		return m, m.readActivityCmd()
	}

	switch m.currentView {
	case ViewRecords:
		return m.handleRecordsKey(msg)
	case ViewActivity:
		var cmd tea.Cmd
		m.activityViewport, cmd = m.activityViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleRecordsKey processes keyboard input for the records view.
func (m Model) handleRecordsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reload):
		m.loading = m.lister != nil
		return m, tea.Batch(m.loadRecordsCmd(), m.loadOperatorsCmd(false))

	case key.Matches(msg, m.keys.CycleStatus):
		m.filter.Status = records.NextStatus(m.filter.Status)
		m.savePrefs()
		m.loading = m.lister != nil
		return m, m.loadRecordsCmd()

	case key.Matches(msg, m.keys.Today):
		m.filter = records.Today(m.now(), m.filter.Status)
		m.loading = m.lister != nil
		return m, m.loadRecordsCmd()

	case key.Matches(msg, m.keys.DateRange):
		m.openDatePrompt()
		return m, nil

	case key.Matches(msg, m.keys.AllDates):
		m.filter.From, m.filter.To = time.Time{}, time.Time{}
		m.loading = m.lister != nil
		return m, m.loadRecordsCmd()
	}

	if len(m.rows) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(m.rows)-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = len(m.rows) - 1
	case key.Matches(msg, m.keys.Toggle):
		return m.activate(m.rows[m.selectedRow])
	}
	return m, nil
}

// activate starts the toggle for row: a dialog when marking done, a direct
// update when marking pending.
func (m Model) activate(row records.Row) (tea.Model, tea.Cmd) {
	act := records.Activate(row)
	if act.Kind == records.UpdateNow {
		return m, m.markPendingCmd(act.RecordID)
	}

	var operators []ledger.Operator
	if m.dir != nil {
		operators = m.dir.Operators()
	}
	m.dialog.Open(act.RecordID, operators)
	m.resetForm()
	m.logger.Debug("selection dialog opened", "record_id", act.RecordID, "operators", len(operators))
	return m, nil
}

func (m Model) handleToggleResult(res records.Result) (tea.Model, tea.Cmd) {
	if res.Err != nil {
		text := "Update failed: " + ledger.Message(res.Err, "network error")
		cmd := m.showAlert(alertDanger, text)
		return m, cmd
	}
	records.ApplyResult(m.rows, res)
	label := m.labels.For(res.Status)
	cmds := []tea.Cmd{m.showAlert(alertSuccess, "Record #"+itoa(res.RecordID)+" marked "+label)}
	if cmd := m.refreshStatsCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleOperatorSaved(msg operatorSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		text := ledger.Message(msg.err, "Failed to add operator")
		if !m.dialog.SaveFailed(msg.ticket, text) {
			return m, nil
		}
		cmd := m.showAlert(alertDanger, text)
		return m, cmd
	}
	if !m.dialog.SaveSucceeded(msg.ticket, msg.id, msg.operators) {
		return m, nil
	}
	m.resetForm()
	cmd := m.showAlert(alertSuccess, "Operator added")
	return m, cmd
}

// handleTick processes the UI refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewActivity {
		cmds = append(cmds, m.readActivityCmd())
	}
	cmds = append(cmds, tickCmd(m.uiTick))
	return m, tea.Batch(cmds...)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, StatusFilter: string(m.filter.Status)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "err", err)
	}
}

// renderMain renders the records or activity screen.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.currentView {
	case ViewActivity:
		b.WriteString(m.renderActivity())
	default:
		b.WriteString(m.renderRecords())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// Rows returns the current display rows.
func (m Model) Rows() []records.Row {
	dup := make([]records.Row, len(m.rows))
	copy(dup, m.rows)
	return dup
}

// Dialog exposes the selection dialog state.
func (m Model) Dialog() *selection.Dialog {
	return m.dialog
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

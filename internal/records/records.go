// Package records implements the record status toggle: the display projection
// of a record row and the update calls that move it between pending and done.
package records

import (
	"context"
	"io"
	"log/slog"

	"github.com/five82/ledgerdesk/internal/ledger"
	"github.com/five82/ledgerdesk/internal/metrics"
	"github.com/five82/ledgerdesk/internal/selection"
)

// NoOperator is shown when a record carries no attribution.
const NoOperator = "-"

// Labels are the status badge texts.
type Labels struct {
	Done    string
	Pending string
}

// DefaultLabels returns the built-in badge texts.
func DefaultLabels() Labels {
	return Labels{Done: "Done", Pending: "Pending"}
}

// For returns the badge text for status.
func (l Labels) For(status ledger.Status) string {
	if status == ledger.StatusDone {
		return l.Done
	}
	return l.Pending
}

// Row is the client-side projection of one record.
type Row struct {
	ID           int64
	Date         string
	Amount       float64
	Status       ledger.Status
	OperatorText string
}

// RowFromRecord builds the display row for r.
func RowFromRecord(r ledger.Record) Row {
	row := Row{
		ID:           r.ID,
		Date:         r.ParsedDate().Format("2006-01-02"),
		Amount:       r.Amount,
		Status:       r.Status,
		OperatorText: NoOperator,
	}
	if r.ParsedDate().IsZero() {
		row.Date = r.Date
	}
	if r.Status == ledger.StatusDone {
		row.OperatorText = OperatorText(&selection.Selection{
			OperatorID:   r.OperatorID,
			OperatorName: r.OperatorName,
			ChannelID:    r.ChannelID,
			ChannelName:  r.ChannelName,
		})
	}
	return row
}

// RowsFromRecords maps records to rows, preserving order.
func RowsFromRecords(records []ledger.Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, RowFromRecord(r))
	}
	return rows
}

// OperatorText renders the operator cell: the operator name, followed by the
// channel in parentheses when there is one.
func OperatorText(sel *selection.Selection) string {
	if sel == nil || sel.OperatorName == "" {
		return NoOperator
	}
	if sel.ChannelName == "" {
		return sel.OperatorName
	}
	return sel.OperatorName + " (" + sel.ChannelName + ")"
}

// Patched returns the row as it should look once status was confirmed.
func (r Row) Patched(status ledger.Status, sel *selection.Selection) Row {
	r.Status = status
	if status == ledger.StatusDone {
		r.OperatorText = OperatorText(sel)
	} else {
		r.OperatorText = NoOperator
	}
	return r
}

// ActivationKind says what activating a row's toggle does.
type ActivationKind int

const (
	// OpenDialog asks for an attribution before marking done.
	OpenDialog ActivationKind = iota
	// UpdateNow marks pending without a dialog.
	UpdateNow
)

// Activation is the result of pressing a row's toggle.
type Activation struct {
	Kind     ActivationKind
	RecordID int64
	Target   ledger.Status
}

// Activate decides how a toggle on row proceeds.
func Activate(row Row) Activation {
	if row.Status == ledger.StatusDone {
		return Activation{Kind: UpdateNow, RecordID: row.ID, Target: ledger.StatusPending}
	}
	return Activation{Kind: OpenDialog, RecordID: row.ID, Target: ledger.StatusDone}
}

// Updater is the subset of the ledger API the toggle needs.
type Updater interface {
	UpdateRecord(ctx context.Context, req ledger.UpdateRecordRequest) error
}

// Result reports a finished status update.
type Result struct {
	RecordID  int64
	Status    ledger.Status
	Selection *selection.Selection
	Err       error
}

// Toggler issues status updates.
type Toggler struct {
	api     Updater
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewToggler returns a Toggler writing through api. m may be nil.
func NewToggler(api Updater, m *metrics.Metrics, logger *slog.Logger) *Toggler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Toggler{api: api, metrics: m, logger: logger}
}

// BuildRequest assembles the update body. A nil or self selection sends null
// operator and channel ids.
func BuildRequest(recordID int64, status ledger.Status, sel *selection.Selection) ledger.UpdateRecordRequest {
	req := ledger.UpdateRecordRequest{RecordID: recordID, Status: status}
	if sel != nil && !sel.IsSelf() {
		req.OperatorID = sel.OperatorID
		req.ChannelID = sel.ChannelID
	}
	return req
}

// UpdateStatus posts the new status for recordID. Nothing is patched here;
// callers apply the Result only when Err is nil.
func (t *Toggler) UpdateStatus(ctx context.Context, recordID int64, status ledger.Status, sel *selection.Selection) Result {
	err := t.api.UpdateRecord(ctx, BuildRequest(recordID, status, sel))
	outcome := "ok"
	if err != nil {
		outcome = ledger.Classify(err).String()
		t.logger.Error("record update failed",
			"record_id", recordID,
			"status", status,
			"kind", outcome,
			"err", err)
	} else {
		t.logger.Info("record updated",
			"record_id", recordID,
			"status", status,
			"operator", OperatorText(sel))
	}
	t.metrics.ObserveToggle(string(status), outcome)
	return Result{RecordID: recordID, Status: status, Selection: sel, Err: err}
}

// MarkDone completes recordID with the resolved selection.
func (t *Toggler) MarkDone(ctx context.Context, recordID int64, sel selection.Selection) Result {
	return t.UpdateStatus(ctx, recordID, ledger.StatusDone, &sel)
}

// MarkPending reverts recordID and clears its attribution.
func (t *Toggler) MarkPending(ctx context.Context, recordID int64) Result {
	return t.UpdateStatus(ctx, recordID, ledger.StatusPending, nil)
}

// ApplyResult patches the row res refers to when the update succeeded and
// reports whether anything changed.
func ApplyResult(rows []Row, res Result) bool {
	if res.Err != nil {
		return false
	}
	for i := range rows {
		if rows[i].ID == res.RecordID {
			rows[i] = rows[i].Patched(res.Status, res.Selection)
			return true
		}
	}
	return false
}

package selection

import (
	"strings"

	"github.com/five82/ledgerdesk/internal/directory"
	"github.com/five82/ledgerdesk/internal/ledger"
)

// State is the dialog's position in the selection flow.
type State int

const (
	Closed State = iota
	ListVisible
	ChannelVisible
	NewOperatorForm
	Resolved
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case ListVisible:
		return "list"
	case ChannelVisible:
		return "channel"
	case NewOperatorForm:
		return "new-operator"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Ticket identifies one Open call. Results carrying an older ticket are
// ignored.
type Ticket uint64

// Selection is the resolved attribution for a record. A nil OperatorID means
// self-operated; an empty name means none was given.
type Selection struct {
	OperatorID   *int64
	OperatorName string
	ChannelID    *int64
	ChannelName  string
}

// Self returns the self-operated selection labelled with label.
func Self(label string) Selection {
	return Selection{OperatorName: label}
}

// ForOperator attributes a record to op, optionally through ch.
func ForOperator(op ledger.Operator, ch *ledger.Channel) Selection {
	id := op.ID
	sel := Selection{OperatorID: &id, OperatorName: op.Name}
	if ch != nil {
		chID := ch.ID
		sel.ChannelID = &chID
		sel.ChannelName = ch.Name
	}
	return sel
}

// IsSelf reports whether the selection carries no operator id.
func (s Selection) IsSelf() bool {
	return s.OperatorID == nil
}

// OptionKind distinguishes the entries of the operator list.
type OptionKind int

const (
	OptionSelf OptionKind = iota
	OptionOperator
	OptionCreate
)

// Option is one row of the operator list.
type Option struct {
	Kind     OptionKind
	Label    string
	Operator ledger.Operator
}

// Outcome is what an Open call resolves to: a selection, or a cancellation.
type Outcome struct {
	Ticket    Ticket
	RecordID  int64
	Selection Selection
	Cancelled bool
}

// SaveRequest asks the caller to create an operator on behalf of the dialog.
type SaveRequest struct {
	Ticket   Ticket
	Name     string
	Channels []string
}

// CreateLabel is the synthetic list entry that opens the new-operator form.
const CreateLabel = "+ New operator"

// Dialog is the operator/channel selection state machine. It performs no I/O;
// the caller runs saves and feeds results back with the ticket they carried.
// Dialog is not safe for concurrent use.
type Dialog struct {
	selfLabel string

	state    State
	ticket   Ticket
	issued   Ticket
	recordID int64

	options []Option
	cursor  int

	operator ledger.Operator

	formName     string
	formChannels string
	saving       bool
	err          string
}

// New returns a closed dialog. selfLabel names the self-operated option and
// the operator name recorded when it is chosen.
func New(selfLabel string) *Dialog {
	return &Dialog{selfLabel: selfLabel}
}

// Open shows the operator list for recordID. A dialog that is already open is
// superseded and its ticket goes stale.
func (d *Dialog) Open(recordID int64, operators []ledger.Operator) Ticket {
	d.reset()
	d.issued++
	d.ticket = d.issued
	d.recordID = recordID
	d.setOperators(operators)
	d.state = ListVisible
	return d.ticket
}

// Visible reports whether the modal is on screen.
func (d *Dialog) Visible() bool {
	switch d.state {
	case ListVisible, ChannelVisible, NewOperatorForm:
		return true
	default:
		return false
	}
}

// MoveCursor moves the highlight within the visible list, clamping at the
// ends.
func (d *Dialog) MoveCursor(delta int) {
	n := d.listLen()
	if n == 0 {
		return
	}
	d.cursor += delta
	if d.cursor < 0 {
		d.cursor = 0
	}
	if d.cursor >= n {
		d.cursor = n - 1
	}
}

// Confirm chooses the highlighted entry.
func (d *Dialog) Confirm() (Outcome, bool) {
	return d.Choose(d.cursor)
}

// Choose picks entry index of the visible list. It returns an outcome when the
// choice resolves the dialog.
func (d *Dialog) Choose(index int) (Outcome, bool) {
	switch d.state {
	case ListVisible:
		if index < 0 || index >= len(d.options) {
			return Outcome{}, false
		}
		d.cursor = index
		opt := d.options[index]
		switch opt.Kind {
		case OptionSelf:
			return d.resolve(Self(d.selfLabel)), true
		case OptionCreate:
			d.state = NewOperatorForm
			d.err = ""
			return Outcome{}, false
		default:
			if len(opt.Operator.Channels) == 0 {
				return d.resolve(ForOperator(opt.Operator, nil)), true
			}
			d.operator = opt.Operator
			d.cursor = 0
			d.state = ChannelVisible
			return Outcome{}, false
		}
	case ChannelVisible:
		if index < 0 || index >= len(d.operator.Channels) {
			return Outcome{}, false
		}
		ch := d.operator.Channels[index]
		return d.resolve(ForOperator(d.operator, &ch)), true
	default:
		return Outcome{}, false
	}
}

// Back steps from the channel list or the new-operator form to the operator
// list. The form is cleared.
func (d *Dialog) Back() bool {
	switch d.state {
	case ChannelVisible:
		d.cursor = d.operatorIndex(d.operator.ID)
		d.operator = ledger.Operator{}
		d.state = ListVisible
		return true
	case NewOperatorForm:
		d.clearForm()
		d.cursor = len(d.options) - 1
		d.state = ListVisible
		return true
	default:
		return false
	}
}

// SetForm records the new-operator form fields. channels is a comma separated
// list.
func (d *Dialog) SetForm(name, channels string) {
	if d.state != NewOperatorForm {
		return
	}
	d.formName = name
	d.formChannels = channels
}

// Submit validates the form and returns the save the caller should run. On a
// validation failure the error is also kept for inline display.
func (d *Dialog) Submit() (SaveRequest, error) {
	if d.state != NewOperatorForm {
		return SaveRequest{}, ledger.Validation("new operator form is not open")
	}
	name, err := directory.ValidateName(d.formName)
	if err != nil {
		d.err = ledger.Message(err, err.Error())
		return SaveRequest{}, err
	}
	d.saving = true
	d.err = ""
	return SaveRequest{Ticket: d.ticket, Name: name, Channels: ParseChannels(d.formChannels)}, nil
}

// SaveSucceeded returns the dialog to the operator list with the refreshed
// operators and the new one highlighted. The dialog does not resolve. It
// reports false when ticket is stale.
func (d *Dialog) SaveSucceeded(ticket Ticket, operatorID int64, operators []ledger.Operator) bool {
	if !d.current(ticket) {
		return false
	}
	d.clearForm()
	d.operator = ledger.Operator{}
	d.setOperators(operators)
	d.cursor = d.operatorIndex(operatorID)
	d.state = ListVisible
	return true
}

// SaveFailed keeps the form open with message shown inline. It reports false
// when ticket is stale.
func (d *Dialog) SaveFailed(ticket Ticket, message string) bool {
	if !d.current(ticket) {
		return false
	}
	d.saving = false
	d.err = message
	return true
}

// Close hides the dialog from any state. When a selection was still pending
// it returns a cancelled outcome. Calling Close again is a no-op.
func (d *Dialog) Close() (Outcome, bool) {
	if !d.Visible() {
		d.reset()
		d.state = Closed
		return Outcome{}, false
	}
	out := Outcome{Ticket: d.ticket, RecordID: d.recordID, Cancelled: true}
	d.reset()
	d.state = Closed
	return out, true
}

func (d *Dialog) State() State { return d.state }
func (d *Dialog) Ticket() Ticket { return d.ticket }
func (d *Dialog) RecordID() int64 { return d.recordID }
func (d *Dialog) Cursor() int { return d.cursor }
func (d *Dialog) Operator() ledger.Operator { return d.operator }
func (d *Dialog) FormName() string { return d.formName }
func (d *Dialog) FormChannels() string { return d.formChannels }
func (d *Dialog) Saving() bool { return d.saving }
func (d *Dialog) Err() string { return d.err }
func (d *Dialog) SelfLabel() string { return d.selfLabel }

// Options returns the operator list entries, self first and create last.
func (d *Dialog) Options() []Option {
	dup := make([]Option, len(d.options))
	copy(dup, d.options)
	return dup
}

// ParseChannels splits a comma separated channel list, dropping blanks.
func ParseChannels(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '，'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (d *Dialog) resolve(sel Selection) Outcome {
	out := Outcome{Ticket: d.ticket, RecordID: d.recordID, Selection: sel}
	d.reset()
	d.state = Resolved
	return out
}

func (d *Dialog) current(ticket Ticket) bool {
	return ticket != 0 && ticket == d.ticket && d.Visible()
}

func (d *Dialog) setOperators(operators []ledger.Operator) {
	d.options = make([]Option, 0, len(operators)+2)
	d.options = append(d.options, Option{Kind: OptionSelf, Label: d.selfLabel})
	for _, op := range operators {
		d.options = append(d.options, Option{Kind: OptionOperator, Label: op.Name, Operator: op})
	}
	d.options = append(d.options, Option{Kind: OptionCreate, Label: CreateLabel})
}

func (d *Dialog) operatorIndex(id int64) int {
	for i, opt := range d.options {
		if opt.Kind == OptionOperator && opt.Operator.ID == id {
			return i
		}
	}
	return 0
}

func (d *Dialog) listLen() int {
	switch d.state {
	case ListVisible:
		return len(d.options)
	case ChannelVisible:
		return len(d.operator.Channels)
	default:
		return 0
	}
}

func (d *Dialog) clearForm() {
	d.formName = ""
	d.formChannels = ""
	d.saving = false
	d.err = ""
}

// reset drops transient state. The ticket counter survives so tickets stay
// unique across opens.
func (d *Dialog) reset() {
	d.clearForm()
	d.ticket = 0
	d.recordID = 0
	d.options = nil
	d.operator = ledger.Operator{}
	d.cursor = 0
}

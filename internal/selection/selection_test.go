package selection

import (
	"testing"

	"github.com/five82/ledgerdesk/internal/ledger"
)

func sampleOperators() []ledger.Operator {
	return []ledger.Operator{
		{ID: 3, Name: "Alice", Channels: []ledger.Channel{{ID: 1, Name: "WeChat"}, {ID: 2, Name: "Alipay"}}},
		{ID: 5, Name: "Bob"},
	}
}

func TestOpen_ListsSelfOperatorsAndCreate(t *testing.T) {
	d := New("Self")
	if d.State() != Closed || d.Visible() {
		t.Fatalf("new dialog state = %v, want closed", d.State())
	}

	ticket := d.Open(42, sampleOperators())
	if ticket == 0 {
		t.Fatalf("Open returned zero ticket")
	}
	if d.State() != ListVisible || d.RecordID() != 42 {
		t.Fatalf("state=%v record=%d, want list/42", d.State(), d.RecordID())
	}

	opts := d.Options()
	if len(opts) != 4 {
		t.Fatalf("len(options) = %d, want 4", len(opts))
	}
	if opts[0].Kind != OptionSelf || opts[0].Label != "Self" {
		t.Fatalf("first option = %#v, want self", opts[0])
	}
	if opts[3].Kind != OptionCreate {
		t.Fatalf("last option = %#v, want create", opts[3])
	}
}

func TestChoose_SelfResolvesWithNullIDs(t *testing.T) {
	d := New("Self")
	ticket := d.Open(42, sampleOperators())

	out, ok := d.Choose(0)
	if !ok {
		t.Fatalf("Choose(self) did not resolve")
	}
	if out.Ticket != ticket || out.RecordID != 42 || out.Cancelled {
		t.Fatalf("outcome = %#v", out)
	}
	if !out.Selection.IsSelf() || out.Selection.ChannelID != nil || out.Selection.OperatorName != "Self" {
		t.Fatalf("selection = %#v, want self", out.Selection)
	}
	if d.State() != Resolved || d.Visible() {
		t.Fatalf("state = %v, want resolved", d.State())
	}
}

func TestChoose_OperatorWithChannelsThenChannel(t *testing.T) {
	d := New("Self")
	d.Open(7, sampleOperators())

	if _, ok := d.Choose(1); ok {
		t.Fatalf("choosing Alice resolved without a channel")
	}
	if d.State() != ChannelVisible || d.Operator().ID != 3 {
		t.Fatalf("state=%v operator=%d, want channel/3", d.State(), d.Operator().ID)
	}

	d.MoveCursor(5)
	if d.Cursor() != 1 {
		t.Fatalf("cursor = %d, want clamped to 1", d.Cursor())
	}
	d.MoveCursor(-1)

	out, ok := d.Confirm()
	if !ok {
		t.Fatalf("Confirm did not resolve")
	}
	sel := out.Selection
	if sel.OperatorID == nil || *sel.OperatorID != 3 || sel.ChannelID == nil || *sel.ChannelID != 1 {
		t.Fatalf("selection = %#v, want operator 3 channel 1", sel)
	}
	if sel.OperatorName != "Alice" || sel.ChannelName != "WeChat" {
		t.Fatalf("selection names = %q/%q", sel.OperatorName, sel.ChannelName)
	}
}

func TestChoose_OperatorWithoutChannelsResolves(t *testing.T) {
	d := New("Self")
	d.Open(9, sampleOperators())

	out, ok := d.Choose(2)
	if !ok {
		t.Fatalf("choosing Bob did not resolve")
	}
	if out.Selection.OperatorID == nil || *out.Selection.OperatorID != 5 || out.Selection.ChannelID != nil {
		t.Fatalf("selection = %#v, want operator 5 without channel", out.Selection)
	}
}

func TestBack_FromChannelAndForm(t *testing.T) {
	d := New("Self")
	d.Open(1, sampleOperators())

	d.Choose(1)
	if !d.Back() || d.State() != ListVisible || d.Cursor() != 1 {
		t.Fatalf("Back from channel: state=%v cursor=%d", d.State(), d.Cursor())
	}

	d.Choose(3)
	if d.State() != NewOperatorForm {
		t.Fatalf("state = %v, want form", d.State())
	}
	d.SetForm("Carol", "Bank")
	if !d.Back() || d.State() != ListVisible {
		t.Fatalf("Back from form: state=%v", d.State())
	}
	if d.FormName() != "" || d.FormChannels() != "" {
		t.Fatalf("form not cleared: %q %q", d.FormName(), d.FormChannels())
	}
	if d.Back() {
		t.Fatalf("Back from list reported a transition")
	}
}

func TestSubmit_ValidatesName(t *testing.T) {
	d := New("Self")
	d.Open(1, nil)
	d.Choose(1)

	d.SetForm("   ", "")
	_, err := d.Submit()
	if ledger.Classify(err) != ledger.KindValidation {
		t.Fatalf("Submit error = %v, want validation", err)
	}
	if d.State() != NewOperatorForm || d.Err() == "" || d.Saving() {
		t.Fatalf("after invalid submit: state=%v err=%q saving=%v", d.State(), d.Err(), d.Saving())
	}
}

func TestSaveSucceeded_ReturnsToListWithoutResolving(t *testing.T) {
	d := New("Self")
	ticket := d.Open(1, sampleOperators())
	d.Choose(3)
	d.SetForm(" Carol ", "Bank, ,Card")

	req, err := d.Submit()
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if req.Ticket != ticket || req.Name != "Carol" || len(req.Channels) != 2 {
		t.Fatalf("SaveRequest = %#v", req)
	}
	if !d.Saving() {
		t.Fatalf("Saving = false after submit")
	}

	refreshed := append(sampleOperators(), ledger.Operator{ID: 77, Name: "Carol"})
	if !d.SaveSucceeded(req.Ticket, 77, refreshed) {
		t.Fatalf("SaveSucceeded rejected current ticket")
	}
	if d.State() != ListVisible {
		t.Fatalf("state = %v, want list (no auto-resolve)", d.State())
	}
	opts := d.Options()
	if got := opts[d.Cursor()]; got.Operator.ID != 77 {
		t.Fatalf("cursor on %#v, want new operator", got)
	}

	out, ok := d.Confirm()
	if !ok || out.Selection.OperatorID == nil || *out.Selection.OperatorID != 77 {
		t.Fatalf("selecting new operator = %#v, %v; want id 77", out, ok)
	}
}

func TestSaveFailed_KeepsForm(t *testing.T) {
	d := New("Self")
	ticket := d.Open(1, nil)
	d.Choose(1)
	d.SetForm("Dup", "")
	if _, err := d.Submit(); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if !d.SaveFailed(ticket, "operator already exists") {
		t.Fatalf("SaveFailed rejected current ticket")
	}
	if d.State() != NewOperatorForm || d.Err() != "operator already exists" || d.Saving() {
		t.Fatalf("state=%v err=%q saving=%v", d.State(), d.Err(), d.Saving())
	}
	if d.FormName() != "Dup" {
		t.Fatalf("form name = %q, want kept", d.FormName())
	}
}

func TestStaleTicketsAreIgnored(t *testing.T) {
	d := New("Self")
	first := d.Open(1, nil)
	d.Choose(1)
	d.SetForm("Late", "")
	if _, err := d.Submit(); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	second := d.Open(2, sampleOperators())
	if second == first {
		t.Fatalf("tickets not unique: %d", second)
	}
	if d.SaveSucceeded(first, 9, nil) {
		t.Fatalf("stale SaveSucceeded applied")
	}
	if d.SaveFailed(first, "x") {
		t.Fatalf("stale SaveFailed applied")
	}
	if d.RecordID() != 2 || len(d.Options()) != 4 {
		t.Fatalf("second dialog disturbed: record=%d options=%d", d.RecordID(), len(d.Options()))
	}

	d.Close()
	if d.SaveSucceeded(second, 9, nil) {
		t.Fatalf("SaveSucceeded applied after close")
	}
}

func TestClose_IdempotentAndCancels(t *testing.T) {
	d := New("Self")
	ticket := d.Open(42, sampleOperators())
	d.Choose(1)

	out, ok := d.Close()
	if !ok || !out.Cancelled || out.Ticket != ticket || out.RecordID != 42 {
		t.Fatalf("Close = %#v, %v; want cancelled outcome for 42", out, ok)
	}
	if d.State() != Closed || d.Operator().ID != 0 {
		t.Fatalf("state=%v operator=%d after close", d.State(), d.Operator().ID)
	}

	if _, ok := d.Close(); ok {
		t.Fatalf("second Close produced an outcome")
	}
	if _, ok := d.Choose(0); ok {
		t.Fatalf("Choose on closed dialog resolved")
	}
}

func TestClose_FromEveryState(t *testing.T) {
	for _, tc := range []struct {
		name  string
		steps func(d *Dialog)
		want  bool
	}{
		{"list", func(d *Dialog) {}, true},
		{"channel", func(d *Dialog) { d.Choose(1) }, true},
		{"form", func(d *Dialog) { d.Choose(3); d.SetForm("x", "y") }, true},
		{"resolved", func(d *Dialog) { d.Choose(0) }, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := New("Self")
			d.Open(1, sampleOperators())
			tc.steps(d)
			if _, ok := d.Close(); ok != tc.want {
				t.Fatalf("Close outcome = %v, want %v", ok, tc.want)
			}
			if d.State() != Closed || d.FormName() != "" {
				t.Fatalf("state=%v form=%q after close", d.State(), d.FormName())
			}
		})
	}
}

func TestParseChannels(t *testing.T) {
	got := ParseChannels(" WeChat，Alipay ,, Bank ")
	if len(got) != 3 || got[0] != "WeChat" || got[1] != "Alipay" || got[2] != "Bank" {
		t.Fatalf("ParseChannels = %#v", got)
	}
	if ParseChannels("  ") != nil {
		t.Fatalf("ParseChannels(blank) should be nil")
	}
}

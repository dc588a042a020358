package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/five82/ledgerdesk/internal/ledger"
	"github.com/five82/ledgerdesk/internal/records"
)

var (
	successMark  = color.New(color.FgGreen).Sprint("✓")
	doneColor    = color.New(color.FgGreen, color.Bold)
	pendingColor = color.New(color.FgRed, color.Bold)
	faintColor   = color.New(color.FgHiBlack)
)

func formatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func statusWord(status ledger.Status, labels records.Labels) string {
	if status == ledger.StatusDone {
		return doneColor.Sprint(labels.Done)
	}
	return pendingColor.Sprint(labels.Pending)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printRows(w io.Writer, rows []records.Row, labels records.Labels) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tAMOUNT\tSTATUS\tOPERATOR")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Date, formatAmount(r.Amount), statusWord(r.Status, labels), r.OperatorText)
	}
	return tw.Flush()
}

func printOperators(w io.Writer, ops []ledger.Operator) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCHANNELS")
	for _, op := range ops {
		channels := faintColor.Sprint("-")
		if len(op.Channels) > 0 {
			channels = ""
			for i, ch := range op.Channels {
				if i > 0 {
					channels += ", "
				}
				channels += fmt.Sprintf("%s (#%d)", ch.Name, ch.ID)
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", op.ID, op.Name, channels)
	}
	return tw.Flush()
}

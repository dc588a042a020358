package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/ledgerdesk/internal/ledger"
	"github.com/five82/ledgerdesk/internal/records"
	"github.com/five82/ledgerdesk/internal/selection"
)

func newRecordsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List records and change their status",
	}
	cmd.AddCommand(newRecordsListCmd(g))
	cmd.AddCommand(newRecordsDoneCmd(g))
	cmd.AddCommand(newRecordsPendingCmd(g))
	return cmd
}

func newRecordsListCmd(g *globalFlags) *cobra.Command {
	var from, to, status string
	var today bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := records.NewFilter(from, to, status, time.Local)
			if err != nil {
				return err
			}
			if today {
				if from != "" || to != "" {
					return fmt.Errorf("--today cannot be combined with --from or --to")
				}
				filter = records.Today(time.Now(), filter.Status)
			}

			deps, err := g.build(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			recs, err := deps.Client.ListRecords(cmd.Context(), filter.Query())
			if err != nil {
				return fmt.Errorf("list records: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintf(out, "No records (%s)\n", filter.Describe())
				return nil
			}
			labels := records.Labels{Done: deps.Config.DoneLabel, Pending: deps.Config.PendingLabel}
			return printRows(out, records.RowsFromRecords(recs), labels)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&today, "today", false, "only today's records")
	cmd.Flags().StringVar(&status, "status", "", "all, pending, or done")
	return cmd
}

func newRecordsDoneCmd(g *globalFlags) *cobra.Command {
	var operator, channel string
	var self bool
	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a record done",
		Long: `Mark a record done and attribute it. Pass --self for a self-operated
record, or --operator with an optional --channel. Operators and channels
may be given by id or by name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			if self == (operator != "") {
				return fmt.Errorf("pass exactly one of --self or --operator")
			}
			if self && channel != "" {
				return fmt.Errorf("--channel needs --operator")
			}

			deps, err := g.build(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			sel := selection.Self(deps.Config.SelfLabel)
			if !self {
				if err := deps.Directory.Load(cmd.Context()); err != nil {
					return fmt.Errorf("list operators: %w", err)
				}
				sel, err = resolveSelection(deps.Directory.Operators(), operator, channel)
				if err != nil {
					return err
				}
			}

			res := deps.Toggler.MarkDone(cmd.Context(), recordID, sel)
			if res.Err != nil {
				return fmt.Errorf("update record %d: %w", recordID, res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Record %d marked %s by %s\n",
				successMark, recordID, statusWord(ledger.StatusDone, labelsOf(deps.Config.DoneLabel, deps.Config.PendingLabel)),
				records.OperatorText(&sel))
			return nil
		},
	}
	cmd.Flags().BoolVar(&self, "self", false, "self-operated")
	cmd.Flags().StringVar(&operator, "operator", "", "operator id or name")
	cmd.Flags().StringVar(&channel, "channel", "", "channel id or name (requires --operator)")
	return cmd
}

func newRecordsPendingCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pending ID",
		Short: "Mark a record pending and clear its attribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			deps, err := g.build(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			res := deps.Toggler.MarkPending(cmd.Context(), recordID)
			if res.Err != nil {
				return fmt.Errorf("update record %d: %w", recordID, res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Record %d marked %s\n",
				successMark, recordID, statusWord(ledger.StatusPending, labelsOf(deps.Config.DoneLabel, deps.Config.PendingLabel)))
			return nil
		},
	}
}

func labelsOf(done, pending string) records.Labels {
	return records.Labels{Done: done, Pending: pending}
}

func parseRecordID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", value)
	}
	return id, nil
}

// resolveSelection finds the operator and optional channel named by the
// flags. A channel must belong to the operator.
func resolveSelection(ops []ledger.Operator, operator, channel string) (selection.Selection, error) {
	op, ok := findOperator(ops, operator)
	if !ok {
		return selection.Selection{}, fmt.Errorf("unknown operator %q", operator)
	}
	if strings.TrimSpace(channel) == "" {
		return selection.ForOperator(op, nil), nil
	}
	ch, ok := findChannel(op, channel)
	if !ok {
		return selection.Selection{}, fmt.Errorf("operator %q has no channel %q", op.Name, channel)
	}
	return selection.ForOperator(op, &ch), nil
}

func findOperator(ops []ledger.Operator, ref string) (ledger.Operator, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for _, op := range ops {
			if op.ID == id {
				return op, true
			}
		}
	}
	for _, op := range ops {
		if strings.EqualFold(op.Name, ref) {
			return op, true
		}
	}
	return ledger.Operator{}, false
}

func findChannel(op ledger.Operator, ref string) (ledger.Channel, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if ch, ok := op.Channel(id); ok {
			return ch, true
		}
	}
	for _, ch := range op.Channels {
		if strings.EqualFold(ch.Name, ref) {
			return ch, true
		}
	}
	return ledger.Channel{}, false
}

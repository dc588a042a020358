package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completed and pending totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := g.build(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			stats, err := deps.Client.FetchStats(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch stats: %w", err)
			}

			cfg := deps.Config
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "%s\t%s\t(%d)\n", doneColor.Sprint(cfg.DoneLabel), formatAmount(stats.Completed), stats.CompletedCount)
			fmt.Fprintf(tw, "%s\t%s\t(%d)\n", pendingColor.Sprint(cfg.PendingLabel), formatAmount(stats.Pending), stats.PendingCount)
			fmt.Fprintf(tw, "Progress\t%.1f%%\t\n", stats.Progress)
			return tw.Flush()
		},
	}
}

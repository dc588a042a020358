package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newOperatorsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operators",
		Aliases: []string{"ops"},
		Short:   "List and add operators",
	}
	cmd.AddCommand(newOperatorsListCmd(g))
	cmd.AddCommand(newOperatorsAddCmd(g))
	return cmd
}

func newOperatorsListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List operators and their channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := g.build(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			if err := deps.Directory.Load(cmd.Context()); err != nil {
				return fmt.Errorf("list operators: %w", err)
			}
			ops := deps.Directory.Operators()
			if len(ops) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No operators")
				return nil
			}
			return printOperators(cmd.OutOrStdout(), ops)
		},
	}
}

func newOperatorsAddCmd(g *globalFlags) *cobra.Command {
	var channels []string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an operator",
		Long: `Add an operator by name. Repeat --channel to create payment channels
with it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := g.build(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			name := strings.TrimSpace(args[0])
			id, err := deps.Directory.Save(cmd.Context(), name, channels...)
			if err != nil {
				return fmt.Errorf("add operator: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added operator %d: %s\n", successMark, id, name)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&channels, "channel", nil, "payment channel to create with the operator (repeatable)")
	return cmd
}

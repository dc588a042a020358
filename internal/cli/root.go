package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/ledgerdesk/internal/app"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath    string
	prefsPath     string
	environment   string
	baseURL       string
	role          string
	logLevel      string
	metricsAddr   string
	statsInterval int
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath:  g.configPath,
		PrefsPath:   g.prefsPath,
		Environment: g.environment,
		BaseURL:     g.baseURL,
		Role:        g.role,
		LogLevel:    g.logLevel,
		MetricsAddr: g.metricsAddr,
		StatsEvery:  g.statsInterval,
	}
}

// build wires dependencies for a one-shot command. Logs go to stderr at warn
// unless --log-level says otherwise.
func (g *globalFlags) build(cmd *cobra.Command) (*app.Deps, error) {
	opts := g.options()
	opts.LogWriter = cmd.ErrOrStderr()
	if opts.LogLevel == "" {
		opts.LogLevel = "warn"
	}
	return app.Build(opts)
}

// NewRootCmd returns the ledgerdesk command tree. Without a subcommand it
// starts the TUI.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "ledgerdesk",
		Short: "Terminal client for the ledger service",
		Long: `ledgerdesk lists ledger records, toggles them between pending and done,
and attributes completed records to an operator and payment channel.

Run without a subcommand to open the interactive UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), g.options())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default ~/.config/ledgerdesk/config.toml)")
	flags.StringVar(&g.prefsPath, "prefs", "", "preferences file (default ~/.config/ledgerdesk/prefs.toml)")
	flags.StringVar(&g.environment, "env", "", "API environment: development or production")
	flags.StringVar(&g.baseURL, "base-url", "", "API root, overrides the environment URL")
	flags.StringVar(&g.role, "role", "", "operator list scope: customer or admin")
	flags.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&g.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flags.IntVar(&g.statsInterval, "stats-interval", 0, "summary refresh interval in seconds")

	root.AddCommand(newOperatorsCmd(g))
	root.AddCommand(newRecordsCmd(g))
	root.AddCommand(newStatsCmd(g))
	return root
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/ledgerdesk/internal/config"
	"github.com/five82/ledgerdesk/internal/directory"
	"github.com/five82/ledgerdesk/internal/ledger"
	"github.com/five82/ledgerdesk/internal/logging"
	"github.com/five82/ledgerdesk/internal/metrics"
	"github.com/five82/ledgerdesk/internal/prefs"
	"github.com/five82/ledgerdesk/internal/records"
	"github.com/five82/ledgerdesk/internal/state"
	"github.com/five82/ledgerdesk/internal/ui"
)

// Options configure the ledgerdesk application. Non-empty fields override the
// config file.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/ledgerdesk/prefs.toml
	Environment string
	BaseURL     string
	Role        string
	LogLevel    string
	MetricsAddr string
	StatsEvery  int // seconds; zero uses the config value

	// LogWriter replaces the log file when set. CLI commands log here.
	LogWriter io.Writer
}

// Deps holds the wired components shared by the TUI and the CLI commands.
type Deps struct {
	Config    config.Config
	Logger    *slog.Logger
	Registry  *prometheus.Registry
	Metrics   *metrics.Metrics
	Client    *ledger.Client
	Directory *directory.Directory
	Toggler   *records.Toggler

	closers []io.Closer
}

// Close releases the log file.
func (d *Deps) Close() {
	for _, c := range d.closers {
		_ = c.Close()
	}
	d.closers = nil
}

// Build loads configuration and wires the API client, operator directory,
// and status toggler.
func Build(opts Options) (*Deps, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return nil, err
	}
	apiURL, err := cfg.ResolveAPIURL()
	if err != nil {
		return nil, fmt.Errorf("resolve api url: %w", err)
	}

	deps := &Deps{Config: cfg}

	logger := logging.Discard()
	switch {
	case opts.LogWriter != nil:
		logger, _ = logging.New(opts.LogWriter, cfg.LogLevel)
	case cfg.LogFile != "":
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, f)
		logger, _ = logging.New(f, cfg.LogLevel)
	}
	deps.Logger = logger

	deps.Registry = prometheus.NewRegistry()
	deps.Metrics = metrics.New(deps.Registry)

	client, err := ledger.NewClient(apiURL,
		ledger.WithTimeout(cfg.RequestTimeout),
		ledger.WithMetrics(deps.Metrics),
		ledger.WithLogger(logger),
	)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("init ledger client: %w", err)
	}
	deps.Client = client
	deps.Directory = directory.New(client, cfg.Role, logger).WithMetrics(deps.Metrics)
	deps.Toggler = records.NewToggler(client, deps.Metrics, logger)

	logger.Info("ledger api configured",
		"environment", string(cfg.Environment),
		"url", apiURL,
		"local", cfg.IsLocalAPI(),
		"role", string(cfg.Role),
	)
	return deps, nil
}

func applyOverrides(cfg *config.Config, opts Options) error {
	if env := strings.ToLower(strings.TrimSpace(opts.Environment)); env != "" {
		switch config.Environment(env) {
		case config.Development, config.Production:
			cfg.Environment = config.Environment(env)
		default:
			return fmt.Errorf("unknown environment %q", opts.Environment)
		}
	}
	if u := strings.TrimSpace(opts.BaseURL); u != "" {
		cfg.BaseURL = u
	}
	if strings.TrimSpace(opts.Role) != "" {
		role, err := ledger.ParseRole(opts.Role)
		if err != nil {
			return err
		}
		cfg.Role = role
	}
	if lvl := strings.TrimSpace(opts.LogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	if addr := strings.TrimSpace(opts.MetricsAddr); addr != "" {
		cfg.MetricsAddr = addr
	}
	if opts.StatsEvery > 0 {
		cfg.StatsInterval = time.Duration(opts.StatsEvery) * time.Second
	}
	return nil
}

// Run boots the ledgerdesk TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	deps, err := Build(opts)
	if err != nil {
		return err
	}
	defer deps.Close()

	cfg := deps.Config
	logger := deps.Logger

	if cfg.MetricsAddr != "" {
		metrics.Serve(ctx, cfg.MetricsAddr, deps.Registry, logger)
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	store := &state.Store{}
	StartPoller(ctx, store, deps.Client, cfg.StatsInterval, logger)

	uiOpts := ui.Options{
		Context:   ctx,
		Records:   deps.Client,
		Directory: deps.Directory,
		Toggler:   deps.Toggler,
		Store:     store,
		Stats:     deps.Client,
		Logger:    logger,
		Filter:    records.Filter{Status: userPrefs.Status()},
		Labels:    records.Labels{Done: cfg.DoneLabel, Pending: cfg.PendingLabel},
		SelfLabel: cfg.SelfLabel,
		APIURL:    cfg.APIURL(),
		LogFile:   cfg.LogFile,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
	}
	logger.Info("starting ui", "theme", userPrefs.Theme, "status_filter", userPrefs.StatusFilter)
	return ui.Run(uiOpts)
}

package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/ledgerdesk/internal/ledger"
)

// Environment names an API deployment.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Config holds ledgerdesk's settings after defaults and expansion.
type Config struct {
	Environment    Environment
	BaseURL        string
	DevelopmentURL string
	ProductionURL  string
	Role           ledger.Role
	SelfLabel      string
	DoneLabel      string
	PendingLabel   string
	StatsInterval  time.Duration
	RequestTimeout time.Duration
	LogFile        string
	LogLevel       string
	MetricsAddr    string
}

const (
	defaultConfigPath     = "~/.config/ledgerdesk/config.toml"
	defaultLogFile        = "~/.local/share/ledgerdesk/ledgerdesk.log"
	defaultDevelopmentURL = "http://localhost:5000/api"
	defaultSelfLabel      = "Self"
	defaultDoneLabel      = "Done"
	defaultPendingLabel   = "Pending"
	defaultLogLevel       = "info"
	defaultStatsInterval  = 30 * time.Second
)

type rawConfig struct {
	Environment           string `toml:"environment"`
	Role                  string `toml:"role"`
	SelfLabel             string `toml:"self_label"`
	DoneLabel             string `toml:"done_label"`
	PendingLabel          string `toml:"pending_label"`
	StatsIntervalSeconds  int    `toml:"stats_interval_seconds"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	LogFile               string `toml:"log_file"`
	LogLevel              string `toml:"log_level"`
	MetricsAddr           string `toml:"metrics_addr"`
	API                   struct {
		BaseURL     string `toml:"base_url"`
		Development string `toml:"development"`
		Production  string `toml:"production"`
	} `toml:"api"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Environment:    Development,
		DevelopmentURL: defaultDevelopmentURL,
		Role:           ledger.RoleCustomer,
		SelfLabel:      defaultSelfLabel,
		DoneLabel:      defaultDoneLabel,
		PendingLabel:   defaultPendingLabel,
		StatsInterval:  defaultStatsInterval,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// Load locates and parses the ledgerdesk config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if env := strings.ToLower(strings.TrimSpace(raw.Environment)); env != "" {
		switch Environment(env) {
		case Development, Production:
			cfg.Environment = Environment(env)
		default:
			return Config{}, fmt.Errorf("parse config: unknown environment %q", raw.Environment)
		}
	}

	role, err := ledger.ParseRole(raw.Role)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Role = role

	cfg.BaseURL = strings.TrimSpace(raw.API.BaseURL)
	if dev := strings.TrimSpace(raw.API.Development); dev != "" {
		cfg.DevelopmentURL = dev
	}
	cfg.ProductionURL = strings.TrimSpace(raw.API.Production)

	cfg.SelfLabel = orDefault(raw.SelfLabel, defaultSelfLabel)
	cfg.DoneLabel = orDefault(raw.DoneLabel, defaultDoneLabel)
	cfg.PendingLabel = orDefault(raw.PendingLabel, defaultPendingLabel)
	cfg.LogLevel = orDefault(raw.LogLevel, defaultLogLevel)
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	if raw.StatsIntervalSeconds > 0 {
		cfg.StatsInterval = time.Duration(raw.StatsIntervalSeconds) * time.Second
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	return cfg, nil
}

// ResolveAPIURL returns the API root: base_url when set, otherwise the URL for
// the selected environment.
func (c Config) ResolveAPIURL() (string, error) {
	if c.BaseURL != "" {
		return c.BaseURL, nil
	}
	if c.Environment == Production {
		if c.ProductionURL == "" {
			return "", fmt.Errorf("environment %q selected but api.production is empty", Production)
		}
		return c.ProductionURL, nil
	}
	if c.DevelopmentURL == "" {
		return defaultDevelopmentURL, nil
	}
	return c.DevelopmentURL, nil
}

// APIURL is ResolveAPIURL without the error, for callers that have already
// resolved it once.
func (c Config) APIURL() string {
	u, err := c.ResolveAPIURL()
	if err != nil {
		return defaultDevelopmentURL
	}
	return u
}

// IsLocalAPI reports whether the API root points at this machine.
func (c Config) IsLocalAPI() bool {
	raw := c.APIURL()
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme == "file" {
		return true
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

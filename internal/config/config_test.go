package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/ledgerdesk/internal/ledger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Environment != Development {
		t.Fatalf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.APIURL() != defaultDevelopmentURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL(), defaultDevelopmentURL)
	}
	if cfg.Role != ledger.RoleCustomer {
		t.Fatalf("Role = %q, want customer", cfg.Role)
	}
	if cfg.StatsInterval != 30*time.Second || cfg.RequestTimeout != 0 {
		t.Fatalf("intervals = %v/%v, want 30s/0", cfg.StatsInterval, cfg.RequestTimeout)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if !cfg.IsLocalAPI() {
		t.Fatalf("IsLocalAPI = false for default development URL")
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
environment = " Production "
role = "admin"
self_label = "  Me  "
done_label = "已刷"
pending_label = "待刷"
stats_interval_seconds = 10
request_timeout_seconds = 5
log_file = "  ~/logs/ld.log  "
log_level = "debug"
metrics_addr = "127.0.0.1:9310"

[api]
production = "  https://ledger.example.com/api  "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Environment != Production || cfg.APIURL() != "https://ledger.example.com/api" {
		t.Fatalf("env=%q url=%q", cfg.Environment, cfg.APIURL())
	}
	if cfg.IsLocalAPI() {
		t.Fatalf("IsLocalAPI = true for production host")
	}
	if cfg.Role != ledger.RoleAdmin || cfg.SelfLabel != "Me" {
		t.Fatalf("role=%q self=%q", cfg.Role, cfg.SelfLabel)
	}
	if cfg.DoneLabel != "已刷" || cfg.PendingLabel != "待刷" {
		t.Fatalf("labels = %q/%q", cfg.DoneLabel, cfg.PendingLabel)
	}
	if cfg.StatsInterval != 10*time.Second || cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("intervals = %v/%v", cfg.StatsInterval, cfg.RequestTimeout)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" || cfg.MetricsAddr != "127.0.0.1:9310" {
		t.Fatalf("log level=%q metrics=%q", cfg.LogLevel, cfg.MetricsAddr)
	}
}

func TestLoad_BaseURLOverridesEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
environment = "production"
[api]
base_url = "127.0.0.1:8080/api"
production = "https://ledger.example.com/api"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL() != "127.0.0.1:8080/api" {
		t.Fatalf("APIURL = %q, want base_url", cfg.APIURL())
	}
	if !cfg.IsLocalAPI() {
		t.Fatalf("IsLocalAPI = false for 127.0.0.1")
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
environment = "   "
self_label = ""
log_level = " "
stats_interval_seconds = 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Environment != Development || cfg.SelfLabel != defaultSelfLabel || cfg.LogLevel != defaultLogLevel {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
	if cfg.StatsInterval != defaultStatsInterval {
		t.Fatalf("StatsInterval = %v, want default", cfg.StatsInterval)
	}
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, tc := range []struct {
		name string
		body string
	}{
		{"invalid toml", `environment = [`},
		{"unknown environment", `environment = "staging"`},
		{"unknown role", `role = "root"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatalf("Load returned nil error")
			}
			if !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
			}
		})
	}
}

func TestLoad_ProductionURLResolvedLater(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, `environment = "production"`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if _, err := cfg.ResolveAPIURL(); err == nil {
		t.Fatalf("ResolveAPIURL returned nil error without api.production")
	}

	cfg.BaseURL = "http://localhost:9000/api"
	got, err := cfg.ResolveAPIURL()
	if err != nil {
		t.Fatalf("ResolveAPIURL with base url: %v", err)
	}
	if got != "http://localhost:9000/api" {
		t.Fatalf("ResolveAPIURL = %q", got)
	}
}

func TestIsLocalAPI_FileScheme(t *testing.T) {
	cfg := Config{BaseURL: "file:///tmp/ledger"}
	if !cfg.IsLocalAPI() {
		t.Fatalf("IsLocalAPI = false for file URL")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

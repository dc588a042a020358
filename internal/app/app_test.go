package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/ledgerdesk/internal/config"
	"github.com/five82/ledgerdesk/internal/ledger"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestBuildWiresComponents(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "logs", "ledgerdesk.log")
	path := writeConfig(t, dir, `
role = "admin"
log_file = "`+logFile+`"
request_timeout_seconds = 5

[api]
development = "http://127.0.0.1:5999/api"
`)

	deps, err := Build(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer deps.Close()

	if deps.Client.BaseURL() != "http://127.0.0.1:5999/api" {
		t.Fatalf("BaseURL = %q", deps.Client.BaseURL())
	}
	if deps.Directory.Role() != ledger.RoleAdmin {
		t.Fatalf("directory role = %q, want admin", deps.Directory.Role())
	}
	if deps.Toggler == nil || deps.Metrics == nil || deps.Registry == nil {
		t.Fatalf("deps not fully wired: %+v", deps)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile(log): %v", err)
	}
	if !strings.Contains(string(data), "ledger api configured") {
		t.Fatalf("log file missing startup line: %s", data)
	}
}

func TestBuildOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
log_file = "`+filepath.Join(dir, "l.log")+`"

[api]
production = "https://ledger.example.com/api"
`)

	deps, err := Build(Options{
		ConfigPath:  path,
		Environment: "production",
		Role:        "admin",
		StatsEvery:  5,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer deps.Close()

	if deps.Config.Environment != config.Production {
		t.Fatalf("Environment = %q", deps.Config.Environment)
	}
	if deps.Client.BaseURL() != "https://ledger.example.com/api" {
		t.Fatalf("BaseURL = %q", deps.Client.BaseURL())
	}
	if deps.Config.StatsInterval != 5*time.Second {
		t.Fatalf("StatsInterval = %v", deps.Config.StatsInterval)
	}

	deps2, err := Build(Options{ConfigPath: path, BaseURL: "http://localhost:9000/api"})
	if err != nil {
		t.Fatalf("Build with base url: %v", err)
	}
	defer deps2.Close()
	if deps2.Client.BaseURL() != "http://localhost:9000/api" {
		t.Fatalf("BaseURL override = %q", deps2.Client.BaseURL())
	}
}

func TestBuildBaseURLCoversMissingProductionURL(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
environment = "production"
log_file = "`+filepath.Join(dir, "l.log")+`"
`)

	if _, err := Build(Options{ConfigPath: path}); err == nil {
		t.Fatalf("expected missing production url error")
	}

	deps, err := Build(Options{ConfigPath: path, BaseURL: "http://localhost:9000/api"})
	if err != nil {
		t.Fatalf("Build with base url: %v", err)
	}
	defer deps.Close()
	if deps.Client.BaseURL() != "http://localhost:9000/api" {
		t.Fatalf("BaseURL = %q", deps.Client.BaseURL())
	}
}

func TestBuildRejectsBadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `log_file = "`+filepath.Join(dir, "l.log")+`"`)

	if _, err := Build(Options{ConfigPath: path, Environment: "staging"}); err == nil {
		t.Fatalf("expected unknown environment error")
	}
	if _, err := Build(Options{ConfigPath: path, Role: "guest"}); err == nil {
		t.Fatalf("expected unknown role error")
	}
	if _, err := Build(Options{ConfigPath: path, Environment: "production"}); err == nil {
		t.Fatalf("expected missing production url error")
	}
}

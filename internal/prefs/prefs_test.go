package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/ledgerdesk/internal/ledger"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.Status() != "" {
		t.Fatalf("Status = %q, want all", p.Status())
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "ledgerdesk")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	body := "theme = \"Nord\"\nstatus_filter = \"pending\"\n"
	if err := os.WriteFile(filepath.Join(prefsDir, "prefs.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("")
	if p.Theme != "Nord" || p.Status() != ledger.StatusPending {
		t.Fatalf("prefs = %#v, want Nord/pending", p)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	if err := Save(prefsFile, Prefs{Theme: "Nord", StatusFilter: "done"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded := Load(prefsFile)
	if loaded.Theme != "Nord" || loaded.Status() != ledger.StatusDone {
		t.Fatalf("loaded = %#v, want Nord/done", loaded)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
	}{
		{"empty theme", "theme = \"\"\n"},
		{"invalid toml", "not valid toml {{{\n"},
		{"unknown status", "status_filter = \"maybe\"\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(prefsFile, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			p := Load(prefsFile)
			if p.Theme != defaultTheme || p.StatusFilter != "" {
				t.Fatalf("prefs = %#v, want defaults", p)
			}
		})
	}
}

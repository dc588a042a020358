package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	} {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_WritesJSONAndHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, lvl := New(&buf, "warn")

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info written at warn level: %q", buf.String())
	}

	logger.Warn("shown", "record_id", 42)
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "shown" || entry["record_id"] != float64(42) {
		t.Fatalf("entry = %#v", entry)
	}

	buf.Reset()
	lvl.Set(slog.LevelDebug)
	logger.Debug("now visible")
	if buf.Len() == 0 {
		t.Fatalf("debug not written after lowering level")
	}
}

func TestOpenFile_CreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledgerdesk.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	_, _ = f.WriteString("line\n")
	_ = f.Close()

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "line\n" {
		t.Fatalf("file = %q, %v", data, err)
	}

	if _, err := OpenFile("  "); err == nil {
		t.Fatalf("OpenFile(blank) returned nil error")
	}
}

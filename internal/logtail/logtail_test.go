package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "zero reads nothing",
			maxLines: 0,
			expected: nil,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	e := Parse(`{"time":"2025-06-09T10:11:12.5Z","level":"ERROR","msg":"record update failed","record_id":7,"kind":"http","err":"api POST /update_record returned status 500"}`)
	if !e.Time.Equal(time.Date(2025, 6, 9, 10, 11, 12, 500_000_000, time.UTC)) {
		t.Fatalf("Time = %v", e.Time)
	}
	if e.Level != "ERROR" || e.Message != "record update failed" {
		t.Fatalf("entry = %#v", e)
	}
	want := []string{`err="api POST /update_record returned status 500"`, "kind=http", "record_id=7"}
	if !reflect.DeepEqual(e.Attrs, want) {
		t.Fatalf("Attrs = %#v, want %#v", e.Attrs, want)
	}
}

func TestFormat(t *testing.T) {
	if got := Format("plain text line"); got != "plain text line" {
		t.Fatalf("Format(plain) = %q", got)
	}

	got := Format(`{"level":"INFO","msg":"operator added","operator_id":11}`)
	if got != "INFO  operator added operator_id=11" {
		t.Fatalf("Format = %q", got)
	}

	lines := FormatLines([]string{`{"level":"WARN","msg":"x","ok":true}`, "raw"})
	if lines[0] != "WARN  x ok=true" || lines[1] != "raw" {
		t.Fatalf("FormatLines = %#v", lines)
	}
}

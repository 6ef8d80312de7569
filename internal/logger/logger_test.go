package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLevelFilter(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		level       slog.Level
		enabled     bool
	}{
		{"debug enabled at debug", "debug", slog.LevelDebug, true},
		{"info enabled at debug", "DEBUG", slog.LevelInfo, true},
		{"debug filtered at info", "info", slog.LevelDebug, false},
		{"warn filtered at error", "error", slog.LevelWarn, false},
		{"unknown level behaves like info", "verbose", slog.LevelDebug, false},
		{"error enabled at debug", "debug", slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			if got := log.logger.Enabled(context.Background(), tt.level); got != tt.enabled {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.enabled)
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithFormat("info", "json", &buf)

	log.Info(context.Background(), "case %s: %d items", "abc", 3)
	log.Debug(context.Background(), "hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["msg"] != "case abc: 3 items" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestTextFormatKeepsPercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithFormat("debug", "text", &buf)

	log.Warn(context.Background(), "100% done")

	if !strings.Contains(buf.String(), "100% done") {
		t.Errorf("output = %q", buf.String())
	}
}

package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func swapLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	originalLogger := Logger
	originalLevel := Level()
	t.Cleanup(func() {
		Logger = originalLogger
		SetLogLevel(originalLevel)
	})

	var buf bytes.Buffer
	Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &buf
}

func TestLogLevelFiltering(t *testing.T) {
	buf := swapLogger(t)

	SetLogLevel(INFO)
	Debug("debug message should be filtered")
	Info("info message should appear")

	output := buf.String()
	if strings.Contains(output, "debug message should be filtered") {
		t.Fatalf("debug message was logged at INFO level:\n%s", output)
	}
	if !strings.Contains(output, "info message should appear") {
		t.Fatalf("info message was not logged:\n%s", output)
	}
}

func TestWarnLevelSuppressesInfo(t *testing.T) {
	buf := swapLogger(t)

	SetLogLevel(WARN)
	Info("corpus loaded")
	Warn("textbook skipped", "source", "mounce")
	Error("load failed")

	output := buf.String()
	if strings.Contains(output, "corpus loaded") {
		t.Fatalf("info message was logged at WARN level:\n%s", output)
	}
	if !strings.Contains(output, "source=mounce") {
		t.Fatalf("expected warn attributes in output:\n%s", output)
	}
	if !strings.Contains(output, "load failed") {
		t.Fatalf("expected error message in output:\n%s", output)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		" INFO ":  INFO,
		"warning": WARN,
		"error":   ERROR,
	}
	for input, want := range cases {
		got, err := ParseLogLevel(input)
		if err != nil {
			t.Fatalf("ParseLogLevel(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseLogLevel(%q): got %v want %v", input, got, want)
		}
	}

	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestConfigureWritesToFile(t *testing.T) {
	originalLogger := Logger
	originalLevel := Level()
	t.Cleanup(func() {
		Logger = originalLogger
		SetLogLevel(originalLevel)
	})

	path := filepath.Join(t.TempDir(), "logs", "vocab.log")
	if err := Configure(Options{Level: "debug", File: path}); err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	Debug("written to file", "lemma", "G3056")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "lemma=G3056") {
		t.Fatalf("expected log line in file, got %q", string(data))
	}
}

func TestConfigureKeepsLevelOnError(t *testing.T) {
	originalLogger := Logger
	originalLevel := Level()
	t.Cleanup(func() {
		Logger = originalLogger
		SetLogLevel(originalLevel)
	})

	SetLogLevel(ERROR)
	if err := Configure(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
	if Level() != INFO {
		t.Fatalf("expected fallback level INFO, got %v", Level())
	}
}

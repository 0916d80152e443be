package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"brronson/internal/logging"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("scan complete", logging.Int("found", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "scan complete" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if record["found"] != float64(3) {
		t.Fatalf("found = %v", record["found"])
	}
}

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.With(logging.String("operation", "prune-empty")).Info("pass finished", logging.Int("acted", 2))

	line := buf.String()
	if !strings.Contains(line, "INFO") || !strings.Contains(line, "pass finished") {
		t.Fatalf("line = %q", line)
	}
	if !strings.Contains(line, "operation=prune-empty") || !strings.Contains(line, "acted=2") {
		t.Fatalf("attrs missing: %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Fatalf("expected one line, got %q", line)
	}
}

func TestNewAutoFallsBackToJSON(t *testing.T) {
	// A bytes.Buffer is not a terminal, so auto means JSON.
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "auto", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("x")
	if !json.Valid(buf.Bytes()) {
		t.Fatalf("auto on a non-terminal should emit JSON, got %q", buf.String())
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn suppressed: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing should happen")
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buffer bytes.Buffer
	// A buffer is not a terminal, so auto selects JSON.
	logger, err := NewLogger(&buffer, "auto", slog.LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("compacted model", "nodes", 5)

	var record map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &record); err != nil {
		t.Fatalf("auto format on a buffer is not JSON: %v (%q)", err, buffer.String())
	}
	if record["msg"] != "compacted model" || record["nodes"] != float64(5) {
		t.Errorf("record = %v", record)
	}

	buffer.Reset()
	logger, err = NewLogger(&buffer, "text", slog.LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger(text): %v", err)
	}
	logger.Debug("remapped dependency", "material", 2)
	if !strings.Contains(buffer.String(), "msg=\"remapped dependency\" material=2") {
		t.Errorf("text output = %q", buffer.String())
	}

	if _, err := NewLogger(&buffer, "xml", slog.LevelInfo); err == nil {
		t.Error("NewLogger accepted format xml")
	}
}

func TestWriteJSON(t *testing.T) {
	var buffer bytes.Buffer
	var empty []string
	if err := WriteJSON(&buffer, empty); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("WriteJSON(nil slice) = %q, want []", got)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates the structured logger for a command run, writing to
// w. Format "text" and "json" pick the handler; "auto" uses
// slog.TextHandler when w is a terminal and slog.JSONHandler when it is
// piped or redirected (CI, scripts, test harnesses).
//
// Callers scope the logger with command-specific context via With():
//
//	logger := logger.With("command", "compact", "path", input)
func NewLogger(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	options := &slog.HandlerOptions{Level: level}
	text := false
	switch format {
	case "text":
		text = true
	case "json":
	case "auto", "":
		text = isTerminal(w)
	default:
		return nil, fmt.Errorf("unknown log format %q (want auto, text or json)", format)
	}
	if text {
		return slog.New(slog.NewTextHandler(w, options)), nil
	}
	return slog.New(slog.NewJSONHandler(w, options)), nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_FileOutputWritesJSON(t *testing.T) {
	dir := t.TempDir()
	logger, cleanup, err := New(Config{Level: "debug", Dir: dir, FileOutput: true, MaxSize: 1}, nil)
	require.NoError(t, err)

	logger.Info("residency request applied", "model", "llama3", "endpoint", "/api/chat")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	assert.Equal(t, "residency request applied", rec["msg"])
	assert.Equal(t, "llama3", rec["model"])
	assert.Equal(t, "INFO", rec["level"])
}

func TestNew_ConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	logger, cleanup, err := New(Config{Level: "warn", Dir: dir, FileOutput: true}, &console)
	require.NoError(t, err)
	defer cleanup()

	logger.Info("hidden")
	logger.With("op", "list").Warn("connection error")

	out := console.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "connection error")
	assert.Contains(t, out, "op=list")
	assert.NotContains(t, out, "time=")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
}

func TestNew_NoOutputsDiscards(t *testing.T) {
	logger, cleanup, err := New(Config{}, nil)
	require.NoError(t, err)
	defer cleanup()
	assert.NotPanics(t, func() { logger.Error("dropped") })
}

func TestNew_FileOutputRequiresDir(t *testing.T) {
	_, _, err := New(Config{FileOutput: true}, nil)
	assert.Error(t, err)
}

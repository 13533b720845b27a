// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/keeper/internal/ollama"
)

func TestRender_NothingLoaded(t *testing.T) {
	snap := Merge(installed("llama3", "nomic-embed"), nil, time.Now())

	rows := Render(snap, time.Now(), DefaultNameWidth)

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, StateNotLoaded, row.Countdown.State)
		assert.True(t, strings.HasSuffix(row.Line, " Not Loaded"), row.Line)
	}
}

func TestRender_CountsDownWithoutRefetch(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(30 * time.Second).Format(time.RFC3339Nano)
	snap := Merge(
		installed("llama3", "nomic-embed"),
		[]ollama.RunningModel{{Name: "nomic-embed", ExpiresAt: expiry}},
		now,
	)

	rows := Render(snap, now, DefaultNameWidth)
	assert.Equal(t, "Expires in 0m 30s", rows[1].Countdown.String())

	rows = Render(snap, now.Add(time.Second), DefaultNameWidth)
	assert.Equal(t, "Expires in 0m 29s", rows[1].Countdown.String())
	assert.Equal(t, "Not Loaded", rows[0].Countdown.String())
}

func TestFormatRow_AlignsColumns(t *testing.T) {
	a := FormatRow("llama3", "Permanent", DefaultNameWidth)
	b := FormatRow("qwen2.5-coder:14b", "Expired", DefaultNameWidth)

	assert.Equal(t, DefaultNameWidth+1, strings.Index(a, "Permanent"))
	assert.Equal(t, DefaultNameWidth+1, strings.Index(b, "Expired"))
}

func TestFormatRow_WideRunes(t *testing.T) {
	line := FormatRow("模型", "Expired", 10)
	assert.Equal(t, 10+1+len("Expired"), runewidth.StringWidth(line))
}

func TestFormatRow_LongNameKeptWhole(t *testing.T) {
	name := strings.Repeat("x", DefaultNameWidth+5)
	line := FormatRow(name, "Expired", DefaultNameWidth)
	assert.Equal(t, name+" Expired", line)
}

func TestRender_EmptySnapshot(t *testing.T) {
	assert.Empty(t, Render(nil, time.Now(), 0))
}

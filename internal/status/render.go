// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"time"

	"github.com/mattn/go-runewidth"
)

// DefaultNameWidth is the display width of the model-name column.
const DefaultNameWidth = 35

// Row is one rendered line of the model list.
type Row struct {
	Name      string
	Countdown Countdown
	Line      string // name padded to the column width, a space, then the status text
}

// FormatRow pads name to width display cells and appends the status text.
// Names wider than the column are kept whole.
func FormatRow(name, text string, width int) string {
	return runewidth.FillRight(name, width) + " " + text
}

// Render derives one row per snapshot entry at instant now. It performs no
// I/O and does not modify the snapshot.
func Render(snap *Snapshot, now time.Time, width int) []Row {
	if width <= 0 {
		width = DefaultNameWidth
	}
	rows := make([]Row, 0, snap.Len())
	for i := 0; i < snap.Len(); i++ {
		ms := snap.At(i)
		cd := Describe(ms, now)
		rows = append(rows, Row{
			Name:      ms.Name,
			Countdown: cd,
			Line:      FormatRow(ms.Name, cd.String(), width),
		})
	}
	return rows
}

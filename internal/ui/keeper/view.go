// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keeper

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/keeper/internal/status"
	"github.com/jeranaias/keeper/internal/ui/styles"
)

// View renders the screen: header, model list (or the notice over it),
// status bar and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.header.View()

	sb := *m.statusBar
	sb.Spinner = m.spinner.View()
	statusLine := sb.View()

	helpLine := m.theme.Help.Render(m.help.View(m.keys))

	listHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusLine) - lipgloss.Height(helpLine)
	if listHeight < 1 {
		listHeight = 1
	}

	var body string
	if m.notice.IsVisible() {
		body = lipgloss.Place(m.width, listHeight, lipgloss.Center, lipgloss.Center, m.notice.View())
	} else {
		body = lipgloss.NewStyle().Height(listHeight).Render(m.viewList(listHeight))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusLine, helpLine)
}

// viewList renders at most height rows, scrolled so the selection is visible.
func (m Model) viewList(height int) string {
	if m.snapshot == nil {
		return m.theme.Empty.Render("  Waiting for Ollama...")
	}
	if len(m.rows) == 0 {
		return m.theme.Empty.Render("  No models installed. Pull one with: ollama pull <model>")
	}

	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}
	end := start + height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.viewRow(i, m.rows[i]))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewRow(i int, row status.Row) string {
	indicator := styles.StateIndicator(row.Countdown.State)

	if i == m.selected {
		return m.theme.Cursor.Render("> ") + m.theme.RowSelected.Render(indicator+" "+row.Line)
	}

	text := m.theme.StateStyle(row.Countdown.State).Render(row.Countdown.String())
	return "  " + m.theme.Row.Render(indicator+" "+status.FormatRow(row.Name, text, m.nameWidth))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/keeper/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar above the model list.
type Header struct {
	Title     string
	Endpoint  string // runtime base URL
	Resident  int
	Installed int
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "keeper",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetCounts updates the resident and installed model counts.
func (h *Header) SetCounts(resident, installed int) {
	h.Resident = resident
	h.Installed = installed
}

// View renders the header.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render(h.Title)
	meta := fmt.Sprintf("%d/%d loaded", h.Resident, h.Installed)
	if h.Endpoint != "" {
		meta = h.Endpoint + "  " + meta
	}
	meta = h.theme.HeaderMeta.Render(meta)

	gap := h.Width - lipgloss.Width(title) - lipgloss.Width(meta) - 2
	if gap < 1 {
		gap = 1
	}
	line := title + lipgloss.NewStyle().Width(gap).Render("") + meta

	return h.theme.Header.Width(h.Width).Render(line)
}

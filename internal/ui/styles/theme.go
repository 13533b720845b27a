// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/keeper/internal/status"
)

// Theme holds all the styled components for the application.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// ==========================================================================
	// MODEL LIST
	// ==========================================================================

	Row         lipgloss.Style
	RowSelected lipgloss.Style
	Cursor      lipgloss.Style
	Empty       lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusReady   lipgloss.Style
	StatusBusy    lipgloss.Style
	StatusError   lipgloss.Style
	StatusMessage lipgloss.Style
	StatusMeta    lipgloss.Style
	Spinner       lipgloss.Style

	// ==========================================================================
	// NOTICE BOX
	// ==========================================================================

	NoticeBox     lipgloss.Style
	NoticeError   lipgloss.Style
	NoticeWarning lipgloss.Style
	NoticeInfo    lipgloss.Style
	NoticeMessage lipgloss.Style
	NoticeHint    lipgloss.Style

	// ==========================================================================
	// HELP
	// ==========================================================================

	Help lipgloss.Style

	states map[status.State]lipgloss.Style
}

// NewTheme creates a theme. mode is "dark", "light" or "auto"; anything else
// is treated as auto.
func NewTheme(mode string) *Theme {
	t := &Theme{ColorProfile: termenv.ColorProfile()}

	switch strings.ToLower(mode) {
	case "dark":
		t.IsDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		t.IsDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		t.IsDark = termenv.HasDarkBackground()
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Row = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.RowSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)

	t.Cursor = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.Empty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusReady = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.StatusBusy = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.StatusError = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.StatusMessage = lipgloss.NewStyle().Foreground(TextPrimary)
	t.StatusMeta = lipgloss.NewStyle().Foreground(TextMuted)
	t.Spinner = lipgloss.NewStyle().Foreground(Cyan)

	t.NoticeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.NoticeError = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.NoticeWarning = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.NoticeInfo = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.NoticeMessage = lipgloss.NewStyle().Foreground(TextPrimary)
	t.NoticeHint = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	t.Help = lipgloss.NewStyle().Padding(0, 1)

	t.states = map[status.State]lipgloss.Style{}
	for _, s := range []status.State{
		status.StateNotLoaded,
		status.StatePermanent,
		status.StateExpiring,
		status.StateExpired,
		status.StateInvalid,
	} {
		st := lipgloss.NewStyle().Foreground(StateColor(s))
		if s == status.StatePermanent {
			st = st.Bold(true)
		}
		t.states[s] = st
	}
}

// StateStyle returns the style used to render a residency state.
func (t *Theme) StateStyle(s status.State) lipgloss.Style {
	if st, ok := t.states[s]; ok {
		return st
	}
	return lipgloss.NewStyle().Foreground(TextMuted)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/keeper/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents what the application is currently doing.
type Status int

const (
	StatusReady Status = iota
	StatusRefreshing
	StatusApplying
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusRefreshing:
		return "Refreshing"
	case StatusApplying:
		return "Applying"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape for the status so it reads without color.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return styles.StatusIndicators.Info
	}
}

// StatusBar is the bottom line of the screen.
type StatusBar struct {
	Status      Status
	Message     string
	LastFetched time.Time
	Spinner     string // current spinner frame, empty when idle
	Width       int
	theme       *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the available width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus sets the activity state and message together.
func (s *StatusBar) SetStatus(status Status, message string) {
	s.Status = status
	s.Message = message
}

// View renders the status bar. Narrow terminals drop the fetch time.
func (s *StatusBar) View() string {
	badge := s.statusStyle().Render(s.Status.Icon() + " " + s.Status.String())
	if s.Spinner != "" {
		badge = s.Spinner + " " + badge
	}

	parts := []string{badge}
	if s.Message != "" {
		parts = append(parts, s.theme.StatusMessage.Render(s.Message))
	}
	left := strings.Join(parts, "  ")

	right := ""
	if !s.LastFetched.IsZero() && s.Width >= 60 {
		right = s.theme.StatusMeta.Render("updated " + s.LastFetched.Local().Format("15:04:05"))
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
		right = ""
	}

	return s.theme.StatusBar.
		Width(s.Width).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (s *StatusBar) statusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return s.theme.StatusReady
	case StatusError:
		return s.theme.StatusError
	default:
		return s.theme.StatusBusy
	}
}

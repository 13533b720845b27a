// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/keeper/internal/ui/styles"
)

// =============================================================================
// NOTICE MODEL
// =============================================================================

// NoticeKind selects the notice's color and icon.
type NoticeKind int

const (
	NoticeError NoticeKind = iota
	NoticeWarning
	NoticeInfo
)

// Notice is a modal message box. While visible it captures keys until the
// user dismisses it.
type Notice struct {
	kind        NoticeKind
	title       string
	message     string
	suggestions []string

	visible bool
	width   int
	theme   *styles.Theme
}

// NewNotice creates a hidden notice.
func NewNotice(theme *styles.Theme) Notice {
	return Notice{theme: theme, width: 60}
}

// Show replaces the content and makes the notice visible.
func (n *Notice) Show(kind NoticeKind, title, message string, suggestions ...string) {
	n.kind = kind
	n.title = title
	n.message = message
	n.suggestions = suggestions
	n.visible = true
}

// Hide dismisses the notice.
func (n *Notice) Hide() {
	n.visible = false
}

// IsVisible reports whether the notice is shown.
func (n *Notice) IsVisible() bool {
	return n.visible
}

// Title returns the notice title.
func (n *Notice) Title() string {
	return n.title
}

// Message returns the notice body.
func (n *Notice) Message() string {
	return n.message
}

// Kind returns the notice kind.
func (n *Notice) Kind() NoticeKind {
	return n.kind
}

// SetWidth sets the available screen width.
func (n *Notice) SetWidth(width int) {
	n.width = width
}

// Update dismisses the notice on esc, enter, space or q.
func (n Notice) Update(msg tea.Msg) (Notice, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		n.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", " ", "q":
			n.Hide()
		}
	}
	return n, nil
}

// View renders the notice box, or nothing when hidden.
func (n Notice) View() string {
	if !n.visible {
		return ""
	}

	maxWidth := n.width - 8
	if maxWidth < 30 {
		maxWidth = 30
	}
	if maxWidth > 72 {
		maxWidth = 72
	}

	titleStyle, icon, border := n.kindStyle()
	parts := []string{titleStyle.Render(icon + " " + n.title), ""}

	if n.message != "" {
		parts = append(parts, n.theme.NoticeMessage.Width(maxWidth-4).Render(n.message), "")
	}
	for _, s := range n.suggestions {
		parts = append(parts, n.theme.NoticeMessage.Render("  * "+s))
	}
	if len(n.suggestions) > 0 {
		parts = append(parts, "")
	}
	parts = append(parts, n.theme.NoticeHint.Render("Press Enter or Esc to dismiss"))

	return n.theme.NoticeBox.
		BorderForeground(border).
		Width(maxWidth).
		Render(strings.Join(parts, "\n"))
}

func (n Notice) kindStyle() (lipgloss.Style, string, lipgloss.AdaptiveColor) {
	switch n.kind {
	case NoticeWarning:
		return n.theme.NoticeWarning, styles.StatusIndicators.Warning, styles.Amber
	case NoticeInfo:
		return n.theme.NoticeInfo, styles.StatusIndicators.Info, styles.Cyan
	default:
		return n.theme.NoticeError, styles.StatusIndicators.Error, styles.Rose
	}
}

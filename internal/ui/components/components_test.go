// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/keeper/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("dark")
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBar_ShowsStatusAndMessage(t *testing.T) {
	sb := NewStatusBar(testTheme())
	sb.SetWidth(100)
	sb.SetStatus(StatusRefreshing, "Refreshing list and statuses...")

	view := sb.View()
	if !strings.Contains(view, "Refreshing") {
		t.Errorf("status missing from %q", view)
	}
	if !strings.Contains(view, "Refreshing list and statuses...") {
		t.Errorf("message missing from %q", view)
	}
}

func TestStatusBar_LastFetchedOnlyWhenWide(t *testing.T) {
	sb := NewStatusBar(testTheme())
	sb.LastFetched = time.Date(2026, 10, 15, 9, 30, 0, 0, time.Local)

	sb.SetWidth(100)
	if !strings.Contains(sb.View(), "updated 09:30:00") {
		t.Errorf("wide view should show fetch time: %q", sb.View())
	}

	sb.SetWidth(40)
	if strings.Contains(sb.View(), "updated") {
		t.Errorf("narrow view should drop fetch time: %q", sb.View())
	}
}

func TestStatus_StringAndIcon(t *testing.T) {
	tests := []struct {
		status Status
		text   string
	}{
		{StatusReady, "Ready"},
		{StatusRefreshing, "Refreshing"},
		{StatusApplying, "Applying"},
		{StatusError, "Error"},
		{Status(42), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.status.String(); got != tc.text {
			t.Errorf("Status(%d).String() = %q, want %q", tc.status, got, tc.text)
		}
		if tc.status.Icon() == "" {
			t.Errorf("Status(%d) has no icon", tc.status)
		}
	}
}

// =============================================================================
// NOTICE TESTS
// =============================================================================

func TestNotice_ShowAndDismiss(t *testing.T) {
	n := NewNotice(testTheme())
	if n.IsVisible() || n.View() != "" {
		t.Fatal("new notice should be hidden")
	}

	n.Show(NoticeError, "Connection error", "Ollama is not reachable", "Start it with: ollama serve")
	if !n.IsVisible() {
		t.Fatal("notice should be visible after Show")
	}
	view := n.View()
	for _, want := range []string{"Connection error", "Ollama is not reachable", "ollama serve"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	n, _ = n.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if !n.IsVisible() {
		t.Error("unrelated keys must not dismiss")
	}

	n, _ = n.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if n.IsVisible() {
		t.Error("enter should dismiss")
	}
}

func TestNotice_Kinds(t *testing.T) {
	n := NewNotice(testTheme())
	n.Show(NoticeWarning, "No selection", "Select a model first.")
	if n.Kind() != NoticeWarning || n.Title() != "No selection" {
		t.Errorf("unexpected notice state: kind=%v title=%q", n.Kind(), n.Title())
	}
	if !strings.Contains(n.View(), styles.StatusIndicators.Warning) {
		t.Error("warning notice should carry the warning indicator")
	}
}

// =============================================================================
// HEADER AND SPINNER TESTS
// =============================================================================

func TestHeader_ShowsCounts(t *testing.T) {
	h := NewHeader(testTheme())
	h.Endpoint = "http://127.0.0.1:11434"
	h.SetCounts(1, 3)
	h.SetWidth(80)

	view := h.View()
	if !strings.Contains(view, "1/3 loaded") || !strings.Contains(view, "keeper") {
		t.Errorf("unexpected header %q", view)
	}
}

func TestSpinner_OnlyTicksWhileActive(t *testing.T) {
	s := NewSpinner(testTheme())
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}

	if cmd := s.Start(); cmd == nil {
		t.Fatal("Start should return a tick command")
	}
	if cmd := s.Start(); cmd != nil {
		t.Error("second Start should not start another tick chain")
	}
	if s.View() == "" {
		t.Error("active spinner should render a frame")
	}

	s.Stop()
	_, cmd := s.Update(spinner.TickMsg{})
	if cmd != nil {
		t.Error("stopped spinner should drop ticks")
	}
}

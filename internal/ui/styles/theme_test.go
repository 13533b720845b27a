// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/jeranaias/keeper/internal/status"
)

func TestStateColor_DistinguishesStates(t *testing.T) {
	if StateColor(status.StatePermanent) == StateColor(status.StateExpiring) {
		t.Error("permanent and expiring should not share a color")
	}
	if StateColor(status.StateExpired) != Rose {
		t.Error("expired should be rose")
	}
	if StateColor(status.StateNotLoaded) != TextMuted {
		t.Error("not loaded should be muted")
	}
}

func TestStateIndicator_Unique(t *testing.T) {
	seen := map[string]status.State{}
	for _, s := range []status.State{
		status.StateNotLoaded,
		status.StatePermanent,
		status.StateExpiring,
		status.StateExpired,
		status.StateInvalid,
	} {
		ind := StateIndicator(s)
		if prev, dup := seen[ind]; dup {
			t.Errorf("indicator %q shared by %v and %v", ind, prev, s)
		}
		seen[ind] = s
	}
}

func TestNewTheme_ForcedModes(t *testing.T) {
	if !NewTheme("dark").IsDark {
		t.Error("dark theme should report IsDark")
	}
	if NewTheme("LIGHT").IsDark {
		t.Error("light theme should not report IsDark")
	}
}

func TestStateStyle_RendersText(t *testing.T) {
	theme := NewTheme("dark")
	out := theme.StateStyle(status.StateExpiring).Render("Expires in 0m 30s")
	if out == "" {
		t.Error("rendered state should not be empty")
	}
	unknown := theme.StateStyle(status.State(99)).Render("x")
	if unknown == "" {
		t.Error("unknown states should still render")
	}
}

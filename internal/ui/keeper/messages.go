// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keeper

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/keeper/internal/config"
	"github.com/jeranaias/keeper/internal/residency"
	"github.com/jeranaias/keeper/internal/status"
)

// Status line texts.
const (
	MsgRefreshing      = "Refreshing list and statuses..."
	MsgUpdated         = "List and statuses updated."
	MsgConnectionError = "Connection error."
	MsgConfigReloaded  = "Configuration reloaded."
)

// TickMsg drives the countdown re-render.
type TickMsg struct {
	Time time.Time
}

// RefreshMsg asks the model to start a reconciliation.
type RefreshMsg struct{}

// SnapshotMsg carries a successful reconciliation.
type SnapshotMsg struct {
	Snapshot *status.Snapshot
}

// ReconcileFailedMsg reports a failed reconciliation.
type ReconcileFailedMsg struct {
	Err error
}

// ResidencyAppliedMsg reports that the runtime accepted a load or unload.
type ResidencyAppliedMsg struct {
	Action Action
	Result residency.Result
}

// ResidencyFailedMsg reports a failed load or unload.
type ResidencyFailedMsg struct {
	Action Action
	Model  string
	Err    error
}

// ConfigReloadedMsg is sent when the config file changes on disk. Config is
// nil when Err is set.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// tick schedules the next countdown re-render.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// refreshAfter schedules one reconciliation after d.
func refreshAfter(d time.Duration) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return RefreshMsg{} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return RefreshMsg{}
	})
}

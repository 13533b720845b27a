// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package keeper is the Bubble Tea program behind the keeper TUI.
//
// The model owns the last status snapshot and re-renders it once a second
// without touching the network. Refreshes and residency requests run as
// commands off the update loop and report back as messages; a failure never
// replaces the snapshot, it only raises a notice.
//
// # Messages
//
//   - TickMsg: once-a-second countdown re-render
//   - RefreshMsg: start a reconciliation
//   - SnapshotMsg / ReconcileFailedMsg: reconciliation results
//   - ResidencyAppliedMsg / ResidencyFailedMsg: load/unload results
//   - ConfigReloadedMsg: the config file changed on disk
package keeper

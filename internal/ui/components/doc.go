// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the keeper TUI.

# Components

Header (header.go) - Title bar with the runtime URL and resident/installed counts.
StatusBar (statusbar.go) - Bottom line with the activity state, last message and fetch time.
Notice (notice.go) - Modal notice for connection errors, failed requests and warnings.
Spinner (spinner.go) - ASCII activity indicator built on bubbles/spinner.

Components are plain values configured with setters and rendered with View.
Only Notice and Spinner handle Bubble Tea messages.
*/
package components

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the keeper TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. A theme setting of "dark" or "light" overrides detection.

# Color System (colors.go)

  - Purple - Primary accent, selected row
  - Cyan - Brand color, header, spinner
  - Emerald - Permanently loaded models
  - Amber - Models counting down to unload
  - Rose - Errors, expired models, invalid timestamps

Residency states map to colors through StateColor so the list, the status
command and the status bar agree.

# Theme (theme.go)

	theme := styles.NewTheme("auto")
	line := theme.StateStyle(status.StatePermanent).Render("Permanent")

# Accessibility

Every state also carries an ASCII indicator (StateIndicator) so the list
stays readable without color, e.g. under NO_COLOR.
*/
package styles

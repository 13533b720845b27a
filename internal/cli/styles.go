// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "github.com/jeranaias/keeper/internal/ui/styles"

// Shared colors for command output. Styles are built per writer from
// newRenderer so piped output stays plain.
var (
	errorColor   = styles.Rose
	successColor = styles.Emerald
	mutedColor   = styles.TextMuted
	keyColor     = styles.Cyan
)

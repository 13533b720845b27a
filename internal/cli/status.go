// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - One-shot status listing.
//
// Command: status
// Short:   Print every installed model with its residency once
// Aliases: s, ls
//
// Examples:
//   keeper status                       List models and countdowns
//   keeper status --url http://gpu:11434
//   NO_COLOR=1 keeper status            Plain output

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/keeper/internal/status"
	"github.com/jeranaias/keeper/internal/ui/styles"
)

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"s", "ls"},
		Short:   "Print every installed model with its residency",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.cleanup()

			snap, err := a.reconciler.Reconcile(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), snap, time.Now(), a.cfg.UI.NameWidth)
			return nil
		},
	}
}

// printStatus writes one aligned row per model. Rows are styled by state when
// out is a color terminal.
func printStatus(out io.Writer, snap *status.Snapshot, now time.Time, nameWidth int) {
	if snap.Len() == 0 {
		fmt.Fprintln(out, "No models installed. Pull one with: ollama pull <model>")
		return
	}

	styled := colorsEnabled(out)
	r := newRenderer(out)
	for _, row := range status.Render(snap, now, nameWidth) {
		if !styled {
			fmt.Fprintln(out, row.Line)
			continue
		}
		text := r.NewStyle().
			Foreground(styles.StateColor(row.Countdown.State)).
			Render(row.Countdown.String())
		fmt.Fprintln(out, status.FormatRow(row.Name, text, nameWidth))
	}
}

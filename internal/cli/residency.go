// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// residency.go - load and unload commands.
//
// Command: load <model>
// Short:   Pin a model in memory (keep_alive from residency.load_keep_alive)
//
// Command: unload <model>
// Short:   Evict a model (keep_alive from residency.unload_keep_alive)
//
// Examples:
//   keeper load llama3:8b
//   keeper unload nomic-embed-text

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/keeper/internal/status"
	"github.com/jeranaias/keeper/internal/ui/keeper"
)

func newResidencyCmd(opts *globalOptions, action keeper.Action) *cobra.Command {
	short := "Pin a model in memory"
	if action == keeper.ActionUnload {
		short = "Evict a model from memory"
	}

	return &cobra.Command{
		Use:   action.String() + " <model>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.cleanup()

			model := args[0]
			keepAlive := a.cfg.LoadKeepAlive()
			if action == keeper.ActionUnload {
				keepAlive = a.cfg.UnloadKeepAlive()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Preparing request to %s '%s'...\n", action, model)

			res, err := a.dispatcher.Apply(cmd.Context(), model, keepAlive)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Request to %s '%s' accepted via %s (keep_alive %s, %s).\n",
				action, res.Model, res.Endpoint, res.KeepAlive, res.Elapsed.Round(time.Millisecond))

			// Give the runtime a moment to settle, then show the new state.
			if err := sleepContext(cmd.Context(), a.cfg.SettleDelay()); err != nil {
				return nil
			}
			snap, err := a.reconciler.Reconcile(cmd.Context())
			if err != nil {
				a.logger.Warn("could not confirm residency", "model", model, "error", err)
				return nil
			}
			for _, row := range status.Render(snap, time.Now(), a.cfg.UI.NameWidth) {
				if row.Name == model {
					fmt.Fprintln(out, row.Line)
				}
			}
			return nil
		},
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

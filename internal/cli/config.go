// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for keeper.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display the effective configuration
//   get <key>           Print one value
//   set <key> <value>   Set a value in the config file
//   reset               Reset the file to defaults
//   path                Show configuration file path
//
// Examples:
//   keeper config
//   keeper config get residency.chat_keywords
//   keeper config set residency.chat_keywords "llama,mistral,qwen"
//   keeper config set residency.load_keep_alive 2h
//   keeper config set ui.theme light
//
// Keys use the TOML section and key joined by a dot. set edits the file
// only; environment overrides are not written back. A running TUI picks the
// change up through its file watch.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/keeper/internal/config"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and modify configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, opts)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Display the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigShow(cmd, opts)
			},
		},
		&cobra.Command{
			Use:       "get <key>",
			Short:     "Print one configuration value",
			Args:      cobra.ExactArgs(1),
			ValidArgs: config.Keys(),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, _, err := opts.loadConfig()
				if err != nil {
					return err
				}
				v, err := cfg.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a value in the config file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigSet(cmd, opts, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset the config file to defaults",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := opts.resolvePath()
				if err != nil {
					return err
				}
				if err := config.Save(config.Default(), path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset: %s\n", path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := opts.resolvePath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
	)
	return cmd
}

func runConfigShow(cmd *cobra.Command, opts *globalOptions) error {
	cfg, path, err := opts.loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := newRenderer(out)
	keyStyle := r.NewStyle().Foreground(keyColor)
	muted := r.NewStyle().Foreground(mutedColor)

	fmt.Fprintln(out, muted.Render("# "+path))
	for _, key := range config.Keys() {
		v, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s = %s\n", keyStyle.Render(key), formatValue(v))
	}
	return nil
}

// runConfigSet edits the file as written, without environment overrides,
// and refuses to save a config that would not load.
func runConfigSet(cmd *cobra.Command, opts *globalOptions, key, value string) error {
	path, err := opts.resolvePath()
	if err != nil {
		return err
	}

	cfg := config.Default()
	if err := config.LoadTOML(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}

	v, _ := cfg.Get(key)
	r := newRenderer(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n",
		r.NewStyle().Foreground(successColor).Render("[OK]"), key, formatValue(v))
	return nil
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case []string:
		return strings.Join(v, ",")
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}

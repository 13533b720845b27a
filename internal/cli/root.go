// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/keeper/internal/config"
	"github.com/jeranaias/keeper/internal/logging"
	"github.com/jeranaias/keeper/internal/ollama"
	"github.com/jeranaias/keeper/internal/residency"
	"github.com/jeranaias/keeper/internal/status"
	"github.com/jeranaias/keeper/internal/ui/keeper"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	url        string
	logLevel   string
}

// resolvePath returns the config file path in effect.
func (o *globalOptions) resolvePath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.ConfigPath()
}

// loadConfig loads the config file and applies flag overrides on top of the
// environment.
func (o *globalOptions) loadConfig() (*config.Config, string, error) {
	path, err := o.resolvePath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, path, err
	}
	o.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, path, nil
}

func (o *globalOptions) applyFlags(cfg *config.Config) {
	if o.url != "" {
		cfg.Ollama.URL = o.url
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
}

// =============================================================================
// APP WIRING
// =============================================================================

// app bundles the collaborators a command needs.
type app struct {
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	client     *ollama.Client
	reconciler *status.Reconciler
	dispatcher *residency.Dispatcher
	cleanup    func()
}

// newApp loads configuration and builds the runtime client, reconciler and
// dispatcher. When file output is disabled, log records go to console as
// text; pass a nil console to never touch the terminal.
func newApp(opts *globalOptions, console io.Writer) (*app, error) {
	cfg, path, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Logging.FileOutput {
		console = nil
	}

	logDir, err := cfg.LogDir()
	if err != nil {
		return nil, err
	}
	logger, cleanup, err := logging.New(logging.Config{
		Level:      cfg.Logging.Level,
		Dir:        logDir,
		FileOutput: cfg.Logging.FileOutput,
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAgeDays,
	}, console)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	client := ollama.NewClientWithConfig(cfg.ClientConfig())
	classifier := residency.NewClassifier(cfg.Residency.ChatKeywords)

	return &app{
		cfg:        cfg,
		configPath: path,
		logger:     logger,
		client:     client,
		reconciler: status.NewReconciler(client, logger),
		dispatcher: residency.NewDispatcher(client, classifier, logger),
		cleanup:    cleanup,
	}, nil
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the keeper command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "keeper",
		Short: "Keep Ollama models loaded, or unload them on demand",
		Long: `keeper lists every model installed in a local Ollama runtime together with
its residency: not loaded, loaded permanently, or a live countdown to eviction.

Select a model and press l to pin it in memory or u to unload it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.keeper/config.toml)")
	flags.StringVar(&opts.url, "url", "", "Ollama base URL (overrides config and OLLAMA_HOST)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newStatusCmd(opts),
		newResidencyCmd(opts, keeper.ActionLoad),
		newResidencyCmd(opts, keeper.ActionUnload),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx := context.Background()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		DisplayError(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}

// runTUI starts the interactive list. The TUI owns the terminal, so logs go
// to the rotating file only.
func runTUI(ctx context.Context, opts *globalOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, err := newApp(opts, nil)
	if err != nil {
		return err
	}
	defer a.cleanup()

	a.logger.Info("starting keeper",
		"version", Version,
		"ollama_url", a.cfg.Ollama.URL,
		"config", a.configPath,
	)

	model := keeper.New(ctx, a.reconciler, a.dispatcher, keeper.OptionsFromConfig(a.cfg, a.logger))

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if a.cfg.UI.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, progOpts...)

	err = config.Watch(ctx, a.configPath, func(cfg *config.Config, err error) {
		if cfg != nil {
			opts.applyFlags(cfg)
		}
		p.Send(keeper.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		a.logger.Warn("config hot reload disabled", "path", a.configPath, "error", err)
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	a.logger.Info("keeper stopped")
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/keeper/internal/config"
	"github.com/jeranaias/keeper/internal/ollama"
	"github.com/jeranaias/keeper/internal/residency"
	"github.com/jeranaias/keeper/internal/status"
	"github.com/jeranaias/keeper/internal/ui/components"
	"github.com/jeranaias/keeper/internal/ui/styles"
)

// =============================================================================
// ACTIONS
// =============================================================================

// Action is a residency change requested from the list.
type Action int

const (
	ActionLoad Action = iota
	ActionUnload
)

// String returns the verb used in status texts.
func (a Action) String() string {
	if a == ActionUnload {
		return "unload"
	}
	return "load"
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures the model.
type Options struct {
	Endpoint        string
	Theme           string
	NameWidth       int
	LoadKeepAlive   ollama.KeepAlive
	UnloadKeepAlive ollama.KeepAlive
	SettleDelay     time.Duration
	Logger          *slog.Logger

	// Now is the clock used for countdowns. Defaults to time.Now.
	Now func() time.Time
}

// OptionsFromConfig derives model options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		Endpoint:        cfg.Ollama.URL,
		Theme:           cfg.UI.Theme,
		NameWidth:       cfg.UI.NameWidth,
		LoadKeepAlive:   cfg.LoadKeepAlive(),
		UnloadKeepAlive: cfg.UnloadKeepAlive(),
		SettleDelay:     cfg.SettleDelay(),
		Logger:          logger,
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the keeper TUI.
type Model struct {
	ctx        context.Context
	reconciler *status.Reconciler
	dispatcher *residency.Dispatcher
	logger     *slog.Logger
	now        func() time.Time

	// Residency settings, replaceable on config reload
	nameWidth       int
	loadKeepAlive   ollama.KeepAlive
	unloadKeepAlive ollama.KeepAlive
	settleDelay     time.Duration

	// State
	snapshot *status.Snapshot
	rows     []status.Row
	selected int // -1 when nothing is selected
	inflight int // refreshes and residency requests not yet answered
	quitting bool

	// UI
	theme     *styles.Theme
	keys      KeyMap
	help      help.Model
	header    *components.Header
	statusBar *components.StatusBar
	notice    components.Notice
	spinner   components.Spinner
	width     int
	height    int
}

// New creates the TUI model. ctx bounds every request the model issues.
func New(ctx context.Context, rec *status.Reconciler, disp *residency.Dispatcher, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NameWidth <= 0 {
		opts.NameWidth = status.DefaultNameWidth
	}

	theme := styles.NewTheme(opts.Theme)
	header := components.NewHeader(theme)
	header.Endpoint = opts.Endpoint

	h := help.New()
	h.ShortSeparator = "  "

	return Model{
		ctx:             ctx,
		reconciler:      rec,
		dispatcher:      disp,
		logger:          opts.Logger,
		now:             opts.Now,
		nameWidth:       opts.NameWidth,
		loadKeepAlive:   opts.LoadKeepAlive,
		unloadKeepAlive: opts.UnloadKeepAlive,
		settleDelay:     opts.SettleDelay,
		selected:        -1,
		theme:           theme,
		keys:            DefaultKeyMap(),
		help:            h,
		header:          header,
		statusBar:       components.NewStatusBar(theme),
		notice:          components.NewNotice(theme),
		spinner:         components.NewSpinner(theme),
		width:           80,
		height:          24,
	}
}

// Init fires the first refresh and starts the countdown.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return RefreshMsg{} },
		tick(),
	)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Snapshot returns the last successful snapshot, or nil before the first.
func (m Model) Snapshot() *status.Snapshot {
	return m.snapshot
}

// Rows returns the rows as of the last render.
func (m Model) Rows() []status.Row {
	return m.rows
}

// Selected returns the selected row index, or -1.
func (m Model) Selected() int {
	return m.selected
}

// SelectedModel returns the name of the selected model.
func (m Model) SelectedModel() (string, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return "", false
	}
	return m.rows[m.selected].Name, true
}

// =============================================================================
// COMMANDS
// =============================================================================

// reconcileCmd runs one reconciliation off the update loop.
func (m Model) reconcileCmd() tea.Cmd {
	rec, ctx := m.reconciler, m.ctx
	return func() tea.Msg {
		snap, err := rec.Reconcile(ctx)
		if err != nil {
			return ReconcileFailedMsg{Err: err}
		}
		return SnapshotMsg{Snapshot: snap}
	}
}

// applyCmd sends one residency request off the update loop.
func (m Model) applyCmd(model string, action Action) tea.Cmd {
	disp, ctx := m.dispatcher, m.ctx
	keepAlive := m.keepAliveFor(action)
	return func() tea.Msg {
		res, err := disp.Apply(ctx, model, keepAlive)
		if err != nil {
			return ResidencyFailedMsg{Action: action, Model: model, Err: err}
		}
		return ResidencyAppliedMsg{Action: action, Result: res}
	}
}

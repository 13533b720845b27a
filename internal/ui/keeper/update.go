// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keeper

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/keeper/internal/ollama"
	"github.com/jeranaias/keeper/internal/residency"
	"github.com/jeranaias/keeper/internal/status"
	"github.com/jeranaias/keeper/internal/ui/components"
)

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.render()
		return m, tick()

	case RefreshMsg:
		return m, m.beginWork(components.StatusRefreshing, MsgRefreshing, m.reconcileCmd())

	case SnapshotMsg:
		m.endWork()
		m.snapshot = msg.Snapshot
		m.render()
		m.statusBar.LastFetched = msg.Snapshot.FetchedAt()
		m.statusBar.SetStatus(m.idleStatus(), MsgUpdated)
		return m, nil

	case ReconcileFailedMsg:
		m.endWork()
		m.logger.Warn("refresh failed", "error", msg.Err)
		m.statusBar.SetStatus(components.StatusError, MsgConnectionError)
		m.notice.Show(components.NoticeError, "Connection error",
			msg.Err.Error(),
			fmt.Sprintf("Check that Ollama is running at %s", m.header.Endpoint),
			"Press r to retry",
		)
		return m, nil

	case ResidencyAppliedMsg:
		m.endWork()
		res := msg.Result
		m.statusBar.SetStatus(m.idleStatus(),
			fmt.Sprintf("Request to %s '%s' accepted (%s).", msg.Action, res.Model, res.Endpoint))
		return m, refreshAfter(m.settleDelay)

	case ResidencyFailedMsg:
		m.endWork()
		m.logger.Warn("residency change failed", "action", msg.Action.String(), "model", msg.Model, "error", msg.Err)
		m.statusBar.SetStatus(components.StatusError, fmt.Sprintf("Could not %s '%s'.", msg.Action, msg.Model))
		m.notice.Show(components.NoticeError, "Request failed", msg.Err.Error())
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	// A visible notice is modal.
	if m.notice.IsVisible() {
		m.notice, _ = m.notice.Update(msg)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.beginWork(components.StatusRefreshing, MsgRefreshing, m.reconcileCmd())

	case key.Matches(msg, m.keys.Load):
		return m.requestResidency(ActionLoad)

	case key.Matches(msg, m.keys.Unload):
		return m.requestResidency(ActionUnload)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) requestResidency(action Action) (tea.Model, tea.Cmd) {
	name, ok := m.SelectedModel()
	if !ok {
		m.notice.Show(components.NoticeWarning, "No selection",
			fmt.Sprintf("Select a model from the list to %s.", action))
		return m, nil
	}

	text := fmt.Sprintf("Preparing request to %s '%s'...", action, name)
	return m, m.beginWork(components.StatusApplying, text, m.applyCmd(name, action))
}

// moveSelection moves the cursor by delta. The first move from no selection
// lands on the first row.
func (m *Model) moveSelection(delta int) {
	if len(m.rows) == 0 {
		return
	}
	if m.selected < 0 {
		m.selected = 0
		return
	}
	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.rows) {
		next = len(m.rows) - 1
	}
	m.selected = next
}

// =============================================================================
// STATE HELPERS
// =============================================================================

// beginWork marks a request in flight and returns it batched with the spinner.
func (m *Model) beginWork(st components.Status, text string, work tea.Cmd) tea.Cmd {
	m.inflight++
	m.statusBar.SetStatus(st, text)
	return tea.Batch(m.spinner.Start(), work)
}

func (m *Model) endWork() {
	if m.inflight > 0 {
		m.inflight--
	}
	if m.inflight == 0 {
		m.spinner.Stop()
	}
}

func (m *Model) idleStatus() components.Status {
	if m.inflight > 0 {
		return m.statusBar.Status
	}
	return components.StatusReady
}

// render recomputes rows from the snapshot at the current instant. The
// selection is kept by position; it is cleared only when the position no
// longer exists.
func (m *Model) render() {
	m.rows = status.Render(m.snapshot, m.now(), m.nameWidth)
	if m.selected >= len(m.rows) {
		m.selected = -1
	}

	resident := 0
	for _, r := range m.rows {
		if r.Countdown.State == status.StatePermanent || r.Countdown.State == status.StateExpiring {
			resident++
		}
		if r.Countdown.State == status.StateInvalid {
			m.logger.Debug("unparseable expiry", "model", r.Name, "error", r.Countdown.Err)
		}
	}
	m.header.SetCounts(resident, len(m.rows))
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.notice.SetWidth(width)
	m.help.Width = width
}

// applyConfig takes the live-reloadable settings from a reloaded config.
// The runtime URL is not among them.
func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.logger.Warn("config reload failed", "error", msg.Err)
		m.notice.Show(components.NoticeWarning, "Config not reloaded", msg.Err.Error(),
			"The previous settings stay in effect")
		return
	}

	cfg := msg.Config
	m.dispatcher = m.dispatcher.WithClassifier(residency.NewClassifier(cfg.Residency.ChatKeywords))
	m.loadKeepAlive = cfg.LoadKeepAlive()
	m.unloadKeepAlive = cfg.UnloadKeepAlive()
	m.settleDelay = cfg.SettleDelay()
	m.nameWidth = cfg.UI.NameWidth
	m.render()

	m.logger.Info("config reloaded",
		"chat_keywords", cfg.Residency.ChatKeywords,
		"load_keep_alive", m.loadKeepAlive.String(),
		"unload_keep_alive", m.unloadKeepAlive.String(),
	)
	if cfg.Ollama.URL != m.header.Endpoint {
		m.logger.Warn("ollama.url changes take effect after restart", "url", cfg.Ollama.URL)
	}
	m.statusBar.SetStatus(m.idleStatus(), MsgConfigReloaded)
}

// keepAliveFor returns the keep_alive value sent for action.
func (m Model) keepAliveFor(action Action) ollama.KeepAlive {
	if action == ActionUnload {
		return m.unloadKeepAlive
	}
	return m.loadKeepAlive
}

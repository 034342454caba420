// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/store"
	"github.com/jeranaias/parley-tui/internal/throttle"
	"github.com/jeranaias/parley-tui/internal/ui/components"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// Update is the single mutation point for all chat state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case throttle.TickMsg:
		remaining, cmd := m.throttle.HandleTick(msg.Time)
		m.statusBar.SetCooldown(remaining)
		return m, cmd

	case SessionsLoadedMsg:
		return m, m.handleSessionsLoaded(msg)

	case SessionCreatedMsg:
		return m, m.handleSessionCreated(msg)

	case MessagesLoadedMsg:
		return m, m.handleMessagesLoaded(msg)

	case SendResultMsg:
		return m, m.handleSendResult(msg)

	case RenameResultMsg:
		if msg.Err != nil {
			m.statusBar.SetError("rename failed: " + msg.Err.Error())
			// The optimistic name is stale now; re-sync from the backend.
			return m, loadSessionsCmd(m.client)
		}
		return m, nil

	case DeleteResultMsg:
		return m, m.handleDeleteResult(msg)
	}

	return m, m.updateComponents(msg)
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	sidebarWidth := m.sidebar.Width
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		sidebarWidth = 0
	}

	contentWidth := msg.Width - sidebarWidth
	contentHeight := msg.Height - 4 // header, input border, status bar

	if !m.ready {
		m.viewport = viewport.New(contentWidth, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = contentHeight
	}

	m.sidebar.SetSize(sidebarWidth, contentHeight)
	m.statusBar.SetWidth(msg.Width)
	m.messageView.SetWidth(contentWidth)
	m.input.Width = contentWidth - 4
	m.refreshViewport()
	return nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always wins.
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	// Rename mode swallows everything except save/cancel.
	if m.sidebar.Mode() == components.SidebarRename {
		return m.handleRenameKey(msg)
	}
	if m.sidebar.Mode() == components.SidebarConfirmDelete {
		return m.handleConfirmDeleteKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.FocusToggle):
		if m.focus == FocusInput {
			m.focus = FocusSidebar
			m.input.Blur()
		} else {
			m.focus = FocusInput
			m.input.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		m.statusBar.SetStatus(components.StatusLoading)
		return m, createSessionCmd(m.client)

	case key.Matches(msg, m.keys.Reasoning):
		m.messageView.ShowReasoning = !m.messageView.ShowReasoning
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.Timestamps):
		m.messageView.ShowTimestamps = !m.messageView.ShowTimestamps
		m.refreshViewport()
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := m.store.Sessions()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.MoveCursor(-1, len(sessions))
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.sidebar.MoveCursor(1, len(sessions))
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.sidebar.Cursor < len(sessions) {
			return m, m.selectSession(sessions[m.sidebar.Cursor].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Rename):
		if m.sidebar.Cursor < len(sessions) {
			m.sidebar.StartRename(sessions[m.sidebar.Cursor])
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.sidebar.Cursor < len(sessions) {
			m.sidebar.StartConfirmDelete()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := m.store.Sessions()

	switch {
	case key.Matches(msg, m.keys.Submit):
		name := m.sidebar.RenameValue()
		m.sidebar.ExitMode()
		if name == "" || m.sidebar.Cursor >= len(sessions) {
			// An empty name is a validation failure; nothing is sent.
			return m, nil
		}
		target := sessions[m.sidebar.Cursor]
		if name == target.Title() {
			return m, nil
		}
		// Optimistic: mirror the name locally, reconcile on failure.
		m.store.SessionRenamed(target.ID, name)
		return m, renameSessionCmd(m.client, target.ID, name)

	case key.Matches(msg, m.keys.Cancel):
		m.sidebar.ExitMode()
		return m, nil
	}

	return m, m.sidebar.UpdateRename(msg)
}

func (m *Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := m.store.Sessions()

	switch msg.String() {
	case "y", "Y":
		m.sidebar.ExitMode()
		if m.sidebar.Cursor < len(sessions) {
			return m, deleteSessionCmd(m.client, sessions[m.sidebar.Cursor].ID)
		}
		return m, nil
	case "n", "N", "esc":
		m.sidebar.ExitMode()
		return m, nil
	}
	return m, nil
}

// =============================================================================
// COMPOSE FLOW
// =============================================================================

// submit validates, gates on the throttle, registers the pending entry, and
// dispatches the send. The pending entry is created before the request goes
// out so the message is on screen immediately.
func (m *Model) submit() tea.Cmd {
	body := m.input.Value()
	if reason := m.composeError(body); reason != "" {
		m.statusBar.SetError(reason)
		return nil
	}

	sendTime := now()
	pending := m.tracker.Begin(body, sendTime)
	m.throttle.RecordSend(sendTime)
	m.input.SetValue("")
	m.statusBar.SetStatus(components.StatusWaiting)
	m.statusBar.SetCooldown(m.throttle.Remaining(sendTime))
	m.refreshViewport()

	return tea.Batch(
		sendMessageCmd(m.client, m.store.CurrentID(), pending.ClientID, body, sendTime),
		throttle.TickCmd(),
	)
}

// handleSendResult resolves one send. The throttle's in-flight latch clears
// on every outcome; the cooldown keeps running from the send time either way.
func (m *Model) handleSendResult(msg SendResultMsg) tea.Cmd {
	m.throttle.ClearInFlight()

	if msg.Err != nil {
		// Only the affected entry changes; the rest of the timeline is
		// untouched. The user recomposes, nothing auto-retries.
		m.tracker.MarkFailed(msg.ClientID)
		m.statusBar.SetError("send failed: " + msg.Err.Error())
		m.refreshViewport()
		return nil
	}

	m.tracker.MarkSent(msg.ClientID)

	if msg.ChatID == m.store.CurrentID() {
		m.store.MessagesAppended(msg.ChatID,
			model.NewConfirmedMessage(model.SenderUser, msg.SentBody, msg.SentAt),
			model.NewConfirmedMessage(model.SenderAgent, msg.Reply, now()),
		)
		// The confirmed copy is in the store now; drop the pending twin.
		m.tracker.Resolve(msg.ClientID)
		m.statusBar.SetStatus(components.StatusReady)
	}

	m.refreshViewport()
	return nil
}

// =============================================================================
// SESSION RESULTS
// =============================================================================

func (m *Model) handleSessionsLoaded(msg SessionsLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.statusBar.SetError("failed to load chats: " + msg.Err.Error())
		return nil
	}

	m.store.SessionsLoaded(msg.Sessions)
	m.sidebar.ClampCursor(len(msg.Sessions))
	m.statusBar.SetStatus(components.StatusReady)

	// Auto-select the first chat on initial load.
	if !m.store.HasCurrent() && len(msg.Sessions) > 0 {
		return m.selectSession(msg.Sessions[0].ID)
	}
	return nil
}

func (m *Model) handleSessionCreated(msg SessionCreatedMsg) tea.Cmd {
	if msg.Err != nil {
		m.statusBar.SetError("failed to create chat: " + msg.Err.Error())
		return nil
	}

	m.store.SessionCreated(msg.Session)
	m.tracker.Reset()
	m.sidebar.Cursor = len(m.store.Sessions()) - 1
	m.statusBar.SetStatus(components.StatusLoading)
	return fetchMessagesCmd(m.client, msg.Session.ID)
}

func (m *Model) handleMessagesLoaded(msg MessagesLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.store.LoadFailed(msg.ChatID, msg.Err)
		if msg.ChatID == m.store.CurrentID() {
			m.statusBar.SetError("failed to load messages: " + msg.Err.Error())
		}
		return nil
	}

	m.store.MessagesLoaded(msg.ChatID, msg.Messages)
	if msg.ChatID == m.store.CurrentID() {
		m.statusBar.SetStatus(components.StatusReady)
		m.refreshViewport()
	}
	return nil
}

func (m *Model) handleDeleteResult(msg DeleteResultMsg) tea.Cmd {
	if msg.Err != nil {
		m.statusBar.SetError("delete failed: " + msg.Err.Error())
		return nil
	}

	wasCurrent := msg.ChatID == m.store.CurrentID()
	m.store.SessionDeleted(msg.ChatID)
	m.sidebar.ClampCursor(len(m.store.Sessions()))

	if wasCurrent {
		m.tracker.Reset()
		m.refreshViewport()
		// Selection fell back to the first remaining session; its history
		// needs fetching. Status is loading in that case.
		if m.store.Status() == store.StatusLoading {
			return fetchMessagesCmd(m.client, m.store.CurrentID())
		}
	}
	return nil
}

// updateComponents forwards unrecognized messages to the focused bubbles.
func (m *Model) updateComponents(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.focus == FocusInput {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

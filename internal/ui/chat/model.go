// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/delivery"
	"github.com/jeranaias/parley-tui/internal/store"
	"github.com/jeranaias/parley-tui/internal/throttle"
	"github.com/jeranaias/parley-tui/internal/timeline"
	"github.com/jeranaias/parley-tui/internal/ui/components"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// now is swapped out in tests.
var now = time.Now

// Focus identifies which pane receives key input.
type Focus int

const (
	FocusInput Focus = iota
	FocusSidebar
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the root Bubble Tea model for the chat interface. All state is
// mutated in Update only; backend calls run as commands and report back via
// the typed messages in messages.go.
type Model struct {
	client *api.Client
	keys   KeyMap
	theme  *styles.Theme

	// Domain state
	store    *store.Store
	tracker  *delivery.Tracker
	throttle *throttle.Throttle

	// Components
	sidebar     *components.Sidebar
	statusBar   *components.StatusBar
	messageView *components.MessageView
	input       textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model

	focus Focus

	width  int
	height int
	ready  bool

	quitting bool
}

// New creates the chat model.
func New(client *api.Client, cfg *config.Config) *Model {
	theme := styles.NewTheme()

	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.InfoStyle

	mv := components.NewMessageView(theme)
	mv.ShowTimestamps = cfg.UI.ShowTimestamps
	mv.ShowReasoning = cfg.UI.ShowReasoning

	return &Model{
		client:      client,
		keys:        DefaultKeyMap(),
		theme:       theme,
		store:       store.New(),
		tracker:     delivery.NewTracker(),
		throttle:    throttle.New(),
		sidebar:     components.NewSidebar(theme, cfg.UI.SidebarWidth),
		statusBar:   components.NewStatusBar(theme),
		messageView: mv,
		input:       ti,
		spinner:     sp,
		focus:       FocusInput,
	}
}

// Init fetches the chat list and starts the spinner.
func (m *Model) Init() tea.Cmd {
	m.statusBar.SetStatus(components.StatusLoading)
	return tea.Batch(
		loadSessionsCmd(m.client),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Timeline returns the merged confirmed and pending messages for the
// current session.
func (m *Model) Timeline() []timeline.Entry {
	return timeline.Merge(m.store.Messages(), m.tracker.Entries())
}

// awaitingReply reports whether a send is outstanding.
func (m *Model) awaitingReply() bool {
	return m.throttle.InFlight()
}

// composeError returns the reason the current input cannot be sent, or "".
func (m *Model) composeError(body string) string {
	switch {
	case strings.TrimSpace(body) == "":
		return "message is empty"
	case !m.store.HasCurrent():
		return "select or create a chat first"
	case m.awaitingReply():
		return "still waiting for the previous reply"
	case !m.throttle.CanSend(now()):
		return "sending too fast, wait for the cooldown"
	default:
		return ""
	}
}

// refreshViewport re-renders the timeline into the viewport and scrolls to
// the bottom.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.messageView.RenderAll(m.Timeline()))
	m.viewport.GotoBottom()
}

// selectSession switches the store to a session and dispatches its history
// fetch. Pending entries belong to the previous session and are dropped.
func (m *Model) selectSession(chatID string) tea.Cmd {
	if chatID == m.store.CurrentID() {
		return nil
	}
	m.store.SessionSelected(chatID)
	m.tracker.Reset()
	m.statusBar.SetStatus(components.StatusLoading)
	m.refreshViewport()
	return fetchMessagesCmd(m.client, chatID)
}

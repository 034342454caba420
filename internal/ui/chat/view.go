// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// View renders the full chat screen: header, sidebar plus timeline, input
// line, status bar.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  " + m.spinner.View() + " starting..."
	}

	header := m.renderHeader()
	body := m.renderBody()
	input := m.renderInput()
	status := m.statusBar.View()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, input, status)
}

func (m *Model) renderHeader() string {
	title := "Parley"
	if current, ok := m.store.Current(); ok {
		title = current.Title()
	}
	brand := m.theme.HeaderBrand.Render("parley")
	name := m.theme.HeaderTitle.Render(title)
	return m.theme.Header.Width(m.width).Render(brand + "  " + name)
}

func (m *Model) renderBody() string {
	timelineView := m.viewport.View()

	if m.awaitingReply() {
		timelineView += "\n" + m.spinner.View() + " " + m.theme.InfoStyle.Render("agent is replying")
	}

	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		return timelineView
	}

	sidebarView := m.sidebar.View(m.store.Sessions(), m.store.CurrentID())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarView, timelineView)
}

func (m *Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("> ")
	var hint string
	if m.focus == FocusSidebar {
		hint = m.theme.InputPlaceholder.Render(" (tab returns to compose)")
	}
	line := prompt + m.input.View() + hint
	return m.theme.InputContainer.Width(m.width).Render(strings.TrimRight(line, " "))
}

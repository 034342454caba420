// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT - Chat session list
// =============================================================================

// SidebarMode is the sidebar's interaction mode.
type SidebarMode int

const (
	// SidebarBrowse is the normal list mode.
	SidebarBrowse SidebarMode = iota
	// SidebarRename is inline rename: a text input replaces the cursor row.
	SidebarRename
	// SidebarConfirmDelete shows a confirm prompt on the cursor row.
	SidebarConfirmDelete
)

// Sidebar renders the chat session list and manages rename/delete entry.
// Selection state itself lives in the store; the sidebar only owns the
// cursor position and its edit modes.
type Sidebar struct {
	theme *styles.Theme

	// Width is the sidebar width in columns.
	Width int
	// Height is the number of rows available for the list.
	Height int

	// Cursor is the highlighted row, an index into the session slice.
	Cursor int

	mode        SidebarMode
	renameInput textinput.Model
}

// NewSidebar creates a sidebar.
func NewSidebar(theme *styles.Theme, width int) *Sidebar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64

	return &Sidebar{
		theme:       theme,
		Width:       width,
		Height:      20,
		renameInput: ti,
	}
}

// Mode returns the current interaction mode.
func (s *Sidebar) Mode() SidebarMode {
	return s.mode
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// ClampCursor keeps the cursor inside the session list after changes.
func (s *Sidebar) ClampCursor(sessionCount int) {
	if s.Cursor >= sessionCount {
		s.Cursor = sessionCount - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// MoveCursor shifts the cursor by delta, clamped to the list.
func (s *Sidebar) MoveCursor(delta, sessionCount int) {
	s.Cursor += delta
	s.ClampCursor(sessionCount)
}

// StartRename enters rename mode seeded with the session's current title.
func (s *Sidebar) StartRename(current model.Session) {
	s.mode = SidebarRename
	s.renameInput.SetValue(current.Title())
	s.renameInput.CursorEnd()
	s.renameInput.Focus()
}

// RenameValue returns the trimmed rename buffer.
func (s *Sidebar) RenameValue() string {
	return strings.TrimSpace(s.renameInput.Value())
}

// StartConfirmDelete enters delete confirmation mode.
func (s *Sidebar) StartConfirmDelete() {
	s.mode = SidebarConfirmDelete
}

// ExitMode returns to browse mode, discarding any edit state.
func (s *Sidebar) ExitMode() {
	s.mode = SidebarBrowse
	s.renameInput.Blur()
	s.renameInput.SetValue("")
}

// UpdateRename forwards a key event to the rename input.
func (s *Sidebar) UpdateRename(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.renameInput, cmd = s.renameInput.Update(msg)
	return cmd
}

// View renders the session list. The selected session (store selection) is
// highlighted; the cursor row carries a pointer marker.
func (s *Sidebar) View(sessions []model.Session, currentID string) string {
	var b strings.Builder
	b.WriteString(s.theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n")

	if len(sessions) == 0 {
		b.WriteString(s.theme.InfoStyle.Render("none yet"))
		b.WriteString("\n")
		b.WriteString(s.theme.ShortcutDesc.Render("ctrl+n creates one"))
		return s.theme.Sidebar.Width(s.Width).Render(b.String())
	}

	innerWidth := s.Width - 4
	for i, sess := range sessions {
		switch {
		case i == s.Cursor && s.mode == SidebarRename:
			b.WriteString(s.theme.SidebarRenameInput.Render(s.renameInput.View()))
		case i == s.Cursor && s.mode == SidebarConfirmDelete:
			b.WriteString(s.theme.SidebarDeletePrompt.Render("delete? y/n"))
		default:
			b.WriteString(s.renderRow(sess, i, currentID, innerWidth))
		}
		b.WriteString("\n")
	}
	return s.theme.Sidebar.Width(s.Width).Render(b.String())
}

func (s *Sidebar) renderRow(sess model.Session, index int, currentID string, width int) string {
	marker := "  "
	if index == s.Cursor {
		marker = "> "
	}
	title := util.TruncateWidth(sess.Title(), width)

	if sess.ID == currentID {
		return s.theme.SidebarItemSelected.Render(marker + title)
	}
	return s.theme.SidebarItem.Render(marker + title)
}

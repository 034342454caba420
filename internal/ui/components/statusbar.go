// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusWaiting
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusWaiting:
		return "Waiting for reply..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// StatusBar represents the bottom status bar.
type StatusBar struct {
	Status   Status
	Width    int
	ErrorMsg string

	// Cooldown is the remaining send cooldown; zero hides the countdown.
	Cooldown time.Duration

	// ShowShortcuts renders the key hints on wide terminals.
	ShowShortcuts bool

	theme *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status and clears any previous error.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
	if status != StatusError {
		s.ErrorMsg = ""
	}
}

// SetError switches to the error status with a message.
func (s *StatusBar) SetError(msg string) {
	s.Status = StatusError
	s.ErrorMsg = msg
}

// SetCooldown updates the remaining send cooldown display.
func (s *StatusBar) SetCooldown(remaining time.Duration) {
	s.Cooldown = remaining
}

// View renders the status bar.
func (s *StatusBar) View() string {
	parts := []string{s.renderStatus()}

	if s.Cooldown > 0 {
		secs := int(s.Cooldown.Round(time.Second).Seconds())
		parts = append(parts, s.theme.StatusCooldown.Render(fmt.Sprintf("next send in %ds", secs)))
	}

	left := strings.Join(parts, "  ")

	if s.ShowShortcuts && s.Width >= 100 {
		hints := s.renderShortcuts()
		gap := s.Width - util.StringWidth(left) - util.StringWidth(hints) - 2
		if gap > 0 {
			return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + hints)
		}
	}

	return s.theme.StatusBar.Width(s.Width).Render(util.TruncateWidth(left, s.Width-2))
}

func (s *StatusBar) renderStatus() string {
	if s.Status == StatusError {
		msg := s.ErrorMsg
		if msg == "" {
			msg = "something went wrong"
		}
		return s.theme.StatusError.Render("x " + msg)
	}
	return s.Status.String()
}

func (s *StatusBar) renderShortcuts() string {
	hints := []struct{ key, desc string }{
		{"tab", "sidebar"},
		{"ctrl+n", "new"},
		{"ctrl+r", "reasoning"},
		{"ctrl+c", "quit"},
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = s.theme.ShortcutKey.Render(h.key) + s.theme.ShortcutDesc.Render(" "+h.desc)
	}
	return strings.Join(parts, "  ")
}

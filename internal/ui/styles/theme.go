// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Parley TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderBrand lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarTitle        lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarItemSelected lipgloss.Style
	SidebarRenameInput  lipgloss.Style
	SidebarDeletePrompt lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserBubble   lipgloss.Style
	AgentBubble  lipgloss.Style
	SenderLabel  lipgloss.Style
	Timestamp    lipgloss.Style
	Emphasis     lipgloss.Style
	ListBullet   lipgloss.Style
	Reasoning    lipgloss.Style
	ReasoningTag lipgloss.Style

	// Delivery state markers for pending messages
	DeliverySending lipgloss.Style
	DeliverySent    lipgloss.Style
	DeliveryFailed  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar      lipgloss.Style
	StatusError    lipgloss.Style
	StatusCooldown lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style

	// ==========================================================================
	// FEEDBACK STYLES
	// ==========================================================================

	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		PaddingRight(1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(1)

	t.SidebarItemSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Purple).
		PaddingLeft(1)

	t.SidebarRenameInput = lipgloss.NewStyle().
		Foreground(Amber).
		PaddingLeft(1)

	t.SidebarDeletePrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose).
		PaddingLeft(1)

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(UserBubbleBorder).
		PaddingLeft(1).
		MarginLeft(2)

	t.AgentBubble = lipgloss.NewStyle().
		Foreground(AgentBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(AgentBubbleBorder).
		PaddingLeft(1)

	t.SenderLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Emphasis = lipgloss.NewStyle().
		Bold(true)

	t.ListBullet = lipgloss.NewStyle().
		Foreground(Purple)

	t.Reasoning = lipgloss.NewStyle().
		Foreground(ReasoningFg).
		Italic(true)

	t.ReasoningTag = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Delivery markers
	t.DeliverySending = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	t.DeliverySent = lipgloss.NewStyle().
		Foreground(Emerald)

	t.DeliveryFailed = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.StatusError = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.StatusCooldown = lipgloss.NewStyle().
		Foreground(Amber)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Feedback
	t.ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(Amber)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(Cyan)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

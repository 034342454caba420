// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Parley TUI.
//
// Colors are defined once as lipgloss.AdaptiveColor values so every style
// renders correctly on both light and dark terminals, degrading gracefully
// on terminals without true color support. The Theme type bundles every
// style the UI uses; components take a *Theme rather than building styles
// inline, so the whole presentation is adjustable in one place.
package styles

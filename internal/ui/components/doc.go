// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Parley TUI.
//
// Components are pure renderers plus the minimum interaction state they
// own: the sidebar keeps its cursor and rename buffer, the status bar its
// current status line. Application state (sessions, messages, selection)
// stays in the chat model and is passed in at render time.
package components

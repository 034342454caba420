// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
package model

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session is one named conversation thread.
type Session struct {
	// ID is assigned by the backend at creation and is opaque to the client.
	ID string

	// Name is the user-editable display label.
	Name string
}

// Title returns the session name or a default when none is set.
func (s *Session) Title() string {
	if s.Name != "" {
		return s.Name
	}
	return "New Chat"
}

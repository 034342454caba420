// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The Model is the root Bubble Tea model. State mutation happens in Update
// only; backend calls run as tea.Cmd goroutines and deliver typed result
// messages. Every result carries the chat ID it was dispatched for, and
// results for a chat that is no longer current are dropped, so switching
// sessions mid-flight can never mix timelines.
//
// The compose flow is deliberately strict about ordering: the pending entry
// is registered and the throttle stamped before the send command is
// dispatched, so the optimistic message is visible and the cooldown running
// no matter how the request ends.
package chat

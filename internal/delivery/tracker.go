// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package delivery tracks the lifecycle of optimistically-sent messages.
package delivery

import (
	"time"

	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// DELIVERY TRACKER
// =============================================================================

// Tracker holds the pending messages for the current session, in insertion
// order. Entries are created synchronously before the network call starts
// so the timeline reflects the send immediately, and are mutated in place
// as the send resolves.
//
// All access happens on the UI update loop; no locking.
type Tracker struct {
	entries []*model.Message
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin creates an in-flight pending entry for the given content and
// appends it to the pending set. It must be called before the network
// call is dispatched (optimistic insertion).
func (t *Tracker) Begin(body string, now time.Time) *model.Message {
	msg := model.NewPendingMessage(body, now)
	t.entries = append(t.entries, msg)
	return msg
}

// MarkSent marks the entry with the given client ID as sent.
// Unknown IDs are a no-op; last write wins.
func (t *Tracker) MarkSent(clientID string) {
	if msg := t.find(clientID); msg != nil {
		msg.Delivery = model.DeliverySent
	}
}

// MarkFailed marks the entry with the given client ID as failed. The entry
// stays in the timeline as a visible marker; it is never retried
// automatically - the user resends through the normal compose path.
// Unknown IDs are a no-op; last write wins.
func (t *Tracker) MarkFailed(clientID string) {
	if msg := t.find(clientID); msg != nil {
		msg.Delivery = model.DeliveryFailed
	}
}

// Resolve removes the entry with the given client ID. Called once the
// confirmed counterpart has been appended to the session store, so the
// timeline never shows the same message twice. Unknown IDs are a no-op.
func (t *Tracker) Resolve(clientID string) {
	for i, msg := range t.entries {
		if msg.ClientID == clientID {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

// Reset clears all pending entries. Called on session switch and session
// reset; pending entries are never carried across sessions.
func (t *Tracker) Reset() {
	t.entries = nil
}

// Entries returns the pending entries in insertion order. The caller must
// not mutate the returned slice.
func (t *Tracker) Entries() []*model.Message {
	return t.entries
}

// Len returns the number of pending entries.
func (t *Tracker) Len() int {
	return len(t.entries)
}

// Get returns the entry with the given client ID, or nil.
func (t *Tracker) Get(clientID string) *model.Message {
	return t.find(clientID)
}

func (t *Tracker) find(clientID string) *model.Message {
	for _, msg := range t.entries {
		if msg.ClientID == clientID {
			return msg
		}
	}
	return nil
}

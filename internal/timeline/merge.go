// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline merges confirmed and pending messages into one ordered
// sequence for rendering.
package timeline

import (
	"sort"

	"github.com/jeranaias/parley-tui/internal/format"
	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// TIMELINE ENTRY
// =============================================================================

// Entry is one renderable timeline item: the message plus its parsed body
// (agent messages only) and a stable rendering key.
type Entry struct {
	Message *model.Message

	// Key identifies the entry across recomputations: the client ID when
	// present, else the server identity, else the positional index.
	Key string

	// Content is the parsed body for agent messages. Nil for user messages,
	// whose bodies render verbatim.
	Content *format.Formatted
}

// =============================================================================
// MERGE
// =============================================================================

// Merge combines the confirmed history with the pending set into a single
// chronologically ordered sequence. The sort is stable: messages sharing a
// timestamp keep their relative input order, with confirmed messages ahead
// of pending ones. A fresh slice is produced on every call; no state is
// retained between invocations.
func Merge(confirmed, pending []*model.Message) []Entry {
	merged := make([]*model.Message, 0, len(confirmed)+len(pending))
	merged = append(merged, confirmed...)
	merged = append(merged, pending...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})

	entries := make([]Entry, len(merged))
	for i, msg := range merged {
		entry := Entry{
			Message: msg,
			Key:     msg.Key(i),
		}
		if msg.Sender == model.SenderAgent {
			parsed := format.Parse(msg.Body)
			entry.Content = &parsed
		}
		entries[i] = entry
	}
	return entries
}

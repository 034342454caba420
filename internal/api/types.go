// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"time"

	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// chatJSON is the backend representation of a chat session.
type chatJSON struct {
	ID   string `json:"chatId"`
	Name string `json:"chatName"`
}

// listChatsResponse is the payload of GET /chats.
type listChatsResponse struct {
	Chats []chatJSON `json:"chats"`
}

// messageJSON is the backend representation of a stored message.
// Timestamps arrive as RFC 3339 strings.
type messageJSON struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// fetchMessagesResponse is the payload of GET /chat/{id}.
type fetchMessagesResponse struct {
	Messages []messageJSON `json:"messages"`
}

// sendMessageRequest is the body of POST /chat/{id}/message.
type sendMessageRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// sendMessageResponse is the payload of POST /chat/{id}/message:
// the agent's reply text.
type sendMessageResponse struct {
	Message string `json:"message"`
}

// renameChatRequest is the body of PUT /chat/{id}/name.
type renameChatRequest struct {
	Name string `json:"chatName"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func (c chatJSON) toSession() model.Session {
	return model.Session{ID: c.ID, Name: c.Name}
}

// toMessage converts a wire message to the domain model. An unparseable
// timestamp falls back to the zero time, which sorts the message to the
// front rather than dropping it.
func (m messageJSON) toMessage() *model.Message {
	ts, err := time.Parse(time.RFC3339, m.Timestamp)
	if err != nil {
		ts = time.Time{}
	}
	return model.NewConfirmedMessage(model.SenderFromWire(m.Sender), m.Message, ts)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderAgent:
		return "Agent"
	default:
		return string(s)
	}
}

// Wire returns the value the backend uses for this sender.
// The backend speaks "User" and "AI" on the wire.
func (s Sender) Wire() string {
	switch s {
	case SenderUser:
		return "User"
	case SenderAgent:
		return "AI"
	default:
		return string(s)
	}
}

// SenderFromWire maps a backend sender value to a Sender.
// Anything that is not the user is treated as the agent.
func SenderFromWire(wire string) Sender {
	if wire == "User" || wire == "user" {
		return SenderUser
	}
	return SenderAgent
}

// =============================================================================
// ORIGIN AND DELIVERY STATE
// =============================================================================

// Origin distinguishes backend-confirmed messages from locally-created
// pending ones.
type Origin int

const (
	// OriginConfirmed marks a message fetched from or acknowledged by the backend.
	OriginConfirmed Origin = iota
	// OriginPending marks a locally-created message awaiting backend confirmation.
	OriginPending
)

// DeliveryState tracks the lifecycle of a pending message.
// It is meaningful only on messages with OriginPending.
type DeliveryState int

const (
	DeliveryInFlight DeliveryState = iota
	DeliverySent
	DeliveryFailed
)

// String returns the display label for the delivery state.
func (d DeliveryState) String() string {
	switch d {
	case DeliveryInFlight:
		return "sending"
	case DeliverySent:
		return "sent"
	case DeliveryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a session timeline.
type Message struct {
	// ClientID is generated at creation time for pending messages and is
	// used to locate the entry when the send resolves. It is never reused
	// and has no relation to any server-assigned identity. Empty on
	// confirmed messages.
	ClientID string

	// ServerID is the backend's identity for the message, when the backend
	// provides one. The current message-fetch response carries none, so
	// this is usually empty.
	ServerID string

	Sender Sender
	Body   string

	// Timestamp is the sole ordering key for the merged timeline.
	Timestamp time.Time

	Origin Origin

	// Delivery is only meaningful when Origin is OriginPending.
	Delivery DeliveryState
}

// NewPendingMessage creates a user message in the in-flight delivery state
// with a fresh client ID and the current time as its timestamp.
func NewPendingMessage(body string, now time.Time) *Message {
	return &Message{
		ClientID:  uuid.NewString(),
		Sender:    SenderUser,
		Body:      body,
		Timestamp: now,
		Origin:    OriginPending,
		Delivery:  DeliveryInFlight,
	}
}

// NewConfirmedMessage creates a backend-confirmed message.
func NewConfirmedMessage(sender Sender, body string, ts time.Time) *Message {
	return &Message{
		Sender:    sender,
		Body:      body,
		Timestamp: ts,
		Origin:    OriginConfirmed,
	}
}

// IsPending returns true if the message has not been confirmed by the backend.
func (m *Message) IsPending() bool {
	return m.Origin == OriginPending
}

// Key returns a stable rendering key for the message: the client ID when
// present, otherwise the server identity, otherwise the positional index.
func (m *Message) Key(index int) string {
	if m.ClientID != "" {
		return m.ClientID
	}
	if m.ServerID != "" {
		return m.ServerID
	}
	return "idx_" + strconv.Itoa(index)
}

// Preview returns a truncated preview of the message body.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Body)
	if len(runes) <= maxLen {
		return m.Body
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types for the chat interface and
// the commands that produce them. Every message carrying the result of a
// backend call is tagged with the chat ID it was dispatched for; Update
// drops results whose chat is no longer current.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionsLoadedMsg delivers the result of the chat list fetch.
type SessionsLoadedMsg struct {
	Sessions []model.Session
	Err      error
}

// SessionCreatedMsg delivers the result of creating a chat.
type SessionCreatedMsg struct {
	Session model.Session
	Err     error
}

// RenameResultMsg delivers the outcome of a rename request.
type RenameResultMsg struct {
	ChatID string
	Name   string
	Err    error
}

// DeleteResultMsg delivers the outcome of a delete request.
type DeleteResultMsg struct {
	ChatID string
	Err    error
}

// =============================================================================
// MESSAGE HISTORY MESSAGES
// =============================================================================

// MessagesLoadedMsg delivers the fetched history for a chat.
type MessagesLoadedMsg struct {
	ChatID   string
	Messages []*model.Message
	Err      error
}

// SendResultMsg delivers the outcome of one message send. SentBody and
// SentAt reproduce the user's message so the confirmed copy can be
// appended without refetching the history.
type SendResultMsg struct {
	ChatID   string
	ClientID string
	SentBody string
	SentAt   time.Time
	Reply    string
	Err      error
}

// =============================================================================
// COMMANDS
// =============================================================================

// loadSessionsCmd fetches the chat list.
func loadSessionsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		sessions, err := client.ListChats(context.Background())
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

// createSessionCmd creates a new chat.
func createSessionCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		session, err := client.CreateChat(context.Background())
		return SessionCreatedMsg{Session: session, Err: err}
	}
}

// fetchMessagesCmd fetches the history for a chat.
func fetchMessagesCmd(client *api.Client, chatID string) tea.Cmd {
	return func() tea.Msg {
		messages, err := client.FetchMessages(context.Background(), chatID)
		return MessagesLoadedMsg{ChatID: chatID, Messages: messages, Err: err}
	}
}

// sendMessageCmd posts a user message and waits for the agent's reply.
func sendMessageCmd(client *api.Client, chatID, clientID, body string, sentAt time.Time) tea.Cmd {
	return func() tea.Msg {
		reply, err := client.SendMessage(context.Background(), chatID, body)
		return SendResultMsg{
			ChatID:   chatID,
			ClientID: clientID,
			SentBody: body,
			SentAt:   sentAt,
			Reply:    reply,
			Err:      err,
		}
	}
}

// renameSessionCmd renames a chat.
func renameSessionCmd(client *api.Client, chatID, name string) tea.Cmd {
	return func() tea.Msg {
		err := client.RenameChat(context.Background(), chatID, name)
		return RenameResultMsg{ChatID: chatID, Name: name, Err: err}
	}
}

// deleteSessionCmd deletes a chat.
func deleteSessionCmd(client *api.Client, chatID string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteChat(context.Background(), chatID)
		return DeleteResultMsg{ChatID: chatID, Err: err}
	}
}

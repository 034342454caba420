// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
//
// A Message is the atomic unit of conversation. Messages come in two
// origins: confirmed messages fetched from the backend, and pending
// messages created locally while a send is in flight. Pending messages
// carry a client-generated ID and a delivery state; confirmed messages
// carry neither.
//
// A Session is one named conversation thread. Its message history is the
// confirmed history as last fetched from the backend - it is not live.
package model

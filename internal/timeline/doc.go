// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline merges confirmed and pending messages into one ordered
// sequence for rendering.
//
// The timestamp is the sole ordering key; the sort is stable so that
// messages sharing a timestamp keep their relative insertion order. Agent
// message bodies are run through the response formatter on the way out, so
// the UI renders parsed structure and never raw agent text.
package timeline

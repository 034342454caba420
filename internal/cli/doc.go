// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the non-TUI
// subcommands: token management, configuration display, version and help.
// The default command launches the chat interface; main routes there.
package cli

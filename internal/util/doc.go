// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers for the Parley TUI.
//
// String helpers wrap mattn/go-runewidth so truncation and padding respect
// display width (CJK characters occupy two columns). File helpers provide
// crash-safe atomic writes used for the token and config files.
package util

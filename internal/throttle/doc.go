// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package throttle enforces the client-side cooldown between sends.
//
// The throttle protects the backend agent from rapid-fire requests and
// gives the user a visible countdown instead of a silent block. It is
// purely time-based: RecordSend starts the full cooldown at dispatch time
// whether or not the request later succeeds. A 1 Hz Bubble Tea tick drives
// the countdown display and stops itself once the cooldown elapses.
package throttle

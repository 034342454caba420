// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package throttle enforces the client-side cooldown between sends.
package throttle

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Cooldown is the fixed minimum interval between consecutive sends.
// Throttling is client-side and time-based: the cooldown starts when a
// send is dispatched, regardless of how the network call turns out.
const Cooldown = 10 * time.Second

// =============================================================================
// THROTTLE
// =============================================================================

// Throttle tracks the last accepted send and whether a send is in flight.
type Throttle struct {
	mu sync.Mutex

	lastSendAt time.Time
	inFlight   bool
}

// New creates a throttle with no send recorded.
func New() *Throttle {
	return &Throttle{}
}

// CanSend returns true iff no send is in flight and the cooldown from the
// most recent send (if any) has fully elapsed.
func (t *Throttle) CanSend(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inFlight {
		return false
	}
	return t.remainingLocked(now) == 0
}

// RecordSend marks an accepted send: the cooldown restarts at its full
// length and the in-flight flag is set until ClearInFlight.
func (t *Throttle) RecordSend(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSendAt = now
	t.inFlight = true
}

// ClearInFlight marks the outstanding send as resolved. The cooldown keeps
// running on its own clock.
func (t *Throttle) ClearInFlight() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight = false
}

// InFlight reports whether a send is currently outstanding.
func (t *Throttle) InFlight() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight
}

// Remaining returns how much of the cooldown is left, zero once elapsed.
func (t *Throttle) Remaining(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingLocked(now)
}

func (t *Throttle) remainingLocked(now time.Time) time.Duration {
	if t.lastSendAt.IsZero() {
		return 0
	}
	remaining := Cooldown - now.Sub(t.lastSendAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears all throttle state. Used by tests and by a full session reset.
func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSendAt = time.Time{}
	t.inFlight = false
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent once per second while the cooldown counts down.
type TickMsg struct {
	Time time.Time
}

// TickCmd returns a command that ticks once per second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick recomputes the countdown on a tick. It returns the remaining
// cooldown and the follow-up command: another tick while the countdown is
// still running, nil once it reaches zero (the next send restarts it).
func (t *Throttle) HandleTick(now time.Time) (time.Duration, tea.Cmd) {
	remaining := t.Remaining(now)
	if remaining == 0 {
		return 0, nil
	}
	return remaining, TickCmd()
}

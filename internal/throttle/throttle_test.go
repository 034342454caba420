// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package throttle enforces the client-side cooldown between sends.
package throttle

import (
	"testing"
	"time"
)

func TestThrottle_InitialState(t *testing.T) {
	th := New()
	now := time.Now()

	if !th.CanSend(now) {
		t.Error("fresh throttle should allow sending")
	}
	if th.Remaining(now) != 0 {
		t.Errorf("Remaining = %v, want 0", th.Remaining(now))
	}
}

func TestThrottle_RecordSend(t *testing.T) {
	th := New()
	t0 := time.Now()

	th.RecordSend(t0)

	if th.CanSend(t0) {
		t.Error("CanSend should be false immediately after RecordSend")
	}
	if got := th.Remaining(t0); got != Cooldown {
		t.Errorf("Remaining(t0) = %v, want %v", got, Cooldown)
	}
}

func TestThrottle_CooldownElapses(t *testing.T) {
	th := New()
	t0 := time.Now()

	th.RecordSend(t0)
	th.ClearInFlight()

	mid := t0.Add(Cooldown / 2)
	if th.CanSend(mid) {
		t.Error("CanSend should be false halfway through the cooldown")
	}
	if got := th.Remaining(mid); got != Cooldown/2 {
		t.Errorf("Remaining at midpoint = %v, want %v", got, Cooldown/2)
	}

	end := t0.Add(Cooldown)
	if got := th.Remaining(end); got != 0 {
		t.Errorf("Remaining at t0+cooldown = %v, want 0", got)
	}
	if !th.CanSend(end) {
		t.Error("CanSend should be true once the cooldown elapses")
	}
}

func TestThrottle_InFlightBlocksIndependently(t *testing.T) {
	th := New()
	t0 := time.Now()

	th.RecordSend(t0)

	// Even after the cooldown, an unresolved send still blocks.
	end := t0.Add(Cooldown + time.Second)
	if th.CanSend(end) {
		t.Error("CanSend should be false while a send is in flight")
	}

	th.ClearInFlight()
	if !th.CanSend(end) {
		t.Error("CanSend should be true after the send resolves")
	}
}

func TestThrottle_CooldownIndependentOfOutcome(t *testing.T) {
	th := New()
	t0 := time.Now()

	th.RecordSend(t0)
	th.ClearInFlight() // send failed fast; the cooldown still runs

	if th.CanSend(t0.Add(time.Second)) {
		t.Error("a failed send must not shorten the cooldown")
	}
}

func TestThrottle_HandleTick(t *testing.T) {
	th := New()
	t0 := time.Now()
	th.RecordSend(t0)

	remaining, cmd := th.HandleTick(t0.Add(3 * time.Second))
	if remaining != Cooldown-3*time.Second {
		t.Errorf("remaining = %v, want %v", remaining, Cooldown-3*time.Second)
	}
	if cmd == nil {
		t.Error("tick should reschedule itself while counting down")
	}

	remaining, cmd = th.HandleTick(t0.Add(Cooldown))
	if remaining != 0 {
		t.Errorf("remaining = %v, want 0", remaining)
	}
	if cmd != nil {
		t.Error("tick should stop once the cooldown reaches zero")
	}
}

func TestThrottle_Reset(t *testing.T) {
	th := New()
	th.RecordSend(time.Now())
	th.Reset()

	if !th.CanSend(time.Now()) {
		t.Error("reset throttle should allow sending")
	}
}

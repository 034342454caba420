// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline merges confirmed and pending messages into one ordered
// sequence for rendering.
package timeline

import (
	"testing"
	"time"

	"github.com/jeranaias/parley-tui/internal/model"
)

func confirmedAt(sender model.Sender, body string, ts time.Time) *model.Message {
	return model.NewConfirmedMessage(sender, body, ts)
}

func TestMerge_LengthAndOrdering(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	confirmed := []*model.Message{
		confirmedAt(model.SenderUser, "first", base),
		confirmedAt(model.SenderAgent, "second", base.Add(time.Minute)),
		confirmedAt(model.SenderUser, "fourth", base.Add(3*time.Minute)),
	}
	pending := []*model.Message{
		model.NewPendingMessage("third", base.Add(2*time.Minute)),
		model.NewPendingMessage("fifth", base.Add(4*time.Minute)),
	}

	entries := Merge(confirmed, pending)

	if len(entries) != len(confirmed)+len(pending) {
		t.Fatalf("len = %d, want %d", len(entries), len(confirmed)+len(pending))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Message.Timestamp.Before(entries[i-1].Message.Timestamp) {
			t.Fatalf("timestamps not non-decreasing at %d", i)
		}
	}
	if entries[2].Message.Body != "third" {
		t.Errorf("pending message not interleaved: got %q at index 2", entries[2].Message.Body)
	}
}

func TestMerge_StableOnEqualTimestamps(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	confirmed := []*model.Message{
		confirmedAt(model.SenderUser, "a", ts),
		confirmedAt(model.SenderUser, "b", ts),
	}
	pending := []*model.Message{
		model.NewPendingMessage("c", ts),
	}

	entries := Merge(confirmed, pending)

	got := []string{entries[0].Message.Body, entries[1].Message.Body, entries[2].Message.Body}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v (stable sort, confirmed first)", got, want)
		}
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Errorf("Merge(nil, nil) = %d entries, want 0", len(got))
	}
}

func TestMerge_FormatsAgentMessages(t *testing.T) {
	ts := time.Now()
	confirmed := []*model.Message{
		confirmedAt(model.SenderAgent, "<reasoning>R</reasoning>Hello", ts),
		confirmedAt(model.SenderUser, "**not parsed**", ts.Add(time.Second)),
	}

	entries := Merge(confirmed, nil)

	agent := entries[0]
	if agent.Content == nil {
		t.Fatal("agent entry should carry parsed content")
	}
	if agent.Content.Reasoning != "R" {
		t.Errorf("Reasoning = %q, want R", agent.Content.Reasoning)
	}

	user := entries[1]
	if user.Content != nil {
		t.Error("user entry should not be parsed")
	}
}

func TestMerge_Keys(t *testing.T) {
	ts := time.Now()
	pendingMsg := model.NewPendingMessage("p", ts.Add(time.Second))
	confirmed := []*model.Message{
		confirmedAt(model.SenderUser, "c", ts),
	}

	entries := Merge(confirmed, []*model.Message{pendingMsg})

	if entries[0].Key != "idx_0" {
		t.Errorf("confirmed entry key = %q, want positional fallback", entries[0].Key)
	}
	if entries[1].Key != pendingMsg.ClientID {
		t.Errorf("pending entry key = %q, want its client ID", entries[1].Key)
	}
}

func TestMerge_FreshSliceEachCall(t *testing.T) {
	ts := time.Now()
	confirmed := []*model.Message{confirmedAt(model.SenderUser, "a", ts)}

	first := Merge(confirmed, nil)
	second := Merge(confirmed, nil)

	first[0].Key = "mutated"
	if second[0].Key == "mutated" {
		t.Error("merge results must not share backing storage")
	}
}

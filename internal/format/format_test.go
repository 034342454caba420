// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format parses semi-structured agent responses into renderable
// structure.
package format

import (
	"strings"
	"testing"
)

// =============================================================================
// REASONING EXTRACTION TESTS
// =============================================================================

func TestParse_ReasoningExtraction(t *testing.T) {
	f := Parse("<reasoning>R</reasoning>Hello")

	if !f.HasReasoning {
		t.Fatal("expected a reasoning segment")
	}
	if f.Reasoning != "R" {
		t.Errorf("Reasoning = %q, want R", f.Reasoning)
	}
	body := f.Body()
	if !strings.Contains(body, "Hello") {
		t.Errorf("body = %q, want to contain Hello", body)
	}
	if strings.Contains(body, "<reasoning>") || strings.Contains(body, "</reasoning>") {
		t.Errorf("body = %q, should not contain reasoning tags", body)
	}
}

func TestParse_NoReasoning(t *testing.T) {
	f := Parse("just a plain reply")

	if f.HasReasoning {
		t.Error("plain text should not produce a reasoning segment")
	}
	if f.Body() != "just a plain reply" {
		t.Errorf("body = %q, want unchanged text", f.Body())
	}
}

func TestParse_UnterminatedReasoning(t *testing.T) {
	raw := "<reasoning>never closed. Hello"
	f := Parse(raw)

	if f.HasReasoning {
		t.Error("unterminated delimiter should not be extracted")
	}
	if f.Body() != raw {
		t.Errorf("body = %q, want raw text untouched", f.Body())
	}
}

func TestParse_FirstReasoningSegmentOnly(t *testing.T) {
	f := Parse("<reasoning>first</reasoning>mid<reasoning>second</reasoning>")

	if f.Reasoning != "first" {
		t.Errorf("Reasoning = %q, want first (non-greedy first match)", f.Reasoning)
	}
	// The second pair is not specially handled; its text stays in the body.
	if !strings.Contains(f.Body(), "second") {
		t.Errorf("body = %q, want second segment text left in body", f.Body())
	}
}

// =============================================================================
// EMPHASIS TESTS
// =============================================================================

func TestParse_Emphasis(t *testing.T) {
	f := Parse("this is **important** stuff")

	if len(f.Blocks) != 1 || f.Blocks[0].Kind != BlockParagraph {
		t.Fatalf("expected one paragraph block, got %+v", f.Blocks)
	}

	spans := f.Blocks[0].Spans
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d: %+v", len(spans), spans)
	}
	if spans[1].Kind != SpanEmphasis || spans[1].Text != "important" {
		t.Errorf("middle span = %+v, want emphasis 'important'", spans[1])
	}
	if spans[0].Kind != SpanText || spans[2].Kind != SpanText {
		t.Error("outer spans should be plain text")
	}
}

func TestParse_UnpairedEmphasisMarker(t *testing.T) {
	f := Parse("a lone ** marker")

	spans := f.Blocks[0].Spans
	if len(spans) != 1 || spans[0].Kind != SpanText {
		t.Fatalf("unpaired marker should stay literal, got %+v", spans)
	}
	if !strings.Contains(spans[0].Text, "**") {
		t.Error("literal marker should be preserved")
	}
}

// =============================================================================
// LIST TESTS
// =============================================================================

func TestParse_ListBlock(t *testing.T) {
	f := Parse("- a\n- b")

	if len(f.Blocks) != 1 {
		t.Fatalf("expected a single list block, got %d blocks", len(f.Blocks))
	}
	block := f.Blocks[0]
	if block.Kind != BlockList {
		t.Fatal("expected a list block")
	}
	if len(block.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(block.Items))
	}
	if block.Items[0][0].Text != "a" || block.Items[1][0].Text != "b" {
		t.Errorf("items = %+v, want a then b in source order", block.Items)
	}
}

func TestParse_ListSurroundedByText(t *testing.T) {
	f := Parse("intro\n- one\n- two\noutro")

	if len(f.Blocks) != 3 {
		t.Fatalf("expected paragraph, list, paragraph; got %d blocks", len(f.Blocks))
	}
	if f.Blocks[0].Kind != BlockParagraph || f.Blocks[1].Kind != BlockList || f.Blocks[2].Kind != BlockParagraph {
		t.Errorf("block kinds = %v %v %v", f.Blocks[0].Kind, f.Blocks[1].Kind, f.Blocks[2].Kind)
	}
}

func TestParse_SeparatedListsStayDistinct(t *testing.T) {
	f := Parse("- a\ntext\n- b")

	lists := 0
	for _, b := range f.Blocks {
		if b.Kind == BlockList {
			lists++
		}
	}
	if lists != 2 {
		t.Errorf("expected two distinct list blocks, got %d", lists)
	}
}

func TestParse_EmphasisInsideListItem(t *testing.T) {
	f := Parse("- plain and **bold**")

	item := f.Blocks[0].Items[0]
	found := false
	for _, s := range item {
		if s.Kind == SpanEmphasis && s.Text == "bold" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected emphasis span inside list item, got %+v", item)
	}
}

// =============================================================================
// IDEMPOTENCE AND SANITIZATION
// =============================================================================

func TestParse_IdempotentOnPlainText(t *testing.T) {
	inputs := []string{
		"hello world",
		"two\nlines of text",
		"dash - but not a list item",
	}

	for _, in := range inputs {
		once := Parse(in).Body()
		twice := Parse(once).Body()
		if once != twice {
			t.Errorf("Parse not idempotent on %q: %q vs %q", in, once, twice)
		}
		if once != in {
			t.Errorf("marker-free text changed: %q -> %q", in, once)
		}
	}
}

func TestParse_StripsControlSequences(t *testing.T) {
	f := Parse("evil\x1b[31mred\x1b[0m text")

	body := f.Body()
	if strings.ContainsRune(body, 0x1b) {
		t.Errorf("body %q still contains ESC", body)
	}
	if !strings.Contains(body, "red") {
		t.Error("printable text should survive sanitization")
	}
}

func TestParse_KeepsNewlinesAndTabs(t *testing.T) {
	f := Parse("a\tb\nc")
	if f.Body() != "a\tb\nc" {
		t.Errorf("body = %q, newline and tab should be preserved", f.Body())
	}
}

func TestParse_EmptyInput(t *testing.T) {
	f := Parse("")
	if f.HasReasoning || len(f.Blocks) != 0 {
		t.Errorf("empty input should parse to empty result, got %+v", f)
	}
}

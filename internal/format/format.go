// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format parses semi-structured agent responses into renderable
// structure.
package format

import (
	"regexp"
	"strings"
)

// =============================================================================
// PARSED STRUCTURE
// =============================================================================

// SpanKind classifies an inline span.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanEmphasis
)

// Span is a run of inline text, plain or emphasized.
type Span struct {
	Kind SpanKind
	Text string
}

// BlockKind classifies a body block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockList
)

// Block is one rendered unit of the message body: a paragraph of inline
// spans, or an unordered list of items (each item its own span sequence).
type Block struct {
	Kind  BlockKind
	Spans []Span   // paragraph content
	Items [][]Span // list items
}

// Formatted is the parse result for one agent response.
type Formatted struct {
	// Reasoning is the content of the reasoning segment, if present.
	Reasoning    string
	HasReasoning bool

	// Blocks is the formatted body.
	Blocks []Block
}

// =============================================================================
// PARSING
// =============================================================================

// Only the first reasoning segment is recognized; the match is non-greedy,
// and an unterminated open tag is left in the body untouched.
var reasoningPattern = regexp.MustCompile(`(?s)<reasoning>(.*?)</reasoning>`)

var emphasisPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// listItemPrefix is the leading-dash list-item marker.
const listItemPrefix = "- "

// Parse converts raw agent text into a Formatted structure.
func Parse(raw string) Formatted {
	body := sanitize(raw)

	var f Formatted
	if loc := reasoningPattern.FindStringSubmatchIndex(body); loc != nil {
		f.Reasoning = strings.TrimSpace(body[loc[2]:loc[3]])
		f.HasReasoning = true
		body = body[:loc[0]] + body[loc[1]:]
	}

	f.Blocks = parseBlocks(body)
	return f
}

// parseBlocks splits body text into paragraph and list blocks. A maximal
// run of consecutive list-item lines becomes one list block; every other
// run of lines becomes one paragraph.
func parseBlocks(body string) []Block {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	lines := strings.Split(body, "\n")
	var blocks []Block
	var paragraph []string

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		text := strings.Join(paragraph, "\n")
		blocks = append(blocks, Block{
			Kind:  BlockParagraph,
			Spans: parseSpans(text),
		})
		paragraph = nil
	}

	for i := 0; i < len(lines); i++ {
		if !isListItem(lines[i]) {
			paragraph = append(paragraph, lines[i])
			continue
		}

		flushParagraph()

		// Collect the maximal run of list-item lines.
		var items [][]Span
		for i < len(lines) && isListItem(lines[i]) {
			items = append(items, parseSpans(itemText(lines[i])))
			i++
		}
		i-- // outer loop advances past the last item line
		blocks = append(blocks, Block{Kind: BlockList, Items: items})
	}
	flushParagraph()

	return blocks
}

// parseSpans splits text into plain and emphasized spans. Unpaired
// double-asterisk markers are left as literal text.
func parseSpans(text string) []Span {
	var spans []Span
	last := 0
	for _, loc := range emphasisPattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Kind: SpanText, Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Kind: SpanEmphasis, Text: text[loc[2]:loc[3]]})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Kind: SpanText, Text: text[last:]})
	}
	if spans == nil {
		spans = []Span{{Kind: SpanText, Text: ""}}
	}
	return spans
}

func isListItem(line string) bool {
	return strings.HasPrefix(line, listItemPrefix)
}

func itemText(line string) string {
	return strings.TrimPrefix(line, listItemPrefix)
}

// =============================================================================
// BODY REASSEMBLY
// =============================================================================

// Body reassembles the formatted body as plain text, one block per line
// group. Text free of the two marker syntaxes round-trips through
// Parse().Body() unchanged.
func (f Formatted) Body() string {
	var b strings.Builder
	for i, block := range f.Blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		switch block.Kind {
		case BlockParagraph:
			writeSpans(&b, block.Spans)
		case BlockList:
			for j, item := range block.Items {
				if j > 0 {
					b.WriteString("\n")
				}
				b.WriteString(listItemPrefix)
				writeSpans(&b, item)
			}
		}
	}
	return b.String()
}

func writeSpans(b *strings.Builder, spans []Span) {
	for _, s := range spans {
		b.WriteString(s.Text)
	}
}

// =============================================================================
// SANITIZATION
// =============================================================================

// sanitize strips ESC and C0 control characters (other than newline and
// tab) from agent text. The rendering sink is a terminal, so raw escape
// sequences in a response are the injection vector to guard against.
func sanitize(s string) string {
	if !strings.ContainsFunc(s, isControl) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isControl(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7f
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Parley TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/format"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/timeline"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE COMPONENT
// =============================================================================

// MessageView renders timeline entries as styled terminal output.
type MessageView struct {
	theme *styles.Theme

	// Width is the available rendering width in columns.
	Width int

	// ShowTimestamps renders a timestamp next to the sender label.
	ShowTimestamps bool

	// ShowReasoning expands agent reasoning blocks instead of the
	// collapsed one-line tag.
	ShowReasoning bool
}

// NewMessageView creates a message renderer.
func NewMessageView(theme *styles.Theme) *MessageView {
	return &MessageView{
		theme: theme,
		Width: 80,
	}
}

// SetWidth updates the available rendering width.
func (v *MessageView) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	v.Width = width
}

// Render produces the styled block for one timeline entry.
func (v *MessageView) Render(entry timeline.Entry) string {
	msg := entry.Message

	var b strings.Builder
	b.WriteString(v.renderHeader(msg))
	b.WriteString("\n")

	if msg.Sender == model.SenderAgent && entry.Content != nil {
		b.WriteString(v.renderFormatted(*entry.Content))
	} else {
		b.WriteString(msg.Body)
	}

	bubble := v.theme.AgentBubble
	if msg.Sender == model.SenderUser {
		bubble = v.theme.UserBubble
	}
	return bubble.Width(v.Width - 4).Render(b.String())
}

// renderHeader produces the sender label line with optional timestamp and
// delivery marker.
func (v *MessageView) renderHeader(msg *model.Message) string {
	parts := []string{v.theme.SenderLabel.Render(msg.Sender.DisplayName())}

	if v.ShowTimestamps && !msg.Timestamp.IsZero() {
		parts = append(parts, v.theme.Timestamp.Render(msg.Timestamp.Local().Format("15:04")))
	}

	if msg.IsPending() {
		parts = append(parts, v.renderDelivery(msg.Delivery))
	}

	return strings.Join(parts, " ")
}

// renderDelivery produces the delivery marker for a pending message.
func (v *MessageView) renderDelivery(state model.DeliveryState) string {
	switch state {
	case model.DeliverySent:
		return v.theme.DeliverySent.Render("+ sent")
	case model.DeliveryFailed:
		return v.theme.DeliveryFailed.Render("! failed, not delivered")
	default:
		return v.theme.DeliverySending.Render("~ sending")
	}
}

// renderFormatted renders parsed agent content: the optional reasoning
// block, then paragraphs and lists with emphasis applied.
func (v *MessageView) renderFormatted(content format.Formatted) string {
	var sections []string

	if content.HasReasoning {
		if v.ShowReasoning {
			sections = append(sections,
				v.theme.ReasoningTag.Render("reasoning:")+"\n"+
					v.theme.Reasoning.Render(content.Reasoning))
		} else {
			sections = append(sections, v.theme.ReasoningTag.Render("[reasoning hidden - ctrl+r]"))
		}
	}

	for _, block := range content.Blocks {
		switch block.Kind {
		case format.BlockList:
			lines := make([]string, len(block.Items))
			for i, item := range block.Items {
				lines[i] = v.theme.ListBullet.Render("• ") + v.renderSpans(item)
			}
			sections = append(sections, strings.Join(lines, "\n"))
		default:
			sections = append(sections, v.renderSpans(block.Spans))
		}
	}

	return strings.Join(sections, "\n\n")
}

// renderSpans concatenates spans, styling emphasis runs.
func (v *MessageView) renderSpans(spans []format.Span) string {
	var b strings.Builder
	for _, span := range spans {
		if span.Kind == format.SpanEmphasis {
			b.WriteString(v.theme.Emphasis.Render(span.Text))
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

// RenderAll renders a full timeline, separated by blank lines.
func (v *MessageView) RenderAll(entries []timeline.Entry) string {
	if len(entries) == 0 {
		return v.theme.InfoStyle.Render("No messages yet. Say hello.")
	}
	rendered := make([]string, len(entries))
	for i, entry := range entries {
		rendered[i] = v.Render(entry)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format parses semi-structured agent responses into renderable
// structure.
//
// An agent response may carry one optional reasoning segment delimited by
// <reasoning> tags, followed by body text with two recognized marker
// syntaxes: **emphasis** spans and leading-dash list items. Everything
// else is plain paragraph text.
//
// The parser is pure: no styling happens here. Rendering is left to the
// UI layer, which maps the parsed blocks and spans onto lipgloss styles.
// Agent text is sanitized before parsing - ESC and C0 control characters
// (other than newline and tab) are stripped so that a hostile response
// cannot smuggle terminal escape sequences into the rendered output.
package format

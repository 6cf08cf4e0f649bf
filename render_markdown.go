// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif

import "strings"

// lineBreak replaces newlines so multi-line text fits into one table cell.
const lineBreak = "<br/>"

// EscapeMarkdown makes text safe for headings, paragraphs and table cells.
//
// Backslashes and pipes get backslash escapes, braces become numeric
// character references and angle brackets named ones, so MDX based site
// generators do not read them as expressions or JSX. Every line ending then
// becomes a <br/> marker. The steps run in this order so no step touches the
// output of a later one.
func EscapeMarkdown(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "|", `\|`)
	text = strings.ReplaceAll(text, "{", "&#123;")
	text = strings.ReplaceAll(text, "}", "&#125;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	text = normalizeLineEndings(text)
	return strings.ReplaceAll(text, "\n", lineBreak)
}

// normalizeLineEndings converts CRLF/CR to LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}

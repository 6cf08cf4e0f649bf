// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif

import "strings"

const (
	// tableHeader is the header row of every section table.
	tableHeader = "| Example | Description |"
	// tableDelimiter separates the table header from data rows.
	tableDelimiter = "| --- | --- |"
)

// RenderFile loads a document file and renders it as markdown.
func RenderFile(path string) (string, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return "", err
	}

	return Render(doc), nil
}

// Render converts a document into markdown with one two-column table per
// section. Output is deterministic and always ends with a newline; missing or
// malformed members render as empty values.
func Render(doc *Document) string {
	lines := make([]string, 0, 16)
	lines = append(lines, "# "+EscapeMarkdown(doc.Title()), "")

	if version := doc.Version(); version != "" {
		lines = append(lines, "Version: "+EscapeMarkdown(version))
	}

	if published := doc.PublicationDate(); published != "" {
		lines = append(lines, "Published: "+EscapeMarkdown(published))
	}

	if description := doc.Description(); description != "" {
		lines = append(lines, "", EscapeMarkdown(description))
	}

	for _, section := range doc.Sections() {
		lines = appendSection(lines, section)
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// appendSection appends the heading, description and table of one section.
func appendSection(lines []string, section Section) []string {
	lines = append(lines, "", "## "+EscapeMarkdown(section.Title()))

	if description := section.Description(); description != "" {
		lines = append(lines, "", EscapeMarkdown(description))
	}

	lines = append(lines, "", tableHeader, tableDelimiter)
	for _, item := range section.Items() {
		lines = append(lines, tableRow(item))
	}

	return lines
}

// tableRow renders one item as a table row.
func tableRow(item Item) string {
	return "| " + exampleCell(item.ExampleText()) + " | " + EscapeMarkdown(item.Description()) + " |"
}

// exampleCell wraps non-empty example text into a preformatted block.
func exampleCell(example string) string {
	if example == "" {
		return ""
	}

	return "<pre>" + EscapeMarkdown(example) + "</pre>"
}

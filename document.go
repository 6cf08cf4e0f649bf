// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// utf8BOM is skipped when present at the start of a document file.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is one parsed cheatsheet. It is read-only after loading.
type Document struct {
	source string
	value  any
	fields object
}

// Section is one titled group of items inside a document.
type Section struct {
	fields object
}

// Item is one row of a section table.
type Item struct {
	fields object
}

// object keeps raw member values of one JSON object, so nested values keep
// their original member order and number text.
type object map[string]json.RawMessage

// LoadFile reads and parses one document file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadDocument, path, err)
	}

	return ParseDocument(data, path)
}

// ParseDocument parses document bytes. Source names the document in errors.
// No schema checks are made: any syntactically valid JSON value loads.
func ParseDocument(data []byte, source string) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, jsonError(data, source, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, jsonError(data, source, err)
	}

	return &Document{
		source: source,
		value:  value,
		fields: parseObject(raw),
	}, nil
}

// jsonError wraps a decoder failure with the source name and error position.
func jsonError(data []byte, source string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, column := offsetPosition(data, syntaxErr.Offset)
		return fmt.Errorf("%w in %s: %s (line %d, column %d)", ErrInvalidJSON, source, syntaxErr.Error(), line, column)
	}

	return fmt.Errorf("%w in %s: %s", ErrInvalidJSON, source, err.Error())
}

// offsetPosition converts a decoder error offset into 1-based line and
// column numbers. The offset counts the offending byte.
func offsetPosition(data []byte, offset int64) (int, int) {
	end := min(max(offset-1, 0), int64(len(data)))

	line, column := 1, 1
	for _, b := range data[:end] {
		if b == '\n' {
			line++
			column = 1
			continue
		}

		column++
	}

	return line, column
}

// Source returns the path or name the document was loaded from.
func (doc *Document) Source() string {
	if doc == nil {
		return ""
	}

	return doc.source
}

// Value returns the decoded JSON value with numbers kept as json.Number.
func (doc *Document) Value() any {
	if doc == nil {
		return nil
	}

	return doc.value
}

// Title returns the document title, empty when absent.
func (doc *Document) Title() string {
	return doc.object().text("title")
}

// Version returns the document version, empty when absent.
func (doc *Document) Version() string {
	return doc.object().optionalText("version")
}

// PublicationDate returns the publication date, empty when absent.
func (doc *Document) PublicationDate() string {
	return doc.object().optionalText("publicationDate")
}

// Description returns the document description, empty when absent.
func (doc *Document) Description() string {
	return doc.object().optionalText("description")
}

// Sections returns sections in document order. A missing or non-array
// sections member yields no sections.
func (doc *Document) Sections() []Section {
	values := doc.object().array("sections")
	sections := make([]Section, 0, len(values))
	for _, value := range values {
		sections = append(sections, Section{fields: parseObject(value)})
	}

	return sections
}

func (doc *Document) object() object {
	if doc == nil {
		return nil
	}

	return doc.fields
}

// Title returns the section title, empty when absent.
func (section Section) Title() string {
	return section.fields.text("title")
}

// Description returns the section description, empty when absent.
func (section Section) Description() string {
	return section.fields.optionalText("description")
}

// Items returns items in document order. A missing or non-array items member
// yields no items.
func (section Section) Items() []Item {
	values := section.fields.array("items")
	items := make([]Item, 0, len(values))
	for _, value := range values {
		items = append(items, Item{fields: parseObject(value)})
	}

	return items
}

// Title returns the item title, empty when absent.
func (item Item) Title() string {
	return item.fields.text("title")
}

// Description returns the item description, empty when absent.
func (item Item) Description() string {
	return item.fields.text("description")
}

// ExampleText returns the text shown in the example column.
//
// A string example is returned verbatim, any other present value as indented
// JSON. Without an example the item title is used.
func (item Item) ExampleText() string {
	if raw, ok := item.fields.lookup("example"); ok {
		if raw[0] == '"' {
			return decodeString(raw)
		}

		return formatJSON(raw)
	}

	return item.Title()
}

// parseObject decodes raw JSON object members. Non-object values yield nil.
func parseObject(raw json.RawMessage) object {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}

	var fields object
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	return fields
}

// lookup returns a trimmed member value. Absent members report false.
func (o object) lookup(key string) (json.RawMessage, bool) {
	raw, ok := o[key]
	if !ok {
		return nil, false
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, false
	}

	return raw, true
}

// text returns a member coerced to text; absent and null members are empty.
func (o object) text(key string) string {
	raw, ok := o.lookup(key)
	if !ok {
		return ""
	}

	return rawText(raw)
}

// optionalText returns member text only when the member value is truthy.
func (o object) optionalText(key string) string {
	raw, ok := o.lookup(key)
	if !ok || !truthy(raw) {
		return ""
	}

	return rawText(raw)
}

// array returns member array elements; non-array members yield nil.
func (o object) array(key string) []json.RawMessage {
	raw, ok := o.lookup(key)
	if !ok || raw[0] != '[' {
		return nil
	}

	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}

	return values
}

// rawText coerces one JSON value to display text.
func rawText(raw json.RawMessage) string {
	switch raw[0] {
	case '"':
		return decodeString(raw)
	case 'n':
		return ""
	case '{', '[':
		var out bytes.Buffer
		if err := json.Compact(&out, raw); err != nil {
			return string(raw)
		}

		return out.String()
	default:
		return string(raw)
	}
}

// truthy reports whether a JSON value counts as present: null, false, zero
// and the empty string do not.
func truthy(raw json.RawMessage) bool {
	switch raw[0] {
	case 'n', 'f':
		return false
	case '"':
		return decodeString(raw) != ""
	case '{', '[', 't':
		return true
	default:
		number, err := strconv.ParseFloat(string(raw), 64)
		return err != nil || number != 0
	}
}

// decodeString decodes a JSON string literal.
func decodeString(raw json.RawMessage) string {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}

	return value
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// formatIndent is one indentation level of formatted example values.
const formatIndent = "  "

// maxIndexKey bounds object keys ordered as array indexes.
const maxIndexKey = math.MaxUint32 - 1

// jsonMember is one formatted object member.
type jsonMember struct {
	key   string
	value string
}

// formatJSON re-encodes a parsed JSON value with two-space indentation.
// Numbers print as doubles in shortest form, strings with minimal escapes.
// Duplicate keys collapse to the last value and array-index keys come first
// in ascending order; other members keep source order. Malformed input is
// returned unchanged.
func formatJSON(raw json.RawMessage) string {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	text, err := formatJSONValue(decoder, 0)
	if err != nil {
		return string(raw)
	}

	return text
}

// formatJSONValue formats the next value of decoder at the given depth.
func formatJSONValue(decoder *json.Decoder, depth int) (string, error) {
	token, err := decoder.Token()
	if err != nil {
		return "", err
	}

	switch value := token.(type) {
	case json.Delim:
		if value == '[' {
			return formatJSONArray(decoder, depth)
		}

		return formatJSONObject(decoder, depth)
	case string:
		return quoteJSONString(value), nil
	case json.Number:
		return formatJSONNumber(value), nil
	case bool:
		return strconv.FormatBool(value), nil
	case nil:
		return "null", nil
	default:
		return "", fmt.Errorf("unexpected json token %v", token)
	}
}

func formatJSONArray(decoder *json.Decoder, depth int) (string, error) {
	var elements []string
	for decoder.More() {
		element, err := formatJSONValue(decoder, depth+1)
		if err != nil {
			return "", err
		}

		elements = append(elements, element)
	}

	if _, err := decoder.Token(); err != nil {
		return "", err
	}

	return joinJSONContainer("[", "]", elements, depth), nil
}

func formatJSONObject(decoder *json.Decoder, depth int) (string, error) {
	var members []jsonMember
	positions := make(map[string]int)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}

		key, ok := token.(string)
		if !ok {
			return "", fmt.Errorf("unexpected object key %v", token)
		}

		value, err := formatJSONValue(decoder, depth+1)
		if err != nil {
			return "", err
		}

		if at, seen := positions[key]; seen {
			members[at].value = value
			continue
		}

		positions[key] = len(members)
		members = append(members, jsonMember{key: key, value: value})
	}

	if _, err := decoder.Token(); err != nil {
		return "", err
	}

	sort.SliceStable(members, func(i, j int) bool {
		left, leftIndex := indexKey(members[i].key)
		right, rightIndex := indexKey(members[j].key)
		if leftIndex && rightIndex {
			return left < right
		}

		return leftIndex && !rightIndex
	})

	lines := make([]string, 0, len(members))
	for _, member := range members {
		lines = append(lines, quoteJSONString(member.key)+": "+member.value)
	}

	return joinJSONContainer("{", "}", lines, depth), nil
}

// joinJSONContainer lays out formatted elements one per line.
func joinJSONContainer(open, closing string, elements []string, depth int) string {
	if len(elements) == 0 {
		return open + closing
	}

	inner := "\n" + strings.Repeat(formatIndent, depth+1)
	return open + inner + strings.Join(elements, ","+inner) + "\n" + strings.Repeat(formatIndent, depth) + closing
}

// indexKey reports whether key is a canonical array index and its value.
func indexKey(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}

	value, err := strconv.ParseUint(key, 10, 64)
	if err != nil || value > maxIndexKey {
		return 0, false
	}

	return value, true
}

// formatJSONNumber prints a number as a double in shortest form. Values out
// of double range print as null.
func formatJSONNumber(number json.Number) string {
	value, err := strconv.ParseFloat(number.String(), 64)
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return "null"
	}

	if err != nil {
		return number.String()
	}

	if value == 0 {
		return "0"
	}

	data, err := json.Marshal(value)
	if err != nil {
		return number.String()
	}

	return string(data)
}

// quoteJSONString quotes text escaping only quotes, backslashes and control
// characters.
func quoteJSONString(text string) string {
	var out strings.Builder
	out.Grow(len(text) + 2)
	out.WriteByte('"')

	for _, r := range text {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\b':
			out.WriteString(`\b`)
		case '\f':
			out.WriteString(`\f`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&out, `\u%04x`, r)
				continue
			}

			out.WriteRune(r)
		}
	}

	out.WriteByte('"')
	return out.String()
}

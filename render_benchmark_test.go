// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif

import (
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkParseDocument measures document decoding cost.
func BenchmarkParseDocument(b *testing.B) {
	data := readBenchmarkFile(b, filepath.Join("testdata", "git.csif.json"))

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if _, err := ParseDocument(data, "git.csif.json"); err != nil {
			b.Fatalf("ParseDocument: %v", err)
		}
	}
}

// BenchmarkRender measures in-memory markdown rendering of a parsed document.
func BenchmarkRender(b *testing.B) {
	data := readBenchmarkFile(b, filepath.Join("testdata", "git.csif.json"))
	doc, err := ParseDocument(data, "git.csif.json")
	if err != nil {
		b.Fatalf("ParseDocument: %v", err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if out := Render(doc); out == "" {
			b.Fatal("empty render output")
		}
	}
}

// BenchmarkRenderFile measures read + parse + render flow from file path.
func BenchmarkRenderFile(b *testing.B) {
	path := filepath.Join("testdata", "git.csif.json")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := RenderFile(path); err != nil {
			b.Fatalf("RenderFile: %v", err)
		}
	}
}

// BenchmarkCheck measures schema validation with a reused validator.
func BenchmarkCheck(b *testing.B) {
	data := readBenchmarkFile(b, filepath.Join("testdata", "git.csif.json"))
	doc, err := ParseDocument(data, "git.csif.json")
	if err != nil {
		b.Fatalf("ParseDocument: %v", err)
	}

	validator, err := CompileSchema(EmbeddedSchema())
	if err != nil {
		b.Fatalf("CompileSchema: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if issues := validator.Check(doc); len(issues) != 0 {
			b.Fatalf("unexpected issues: %v", issues)
		}
	}
}

// BenchmarkEscapeMarkdown measures cell escaping on mixed special characters.
func BenchmarkEscapeMarkdown(b *testing.B) {
	input := "git log --format='{%h} <%an>' | grep \\fix\r\nsecond line"

	b.ReportAllocs()
	b.SetBytes(int64(len(input)))

	for i := 0; i < b.N; i++ {
		_ = EscapeMarkdown(input)
	}
}

// readBenchmarkFile loads benchmark fixture bytes.
func readBenchmarkFile(b *testing.B, path string) []byte {
	b.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatalf("read %s: %v", path, err)
	}

	return data
}

// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustEmbeddedValidator(t *testing.T) *Validator {
	t.Helper()

	validator, err := CompileSchema(EmbeddedSchema())
	if err != nil {
		t.Fatalf("CompileSchema: %v", err)
	}

	return validator
}

func TestEmbeddedSchemaAcceptsFixture(t *testing.T) {
	t.Parallel()

	validator := mustEmbeddedValidator(t)
	doc, err := LoadFile(filepath.Join("testdata", "git.csif.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if issues := validator.Check(doc); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}

	if validator.Path() != "(embedded) schema/v1/csif.schema.json" {
		t.Fatalf("schema path = %q", validator.Path())
	}
}

func TestCheckReportsLocatedIssues(t *testing.T) {
	t.Parallel()

	validator := mustEmbeddedValidator(t)
	cases := []struct {
		name     string
		input    string
		location string
		message  string
	}{
		{
			name:     "missing title",
			input:    `{"sections":[]}`,
			location: "/",
			message:  "title",
		},
		{
			name:     "sections not array",
			input:    `{"title":"T","sections":"nope"}`,
			location: "/sections",
			message:  "array",
		},
		{
			name:     "item without title",
			input:    `{"title":"T","sections":[{"title":"S","items":[{"description":"d"}]}]}`,
			location: "/sections/0/items/0",
			message:  "title",
		},
		{
			name:     "empty section title",
			input:    `{"title":"T","sections":[{"title":"","items":[]}]}`,
			location: "/sections/0/title",
			message:  "length",
		},
		{
			name:     "bad publication date",
			input:    `{"title":"T","publicationDate":"2024-13-45","sections":[]}`,
			location: "/publicationDate",
			message:  "date",
		},
		{
			name:     "root not object",
			input:    `[]`,
			location: "/",
			message:  "object",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			issues := validator.Check(mustParse(t, tc.input))
			if len(issues) != 1 {
				t.Fatalf("issues = %v, want exactly one", issues)
			}

			if issues[0].Location() != tc.location {
				t.Fatalf("location = %q, want %q", issues[0].Location(), tc.location)
			}

			assertContains(t, issues[0].Message, tc.message)
			assertContains(t, issues[0].String(), tc.location+": ")
		})
	}
}

func TestCheckOrdersIssuesDeterministically(t *testing.T) {
	t.Parallel()

	validator := mustEmbeddedValidator(t)
	input := `{"title":"","version":1,"description":false,"sections":[{"items":[{"title":2},{}]}]}`

	first := validator.Check(mustParse(t, input))
	if len(first) < 5 {
		t.Fatalf("issues = %v, want at least five", first)
	}

	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if prev.InstancePath > cur.InstancePath ||
			(prev.InstancePath == cur.InstancePath && prev.Message > cur.Message) {
			t.Fatalf("issues out of order: %v before %v", prev, cur)
		}
	}

	for i := 0; i < 10; i++ {
		again := validator.Check(mustParse(t, input))
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("issues changed between runs (-first +again):\n%s", diff)
		}
	}
}

func TestValidatorIsReusable(t *testing.T) {
	t.Parallel()

	validator := mustEmbeddedValidator(t)
	bad := mustParse(t, `{"title":"T"}`)
	good := mustParse(t, `{"title":"T","sections":[]}`)

	if len(validator.Check(bad)) == 0 {
		t.Fatal("expected issues for document without sections")
	}

	if issues := validator.Check(good); len(issues) != 0 {
		t.Fatalf("unexpected issues after a failed check: %v", issues)
	}
}

func TestCompileSchemaRejectsMalformedSchema(t *testing.T) {
	t.Parallel()

	for _, data := range []string{`{"type": `, `{"type": 12}`} {
		_, err := CompileSchema(SchemaSource{Path: "broken.schema.json", Data: []byte(data)})
		if !errors.Is(err, ErrCompileSchema) {
			t.Fatalf("CompileSchema(%q) error = %v, want ErrCompileSchema", data, err)
		}

		assertContains(t, err.Error(), "broken.schema.json")
	}
}

func TestLocateSchemaExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.schema.json")
	writeFile(t, path, `{"type":"object"}`)

	src, err := LocateSchema(SchemaOptions{Path: path, SearchFrom: t.TempDir()})
	if err != nil {
		t.Fatalf("LocateSchema: %v", err)
	}

	if src.Path != path || src.Embedded || string(src.Data) != `{"type":"object"}` {
		t.Fatalf("unexpected source: %+v", src)
	}

	_, err = LocateSchema(SchemaOptions{Path: path + ".missing"})
	if !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("error = %v, want ErrSchemaNotFound", err)
	}
}

func TestLocateSchemaSearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	schemaPath := filepath.Join(root, "schema", "v1", "csif.schema.json")
	writeFile(t, schemaPath, `{"required":["name"]}`)
	nested := filepath.Join(root, "docs", "tools")
	writeFile(t, filepath.Join(nested, "git.csif.json"), "{}")

	src, err := LocateSchema(SchemaOptions{SearchFrom: nested})
	if err != nil {
		t.Fatalf("LocateSchema: %v", err)
	}

	if src.Path != schemaPath || src.Embedded {
		t.Fatalf("unexpected source: %+v", src)
	}

	validator, err := CompileSchema(src)
	if err != nil {
		t.Fatalf("CompileSchema: %v", err)
	}

	issues := validator.Check(mustParse(t, `{"title":"T","sections":[]}`))
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "name") {
		t.Fatalf("issues = %v, want missing name", issues)
	}
}

func TestLocateSchemaFallsBackToEmbedded(t *testing.T) {
	t.Parallel()

	src, err := LocateSchema(SchemaOptions{SearchFrom: t.TempDir()})
	if err != nil {
		t.Fatalf("LocateSchema: %v", err)
	}

	if !src.Embedded || len(src.Data) == 0 {
		t.Fatalf("unexpected source: %+v", src)
	}

	_, err = LocateSchema(SchemaOptions{SearchFrom: t.TempDir(), NoEmbedded: true})
	if !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("error = %v, want ErrSchemaNotFound", err)
	}
}

func TestFindUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	target := filepath.Join(root, ".csif.yaml")
	writeFile(t, target, "exclude: []\n")
	deep := filepath.Join(root, "a", "b", "c")
	writeFile(t, filepath.Join(deep, "x.csif.json"), "{}")

	got, ok, err := FindUp(deep, ".csif.yaml")
	if err != nil || !ok || got != target {
		t.Fatalf("FindUp = %q, %v, %v; want %q", got, ok, err, target)
	}

	_, ok, err = FindUp(deep, "no-such-file.yaml")
	if err != nil || ok {
		t.Fatalf("FindUp missing = %v, %v", ok, err)
	}
}

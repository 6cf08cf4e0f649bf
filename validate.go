// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaResourceName is the compiler resource name of the loaded schema.
const schemaResourceName = "csif.schema.json"

// ValidationError is one schema violation inside a document.
type ValidationError struct {
	// InstancePath is a JSON pointer into the document; empty means the root.
	InstancePath string
	Message      string
}

// Location returns InstancePath, or "/" for the document root.
func (e ValidationError) Location() string {
	if e.InstancePath == "" {
		return "/"
	}

	return e.InstancePath
}

// String formats the error as "location: message".
func (e ValidationError) String() string {
	return e.Location() + ": " + e.Message
}

// Validator checks documents against one compiled schema. It is read-only
// after compilation and may be reused for any number of documents.
type Validator struct {
	schema *jsonschema.Schema
	path   string
}

// CompileSchema compiles a located schema document.
func CompileSchema(src SchemaSource) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if err := compiler.AddResource(schemaResourceName, bytes.NewReader(src.Data)); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCompileSchema, src.Path, err)
	}

	schema, err := compiler.Compile(schemaResourceName)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCompileSchema, src.Path, err)
	}

	return &Validator{schema: schema, path: src.Path}, nil
}

// Path returns the schema location reported next to failures.
func (v *Validator) Path() string {
	return v.path
}

// Check validates doc and returns every violation, ordered by instance path
// then message. An empty result means the document is valid.
func (v *Validator) Check(doc *Document) []ValidationError {
	err := v.schema.Validate(doc.Value())
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []ValidationError{{Message: err.Error()}}
	}

	issues := collectLeafErrors(validationErr)
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].InstancePath != issues[j].InstancePath {
			return issues[i].InstancePath < issues[j].InstancePath
		}

		return issues[i].Message < issues[j].Message
	})

	return issues
}

// collectLeafErrors flattens the cause tree into its leaves.
func collectLeafErrors(root *jsonschema.ValidationError) []ValidationError {
	issues := make([]ValidationError, 0, 4)

	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}

		if len(node.Causes) == 0 {
			issues = append(issues, ValidationError{
				InstancePath: strings.TrimSpace(node.InstanceLocation),
				Message:      strings.TrimSpace(node.Message),
			})
			return
		}

		for _, cause := range node.Causes {
			walk(cause)
		}
	}

	walk(root)
	return issues
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SchemaRelativePath is where a project keeps the CSIF schema, relative to
// one of the working directory ancestors.
const SchemaRelativePath = "schema/v1/csif.schema.json"

// embeddedSchemaName marks the built-in schema in reports.
const embeddedSchemaName = "(embedded) " + SchemaRelativePath

// embeddedSchema is the CSIF v1 schema built into the binary.
//
//go:embed schema/v1/csif.schema.json
var embeddedSchema []byte

// SchemaSource is a located schema document.
type SchemaSource struct {
	// Path is the schema file path, or a marker for the embedded schema.
	Path     string
	Data     []byte
	Embedded bool
}

// SchemaOptions selects where the schema is loaded from.
type SchemaOptions struct {
	// Path is an explicit schema file. It must exist when set.
	Path string
	// SearchFrom starts an upward search for SchemaRelativePath.
	SearchFrom string
	// NoEmbedded turns a failed upward search into ErrSchemaNotFound instead
	// of falling back to the embedded schema.
	NoEmbedded bool
}

// EmbeddedSchema returns the built-in schema source.
func EmbeddedSchema() SchemaSource {
	return SchemaSource{
		Path:     embeddedSchemaName,
		Data:     embeddedSchema,
		Embedded: true,
	}
}

// LocateSchema resolves the schema: explicit path first, then upward search,
// then the embedded schema.
func LocateSchema(opt SchemaOptions) (SchemaSource, error) {
	if path := strings.TrimSpace(opt.Path); path != "" {
		return readSchemaFile(path)
	}

	if startDir := strings.TrimSpace(opt.SearchFrom); startDir != "" {
		path, found, err := FindUp(startDir, SchemaRelativePath)
		if err != nil {
			return SchemaSource{}, err
		}

		if found {
			return readSchemaFile(path)
		}

		if opt.NoEmbedded {
			return SchemaSource{}, fmt.Errorf("%w: expected %s, started from %s", ErrSchemaNotFound, SchemaRelativePath, startDir)
		}
	}

	if opt.NoEmbedded {
		return SchemaSource{}, fmt.Errorf("%w: no schema path or search directory", ErrSchemaNotFound)
	}

	return EmbeddedSchema(), nil
}

// readSchemaFile loads a schema document from disk.
func readSchemaFile(path string) (SchemaSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SchemaSource{}, fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
		}

		return SchemaSource{}, fmt.Errorf("%w %q: %w", ErrReadSchema, path, err)
	}

	return SchemaSource{Path: path, Data: data}, nil
}

// FindUp looks for relativePath in startDir and each of its ancestors and
// returns the first existing candidate. Unreadable candidates count as missing.
func FindUp(startDir, relativePath string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve search directory %q: %w", startDir, err)
	}

	relativePath = filepath.FromSlash(relativePath)
	for {
		candidate := filepath.Join(dir, relativePath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}

		dir = parent
	}
}

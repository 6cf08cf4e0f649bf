// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif

import "errors"

var (
	// ErrPathNotFound is returned when a user supplied input path does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrSymlinkCycle is returned when directory recursion reaches one of its own ancestors.
	ErrSymlinkCycle = errors.New("symlink cycle")
	// ErrInvalidPattern is returned when an exclude glob pattern is malformed.
	ErrInvalidPattern = errors.New("invalid exclude pattern")
	// ErrReadDocument is returned when document file loading fails.
	ErrReadDocument = errors.New("read document")
	// ErrInvalidJSON is returned when document bytes are not valid JSON.
	ErrInvalidJSON = errors.New("invalid json")
	// ErrSchemaNotFound is returned when the CSIF schema file cannot be located.
	ErrSchemaNotFound = errors.New("schema not found")
	// ErrReadSchema is returned when schema file loading fails.
	ErrReadSchema = errors.New("read schema")
	// ErrCompileSchema is returned when the schema document cannot be compiled.
	ErrCompileSchema = errors.New("compile schema")
	// ErrMarkdownPath is returned when an output path cannot be derived for a render target.
	ErrMarkdownPath = errors.New("markdown output path")
)

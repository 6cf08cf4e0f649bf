// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package csif

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DocumentSuffix is the file name suffix of CSIF documents found by directory scans.
const DocumentSuffix = ".csif.json"

// InputKind tells how one command-line path expands into documents.
type InputKind int

const (
	// InputFile is an explicit file path, used as is whatever its extension.
	InputFile InputKind = iota + 1
	// InputDirectory is a directory scanned recursively for DocumentSuffix files.
	InputDirectory
)

// String returns a short kind name for logs.
func (kind InputKind) String() string {
	switch kind {
	case InputFile:
		return "file"
	case InputDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Input is one resolved command-line path.
type Input struct {
	Path string
	Kind InputKind
}

// Target pairs a document path with the base directory its output path is
// computed against.
type Target struct {
	Path    string
	BaseDir string
}

// CollectOptions configures directory expansion.
type CollectOptions struct {
	// Exclude lists doublestar patterns matched against slash separated paths
	// relative to the scanned directory. Explicit file inputs are never excluded.
	Exclude []string
}

// ResolveInput checks that path exists and classifies it.
func ResolveInput(path string) (Input, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Input{}, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return Input{}, fmt.Errorf("stat %q: %w", path, err)
	}

	if info.IsDir() {
		return Input{Path: path, Kind: InputDirectory}, nil
	}

	return Input{Path: path, Kind: InputFile}, nil
}

// ResolveInputs resolves every path before any of them is processed.
func ResolveInputs(paths []string) ([]Input, error) {
	inputs := make([]Input, 0, len(paths))
	for _, path := range paths {
		input, err := ResolveInput(path)
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, input)
	}

	return inputs, nil
}

// Collect expands one path into document file paths.
func Collect(path string) ([]string, error) {
	input, err := ResolveInput(path)
	if err != nil {
		return nil, err
	}

	targets, err := input.Targets(CollectOptions{})
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(targets))
	for _, target := range targets {
		paths = append(paths, target.Path)
	}

	return paths, nil
}

// CollectTargets expands resolved inputs into targets, keeping input order.
func CollectTargets(inputs []Input, opt CollectOptions) ([]Target, error) {
	if err := validatePatterns(opt.Exclude); err != nil {
		return nil, err
	}

	targets := make([]Target, 0, len(inputs))
	for _, input := range inputs {
		expanded, err := input.Targets(opt)
		if err != nil {
			return nil, err
		}

		targets = append(targets, expanded...)
	}

	return targets, nil
}

// Targets expands the input. Directories are walked depth-first in
// directory-entry order, following symlinks.
func (input Input) Targets(opt CollectOptions) ([]Target, error) {
	switch input.Kind {
	case InputFile:
		return []Target{{Path: input.Path, BaseDir: filepath.Dir(input.Path)}}, nil
	case InputDirectory:
		if err := validatePatterns(opt.Exclude); err != nil {
			return nil, err
		}

		w := walker{
			root:    input.Path,
			exclude: opt.Exclude,
			active:  make(map[string]struct{}),
		}
		if err := w.walk(input.Path); err != nil {
			return nil, err
		}

		targets := make([]Target, 0, len(w.files))
		for _, path := range w.files {
			targets = append(targets, Target{Path: path, BaseDir: input.Path})
		}

		return targets, nil
	default:
		return nil, fmt.Errorf("unknown input kind %d for %q", input.Kind, input.Path)
	}
}

// walker collects document files below one root directory.
type walker struct {
	// active holds resolved directories on the current recursion path.
	active  map[string]struct{}
	root    string
	exclude []string
	files   []string
}

func (w *walker) walk(dir string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("resolve directory %q: %w", dir, err)
	}

	if _, ok := w.active[resolved]; ok {
		return fmt.Errorf("%w: %s", ErrSymlinkCycle, dir)
	}

	w.active[resolved] = struct{}{}
	defer delete(w.active, resolved)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if w.excluded(path) {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %q: %w", path, err)
		}

		if info.IsDir() {
			if err := w.walk(path); err != nil {
				return err
			}

			continue
		}

		if info.Mode().IsRegular() && strings.HasSuffix(entry.Name(), DocumentSuffix) {
			w.files = append(w.files, path)
		}
	}

	return nil
}

// excluded reports whether path matches one of the exclude patterns.
func (w *walker) excluded(path string) bool {
	if len(w.exclude) == 0 {
		return false
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}

	rel = filepath.ToSlash(rel)
	for _, pattern := range w.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}

	return false
}

// validatePatterns rejects malformed exclude patterns up front.
func validatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w %q", ErrInvalidPattern, pattern)
		}
	}

	return nil
}

// MarkdownPath returns the output file path of the target below outDir.
//
// The path relative to BaseDir is kept; a DocumentSuffix (any case) is replaced
// by ".md", other names get ".md" appended.
func (target Target) MarkdownPath(outDir string) (string, error) {
	rel, err := filepath.Rel(target.BaseDir, target.Path)
	if err != nil {
		return "", fmt.Errorf("%w for %q: %w", ErrMarkdownPath, target.Path, err)
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w for %q: outside of %q", ErrMarkdownPath, target.Path, target.BaseDir)
	}

	return filepath.Join(outDir, markdownName(rel)), nil
}

// markdownName swaps the document suffix of name for ".md".
func markdownName(name string) string {
	if len(name) >= len(DocumentSuffix) && strings.EqualFold(name[len(name)-len(DocumentSuffix):], DocumentSuffix) {
		return name[:len(name)-len(DocumentSuffix)] + ".md"
	}

	return name + ".md"
}

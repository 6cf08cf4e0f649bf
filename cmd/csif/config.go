// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/woozymasta/csif"
)

// configFileName is the config file looked up in the working directory and its parents.
const configFileName = ".csif.yaml"

// fileConfig holds project defaults read from a config file.
// Relative paths are resolved against the config file directory.
type fileConfig struct {
	Schema  string   `yaml:"schema"`
	Exclude []string `yaml:"exclude"`
	Render  struct {
		Out string `yaml:"out"`
	} `yaml:"render"`

	// path is the loaded config file, empty when none was found.
	path string
}

// loadConfig reads explicitPath, or the nearest config file above workDir.
// A missing implicit config yields zero defaults.
func loadConfig(explicitPath, workDir string) (fileConfig, error) {
	path := strings.TrimSpace(explicitPath)
	if path == "" {
		found, ok, err := csif.FindUp(workDir, configFileName)
		if err != nil {
			return fileConfig{}, err
		}

		if !ok {
			return fileConfig{}, nil
		}

		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("parse config file %q: %w", path, err)
	}

	cfg.path = path
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// parseConfig decodes YAML config, rejecting unknown keys.
func parseConfig(data []byte) (fileConfig, error) {
	var cfg fileConfig

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, err
	}

	return cfg, nil
}

// resolvePaths makes relative config paths absolute against baseDir.
func (cfg *fileConfig) resolvePaths(baseDir string) {
	cfg.Schema = resolveConfigPath(baseDir, cfg.Schema)
	cfg.Render.Out = resolveConfigPath(baseDir, cfg.Render.Out)
}

func resolveConfigPath(baseDir, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(baseDir, filepath.FromSlash(path))
}

// schemaPath returns the flag value, falling back to the config value.
func (cfg fileConfig) schemaPath(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}

	return cfg.Schema
}

// outDir returns the flag value, falling back to the config value.
func (cfg fileConfig) outDir(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}

	return cfg.Render.Out
}

// mergeExclude appends flag patterns to config patterns.
func (cfg fileConfig) mergeExclude(flagPatterns []string) []string {
	out := make([]string, 0, len(cfg.Exclude)+len(flagPatterns))
	out = append(out, cfg.Exclude...)
	return append(out, flagPatterns...)
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/csif

// csif validates CSIF cheatsheets and renders them to markdown tables.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/csif"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/csif"
	_buildTime string
)

// errValidationFailed reports that at least one document did not validate.
// Details are printed per file before it is returned.
var errValidationFailed = errors.New("validation failed")

// cliOptions describes csif CLI flags and subcommands.
type cliOptions struct {
	Config  string `short:"c" long:"config" description:"Path to config file (default: nearest .csif.yaml in working directory or its parents)"`
	Verbose bool   `short:"v" long:"verbose" description:"Write debug log to stderr"`

	Version  versionCommand  `command:"version" description:"Print version information"`
	Validate validateCommand `command:"validate" description:"Validate CSIF documents against the schema"`
	Render   renderCommand   `command:"render" description:"Render CSIF documents"`
}

// collectFlags groups input expansion flags.
type collectFlags struct {
	Exclude []string `short:"x" long:"exclude" description:"Glob of paths to skip while scanning directories, relative to the directory argument (repeatable)"`
}

// validateCommand validates documents.
type validateCommand struct {
	runner *cliRunner

	SchemaPath string `short:"s" long:"schema" description:"Path to CSIF JSON Schema (default: schema/v1/csif.schema.json next to the csif binary or in its parent directories, else built-in)"`

	CollectFlags collectFlags `group:"Collect"`
	Args         struct {
		Paths []string `positional-arg-name:"file-or-dir" description:"Document file or directory scanned for *.csif.json" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs validate subcommand.
func (command *validateCommand) Execute(_ []string) error {
	return command.runner.runValidate(command.Args.Paths, command.SchemaPath, command.CollectFlags.Exclude)
}

// renderCommand groups render output formats.
type renderCommand struct {
	Markdown renderMarkdownCommand `command:"markdown" description:"Render documents as markdown tables"`
}

// renderMarkdownCommand renders documents to markdown.
type renderMarkdownCommand struct {
	runner *cliRunner

	OutDir string `short:"o" long:"out" description:"Output directory; mirrors input layout with .md files (stdout when omitted)"`

	CollectFlags collectFlags `group:"Collect"`
	Args         struct {
		Paths []string `positional-arg-name:"file-or-dir" description:"Document file or directory scanned for *.csif.json" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs render markdown subcommand.
func (command *renderMarkdownCommand) Execute(_ []string) error {
	return command.runner.runRenderMarkdown(command.Args.Paths, command.OutDir, command.CollectFlags.Exclude)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	return command.runner.printVersionInfo()
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdout      io.Writer
	stderr      io.Writer
	options     *cliOptions
	logger      *slog.Logger
	programName string
	workDir     string
	// schemaDir starts the upward schema search; empty uses the embedded schema.
	schemaDir   string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	workDir, err := os.Getwd()
	if err != nil {
		writeCLIError(stderr, fmt.Errorf("get working directory: %w", err))
		return 1
	}

	return runInDirs(workDir, executableDir(), args, stdout, stderr)
}

// executableDir returns the directory of the running binary with symlinks
// resolved, or an empty string when it cannot be determined.
func executableDir() string {
	path, err := os.Executable()
	if err != nil {
		return ""
	}

	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	return filepath.Dir(path)
}

// runInDirs executes CLI logic with the config search starting at workDir and
// the schema search starting at schemaDir.
func runInDirs(workDir, schemaDir string, args []string, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "csif"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		workDir:     workDir,
		schemaDir:   schemaDir,
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	parser := newCLIParser(runner)
	_, err := parser.ParseArgs(args)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		_, _ = fmt.Fprintln(runner.stderr)
		parser.WriteHelp(runner.stderr)
		return 2
	}

	if errors.Is(err, errValidationFailed) {
		return 1
	}

	writeCLIError(runner.stderr, err)
	if errors.Is(err, csif.ErrPathNotFound) {
		return 2
	}

	return 1
}

// newCLIParser builds the flags parser bound to runner.
func newCLIParser(runner *cliRunner) *flags.Parser {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Validate.runner = runner
	options.Render.Markdown.runner = runner
	runner.options = options

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		runner.logger = newLogger(runner.stderr, options.Verbose)
		if command == nil {
			return nil
		}

		return command.Execute(args)
	}

	applyCommandLongDescriptions(parser, runner.programName)
	return parser
}

// newLogger creates the diagnostic logger; debug records only with verbose.
func newLogger(output io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
}

// runValidate validates every collected document and reports each result.
func (runner *cliRunner) runValidate(paths []string, schemaPath string, exclude []string) error {
	cfg, err := runner.loadConfig()
	if err != nil {
		return err
	}

	targets, err := runner.collectTargets(paths, cfg.mergeExclude(exclude))
	if err != nil {
		return err
	}

	source, err := csif.LocateSchema(csif.SchemaOptions{
		Path:       cfg.schemaPath(schemaPath),
		SearchFrom: runner.schemaDir,
	})
	if err != nil {
		return err
	}

	validator, err := csif.CompileSchema(source)
	if err != nil {
		return err
	}

	runner.logger.Debug("schema compiled", "path", source.Path, "embedded", source.Embedded)

	failed := 0
	for _, target := range targets {
		if !runner.validateTarget(validator, target.Path) {
			failed++
		}
	}

	runner.logger.Debug("validation finished", "files", len(targets), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d documents", errValidationFailed, failed, len(targets))
	}

	return nil
}

// validateTarget validates one file and prints its result line or block.
func (runner *cliRunner) validateTarget(validator *csif.Validator, path string) bool {
	doc, err := csif.LoadFile(path)
	if err != nil {
		runner.writeFailure(path, validator.Path(), []string{err.Error()})
		return false
	}

	issues := validator.Check(doc)
	if len(issues) == 0 {
		_, _ = fmt.Fprintf(runner.stdout, "✓ %s\n", path)
		return true
	}

	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, issue.String())
	}

	runner.writeFailure(path, validator.Path(), lines)
	return false
}

// writeFailure prints one failure block to stderr.
func (runner *cliRunner) writeFailure(path, schemaPath string, problems []string) {
	var out strings.Builder
	fmt.Fprintf(&out, "✗ %s\n", path)
	fmt.Fprintf(&out, "  schema: %s\n", schemaPath)
	for _, problem := range problems {
		fmt.Fprintf(&out, "  - %s\n", problem)
	}

	_, _ = io.WriteString(runner.stderr, out.String())
}

// runRenderMarkdown renders collected documents to stdout or an output tree.
func (runner *cliRunner) runRenderMarkdown(paths []string, outDir string, exclude []string) error {
	cfg, err := runner.loadConfig()
	if err != nil {
		return err
	}

	targets, err := runner.collectTargets(paths, cfg.mergeExclude(exclude))
	if err != nil {
		return err
	}

	outDir = cfg.outDir(outDir)
	for _, target := range targets {
		rendered, err := csif.RenderFile(target.Path)
		if err != nil {
			return err
		}

		if outDir == "" {
			if _, err := io.WriteString(runner.stdout, rendered); err != nil {
				return fmt.Errorf("write markdown to stdout: %w", err)
			}

			continue
		}

		outPath, err := runner.writeMarkdownFile(outDir, target, rendered)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(runner.stdout, outPath)
	}

	return nil
}

// writeMarkdownFile writes rendered markdown to the target path below outDir.
func (runner *cliRunner) writeMarkdownFile(outDir string, target csif.Target, rendered string) (string, error) {
	outPath, err := target.MarkdownPath(outDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return "", fmt.Errorf("create output directory for %q: %w", outPath, err)
	}

	if err := os.WriteFile(outPath, []byte(rendered), 0o600); err != nil {
		return "", fmt.Errorf("write markdown file %q: %w", outPath, err)
	}

	runner.logger.Debug("markdown written", "source", target.Path, "path", outPath)
	return outPath, nil
}

// collectTargets resolves all inputs first, then expands them in order.
func (runner *cliRunner) collectTargets(paths, exclude []string) ([]csif.Target, error) {
	inputs, err := csif.ResolveInputs(paths)
	if err != nil {
		return nil, err
	}

	for _, input := range inputs {
		runner.logger.Debug("input resolved", "path", input.Path, "kind", input.Kind)
	}

	targets, err := csif.CollectTargets(inputs, csif.CollectOptions{Exclude: exclude})
	if err != nil {
		return nil, err
	}

	runner.logger.Debug("documents collected", "count", len(targets))
	return targets, nil
}

// loadConfig loads the explicit or nearest config file.
func (runner *cliRunner) loadConfig() (fileConfig, error) {
	cfg, err := loadConfig(runner.options.Config, runner.workDir)
	if err != nil {
		return fileConfig{}, err
	}

	if cfg.path != "" {
		runner.logger.Debug("config loaded", "path", cfg.path)
	}

	return cfg, nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"validate": strings.TrimSpace(fmt.Sprintf(`
Validate CSIF documents against the JSON Schema.
Directories are scanned recursively for *.csif.json; file arguments are used as given.
Valid files are listed on stdout, failures with every schema violation on stderr.
Exit code is 1 when any document is invalid.

Examples:
> $ %s validate cheatsheets
> $ %s validate --schema schema/v1/csif.schema.json git.csif.json docker.csif.json
`, programName, programName)),
		"render markdown": strings.TrimSpace(fmt.Sprintf(`
Render CSIF documents as markdown with one two-column table per section.
Without --out all documents are written to stdout in input order.
With --out each document is written to <out>/<path relative to its directory argument>.md.

Examples:
> $ %s render markdown git.csif.json > git.md
> $ %s render markdown cheatsheets --out docs/cheatsheets
`, programName, programName)),
	}

	for commandPath, description := range descriptions {
		command := parser.Command
		for _, name := range strings.Fields(commandPath) {
			if command = command.Find(name); command == nil {
				break
			}
		}

		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

// printVersionInfo writes build metadata to stdout.
func (runner *cliRunner) printVersionInfo() error {
	_, err := fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
	return err
}

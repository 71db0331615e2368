// Package engine runs the extraction pipeline: discover files, parse
// and locate options per file in parallel, then fold the per-file
// results into one merged record set in the stable discovery order.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/optdoc/optdoc/internal/nix"
	"github.com/optdoc/optdoc/internal/options"
)

// Config configures one extraction run.
type Config struct {
	// RootDir is the directory tree to scan for .nix files.
	RootDir string

	// Exclude holds glob patterns (slash-separated, relative to the
	// root) for files and directories to skip.
	Exclude []string

	// Workers caps the number of files processed concurrently.
	// Zero means one worker per CPU.
	Workers int

	// Bindings and InterpolateValues are handed to the locator.
	Bindings          map[string]string
	InterpolateValues bool

	// StripPrefix removes a leading dot-joined path prefix from output
	// paths.
	StripPrefix string

	// Sort orders the final records alphabetically by path.
	Sort bool

	// Filter is the AND-composed predicate applied after the merge.
	Filter options.Predicate

	// Progress receives run callbacks; nil disables reporting.
	Progress ProgressReporter
}

// Diagnostic records a single file's parse or extraction problem.
// Diagnostics never abort the run; they are collected alongside the
// records extracted from the healthy parts of the tree.
type Diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
}

// Result is the outcome of one run.
type Result struct {
	// Options is the merged, filtered, optionally sorted record set.
	Options []options.OptionRecord

	// Diagnostics holds per-file problems, in file order.
	Diagnostics []Diagnostic

	// FilesProcessed counts the files that were read and parsed.
	FilesProcessed int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Engine ties discovery, extraction, and merging together.
type Engine struct {
	cfg      Config
	progress ProgressReporter
}

// New creates an engine for the given configuration.
func New(cfg Config) *Engine {
	if cfg.Progress == nil {
		cfg.Progress = &NoOpProgressReporter{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Engine{cfg: cfg, progress: cfg.Progress}
}

// fileResult is the owned output of one per-file task.
type fileResult struct {
	records     []options.OptionRecord
	diagnostics []Diagnostic
}

// Run executes the pipeline. Only an unreadable root (or a cancelled
// context) fails the run; per-file problems become diagnostics.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	e.progress.OnDiscoveryStart()
	discovery, err := NewFileDiscovery(e.cfg.RootDir, e.cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}
	files, err := discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("discovering files under %s: %w", e.cfg.RootDir, err)
	}
	e.progress.OnDiscoveryComplete(len(files))
	e.progress.OnFileProcessingStart(len(files))

	// One task per file, results kept in a file-indexed slice so the
	// later fold sees discovery order, not completion order.
	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.processFile(file)
			e.progress.OnFileProcessed(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{FilesProcessed: len(files)}
	perFile := make([][]options.OptionRecord, len(files))
	for i, fr := range results {
		perFile[i] = fr.records
		result.Diagnostics = append(result.Diagnostics, fr.diagnostics...)
	}

	registry := options.Merge(perFile)
	records := registry.Records(e.cfg.Sort)
	records = options.StripPrefix(records, e.cfg.StripPrefix)
	result.Options = options.Apply(records, e.cfg.Filter)
	result.Duration = time.Since(start)

	e.progress.OnComplete(result)
	return result, nil
}

// processFile reads, parses, and extracts one file. Failures degrade
// to diagnostics: a file that cannot be read yields no records, and a
// file with parse errors still yields the records found outside the
// error nodes.
func (e *Engine) processFile(relPath string) fileResult {
	var fr fileResult

	source, err := os.ReadFile(filepath.Join(e.cfg.RootDir, relPath))
	if err != nil {
		log.Warn("skipping unreadable file", "file", relPath, "err", err)
		fr.diagnostics = append(fr.diagnostics, Diagnostic{File: relPath, Message: err.Error()})
		return fr
	}

	tree := nix.Parse(source)
	for _, perr := range tree.Errors {
		fr.diagnostics = append(fr.diagnostics, Diagnostic{
			File:    relPath,
			Line:    perr.Line,
			Column:  perr.Column,
			Message: perr.Message,
		})
	}
	if len(tree.Errors) > 0 {
		log.Debug("extracting from partially malformed file",
			"file", relPath, "errors", len(tree.Errors))
	}

	fr.records = options.Locate(tree, source, relPath, options.LocateOptions{
		Bindings:          e.cfg.Bindings,
		InterpolateValues: e.cfg.InterpolateValues,
	})
	return fr
}

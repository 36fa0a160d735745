package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/strops/pkg/core"
)

// Runner applies operations to a text value. *core.Service implements it.
type Runner interface {
	RunEach(ctx context.Context, ops []core.Operation, text string) ([]core.Result, error)
}

// Config holds the parameters for a Batch.
type Config struct {
	// Root is the directory patterns are resolved against.
	Root string
	// Patterns are doublestar globs; empty means DefaultPatterns.
	Patterns []string
	// Ignore are extra doublestar globs merged with the default ignores.
	Ignore []string
	// Operations to run on every file; empty means core.Operations().
	Operations []core.Operation
	// OutDir, when set, receives one file per string result named
	// <relative path>.<operation>.
	OutDir string
	Logger *slog.Logger
}

// FileResult holds the outcome of processing one file.
type FileResult struct {
	Path    string        `json:"path" yaml:"path"`
	Results []core.Result `json:"results,omitempty" yaml:"results,omitempty"`
	Err     error         `json:"-" yaml:"-"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Batch runs text operations over the files selected under a root directory.
type Batch struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

// NewBatch creates a Batch. It fails fast on invalid patterns.
func NewBatch(runner Runner, cfg Config) (*Batch, error) {
	if runner == nil {
		return nil, fmt.Errorf("%w: nil runner", core.ErrInvalidArgument)
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = DefaultPatterns
	}
	if len(cfg.Operations) == 0 {
		cfg.Operations = core.Operations()
	}
	if err := ValidatePatterns(cfg.Patterns); err != nil {
		return nil, err
	}
	if err := ValidatePatterns(cfg.Ignore); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Batch{cfg: cfg, runner: runner, logger: logger}, nil
}

// Root returns the configured root directory.
func (b *Batch) Root() string { return b.cfg.Root }

// Selects reports whether rel would be picked up by this batch.
func (b *Batch) Selects(rel string) bool {
	return Matches(rel, b.cfg.Patterns, b.cfg.Ignore)
}

// Run collects the matching files and processes each of them.
// Per-file failures are reported in FileResult.Err; the returned error is
// only set when collection itself fails or ctx is done.
func (b *Batch) Run(ctx context.Context) ([]FileResult, error) {
	files, err := Collect(b.cfg.Root, b.cfg.Patterns, b.cfg.Ignore)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("batch collected files", "root", b.cfg.Root, "count", len(files))
	return b.RunFiles(ctx, files)
}

// RunFiles processes the given slash-separated paths relative to the root.
func (b *Batch) RunFiles(ctx context.Context, files []string) ([]FileResult, error) {
	out := make([]FileResult, 0, len(files))
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out = append(out, b.runFile(ctx, rel))
	}
	return out, nil
}

func (b *Batch) runFile(ctx context.Context, rel string) FileResult {
	fr := FileResult{Path: rel}
	fail := func(err error) FileResult {
		fr.Err = err
		fr.Error = err.Error()
		b.logger.Warn("file skipped", "path", rel, "error", err)
		return fr
	}

	data, err := os.ReadFile(filepath.Join(b.cfg.Root, filepath.FromSlash(rel)))
	if err != nil {
		return fail(err)
	}

	results, err := b.runner.RunEach(ctx, b.cfg.Operations, string(data))
	if err != nil {
		return fail(fmt.Errorf("%s: %w", rel, err))
	}
	fr.Results = results

	if b.cfg.OutDir != "" {
		if err := b.writeOutputs(rel, results); err != nil {
			return fail(err)
		}
	}
	return fr
}

func (b *Batch) writeOutputs(rel string, results []core.Result) error {
	for _, res := range results {
		s, ok := res.Output.(string)
		if !ok {
			continue
		}
		target := filepath.Join(b.cfg.OutDir, filepath.FromSlash(rel)+"."+string(res.Operation))
		if err := writeOutputAtomic(target, []byte(s), 0o644); err != nil {
			return err
		}
		b.logger.Debug("output written", "path", target)
	}
	return nil
}

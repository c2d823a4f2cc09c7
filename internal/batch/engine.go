// Package batch discovers recipe-export files and converts them across
// a bounded worker pool. One task per file; a task failure is recorded
// in the report and never cancels sibling tasks.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/jd-santos/cookdown/internal/convert"
	"github.com/jd-santos/cookdown/internal/parsers"
)

// DefaultParallelism bounds the worker pool when Options leaves it
// unset.
const DefaultParallelism = 4

// Options configures one batch run.
type Options struct {
	InputDir    string `validate:"required"`
	OutputDir   string `validate:"required"`
	Recursive   bool
	Parallelism int `validate:"gte=1"`
	// Extensions restricts conversion to a subset of the registered
	// formats; empty means every registered extension.
	Extensions []string
}

// Report aggregates a whole run. Files is ordered by input-discovery
// order regardless of completion order. Counts are per output unit: an
// archive that expands into five recipes counts five.
type Report struct {
	Attempted int
	Succeeded int
	Failed    int
	Files     []convert.FileResult
}

// Engine runs batch conversions against one parser registry.
type Engine struct {
	registry *parsers.Registry
	logger   *log.Logger
	validate *validator.Validate

	// now is injected by tests for deterministic frontmatter dates.
	now func() time.Time
}

func NewEngine(registry *parsers.Registry, logger *log.Logger) *Engine {
	return &Engine{
		registry: registry,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Run converts every matching file under opts.InputDir. Only option
// validation, an unreadable input directory, or a failure to create the
// shared output root abort the run; every per-file error lands in the
// report instead.
func (e *Engine) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Parallelism == 0 {
		opts.Parallelism = DefaultParallelism
	}
	if err := e.validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid batch options: %w", err)
	}

	files, err := e.discover(opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	converter := convert.New(e.registry, e.logger)
	converter.Now = e.now

	// Tasks parse in parallel but claim output names through per-index
	// gates, so collision suffixes land in discovery order and a run
	// with parallelism 1 reports exactly what a run with 8 does.
	results := make([]convert.FileResult, len(files))
	gates := make([]chan struct{}, len(files)+1)
	for i := range gates {
		gates[i] = make(chan struct{})
	}
	close(gates[0])

	var group errgroup.Group
	group.SetLimit(opts.Parallelism)
	for i, path := range files {
		group.Go(func() error {
			result, parseErr := e.parseTask(ctx, converter, path)

			<-gates[i]
			var names []string
			if parseErr == nil {
				names = converter.ClaimNames(result)
			}
			close(gates[i+1])

			if parseErr != nil {
				results[i] = convert.FileResult{Input: path, Err: parseErr}
				e.logger.Error("conversion failed", "input", path, "error", parseErr)
				return nil
			}
			results[i] = converter.Emit(path, opts.OutputDir, result, names)
			if results[i].Err != nil {
				e.logger.Error("conversion failed", "input", path, "error", results[i].Err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return buildReport(results), nil
}

func (e *Engine) parseTask(ctx context.Context, converter *convert.Converter, path string) (parsers.Result, error) {
	if err := ctx.Err(); err != nil {
		return parsers.Result{}, err
	}
	return converter.Parse(path)
}

// discover enumerates candidate files in lexical order. Lexical walk
// order is what defines report order.
func (e *Engine) discover(opts Options) ([]string, error) {
	allowed := e.allowedExtensions(opts.Extensions)

	var files []string
	if opts.Recursive {
		err := filepath.WalkDir(opts.InputDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && allowed[normalizeExt(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan input directory: %w", err)
		}
		return files, nil
	}

	entries, err := os.ReadDir(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && allowed[normalizeExt(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(opts.InputDir, entry.Name()))
		}
	}
	return files, nil
}

func (e *Engine) allowedExtensions(filter []string) map[string]bool {
	allowed := map[string]bool{}
	if len(filter) == 0 {
		for _, ext := range e.registry.Extensions() {
			allowed[ext] = true
		}
		return allowed
	}
	for _, ext := range filter {
		ext = normalizeExt(ext)
		if _, err := e.registry.Resolve(ext); err == nil {
			allowed[ext] = true
		}
	}
	return allowed
}

func buildReport(results []convert.FileResult) *Report {
	report := &Report{Files: results}
	for _, res := range results {
		report.Succeeded += len(res.Outputs)
		report.Failed += len(res.Skipped)
		if res.Err != nil {
			report.Failed++
		}
	}
	report.Attempted = report.Succeeded + report.Failed
	return report
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

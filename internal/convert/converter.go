// Package convert runs the single-file conversion pipeline:
// resolve parser by extension → parse → extract images → render
// markdown → write. The batch engine schedules this per file; the CLI
// convert command runs it once and surfaces the error directly.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gosimple/slug"

	"github.com/jd-santos/cookdown/internal/exporters"
	"github.com/jd-santos/cookdown/internal/images"
	"github.com/jd-santos/cookdown/internal/parsers"
)

// FileResult is the outcome of converting one input file. A file that
// expands into multiple recipes (archive case) lists one output path
// per recipe. Skipped carries per-archive-entry failures, Warnings
// per-image decode failures; neither is fatal. Err is set only when the
// file as a whole could not be converted.
type FileResult struct {
	Input    string
	Outputs  []string
	Skipped  []parsers.EntryError
	Warnings []string
	Err      error
}

// Converter owns the pieces shared by all conversions of one run.
type Converter struct {
	Registry *parsers.Registry
	Names    *Names
	Now      func() time.Time
	Log      *log.Logger
}

// New returns a Converter with a fresh name allocator.
func New(registry *parsers.Registry, logger *log.Logger) *Converter {
	return &Converter{
		Registry: registry,
		Names:    NewNames(),
		Now:      time.Now,
		Log:      logger,
	}
}

// Parse reads and decodes one input file.
func (c *Converter) Parse(path string) (parsers.Result, error) {
	factory, err := c.Registry.Resolve(filepath.Ext(path))
	if err != nil {
		return parsers.Result{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return parsers.Result{}, fmt.Errorf("failed to read input file: %w", err)
	}

	return factory().Parse(data, path)
}

// ClaimNames reserves one output basename per parsed recipe. Claiming
// is separate from Emit so the batch engine can order claims by file
// discovery index while keeping parsing and writing parallel.
func (c *Converter) ClaimNames(result parsers.Result) []string {
	names := make([]string, len(result.Recipes))
	for i, rec := range result.Recipes {
		base := slug.Make(rec.Name)
		if base == "" {
			base = "recipe"
		}
		names[i] = c.Names.Claim(base)
	}
	return names
}

// Emit extracts images, renders and writes one markdown file per
// recipe, using the basenames claimed for this result.
func (c *Converter) Emit(path, outputDir string, result parsers.Result, names []string) FileResult {
	res := FileResult{Input: path, Skipped: result.Skipped}
	now := c.Now()

	for i, rec := range result.Recipes {
		extractor := &images.Extractor{Slug: names[i]}
		refs, warnings, err := extractor.Extract(rec, outputDir)
		if err != nil {
			res.Err = err
			return res
		}
		res.Warnings = append(res.Warnings, warnings...)
		for _, w := range warnings {
			c.Log.Warn("image skipped", "input", path, "reason", w)
		}

		text, err := exporters.RenderMarkdown(rec, refs, now)
		if err != nil {
			res.Err = err
			return res
		}

		outPath := filepath.Join(outputDir, names[i]+".md")
		if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
			res.Err = fmt.Errorf("failed to write output file: %w", err)
			return res
		}
		res.Outputs = append(res.Outputs, outPath)
	}

	for _, skipped := range result.Skipped {
		c.Log.Warn("archive entry skipped", "input", path, "entry", skipped.Entry, "error", skipped.Err)
	}
	return res
}

// File converts a single input end to end.
func (c *Converter) File(path, outputDir string) FileResult {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return FileResult{Input: path, Err: fmt.Errorf("failed to create output directory: %w", err)}
	}

	result, err := c.Parse(path)
	if err != nil {
		return FileResult{Input: path, Err: err}
	}
	return c.Emit(path, outputDir, result, c.ClaimNames(result))
}

// Package parsers decodes proprietary recipe-export containers into the
// normalized recipe model.
//
// Each format implements the Parser interface and is registered by file
// extension. The format-specific shape of ingredient and instruction
// data (flat newline-delimited blocks vs. structured arrays) is absorbed
// here; everything downstream only sees normalized recipes.
//
// Adding a new format:
//
//  1. Create a new file (e.g. mealmaster.go)
//  2. Implement Parser for it
//  3. Add it to Builtin()
package parsers

import (
	"sort"
	"strings"

	"github.com/jd-santos/cookdown/internal/recipe"
)

// Result is what a single Parse call yields. A container archive may
// produce many recipes; Skipped records archive entries that could not
// be decoded without aborting their siblings.
type Result struct {
	Recipes []*recipe.Recipe
	Skipped []EntryError
}

// EntryError records one failed entry inside a container archive.
type EntryError struct {
	Entry string
	Err   error
}

// Parser decodes one container format.
type Parser interface {
	// Parse decodes raw file bytes into one or more normalized recipes.
	Parse(data []byte, sourcePath string) (Result, error)

	// Extensions lists the file extensions (without dot, lowercase)
	// this parser handles.
	Extensions() []string
}

// Factory builds a fresh parser instance.
type Factory func() Parser

// Registry maps file extensions to parser factories. It is built once
// before any conversion starts and never mutated afterwards, so
// concurrent Resolve calls need no locking.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register associates an extension (case-insensitive, without dot) with
// a parser factory. Later registrations for the same extension win.
func (r *Registry) Register(extension string, factory Factory) {
	r.factories[normalizeExt(extension)] = factory
}

// Resolve returns the parser factory for an extension, or an
// UnsupportedFormatError when none is registered.
func (r *Registry) Resolve(extension string) (Factory, error) {
	factory, ok := r.factories[normalizeExt(extension)]
	if !ok {
		return nil, &UnsupportedFormatError{
			Extension: extension,
			Supported: r.Extensions(),
		}
	}
	return factory, nil
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.factories))
	for ext := range r.factories {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Builtin returns a registry with every built-in format registered.
func Builtin() *Registry {
	r := NewRegistry()
	register(r, func() Parser { return NewCrumbParser() })
	register(r, func() Parser { return NewPaprikaParser() })
	return r
}

func register(r *Registry, factory Factory) {
	for _, ext := range factory().Extensions() {
		r.Register(ext, factory)
	}
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

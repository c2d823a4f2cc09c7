package recipe

import "fmt"

// Entry is one line of an ingredient or instruction list. Entries keep
// their source order; a Section entry marks the start of a named group
// and carries the group title in Text.
type Entry struct {
	Text    string
	Section bool
}

// Line returns a plain (non-section) entry.
func Line(text string) Entry {
	return Entry{Text: text}
}

// Section returns a section-header entry.
func Section(title string) Entry {
	return Entry{Text: title, Section: true}
}

// Image is one embedded image payload. Data holds the raw payload as it
// appeared in the source (base64 text); decoding happens in the image
// extractor. Index is the 0-based position of the image reference in the
// source document and stays stable even when neighbouring images fail to
// decode, so downstream file numbering never shifts.
type Image struct {
	Index     int
	Data      []byte
	Truncated bool
}

// Recipe is the normalized representation every parser produces.
// Ingredients and Instructions preserve source order and grouping.
// Metadata values are strings, numbers or dates keyed by format-specific
// names; the formatter folds known keys into its frontmatter schema and
// passes unknown ones through verbatim.
//
// A Recipe is treated as immutable once a parser returns it: the image
// extractor and the formatter only read it.
type Recipe struct {
	Name         string
	Ingredients  []Entry
	Instructions []Entry
	Images       []Image
	Metadata     map[string]any
	SourcePath   string
}

// ValidationError reports a recipe that cannot be constructed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid recipe: %s %s", e.Field, e.Reason)
}

// New constructs a Recipe, rejecting an empty name.
func New(name, sourcePath string) (*Recipe, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return &Recipe{
		Name:       name,
		Metadata:   map[string]any{},
		SourcePath: sourcePath,
	}, nil
}

package parsers

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jd-santos/cookdown/internal/recipe"
)

// TruncatedMarker appears in image fields of exports whose payloads were
// cut short before they reached us. Such entries keep their index but
// are never decoded.
const TruncatedMarker = "truncated for LLM context"

// Crumb exports sometimes embed a section title as a bold prefix on the
// step text, e.g. "**Preparation** Chop the onion".
var crumbSectionPrefix = regexp.MustCompile(`^\*\*(.*?)\*\*\s*`)

// CrumbParser parses Crouton .crumb files: a single JSON document with a
// required "name", ingredient/instruction arrays (plain strings or
// {title, items} section objects) and base64 image strings. One recipe
// per file.
type CrumbParser struct{}

func NewCrumbParser() *CrumbParser {
	return &CrumbParser{}
}

// Extensions implements Parser.
func (p *CrumbParser) Extensions() []string {
	return []string{"crumb"}
}

// Parse implements Parser.
func (p *CrumbParser) Parse(data []byte, sourcePath string) (Result, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Result{}, &MalformedInputError{Path: sourcePath, Reason: "invalid JSON", Err: err}
	}

	name, _ := doc["name"].(string)
	rec, err := recipe.New(name, sourcePath)
	if err != nil {
		return Result{}, &MalformedInputError{Path: sourcePath, Reason: "required field \"name\" missing", Err: err}
	}

	rec.Ingredients = crumbEntries(doc["ingredients"], false)
	rec.Instructions = crumbEntries(instructionsValue(doc), true)
	rec.Images = crumbImages(doc["images"])

	for key, value := range doc {
		switch key {
		case "name", "ingredients", "directions", "steps", "instructions", "images":
			continue
		}
		switch value.(type) {
		case string, float64, bool, json.Number:
			rec.Metadata[key] = value
		}
	}

	return Result{Recipes: []*recipe.Recipe{rec}}, nil
}

// instructionsValue picks the first recognized instructions key.
func instructionsValue(doc map[string]any) any {
	for _, key := range []string{"directions", "steps", "instructions"} {
		if v, ok := doc[key]; ok {
			return v
		}
	}
	return nil
}

// crumbEntries normalizes an ingredient/instruction array. Elements are
// plain strings or {title, items} section objects; order is preserved
// exactly as in the source.
func crumbEntries(value any, stripSections bool) []recipe.Entry {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	var entries []recipe.Entry
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if stripSections {
				if m := crumbSectionPrefix.FindStringSubmatch(v); m != nil {
					entries = append(entries, recipe.Section(m[1]))
					v = crumbSectionPrefix.ReplaceAllString(v, "")
					if v == "" {
						continue
					}
				}
			}
			entries = append(entries, recipe.Line(v))
		case map[string]any:
			title, _ := v["title"].(string)
			if title != "" {
				entries = append(entries, recipe.Section(title))
			}
			if groupItems, ok := v["items"].([]any); ok {
				for _, gi := range groupItems {
					if s, ok := gi.(string); ok {
						entries = append(entries, recipe.Line(s))
					}
				}
			}
		}
	}
	return entries
}

// crumbImages tags every image string with its source index. Entries
// carrying the truncation marker are kept so later indexes stay stable.
func crumbImages(value any) []recipe.Image {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	var images []recipe.Image
	for i, item := range items {
		payload, ok := item.(string)
		if !ok {
			continue
		}
		img := recipe.Image{Index: i, Data: []byte(payload)}
		if payload == "" || strings.Contains(payload, TruncatedMarker) {
			img.Truncated = true
			img.Data = nil
		}
		images = append(images, img)
	}
	return images
}

// Compile-time interface check
var _ Parser = (*CrumbParser)(nil)

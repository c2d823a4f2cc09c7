// Package exporters renders normalized recipes into markdown documents
// with YAML frontmatter. Rendering is purely functional: the caller
// supplies the timestamp, so the same recipe and refs always produce
// the same text.
package exporters

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jd-santos/cookdown/internal/images"
	"github.com/jd-santos/cookdown/internal/recipe"
)

// frontmatterAliases folds format-specific metadata keys into the fixed
// frontmatter schema. Keys not listed here pass through verbatim.
var frontmatterAliases = map[string]string{
	"source":     "source",
	"source_url": "source-url",
	"webLink":    "source-url",
	"servings":   "servings",
	"serves":     "servings",
	"prep_time":  "prep-time",
	"cook_time":  "cook-time",
	"total_time": "total-time",
	"rating":     "rating",
	"difficulty": "difficulty",
}

// bodyKeys are consumed by body sections rather than the frontmatter.
var bodyKeys = map[string]string{
	"notes":            "notes",
	"nutritional_info": "nutrition",
	"neutritionalInfo": "nutrition", // sic, Crouton exports misspell it
}

// durationKeys hold bare minute counts in Crouton exports.
var durationKeys = map[string]string{
	"prepDuration":    "prep-time",
	"cookingDuration": "cook-time",
}

// fixedOrder is the emission order of known frontmatter fields.
var fixedOrder = []string{"source", "source-url", "servings", "prep-time", "cook-time", "total-time", "rating", "difficulty"}

// RenderMarkdown renders one recipe plus its extracted image refs into
// the final markdown text. now feeds the created/updated frontmatter
// fields and must come from the caller.
func RenderMarkdown(rec *recipe.Recipe, refs []images.Ref, now time.Time) (string, error) {
	front, body := splitMetadata(rec.Metadata)

	photos := make([]string, 0, len(refs))
	for _, ref := range refs {
		photos = append(photos, filepath.ToSlash(ref.Path))
	}

	date := now.Format("2006-01-02")
	doc := yaml.MapSlice{
		{Key: "title", Value: rec.Name},
		{Key: "created", Value: date},
		{Key: "updated", Value: date},
		{Key: "tags", Value: []string{"food/recipe"}},
		{Key: "photos", Value: photos},
	}
	for _, key := range fixedOrder {
		if value, ok := front[key]; ok {
			doc = append(doc, yaml.MapItem{Key: key, Value: value})
			delete(front, key)
		}
	}
	for _, key := range sortedKeys(front) {
		doc = append(doc, yaml.MapItem{Key: key, Value: front[key]})
	}

	encoded, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(encoded)
	sb.WriteString("---\n\n")
	fmt.Fprintf(&sb, "# %s\n", rec.Name)

	if len(rec.Ingredients) > 0 {
		sb.WriteString("\n## Ingredients\n\n")
		renderEntries(&sb, rec.Ingredients, false)
	}
	if len(rec.Instructions) > 0 {
		sb.WriteString("\n## Directions\n\n")
		renderEntries(&sb, rec.Instructions, true)
	}
	for _, section := range []struct{ key, heading string }{
		{"notes", "Notes"},
		{"nutrition", "Nutrition"},
	} {
		if text, ok := body[section.key]; ok && text != "" {
			fmt.Fprintf(&sb, "\n## %s\n\n%s\n", section.heading, text)
		}
	}

	return sb.String(), nil
}

// splitMetadata maps raw metadata onto frontmatter fields and body
// sections. Unrecognized keys stay in the frontmatter map verbatim.
func splitMetadata(metadata map[string]any) (front map[string]any, body map[string]string) {
	front = map[string]any{}
	body = map[string]string{}

	var prep, cook float64
	var havePrep, haveCook bool
	for key, value := range metadata {
		if target, ok := bodyKeys[key]; ok {
			if s, ok := value.(string); ok {
				body[target] = s
			}
			continue
		}
		if target, ok := durationKeys[key]; ok {
			if minutes, ok := value.(float64); ok {
				front[target] = fmt.Sprintf("%g minutes", minutes)
				switch target {
				case "prep-time":
					prep, havePrep = minutes, true
				case "cook-time":
					cook, haveCook = minutes, true
				}
				continue
			}
		}
		if target, ok := frontmatterAliases[key]; ok {
			front[target] = value
			continue
		}
		front[key] = value
	}

	if _, ok := front["total-time"]; !ok && havePrep && haveCook {
		front["total-time"] = fmt.Sprintf("%g minutes", prep+cook)
	}
	return front, body
}

func renderEntries(sb *strings.Builder, entries []recipe.Entry, numbered bool) {
	step := 0
	first := true
	for _, entry := range entries {
		if entry.Section {
			if !first {
				sb.WriteString("\n")
			}
			fmt.Fprintf(sb, "### %s\n\n", entry.Text)
			step = 0
			first = false
			continue
		}
		if numbered {
			step++
			fmt.Fprintf(sb, "%d. %s\n", step, entry.Text)
		} else {
			fmt.Fprintf(sb, "- %s\n", entry.Text)
		}
		first = false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

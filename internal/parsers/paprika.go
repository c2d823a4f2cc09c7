package parsers

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jd-santos/cookdown/internal/recipe"
)

// PaprikaParser handles both Paprika export shapes under one entry
// point: .paprikarecipe files are a gzip-compressed JSON document,
// .paprikarecipes files are a zip archive whose entries are each such a
// gzip stream. The archive form yields one recipe per entry in
// archive-listing order; a corrupt entry is recorded and skipped
// without aborting its siblings.
type PaprikaParser struct{}

func NewPaprikaParser() *PaprikaParser {
	return &PaprikaParser{}
}

// Extensions implements Parser.
func (p *PaprikaParser) Extensions() []string {
	return []string{"paprikarecipe", "paprikarecipes"}
}

// Parse implements Parser.
func (p *PaprikaParser) Parse(data []byte, sourcePath string) (Result, error) {
	if isZip(data) {
		return p.parseArchive(data, sourcePath)
	}

	rec, err := p.parseSingle(data, sourcePath)
	if err != nil {
		return Result{}, err
	}
	return Result{Recipes: []*recipe.Recipe{rec}}, nil
}

// parseArchive converts every archive entry, collecting per-entry
// failures instead of propagating them.
func (p *PaprikaParser) parseArchive(data []byte, sourcePath string) (Result, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, &MalformedInputError{Path: sourcePath, Reason: "invalid zip archive", Err: err}
	}

	var result Result
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		rec, err := p.parseArchiveEntry(entry, sourcePath)
		if err != nil {
			result.Skipped = append(result.Skipped, EntryError{Entry: entry.Name, Err: err})
			continue
		}
		result.Recipes = append(result.Recipes, rec)
	}
	return result, nil
}

func (p *PaprikaParser) parseArchiveEntry(entry *zip.File, sourcePath string) (*recipe.Recipe, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive entry %s: %w", entry.Name, err)
	}

	return p.parseSingle(data, sourcePath+"!"+entry.Name)
}

// parseSingle decodes one gzip-compressed recipe document.
func (p *PaprikaParser) parseSingle(data []byte, sourcePath string) (*recipe.Recipe, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedInputError{Path: sourcePath, Reason: "not a gzip stream", Err: err}
	}
	defer gz.Close()

	payload, err := io.ReadAll(gz)
	if err != nil {
		return nil, &MalformedInputError{Path: sourcePath, Reason: "gzip decompression failed", Err: err}
	}

	var doc paprikaDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, &MalformedInputError{Path: sourcePath, Reason: "invalid JSON", Err: err}
	}

	rec, err := recipe.New(doc.Name, sourcePath)
	if err != nil {
		return nil, &MalformedInputError{Path: sourcePath, Reason: "required field \"name\" missing", Err: err}
	}

	rec.Ingredients = splitLines(doc.Ingredients, false)
	rec.Instructions = splitLines(doc.Directions, true)
	if doc.PhotoData != "" {
		rec.Images = []recipe.Image{{Index: 0, Data: []byte(doc.PhotoData)}}
	}
	rec.Metadata = doc.metadata()

	return rec, nil
}

type paprikaDocument struct {
	Name            string `json:"name"`
	Ingredients     string `json:"ingredients"`
	Directions      string `json:"directions"`
	PhotoData       string `json:"photo_data"`
	Notes           string `json:"notes"`
	NutritionalInfo string `json:"nutritional_info"`
	SourceURL       string `json:"source_url"`
	Source          string `json:"source"`
	Servings        string `json:"servings"`
	PrepTime        string `json:"prep_time"`
	CookTime        string `json:"cook_time"`
	TotalTime       string `json:"total_time"`
	Categories      string `json:"categories"`
	Difficulty      string `json:"difficulty"`
	Created         string `json:"created"`
	UID             string `json:"uid"`
	Rating          *int   `json:"rating"`
}

func (d *paprikaDocument) metadata() map[string]any {
	md := map[string]any{}
	put := func(key, value string) {
		if value != "" {
			md[key] = value
		}
	}
	put("source_url", d.SourceURL)
	put("source", d.Source)
	put("servings", d.Servings)
	put("prep_time", d.PrepTime)
	put("cook_time", d.CookTime)
	put("total_time", d.TotalTime)
	put("categories", d.Categories)
	put("difficulty", d.Difficulty)
	put("notes", d.Notes)
	put("nutritional_info", d.NutritionalInfo)
	put("created", d.Created)
	put("uid", d.UID)
	if d.Rating != nil {
		md["rating"] = *d.Rating
	}
	return md
}

// splitLines breaks a newline-delimited block into entries, dropping
// blank lines. When detectSections is set, a line in ALL CAPS or ending
// with a colon is treated as a section header, which is how Paprika
// exports mark direction groups.
func splitLines(block string, detectSections bool) []recipe.Entry {
	var entries []recipe.Entry
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if detectSections && looksLikeSection(line) {
			entries = append(entries, recipe.Section(strings.TrimSuffix(line, ":")))
			continue
		}
		entries = append(entries, recipe.Line(line))
	}
	return entries
}

func looksLikeSection(line string) bool {
	if strings.HasSuffix(line, ":") {
		return true
	}
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// isZip checks for the PK local-file-header signature. Extension alone
// cannot distinguish the two Paprika shapes reliably since users rename
// archives when exporting individual recipes.
func isZip(data []byte) bool {
	return len(data) >= 4 && data[0] == 'P' && data[1] == 'K' && (data[2] == 3 || data[2] == 5 || data[2] == 7)
}

// Compile-time interface check
var _ Parser = (*PaprikaParser)(nil)

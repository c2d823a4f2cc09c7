// Package images writes the embedded image payloads of a parsed recipe
// to disk. Decoding failures are warnings, never errors: a bad payload
// loses its file but keeps its index, so the files that do get written
// always carry their original source numbering.
package images

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gosimple/slug"

	"github.com/jd-santos/cookdown/internal/recipe"
)

// Subdir is the directory under the output root that holds extracted
// image files.
const Subdir = "images"

// Ref points at one successfully written image file. Path is relative
// to the output directory so the formatter can embed it directly.
type Ref struct {
	Index int
	Path  string
}

// Extractor decodes and writes recipe images.
type Extractor struct {
	// Slug overrides the output basename; when empty the recipe name
	// is slugified. The batch engine sets it to the collision-resolved
	// slug so markdown and image files stay paired.
	Slug string
}

// Extract writes every decodable image of rec under outputDir/images,
// named {slug}-{index}.{ext}. It returns the refs of written files and
// a warning per skipped payload. Only a failure to create the images
// directory itself is an error.
func (e *Extractor) Extract(rec *recipe.Recipe, outputDir string) ([]Ref, []string, error) {
	if len(rec.Images) == 0 {
		return nil, nil, nil
	}

	imagesDir := filepath.Join(outputDir, Subdir)
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	base := e.Slug
	if base == "" {
		base = slug.Make(rec.Name)
	}

	var refs []Ref
	var warnings []string
	for _, img := range rec.Images {
		if img.Truncated {
			warnings = append(warnings, fmt.Sprintf("image %d of %q: payload truncated at source, skipped", img.Index, rec.Name))
			continue
		}

		decoded, err := decodeBase64(img.Data)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("image %d of %q: %v, skipped", img.Index, rec.Name, err))
			continue
		}

		name := fmt.Sprintf("%s-%d%s", base, img.Index, detectExtension(decoded))
		if err := os.WriteFile(filepath.Join(imagesDir, name), decoded, 0644); err != nil {
			warnings = append(warnings, fmt.Sprintf("image %d of %q: write failed: %v", img.Index, rec.Name, err))
			continue
		}

		refs = append(refs, Ref{Index: img.Index, Path: filepath.Join(Subdir, name)})
	}

	return refs, warnings, nil
}

// decodeBase64 strictly decodes a padded payload. Whitespace is
// tolerated, but a length that is no multiple of 4 once cleaned (an
// incomplete terminal group) or any illegal byte fails the whole
// payload.
func decodeBase64(payload []byte) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, string(payload))

	if len(cleaned)%4 != 0 {
		return nil, fmt.Errorf("incomplete base64 payload (length %d)", len(cleaned))
	}

	decoded, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return decoded, nil
}

// detectExtension sniffs the decoded bytes; jpg when undetermined.
func detectExtension(data []byte) string {
	mt := mimetype.Detect(data)
	ext := mt.Extension()
	if ext == "" || !strings.HasPrefix(mt.String(), "image/") {
		return ".jpg"
	}
	return ext
}

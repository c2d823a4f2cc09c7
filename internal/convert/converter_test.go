package convert

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jd-santos/cookdown/internal/parsers"
)

func testConverter() *Converter {
	c := New(parsers.Builtin(), log.New(io.Discard))
	c.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func writeCrumb(t *testing.T, dir, name, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestConverter_File_WritesMarkdown(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	path := writeCrumb(t, inDir, "soup.crumb",
		`{"name":"Soup","ingredients":["1 onion","2 cups stock"],"directions":["Chop onion","Simmer"]}`)

	result := testConverter().File(path, outDir)

	require.NoError(t, result.Err)
	require.Len(t, result.Outputs, 1)
	assert.Equal(t, filepath.Join(outDir, "soup.md"), result.Outputs[0])

	content, err := os.ReadFile(result.Outputs[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "title: Soup")
	assert.Contains(t, string(content), "- 1 onion")

	// No images in the source, no images directory in the output.
	_, statErr := os.Stat(filepath.Join(outDir, "images"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestConverter_File_UnsupportedExtension(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	path := writeCrumb(t, inDir, "recipe.mmf", `whatever`)

	result := testConverter().File(path, outDir)

	require.Error(t, result.Err)
	var uerr *parsers.UnsupportedFormatError
	assert.ErrorAs(t, result.Err, &uerr)
}

func TestConverter_File_MissingInput(t *testing.T) {
	outDir := t.TempDir()

	result := testConverter().File(filepath.Join(t.TempDir(), "ghost.crumb"), outDir)

	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, os.ErrNotExist)
}

func TestConverter_File_MalformedInput(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	path := writeCrumb(t, inDir, "bad.crumb", `{broken`)

	result := testConverter().File(path, outDir)

	require.Error(t, result.Err)
	var merr *parsers.MalformedInputError
	assert.ErrorAs(t, result.Err, &merr)
}

func TestConverter_SlugCollisionAcrossFiles(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	first := writeCrumb(t, inDir, "a.crumb", `{"name":"Soup"}`)
	second := writeCrumb(t, inDir, "b.crumb", `{"name":"Soup"}`)

	converter := testConverter()
	resA := converter.File(first, outDir)
	resB := converter.File(second, outDir)

	require.NoError(t, resA.Err)
	require.NoError(t, resB.Err)
	assert.Equal(t, filepath.Join(outDir, "soup.md"), resA.Outputs[0])
	assert.Equal(t, filepath.Join(outDir, "soup-2.md"), resB.Outputs[0])
}

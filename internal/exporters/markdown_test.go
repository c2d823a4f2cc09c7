package exporters

import (
	"strings"
	"testing"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jd-santos/cookdown/internal/images"
	"github.com/jd-santos/cookdown/internal/recipe"
)

var renderTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type parsedFront struct {
	Title     string   `yaml:"title"`
	Created   string   `yaml:"created"`
	Updated   string   `yaml:"updated"`
	Tags      []string `yaml:"tags"`
	Photos    []string `yaml:"photos"`
	SourceURL string   `yaml:"source-url"`
	Servings  any      `yaml:"servings"`
	CookTime  string   `yaml:"cook-time"`
	TotalTime string   `yaml:"total-time"`
}

func parseOutput(t *testing.T, text string) (parsedFront, string) {
	t.Helper()
	var front parsedFront
	body, err := frontmatter.Parse(strings.NewReader(text), &front)
	require.NoError(t, err)
	return front, string(body)
}

func TestRenderMarkdown_SpecExample(t *testing.T) {
	rec := &recipe.Recipe{
		Name: "Soup",
		Ingredients: []recipe.Entry{
			recipe.Line("1 onion"),
			recipe.Line("2 cups stock"),
		},
		Instructions: []recipe.Entry{
			recipe.Line("Chop onion"),
			recipe.Line("Simmer"),
		},
		Metadata: map[string]any{},
	}

	text, err := RenderMarkdown(rec, nil, renderTime)
	require.NoError(t, err)

	front, body := parseOutput(t, text)
	assert.Equal(t, "Soup", front.Title)
	assert.Equal(t, "2024-06-01", front.Created)
	assert.Empty(t, front.Photos)

	assert.Contains(t, body, "# Soup")
	assert.Contains(t, body, "## Ingredients")
	// Source order must survive rendering.
	onion := strings.Index(body, "- 1 onion")
	stock := strings.Index(body, "- 2 cups stock")
	require.GreaterOrEqual(t, onion, 0)
	require.Greater(t, stock, onion)
	assert.Contains(t, body, "1. Chop onion")
	assert.Contains(t, body, "2. Simmer")
}

func TestRenderMarkdown_Deterministic(t *testing.T) {
	rec := &recipe.Recipe{
		Name:        "Chili",
		Ingredients: []recipe.Entry{recipe.Line("beans")},
		Metadata:    map[string]any{"zeta": "z", "alpha": "a", "servings": "6"},
	}
	refs := []images.Ref{{Index: 0, Path: "images/chili-0.jpg"}}

	first, err := RenderMarkdown(rec, refs, renderTime)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := RenderMarkdown(rec, refs, renderTime)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRenderMarkdown_FrontmatterSchemaMerge(t *testing.T) {
	rec := &recipe.Recipe{
		Name: "Crouton Classic",
		Metadata: map[string]any{
			"webLink":         "https://example.com/r",
			"serves":          float64(4),
			"prepDuration":    float64(15),
			"cookingDuration": float64(45),
			"customKey":       "custom value",
		},
	}

	text, err := RenderMarkdown(rec, nil, renderTime)
	require.NoError(t, err)

	front, _ := parseOutput(t, text)
	assert.Equal(t, "https://example.com/r", front.SourceURL)
	assert.Equal(t, "45 minutes", front.CookTime)
	assert.Equal(t, "60 minutes", front.TotalTime)
	// Unknown keys pass through verbatim.
	assert.Contains(t, text, "customKey: custom value")
}

func TestRenderMarkdown_SectionsAndBodyMetadata(t *testing.T) {
	rec := &recipe.Recipe{
		Name: "Lasagna",
		Ingredients: []recipe.Entry{
			recipe.Section("Ragu"),
			recipe.Line("500g beef"),
			recipe.Section("Bechamel"),
			recipe.Line("50g butter"),
		},
		Instructions: []recipe.Entry{
			recipe.Section("Assembly"),
			recipe.Line("Layer everything"),
			recipe.Line("Bake"),
		},
		Metadata: map[string]any{
			"notes":            "Rest before serving.",
			"nutritional_info": "A lot.",
		},
	}

	text, err := RenderMarkdown(rec, nil, renderTime)
	require.NoError(t, err)

	_, body := parseOutput(t, text)
	assert.Contains(t, body, "### Ragu")
	assert.Contains(t, body, "### Bechamel")
	assert.Contains(t, body, "### Assembly")
	assert.Contains(t, body, "1. Layer everything")
	assert.Contains(t, body, "2. Bake")
	assert.Contains(t, body, "## Notes\n\nRest before serving.")
	assert.Contains(t, body, "## Nutrition\n\nA lot.")
	// Body metadata must not leak into the frontmatter.
	assert.NotContains(t, text, "notes:")
}

func TestRenderMarkdown_PhotoPathsInIndexOrder(t *testing.T) {
	rec := &recipe.Recipe{Name: "Tart", Metadata: map[string]any{}}
	refs := []images.Ref{
		{Index: 0, Path: "images/tart-0.png"},
		{Index: 2, Path: "images/tart-2.jpg"},
	}

	text, err := RenderMarkdown(rec, refs, renderTime)
	require.NoError(t, err)

	front, _ := parseOutput(t, text)
	assert.Equal(t, []string{"images/tart-0.png", "images/tart-2.jpg"}, front.Photos)
}

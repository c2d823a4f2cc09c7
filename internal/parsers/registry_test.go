package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_ResolvesKnownExtensions(t *testing.T) {
	registry := Builtin()

	for _, ext := range []string{"crumb", ".crumb", "CRUMB", "paprikarecipe", ".paprikarecipes", "PaprikaRecipes"} {
		factory, err := registry.Resolve(ext)
		require.NoError(t, err, "extension %q", ext)
		assert.NotNil(t, factory())
	}
}

func TestBuiltin_RejectsUnknownExtension(t *testing.T) {
	registry := Builtin()

	_, err := registry.Resolve(".mmf")

	require.Error(t, err)
	var uerr *UnsupportedFormatError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, ".mmf", uerr.Extension)
	assert.Contains(t, uerr.Supported, "crumb")
}

func TestRegistry_Extensions_Sorted(t *testing.T) {
	registry := Builtin()

	assert.Equal(t, []string{"crumb", "paprikarecipe", "paprikarecipes"}, registry.Extensions())
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	registry := NewRegistry()
	registry.Register("crumb", func() Parser { return NewPaprikaParser() })
	registry.Register("crumb", func() Parser { return NewCrumbParser() })

	factory, err := registry.Resolve("crumb")

	require.NoError(t, err)
	assert.IsType(t, &CrumbParser{}, factory())
}

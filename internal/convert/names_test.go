package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames_FirstClaimIsBare(t *testing.T) {
	names := NewNames()

	assert.Equal(t, "soup", names.Claim("soup"))
}

func TestNames_CollisionsGetSuffixesInClaimOrder(t *testing.T) {
	names := NewNames()

	assert.Equal(t, "soup", names.Claim("soup"))
	assert.Equal(t, "soup-2", names.Claim("soup"))
	assert.Equal(t, "soup-3", names.Claim("soup"))
	assert.Equal(t, "stew", names.Claim("stew"))
	assert.Equal(t, "soup-4", names.Claim("soup"))
}

func TestNames_SuffixedSlugAlreadyTaken(t *testing.T) {
	names := NewNames()

	// A recipe whose slug literally matches a suffix candidate.
	assert.Equal(t, "soup-2", names.Claim("soup-2"))
	assert.Equal(t, "soup", names.Claim("soup"))
	// The second "soup" would become soup-2, which is taken.
	assert.Equal(t, "soup-3", names.Claim("soup"))
}

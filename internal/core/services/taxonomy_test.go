package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

func TestRejectionTaxonomy_Defaults(t *testing.T) {
	tax := NewRejectionTaxonomy(nil)

	list := tax.List()
	require.Len(t, list, 10)
	assert.Equal(t, "too_dark", list[0].ID)
	assert.Equal(t, "other", list[9].ID)

	other, ok := tax.Get("other")
	require.True(t, ok)
	assert.Empty(t, other.NegativePrompt)
	assert.Empty(t, other.PositiveGuidance)

	_, ok = tax.Get("missing")
	assert.False(t, ok)
}

func TestRejectionTaxonomy_OverridesWinAndAppend(t *testing.T) {
	tax := NewRejectionTaxonomy(map[string]domain.RejectionCategory{
		"too_dark":     {Label: "Dim", NegativePrompt: "gloom", PositiveGuidance: "sunlit"},
		"wrong_season": {NegativePrompt: "snow", PositiveGuidance: "summer light"},
	})

	list := tax.List()
	require.Len(t, list, 11)
	assert.Equal(t, "too_dark", list[0].ID)
	assert.Equal(t, "Dim", list[0].Label)
	assert.Equal(t, "wrong_season", list[10].ID)
	assert.Equal(t, "wrong_season", list[10].Label)

	assert.Equal(t, []string{"gloom", "snow"}, tax.NegativeTerms([]string{"too_dark", "wrong_season"}))
}

func TestRejectionTaxonomy_InstancesAreIsolated(t *testing.T) {
	custom := NewRejectionTaxonomy(map[string]domain.RejectionCategory{
		"too_dark": {NegativePrompt: "gloom"},
	})
	plain := NewRejectionTaxonomy(nil)

	c, _ := custom.Get("too_dark")
	p, _ := plain.Get("too_dark")
	assert.Equal(t, "gloom", c.NegativePrompt)
	assert.Equal(t, "dark lighting, shadows, underexposed, dim, murky", p.NegativePrompt)

	// Mutating a listed copy does not reach the catalog.
	list := plain.List()
	list[0].NegativePrompt = "changed"
	p, _ = plain.Get("too_dark")
	assert.NotEqual(t, "changed", p.NegativePrompt)
}

func TestRejectionTaxonomy_FragmentsSkipEmptyAndUnknown(t *testing.T) {
	tax := NewRejectionTaxonomy(nil)

	reasons := []string{"other", "unknown", "cluttered"}
	assert.Equal(t, []string{"busy background, clutter, distracting elements, messy"}, tax.NegativeTerms(reasons))
	assert.Equal(t, []string{"clean background, minimal distractions, organized"}, tax.PositiveGuidance(reasons))
	assert.Empty(t, tax.NegativeTerms(nil))
}

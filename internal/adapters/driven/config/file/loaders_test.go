package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTaxonomyOverrides(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		overrides, err := LoadTaxonomyOverrides("")
		require.NoError(t, err)
		assert.Nil(t, overrides)
	})

	t.Run("categories document", func(t *testing.T) {
		path := writeFile(t, "taxonomy.yaml", `
categories:
  - id: too_dark
    label: Too Dark
    negative_prompt: "murky, gloomy"
    positive_guidance: "bright daylight"
  - id: wrong_fabric
    negative_prompt: "polyester sheen"
`)
		overrides, err := LoadTaxonomyOverrides(path)
		require.NoError(t, err)
		require.Len(t, overrides, 2)
		assert.Equal(t, "murky, gloomy", overrides["too_dark"].NegativePrompt)
		assert.Equal(t, "polyester sheen", overrides["wrong_fabric"].NegativePrompt)
	})

	t.Run("bare list", func(t *testing.T) {
		path := writeFile(t, "taxonomy.yaml", `
- id: too_bright
  negative_prompt: "glare"
`)
		overrides, err := LoadTaxonomyOverrides(path)
		require.NoError(t, err)
		assert.Equal(t, "glare", overrides["too_bright"].NegativePrompt)
	})

	t.Run("missing id", func(t *testing.T) {
		path := writeFile(t, "taxonomy.yaml", "categories:\n  - label: Nameless\n")
		_, err := LoadTaxonomyOverrides(path)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTaxonomyOverrides(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestParseManifest(t *testing.T) {
	t.Run("valid manifest builds pending deliverables", func(t *testing.T) {
		m, err := ParseManifest([]byte(`
id: spring-24
brand_id: jenni_kayne
name: Spring Linen
max_retries: 0
deliverables:
  - id: hero
    description: Hero shot
    ai_model: Nano
    prompt: "  Model in linen dress  "
    reference_images: [/refs/a.png]
  - ai_model: veo
    prompt: Slow pan across a sunlit porch
`))
		require.NoError(t, err)

		campaign, deliverables := m.Build()
		assert.Equal(t, "spring-24", campaign.ID)
		assert.Equal(t, 0, campaign.MaxRetries)
		assert.Equal(t, domain.CampaignStatusDraft, campaign.Status)
		require.Len(t, deliverables, 2)

		hero := deliverables[0]
		assert.Equal(t, "hero", hero.ID)
		assert.Equal(t, "nano", hero.Model)
		assert.Equal(t, "Model in linen dress", hero.OriginalPrompt)
		assert.Equal(t, hero.OriginalPrompt, hero.CurrentPrompt)
		assert.Equal(t, domain.DeliverableStatusPending, hero.Status)
		assert.Equal(t, []string{"/refs/a.png"}, hero.ReferenceImages)

		assert.NotEmpty(t, deliverables[1].ID)
		assert.Equal(t, "spring-24", deliverables[1].CampaignID)
	})

	t.Run("defaults", func(t *testing.T) {
		m, err := ParseManifest([]byte(`
brand_id: jenni_kayne
deliverables:
  - ai_model: nano
    prompt: p
`))
		require.NoError(t, err)

		campaign, _ := m.Build()
		assert.NotEmpty(t, campaign.ID)
		assert.Equal(t, campaign.ID, campaign.Name)
		assert.Equal(t, domain.DefaultMaxRetries, campaign.MaxRetries)
	})

	t.Run("invalid manifest reports every problem", func(t *testing.T) {
		_, err := ParseManifest([]byte(`
max_retries: -1
deliverables:
  - id: a
    prompt: p
  - id: a
    ai_model: nano
`))
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "brand_id is required")
		assert.Contains(t, err.Error(), "max_retries -1 is negative")
		assert.Contains(t, err.Error(), "deliverable 0: ai_model is required")
		assert.Contains(t, err.Error(), "deliverable 1: prompt is required")
		assert.Contains(t, err.Error(), `duplicate id "a"`)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseManifest([]byte("brand_id: [unterminated"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

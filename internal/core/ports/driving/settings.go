package driving

import "github.com/custodia-labs/brandloop/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// SetPipeline persists pipeline tuning.
	SetPipeline(settings domain.PipelineSettings) error

	// SetGeminiAPIKey persists the Gemini API key.
	SetGeminiAPIKey(key string) error
}

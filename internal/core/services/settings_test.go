package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brandloop/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/brandloop/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Pipeline, settings.Pipeline)
	assert.Equal(t, defaults.Gate, settings.Gate)
	assert.Equal(t, defaults.Drift, settings.Drift)
	assert.Equal(t, defaults.Collaborators.GeminiModel, settings.Collaborators.GeminiModel)
	assert.Empty(t, settings.Collaborators.GeminiAPIKey)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("pipeline.max_retries", int64(0))
	_ = store.Set("pipeline.poll_interval_ms", int64(50))
	_ = store.Set("pipeline.batch_concurrency", int64(4))
	_ = store.Set("pipeline.auto_pass_threshold", 0.9)
	_ = store.Set("drift.threshold", 0.2)
	_ = store.Set("scoring.command", []any{"python3", "score.py"})
	_ = store.Set("generation.gemini_api_key", "from-config")
	_ = store.Set("storage.data_dir", "/var/lib/brandloop")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Zero(t, settings.Pipeline.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, settings.Pipeline.PollInterval)
	assert.Equal(t, 4, settings.Pipeline.BatchConcurrency)
	assert.InDelta(t, 0.9, settings.Gate.AutoPassThreshold, 1e-9)
	assert.InDelta(t, 0.2, settings.Drift.Threshold, 1e-9)
	assert.Equal(t, []string{"python3", "score.py"}, settings.Collaborators.ScoringCommand)
	assert.Equal(t, "from-config", settings.Collaborators.GeminiAPIKey)
	assert.Equal(t, "/var/lib/brandloop", settings.DataDir)
}

func TestSettingsService_Get_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "from-env")

	settings, err := NewSettingsService(memory.NewConfigStore()).Get()
	require.NoError(t, err)
	assert.Equal(t, "from-env", settings.Collaborators.GeminiAPIKey)
}

func TestSettingsService_Get_InvalidThresholds(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("pipeline.hitl_threshold", 0.95)

	_, err := NewSettingsService(store).Get()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetPipeline(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.SetPipeline(domain.PipelineSettings{MaxRetries: 5, PollInterval: time.Second, BatchConcurrency: 2})
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 5, settings.Pipeline.MaxRetries)
	assert.Equal(t, time.Second, settings.Pipeline.PollInterval)
	assert.Equal(t, 2, settings.Pipeline.BatchConcurrency)
}

func TestSettingsService_SetPipeline_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		name     string
		settings domain.PipelineSettings
	}{
		{"negative retries", domain.PipelineSettings{MaxRetries: -1, BatchConcurrency: 1}},
		{"negative interval", domain.PipelineSettings{PollInterval: -time.Second, BatchConcurrency: 1}},
		{"zero concurrency", domain.PipelineSettings{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, service.SetPipeline(tt.settings), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_SetGeminiAPIKey(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.SetGeminiAPIKey("  "), domain.ErrInvalidInput)
	require.NoError(t, service.SetGeminiAPIKey(" stored-key "))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "stored-key", settings.Collaborators.GeminiAPIKey)
}

package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyMaxRetries        = "pipeline.max_retries"
	keyPollIntervalMS    = "pipeline.poll_interval_ms"
	keyBatchConcurrency  = "pipeline.batch_concurrency"
	keyAutoPassThreshold = "pipeline.auto_pass_threshold"
	keyHITLThreshold     = "pipeline.hitl_threshold"
	keyDriftThreshold    = "drift.threshold"
	keyGenerationCommand = "generation.command"
	keyGenerationOutDir  = "generation.output_dir"
	keyGeminiAPIKey      = "generation.gemini_api_key"
	keyGeminiModel       = "generation.gemini_model"
	keyScoringCommand    = "scoring.command"
	keyIngestCommand     = "memory.ingest_command"
	keyDataDir           = "storage.data_dir"
	keyTaxonomyOverrides = "taxonomy.overrides_file"
)

// EnvGeminiAPIKey is consulted when no API key is configured.
//
//nolint:gosec // G101: environment variable name, not a credential.
const EnvGeminiAPIKey = "GEMINI_API_KEY"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Pipeline: domain.PipelineSettings{
			MaxRetries:       s.getIntAllowZero(keyMaxRetries, defaults.Pipeline.MaxRetries),
			PollInterval:     s.getMillis(keyPollIntervalMS, defaults.Pipeline.PollInterval),
			BatchConcurrency: s.getInt(keyBatchConcurrency, defaults.Pipeline.BatchConcurrency),
		},
		Gate: domain.GateSettings{
			AutoPassThreshold: s.getFloat(keyAutoPassThreshold, defaults.Gate.AutoPassThreshold),
			HITLThreshold:     s.getFloat(keyHITLThreshold, defaults.Gate.HITLThreshold),
		},
		Drift: domain.DriftSettings{
			Threshold: s.getFloat(keyDriftThreshold, defaults.Drift.Threshold),
		},
		Collaborators: domain.CollaboratorSettings{
			GenerationCommand:   s.configStore.GetStringSlice(keyGenerationCommand),
			GenerationOutputDir: s.configStore.GetString(keyGenerationOutDir),
			GeminiAPIKey:        s.getString(keyGeminiAPIKey, os.Getenv(EnvGeminiAPIKey)),
			GeminiModel:         s.getString(keyGeminiModel, defaults.Collaborators.GeminiModel),
			ScoringCommand:      s.configStore.GetStringSlice(keyScoringCommand),
			IngestCommand:       s.configStore.GetStringSlice(keyIngestCommand),
		},
		DataDir:               s.configStore.GetString(keyDataDir),
		TaxonomyOverridesFile: s.configStore.GetString(keyTaxonomyOverrides),
	}

	if settings.Gate.HITLThreshold > settings.Gate.AutoPassThreshold {
		return nil, fmt.Errorf("%w: hitl threshold %.2f above auto-pass threshold %.2f",
			domain.ErrInvalidInput, settings.Gate.HITLThreshold, settings.Gate.AutoPassThreshold)
	}

	return settings, nil
}

// SetPipeline validates and persists pipeline tuning.
func (s *SettingsService) SetPipeline(settings domain.PipelineSettings) error {
	if settings.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries %d", domain.ErrInvalidInput, settings.MaxRetries)
	}
	if settings.PollInterval < 0 {
		return fmt.Errorf("%w: poll interval %s", domain.ErrInvalidInput, settings.PollInterval)
	}
	if settings.BatchConcurrency < 1 {
		return fmt.Errorf("%w: batch concurrency %d", domain.ErrInvalidInput, settings.BatchConcurrency)
	}

	if err := s.configStore.Set(keyMaxRetries, settings.MaxRetries); err != nil {
		return fmt.Errorf("save max retries: %w", err)
	}
	if err := s.configStore.Set(keyPollIntervalMS, int(settings.PollInterval/time.Millisecond)); err != nil {
		return fmt.Errorf("save poll interval: %w", err)
	}
	if err := s.configStore.Set(keyBatchConcurrency, settings.BatchConcurrency); err != nil {
		return fmt.Errorf("save batch concurrency: %w", err)
	}
	return nil
}

// SetGeminiAPIKey persists the Gemini API key.
func (s *SettingsService) SetGeminiAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: empty API key", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyGeminiAPIKey, key); err != nil {
		return fmt.Errorf("save gemini API key: %w", err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getIntAllowZero treats an explicit 0 as a value rather than a missing key.
func (s *SettingsService) getIntAllowZero(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	ms := s.configStore.GetInt(key)
	if ms < 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

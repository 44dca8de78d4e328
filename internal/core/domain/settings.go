package domain

import "time"

// Default pipeline tuning.
const (
	DefaultPollInterval      = 500 * time.Millisecond
	DefaultBatchConcurrency  = 1
	DefaultAutoPassThreshold = 0.92
	DefaultHITLThreshold     = 0.5
	DefaultGeminiModel       = "gemini-2.5-flash-image"
)

// PipelineSettings tunes the orchestration loop.
type PipelineSettings struct {
	// MaxRetries is the budget given to campaigns that do not set one.
	MaxRetries int

	// PollInterval is the pause between loop iterations.
	PollInterval time.Duration

	// BatchConcurrency bounds parallel generate/score calls within one batch.
	// 1 keeps batches sequential.
	BatchConcurrency int
}

// GateSettings holds the quality gate thresholds.
type GateSettings struct {
	AutoPassThreshold float64
	HITLThreshold     float64
}

// DriftSettings holds the drift check threshold.
type DriftSettings struct {
	Threshold float64
}

// CollaboratorSettings configures the external collaborators.
type CollaboratorSettings struct {
	// GenerationCommand is the executable invoked for command-backed generation.
	GenerationCommand []string

	// GenerationOutputDir is where generated media is written.
	GenerationOutputDir string

	// GeminiAPIKey enables the Gemini image generator when set.
	GeminiAPIKey string

	// GeminiModel is the Gemini image model name.
	GeminiModel string

	// ScoringCommand is the executable invoked to grade artifacts.
	ScoringCommand []string

	// IngestCommand is the executable invoked to write long-term memory.
	IngestCommand []string
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Pipeline      PipelineSettings
	Gate          GateSettings
	Drift         DriftSettings
	Collaborators CollaboratorSettings

	// DataDir holds the SQLite database.
	DataDir string

	// TaxonomyOverridesFile is an optional YAML file of extra rejection categories.
	TaxonomyOverridesFile string
}

// DefaultAppSettings returns settings with default values.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Pipeline: PipelineSettings{
			MaxRetries:       DefaultMaxRetries,
			PollInterval:     DefaultPollInterval,
			BatchConcurrency: DefaultBatchConcurrency,
		},
		Gate: GateSettings{
			AutoPassThreshold: DefaultAutoPassThreshold,
			HITLThreshold:     DefaultHITLThreshold,
		},
		Drift: DriftSettings{
			Threshold: DefaultDriftThreshold,
		},
		Collaborators: CollaboratorSettings{
			GeminiModel: DefaultGeminiModel,
		},
	}
}

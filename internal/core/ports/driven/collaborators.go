package driven

import (
	"context"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

// Generator produces media for a prompt.
// Each call is a fresh attempt; calling it repeatedly for one deliverable is safe.
// Timeouts are the implementation's concern and surface as ordinary errors.
type Generator interface {
	// Generate returns an unsaved artifact describing the produced file.
	// Type, Name, Path and Size are filled in; identity fields are left to the caller.
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Artifact, error)
}

// Scorer grades an artifact against a brand.
// Implementations must only read canonical (core) partitions, never the campaign
// partitions generated content is written to.
type Scorer interface {
	// Score returns raw per-modality similarities and the fused value.
	Score(ctx context.Context, artifact domain.Artifact, brandID string) (domain.Scores, error)
}

// MemoryIngestor writes approved artifacts into long-term brand memory.
// It is write-only and targets the brand's campaign partitions.
type MemoryIngestor interface {
	// Ingest adds the artifact to the given partitions, keyed by modality.
	Ingest(ctx context.Context, artifact domain.Artifact, brandID string, partitions map[string]string) error

	// Remove retracts an artifact from the given partitions.
	Remove(ctx context.Context, artifact domain.Artifact, brandID string, partitions map[string]string) error
}

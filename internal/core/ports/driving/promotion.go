package driving

import (
	"context"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

// PromotionService commits approved work to long-term brand memory.
type PromotionService interface {
	// Promote ingests approved deliverables' artifacts and recomputes the brand profile.
	Promote(ctx context.Context, brandID string, approved []domain.Deliverable) (*domain.BrandProfile, error)

	// CheckDrift compares a current fused score with the brand's stored baseline.
	// Missing profiles and baselines are reported, never returned as errors.
	CheckDrift(ctx context.Context, brandID string, currentFused float64) domain.DriftReport

	// Remove retracts an artifact from the brand's campaign partitions.
	Remove(ctx context.Context, artifactID, brandID string) error
}

package command

import (
	"context"
	"fmt"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure Scorer implements the interface.
var _ driven.Scorer = (*Scorer)(nil)

type scoreRequest struct {
	ArtifactID   string            `json:"artifact_id"`
	ArtifactPath string            `json:"artifact_path"`
	ArtifactType string            `json:"artifact_type"`
	BrandID      string            `json:"brand_id"`
	Partitions   map[string]string `json:"partitions"`
}

type scoreResponse struct {
	CLIP   float64 `json:"clip_score"`
	E5     float64 `json:"e5_score"`
	Cohere float64 `json:"cohere_score"`
	Fused  float64 `json:"fused_score"`
	Error  string  `json:"error"`
}

// Scorer runs an external retrieval script against a brand's core partitions.
type Scorer struct {
	runner *Runner
}

// NewScorer creates a scorer.
func NewScorer(runner *Runner) *Scorer {
	return &Scorer{runner: runner}
}

// Score grades the artifact. Only canonical partitions are ever passed along.
func (s *Scorer) Score(ctx context.Context, artifact domain.Artifact, brandID string) (domain.Scores, error) {
	if artifact.Path == "" {
		return domain.Scores{}, fmt.Errorf("%w: %w", domain.ErrScoringFailed, domain.ErrNoArtifact)
	}

	partitions := domain.Partitions(brandID, domain.PartitionCore)
	for _, name := range partitions {
		if err := domain.AssertGradingPartition(name); err != nil {
			return domain.Scores{}, err
		}
	}

	var resp scoreResponse
	err := s.runner.Run(ctx, scoreRequest{
		ArtifactID:   artifact.ID,
		ArtifactPath: artifact.Path,
		ArtifactType: string(artifact.Type),
		BrandID:      brandID,
		Partitions:   partitions,
	}, &resp)
	if err != nil {
		return domain.Scores{}, fmt.Errorf("%w: %w", domain.ErrScoringFailed, err)
	}
	if resp.Error != "" {
		return domain.Scores{}, fmt.Errorf("%w: %s", domain.ErrScoringFailed, resp.Error)
	}

	return domain.Scores{
		CLIP:   resp.CLIP,
		E5:     resp.E5,
		Cohere: resp.Cohere,
		Fused:  resp.Fused,
	}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
	"github.com/custodia-labs/brandloop/internal/logger"
)

// Ensure DNAPromoter implements the interface.
var _ driving.PromotionService = (*DNAPromoter)(nil)

// DNAPromoter commits approved artifacts to long-term brand memory and
// maintains the brand profile used for drift checks.
type DNAPromoter struct {
	artifacts driven.ArtifactStore
	profiles  driven.ProfileStore
	ingestor  driven.MemoryIngestor
	threshold float64
	stat      func(string) (os.FileInfo, error)
}

// NewDNAPromoter creates a promoter. The ingestor may be nil, in which case
// only the profile is recomputed.
func NewDNAPromoter(
	artifacts driven.ArtifactStore,
	profiles driven.ProfileStore,
	ingestor driven.MemoryIngestor,
	settings domain.DriftSettings,
) *DNAPromoter {
	threshold := settings.Threshold
	if threshold <= 0 {
		threshold = domain.DefaultDriftThreshold
	}
	return &DNAPromoter{
		artifacts: artifacts,
		profiles:  profiles,
		ingestor:  ingestor,
		threshold: threshold,
		stat:      os.Stat,
	}
}

// Promote ingests every approved deliverable's artifact into the brand's
// campaign partitions, then recomputes and overwrites the brand profile.
// Per-artifact ingestion failures are logged and skipped.
func (p *DNAPromoter) Promote(ctx context.Context, brandID string, approved []domain.Deliverable) (*domain.BrandProfile, error) {
	log := logger.Named("promotion").With(zap.String("brand", brandID))
	logger.Section("DNA Promotion")

	partitions := domain.Partitions(brandID, domain.PartitionCampaign)
	if err := assertWritePartitions(partitions); err != nil {
		return nil, err
	}

	ingested := 0
	for i := range approved {
		d := &approved[i]
		if d.Status != domain.DeliverableStatusApproved || d.ArtifactID == "" {
			continue
		}

		artifact, err := p.artifacts.Get(ctx, d.ArtifactID)
		if err != nil {
			log.Warn("artifact lookup failed", zap.String("deliverable", d.ID), zap.Error(err))
			continue
		}
		if artifact.Path == "" {
			log.Warn("artifact has no file", zap.String("deliverable", d.ID))
			continue
		}
		if _, err := p.stat(artifact.Path); err != nil {
			log.Warn("artifact file missing", zap.String("deliverable", d.ID), zap.String("path", artifact.Path))
			continue
		}
		if p.ingestor == nil {
			continue
		}
		if err := p.ingestor.Ingest(ctx, *artifact, brandID, partitions); err != nil {
			log.Warn("ingest failed", zap.String("deliverable", d.ID), zap.Error(err))
			continue
		}
		ingested++
	}
	log.Info("ingested approved artifacts", zap.Int("count", ingested), zap.Int("approved", len(approved)))

	profile, err := p.RecomputeProfile(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// RecomputeProfile rebuilds the brand's statistics from every stored artifact.
// Averages cover graded artifacts only; the count covers all of them.
func (p *DNAPromoter) RecomputeProfile(ctx context.Context, brandID string) (*domain.BrandProfile, error) {
	artifacts, err := p.artifacts.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts for %s: %w", brandID, err)
	}

	profile := domain.BrandProfile{
		BrandID:        brandID,
		TotalArtifacts: len(artifacts),
		LastUpdated:    time.Now().UTC(),
	}

	var sum domain.Scores
	for i := range artifacts {
		if !artifacts[i].Graded() {
			continue
		}
		g := artifacts[i].Grade
		sum.CLIP += g.CLIP
		sum.E5 += g.E5
		sum.Cohere += g.Cohere
		sum.Fused += g.Fused
		profile.GradedArtifacts++
	}

	if n := float64(profile.GradedArtifacts); n > 0 {
		profile.AvgScores = domain.Scores{
			CLIP:   sum.CLIP / n,
			E5:     sum.E5 / n,
			Cohere: sum.Cohere / n,
			Fused:  sum.Fused / n,
		}
		profile.DriftBaseline = profile.AvgScores.Fused
	}

	if err := p.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile for %s: %w", brandID, err)
	}
	return &profile, nil
}

// CheckDrift compares a current fused score with the brand's baseline.
// Drift is detected when the baseline exceeds the current score by more
// than the threshold.
func (p *DNAPromoter) CheckDrift(ctx context.Context, brandID string, currentFused float64) domain.DriftReport {
	report := domain.DriftReport{BrandID: brandID, Current: currentFused}

	profile, err := p.profiles.Get(ctx, brandID)
	if errors.Is(err, domain.ErrNotFound) {
		report.Reason = domain.DriftReasonNoProfile
		return report
	}
	if err != nil {
		logger.Warn("drift check for %s: %v", brandID, err)
		report.Reason = domain.DriftReasonCheckError
		return report
	}
	if !profile.HasBaseline() {
		report.Reason = domain.DriftReasonNoBaseline
		return report
	}

	report.Baseline = profile.DriftBaseline
	report.Amount = roundScore(profile.DriftBaseline - currentFused)
	if report.Amount > p.threshold {
		report.Detected = true
		report.Reason = domain.DriftReasonScoreDegradation
	}
	return report
}

// Remove retracts an artifact from the brand's campaign partitions.
func (p *DNAPromoter) Remove(ctx context.Context, artifactID, brandID string) error {
	if p.ingestor == nil {
		return fmt.Errorf("remove artifact: %w", domain.ErrNotImplemented)
	}
	artifact, err := p.artifacts.Get(ctx, artifactID)
	if err != nil {
		return fmt.Errorf("get artifact %s: %w", artifactID, err)
	}

	partitions := domain.Partitions(brandID, domain.PartitionCampaign)
	if err := assertWritePartitions(partitions); err != nil {
		return err
	}
	if err := p.ingestor.Remove(ctx, *artifact, brandID, partitions); err != nil {
		return fmt.Errorf("remove artifact %s: %w", artifactID, err)
	}
	return nil
}

func assertWritePartitions(partitions map[string]string) error {
	if len(partitions) == 0 {
		return fmt.Errorf("%w: no partitions", domain.ErrInvalidPartition)
	}
	for _, name := range partitions {
		if err := domain.AssertWritePartition(name); err != nil {
			return err
		}
	}
	return nil
}

// roundScore drops float noise below score precision so threshold
// comparisons behave at the boundary.
func roundScore(x float64) float64 {
	return math.Round(x*1e9) / 1e9
}

package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brandloop/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/brandloop/internal/core/domain"
)

type promotionFixture struct {
	artifacts *memory.ArtifactStore
	profiles  *memory.ProfileStore
	ingestor  *memory.Ingestor
	promoter  *DNAPromoter
	dir       string
}

func newPromotionFixture(t *testing.T) *promotionFixture {
	t.Helper()
	f := &promotionFixture{
		artifacts: memory.NewArtifactStore(),
		profiles:  memory.NewProfileStore(),
		ingestor:  memory.NewIngestor(),
		dir:       t.TempDir(),
	}
	f.promoter = NewDNAPromoter(f.artifacts, f.profiles, f.ingestor, domain.DriftSettings{})
	return f
}

// approved saves an artifact and returns its approved deliverable.
func (f *promotionFixture) approved(t *testing.T, id string, grade *domain.Grade, writeFile bool) domain.Deliverable {
	t.Helper()
	path := filepath.Join(f.dir, id+".png")
	if writeFile {
		require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))
	}
	artifact := domain.Artifact{ID: "a-" + id, BrandID: "jenni_kayne", DeliverableID: id, Path: path, Grade: grade}
	require.NoError(t, f.artifacts.Save(context.Background(), artifact))

	d := domain.NewDeliverable(id, "c-1", "jenni_kayne", ModelNano, "prompt")
	d.Status = domain.DeliverableStatusApproved
	d.ArtifactID = artifact.ID
	return d
}

func TestDNAPromoter_Promote(t *testing.T) {
	f := newPromotionFixture(t)
	ctx := context.Background()

	approved := []domain.Deliverable{
		f.approved(t, "d-1", &domain.Grade{Scores: domain.Scores{CLIP: 0.8, E5: 0.7, Cohere: 0.6, Fused: 0.9}}, true),
		f.approved(t, "d-2", &domain.Grade{Scores: domain.Scores{CLIP: 0.6, E5: 0.5, Cohere: 0.4, Fused: 0.7}}, true),
		f.approved(t, "d-3", nil, false),
	}

	profile, err := f.promoter.Promote(ctx, "jenni_kayne", approved)
	require.NoError(t, err)

	assert.Equal(t, 3, profile.TotalArtifacts)
	assert.Equal(t, 2, profile.GradedArtifacts)
	assert.InDelta(t, 0.7, profile.AvgScores.CLIP, 1e-9)
	assert.InDelta(t, 0.6, profile.AvgScores.E5, 1e-9)
	assert.InDelta(t, 0.5, profile.AvgScores.Cohere, 1e-9)
	assert.InDelta(t, 0.8, profile.DriftBaseline, 1e-9)

	// Only artifacts with files on disk reach campaign partitions.
	assert.Equal(t, []string{"a-d-1", "a-d-2"}, f.ingestor.Contents("jennikayne-campaign-clip768"))
	assert.Equal(t, []string{"a-d-1", "a-d-2"}, f.ingestor.Contents("jennikayne-campaign-e5-1024"))
	assert.Empty(t, f.ingestor.Contents("jennikayne-core-clip768"))

	stored, err := f.profiles.Get(ctx, "jenni_kayne")
	require.NoError(t, err)
	assert.Equal(t, profile.DriftBaseline, stored.DriftBaseline)
}

func TestDNAPromoter_Promote_OverwritesSnapshot(t *testing.T) {
	f := newPromotionFixture(t)
	ctx := context.Background()

	first := []domain.Deliverable{f.approved(t, "d-1", &domain.Grade{Scores: domain.Scores{Fused: 0.9}}, true)}
	_, err := f.promoter.Promote(ctx, "jenni_kayne", first)
	require.NoError(t, err)

	second := []domain.Deliverable{f.approved(t, "d-2", &domain.Grade{Scores: domain.Scores{Fused: 0.5}}, true)}
	_, err = f.promoter.Promote(ctx, "jenni_kayne", second)
	require.NoError(t, err)

	stored, err := f.profiles.Get(ctx, "jenni_kayne")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.TotalArtifacts)
	assert.InDelta(t, 0.7, stored.DriftBaseline, 1e-9)
}

func TestDNAPromoter_Promote_WithoutIngestor(t *testing.T) {
	f := newPromotionFixture(t)
	promoter := NewDNAPromoter(f.artifacts, f.profiles, nil, domain.DriftSettings{})

	approved := []domain.Deliverable{f.approved(t, "d-1", &domain.Grade{Scores: domain.Scores{Fused: 0.9}}, true)}
	profile, err := promoter.Promote(context.Background(), "jenni_kayne", approved)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.GradedArtifacts)
}

func TestDNAPromoter_CheckDrift(t *testing.T) {
	f := newPromotionFixture(t)
	ctx := context.Background()

	report := f.promoter.CheckDrift(ctx, "jenni_kayne", 0.5)
	assert.False(t, report.Detected)
	assert.Equal(t, domain.DriftReasonNoProfile, report.Reason)

	require.NoError(t, f.profiles.Save(ctx, domain.BrandProfile{BrandID: "jenni_kayne", TotalArtifacts: 2}))
	report = f.promoter.CheckDrift(ctx, "jenni_kayne", 0.5)
	assert.False(t, report.Detected)
	assert.Equal(t, domain.DriftReasonNoBaseline, report.Reason)

	require.NoError(t, f.profiles.Save(ctx, domain.BrandProfile{
		BrandID:         "jenni_kayne",
		GradedArtifacts: 2,
		DriftBaseline:   0.85,
	}))

	tests := []struct {
		name     string
		current  float64
		detected bool
	}{
		{"within threshold", 0.80, false},
		{"exactly threshold", 0.75, false},
		{"beyond threshold", 0.70, true},
		{"improved", 0.95, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := f.promoter.CheckDrift(ctx, "jenni_kayne", tt.current)
			assert.Equal(t, tt.detected, report.Detected)
			assert.InDelta(t, 0.85-tt.current, report.Amount, 1e-9)
			assert.InDelta(t, 0.85, report.Baseline, 1e-9)
			if tt.detected {
				assert.Equal(t, domain.DriftReasonScoreDegradation, report.Reason)
			}
		})
	}
}

func TestDNAPromoter_CheckDrift_BoundaryIgnoresFloatNoise(t *testing.T) {
	f := newPromotionFixture(t)
	ctx := context.Background()

	// 0.80 - 0.70 is 0.10000000000000009 in float64.
	require.NoError(t, f.profiles.Save(ctx, domain.BrandProfile{
		BrandID:         "jenni_kayne",
		GradedArtifacts: 3,
		DriftBaseline:   0.80,
	}))

	report := f.promoter.CheckDrift(ctx, "jenni_kayne", 0.70)
	assert.False(t, report.Detected)
	assert.Equal(t, 0.1, report.Amount)

	report = f.promoter.CheckDrift(ctx, "jenni_kayne", 0.69)
	assert.True(t, report.Detected)
}

func TestDNAPromoter_Remove(t *testing.T) {
	f := newPromotionFixture(t)
	ctx := context.Background()

	approved := []domain.Deliverable{f.approved(t, "d-1", nil, true)}
	_, err := f.promoter.Promote(ctx, "jenni_kayne", approved)
	require.NoError(t, err)
	require.NotEmpty(t, f.ingestor.Contents("jennikayne-campaign-cohere1536"))

	require.NoError(t, f.promoter.Remove(ctx, "a-d-1", "jenni_kayne"))
	assert.Empty(t, f.ingestor.Contents("jennikayne-campaign-cohere1536"))

	err = f.promoter.Remove(ctx, "missing", "jenni_kayne")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

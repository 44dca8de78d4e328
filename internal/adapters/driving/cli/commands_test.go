package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

func TestDriftCheck(t *testing.T) {
	tests := []struct {
		name     string
		report   domain.DriftReport
		expected string
	}{
		{
			name: "drift detected",
			report: domain.DriftReport{
				BrandID: "jk", Detected: true, Baseline: 0.85, Current: 0.65, Amount: 0.2,
				Reason: domain.DriftReasonScoreDegradation,
			},
			expected: "Drift detected for jk: 0.200 below baseline 0.850 (current 0.650)",
		},
		{
			name:     "within threshold",
			report:   domain.DriftReport{BrandID: "jk", Baseline: 0.85, Current: 0.8},
			expected: "No drift for jk: current 0.800, baseline 0.850",
		},
		{
			name:     "no profile",
			report:   domain.DriftReport{BrandID: "jk", Reason: domain.DriftReasonNoProfile},
			expected: "No drift check possible for jk: no_brand_profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promotion := &mockPromotionService{report: tt.report}

			out, err := runCommand(t, &Services{Promotion: promotion}, "drift", "check", "jk", "0.65")

			require.NoError(t, err)
			assert.Contains(t, out, tt.expected)
		})
	}

	t.Run("invalid score", func(t *testing.T) {
		_, err := runCommand(t, &Services{Promotion: &mockPromotionService{}}, "drift", "check", "jk", "high")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid fused score")
	})
}

func TestDNARemove(t *testing.T) {
	t.Run("removes artifact", func(t *testing.T) {
		promotion := &mockPromotionService{}

		out, err := runCommand(t, &Services{Promotion: promotion}, "dna", "remove", "jk", "art-1")

		require.NoError(t, err)
		assert.Equal(t, "jk", promotion.removedBrand)
		assert.Equal(t, "art-1", promotion.removedID)
		assert.Contains(t, out, "Removed artifact art-1 from jk brand memory.")
	})

	t.Run("forbidden partition is reported", func(t *testing.T) {
		promotion := &mockPromotionService{err: domain.ErrCoreWriteForbidden}

		_, err := runCommand(t, &Services{Promotion: promotion}, "dna", "remove", "jk", "art-1")

		assert.ErrorIs(t, err, domain.ErrCoreWriteForbidden)
	})
}

func TestTaxonomyList(t *testing.T) {
	taxonomy := &mockTaxonomyService{
		categories: []domain.RejectionCategory{
			{ID: "too_dark", Label: "Too Dark", NegativePrompt: "dim", PositiveGuidance: "bright"},
			{ID: "other", Label: "Other"},
		},
	}

	out, err := runCommand(t, &Services{Taxonomy: taxonomy}, "taxonomy", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "too_dark (Too Dark)")
	assert.Contains(t, out, "avoid:  dim")
	assert.Contains(t, out, "prefer: bright")
	assert.Contains(t, out, "other (Other)")
}

func TestPromptMutate(t *testing.T) {
	prompts := &mockPromptService{}

	out, err := runCommand(t, &Services{Prompts: prompts},
		"prompt", "mutate", "linen", "dress", "--reason", "too_dark", "--negative", "rain", "--model", "veo")

	require.NoError(t, err)
	assert.Equal(t, []string{"too_dark"}, prompts.gotReasons)
	assert.Equal(t, []string{"rain"}, prompts.gotNegatives)
	assert.Equal(t, "veo", prompts.gotModel)
	assert.Contains(t, out, "Prompt:   linen dress, bright")
	assert.Contains(t, out, "Negative: dark")
}

func TestPromptEnhance(t *testing.T) {
	prompts := &mockPromptService{}

	out, err := runCommand(t, &Services{Prompts: prompts}, "prompt", "enhance", "linen dress", "--retry", "2")

	require.NoError(t, err)
	assert.Equal(t, 2, prompts.gotRetry)
	assert.Equal(t, "nano", prompts.gotModel)
	assert.Contains(t, out, "linen dress, sharp")
}

func TestCommands_WithoutServices(t *testing.T) {
	tests := [][]string{
		{"campaign", "run", "c-1"},
		{"campaign", "list"},
		{"hitl", "history", "d-1"},
		{"drift", "check", "jk", "0.5"},
		{"dna", "remove", "jk", "a-1"},
		{"taxonomy", "list"},
		{"prompt", "mutate", "x"},
		{"settings", "show"},
	}

	for _, args := range tests {
		t.Run(args[0]+" "+args[1], func(t *testing.T) {
			_, err := runCommand(t, nil, args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "not configured")
		})
	}
}

func TestRootCmd_Bootstrap(t *testing.T) {
	t.Run("bootstrap error stops the command", func(t *testing.T) {
		bootstrap = func(_ context.Context, _ Options) (*Services, func() error, error) {
			return nil, nil, errors.New("cannot open store")
		}
		defer func() { bootstrap = nil }()

		rootCmd.SetArgs([]string{"taxonomy", "list"})
		defer rootCmd.SetArgs(nil)

		err := rootCmd.ExecuteContext(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot open store")
	})

	t.Run("services installed and cleanup runs", func(t *testing.T) {
		closed := false
		var gotOpts Options
		bootstrap = func(_ context.Context, o Options) (*Services, func() error, error) {
			gotOpts = o
			return &Services{Taxonomy: &mockTaxonomyService{}}, func() error {
				closed = true
				return nil
			}, nil
		}
		defer func() {
			bootstrap = nil
			SetServices(nil)
			resetFlags(rootCmd)
		}()

		rootCmd.SetArgs([]string{"--data-dir", "/tmp/bl", "taxonomy", "list"})
		defer rootCmd.SetArgs(nil)

		require.NoError(t, rootCmd.ExecuteContext(context.Background()))
		assert.Equal(t, "/tmp/bl", gotOpts.DataDir)
		assert.NotNil(t, taxonomyService)
		assert.True(t, closed)
	})
}

package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

func TestHITLDecide(t *testing.T) {
	t.Run("reject with reasons requeues", func(t *testing.T) {
		campaigns := &mockCampaignService{
			deliverable: &domain.Deliverable{ID: "d-1", CampaignID: "spring-24"},
		}
		orchestrator := &mockOrchestrator{
			outcome: &domain.DecisionOutcome{
				DeliverableID: "d-1",
				Status:        domain.DeliverableStatusRetryQueued,
				Requeued:      true,
			},
		}
		factory := &mockOrchestratorFactory{orchestrator: orchestrator}

		out, err := runCommand(t, &Services{Campaigns: campaigns, Orchestrators: factory},
			"hitl", "decide", "d-1", "reject", "--reason", "too_dark", "--reason", "wrong_colors", "--note", "moody")

		require.NoError(t, err)
		assert.Equal(t, []string{"spring-24"}, factory.requested)
		require.Len(t, orchestrator.decisions, 1)
		got := orchestrator.decisions[0]
		assert.Equal(t, domain.ReviewReject, got.Decision)
		assert.Equal(t, []string{"too_dark", "wrong_colors"}, got.RejectionReasons)
		assert.Equal(t, "moody", got.Note)
		assert.Contains(t, out, "Deliverable d-1 is now retry_queued.")
		assert.Contains(t, out, "Queued for regeneration")
	})

	t.Run("approve that completes the campaign reports promotion", func(t *testing.T) {
		campaigns := &mockCampaignService{
			deliverable: &domain.Deliverable{ID: "d-1", CampaignID: "spring-24"},
		}
		orchestrator := &mockOrchestrator{
			outcome: &domain.DecisionOutcome{
				DeliverableID: "d-1",
				Status:        domain.DeliverableStatusApproved,
				Promoted:      true,
			},
		}

		out, err := runCommand(t, &Services{
			Campaigns:     campaigns,
			Orchestrators: &mockOrchestratorFactory{orchestrator: orchestrator},
		}, "hitl", "decide", "d-1", "APPROVE")

		require.NoError(t, err)
		require.Len(t, orchestrator.decisions, 1)
		assert.Empty(t, orchestrator.decisions[0].RejectionReasons)
		assert.Contains(t, out, "is now approved")
		assert.Contains(t, out, "promoted to brand memory")
	})

	t.Run("unknown decision", func(t *testing.T) {
		_, err := runCommand(t, &Services{
			Campaigns:     &mockCampaignService{},
			Orchestrators: &mockOrchestratorFactory{},
		}, "hitl", "decide", "d-1", "maybe")

		assert.ErrorIs(t, err, domain.ErrUnknownDecision)
	})

	t.Run("unknown deliverable", func(t *testing.T) {
		_, err := runCommand(t, &Services{
			Campaigns:     &mockCampaignService{err: domain.ErrNotFound},
			Orchestrators: &mockOrchestratorFactory{},
		}, "hitl", "decide", "nope", "approve")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "deliverable not found: nope")
	})

	t.Run("decision error is wrapped", func(t *testing.T) {
		campaigns := &mockCampaignService{
			deliverable: &domain.Deliverable{ID: "d-1", CampaignID: "spring-24"},
		}
		orchestrator := &mockOrchestrator{err: domain.ErrInvalidTransition}

		_, err := runCommand(t, &Services{
			Campaigns:     campaigns,
			Orchestrators: &mockOrchestratorFactory{orchestrator: orchestrator},
		}, "hitl", "decide", "d-1", "approve")

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestHITLHistory(t *testing.T) {
	t.Run("prints records", func(t *testing.T) {
		campaigns := &mockCampaignService{
			history: []domain.AuditRecord{
				{
					Attempt:          1,
					RejectionReasons: []string{"too_dark"},
					PromptBefore:     "linen dress",
					PromptAfter:      "linen dress, bright natural lighting",
					NegativePrompt:   "dark lighting",
					CreatedAt:        time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
				},
			},
		}

		out, err := runCommand(t, &Services{Campaigns: campaigns}, "hitl", "history", "d-1")

		require.NoError(t, err)
		assert.Contains(t, out, "Attempt 1  2024-03-01 10:00:00")
		assert.Contains(t, out, "[too_dark]")
		assert.Contains(t, out, "after:    linen dress, bright natural lighting")
		assert.Contains(t, out, "negative: dark lighting")
	})

	t.Run("no records", func(t *testing.T) {
		out, err := runCommand(t, &Services{Campaigns: &mockCampaignService{}}, "hitl", "history", "d-1")

		require.NoError(t, err)
		assert.Contains(t, out, "No prompt rewrites recorded for d-1.")
	})
}

package driving

import (
	"context"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

// CampaignOrchestrator drives one campaign's deliverables through the feedback loop.
// An instance owns its campaign's short-term memory and must not be shared
// across campaigns.
type CampaignOrchestrator interface {
	// CampaignID returns the campaign this instance drives.
	CampaignID() string

	// Run executes the generate, score and route loop until every deliverable is
	// terminal or the iteration bound is reached.
	Run(ctx context.Context) (*RunSummary, error)

	// HandleDecision applies a human review decision to a deliverable in hitl.
	HandleDecision(ctx context.Context, decision domain.HITLDecision) (*domain.DecisionOutcome, error)
}

// OrchestratorFactory creates an isolated orchestrator per campaign.
type OrchestratorFactory interface {
	// ForCampaign returns a new orchestrator with fresh short-term memory.
	ForCampaign(campaignID string) CampaignOrchestrator
}

// RunSummary reports the outcome of one orchestration run.
type RunSummary struct {
	// CampaignID identifies the campaign.
	CampaignID string `json:"campaign_id"`

	// Status is the campaign status written at the end of the run.
	Status domain.CampaignStatus `json:"status"`

	// Counts tallies deliverables by status.
	domain.StatusCounts

	// Iterations is the number of loop iterations executed.
	Iterations int `json:"iterations"`

	// Promoted is true if this run triggered DNA promotion.
	Promoted bool `json:"promoted"`
}

package driving

import (
	"context"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

// CampaignService manages campaign records outside the orchestration loop.
type CampaignService interface {
	// Import creates a campaign and its pending deliverables.
	// Returns domain.ErrAlreadyExists if the campaign id is taken.
	Import(ctx context.Context, campaign domain.Campaign, deliverables []domain.Deliverable) error

	// Get returns a campaign with its deliverables.
	Get(ctx context.Context, id string) (*CampaignDetail, error)

	// List returns all campaigns.
	List(ctx context.Context) ([]domain.Campaign, error)

	// Deliverable retrieves a deliverable by ID.
	Deliverable(ctx context.Context, id string) (*domain.Deliverable, error)

	// History returns a deliverable's prompt mutation records, oldest first.
	History(ctx context.Context, deliverableID string) ([]domain.AuditRecord, error)
}

// CampaignDetail is a campaign with its deliverables and status tally.
type CampaignDetail struct {
	Campaign     domain.Campaign      `json:"campaign"`
	Deliverables []domain.Deliverable `json:"deliverables"`
	Counts       domain.StatusCounts  `json:"counts"`
}

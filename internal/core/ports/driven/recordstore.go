package driven

import (
	"context"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

// CampaignStore persists campaign records.
type CampaignStore interface {
	// Save stores or updates a campaign.
	Save(ctx context.Context, campaign domain.Campaign) error

	// Get retrieves a campaign by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Campaign, error)

	// List returns all campaigns.
	List(ctx context.Context) ([]domain.Campaign, error)
}

// DeliverableStore persists deliverable records.
// Saves replace the whole record so readers never observe a half-updated deliverable.
type DeliverableStore interface {
	// Save stores or updates a deliverable.
	Save(ctx context.Context, deliverable domain.Deliverable) error

	// Get retrieves a deliverable by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Deliverable, error)

	// ListByCampaign returns a campaign's deliverables in creation order.
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.Deliverable, error)
}

// ArtifactStore persists generated artifacts and their grades.
type ArtifactStore interface {
	// Save stores or updates an artifact.
	Save(ctx context.Context, artifact domain.Artifact) error

	// Get retrieves an artifact by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Artifact, error)

	// ListByBrand returns every artifact produced for a brand.
	ListByBrand(ctx context.Context, brandID string) ([]domain.Artifact, error)
}

// AuditLog is the append-only record of prompt mutations.
type AuditLog interface {
	// Append adds a record. Records are never modified afterwards.
	Append(ctx context.Context, record domain.AuditRecord) error

	// ListByDeliverable returns a deliverable's records, oldest first.
	ListByDeliverable(ctx context.Context, deliverableID string) ([]domain.AuditRecord, error)
}

// ProfileStore persists brand profile snapshots, one per brand.
type ProfileStore interface {
	// Save replaces the brand's snapshot.
	Save(ctx context.Context, profile domain.BrandProfile) error

	// Get retrieves a brand's snapshot.
	// Returns domain.ErrNotFound if the brand has never been promoted.
	Get(ctx context.Context, brandID string) (*domain.BrandProfile, error)
}

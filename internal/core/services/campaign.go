package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
)

// Ensure CampaignService implements the interface.
var _ driving.CampaignService = (*CampaignService)(nil)

// CampaignService manages campaign records.
type CampaignService struct {
	campaigns    driven.CampaignStore
	deliverables driven.DeliverableStore
	audit        driven.AuditLog
}

// NewCampaignService creates a new campaign service.
func NewCampaignService(
	campaigns driven.CampaignStore,
	deliverables driven.DeliverableStore,
	audit driven.AuditLog,
) *CampaignService {
	return &CampaignService{
		campaigns:    campaigns,
		deliverables: deliverables,
		audit:        audit,
	}
}

// Import creates a campaign and its pending deliverables.
func (s *CampaignService) Import(ctx context.Context, campaign domain.Campaign, deliverables []domain.Deliverable) error {
	if s.campaigns == nil || s.deliverables == nil {
		return domain.ErrNotImplemented
	}
	if campaign.ID == "" || campaign.BrandID == "" {
		return fmt.Errorf("%w: campaign id and brand id are required", domain.ErrInvalidInput)
	}
	if campaign.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries %d", domain.ErrInvalidInput, campaign.MaxRetries)
	}

	for i := range deliverables {
		d := &deliverables[i]
		switch {
		case d.ID == "":
			return fmt.Errorf("%w: deliverable %d has no id", domain.ErrInvalidInput, i)
		case d.CampaignID != campaign.ID:
			return fmt.Errorf("%w: deliverable %s belongs to campaign %q", domain.ErrInvalidInput, d.ID, d.CampaignID)
		case d.Status != domain.DeliverableStatusPending:
			return fmt.Errorf("%w: deliverable %s must start pending, got %s", domain.ErrInvalidInput, d.ID, d.Status)
		case strings.TrimSpace(d.OriginalPrompt) == "":
			return fmt.Errorf("%w: deliverable %s has no prompt", domain.ErrInvalidInput, d.ID)
		}
		if _, err := s.deliverables.Get(ctx, d.ID); err == nil {
			return fmt.Errorf("deliverable %s: %w", d.ID, domain.ErrAlreadyExists)
		}
	}

	// Check if already exists
	if _, err := s.campaigns.Get(ctx, campaign.ID); err == nil {
		return fmt.Errorf("campaign %s: %w", campaign.ID, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("checking campaign: %w", err)
	}

	campaign.Status = domain.CampaignStatusDraft
	if err := s.campaigns.Save(ctx, campaign); err != nil {
		return err
	}
	for _, d := range deliverables {
		d.BrandID = campaign.BrandID
		if d.CurrentPrompt == "" {
			d.CurrentPrompt = d.OriginalPrompt
		}
		if err := s.deliverables.Save(ctx, d); err != nil {
			return fmt.Errorf("saving deliverable %s: %w", d.ID, err)
		}
	}
	return nil
}

// Get returns a campaign with its deliverables.
func (s *CampaignService) Get(ctx context.Context, id string) (*driving.CampaignDetail, error) {
	if s.campaigns == nil || s.deliverables == nil {
		return nil, domain.ErrNotImplemented
	}
	campaign, err := s.campaigns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	deliverables, err := s.deliverables.ListByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	return &driving.CampaignDetail{
		Campaign:     *campaign,
		Deliverables: deliverables,
		Counts:       domain.CountStatuses(deliverables),
	}, nil
}

// List returns all campaigns.
func (s *CampaignService) List(ctx context.Context) ([]domain.Campaign, error) {
	if s.campaigns == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.campaigns.List(ctx)
}

// Deliverable retrieves a deliverable by ID.
func (s *CampaignService) Deliverable(ctx context.Context, id string) (*domain.Deliverable, error) {
	if s.deliverables == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.deliverables.Get(ctx, id)
}

// History returns a deliverable's prompt mutation records.
func (s *CampaignService) History(ctx context.Context, deliverableID string) ([]domain.AuditRecord, error) {
	if s.audit == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.audit.ListByDeliverable(ctx, deliverableID)
}

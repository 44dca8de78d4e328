package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure CampaignStore implements the interface.
var _ driven.CampaignStore = (*CampaignStore)(nil)

// CampaignStore is an in-memory implementation of driven.CampaignStore.
type CampaignStore struct {
	mu        sync.RWMutex
	campaigns map[string]domain.Campaign
}

// NewCampaignStore creates a new in-memory campaign store.
func NewCampaignStore() *CampaignStore {
	return &CampaignStore{
		campaigns: make(map[string]domain.Campaign),
	}
}

// Save stores or updates a campaign.
func (s *CampaignStore) Save(_ context.Context, campaign domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[campaign.ID] = campaign
	return nil
}

// Get retrieves a campaign by ID.
func (s *CampaignStore) Get(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	campaign, ok := s.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &campaign, nil
}

// List returns all campaigns, oldest first.
func (s *CampaignStore) List(_ context.Context) ([]domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		result = append(result, campaign)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

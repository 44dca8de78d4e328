package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure DeliverableStore implements the interface.
var _ driven.DeliverableStore = (*DeliverableStore)(nil)

// DeliverableStore is an in-memory implementation of driven.DeliverableStore.
// Records are copied on the way in and out.
type DeliverableStore struct {
	mu           sync.RWMutex
	deliverables map[string]domain.Deliverable
	order        []string
}

// NewDeliverableStore creates a new in-memory deliverable store.
func NewDeliverableStore() *DeliverableStore {
	return &DeliverableStore{
		deliverables: make(map[string]domain.Deliverable),
	}
}

// Save stores or updates a deliverable.
func (s *DeliverableStore) Save(_ context.Context, deliverable domain.Deliverable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.deliverables[deliverable.ID]; !exists {
		s.order = append(s.order, deliverable.ID)
	}
	s.deliverables[deliverable.ID] = deliverable.Clone()
	return nil
}

// Get retrieves a deliverable by ID.
func (s *DeliverableStore) Get(_ context.Context, id string) (*domain.Deliverable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deliverable, ok := s.deliverables[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := deliverable.Clone()
	return &clone, nil
}

// ListByCampaign returns a campaign's deliverables in insertion order.
func (s *DeliverableStore) ListByCampaign(_ context.Context, campaignID string) ([]domain.Deliverable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Deliverable
	for _, id := range s.order {
		if d := s.deliverables[id]; d.CampaignID == campaignID {
			result = append(result, d.Clone())
		}
	}
	return result, nil
}

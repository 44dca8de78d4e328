package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is an in-memory implementation of driven.ProfileStore.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.BrandProfile
}

// NewProfileStore creates a new in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.BrandProfile),
	}
}

// Save replaces the brand's snapshot.
func (s *ProfileStore) Save(_ context.Context, profile domain.BrandProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.BrandID] = profile
	return nil
}

// Get retrieves a brand's snapshot.
func (s *ProfileStore) Get(_ context.Context, brandID string) (*domain.BrandProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[brandID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &profile, nil
}

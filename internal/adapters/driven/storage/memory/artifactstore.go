package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is an in-memory implementation of driven.ArtifactStore.
type ArtifactStore struct {
	mu        sync.RWMutex
	artifacts map[string]domain.Artifact
	order     []string
}

// NewArtifactStore creates a new in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		artifacts: make(map[string]domain.Artifact),
	}
}

// Save stores or updates an artifact.
func (s *ArtifactStore) Save(_ context.Context, artifact domain.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.artifacts[artifact.ID]; !exists {
		s.order = append(s.order, artifact.ID)
	}
	s.artifacts[artifact.ID] = artifact.Clone()
	return nil
}

// Get retrieves an artifact by ID.
func (s *ArtifactStore) Get(_ context.Context, id string) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	artifact, ok := s.artifacts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := artifact.Clone()
	return &clone, nil
}

// ListByBrand returns every artifact for a brand in insertion order.
func (s *ArtifactStore) ListByBrand(_ context.Context, brandID string) ([]domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Artifact
	for _, id := range s.order {
		if a := s.artifacts[id]; a.BrandID == brandID {
			result = append(result, a.Clone())
		}
	}
	return result, nil
}

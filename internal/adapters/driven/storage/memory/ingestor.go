package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure Ingestor implements the interface.
var _ driven.MemoryIngestor = (*Ingestor)(nil)

// Ingestor is an in-memory long-term memory. It records which artifacts
// each partition holds and enforces the campaign-only write rule.
type Ingestor struct {
	mu         sync.RWMutex
	partitions map[string][]string
}

// NewIngestor creates an empty in-memory ingestor.
func NewIngestor() *Ingestor {
	return &Ingestor{
		partitions: make(map[string][]string),
	}
}

// Ingest adds the artifact to each partition.
func (i *Ingestor) Ingest(_ context.Context, artifact domain.Artifact, _ string, partitions map[string]string) error {
	for _, name := range partitions {
		if err := domain.AssertWritePartition(name); err != nil {
			return err
		}
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, name := range partitions {
		if !slices.Contains(i.partitions[name], artifact.ID) {
			i.partitions[name] = append(i.partitions[name], artifact.ID)
		}
	}
	return nil
}

// Remove retracts the artifact from each partition.
func (i *Ingestor) Remove(_ context.Context, artifact domain.Artifact, _ string, partitions map[string]string) error {
	for _, name := range partitions {
		if err := domain.AssertWritePartition(name); err != nil {
			return err
		}
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, name := range partitions {
		i.partitions[name] = slices.DeleteFunc(i.partitions[name], func(id string) bool {
			return id == artifact.ID
		})
	}
	return nil
}

// Contents returns the artifact ids held by a partition.
func (i *Ingestor) Contents(partition string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.partitions[partition])
}

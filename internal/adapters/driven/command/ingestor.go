package command

import (
	"context"
	"fmt"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure Ingestor implements the interface.
var _ driven.MemoryIngestor = (*Ingestor)(nil)

const (
	actionIngest = "ingest"
	actionRemove = "remove"
)

type ingestRequest struct {
	Action       string            `json:"action"`
	ArtifactID   string            `json:"artifact_id"`
	ArtifactPath string            `json:"artifact_path"`
	ArtifactType string            `json:"artifact_type"`
	BrandID      string            `json:"brand_id"`
	ClientID     string            `json:"client_id"`
	Partitions   map[string]string `json:"partitions"`
}

type ingestResponse struct {
	Error string `json:"error"`
}

// Ingestor runs an external ingestion script that writes to campaign partitions.
type Ingestor struct {
	runner *Runner
}

// NewIngestor creates an ingestor.
func NewIngestor(runner *Runner) *Ingestor {
	return &Ingestor{runner: runner}
}

// Ingest adds the artifact to brand memory.
func (i *Ingestor) Ingest(ctx context.Context, artifact domain.Artifact, brandID string, partitions map[string]string) error {
	return i.run(ctx, actionIngest, artifact, brandID, partitions)
}

// Remove retracts the artifact from brand memory.
func (i *Ingestor) Remove(ctx context.Context, artifact domain.Artifact, brandID string, partitions map[string]string) error {
	return i.run(ctx, actionRemove, artifact, brandID, partitions)
}

func (i *Ingestor) run(ctx context.Context, action string, artifact domain.Artifact, brandID string, partitions map[string]string) error {
	for _, name := range partitions {
		if err := domain.AssertWritePartition(name); err != nil {
			return err
		}
	}

	var resp ingestResponse
	err := i.runner.Run(ctx, ingestRequest{
		Action:       action,
		ArtifactID:   artifact.ID,
		ArtifactPath: artifact.Path,
		ArtifactType: string(artifact.Type),
		BrandID:      brandID,
		ClientID:     domain.ClientID(brandID),
		Partitions:   partitions,
	}, &resp)
	if err != nil {
		return fmt.Errorf("%s artifact %s: %w", action, artifact.ID, err)
	}
	if resp.Error != "" {
		return fmt.Errorf("%s artifact %s: %s", action, artifact.ID, resp.Error)
	}
	return nil
}

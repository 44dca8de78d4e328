package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.Generator = (*Generator)(nil)

type generateRequest struct {
	BrandID         string   `json:"brand_id"`
	CampaignID      string   `json:"campaign_id"`
	DeliverableID   string   `json:"deliverable_id"`
	Prompt          string   `json:"prompt"`
	Model           string   `json:"ai_model"`
	NegativeTerms   []string `json:"negative_prompts,omitempty"`
	NegativePrompt  string   `json:"negative_prompt,omitempty"`
	ReferenceImages []string `json:"reference_images,omitempty"`
	OutputDir       string   `json:"output_dir,omitempty"`
}

type generateResponse struct {
	Path  string `json:"path"`
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Generator runs an external generation script per request.
type Generator struct {
	runner    *Runner
	outputDir string
}

// NewGenerator creates a generator. outputDir is passed to the script as a hint.
func NewGenerator(runner *Runner, outputDir string) *Generator {
	return &Generator{runner: runner, outputDir: outputDir}
}

// Generate asks the script for one artifact and checks the file it reports.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Artifact, error) {
	var resp generateResponse
	err := g.runner.Run(ctx, generateRequest{
		BrandID:         req.BrandID,
		CampaignID:      req.CampaignID,
		DeliverableID:   req.DeliverableID,
		Prompt:          req.Prompt,
		Model:           req.Model,
		NegativeTerms:   req.NegativeTerms,
		NegativePrompt:  req.NegativePrompt,
		ReferenceImages: req.ReferenceImages,
		OutputDir:       g.outputDir,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrGenerationFailed, resp.Error)
	}
	if resp.Path == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, domain.ErrNoArtifact)
	}

	info, err := os.Stat(resp.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	return &domain.Artifact{
		Type: artifactType(resp.Type, resp.Path),
		Name: filepath.Base(resp.Path),
		Path: resp.Path,
		Size: info.Size(),
	}, nil
}

// artifactType trusts the reported type, then falls back to the extension.
func artifactType(reported, path string) domain.ArtifactType {
	switch domain.ArtifactType(strings.ToLower(reported)) {
	case domain.ArtifactTypeImage:
		return domain.ArtifactTypeImage
	case domain.ArtifactTypeVideo:
		return domain.ArtifactTypeVideo
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".webm":
		return domain.ArtifactTypeVideo
	default:
		return domain.ArtifactTypeImage
	}
}

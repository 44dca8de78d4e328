package mcp

import (
	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Campaigns reads campaign and deliverable records.
	Campaigns driving.CampaignService

	// Orchestrators runs campaigns and applies review decisions.
	Orchestrators driving.OrchestratorFactory

	// Promotion checks brand drift.
	Promotion driving.PromotionService

	// Taxonomy lists rejection categories.
	Taxonomy driving.TaxonomyService

	// Prompts previews prompt rewrites.
	Prompts driving.PromptService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Orchestrators == nil {
		return ErrMissingOrchestrators
	}
	if p.Campaigns == nil {
		return ErrMissingCampaignService
	}
	// Promotion, Taxonomy and Prompts are optional
	return nil
}

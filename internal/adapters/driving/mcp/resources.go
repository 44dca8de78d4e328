package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for brandloop resources.
	uriScheme = "brandloop://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the rejection catalog.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "taxonomy",
		Name:        "taxonomy",
		Description: "Rejection categories reviewers can cite, with their prompt guidance",
		MIMEType:    "application/json",
	}, s.handleTaxonomyResource)

	// Static resource for listing campaigns.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "campaigns",
		Name:        "campaigns",
		Description: "All campaigns with their status",
		MIMEType:    "application/json",
	}, s.handleCampaignsResource)

	// Template for a deliverable's prompt history.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "deliverables/{deliverableId}/history",
		Name:        "deliverable-history",
		Description: "Prompt rewrites recorded for a deliverable",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleTaxonomyResource returns the rejection category catalog.
func (s *Server) handleTaxonomyResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	categories := domain.DefaultRejectionCategories()
	if s.ports.Taxonomy != nil {
		categories = s.ports.Taxonomy.List()
	}
	return jsonResource(req.Params.URI, categories)
}

// handleCampaignsResource returns all campaigns.
func (s *Server) handleCampaignsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	campaigns, err := s.ports.Campaigns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}

	type campaignInfo struct {
		ID       string `json:"id"`
		BrandID  string `json:"brand_id"`
		Name     string `json:"name"`
		Status   string `json:"status"`
		Approved int    `json:"approved"`
		Failed   int    `json:"failed"`
	}

	infos := make([]campaignInfo, len(campaigns))
	for i, c := range campaigns {
		infos[i] = campaignInfo{
			ID:       c.ID,
			BrandID:  c.BrandID,
			Name:     c.Name,
			Status:   string(c.Status),
			Approved: c.ApprovedCount,
			Failed:   c.FailedCount,
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleHistoryResource returns a deliverable's audit records.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract deliverableId from URI: brandloop://deliverables/{deliverableId}/history
	deliverableID := extractDeliverableID(req.Params.URI)
	if deliverableID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if _, err := s.ports.Campaigns.Deliverable(ctx, deliverableID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting deliverable: %w", err)
	}

	records, err := s.ports.Campaigns.History(ctx, deliverableID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	if records == nil {
		records = []domain.AuditRecord{}
	}
	return jsonResource(req.Params.URI, records)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDeliverableID extracts the deliverable ID from a history URI.
func extractDeliverableID(uri string) string {
	prefix := uriScheme + "deliverables/"
	suffix := "/history"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
}

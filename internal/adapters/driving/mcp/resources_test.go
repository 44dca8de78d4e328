package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

func TestExtractDeliverableID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid history URI",
			uri:      "brandloop://deliverables/del-123/history",
			expected: "del-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://deliverables/del-123/history",
			expected: "",
		},
		{
			name:     "missing history suffix",
			uri:      "brandloop://deliverables/del-123",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDeliverableID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleTaxonomyResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil taxonomy service returns built-in catalog", func(t *testing.T) {
		server, err := newTestServer(&Ports{})
		require.NoError(t, err)

		result, err := server.handleTaxonomyResource(ctx, makeReadResourceRequest("brandloop://taxonomy"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		var categories []domain.RejectionCategory
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &categories))
		assert.Len(t, categories, len(domain.DefaultRejectionCategories()))
	})

	t.Run("uses taxonomy service when set", func(t *testing.T) {
		taxonomy := &mockTaxonomyService{
			categories: []domain.RejectionCategory{{ID: "too_busy", Label: "Too Busy"}},
		}
		server, err := newTestServer(&Ports{Taxonomy: taxonomy})
		require.NoError(t, err)

		result, err := server.handleTaxonomyResource(ctx, makeReadResourceRequest("brandloop://taxonomy"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "too_busy")
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})
}

func TestServer_handleCampaignsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns campaigns", func(t *testing.T) {
		campaigns := &mockCampaignService{
			campaigns: []domain.Campaign{
				{ID: "camp-1", BrandID: "brand-a", Name: "Spring", Status: domain.CampaignStatusCompleted, ApprovedCount: 4},
			},
		}
		server, err := newTestServer(&Ports{Campaigns: campaigns})
		require.NoError(t, err)

		result, err := server.handleCampaignsResource(ctx, makeReadResourceRequest("brandloop://campaigns"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "camp-1")
		assert.Contains(t, result.Contents[0].Text, "Spring")
		assert.Contains(t, result.Contents[0].Text, `"approved": 4`)
	})

	t.Run("empty list renders as array", func(t *testing.T) {
		server, err := newTestServer(&Ports{})
		require.NoError(t, err)

		result, err := server.handleCampaignsResource(ctx, makeReadResourceRequest("brandloop://campaigns"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		campaigns := &mockCampaignService{err: errors.New("database error")}
		server, err := newTestServer(&Ports{Campaigns: campaigns})
		require.NoError(t, err)

		_, err = server.handleCampaignsResource(ctx, makeReadResourceRequest("brandloop://campaigns"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})
}

func TestServer_handleHistoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns audit records", func(t *testing.T) {
		campaigns := &mockCampaignService{
			deliverable: &domain.Deliverable{ID: "del-1"},
			history: []domain.AuditRecord{
				{ID: "a-1", DeliverableID: "del-1", Attempt: 1, PromptBefore: "dress", PromptAfter: "dress, bright"},
			},
		}
		server, err := newTestServer(&Ports{Campaigns: campaigns})
		require.NoError(t, err)

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("brandloop://deliverables/del-1/history"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "dress, bright")
	})

	t.Run("no records renders as empty array", func(t *testing.T) {
		campaigns := &mockCampaignService{deliverable: &domain.Deliverable{ID: "del-1"}}
		server, err := newTestServer(&Ports{Campaigns: campaigns})
		require.NoError(t, err)

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("brandloop://deliverables/del-1/history"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("unknown deliverable is not found", func(t *testing.T) {
		campaigns := &mockCampaignService{err: domain.ErrNotFound}
		server, err := newTestServer(&Ports{Campaigns: campaigns})
		require.NoError(t, err)

		_, err = server.handleHistoryResource(ctx, makeReadResourceRequest("brandloop://deliverables/nope/history"))

		require.Error(t, err)
	})

	t.Run("invalid URI is not found", func(t *testing.T) {
		server, err := newTestServer(&Ports{})
		require.NoError(t, err)

		_, err = server.handleHistoryResource(ctx, makeReadResourceRequest("brandloop://invalid/uri"))

		require.Error(t, err)
	})
}

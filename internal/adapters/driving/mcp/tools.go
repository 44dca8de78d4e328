package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

// CampaignInput identifies a campaign.
type CampaignInput struct {
	CampaignID string `json:"campaign_id" jsonschema:"the campaign to act on"`
}

// RunCampaignOutput is the output schema for the run_campaign tool.
type RunCampaignOutput struct {
	CampaignID  string `json:"campaign_id"`
	Status      string `json:"status"`
	Total       int    `json:"total"`
	Approved    int    `json:"approved"`
	Failed      int    `json:"failed"`
	HITLPending int    `json:"hitl_pending"`
	Iterations  int    `json:"iterations"`
	Promoted    bool   `json:"promoted"`
}

// HITLDecisionInput is the input schema for the hitl_decision tool.
type HITLDecisionInput struct {
	DeliverableID    string   `json:"deliverable_id" jsonschema:"the deliverable awaiting review"`
	Decision         string   `json:"decision" jsonschema:"approve, reject or changes"`
	RejectionReasons []string `json:"rejection_reasons,omitempty" jsonschema:"rejection category ids; required to retry a rejection"`
	Note             string   `json:"note,omitempty" jsonschema:"free-text reviewer note"`
}

// HITLDecisionOutput is the output schema for the hitl_decision tool.
type HITLDecisionOutput struct {
	DeliverableID string `json:"deliverable_id"`
	Status        string `json:"status"`
	Requeued      bool   `json:"requeued"`
	Promoted      bool   `json:"promoted"`
}

// CheckDriftInput is the input schema for the check_drift tool.
type CheckDriftInput struct {
	BrandID    string  `json:"brand_id" jsonschema:"the brand to check"`
	FusedScore float64 `json:"fused_score" jsonschema:"the current fused score"`
}

// CheckDriftOutput is the output schema for the check_drift tool.
type CheckDriftOutput struct {
	BrandID  string  `json:"brand_id"`
	Detected bool    `json:"drift_detected"`
	Baseline float64 `json:"baseline"`
	Current  float64 `json:"current"`
	Amount   float64 `json:"drift_amount"`
	Reason   string  `json:"reason,omitempty"`
}

// MutatePromptInput is the input schema for the mutate_prompt tool.
type MutatePromptInput struct {
	Prompt    string   `json:"prompt" jsonschema:"the prompt to rewrite"`
	Reasons   []string `json:"reasons,omitempty" jsonschema:"rejection category ids"`
	Model     string   `json:"ai_model,omitempty" jsonschema:"target model, e.g. nano, veo or sora (default nano)"`
	Negatives []string `json:"negatives,omitempty" jsonschema:"extra terms to avoid"`
}

// MutatePromptOutput is the output schema for the mutate_prompt tool.
type MutatePromptOutput struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
}

// CampaignStatusOutput is the output schema for the campaign_status tool.
type CampaignStatusOutput struct {
	CampaignID   string              `json:"campaign_id"`
	BrandID      string              `json:"brand_id"`
	Status       string              `json:"status"`
	Total        int                 `json:"total"`
	Approved     int                 `json:"approved"`
	Failed       int                 `json:"failed"`
	HITLPending  int                 `json:"hitl_pending"`
	Deliverables []DeliverableOutput `json:"deliverables"`
}

// DeliverableOutput summarises one deliverable.
type DeliverableOutput struct {
	ID            string  `json:"id"`
	Description   string  `json:"description,omitempty"`
	Model         string  `json:"ai_model"`
	Status        string  `json:"status"`
	RetryCount    int     `json:"retry_count"`
	CurrentPrompt string  `json:"current_prompt"`
	FusedScore    float64 `json:"fused_score,omitempty"`
	LastError     string  `json:"last_error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_campaign",
		Description: "Generate, score and retry a campaign's deliverables until each is approved, failed or awaiting review",
	}, s.handleRunCampaign)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "hitl_decision",
		Description: "Approve or reject a deliverable awaiting human review",
	}, s.handleHITLDecision)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "campaign_status",
		Description: "Show a campaign's status and deliverables",
	}, s.handleCampaignStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_drift",
		Description: "Compare a fused score with the brand's baseline",
	}, s.handleCheckDrift)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "mutate_prompt",
		Description: "Preview how a prompt is rewritten for rejection reasons",
	}, s.handleMutatePrompt)
}

// handleRunCampaign runs a campaign's feedback loop.
func (s *Server) handleRunCampaign(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CampaignInput,
) (*mcp.CallToolResult, RunCampaignOutput, error) {
	if input.CampaignID == "" {
		return nil, RunCampaignOutput{}, fmt.Errorf("%w: campaign_id is required", domain.ErrInvalidInput)
	}

	summary, err := s.ports.Orchestrators.ForCampaign(input.CampaignID).Run(ctx)
	if err != nil {
		return nil, RunCampaignOutput{}, err
	}

	return nil, RunCampaignOutput{
		CampaignID:  summary.CampaignID,
		Status:      string(summary.Status),
		Total:       summary.Total,
		Approved:    summary.Approved,
		Failed:      summary.Failed,
		HITLPending: summary.HITL,
		Iterations:  summary.Iterations,
		Promoted:    summary.Promoted,
	}, nil
}

// handleHITLDecision applies a review decision.
func (s *Server) handleHITLDecision(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HITLDecisionInput,
) (*mcp.CallToolResult, HITLDecisionOutput, error) {
	decision, err := domain.ParseReviewDecision(input.Decision)
	if err != nil {
		return nil, HITLDecisionOutput{}, err
	}

	d, err := s.ports.Campaigns.Deliverable(ctx, input.DeliverableID)
	if err != nil {
		return nil, HITLDecisionOutput{}, fmt.Errorf("deliverable %s: %w", input.DeliverableID, err)
	}

	outcome, err := s.ports.Orchestrators.ForCampaign(d.CampaignID).HandleDecision(ctx, domain.HITLDecision{
		DeliverableID:    d.ID,
		Decision:         decision,
		RejectionReasons: input.RejectionReasons,
		Note:             input.Note,
	})
	if err != nil {
		return nil, HITLDecisionOutput{}, err
	}

	return nil, HITLDecisionOutput{
		DeliverableID: outcome.DeliverableID,
		Status:        string(outcome.Status),
		Requeued:      outcome.Requeued,
		Promoted:      outcome.Promoted,
	}, nil
}

// handleCampaignStatus reports a campaign's progress.
func (s *Server) handleCampaignStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CampaignInput,
) (*mcp.CallToolResult, CampaignStatusOutput, error) {
	detail, err := s.ports.Campaigns.Get(ctx, input.CampaignID)
	if err != nil {
		return nil, CampaignStatusOutput{}, fmt.Errorf("campaign %s: %w", input.CampaignID, err)
	}

	output := CampaignStatusOutput{
		CampaignID:   detail.Campaign.ID,
		BrandID:      detail.Campaign.BrandID,
		Status:       string(detail.Campaign.Status),
		Total:        detail.Counts.Total,
		Approved:     detail.Counts.Approved,
		Failed:       detail.Counts.Failed,
		HITLPending:  detail.Counts.HITL,
		Deliverables: make([]DeliverableOutput, len(detail.Deliverables)),
	}
	for i := range detail.Deliverables {
		d := &detail.Deliverables[i]
		output.Deliverables[i] = DeliverableOutput{
			ID:            d.ID,
			Description:   d.Description,
			Model:         d.Model,
			Status:        string(d.Status),
			RetryCount:    d.RetryCount,
			CurrentPrompt: d.CurrentPrompt,
			LastError:     d.LastError,
		}
		if d.Score != nil {
			output.Deliverables[i].FusedScore = d.Score.Fused
		}
	}

	return nil, output, nil
}

// handleCheckDrift compares a score with the brand baseline.
func (s *Server) handleCheckDrift(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CheckDriftInput,
) (*mcp.CallToolResult, CheckDriftOutput, error) {
	if s.ports.Promotion == nil {
		return nil, CheckDriftOutput{}, ErrServiceUnavailable
	}

	report := s.ports.Promotion.CheckDrift(ctx, input.BrandID, input.FusedScore)

	return nil, CheckDriftOutput{
		BrandID:  report.BrandID,
		Detected: report.Detected,
		Baseline: report.Baseline,
		Current:  report.Current,
		Amount:   report.Amount,
		Reason:   string(report.Reason),
	}, nil
}

// handleMutatePrompt previews a prompt rewrite.
func (s *Server) handleMutatePrompt(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MutatePromptInput,
) (*mcp.CallToolResult, MutatePromptOutput, error) {
	if s.ports.Prompts == nil {
		return nil, MutatePromptOutput{}, ErrServiceUnavailable
	}

	model := input.Model
	if model == "" {
		model = "nano"
	}
	out := s.ports.Prompts.Mutate(input.Prompt, input.Reasons, model, input.Negatives)

	return nil, MutatePromptOutput{
		Prompt:         out.Prompt,
		NegativePrompt: out.NegativePrompt,
	}, nil
}

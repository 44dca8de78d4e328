package mcp

import (
	"context"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
)

// mockCampaignService is a mock implementation of driving.CampaignService.
type mockCampaignService struct {
	detail      *driving.CampaignDetail
	campaigns   []domain.Campaign
	deliverable *domain.Deliverable
	history     []domain.AuditRecord
	err         error
}

func (m *mockCampaignService) Import(_ context.Context, _ domain.Campaign, _ []domain.Deliverable) error {
	return m.err
}

func (m *mockCampaignService) Get(_ context.Context, _ string) (*driving.CampaignDetail, error) {
	return m.detail, m.err
}

func (m *mockCampaignService) List(_ context.Context) ([]domain.Campaign, error) {
	return m.campaigns, m.err
}

func (m *mockCampaignService) Deliverable(_ context.Context, _ string) (*domain.Deliverable, error) {
	return m.deliverable, m.err
}

func (m *mockCampaignService) History(_ context.Context, _ string) ([]domain.AuditRecord, error) {
	return m.history, m.err
}

// mockOrchestrator is a mock implementation of driving.CampaignOrchestrator.
type mockOrchestrator struct {
	campaignID string
	summary    *driving.RunSummary
	outcome    *domain.DecisionOutcome
	decisions  []domain.HITLDecision
	err        error
}

func (m *mockOrchestrator) CampaignID() string {
	return m.campaignID
}

func (m *mockOrchestrator) Run(_ context.Context) (*driving.RunSummary, error) {
	return m.summary, m.err
}

func (m *mockOrchestrator) HandleDecision(
	_ context.Context,
	decision domain.HITLDecision,
) (*domain.DecisionOutcome, error) {
	m.decisions = append(m.decisions, decision)
	return m.outcome, m.err
}

// mockOrchestratorFactory is a mock implementation of driving.OrchestratorFactory.
type mockOrchestratorFactory struct {
	orchestrator *mockOrchestrator
	requested    []string
}

func (m *mockOrchestratorFactory) ForCampaign(campaignID string) driving.CampaignOrchestrator {
	m.requested = append(m.requested, campaignID)
	if m.orchestrator == nil {
		m.orchestrator = &mockOrchestrator{}
	}
	m.orchestrator.campaignID = campaignID
	return m.orchestrator
}

// mockPromotionService is a mock implementation of driving.PromotionService.
type mockPromotionService struct {
	report domain.DriftReport
	err    error
}

func (m *mockPromotionService) Promote(
	_ context.Context,
	_ string,
	_ []domain.Deliverable,
) (*domain.BrandProfile, error) {
	return nil, m.err
}

func (m *mockPromotionService) CheckDrift(_ context.Context, brandID string, current float64) domain.DriftReport {
	report := m.report
	report.BrandID = brandID
	report.Current = current
	return report
}

func (m *mockPromotionService) Remove(_ context.Context, _, _ string) error {
	return m.err
}

// mockTaxonomyService is a mock implementation of driving.TaxonomyService.
type mockTaxonomyService struct {
	categories []domain.RejectionCategory
}

func (m *mockTaxonomyService) List() []domain.RejectionCategory {
	return m.categories
}

func (m *mockTaxonomyService) Get(id string) (domain.RejectionCategory, bool) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.RejectionCategory{}, false
}

// mockPromptService is a mock implementation of driving.PromptService.
type mockPromptService struct {
	gotPrompt  string
	gotReasons []string
	gotModel   string
}

func (m *mockPromptService) Mutate(prompt string, reasons []string, model string, _ []string) driving.MutatedPrompt {
	m.gotPrompt = prompt
	m.gotReasons = reasons
	m.gotModel = model
	return driving.MutatedPrompt{Prompt: prompt + ", mutated", NegativePrompt: "dark"}
}

func (m *mockPromptService) EnhanceForRetry(prompt string, _ int, _ string) string {
	return prompt
}

// Compile-time interface checks.
var (
	_ driving.CampaignService      = (*mockCampaignService)(nil)
	_ driving.CampaignOrchestrator = (*mockOrchestrator)(nil)
	_ driving.OrchestratorFactory  = (*mockOrchestratorFactory)(nil)
	_ driving.PromotionService     = (*mockPromotionService)(nil)
	_ driving.TaxonomyService      = (*mockTaxonomyService)(nil)
	_ driving.PromptService        = (*mockPromptService)(nil)
)

// newTestServer builds a server with required ports filled in.
func newTestServer(ports *Ports) (*Server, error) {
	if ports.Campaigns == nil {
		ports.Campaigns = &mockCampaignService{}
	}
	if ports.Orchestrators == nil {
		ports.Orchestrators = &mockOrchestratorFactory{}
	}
	return NewServer(ports)
}

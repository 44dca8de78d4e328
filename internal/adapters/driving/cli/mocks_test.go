package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
)

type mockCampaignService struct {
	imported     *domain.Campaign
	deliverables []domain.Deliverable
	detail       *driving.CampaignDetail
	campaigns    []domain.Campaign
	deliverable  *domain.Deliverable
	history      []domain.AuditRecord
	err          error
}

func (m *mockCampaignService) Import(_ context.Context, c domain.Campaign, ds []domain.Deliverable) error {
	m.imported = &c
	m.deliverables = ds
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

type mockOrchestrator struct {
	summary   *driving.RunSummary
	outcome   *domain.DecisionOutcome
	decisions []domain.HITLDecision
	err       error
}

func (m *mockOrchestrator) CampaignID() string { return "" }

func (m *mockOrchestrator) Run(_ context.Context) (*driving.RunSummary, error) {
	return m.summary, m.err
}

func (m *mockOrchestrator) HandleDecision(_ context.Context, d domain.HITLDecision) (*domain.DecisionOutcome, error) {
	m.decisions = append(m.decisions, d)
	return m.outcome, m.err
}

type mockOrchestratorFactory struct {
	orchestrator *mockOrchestrator
	requested    []string
}

func (m *mockOrchestratorFactory) ForCampaign(campaignID string) driving.CampaignOrchestrator {
	m.requested = append(m.requested, campaignID)
	return m.orchestrator
}

type mockPromotionService struct {
	report       domain.DriftReport
	removedBrand string
	removedID    string
	err          error
}

func (m *mockPromotionService) Promote(_ context.Context, _ string, _ []domain.Deliverable) (*domain.BrandProfile, error) {
	return nil, m.err
}

func (m *mockPromotionService) CheckDrift(_ context.Context, _ string, _ float64) domain.DriftReport {
	return m.report
}

func (m *mockPromotionService) Remove(_ context.Context, artifactID, brandID string) error {
	m.removedID = artifactID
	m.removedBrand = brandID
	return m.err
}

type mockTaxonomyService struct {
	categories []domain.RejectionCategory
}

func (m *mockTaxonomyService) List() []domain.RejectionCategory { return m.categories }

func (m *mockTaxonomyService) Get(string) (domain.RejectionCategory, bool) {
	return domain.RejectionCategory{}, false
}

type mockPromptService struct {
	gotReasons   []string
	gotNegatives []string
	gotModel     string
	gotRetry     int
}

func (m *mockPromptService) Mutate(prompt string, reasons []string, model string, negatives []string) driving.MutatedPrompt {
	m.gotReasons = reasons
	m.gotNegatives = negatives
	m.gotModel = model
	return driving.MutatedPrompt{Prompt: prompt + ", bright", NegativePrompt: "dark"}
}

func (m *mockPromptService) EnhanceForRetry(prompt string, retry int, model string) string {
	m.gotRetry = retry
	m.gotModel = model
	return prompt + ", sharp"
}

type mockSettingsService struct {
	settings  domain.AppSettings
	pipeline  *domain.PipelineSettings
	geminiKey string
	err       error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) SetPipeline(p domain.PipelineSettings) error {
	m.pipeline = &p
	return m.err
}

func (m *mockSettingsService) SetGeminiAPIKey(key string) error {
	m.geminiKey = key
	return m.err
}

var (
	_ driving.CampaignService      = (*mockCampaignService)(nil)
	_ driving.CampaignOrchestrator = (*mockOrchestrator)(nil)
	_ driving.OrchestratorFactory  = (*mockOrchestratorFactory)(nil)
	_ driving.PromotionService     = (*mockPromotionService)(nil)
	_ driving.TaxonomyService      = (*mockTaxonomyService)(nil)
	_ driving.PromptService        = (*mockPromptService)(nil)
	_ driving.SettingsService      = (*mockSettingsService)(nil)
)

// runCommand executes the root command with services installed and returns its output.
func runCommand(t *testing.T, s *Services, args ...string) (string, error) {
	t.Helper()

	SetServices(s)
	bootstrap = nil
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default, since cobra keeps values between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace([]string{})
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

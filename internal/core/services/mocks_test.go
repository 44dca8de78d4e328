package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brandloop/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
)

var errMock = errors.New("mock failure")

// mockGenerator writes a small file per call so promotion can stat it.
type mockGenerator struct {
	mu      sync.Mutex
	dir     string
	calls   []domain.GenerationRequest
	failFor map[string]error
	panicOn string
}

func newMockGenerator(t *testing.T) *mockGenerator {
	t.Helper()
	return &mockGenerator{dir: t.TempDir(), failFor: make(map[string]error)}
}

func (m *mockGenerator) Generate(_ context.Context, req domain.GenerationRequest) (*domain.Artifact, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	n := len(m.calls)
	err := m.failFor[req.DeliverableID]
	m.mu.Unlock()

	if req.DeliverableID == m.panicOn {
		panic("generator exploded")
	}
	if err != nil {
		return nil, err
	}

	path := filepath.Join(m.dir, fmt.Sprintf("%s-%d.png", req.DeliverableID, n))
	if err := os.WriteFile(path, []byte("png"), 0o600); err != nil {
		return nil, err
	}
	return &domain.Artifact{
		Type: domain.ArtifactTypeImage,
		Name: filepath.Base(path),
		Path: path,
		Size: 3,
	}, nil
}

func (m *mockGenerator) callsFor(deliverableID string) []domain.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.GenerationRequest
	for _, c := range m.calls {
		if c.DeliverableID == deliverableID {
			out = append(out, c)
		}
	}
	return out
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockScorer returns scripted scores per deliverable, then the fallback.
type mockScorer struct {
	mu       sync.Mutex
	script   map[string][]domain.Scores
	fallback domain.Scores
	err      error
	calls    int
}

func newMockScorer(fallback domain.Scores) *mockScorer {
	return &mockScorer{script: make(map[string][]domain.Scores), fallback: fallback}
}

func (m *mockScorer) Score(_ context.Context, artifact domain.Artifact, _ string) (domain.Scores, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return domain.Scores{}, m.err
	}
	if queue := m.script[artifact.DeliverableID]; len(queue) > 0 {
		m.script[artifact.DeliverableID] = queue[1:]
		return queue[0], nil
	}
	return m.fallback, nil
}

// mockPromoter counts promotions.
type mockPromoter struct {
	mu       sync.Mutex
	calls    int
	approved []domain.Deliverable
	err      error
}

func (m *mockPromoter) Promote(_ context.Context, brandID string, approved []domain.Deliverable) (*domain.BrandProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.approved = approved
	if m.err != nil {
		return nil, m.err
	}
	return &domain.BrandProfile{BrandID: brandID}, nil
}

func (m *mockPromoter) CheckDrift(_ context.Context, brandID string, current float64) domain.DriftReport {
	return domain.DriftReport{BrandID: brandID, Current: current}
}

func (m *mockPromoter) Remove(_ context.Context, _, _ string) error {
	return nil
}

var _ driving.PromotionService = (*mockPromoter)(nil)

var (
	passScores   = domain.Scores{CLIP: 0.95, E5: 0.95, Cohere: 0.95, Fused: 0.95}
	reviewScores = domain.Scores{CLIP: 0.8, E5: 0.8, Cohere: 0.8, Fused: 0.8}
	failScores   = domain.Scores{CLIP: 0.5, E5: 0.9, Cohere: 0.9, Fused: 0.3}
)

const testCampaignID = "c-1"

// harness wires an orchestrator over in-memory stores.
type harness struct {
	t            *testing.T
	campaigns    *memory.CampaignStore
	deliverables *memory.DeliverableStore
	artifacts    *memory.ArtifactStore
	audit        *memory.AuditLog
	generator    *mockGenerator
	scorer       *mockScorer
	promoter     *mockPromoter
	settings     domain.PipelineSettings
}

func newHarness(t *testing.T, maxRetries int, scores domain.Scores, deliverableIDs ...string) *harness {
	t.Helper()
	h := &harness{
		t:            t,
		campaigns:    memory.NewCampaignStore(),
		deliverables: memory.NewDeliverableStore(),
		artifacts:    memory.NewArtifactStore(),
		audit:        memory.NewAuditLog(),
		generator:    newMockGenerator(t),
		scorer:       newMockScorer(scores),
		promoter:     &mockPromoter{},
		settings:     domain.PipelineSettings{MaxRetries: maxRetries, BatchConcurrency: 1},
	}

	ctx := context.Background()
	campaign := domain.NewCampaign(testCampaignID, "jenni_kayne", "Spring")
	campaign.MaxRetries = maxRetries
	require.NoError(t, h.campaigns.Save(ctx, campaign))
	for _, id := range deliverableIDs {
		d := domain.NewDeliverable(id, testCampaignID, "jenni_kayne", ModelNano, "Model in linen dress")
		require.NoError(t, h.deliverables.Save(ctx, d))
	}
	return h
}

func (h *harness) orchestrator() *Orchestrator {
	return NewOrchestrator(
		testCampaignID,
		h.campaigns,
		h.deliverables,
		h.artifacts,
		h.audit,
		h.generator,
		h.scorer,
		h.promoter,
		NewPromptMutator(nil),
		NewQualityGate(domain.GateSettings{}),
		h.settings,
	)
}

func (h *harness) deliverable(id string) *domain.Deliverable {
	h.t.Helper()
	d, err := h.deliverables.Get(context.Background(), id)
	require.NoError(h.t, err)
	return d
}

func (h *harness) campaign() *domain.Campaign {
	h.t.Helper()
	c, err := h.campaigns.Get(context.Background(), testCampaignID)
	require.NoError(h.t, err)
	return c
}

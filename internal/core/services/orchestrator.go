package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
	"github.com/custodia-labs/brandloop/internal/logger"
)

// Ensure Orchestrator implements the interface.
var _ driving.CampaignOrchestrator = (*Orchestrator)(nil)

// Ensure OrchestratorFactory implements the interface.
var _ driving.OrchestratorFactory = (*OrchestratorFactory)(nil)

// Orchestrator drives one campaign through generate, score and route.
// Run and HandleDecision are serialized on an instance; the campaign memory
// and retry batch are only touched while holding mu.
type Orchestrator struct {
	campaignID   string
	campaigns    driven.CampaignStore
	deliverables driven.DeliverableStore
	artifacts    driven.ArtifactStore
	audit        driven.AuditLog
	generator    driven.Generator
	scorer       driven.Scorer
	promoter     driving.PromotionService
	mutator      *PromptMutator
	gate         *QualityGate
	settings     domain.PipelineSettings

	mu         sync.Mutex
	memory     *CampaignMemory
	campaign   *domain.Campaign
	items      []domain.Deliverable
	retryBatch []string
}

// NewOrchestrator creates an orchestrator for one campaign with empty memory.
func NewOrchestrator(
	campaignID string,
	campaigns driven.CampaignStore,
	deliverables driven.DeliverableStore,
	artifacts driven.ArtifactStore,
	audit driven.AuditLog,
	generator driven.Generator,
	scorer driven.Scorer,
	promoter driving.PromotionService,
	mutator *PromptMutator,
	gate *QualityGate,
	settings domain.PipelineSettings,
) *Orchestrator {
	if mutator == nil {
		mutator = NewPromptMutator(nil)
	}
	if gate == nil {
		gate = NewQualityGate(domain.GateSettings{})
	}
	if settings.PollInterval < 0 {
		settings.PollInterval = 0
	}
	if settings.BatchConcurrency < 1 {
		settings.BatchConcurrency = domain.DefaultBatchConcurrency
	}
	return &Orchestrator{
		campaignID:   campaignID,
		campaigns:    campaigns,
		deliverables: deliverables,
		artifacts:    artifacts,
		audit:        audit,
		generator:    generator,
		scorer:       scorer,
		promoter:     promoter,
		mutator:      mutator,
		gate:         gate,
		settings:     settings,
		memory:       NewCampaignMemory(campaignID),
	}
}

func (o *Orchestrator) logger() *zap.Logger {
	return logger.Named("orchestrator").With(zap.String("campaign", o.campaignID))
}

// CampaignID returns the campaign this instance drives.
func (o *Orchestrator) CampaignID() string {
	return o.campaignID
}

// Memory returns the campaign's short-term memory.
func (o *Orchestrator) Memory() *CampaignMemory {
	return o.memory
}

// Run generates pending deliverables, then loops scoring and routing until
// every deliverable is terminal or the iteration bound is reached.
//
// The bound is the campaign's retry budget plus two. Collaborator failures are
// recorded on the affected deliverable and never abort the run.
func (o *Orchestrator) Run(ctx context.Context) (*driving.RunSummary, error) {
	o.mu.Lock()
	locked := true
	defer func() {
		if locked {
			o.mu.Unlock()
		}
	}()

	logger.Section("Campaign " + o.campaignID)

	// 1. Load campaign and deliverables
	if err := o.load(ctx); err != nil {
		return nil, err
	}

	// 2. Mark running
	o.campaign.Status = domain.CampaignStatusRunning
	o.campaign.UpdatedAt = time.Now().UTC()
	if err := o.campaigns.Save(ctx, *o.campaign); err != nil {
		return nil, fmt.Errorf("save campaign %s: %w", o.campaignID, err)
	}

	// 3. Initial generation for pending items
	o.generateBatch(ctx, o.withStatus(domain.DeliverableStatusPending))

	// 4. Score, route, regenerate
	limiter := rate.NewLimiter(rate.Every(o.settings.PollInterval), 1)
	if o.settings.PollInterval == 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	maxIterations := o.campaign.RetryBudget() + 2
	iterations := 0

	for iterations < maxIterations && !o.allTerminal() {
		o.mu.Unlock()
		locked = false
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("run campaign %s: %w", o.campaignID, err)
		}
		o.mu.Lock()
		locked = true

		iterations++
		o.logger().Debug("iteration", zap.Int("n", iterations), zap.Int("max", maxIterations))

		o.refresh(ctx)
		for _, sd := range o.scoreBatch(ctx, o.withStatus(domain.DeliverableStatusScoring)) {
			o.route(ctx, sd.deliverable, sd.result)
		}
		if len(o.retryBatch) > 0 {
			o.flushRetryBatch(ctx)
		}
	}

	// 5. Derive campaign status
	o.refresh(ctx)
	summary, err := o.finish(ctx)
	if err != nil {
		return nil, err
	}
	summary.Iterations = iterations

	o.logger().Info("run finished",
		zap.String("status", summary.Status.String()),
		zap.Int("approved", summary.Approved),
		zap.Int("hitl", summary.HITL),
		zap.Int("failed", summary.Failed),
		zap.Int("iterations", iterations))

	return summary, nil
}

// HandleDecision applies a reviewer's decision to a deliverable.
//
// Approval completes the deliverable. A rejection with reasons and budget left
// queues a retry that is mutated and regenerated immediately. Without budget or
// reasons the deliverable fails. When the last deliverable is approved the
// campaign completes and promotion runs once.
func (o *Orchestrator) HandleDecision(ctx context.Context, decision domain.HITLDecision) (*domain.DecisionOutcome, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.load(ctx); err != nil {
		return nil, err
	}

	idx := o.indexOf(decision.DeliverableID)
	if idx < 0 {
		o.logger().Warn("decision for unknown deliverable", zap.String("deliverable", decision.DeliverableID))
		return nil, fmt.Errorf("deliverable %s in campaign %s: %w", decision.DeliverableID, o.campaignID, domain.ErrNotFound)
	}
	d := o.items[idx]
	if d.Status != domain.DeliverableStatusHITL {
		return nil, fmt.Errorf("%w: deliverable %s is %s, not awaiting review",
			domain.ErrInvalidTransition, d.ID, d.Status)
	}

	outcome := &domain.DecisionOutcome{DeliverableID: d.ID}
	log := o.logger().With(zap.String("deliverable", d.ID), zap.String("decision", decision.Decision.String()))

	switch decision.Decision {
	case domain.ReviewApprove:
		if err := d.Transition(domain.DeliverableStatusApproved); err != nil {
			return nil, err
		}
		o.save(ctx, &d)
		o.replace(d)
		log.Info("approved")

	case domain.ReviewReject, domain.ReviewChanges:
		item := o.itemMemory(ctx, &d)
		switch {
		case len(decision.RejectionReasons) == 0:
			o.fail(ctx, &d, rejectionNote("rejected without reasons", decision.Note))
		case item.RetryCount >= o.campaign.RetryBudget():
			o.fail(ctx, &d, rejectionNote(domain.ReasonBudgetExhausted, decision.Note))
		default:
			o.addToRetryBatch(&d, decision.RejectionReasons)
			outcome.Requeued = true
			log.Info("requeued", zap.Strings("reasons", decision.RejectionReasons))
		}

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDecision, decision.Decision)
	}

	// Flush now for a requeue, or once nothing else awaits review.
	if len(o.retryBatch) > 0 && (outcome.Requeued || o.count(domain.DeliverableStatusHITL) == 0) {
		o.flushRetryBatch(ctx)
	}

	if current := o.find(d.ID); current != nil {
		outcome.Status = current.Status
	}

	counts := domain.CountStatuses(o.items)
	if counts.Total > 0 && counts.Approved == counts.Total {
		promoted, err := o.complete(ctx, counts)
		if err != nil {
			return nil, err
		}
		outcome.Promoted = promoted
		return outcome, nil
	}

	o.applyCounts(counts)
	if err := o.campaigns.Save(ctx, *o.campaign); err != nil {
		return nil, fmt.Errorf("save campaign %s: %w", o.campaignID, err)
	}
	return outcome, nil
}

// load reads the campaign and its deliverables, replacing cached state.
func (o *Orchestrator) load(ctx context.Context) error {
	campaign, err := o.campaigns.Get(ctx, o.campaignID)
	if err != nil {
		return fmt.Errorf("get campaign %s: %w", o.campaignID, err)
	}
	items, err := o.deliverables.ListByCampaign(ctx, o.campaignID)
	if err != nil {
		return fmt.Errorf("list deliverables for %s: %w", o.campaignID, err)
	}
	o.campaign = campaign
	o.items = items
	return nil
}

// refresh re-reads deliverables. On failure the cached list is kept.
func (o *Orchestrator) refresh(ctx context.Context) {
	items, err := o.deliverables.ListByCampaign(ctx, o.campaignID)
	if err != nil {
		o.logger().Warn("refresh deliverables", zap.Error(err))
		return
	}
	o.items = items
}

// finish writes the derived status and counts to the campaign.
func (o *Orchestrator) finish(ctx context.Context) (*driving.RunSummary, error) {
	counts := domain.CountStatuses(o.items)
	summary := &driving.RunSummary{
		CampaignID:   o.campaignID,
		StatusCounts: counts,
	}

	if counts.Outcome() == domain.CampaignStatusCompleted {
		promoted, err := o.complete(ctx, counts)
		if err != nil {
			return nil, err
		}
		summary.Status = domain.CampaignStatusCompleted
		summary.Promoted = promoted
		return summary, nil
	}

	o.applyCounts(counts)
	summary.Status = o.campaign.Status
	if err := o.campaigns.Save(ctx, *o.campaign); err != nil {
		return nil, fmt.Errorf("save campaign %s: %w", o.campaignID, err)
	}
	return summary, nil
}

// complete marks the campaign completed and promotes approved work once.
func (o *Orchestrator) complete(ctx context.Context, counts domain.StatusCounts) (bool, error) {
	o.applyCounts(counts)

	promoted := false
	if !o.campaign.Promoted() && counts.Approved > 0 && o.promoter != nil {
		if _, err := o.promoter.Promote(ctx, o.campaign.BrandID, o.withStatus(domain.DeliverableStatusApproved)); err != nil {
			o.logger().Error("promotion failed", zap.Error(err))
		} else {
			o.campaign.PromotedAt = time.Now().UTC()
			promoted = true
		}
	}

	if err := o.campaigns.Save(ctx, *o.campaign); err != nil {
		return promoted, fmt.Errorf("save campaign %s: %w", o.campaignID, err)
	}
	return promoted, nil
}

func (o *Orchestrator) applyCounts(counts domain.StatusCounts) {
	o.campaign.Status = counts.Outcome()
	o.campaign.ApprovedCount = counts.Approved
	o.campaign.FailedCount = counts.Failed
	o.campaign.UpdatedAt = time.Now().UTC()
}

// generateBatch generates each item, up to BatchConcurrency at a time.
// Results are merged into the cache after the batch finishes.
func (o *Orchestrator) generateBatch(ctx context.Context, batch []domain.Deliverable) {
	if len(batch) == 0 {
		return
	}
	results := make([]domain.Deliverable, len(batch))

	var g errgroup.Group
	g.SetLimit(o.settings.BatchConcurrency)
	for i := range batch {
		g.Go(func() error {
			d := batch[i]
			o.generateOne(ctx, &d)
			results[i] = d
			return nil
		})
	}
	_ = g.Wait()

	for i := range results {
		o.replace(results[i])
	}
}

// generateOne runs one generation attempt. Success leaves the deliverable
// in scoring; any failure leaves it failed with LastError set.
func (o *Orchestrator) generateOne(ctx context.Context, d *domain.Deliverable) {
	log := o.logger().With(zap.String("deliverable", d.ID))

	if err := d.Transition(domain.DeliverableStatusGenerating); err != nil {
		log.Warn("skip generation", zap.Error(err))
		return
	}
	o.save(ctx, d)

	artifact, err := o.callGenerator(ctx, d)
	if err == nil {
		err = o.artifacts.Save(ctx, *artifact)
	}
	if err != nil {
		log.Warn("generation failed", zap.Error(err))
		d.LastError = fmt.Sprintf("%s: %v", domain.ReasonGenerationFailure, err)
		_ = d.Transition(domain.DeliverableStatusFailed)
		o.save(ctx, d)
		return
	}

	d.ArtifactID = artifact.ID
	d.LastError = ""
	_ = d.Transition(domain.DeliverableStatusScoring)
	o.save(ctx, d)
	log.Debug("generated", zap.String("artifact", artifact.ID), zap.String("path", artifact.Path))
}

func (o *Orchestrator) callGenerator(ctx context.Context, d *domain.Deliverable) (artifact *domain.Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifact, err = nil, fmt.Errorf("%w: panic: %v", domain.ErrGenerationFailed, r)
		}
	}()

	artifact, err = o.generator.Generate(ctx, domain.GenerationRequest{
		BrandID:         o.campaign.BrandID,
		CampaignID:      o.campaignID,
		DeliverableID:   d.ID,
		Prompt:          d.CurrentPrompt,
		Model:           d.Model,
		NegativeTerms:   slices.Clone(d.NegativeTerms),
		NegativePrompt:  d.NegativePrompt,
		ReferenceImages: slices.Clone(d.ReferenceImages),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	if artifact == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, domain.ErrNoArtifact)
	}

	artifact.ID = uuid.NewString()
	artifact.BrandID = o.campaign.BrandID
	artifact.CampaignID = o.campaignID
	artifact.DeliverableID = d.ID
	artifact.PromptUsed = d.CurrentPrompt
	artifact.Grade = nil
	artifact.CreatedAt = time.Now().UTC()
	return artifact, nil
}

type scoredDeliverable struct {
	deliverable domain.Deliverable
	result      domain.ScoreResult
}

// scoreBatch scores each item, up to BatchConcurrency at a time.
func (o *Orchestrator) scoreBatch(ctx context.Context, batch []domain.Deliverable) []scoredDeliverable {
	if len(batch) == 0 {
		return nil
	}
	results := make([]scoredDeliverable, len(batch))

	var g errgroup.Group
	g.SetLimit(o.settings.BatchConcurrency)
	for i := range batch {
		g.Go(func() error {
			d := batch[i]
			results[i] = scoredDeliverable{deliverable: d, result: o.scoreOne(ctx, &d)}
			return nil
		})
	}
	_ = g.Wait()

	for i := range results {
		sd := &results[i]
		o.itemMemory(ctx, &sd.deliverable)
		o.memory.RecordScore(sd.deliverable.ID, sd.result)
		result := sd.result
		sd.deliverable.Score = &result
		sd.deliverable.UpdatedAt = time.Now().UTC()
		o.save(ctx, &sd.deliverable)
		o.replace(sd.deliverable)
	}
	return results
}

// scoreOne grades the deliverable's artifact. Missing artifacts and scorer
// failures yield a degraded result that always fails the gate.
func (o *Orchestrator) scoreOne(ctx context.Context, d *domain.Deliverable) domain.ScoreResult {
	log := o.logger().With(zap.String("deliverable", d.ID))

	if d.ArtifactID == "" {
		return domain.DegradedScore(domain.ReasonNoImage)
	}
	artifact, err := o.artifacts.Get(ctx, d.ArtifactID)
	if err != nil || artifact.Path == "" {
		log.Warn("no usable artifact", zap.String("artifact", d.ArtifactID), zap.Error(err))
		return domain.DegradedScore(domain.ReasonNoImage)
	}

	scores, err := o.callScorer(ctx, *artifact)
	if err != nil {
		log.Warn("scoring failed", zap.Error(err))
		return domain.DegradedScore(domain.ReasonScoringError)
	}

	result := o.gate.Evaluate(scores)
	grade := result.Grade()
	artifact.Grade = &grade
	if err := o.artifacts.Save(ctx, *artifact); err != nil {
		log.Warn("save grade", zap.Error(err))
	}

	log.Debug("scored",
		zap.Float64("fused", scores.Fused),
		zap.String("decision", result.Decision.String()),
		zap.Strings("reasons", result.FailureReasons))
	return result
}

func (o *Orchestrator) callScorer(ctx context.Context, artifact domain.Artifact) (scores domain.Scores, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", domain.ErrScoringFailed, r)
		}
	}()
	scores, err = o.scorer.Score(ctx, artifact, o.campaign.BrandID)
	if err != nil {
		return domain.Scores{}, fmt.Errorf("%w: %w", domain.ErrScoringFailed, err)
	}
	return scores, nil
}

// route sends a scored deliverable to review, the retry batch, or failure.
func (o *Orchestrator) route(ctx context.Context, d domain.Deliverable, result domain.ScoreResult) {
	if result.PassedGate1 {
		if err := d.Transition(domain.DeliverableStatusHITL); err != nil {
			o.logger().Warn("route to review", zap.String("deliverable", d.ID), zap.Error(err))
			return
		}
		o.save(ctx, &d)
		o.replace(d)
		o.logger().Info("awaiting review", zap.String("deliverable", d.ID), zap.Float64("fused", result.Fused))
		return
	}

	item := o.itemMemory(ctx, &d)
	if item.RetryCount < o.campaign.RetryBudget() {
		o.addToRetryBatch(&d, result.FailureReasons)
		return
	}
	o.fail(ctx, &d, domain.ReasonBudgetExhausted)
}

// addToRetryBatch records the rejection in memory and queues the deliverable.
func (o *Orchestrator) addToRetryBatch(d *domain.Deliverable, reasons []string) {
	negatives := o.mutator.Taxonomy().NegativeTerms(reasons)
	o.memory.AddRejection(d.ID, reasons, negatives)
	if !slices.Contains(o.retryBatch, d.ID) {
		o.retryBatch = append(o.retryBatch, d.ID)
	}
}

// flushRetryBatch mutates every queued deliverable from its full rejection
// history, records an audit entry, and regenerates the batch.
func (o *Orchestrator) flushRetryBatch(ctx context.Context) {
	batch := o.retryBatch
	o.retryBatch = nil

	toRegenerate := make([]domain.Deliverable, 0, len(batch))
	for _, id := range batch {
		current := o.find(id)
		if current == nil {
			o.logger().Warn("queued deliverable vanished", zap.String("deliverable", id))
			continue
		}
		d := *current
		item := o.itemMemory(ctx, &d)

		mutated := o.mutator.Mutate(d.OriginalPrompt, item.RejectionReasons, d.Model, item.NegativeTerms)
		before := d.CurrentPrompt

		if err := d.Transition(domain.DeliverableStatusRetryQueued); err != nil {
			o.logger().Warn("queue retry", zap.String("deliverable", id), zap.Error(err))
			continue
		}
		d.CurrentPrompt = mutated.Prompt
		d.NegativePrompt = mutated.NegativePrompt
		d.NegativeTerms = slices.Clone(item.NegativeTerms)
		d.RetryCount = item.RetryCount
		item.ModifiedPrompt = mutated.Prompt
		if item.OriginalPrompt == "" {
			item.OriginalPrompt = d.OriginalPrompt
		}
		o.save(ctx, &d)
		o.replace(d)

		o.appendAudit(ctx, domain.AuditRecord{
			ID:               uuid.NewString(),
			CampaignID:       o.campaignID,
			DeliverableID:    d.ID,
			Attempt:          item.RetryCount,
			RejectionReasons: slices.Clone(item.RejectionReasons),
			NegativeTerms:    slices.Clone(item.NegativeTerms),
			PromptBefore:     before,
			PromptAfter:      mutated.Prompt,
			NegativePrompt:   mutated.NegativePrompt,
			CreatedAt:        time.Now().UTC(),
		})

		o.logger().Info("retry queued",
			zap.String("deliverable", d.ID),
			zap.Int("attempt", item.RetryCount),
			zap.Strings("reasons", item.RejectionReasons))
		toRegenerate = append(toRegenerate, d)
	}

	o.generateBatch(ctx, toRegenerate)
}

func (o *Orchestrator) appendAudit(ctx context.Context, record domain.AuditRecord) {
	if o.audit == nil {
		return
	}
	if err := o.audit.Append(ctx, record); err != nil {
		o.logger().Warn("append audit record", zap.String("deliverable", record.DeliverableID), zap.Error(err))
	}
}

// fail moves a deliverable to failed with a reason.
func (o *Orchestrator) fail(ctx context.Context, d *domain.Deliverable, reason string) {
	if err := d.Transition(domain.DeliverableStatusFailed); err != nil {
		o.logger().Warn("fail deliverable", zap.String("deliverable", d.ID), zap.Error(err))
		return
	}
	d.LastError = reason
	o.save(ctx, d)
	o.replace(*d)
	o.logger().Info("failed", zap.String("deliverable", d.ID), zap.String("reason", reason))
}

// itemMemory returns the deliverable's memory, seeding it from the durable
// record the first time it is seen by this instance.
func (o *Orchestrator) itemMemory(ctx context.Context, d *domain.Deliverable) *ItemMemory {
	if o.memory.Has(d.ID) {
		return o.memory.Item(d.ID)
	}

	item := o.memory.Item(d.ID)
	item.RetryCount = d.RetryCount
	item.NegativeTerms = slices.Clone(d.NegativeTerms)
	item.OriginalPrompt = d.OriginalPrompt
	if d.RetryCount > 0 {
		item.ModifiedPrompt = d.CurrentPrompt
	}

	if d.RetryCount > 0 && o.audit != nil {
		records, err := o.audit.ListByDeliverable(ctx, d.ID)
		if err != nil {
			o.logger().Warn("hydrate memory", zap.String("deliverable", d.ID), zap.Error(err))
		} else if len(records) > 0 {
			item.RejectionReasons = slices.Clone(records[len(records)-1].RejectionReasons)
		}
	}
	return item
}

// save persists a deliverable. Store failures are logged; the in-memory
// copy stays authoritative for the rest of the iteration.
func (o *Orchestrator) save(ctx context.Context, d *domain.Deliverable) {
	if err := o.deliverables.Save(ctx, *d); err != nil {
		o.logger().Error("save deliverable", zap.String("deliverable", d.ID), zap.Error(err))
	}
}

func (o *Orchestrator) withStatus(status domain.DeliverableStatus) []domain.Deliverable {
	var out []domain.Deliverable
	for i := range o.items {
		if o.items[i].Status == status {
			out = append(out, o.items[i])
		}
	}
	return out
}

func (o *Orchestrator) count(status domain.DeliverableStatus) int {
	n := 0
	for i := range o.items {
		if o.items[i].Status == status {
			n++
		}
	}
	return n
}

func (o *Orchestrator) allTerminal() bool {
	for i := range o.items {
		if !o.items[i].Status.IsTerminal() {
			return false
		}
	}
	return true
}

func (o *Orchestrator) indexOf(id string) int {
	return slices.IndexFunc(o.items, func(d domain.Deliverable) bool { return d.ID == id })
}

func (o *Orchestrator) find(id string) *domain.Deliverable {
	if i := o.indexOf(id); i >= 0 {
		return &o.items[i]
	}
	return nil
}

func (o *Orchestrator) replace(d domain.Deliverable) {
	if i := o.indexOf(d.ID); i >= 0 {
		o.items[i] = d
		return
	}
	o.items = append(o.items, d)
}

func rejectionNote(reason, note string) string {
	if note == "" {
		return reason
	}
	return reason + ": " + note
}

// OrchestratorFactory builds a fresh orchestrator per campaign over shared collaborators.
type OrchestratorFactory struct {
	campaigns    driven.CampaignStore
	deliverables driven.DeliverableStore
	artifacts    driven.ArtifactStore
	audit        driven.AuditLog
	generator    driven.Generator
	scorer       driven.Scorer
	promoter     driving.PromotionService
	mutator      *PromptMutator
	gate         *QualityGate
	settings     domain.PipelineSettings
}

// NewOrchestratorFactory creates a factory.
func NewOrchestratorFactory(
	campaigns driven.CampaignStore,
	deliverables driven.DeliverableStore,
	artifacts driven.ArtifactStore,
	audit driven.AuditLog,
	generator driven.Generator,
	scorer driven.Scorer,
	promoter driving.PromotionService,
	mutator *PromptMutator,
	gate *QualityGate,
	settings domain.PipelineSettings,
) *OrchestratorFactory {
	return &OrchestratorFactory{
		campaigns:    campaigns,
		deliverables: deliverables,
		artifacts:    artifacts,
		audit:        audit,
		generator:    generator,
		scorer:       scorer,
		promoter:     promoter,
		mutator:      mutator,
		gate:         gate,
		settings:     settings,
	}
}

// ForCampaign returns a new orchestrator with its own memory.
func (f *OrchestratorFactory) ForCampaign(campaignID string) driving.CampaignOrchestrator {
	return NewOrchestrator(
		campaignID,
		f.campaigns,
		f.deliverables,
		f.artifacts,
		f.audit,
		f.generator,
		f.scorer,
		f.promoter,
		f.mutator,
		f.gate,
		f.settings,
	)
}

// ErrMissingCollaborator is returned when a required collaborator is nil.
var ErrMissingCollaborator = errors.New("missing collaborator")

// Validate checks that the factory can build working orchestrators.
func (f *OrchestratorFactory) Validate() error {
	switch {
	case f.campaigns == nil:
		return fmt.Errorf("%w: campaign store", ErrMissingCollaborator)
	case f.deliverables == nil:
		return fmt.Errorf("%w: deliverable store", ErrMissingCollaborator)
	case f.artifacts == nil:
		return fmt.Errorf("%w: artifact store", ErrMissingCollaborator)
	case f.generator == nil:
		return fmt.Errorf("%w: generator", ErrMissingCollaborator)
	case f.scorer == nil:
		return fmt.Errorf("%w: scorer", ErrMissingCollaborator)
	}
	return nil
}

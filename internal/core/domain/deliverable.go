package domain

import (
	"fmt"
	"slices"
	"time"
)

// DeliverableStatus is a state in the deliverable lifecycle.
//
//	pending -> generating -> scoring -> {hitl | retry_queued | failed}
//	hitl -> {approved | retry_queued | failed}
//	retry_queued -> generating
//
// approved and failed are terminal.
type DeliverableStatus string

// Deliverable statuses.
const (
	DeliverableStatusPending     DeliverableStatus = "pending"
	DeliverableStatusGenerating  DeliverableStatus = "generating"
	DeliverableStatusScoring     DeliverableStatus = "scoring"
	DeliverableStatusHITL        DeliverableStatus = "hitl"
	DeliverableStatusApproved    DeliverableStatus = "approved"
	DeliverableStatusFailed      DeliverableStatus = "failed"
	DeliverableStatusRetryQueued DeliverableStatus = "retry_queued"
)

var deliverableTransitions = map[DeliverableStatus][]DeliverableStatus{
	DeliverableStatusPending:     {DeliverableStatusGenerating},
	DeliverableStatusGenerating:  {DeliverableStatusScoring, DeliverableStatusFailed},
	DeliverableStatusScoring:     {DeliverableStatusHITL, DeliverableStatusRetryQueued, DeliverableStatusFailed},
	DeliverableStatusHITL:        {DeliverableStatusApproved, DeliverableStatusRetryQueued, DeliverableStatusFailed},
	DeliverableStatusRetryQueued: {DeliverableStatusGenerating},
}

// IsValid returns true if the status is recognised.
func (s DeliverableStatus) IsValid() bool {
	switch s {
	case DeliverableStatusPending, DeliverableStatusGenerating, DeliverableStatusScoring,
		DeliverableStatusHITL, DeliverableStatusApproved, DeliverableStatusFailed,
		DeliverableStatusRetryQueued:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for approved and failed.
func (s DeliverableStatus) IsTerminal() bool {
	return s == DeliverableStatusApproved || s == DeliverableStatusFailed
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s DeliverableStatus) CanTransitionTo(next DeliverableStatus) bool {
	for _, allowed := range deliverableTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (s DeliverableStatus) String() string {
	return string(s)
}

// Deliverable is one unit of creative work tracked through the feedback loop.
type Deliverable struct {
	// ID uniquely identifies this deliverable.
	ID string `json:"id"`

	// CampaignID is the owning campaign.
	CampaignID string `json:"campaign_id"`

	// BrandID is the brand (client) identifier.
	BrandID string `json:"brand_id"`

	// Description is a short human label, used in logs and review queues.
	Description string `json:"description"`

	// Model selects the generative model ("nano", "veo", "sora", ...).
	Model string `json:"ai_model"`

	// OriginalPrompt never changes after creation.
	OriginalPrompt string `json:"original_prompt"`

	// CurrentPrompt starts equal to OriginalPrompt and is rewritten on each retry.
	CurrentPrompt string `json:"current_prompt"`

	// NegativeTerms accumulates across attempts, deduplicated, in first-seen order.
	NegativeTerms []string `json:"negative_prompts,omitempty"`

	// NegativePrompt is the separate negative channel for models that support one.
	NegativePrompt string `json:"negative_prompt,omitempty"`

	// ReferenceImages are passed through to the generator.
	ReferenceImages []string `json:"reference_images,omitempty"`

	// Status is the lifecycle state.
	Status DeliverableStatus `json:"status"`

	// ArtifactID references the latest generated artifact, if any.
	ArtifactID string `json:"artifact_id,omitempty"`

	// Score is the latest quality gate result, if any.
	Score *ScoreResult `json:"score,omitempty"`

	// RetryCount is the number of retries used so far.
	RetryCount int `json:"retry_count"`

	// LastError describes the most recent collaborator failure.
	LastError string `json:"last_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDeliverable creates a pending deliverable whose current prompt equals the original.
func NewDeliverable(id, campaignID, brandID, model, prompt string) Deliverable {
	now := time.Now().UTC()
	return Deliverable{
		ID:             id,
		CampaignID:     campaignID,
		BrandID:        brandID,
		Model:          model,
		OriginalPrompt: prompt,
		CurrentPrompt:  prompt,
		Status:         DeliverableStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Transition moves the deliverable to next, enforcing the lifecycle.
func (d *Deliverable) Transition(next DeliverableStatus) error {
	if !d.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, next)
	}
	d.Status = next
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// Label returns the description, falling back to the ID.
func (d *Deliverable) Label() string {
	if d.Description != "" {
		return d.Description
	}
	return d.ID
}

// Clone returns a deep copy.
func (d Deliverable) Clone() Deliverable {
	d.NegativeTerms = slices.Clone(d.NegativeTerms)
	d.ReferenceImages = slices.Clone(d.ReferenceImages)
	if d.Score != nil {
		score := *d.Score
		score.FailureReasons = slices.Clone(score.FailureReasons)
		d.Score = &score
	}
	return d
}

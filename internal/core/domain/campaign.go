package domain

import "time"

// DefaultMaxRetries is the retry budget applied when a campaign does not set one.
const DefaultMaxRetries = 3

// CampaignStatus is the aggregate status of a campaign, derived from its deliverables.
type CampaignStatus string

// Campaign statuses.
const (
	// CampaignStatusDraft is a campaign that has not been orchestrated yet.
	CampaignStatusDraft CampaignStatus = "draft"

	// CampaignStatusRunning is set while orchestration is in progress, and left in
	// place when the loop exhausts its iteration bound without converging.
	CampaignStatusRunning CampaignStatus = "running"

	// CampaignStatusNeedsReview means at least one deliverable waits for a human.
	CampaignStatusNeedsReview CampaignStatus = "needs_review"

	// CampaignStatusCompleted means every deliverable was approved.
	CampaignStatusCompleted CampaignStatus = "completed"

	// CampaignStatusFailed means nothing waits for review and at least one deliverable failed.
	CampaignStatusFailed CampaignStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusRunning, CampaignStatusNeedsReview,
		CampaignStatusCompleted, CampaignStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s CampaignStatus) String() string {
	return string(s)
}

// Campaign identifies a batch of work for one brand.
// Campaigns are created by callers; the orchestrator only updates status and counts.
type Campaign struct {
	// ID uniquely identifies this campaign.
	ID string `json:"id"`

	// BrandID is the brand (client) identifier, e.g. "client_jenni_kayne".
	BrandID string `json:"brand_id"`

	// Name is a human-readable label.
	Name string `json:"name"`

	// MaxRetries is the per-deliverable retry budget.
	MaxRetries int `json:"max_retries"`

	// Status is the aggregate status.
	Status CampaignStatus `json:"status"`

	// ApprovedCount and FailedCount are written at the end of each run.
	ApprovedCount int `json:"approved_count"`
	FailedCount   int `json:"failed_count"`

	// PromotedAt records when approved work was committed to brand memory.
	// Zero means the campaign has not been promoted.
	PromotedAt time.Time `json:"promoted_at,omitzero"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCampaign creates a draft campaign with the default retry budget.
func NewCampaign(id, brandID, name string) Campaign {
	now := time.Now().UTC()
	return Campaign{
		ID:         id,
		BrandID:    brandID,
		Name:       name,
		MaxRetries: DefaultMaxRetries,
		Status:     CampaignStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// RetryBudget returns the number of retries each deliverable may use.
func (c *Campaign) RetryBudget() int {
	if c.MaxRetries < 0 {
		return 0
	}
	return c.MaxRetries
}

// Promoted reports whether DNA promotion already ran for this campaign.
func (c *Campaign) Promoted() bool {
	return !c.PromotedAt.IsZero()
}

// StatusCounts tallies deliverables by terminal-relevant status.
type StatusCounts struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Failed   int `json:"failed"`
	HITL     int `json:"hitl_pending"`
}

// CountStatuses tallies the given deliverables.
func CountStatuses(deliverables []Deliverable) StatusCounts {
	counts := StatusCounts{Total: len(deliverables)}
	for i := range deliverables {
		switch deliverables[i].Status {
		case DeliverableStatusApproved:
			counts.Approved++
		case DeliverableStatusFailed:
			counts.Failed++
		case DeliverableStatusHITL:
			counts.HITL++
		}
	}
	return counts
}

// Outcome derives the campaign status from the counts.
// A campaign with nothing approved, nothing failed and nothing in review stays running.
func (c StatusCounts) Outcome() CampaignStatus {
	switch {
	case c.Approved == c.Total:
		return CampaignStatusCompleted
	case c.HITL > 0:
		return CampaignStatusNeedsReview
	case c.Failed > 0:
		return CampaignStatusFailed
	default:
		return CampaignStatusRunning
	}
}

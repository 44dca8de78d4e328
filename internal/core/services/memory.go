package services

import (
	"slices"
	"time"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

// ItemMemory is the rejection history of one deliverable within a campaign.
type ItemMemory struct {
	RetryCount       int
	RejectionReasons []string
	NegativeTerms    []string
	OriginalPrompt   string
	ModifiedPrompt   string
	Scores           []domain.ScoreResult
}

// CampaignMemory is the short-term memory for one campaign run.
// It is owned by a single orchestrator and is not safe for concurrent use.
type CampaignMemory struct {
	CampaignID string
	CreatedAt  time.Time
	items      map[string]*ItemMemory
}

// NewCampaignMemory creates empty memory for a campaign.
func NewCampaignMemory(campaignID string) *CampaignMemory {
	return &CampaignMemory{
		CampaignID: campaignID,
		CreatedAt:  time.Now(),
		items:      make(map[string]*ItemMemory),
	}
}

// Has reports whether a deliverable has an entry.
func (m *CampaignMemory) Has(deliverableID string) bool {
	_, ok := m.items[deliverableID]
	return ok
}

// Item returns the entry for a deliverable, creating it on first access.
func (m *CampaignMemory) Item(deliverableID string) *ItemMemory {
	item, ok := m.items[deliverableID]
	if !ok {
		item = &ItemMemory{}
		m.items[deliverableID] = item
	}
	return item
}

// AddRejection records one rejection. Reasons and negative terms are merged
// without duplicates in first-seen order and the retry count increments.
func (m *CampaignMemory) AddRejection(deliverableID string, reasons, negativeTerms []string) *ItemMemory {
	item := m.Item(deliverableID)
	item.RejectionReasons = merge(item.RejectionReasons, reasons)
	item.NegativeTerms = merge(item.NegativeTerms, negativeTerms)
	item.RetryCount++
	return item
}

// RecordScore appends a score to the deliverable's history.
func (m *CampaignMemory) RecordScore(deliverableID string, result domain.ScoreResult) {
	item := m.Item(deliverableID)
	item.Scores = append(item.Scores, result)
}

// Len returns the number of tracked deliverables.
func (m *CampaignMemory) Len() int {
	return len(m.items)
}

func merge(existing, incoming []string) []string {
	for _, v := range incoming {
		if !slices.Contains(existing, v) {
			existing = append(existing, v)
		}
	}
	return existing
}

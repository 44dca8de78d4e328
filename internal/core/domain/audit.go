package domain

import (
	"slices"
	"time"
)

// AuditRecord is an immutable entry written for every prompt mutation.
type AuditRecord struct {
	ID               string    `json:"id"`
	CampaignID       string    `json:"campaign_id"`
	DeliverableID    string    `json:"deliverable_id"`
	Attempt          int       `json:"retry_attempt"`
	RejectionReasons []string  `json:"rejection_reasons"`
	NegativeTerms    []string  `json:"negative_prompts"`
	PromptBefore     string    `json:"prompt_before"`
	PromptAfter      string    `json:"prompt_after"`
	NegativePrompt   string    `json:"negative_prompt,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Clone returns a deep copy.
func (r AuditRecord) Clone() AuditRecord {
	r.RejectionReasons = slices.Clone(r.RejectionReasons)
	r.NegativeTerms = slices.Clone(r.NegativeTerms)
	return r
}

package domain

import "time"

// ArtifactType distinguishes generated media.
type ArtifactType string

// Artifact types.
const (
	ArtifactTypeImage ArtifactType = "image"
	ArtifactTypeVideo ArtifactType = "video"
)

// Artifact is a file produced by the generation collaborator.
type Artifact struct {
	ID            string       `json:"id"`
	BrandID       string       `json:"brand_id"`
	CampaignID    string       `json:"campaign_id"`
	DeliverableID string       `json:"deliverable_id"`
	Type          ArtifactType `json:"type"`
	Name          string       `json:"name"`
	Path          string       `json:"path"`
	Size          int64        `json:"size"`
	PromptUsed    string       `json:"prompt_used"`

	// Grade is the latest score snapshot. Nil until the artifact is scored.
	Grade *Grade `json:"grade,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Graded reports whether the artifact carries a grade.
func (a *Artifact) Graded() bool {
	return a.Grade != nil
}

// GenerationRequest is the input to the generation collaborator.
type GenerationRequest struct {
	BrandID         string
	CampaignID      string
	DeliverableID   string
	Prompt          string
	Model           string
	NegativeTerms   []string
	NegativePrompt  string
	ReferenceImages []string
}

// Clone returns a deep copy.
func (a Artifact) Clone() Artifact {
	if a.Grade != nil {
		grade := *a.Grade
		a.Grade = &grade
	}
	return a
}

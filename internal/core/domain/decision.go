package domain

import (
	"fmt"
	"strings"
)

// ReviewDecision is a human reviewer's verdict on a deliverable in hitl.
type ReviewDecision string

// Review decisions.
const (
	ReviewApprove ReviewDecision = "approve"
	ReviewReject  ReviewDecision = "reject"
	ReviewChanges ReviewDecision = "changes"
)

// ParseReviewDecision parses a decision, case-insensitively.
func ParseReviewDecision(s string) (ReviewDecision, error) {
	d := ReviewDecision(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case ReviewApprove, ReviewReject, ReviewChanges:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDecision, s)
	}
}

// IsRejection returns true for reject and changes.
func (d ReviewDecision) IsRejection() bool {
	return d == ReviewReject || d == ReviewChanges
}

// String returns the string representation.
func (d ReviewDecision) String() string {
	return string(d)
}

// HITLDecision is a review event for one deliverable.
type HITLDecision struct {
	DeliverableID    string         `json:"deliverable_id"`
	Decision         ReviewDecision `json:"decision"`
	RejectionReasons []string       `json:"rejection_reasons,omitempty"`
	Note             string         `json:"note,omitempty"`
}

// DecisionOutcome reports what a review decision did.
type DecisionOutcome struct {
	DeliverableID string            `json:"deliverable_id"`
	Status        DeliverableStatus `json:"status"`
	Requeued      bool              `json:"requeued"`
	Promoted      bool              `json:"promoted"`
}

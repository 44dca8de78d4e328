package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCampaign(t *testing.T) {
	c := NewCampaign("c-1", "client_acme", "Spring")

	assert.Equal(t, DefaultMaxRetries, c.MaxRetries)
	assert.Equal(t, CampaignStatusDraft, c.Status)
	assert.False(t, c.Promoted())
}

func TestCampaign_RetryBudget(t *testing.T) {
	c := Campaign{MaxRetries: 5}
	assert.Equal(t, 5, c.RetryBudget())

	c.MaxRetries = 0
	assert.Equal(t, 0, c.RetryBudget())

	c.MaxRetries = -2
	assert.Equal(t, 0, c.RetryBudget())
}

func TestStatusCounts_Outcome(t *testing.T) {
	mk := func(statuses ...DeliverableStatus) []Deliverable {
		out := make([]Deliverable, len(statuses))
		for i, s := range statuses {
			out[i] = Deliverable{Status: s}
		}
		return out
	}

	tests := []struct {
		name string
		in   []Deliverable
		want CampaignStatus
	}{
		{"all approved", mk(DeliverableStatusApproved, DeliverableStatusApproved), CampaignStatusCompleted},
		{"hitl wins over failed", mk(DeliverableStatusHITL, DeliverableStatusFailed), CampaignStatusNeedsReview},
		{"failed", mk(DeliverableStatusApproved, DeliverableStatusFailed), CampaignStatusFailed},
		{"unconverged", mk(DeliverableStatusScoring, DeliverableStatusApproved), CampaignStatusRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountStatuses(tt.in).Outcome())
		})
	}
}

func TestCountStatuses(t *testing.T) {
	counts := CountStatuses([]Deliverable{
		{Status: DeliverableStatusApproved},
		{Status: DeliverableStatusFailed},
		{Status: DeliverableStatusHITL},
		{Status: DeliverableStatusHITL},
		{Status: DeliverableStatusScoring},
	})

	assert.Equal(t, StatusCounts{Total: 5, Approved: 1, Failed: 1, HITL: 2}, counts)
}

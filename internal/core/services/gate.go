package services

import "github.com/custodia-labs/brandloop/internal/core/domain"

// Per-modality floors below which a failure reason is reported.
const (
	clipFloor   = 0.70
	e5Floor     = 0.60
	cohereFloor = 0.65

	// weakFloor triggers the off_brand catch-all when every modality is mediocre.
	weakFloor = 0.75
)

// QualityGate maps raw scores to a gate decision.
type QualityGate struct {
	autoPass float64
	hitl     float64
}

// NewQualityGate creates a gate. Zero thresholds take the defaults.
func NewQualityGate(settings domain.GateSettings) *QualityGate {
	g := &QualityGate{
		autoPass: settings.AutoPassThreshold,
		hitl:     settings.HITLThreshold,
	}
	if g.autoPass <= 0 {
		g.autoPass = domain.DefaultAutoPassThreshold
	}
	if g.hitl <= 0 {
		g.hitl = domain.DefaultHITLThreshold
	}
	return g
}

// Evaluate classifies scores. AUTO_PASS and HITL_REVIEW both pass gate 1;
// the orchestrator sends every passing item to human review.
func (g *QualityGate) Evaluate(scores domain.Scores) domain.ScoreResult {
	result := domain.ScoreResult{Scores: scores}

	switch {
	case scores.Fused >= g.autoPass:
		result.Decision = domain.DecisionAutoPass
		result.PassedGate1 = true
	case scores.Fused >= g.hitl:
		result.Decision = domain.DecisionHITLReview
		result.PassedGate1 = true
	default:
		result.Decision = domain.DecisionAutoFail
	}

	result.FailureReasons = FailureReasons(scores)
	return result
}

// FailureReasons derives rejection ids from weak modalities.
func FailureReasons(scores domain.Scores) []string {
	var reasons []string
	if scores.CLIP < clipFloor {
		reasons = append(reasons, domain.ReasonOffBrand)
	}
	if scores.E5 < e5Floor {
		reasons = append(reasons, domain.ReasonWrongComposition)
	}
	if scores.Cohere < cohereFloor {
		reasons = append(reasons, domain.ReasonQualityIssue)
	}
	if len(reasons) == 0 && scores.CLIP < weakFloor && scores.E5 < weakFloor && scores.Cohere < weakFloor {
		reasons = append(reasons, domain.ReasonOffBrand)
	}
	return reasons
}

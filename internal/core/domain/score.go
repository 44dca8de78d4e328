package domain

// Decision is the three-way outcome of the quality gate.
type Decision string

// Gate decisions.
const (
	DecisionAutoPass   Decision = "AUTO_PASS"
	DecisionHITLReview Decision = "HITL_REVIEW"
	DecisionAutoFail   Decision = "AUTO_FAIL"
)

// String returns the string representation.
func (d Decision) String() string {
	return string(d)
}

// Failure reason identifiers produced by scoring.
// The first three are also rejection categories and drive prompt mutation.
const (
	ReasonOffBrand          = "off_brand"
	ReasonWrongComposition  = "wrong_composition"
	ReasonQualityIssue      = "quality_issue"
	ReasonScoringError      = "scoring_error"
	ReasonNoImage           = "no_image"
	ReasonGenerationFailure = "generation_failure"
	ReasonBudgetExhausted   = "retry_budget_exhausted"
)

// Scores holds raw similarity values, one per modality plus the fused value.
// Raw values are cosine similarities in [0,1]; Fused may exceed that for degenerate inputs.
type Scores struct {
	CLIP   float64 `json:"clip_raw"`
	E5     float64 `json:"e5_raw"`
	Cohere float64 `json:"cohere_raw"`
	Fused  float64 `json:"fused_raw"`
}

// ScoreResult is the outcome of one scoring call after the quality gate.
type ScoreResult struct {
	Scores

	// Decision is the gate decision.
	Decision Decision `json:"decision"`

	// PassedGate1 is true for AUTO_PASS and HITL_REVIEW.
	PassedGate1 bool `json:"passed_gate1"`

	// FailureReasons are rejection ids in first-seen order, without duplicates.
	FailureReasons []string `json:"failure_reasons,omitempty"`
}

// DegradedScore is the fixed result used when scoring could not run.
// It always fails the gate so the item routes to retry or failure, never to review.
func DegradedScore(reason string) ScoreResult {
	return ScoreResult{
		Decision:       DecisionAutoFail,
		PassedGate1:    false,
		FailureReasons: []string{reason},
	}
}

// Grade is the score snapshot stored on an artifact.
type Grade struct {
	Scores
	Decision Decision `json:"decision"`
}

// Grade returns the artifact grade for this result.
func (r ScoreResult) Grade() Grade {
	return Grade{Scores: r.Scores, Decision: r.Decision}
}

package domain

import "time"

// DefaultDriftThreshold is how far the fused score may fall below the baseline
// before drift is reported.
const DefaultDriftThreshold = 0.10

// BrandProfile is the long-term statistics snapshot for one brand.
// Each promotion overwrites the brand's previous snapshot.
type BrandProfile struct {
	BrandID string `json:"brand_id"`

	// TotalArtifacts counts every historical artifact, graded or not.
	TotalArtifacts int `json:"total_artifacts"`

	// GradedArtifacts counts the artifacts the averages were computed from.
	GradedArtifacts int `json:"graded_artifacts"`

	// AvgScores are per-modality means over graded artifacts.
	AvgScores Scores `json:"avg_scores_raw"`

	// DriftBaseline is the average fused score at the time of the snapshot.
	DriftBaseline float64 `json:"drift_baseline_raw"`

	LastUpdated time.Time `json:"last_updated"`
}

// HasBaseline reports whether the drift baseline was computed from graded work.
func (p *BrandProfile) HasBaseline() bool {
	return p.GradedArtifacts > 0
}

// DriftReason explains a drift check outcome.
type DriftReason string

// Drift reasons.
const (
	DriftReasonNone             DriftReason = ""
	DriftReasonScoreDegradation DriftReason = "score_degradation"
	DriftReasonNoBaseline       DriftReason = "no_baseline"
	DriftReasonNoProfile        DriftReason = "no_brand_profile"
	DriftReasonCheckError       DriftReason = "check_error"
)

// DriftReport is the result of comparing a current fused score with a brand baseline.
type DriftReport struct {
	BrandID  string      `json:"brand_id"`
	Detected bool        `json:"drift_detected"`
	Baseline float64     `json:"baseline_raw"`
	Current  float64     `json:"current_raw"`
	Amount   float64     `json:"drift_amount"`
	Reason   DriftReason `json:"reason,omitempty"`
}

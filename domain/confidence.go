package domain

// Priority buckets a confidence score for triage.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "CRITICAL"
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// ConfidenceScore aggregates the four evidence axes into a single
// normalized score. Scores are advisory: NeedsHumanValidation is
// always true.
type ConfidenceScore struct {
	// Overall is the weighted aggregate, clamped to [0,1].
	Overall float64 `json:"overall"`

	// Per-axis category weights that contributed to Overall.
	MethodScore          float64 `json:"method_score"`
	ReproducibilityScore float64 `json:"reproducibility_score"`
	StrengthScore        float64 `json:"strength_score"`
	ClarityScore         float64 `json:"clarity_score"`

	// Priority is a deterministic step function of Overall.
	Priority Priority `json:"priority"`

	// Contributing labels the axes in descending order of contribution.
	Contributing []string `json:"contributing"`

	// NeedsHumanValidation is always true; the model never asserts
	// a finding without review.
	NeedsHumanValidation bool `json:"needs_human_validation"`

	// Explanation is a human-readable account of each axis.
	Explanation string `json:"explanation"`
}

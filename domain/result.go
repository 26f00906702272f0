package domain

// MinimizationResult is the immutable outcome of one minimization run.
type MinimizationResult struct {
	// Minimized is the reduced candidate. If the original failed,
	// the minimized candidate still fails.
	Minimized Candidate `json:"minimized"`

	// OriginalSize is the unit count of the input candidate.
	OriginalSize int `json:"original_size"`

	// MinimizedSize is the unit count after reduction.
	MinimizedSize int `json:"minimized_size"`

	// TestRunCount is the number of actual oracle invocations.
	// Memoized probes are not counted.
	TestRunCount int `json:"test_run_count"`

	// ReductionRatio is 1 - minimized/original, 0 for an empty input.
	ReductionRatio float64 `json:"reduction_ratio"`
}

// BisectionResult is the immutable outcome of one bisection run.
// It is only produced when the boundary is exact: FirstBad is
// positionally adjacent to LastGood.
type BisectionResult struct {
	// FirstBad is the earliest commit observed to be bad.
	FirstBad Commit `json:"first_bad_commit"`

	// LastGood is the latest commit observed to be good.
	LastGood Commit `json:"last_good_commit"`

	// CommitsTested is the number of oracle probes, seeds included.
	CommitsTested int `json:"commits_tested"`

	// TestResults is the full probe history in execution order.
	TestResults []CommitTest `json:"test_results"`
}

// RegressionVerdict is the outcome of one statistical comparison of
// two sampled variants.
type RegressionVerdict struct {
	// Baseline and Variant are the caller-supplied variant tags.
	Baseline string `json:"baseline"`
	Variant  string `json:"variant"`

	// SlowdownFactor is mean(variant) / mean(baseline).
	SlowdownFactor float64 `json:"slowdown_factor"`

	// PValue is the two-sided p-value from Welch's t-test.
	PValue float64 `json:"p_value"`

	// EffectSize is Cohen's d (pooled, unequal-N convention).
	EffectSize float64 `json:"effect_size"`

	BaselineMean float64 `json:"baseline_mean"`
	VariantMean  float64 `json:"variant_mean"`

	// Regression is true iff PValue < alpha AND SlowdownFactor exceeds
	// the configured threshold. Both gates are required.
	Regression bool `json:"regression"`
}

// FunctionalRegression reports a variant that broke functionally:
// the baseline passed unanimously while the variant hung, crashed,
// or produced wrong output at least once.
type FunctionalRegression struct {
	Baseline string `json:"baseline"`
	Variant  string `json:"variant"`

	// Outcome is the first faulty outcome observed on the variant.
	Outcome FunctionalOutcome `json:"outcome"`

	// VariantOutcomes is the full set of variant probe outcomes.
	VariantOutcomes []FunctionalOutcome `json:"variant_outcomes"`
}

// Package differential hypothesis-tests two sampled variants for
// performance or functional regressions. A performance regression is
// declared only when both gates hold: the difference is statistically
// significant (Welch's t-test, p < alpha) and practically significant
// (slowdown above the configured threshold). Statistical significance
// alone, or a large-but-noisy difference alone, is not enough.
package differential

import (
	"context"
	"fmt"
	"math"

	"github.com/example/faultline/domain"
	"github.com/example/faultline/stats"
)

// SampleFunc draws one timing sample (seconds or any consistent unit)
// for the named variant. NaN and infinite values are discarded as
// failed collections.
type SampleFunc func(variant string) float64

// FunctionalFunc classifies one functional probe of the named variant.
type FunctionalFunc func(variant string) domain.FunctionalOutcome

// Config holds the analyzer thresholds.
type Config struct {
	// Samples is the number of timing samples per variant.
	// Default: 30, minimum 2.
	Samples int

	// Alpha is the significance level for Welch's t-test.
	// Default: 0.05
	Alpha float64

	// SlowdownThreshold is the practical-significance gate on
	// mean(variant)/mean(baseline). Default: 1.2
	SlowdownThreshold float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Samples:           30,
		Alpha:             0.05,
		SlowdownThreshold: 1.2,
	}
}

// WithDefaults returns a new config with defaults applied for zero values.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()
	if c.Samples == 0 {
		c.Samples = defaults.Samples
	}
	if c.Alpha == 0 {
		c.Alpha = defaults.Alpha
	}
	if c.SlowdownThreshold == 0 {
		c.SlowdownThreshold = defaults.SlowdownThreshold
	}
	return c
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Samples < 2 {
		return fmt.Errorf("%w: Samples must be at least 2, got %d",
			domain.ErrInvalidConfig, c.Samples)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("%w: Alpha must be in (0,1), got %f",
			domain.ErrInvalidConfig, c.Alpha)
	}
	if c.SlowdownThreshold <= 0 {
		return fmt.Errorf("%w: SlowdownThreshold must be positive, got %f",
			domain.ErrInvalidConfig, c.SlowdownThreshold)
	}
	return nil
}

// Analyzer compares sampled variants. All sampling state is local to
// one call; the sampler is never invoked concurrently from within a
// single call.
type Analyzer struct {
	config Config
}

// New creates a new Analyzer, applying defaults for zero config fields.
func New(config Config) *Analyzer {
	return &Analyzer{config: config.WithDefaults()}
}

// Compare draws Samples timing samples per variant and runs Welch's
// t-test. It returns ErrInsufficientSamples when fewer usable samples
// than configured were collected, never a partial verdict.
func (a *Analyzer) Compare(ctx context.Context, baseline, variant string, sample SampleFunc) (*domain.RegressionVerdict, error) {
	if err := a.config.Validate(); err != nil {
		return nil, err
	}
	base, err := a.collect(ctx, baseline, sample)
	if err != nil {
		return nil, err
	}
	vari, err := a.collect(ctx, variant, sample)
	if err != nil {
		return nil, err
	}

	baseMean := stats.Mean(base)
	variMean := stats.Mean(vari)
	_, p, _ := stats.WelchTTest(base, vari)
	d := stats.CohenD(base, vari)

	slowdown := math.Inf(1)
	if baseMean != 0 {
		slowdown = variMean / baseMean
	}

	return &domain.RegressionVerdict{
		Baseline:       baseline,
		Variant:        variant,
		SlowdownFactor: slowdown,
		PValue:         p,
		EffectSize:     d,
		BaselineMean:   baseMean,
		VariantMean:    variMean,
		Regression:     p < a.config.Alpha && slowdown > a.config.SlowdownThreshold,
	}, nil
}

// CompareSequence compares every consecutive pair of an ordered variant
// list independently. All verdicts are returned; a regression between
// one pair never suppresses detection in later pairs.
func (a *Analyzer) CompareSequence(ctx context.Context, variants []string, sample SampleFunc) ([]domain.RegressionVerdict, error) {
	if len(variants) < 2 {
		return nil, domain.ErrTooFewVariants
	}
	verdicts := make([]domain.RegressionVerdict, 0, len(variants)-1)
	for i := 1; i < len(variants); i++ {
		v, err := a.Compare(ctx, variants[i-1], variants[i], sample)
		if err != nil {
			return nil, fmt.Errorf("comparing %s against %s: %w", variants[i], variants[i-1], err)
		}
		verdicts = append(verdicts, *v)
	}
	return verdicts, nil
}

// CheckFunctional looks for a functional regression: the baseline must
// pass unanimously while the variant hangs, crashes or produces wrong
// output at least once. This check is independent of, and reported
// prior to, the statistical path; callers should run it first.
//
// A nil result with a nil error means no functional regression.
func (a *Analyzer) CheckFunctional(ctx context.Context, baseline, variant string, fn FunctionalFunc) (*domain.FunctionalRegression, error) {
	n := a.config.Samples
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if fn(baseline) != domain.FuncPass {
			// Baseline is not unanimously passing: no clean reference
			// to regress from.
			return nil, nil
		}
	}

	outcomes := make([]domain.FunctionalOutcome, 0, n)
	first := domain.FuncPass
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o := fn(variant)
		outcomes = append(outcomes, o)
		if o.Faulty() && first == domain.FuncPass {
			first = o
		}
	}
	if first == domain.FuncPass {
		return nil, nil
	}
	return &domain.FunctionalRegression{
		Baseline:        baseline,
		Variant:         variant,
		Outcome:         first,
		VariantOutcomes: outcomes,
	}, nil
}

// collect draws the configured number of samples for one variant,
// discarding NaN and infinite values. The context is checked before
// each draw.
func (a *Analyzer) collect(ctx context.Context, variant string, sample SampleFunc) ([]float64, error) {
	out := make([]float64, 0, a.config.Samples)
	for i := 0; i < a.config.Samples; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v := sample(variant)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	if len(out) < a.config.Samples {
		return nil, fmt.Errorf("%w: %s yielded %d of %d samples",
			domain.ErrInsufficientSamples, variant, len(out), a.config.Samples)
	}
	return out, nil
}

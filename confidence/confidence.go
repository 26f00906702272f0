// Package confidence scores bug findings on four evidence axes and
// buckets them into triage priorities. The model is a pure function:
// it performs no I/O, never errors, clamps out-of-range inputs, and
// always flags its output for human validation.
package confidence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/faultline/domain"
)

// DiscoveryMethod is how the finding was discovered.
type DiscoveryMethod int

const (
	DiscoveryUserReport DiscoveryMethod = iota
	DiscoveryManual
	DiscoveryFuzzing
	DiscoveryPropertyTesting
)

// Weight returns the category weight for the method. Unknown values
// clamp to the weakest category.
func (m DiscoveryMethod) Weight() float64 {
	switch m {
	case DiscoveryPropertyTesting:
		return 0.90
	case DiscoveryFuzzing:
		return 0.85
	case DiscoveryManual:
		return 0.70
	default:
		return 0.50
	}
}

func (m DiscoveryMethod) String() string {
	switch m {
	case DiscoveryPropertyTesting:
		return "property-testing"
	case DiscoveryFuzzing:
		return "fuzzing"
	case DiscoveryManual:
		return "manual"
	default:
		return "user-report"
	}
}

// Reproducibility is how reliably the finding reproduces.
type Reproducibility int

const (
	ReproRarely Reproducibility = iota
	ReproSometimes
	ReproOften
	ReproAlways
)

func (r Reproducibility) Weight() float64 {
	switch r {
	case ReproAlways:
		return 1.0
	case ReproOften:
		return 0.8
	case ReproSometimes:
		return 0.5
	default:
		return 0.2
	}
}

func (r Reproducibility) String() string {
	switch r {
	case ReproAlways:
		return "always"
	case ReproOften:
		return "often"
	case ReproSometimes:
		return "sometimes"
	default:
		return "rarely"
	}
}

// EvidenceStrength is how strong the supporting evidence is.
type EvidenceStrength int

const (
	StrengthWeak EvidenceStrength = iota
	StrengthModerate
	StrengthStrong
)

func (s EvidenceStrength) Weight() float64 {
	switch s {
	case StrengthStrong:
		return 0.9
	case StrengthModerate:
		return 0.6
	default:
		return 0.3
	}
}

func (s EvidenceStrength) String() string {
	switch s {
	case StrengthStrong:
		return "strong"
	case StrengthModerate:
		return "moderate"
	default:
		return "weak"
	}
}

// RootCauseClarity is how well the root cause is understood.
type RootCauseClarity int

const (
	ClarityUnclear RootCauseClarity = iota
	ClarityLikely
	ClarityConfirmed
)

func (c RootCauseClarity) Weight() float64 {
	switch c {
	case ClarityConfirmed:
		return 1.0
	case ClarityLikely:
		return 0.7
	default:
		return 0.3
	}
}

func (c RootCauseClarity) String() string {
	switch c {
	case ClarityConfirmed:
		return "confirmed"
	case ClarityLikely:
		return "likely"
	default:
		return "unclear"
	}
}

// Evidence bundles one observation per axis.
type Evidence struct {
	Method          DiscoveryMethod
	Reproducibility Reproducibility
	Strength        EvidenceStrength
	Clarity         RootCauseClarity
}

// Weights is the axis weight vector. Different producers historically
// used different schemes, so the vector is configuration, not a
// constant; two named presets are provided.
type Weights struct {
	Method          float64 `yaml:"method" json:"method"`
	Reproducibility float64 `yaml:"reproducibility" json:"reproducibility"`
	Strength        float64 `yaml:"strength" json:"strength"`
	Clarity         float64 `yaml:"clarity" json:"clarity"`
}

// DefaultWeights favors reproducibility and discovery method.
func DefaultWeights() Weights {
	return Weights{Method: 0.30, Reproducibility: 0.30, Strength: 0.25, Clarity: 0.15}
}

// EqualWeights weighs every axis the same.
func EqualWeights() Weights {
	return Weights{Method: 0.25, Reproducibility: 0.25, Strength: 0.25, Clarity: 0.25}
}

// Model aggregates evidence into a confidence score.
type Model struct {
	weights Weights
}

// NewModel creates a model with the given weight vector. A zero vector
// falls back to DefaultWeights.
func NewModel(weights Weights) *Model {
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	return &Model{weights: weights}
}

// Score aggregates the four axes into a normalized score with a
// deterministic priority bucket. It never errors; the overall score is
// clamped to [0,1] whatever the weight vector.
func (m *Model) Score(e Evidence) domain.ConfidenceScore {
	method := e.Method.Weight()
	repro := e.Reproducibility.Weight()
	strength := e.Strength.Weight()
	clarity := e.Clarity.Weight()

	overall := clamp01(m.weights.Method*method +
		m.weights.Reproducibility*repro +
		m.weights.Strength*strength +
		m.weights.Clarity*clarity)

	type axis struct {
		label        string
		contribution float64
	}
	axes := []axis{
		{fmt.Sprintf("discovery=%s", e.Method), m.weights.Method * method},
		{fmt.Sprintf("reproducibility=%s", e.Reproducibility), m.weights.Reproducibility * repro},
		{fmt.Sprintf("evidence=%s", e.Strength), m.weights.Strength * strength},
		{fmt.Sprintf("root-cause=%s", e.Clarity), m.weights.Clarity * clarity},
	}
	sort.SliceStable(axes, func(i, j int) bool {
		return axes[i].contribution > axes[j].contribution
	})
	contributing := make([]string, len(axes))
	for i, a := range axes {
		contributing[i] = a.label
	}

	var b strings.Builder
	fmt.Fprintf(&b, "discovered via %s (%.2f), reproduces %s (%.2f), %s evidence (%.2f), root cause %s (%.2f)",
		e.Method, method, e.Reproducibility, repro, e.Strength, strength, e.Clarity, clarity)

	return domain.ConfidenceScore{
		Overall:              overall,
		MethodScore:          method,
		ReproducibilityScore: repro,
		StrengthScore:        strength,
		ClarityScore:         clarity,
		Priority:             PriorityFor(overall),
		Contributing:         contributing,
		NeedsHumanValidation: true,
		Explanation:          b.String(),
	}
}

// PriorityFor maps an overall score to a priority bucket. The
// boundaries are exact step thresholds with no hysteresis.
func PriorityFor(overall float64) domain.Priority {
	switch {
	case overall > 0.8:
		return domain.PriorityCritical
	case overall > 0.6:
		return domain.PriorityHigh
	case overall > 0.4:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

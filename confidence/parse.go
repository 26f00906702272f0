package confidence

import (
	"fmt"

	"github.com/example/faultline/domain"
)

// ParseDiscoveryMethod parses the CLI/config spelling of a discovery method.
func ParseDiscoveryMethod(s string) (DiscoveryMethod, error) {
	switch s {
	case "property-testing", "property":
		return DiscoveryPropertyTesting, nil
	case "fuzzing":
		return DiscoveryFuzzing, nil
	case "manual":
		return DiscoveryManual, nil
	case "user-report", "user":
		return DiscoveryUserReport, nil
	}
	return 0, fmt.Errorf("%w: unknown discovery method %q", domain.ErrInvalidConfig, s)
}

// ParseReproducibility parses the CLI/config spelling of a reproducibility level.
func ParseReproducibility(s string) (Reproducibility, error) {
	switch s {
	case "always":
		return ReproAlways, nil
	case "often":
		return ReproOften, nil
	case "sometimes":
		return ReproSometimes, nil
	case "rarely":
		return ReproRarely, nil
	}
	return 0, fmt.Errorf("%w: unknown reproducibility %q", domain.ErrInvalidConfig, s)
}

// ParseEvidenceStrength parses the CLI/config spelling of an evidence strength.
func ParseEvidenceStrength(s string) (EvidenceStrength, error) {
	switch s {
	case "strong":
		return StrengthStrong, nil
	case "moderate":
		return StrengthModerate, nil
	case "weak":
		return StrengthWeak, nil
	}
	return 0, fmt.Errorf("%w: unknown evidence strength %q", domain.ErrInvalidConfig, s)
}

// ParseRootCauseClarity parses the CLI/config spelling of a root-cause clarity.
func ParseRootCauseClarity(s string) (RootCauseClarity, error) {
	switch s {
	case "confirmed":
		return ClarityConfirmed, nil
	case "likely":
		return ClarityLikely, nil
	case "unclear":
		return ClarityUnclear, nil
	}
	return 0, fmt.Errorf("%w: unknown root-cause clarity %q", domain.ErrInvalidConfig, s)
}

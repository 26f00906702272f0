package domain

// TestOutcome classifies a single oracle probe.
type TestOutcome int

const (
	OutcomeUnknown TestOutcome = iota
	OutcomePass                // Probe passed (failure absent)
	OutcomeFail                // Probe failed (failure reproduced)
	OutcomeUnresolved          // Probe could not be classified (timeout, infra)
)

func (o TestOutcome) String() string {
	switch o {
	case OutcomePass:
		return "PASS"
	case OutcomeFail:
		return "FAIL"
	case OutcomeUnresolved:
		return "UNRESOLVED"
	default:
		return "UNKNOWN"
	}
}

// BisectVerdict classifies a commit probe during bisection.
type BisectVerdict int

const (
	VerdictUnknown BisectVerdict = iota
	VerdictGood                  // Commit predates the regression
	VerdictBad                   // Commit exhibits the regression
	VerdictSkip                  // Commit cannot be tested (untestable tree, infra)
)

func (v BisectVerdict) String() string {
	switch v {
	case VerdictGood:
		return "GOOD"
	case VerdictBad:
		return "BAD"
	case VerdictSkip:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// FunctionalOutcome classifies a functional probe of a variant.
type FunctionalOutcome int

const (
	FuncPass FunctionalOutcome = iota
	FuncWrongOutput
	FuncCrash
	FuncHang
)

func (o FunctionalOutcome) String() string {
	switch o {
	case FuncPass:
		return "PASS"
	case FuncWrongOutput:
		return "WRONG_OUTPUT"
	case FuncCrash:
		return "CRASH"
	case FuncHang:
		return "HANG"
	default:
		return "UNKNOWN"
	}
}

// Faulty reports whether the outcome indicates a functional failure.
func (o FunctionalOutcome) Faulty() bool {
	return o == FuncWrongOutput || o == FuncCrash || o == FuncHang
}

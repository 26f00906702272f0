package oracle

import (
	"strings"
	"sync"

	"github.com/example/faultline/domain"
)

// FakeOracle is a test double for ddmin oracles. It classifies
// candidates by script first, then by failing substrings, and records
// every call for probe-order assertions.
type FakeOracle struct {
	mu sync.Mutex

	// Script maps exact candidate texts to outcomes.
	Script map[string]domain.TestOutcome

	// FailIfContains marks a candidate Fail when it contains every
	// listed substring (and no Script entry matches).
	FailIfContains []string

	// Default is returned when nothing matches. Zero value is
	// OutcomeUnknown; most tests want OutcomePass.
	Default domain.TestOutcome

	// Calls records candidate texts in invocation order.
	Calls []string
}

// NewFakeOracle creates a fake that fails candidates containing all of
// the given substrings and passes everything else.
func NewFakeOracle(failIfContains ...string) *FakeOracle {
	return &FakeOracle{
		FailIfContains: failIfContains,
		Default:        domain.OutcomePass,
	}
}

// Test implements ddmin.Oracle.
func (f *FakeOracle) Test(candidate string) domain.TestOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, candidate)

	if outcome, ok := f.Script[candidate]; ok {
		return outcome
	}
	if len(f.FailIfContains) > 0 {
		all := true
		for _, s := range f.FailIfContains {
			if !strings.Contains(candidate, s) {
				all = false
				break
			}
		}
		if all {
			return domain.OutcomeFail
		}
	}
	return f.Default
}

// CallCount returns the number of oracle invocations so far.
func (f *FakeOracle) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// FakeBisectOracle is a test double for bisect oracles: commits at or
// beyond FirstBadIndex are Bad, earlier ones Good, with per-commit
// overrides for skips and inconsistent seeds.
type FakeBisectOracle struct {
	mu sync.Mutex

	// Commits is the ordered range the index cutoff refers to.
	Commits []domain.Commit

	// FirstBadIndex is the index of the first bad commit.
	FirstBadIndex int

	// Overrides maps commit IDs to fixed verdicts.
	Overrides map[domain.CommitID]domain.BisectVerdict

	// Calls records probed commit IDs in invocation order.
	Calls []domain.CommitID
}

// Test implements bisect.Oracle.
func (f *FakeBisectOracle) Test(id domain.CommitID) domain.BisectVerdict {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, id)

	if v, ok := f.Overrides[id]; ok {
		return v
	}
	idx := domain.FindCommit(f.Commits, id)
	if idx < 0 {
		return domain.VerdictSkip
	}
	if idx >= f.FirstBadIndex {
		return domain.VerdictBad
	}
	return domain.VerdictGood
}

// CallCount returns the number of oracle invocations so far.
func (f *FakeBisectOracle) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

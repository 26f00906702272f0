// Package ddmin implements the classical delta-debugging minimization
// algorithm (Zeller & Hildebrandt, 2002). Given a failing candidate and
// a test oracle, it shrinks the candidate to a 1-minimal reproducer:
// no single remaining unit can be removed without losing the failure.
package ddmin

import (
	"context"

	"github.com/example/faultline/domain"
)

// Oracle classifies a candidate text. It is the only side-effecting
// dependency of the minimizer and is assumed deterministic for the
// life of one Minimize call.
type Oracle interface {
	Test(candidate string) domain.TestOutcome
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(candidate string) domain.TestOutcome

func (f OracleFunc) Test(candidate string) domain.TestOutcome {
	return f(candidate)
}

// Minimizer runs ddmin. The zero value is ready to use; each Minimize
// call owns its own memo state, so a single Minimizer may be reused,
// but one call never invokes the oracle concurrently.
type Minimizer struct{}

// New creates a new Minimizer.
func New() *Minimizer {
	return &Minimizer{}
}

// run holds the per-call state of one minimization. It is owned by the
// call stack and never shared.
type run struct {
	oracle Oracle
	kind   domain.UnitKind

	// memo caches outcomes by candidate text so repeated probes of the
	// same text don't re-invoke the oracle.
	memo map[string]domain.TestOutcome

	// testRuns counts actual oracle invocations, not memo hits.
	testRuns int
}

// probe classifies the given units, consulting the memo first.
// The context is checked immediately before each oracle invocation;
// a cancelled context aborts without calling the oracle.
func (r *run) probe(ctx context.Context, units []string) (domain.TestOutcome, error) {
	text := domain.Candidate{Units: units, Kind: r.kind}.Text()
	if outcome, ok := r.memo[text]; ok {
		return outcome, nil
	}
	if err := ctx.Err(); err != nil {
		return domain.OutcomeUnknown, err
	}
	outcome := r.oracle.Test(text)
	r.memo[text] = outcome
	r.testRuns++
	return outcome, nil
}

// stillFails reports whether a probe outcome preserves the failure.
// Unresolved counts as not failing, so minimization never reduces
// into an ambiguous state.
func stillFails(o domain.TestOutcome) bool {
	return o == domain.OutcomeFail
}

// Minimize shrinks initial to a 1-minimal failing candidate.
//
// If the initial candidate does not fail, it is returned unchanged with
// a zero reduction ratio; that covers both "already passing" and
// "nothing to do" inputs and is not an error.
//
// On context cancellation the best reduction found so far is returned
// together with the context error.
func (m *Minimizer) Minimize(ctx context.Context, initial domain.Candidate, oracle Oracle) (*domain.MinimizationResult, error) {
	r := &run{
		oracle: oracle,
		kind:   initial.Kind,
		memo:   make(map[string]domain.TestOutcome),
	}

	outcome, err := r.probe(ctx, initial.Units)
	if err != nil {
		return result(initial, initial.Units, r.testRuns), err
	}
	if !stillFails(outcome) {
		return result(initial, initial.Units, r.testRuns), nil
	}

	units := initial.Units
	n := 2
	// Explicit work-list loop instead of the textbook recursion: each
	// successful reduction restarts with the reduced unit list and n=2,
	// which is exactly what the recursive formulation does.
	for len(units) >= 2 {
		if n > len(units) {
			n = len(units)
		}
		chunks := partition(units, n)

		next, err := r.subtract(ctx, units, chunks)
		if err != nil {
			return result(initial, units, r.testRuns), err
		}
		if next == nil {
			next, err = r.isolate(ctx, chunks)
			if err != nil {
				return result(initial, units, r.testRuns), err
			}
		}
		if next != nil {
			units = next
			n = 2
			continue
		}

		// Refine: neither phase reduced anything at this granularity.
		if n < len(units) {
			n *= 2
			if n > len(units) {
				n = len(units)
			}
			continue
		}
		// Granularity is already one unit per chunk: 1-minimal.
		break
	}

	return result(initial, units, r.testRuns), nil
}

// subtract probes each chunk's complement left to right and returns the
// first complement that still fails, or nil.
func (r *run) subtract(ctx context.Context, units []string, chunks [][]string) ([]string, error) {
	for i := range chunks {
		complement := make([]string, 0, len(units)-len(chunks[i]))
		for j, c := range chunks {
			if j != i {
				complement = append(complement, c...)
			}
		}
		outcome, err := r.probe(ctx, complement)
		if err != nil {
			return nil, err
		}
		if stillFails(outcome) {
			return complement, nil
		}
	}
	return nil, nil
}

// isolate probes each chunk on its own left to right and returns the
// first chunk that fails by itself, or nil.
func (r *run) isolate(ctx context.Context, chunks [][]string) ([]string, error) {
	for _, chunk := range chunks {
		outcome, err := r.probe(ctx, chunk)
		if err != nil {
			return nil, err
		}
		if stillFails(outcome) {
			return chunk, nil
		}
	}
	return nil, nil
}

// partition splits units into n near-equal chunks. The last chunk
// absorbs any remainder.
func partition(units []string, n int) [][]string {
	size := len(units) / n
	chunks := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		start := i * size
		end := start + size
		if i == n-1 {
			end = len(units)
		}
		chunks = append(chunks, units[start:end])
	}
	return chunks
}

func result(initial domain.Candidate, units []string, testRuns int) *domain.MinimizationResult {
	ratio := 0.0
	if len(initial.Units) > 0 {
		ratio = 1 - float64(len(units))/float64(len(initial.Units))
	}
	return &domain.MinimizationResult{
		Minimized:      initial.WithUnits(units),
		OriginalSize:   len(initial.Units),
		MinimizedSize:  len(units),
		TestRunCount:   testRuns,
		ReductionRatio: ratio,
	}
}

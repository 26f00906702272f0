// Package bisect binary-searches an ordered commit list for the
// good/bad boundary, driven by a caller-supplied commit oracle.
// Unlike git bisect it never guesses: if the boundary cannot be pinned
// to an adjacent pair (for example because every commit in the final
// gap was skipped), the search reports no result at all.
package bisect

import (
	"context"
	"fmt"

	"github.com/example/faultline/domain"
)

// Oracle classifies a single commit. Skip means the commit cannot be
// tested and is permanently excluded from the search.
type Oracle interface {
	Test(id domain.CommitID) domain.BisectVerdict
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(id domain.CommitID) domain.BisectVerdict

func (f OracleFunc) Test(id domain.CommitID) domain.BisectVerdict {
	return f(id)
}

// Bisector performs the search. The zero value is ready to use; all
// search state is local to one Bisect call.
type Bisector struct{}

// New creates a new Bisector.
func New() *Bisector {
	return &Bisector{}
}

// Bisect searches commits (ordered oldest to newest) for the boundary
// between good and bad. Both seeds are re-tested first: a seed that
// contradicts the oracle aborts the search with ErrInconsistentSeed
// rather than inferring a boundary from an inconsistent starting point.
//
// The returned result satisfies index(FirstBad) == index(LastGood)+1.
// O(log n) probes absent skips; skipped commits shrink the searchable
// pool monotonically, so the loop always terminates.
func (b *Bisector) Bisect(ctx context.Context, commits []domain.Commit, good, bad domain.CommitID, oracle Oracle) (*domain.BisectionResult, error) {
	if len(commits) < 2 {
		return nil, domain.ErrTooFewCommits
	}
	goodIdx := domain.FindCommit(commits, good)
	badIdx := domain.FindCommit(commits, bad)
	if goodIdx < 0 {
		return nil, fmt.Errorf("%w: good %s", domain.ErrUnknownCommit, good)
	}
	if badIdx < 0 {
		return nil, fmt.Errorf("%w: bad %s", domain.ErrUnknownCommit, bad)
	}
	if goodIdx >= badIdx {
		return nil, fmt.Errorf("%w: good %s is not older than bad %s", domain.ErrInconsistentSeed, good, bad)
	}

	s := &search{
		commits: commits,
		oracle:  oracle,
		tested:  make(map[int]domain.BisectVerdict),
	}

	// Verify the seeds before searching.
	if v, err := s.probe(ctx, goodIdx); err != nil {
		return nil, err
	} else if v != domain.VerdictGood {
		return nil, fmt.Errorf("%w: %s tested %s, want GOOD", domain.ErrInconsistentSeed, good, v)
	}
	if v, err := s.probe(ctx, badIdx); err != nil {
		return nil, err
	} else if v != domain.VerdictBad {
		return nil, fmt.Errorf("%w: %s tested %s, want BAD", domain.ErrInconsistentSeed, bad, v)
	}

	for {
		mid, ok := s.pickMidpoint(goodIdx, badIdx)
		if !ok {
			break
		}
		verdict, err := s.probe(ctx, mid)
		if err != nil {
			return nil, err
		}
		switch verdict {
		case domain.VerdictGood:
			goodIdx = mid
		case domain.VerdictBad:
			badIdx = mid
		default:
			// Skip: boundaries unchanged; the commit is recorded as
			// tested and never selected again.
		}
	}

	if badIdx != goodIdx+1 {
		return nil, fmt.Errorf("%w: gap of %d untestable commits between %s and %s",
			domain.ErrNoBoundary, badIdx-goodIdx-1, commits[goodIdx].ID, commits[badIdx].ID)
	}

	return &domain.BisectionResult{
		FirstBad:      commits[badIdx],
		LastGood:      commits[goodIdx],
		CommitsTested: len(s.history),
		TestResults:   append([]domain.CommitTest(nil), s.history...),
	}, nil
}

// search is the per-call state of one bisection.
type search struct {
	commits []domain.Commit
	oracle  Oracle
	tested  map[int]domain.BisectVerdict
	history []domain.CommitTest
}

// probe tests the commit at idx and records it in the audit history.
// The context is checked immediately before the oracle invocation.
func (s *search) probe(ctx context.Context, idx int) (domain.BisectVerdict, error) {
	if err := ctx.Err(); err != nil {
		return domain.VerdictUnknown, err
	}
	verdict := s.oracle.Test(s.commits[idx].ID)
	s.tested[idx] = verdict
	s.history = append(s.history, domain.CommitTest{Commit: s.commits[idx], Verdict: verdict})
	return verdict, nil
}

// pickMidpoint returns the positional midpoint of the untested commits
// strictly between the boundaries, or ok=false when none remain.
func (s *search) pickMidpoint(goodIdx, badIdx int) (int, bool) {
	var untested []int
	for i := goodIdx + 1; i < badIdx; i++ {
		if _, done := s.tested[i]; !done {
			untested = append(untested, i)
		}
	}
	if len(untested) == 0 {
		return 0, false
	}
	return untested[len(untested)/2], true
}

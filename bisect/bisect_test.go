package bisect

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/faultline/domain"
	"github.com/example/faultline/oracle"
)

func makeCommits(n int) []domain.Commit {
	commits := make([]domain.Commit, n)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range commits {
		commits[i] = domain.Commit{
			ID:        domain.CommitID(fmt.Sprintf("c%02d", i)),
			Index:     i,
			Subject:   fmt.Sprintf("commit %d", i),
			Author:    "dev@example.com",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return commits
}

func TestBisectFindsBoundary(t *testing.T) {
	commits := makeCommits(20)
	fake := &oracle.FakeBisectOracle{Commits: commits, FirstBadIndex: 12}

	result, err := New().Bisect(context.Background(), commits, commits[0].ID, commits[19].ID, fake)
	if err != nil {
		t.Fatalf("Bisect: %v", err)
	}

	if result.FirstBad.Index != 12 {
		t.Errorf("FirstBad.Index = %d, want 12", result.FirstBad.Index)
	}
	if result.LastGood.Index != 11 {
		t.Errorf("LastGood.Index = %d, want 11", result.LastGood.Index)
	}
	if result.FirstBad.Index != result.LastGood.Index+1 {
		t.Errorf("boundary not adjacent: good %d, bad %d", result.LastGood.Index, result.FirstBad.Index)
	}
	// 2 seed probes plus a binary search over 18 interior commits.
	if fake.CallCount() > 7 {
		t.Errorf("oracle called %d times, want <= 7 for 20 commits", fake.CallCount())
	}
	if result.CommitsTested != fake.CallCount() {
		t.Errorf("CommitsTested = %d, oracle saw %d calls", result.CommitsTested, fake.CallCount())
	}
	if len(result.TestResults) != result.CommitsTested {
		t.Errorf("len(TestResults) = %d, want %d", len(result.TestResults), result.CommitsTested)
	}
}

func TestBisectEveryBoundary(t *testing.T) {
	commits := makeCommits(9)
	for firstBad := 1; firstBad < len(commits); firstBad++ {
		t.Run(fmt.Sprintf("first bad %d", firstBad), func(t *testing.T) {
			fake := &oracle.FakeBisectOracle{Commits: commits, FirstBadIndex: firstBad}
			result, err := New().Bisect(context.Background(), commits, commits[0].ID, commits[8].ID, fake)
			if err != nil {
				t.Fatalf("Bisect: %v", err)
			}
			if result.FirstBad.Index != firstBad {
				t.Errorf("FirstBad.Index = %d, want %d", result.FirstBad.Index, firstBad)
			}
		})
	}
}

func TestBisectSkipNearBoundary(t *testing.T) {
	// A skipped commit away from the boundary must not change the result.
	commits := makeCommits(20)
	fake := &oracle.FakeBisectOracle{
		Commits:       commits,
		FirstBadIndex: 12,
		Overrides: map[domain.CommitID]domain.BisectVerdict{
			commits[13].ID: domain.VerdictSkip,
		},
	}

	result, err := New().Bisect(context.Background(), commits, commits[0].ID, commits[19].ID, fake)
	if err != nil {
		t.Fatalf("Bisect: %v", err)
	}
	if result.FirstBad.Index != 12 {
		t.Errorf("FirstBad.Index = %d, want 12", result.FirstBad.Index)
	}

	skips := 0
	for _, ct := range result.TestResults {
		if ct.Verdict == domain.VerdictSkip {
			skips++
			if ct.Commit.Index != 13 {
				t.Errorf("unexpected skip at index %d", ct.Commit.Index)
			}
		}
	}
	if skips != 1 {
		t.Errorf("skip probed %d times, want exactly once", skips)
	}
}

func TestBisectUntestableGap(t *testing.T) {
	// The commit adjacent to the boundary is untestable: the boundary
	// cannot be pinned and the search must say so rather than guess.
	commits := makeCommits(20)
	fake := &oracle.FakeBisectOracle{
		Commits:       commits,
		FirstBadIndex: 12,
		Overrides: map[domain.CommitID]domain.BisectVerdict{
			commits[11].ID: domain.VerdictSkip,
		},
	}

	_, err := New().Bisect(context.Background(), commits, commits[0].ID, commits[19].ID, fake)
	if !errors.Is(err, domain.ErrNoBoundary) {
		t.Fatalf("err = %v, want ErrNoBoundary", err)
	}
}

func TestBisectInconsistentSeeds(t *testing.T) {
	commits := makeCommits(10)

	tests := []struct {
		name      string
		overrides map[domain.CommitID]domain.BisectVerdict
	}{
		{
			"good seed tests bad",
			map[domain.CommitID]domain.BisectVerdict{commits[0].ID: domain.VerdictBad},
		},
		{
			"bad seed tests good",
			map[domain.CommitID]domain.BisectVerdict{commits[9].ID: domain.VerdictGood},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &oracle.FakeBisectOracle{Commits: commits, FirstBadIndex: 5, Overrides: tc.overrides}
			_, err := New().Bisect(context.Background(), commits, commits[0].ID, commits[9].ID, fake)
			if !errors.Is(err, domain.ErrInconsistentSeed) {
				t.Fatalf("err = %v, want ErrInconsistentSeed", err)
			}
		})
	}
}

func TestBisectArgumentErrors(t *testing.T) {
	commits := makeCommits(10)
	fake := &oracle.FakeBisectOracle{Commits: commits, FirstBadIndex: 5}

	tests := []struct {
		name    string
		commits []domain.Commit
		good    domain.CommitID
		bad     domain.CommitID
		want    error
	}{
		{"too few commits", commits[:1], commits[0].ID, commits[0].ID, domain.ErrTooFewCommits},
		{"unknown good", commits, "nope", commits[9].ID, domain.ErrUnknownCommit},
		{"unknown bad", commits, commits[0].ID, "nope", domain.ErrUnknownCommit},
		{"good not older than bad", commits, commits[7].ID, commits[2].ID, domain.ErrInconsistentSeed},
		{"good equals bad", commits, commits[4].ID, commits[4].ID, domain.ErrInconsistentSeed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Bisect(context.Background(), tc.commits, tc.good, tc.bad, fake)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
	if fake.CallCount() != 0 {
		t.Errorf("argument validation invoked the oracle %d times", fake.CallCount())
	}
}

func TestBisectAdjacentSeeds(t *testing.T) {
	commits := makeCommits(2)
	fake := &oracle.FakeBisectOracle{Commits: commits, FirstBadIndex: 1}

	result, err := New().Bisect(context.Background(), commits, commits[0].ID, commits[1].ID, fake)
	if err != nil {
		t.Fatalf("Bisect: %v", err)
	}
	if result.FirstBad.Index != 1 || result.LastGood.Index != 0 {
		t.Errorf("boundary = %d/%d, want 0/1", result.LastGood.Index, result.FirstBad.Index)
	}
	if result.CommitsTested != 2 {
		t.Errorf("CommitsTested = %d, want just the two seeds", result.CommitsTested)
	}
}

func TestBisectNeverRetestsCommit(t *testing.T) {
	commits := makeCommits(33)
	fake := &oracle.FakeBisectOracle{
		Commits:       commits,
		FirstBadIndex: 7,
		Overrides: map[domain.CommitID]domain.BisectVerdict{
			commits[8].ID:  domain.VerdictSkip,
			commits[16].ID: domain.VerdictSkip,
		},
	}

	if _, err := New().Bisect(context.Background(), commits, commits[0].ID, commits[32].ID, fake); err != nil {
		t.Fatalf("Bisect: %v", err)
	}

	seen := make(map[domain.CommitID]bool)
	for _, id := range fake.Calls {
		if seen[id] {
			t.Fatalf("commit %s probed twice", id)
		}
		seen[id] = true
	}
}

func TestBisectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	commits := makeCommits(10)
	fake := &oracle.FakeBisectOracle{Commits: commits, FirstBadIndex: 5}
	_, err := New().Bisect(ctx, commits, commits[0].ID, commits[9].ID, fake)
	if err == nil {
		t.Fatal("expected context error")
	}
	if fake.CallCount() != 0 {
		t.Errorf("oracle invoked %d times after cancellation", fake.CallCount())
	}
}

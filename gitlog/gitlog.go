// Package gitlog turns a git repository's linear history into the
// ordered commit list the bisector searches. It only reads the log;
// checking out trees for testing is the oracle command's business.
package gitlog

import (
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/example/faultline/domain"
)

// maxWalk bounds the first-parent walk so a bad ref pair cannot loop
// through an unexpectedly deep history forever.
const maxWalk = 100000

// Commits returns the first-parent commit chain from goodRef to badRef
// inclusive, ordered oldest to newest with Index set. goodRef must be
// an ancestor of badRef along the first-parent chain.
func Commits(repoPath, goodRef, badRef string) ([]domain.Commit, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository %s: %w", repoPath, err)
	}

	goodHash, err := resolve(repo, goodRef)
	if err != nil {
		return nil, err
	}
	badHash, err := resolve(repo, badRef)
	if err != nil {
		return nil, err
	}

	c, err := repo.CommitObject(badHash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", badHash, err)
	}

	// Walk newest to oldest, then reverse.
	var chain []domain.Commit
	for steps := 0; ; steps++ {
		if steps > maxWalk {
			return nil, fmt.Errorf("%w: %s not reachable from %s within %d first-parent steps",
				domain.ErrUnknownCommit, goodRef, badRef, maxWalk)
		}
		chain = append(chain, toDomain(c))
		if c.Hash == goodHash {
			break
		}
		if c.NumParents() == 0 {
			return nil, fmt.Errorf("%w: %s is not a first-parent ancestor of %s",
				domain.ErrUnknownCommit, goodRef, badRef)
		}
		c, err = c.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("reading parent of %s: %w", chain[len(chain)-1].ID, err)
		}
	}

	// Reverse to oldest-first and assign range indices.
	out := make([]domain.Commit, len(chain))
	for i := range chain {
		out[len(chain)-1-i] = chain[i]
		out[len(chain)-1-i].Index = len(chain) - 1 - i
	}
	return out, nil
}

func resolve(repo *git.Repository, ref string) (plumbing.Hash, error) {
	h, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving %q: %w", ref, err)
	}
	return *h, nil
}

func toDomain(c *object.Commit) domain.Commit {
	subject := c.Message
	if i := strings.IndexByte(subject, '\n'); i >= 0 {
		subject = subject[:i]
	}
	return domain.Commit{
		ID:        c.Hash.String(),
		Subject:   strings.TrimSpace(subject),
		Author:    c.Author.Name,
		Timestamp: c.Author.When,
	}
}

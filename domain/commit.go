package domain

import "time"

// CommitID is the unique identifier of a commit (git SHA or CL ID).
type CommitID = string

// Commit is a single commit in the ordered range under bisection.
type Commit struct {
	// ID is the unique identifier for the commit.
	ID CommitID

	// Index is the position in the commit range (0 = oldest).
	Index int

	// Subject is the commit message subject line.
	Subject string

	// Author is the commit author.
	Author string

	// Timestamp is the commit time.
	Timestamp time.Time
}

// CommitTest is one entry in the ordered bisection probe history.
type CommitTest struct {
	Commit  Commit
	Verdict BisectVerdict
}

// FindCommit returns the index of the commit with the given ID, or -1.
func FindCommit(commits []Commit, id CommitID) int {
	for i := range commits {
		if commits[i].ID == id {
			return i
		}
	}
	return -1
}

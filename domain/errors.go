package domain

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTooFewCommits is returned when a commit range is too small to bisect.
	ErrTooFewCommits = errors.New("too few commits to bisect")

	// ErrUnknownCommit is returned when a seed commit is not in the range.
	ErrUnknownCommit = errors.New("commit not in range")

	// ErrInconsistentSeed is returned when the oracle contradicts a seed:
	// the good commit does not test good, or the bad commit does not test bad.
	ErrInconsistentSeed = errors.New("inconsistent good/bad seed")

	// ErrNoBoundary is returned when bisection cannot produce an adjacent
	// good/bad pair, e.g. every commit in the remaining gap was skipped.
	ErrNoBoundary = errors.New("no exact boundary found")

	// ErrInsufficientSamples is returned when fewer usable timing samples
	// were collected than the configured sample count.
	ErrInsufficientSamples = errors.New("insufficient samples")

	// ErrTooFewVariants is returned when a sequence comparison has
	// fewer than two variants.
	ErrTooFewVariants = errors.New("too few variants to compare")

	// ErrNotFound is returned when a requested record doesn't exist.
	ErrNotFound = errors.New("not found")
)

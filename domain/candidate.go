package domain

import "strings"

// UnitKind identifies what the atomic units of a candidate are.
// The kind determines how units are reassembled into testable text.
type UnitKind int

const (
	UnitLines UnitKind = iota
	UnitTokens
	UnitChars
	UnitNodes // hierarchical nodes flattened to one unit per line
)

func (k UnitKind) String() string {
	switch k {
	case UnitLines:
		return "lines"
	case UnitTokens:
		return "tokens"
	case UnitChars:
		return "chars"
	case UnitNodes:
		return "nodes"
	default:
		return "unknown"
	}
}

// Separator returns the string used to join units back into text.
func (k UnitKind) Separator() string {
	switch k {
	case UnitLines, UnitNodes:
		return "\n"
	default:
		return ""
	}
}

// Candidate is an ordered sequence of atomic units that can be
// partitioned and reassembled during minimization.
type Candidate struct {
	Units []string
	Kind  UnitKind
}

// Len returns the number of units.
func (c Candidate) Len() int {
	return len(c.Units)
}

// Text reassembles the units into the text handed to the oracle.
func (c Candidate) Text() string {
	return strings.Join(c.Units, c.Kind.Separator())
}

// WithUnits returns a candidate of the same kind over different units.
func (c Candidate) WithUnits(units []string) Candidate {
	return Candidate{Units: units, Kind: c.Kind}
}

// CandidateFromLines splits text into a line-based candidate.
func CandidateFromLines(text string) Candidate {
	return Candidate{Units: strings.Split(text, "\n"), Kind: UnitLines}
}

// CandidateFromTokens splits text into a whitespace-token candidate.
// Reassembly is separator-free, so tokens should carry their own spacing
// if the failure depends on it.
func CandidateFromTokens(text string) Candidate {
	return Candidate{Units: strings.Fields(text), Kind: UnitTokens}
}

// CandidateFromChars splits text into a character-based candidate.
func CandidateFromChars(text string) Candidate {
	units := make([]string, 0, len(text))
	for _, r := range text {
		units = append(units, string(r))
	}
	return Candidate{Units: units, Kind: UnitChars}
}

package id

import (
	"github.com/google/uuid"
)

// New generates a new unique ID.
func New() string {
	return uuid.New().String()
}

// RunID generates a short run identifier prefixed with the run kind,
// e.g. "minimize-3f2a1b9c".
func RunID(kind string) string {
	return kind + "-" + uuid.New().String()[:8]
}

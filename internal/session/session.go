// Package session persists the state of an interactive bisection so a
// search can be inspected with `faultline status` and cleaned up with
// `faultline reset`.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/faultline/domain"
)

// Status values for a session.
const (
	StatusInitialized = "initialized"
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
)

// Session is the persistent record of one bisection.
type Session struct {
	ID          string                  `json:"id"`
	Repository  string                  `json:"repository"`
	GoodRef     string                  `json:"good_ref"`
	BadRef      string                  `json:"bad_ref"`
	TestCommand string                  `json:"test_command"`
	TestTimeout time.Duration           `json:"test_timeout"`
	Commits     []domain.Commit         `json:"commits"`
	Status      string                  `json:"status"`
	Error       string                  `json:"error,omitempty"`
	Result      *domain.BisectionResult `json:"result,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

const (
	sessionDir  = ".faultline"
	sessionFile = "session.json"
)

// Path returns the session file path for a repository.
func Path(repoPath string) string {
	return filepath.Join(repoPath, sessionDir, sessionFile)
}

// Load loads the session for a repository.
func Load(repoPath string) (*Session, error) {
	data, err := os.ReadFile(Path(repoPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no active session (run 'faultline bisect' to start one)")
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	return &s, nil
}

// Save writes the session to disk, stamping UpdatedAt.
func (s *Session) Save(repoPath string) error {
	s.UpdatedAt = time.Now().UTC()
	dir := filepath.Join(repoPath, sessionDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := os.WriteFile(Path(repoPath), data, 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Delete removes the session directory for a repository.
func Delete(repoPath string) error {
	if err := os.RemoveAll(filepath.Join(repoPath, sessionDir)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

package session

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/example/faultline/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := &Session{
		ID:          "bisect-1a2b3c4d",
		Repository:  dir,
		GoodRef:     "v1.4",
		BadRef:      "HEAD",
		TestCommand: "./test.sh",
		TestTimeout: 5 * time.Minute,
		Commits: []domain.Commit{
			{ID: "c00", Index: 0, Subject: "initial"},
			{ID: "c01", Index: 1, Subject: "second"},
		},
		Status:    StatusRunning,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(s, loaded); diff != "" {
		t.Errorf("session mismatch (-saved +loaded):\n%s", diff)
	}
	if loaded.UpdatedAt.IsZero() {
		t.Error("Save did not stamp UpdatedAt")
	}
}

func TestLoadMissingSession(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing session")
	}
	if !strings.Contains(err.Error(), "no active session") {
		t.Errorf("err = %v, want a no-active-session message", err)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	s := &Session{ID: "bisect-x", Status: StatusCompleted}
	if err := s.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Delete(dir); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("session still loadable after Delete")
	}

	// Deleting a missing session is not an error.
	if err := Delete(dir); err != nil {
		t.Fatalf("Delete of missing session: %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := &Session{ID: "bisect-x", Status: StatusRunning}
	if err := s.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s.Status = StatusFailed
	s.Error = "seed commit tested BAD"
	if err := s.Save(dir); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Status != StatusFailed || loaded.Error == "" {
		t.Errorf("overwrite not persisted: %+v", loaded)
	}
}

package cli

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/faultline/internal/storage/sqlite"
	"github.com/example/faultline/internal/ui"
	"github.com/example/faultline/pkg/id"
)

// signalContext returns a context cancelled by SIGINT/SIGTERM so a
// long oracle-driven search can be interrupted cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// recordRun persists a finished run to the sqlite store when --store
// is set. Persistence failures are reported but never fail the run:
// the result has already been printed. A fresh context is used so an
// interrupted search still gets recorded.
func recordRun(kind, summary string, record any, startedAt time.Time) {
	if storePath == "" {
		return
	}
	ctx := context.Background()
	store, err := sqlite.Open(storePath)
	if err != nil {
		ui.Warnf("run store unavailable: %v", err)
		return
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		ui.Warnf("run store migration failed: %v", err)
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		ui.Warnf("could not encode result: %v", err)
		return
	}
	run := &sqlite.Run{
		ID:         id.RunID(kind),
		Kind:       kind,
		Summary:    summary,
		Result:     data,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}
	if err := store.SaveRun(ctx, run); err != nil {
		ui.Warnf("could not persist run: %v", err)
		return
	}
	ui.Infof("recorded as %s", run.ID)
}

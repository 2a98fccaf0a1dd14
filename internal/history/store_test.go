package history_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"tnivo/internal/history"
	"tnivo/internal/testsupport"
)

func mustOpen(t *testing.T, opts ...testsupport.ConfigOption) *history.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func sampleRun(runID string) history.Run {
	started := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return history.Run{
		RunID:      runID,
		Mode:       "regex",
		Directory:  "/data/files",
		Pattern:    `^(.*)\..*$`,
		Moved:      3,
		Failed:     0,
		BytesMoved: 4096,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
	}
}

func TestRecordAndList(t *testing.T) {
	store := mustOpen(t)

	id, err := store.Record(context.Background(), sampleRun("run-1"))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id == 0 {
		t.Fatal("expected nonzero row id")
	}

	runs, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.RunID != "run-1" || got.Mode != "regex" || got.Moved != 3 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.StartedAt.Equal(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected started_at: %v", got.StartedAt)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := mustOpen(t)
	for i := 0; i < 5; i++ {
		if _, err := store.Record(context.Background(), sampleRun("run-"+strconv.Itoa(i))); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	runs, err := store.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != "run-4" || runs[1].RunID != "run-3" {
		t.Fatalf("expected newest first, got %s then %s", runs[0].RunID, runs[1].RunID)
	}
}

func TestRetentionPrunesOldRuns(t *testing.T) {
	store := mustOpen(t, testsupport.WithHistoryKeep(3))
	for i := 0; i < 6; i++ {
		if _, err := store.Record(context.Background(), sampleRun("run-"+strconv.Itoa(i))); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected retention to keep 3 runs, got %d", len(runs))
	}
	if runs[len(runs)-1].RunID != "run-3" {
		t.Fatalf("expected oldest surviving run to be run-3, got %s", runs[len(runs)-1].RunID)
	}
}

func TestPurge(t *testing.T) {
	store := mustOpen(t)
	for i := 0; i < 3; i++ {
		if _, err := store.Record(context.Background(), sampleRun("run-"+strconv.Itoa(i))); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	removed, err := store.Purge(context.Background())
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty history, got %d", len(runs))
	}
}

package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"storyboarder/internal/domain"
)

func initTestProject(t *testing.T) *ProjectHandle {
	t.Helper()
	ph, err := InitProject(t.TempDir(), domain.Storyboard{Title: "Snapshots"})
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	return ph
}

func TestInitOrOpenIndexCreatesDatabase(t *testing.T) {
	ph := initTestProject(t)
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := os.Stat(IndexPath(ph.Root)); err != nil {
		t.Fatalf("index file missing: %v", err)
	}
	var schema int
	if err := db.QueryRow(`SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
}

func TestBoardSnapshotRoundTrip(t *testing.T) {
	ph := initTestProject(t)
	ctx := context.Background()
	panels := domain.Panels{
		{ID: "p1", Number: 1, VisualDescription: "alley", Transition: domain.TransitionCut},
	}

	if err := SaveBoardSnapshot(ctx, ph, panels, "generate", time.Now()); err != nil {
		t.Fatalf("SaveBoardSnapshot: %v", err)
	}
	got, ts, err := LatestBoardSnapshot(ctx, ph)
	if err != nil {
		t.Fatalf("LatestBoardSnapshot: %v", err)
	}
	if ts.IsZero() {
		t.Fatalf("timestamp not recorded")
	}
	if len(got) != 1 || got[0].ID != "p1" || got[0].Transition != domain.TransitionCut {
		t.Fatalf("snapshot mismatch: %+v", got)
	}
}

func TestLatestBoardSnapshotEmptyIsNil(t *testing.T) {
	ph := initTestProject(t)
	got, _, err := LatestBoardSnapshot(context.Background(), ph)
	if err != nil {
		t.Fatalf("LatestBoardSnapshot: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for empty index, got %+v", got)
	}
}

func TestListAndPruneBoardSnapshots(t *testing.T) {
	ph := initTestProject(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		panels := domain.Panels{{ID: "p1", Number: i + 1}}
		if err := SaveBoardSnapshot(ctx, ph, panels, "step", base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("SaveBoardSnapshot %d: %v", i, err)
		}
	}

	infos, err := ListBoardSnapshots(ctx, ph, 3)
	if err != nil {
		t.Fatalf("ListBoardSnapshots: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("list = %d entries, want 3", len(infos))
	}
	if !infos[0].TS.After(infos[2].TS) {
		t.Fatalf("list not newest-first: %+v", infos)
	}

	n, err := PruneBoardSnapshots(ctx, ph, 2)
	if err != nil {
		t.Fatalf("PruneBoardSnapshots: %v", err)
	}
	if n != 3 {
		t.Fatalf("pruned %d rows, want 3", n)
	}
	infos, err = ListBoardSnapshots(ctx, ph, 10)
	if err != nil {
		t.Fatalf("ListBoardSnapshots after prune: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("kept %d snapshots, want 2", len(infos))
	}
	// The newest survives pruning.
	latest, _, err := LatestBoardSnapshot(ctx, ph)
	if err != nil {
		t.Fatalf("LatestBoardSnapshot: %v", err)
	}
	if latest[0].Number != 5 {
		t.Fatalf("latest snapshot = %+v, want number 5", latest[0])
	}
}

func TestExportPanelMediaWritesInlinePayloads(t *testing.T) {
	ph := initTestProject(t)
	panels := domain.Panels{
		{ID: "p1", Number: 1, ImageRef: domain.DataURI("image/png", []byte{1, 2, 3})},
		{ID: "p2", Number: 2, ImageRef: "https://example.com/remote.png"},
		{ID: "p3", Number: 3, VideoRef: domain.DataURI("video/mp4", []byte{4, 5})},
	}
	n, err := ExportPanelMedia(context.Background(), ph, panels)
	if err != nil {
		t.Fatalf("ExportPanelMedia: %v", err)
	}
	if n != 2 {
		t.Fatalf("wrote %d files, want 2 (remote refs are skipped)", n)
	}
	ents, err := os.ReadDir(ph.Root + "/" + MediaDirName)
	if err != nil {
		t.Fatalf("read media dir: %v", err)
	}
	if len(ents) != 2 {
		t.Fatalf("media dir holds %d files, want 2", len(ents))
	}
}

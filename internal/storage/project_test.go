package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyboarder/internal/domain"
	applog "storyboarder/internal/log"
)

func TestMain(m *testing.M) {
	applog.InitDiscard()
	m.Run()
}

func TestInitProjectCreatesStructureAndManifest(t *testing.T) {
	root := t.TempDir()
	board := domain.Storyboard{Title: "Test Board", Panels: domain.Panels{}}

	ph, err := InitProject(root, board)
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	if ph == nil || ph.ManifestPath == "" {
		t.Fatalf("invalid handle: %+v", ph)
	}

	b, err := os.ReadFile(ph.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var got domain.Storyboard
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if got.Title != board.Title {
		t.Fatalf("manifest title mismatch: got %q want %q", got.Title, board.Title)
	}

	for _, d := range []string{"script", "media", "exports", BackupsDirName} {
		p := filepath.Join(root, d)
		if fi, err := os.Stat(p); err != nil || !fi.IsDir() {
			t.Fatalf("expected directory %s to exist", p)
		}
	}
}

func TestSaveCreatesTimestampedBackup(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, domain.Storyboard{Title: "Backup Test"})
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}

	ph.Board.Style = "Film noir"
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	ents, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil {
		t.Fatalf("read backups dir: %v", err)
	}
	var bakCount int
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, ManifestFileName+".") && strings.HasSuffix(name, ".bak") {
			bakCount++
		}
	}
	if bakCount == 0 {
		t.Fatalf("expected at least one backup file, found 0")
	}
}

func TestOpenFallsBackToLatestBackupOnCorruption(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, domain.Storyboard{Title: "Open From Backup"})
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}

	// Force a backup to exist by saving
	ph.Board.Style = "touch"
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if err := os.WriteFile(ph.ManifestPath, []byte("{ this is not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}

	opened, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if opened.Board.Title != "Open From Backup" {
		t.Fatalf("opened title mismatch: got %q", opened.Board.Title)
	}
}

func TestOpenMissingProjectFails(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error opening nonexistent project")
	}
}

func TestManifestOmitsTransientMarkers(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, domain.Storyboard{
		Title: "Transient",
		Panels: domain.Panels{
			{ID: "p1", Number: 1, GeneratingImage: true, PlayingAudio: true},
		},
	})
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	b, err := os.ReadFile(ph.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if strings.Contains(string(b), "Generating") || strings.Contains(string(b), "PlayingAudio") {
		t.Fatalf("transient markers leaked into manifest: %s", b)
	}
	opened, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if opened.Board.Panels[0].GeneratingImage {
		t.Fatalf("transient marker deserialized as true")
	}
}

func TestAutosaveCrashSnapshotWritesFile(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, domain.Storyboard{Title: "Crash Snapshot"})
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}

	path, err := AutosaveCrashSnapshot(ph)
	if err != nil {
		t.Fatalf("AutosaveCrashSnapshot error: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var got domain.Storyboard
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if got.Title != "Crash Snapshot" {
		t.Fatalf("snapshot content mismatch: got %q", got.Title)
	}
}

package fsscan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flowcore/connio/conn"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("data-"+filepath.Base(path)), 0o644); err != nil {
		t.Fatalf("write %q: %v", path, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %q: %v", path, err)
	}
}

func TestScannerStaticModeInsertsInMtimePathOrder(t *testing.T) {
	dir := t.TempDir()
	base := time.Unix(1_700_000_000, 0)
	touch(t, filepath.Join(dir, "b.txt"), base.Add(1*time.Second))
	touch(t, filepath.Join(dir, "a.txt"), base)
	touch(t, filepath.Join(dir, "c.txt"), base.Add(2*time.Second))

	s, err := New(filepath.Join(dir, "*.txt"), "", Static, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	var order []string
	for i := 0; i < 3; i++ {
		result, err := s.NextAction()
		if err != nil {
			t.Fatalf("NextAction: %v", err)
		}
		if result == nil || !result.IsNewSource() {
			t.Fatalf("iteration %d: expected a NewSource result, got %+v", i, result)
		}
		path, ok := s.CurrentOffsetFile()
		if !ok {
			t.Fatalf("iteration %d: expected a current offset file", i)
		}
		order = append(order, filepath.Base(path))
	}

	want := []string{"a.txt", "b.txt", "c.txt"}
	for i, w := range want {
		if order[i] != w {
			t.Errorf("insertion order[%d] = %q, want %q (full order: %v)", i, order[i], w, order)
		}
	}

	result, err := s.NextAction()
	if err != nil {
		t.Fatalf("NextAction after exhaustion: %v", err)
	}
	if result != nil {
		t.Errorf("static mode must not find more insertions once exhausted, got %+v", result)
	}
}

func TestScannerStaticModeDoesNotTrackDeletions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	touch(t, path, time.Unix(1_700_000_000, 0))

	s, err := New(filepath.Join(dir, "*.txt"), "", Static, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if _, err := s.NextAction(); err != nil {
		t.Fatalf("NextAction: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	result, err := s.NextAction()
	if err != nil {
		t.Fatalf("NextAction after removal: %v", err)
	}
	if result != nil {
		t.Errorf("static mode must never surface a deletion, got %+v", result)
	}
	if s.PollingEnabled() || s.mode.DeletionsEnabled() {
		t.Error("static mode must report polling and deletions disabled")
	}
}

func TestScannerStreamingModeTracksModificationAsDeleteThenInsert(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	base := time.Unix(1_700_000_000, 0)
	touch(t, path, base)

	s, err := New(filepath.Join(dir, "*.txt"), "", Streaming, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	result, err := s.NextAction()
	if err != nil {
		t.Fatalf("initial NextAction: %v", err)
	}
	if result == nil || !result.IsNewSource() {
		t.Fatalf("expected initial insertion, got %+v", result)
	}
	if kind, ok := s.CurrentEventKind(); !ok || kind != conn.Insert {
		t.Errorf("expected the initial current event kind to be Insert, got %v (ok=%v)", kind, ok)
	}

	touch(t, path, base.Add(5*time.Second))

	delResult, err := s.NextAction()
	if err != nil {
		t.Fatalf("NextAction after modification: %v", err)
	}
	if delResult == nil || !delResult.IsNewSource() {
		t.Fatalf("expected a deletion surfaced as a NewSource result, got %+v", delResult)
	}
	kind, ok := s.CurrentEventKind()
	if !ok {
		t.Fatal("expected a current action after detecting a modification")
	}
	if kind != conn.Delete {
		t.Errorf("expected the current event kind to be Delete, got %v", kind)
	}
	if !s.HasPlannedInsertion() {
		t.Error("a modification must plan a reinsertion once the deletion half is consumed")
	}

	insResult, err := s.NextAction()
	if err != nil {
		t.Fatalf("NextAction for planned reinsertion: %v", err)
	}
	if insResult == nil || !insResult.IsNewSource() {
		t.Fatalf("expected the planned reinsertion, got %+v", insResult)
	}
	if s.HasPlannedInsertion() {
		t.Error("planned reinsertion must be cleared once consumed")
	}
	kind, ok = s.CurrentEventKind()
	if !ok || kind != conn.Insert {
		t.Errorf("after reinsertion the current event kind must be Insert, got %v (ok=%v)", kind, ok)
	}
}

func TestScannerStreamingModeDeletionPicksLexicographicallyGreatestPath(t *testing.T) {
	dir := t.TempDir()
	base := time.Unix(1_700_000_000, 0)
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	touch(t, pathA, base)
	touch(t, pathB, base)

	s, err := New(filepath.Join(dir, "*.txt"), "", Streaming, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	for i := 0; i < 2; i++ {
		if _, err := s.NextAction(); err != nil {
			t.Fatalf("initial insertion %d: %v", i, err)
		}
	}

	if err := os.Remove(pathA); err != nil {
		t.Fatalf("remove a.txt: %v", err)
	}
	if err := os.Remove(pathB); err != nil {
		t.Fatalf("remove b.txt: %v", err)
	}

	result, err := s.NextAction()
	if err != nil {
		t.Fatalf("NextAction for first deletion: %v", err)
	}
	if result == nil {
		t.Fatal("expected a deletion result")
	}
	offsetPath, ok := s.CurrentOffsetFile()
	if !ok {
		t.Fatal("expected a current offset file for the deletion")
	}
	if filepath.Base(offsetPath) != "b.txt" {
		t.Errorf("deletion must pick the lexicographically greatest path first, got %q", offsetPath)
	}
}

func TestScannerSeekToFileRestoresKnownFilesUpToTarget(t *testing.T) {
	dir := t.TempDir()
	base := time.Unix(1_700_000_000, 0)
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	pathC := filepath.Join(dir, "c.txt")
	touch(t, pathA, base)
	touch(t, pathB, base.Add(1*time.Second))
	touch(t, pathC, base.Add(2*time.Second))

	s, err := New(filepath.Join(dir, "*.txt"), "", Streaming, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if err := s.SeekToFile(pathB); err != nil {
		t.Fatalf("SeekToFile: %v", err)
	}

	if _, known := s.knownFiles[pathA]; !known {
		t.Error("SeekToFile must mark files at or before the seek target as known")
	}
	if _, known := s.knownFiles[pathB]; !known {
		t.Error("SeekToFile must mark the seek target itself as known")
	}
	if _, known := s.knownFiles[pathC]; known {
		t.Error("SeekToFile must not mark files after the seek target as known")
	}

	current, ok := s.CurrentOffsetFile()
	if !ok || filepath.Base(current) != "b.txt" {
		t.Errorf("SeekToFile must position current_action at the seek target, got %q", current)
	}
}

func TestScannerSeekToFileMissingTargetFallsBackGracefully(t *testing.T) {
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "*.txt"), "", Streaming, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if err := s.SeekToFile(filepath.Join(dir, "missing.txt")); err != nil {
		t.Fatalf("SeekToFile on a missing target must not error, got: %v", err)
	}
}

func TestScannerCacheDirectoryLifecycle(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"), time.Unix(1_700_000_000, 0))

	s, err := New(filepath.Join(dir, "*.txt"), "", Streaming, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.cacheDir == "" {
		t.Fatal("streaming mode must allocate a cache directory")
	}
	if s.ownedTmpDir != s.cacheDir {
		t.Error("without a persistent storage root, the cache dir must be an owned temp dir")
	}

	if _, err := s.NextAction(); err != nil {
		t.Fatalf("NextAction: %v", err)
	}
	cached, ok := s.cachedFilePath(filepath.Join(dir, "a.txt"))
	if !ok {
		t.Fatal("expected a cached file path once deletions are enabled")
	}
	if _, err := os.Stat(cached); err != nil {
		t.Errorf("expected the inserted file to be copied into the cache dir: %v", err)
	}

	tmpDir := s.ownedTmpDir
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(tmpDir); !os.IsNotExist(err) {
		t.Error("Close must remove an owned temp cache dir")
	}
}

func TestScannerPersistentStorageRootUsesDeterministicSubdir(t *testing.T) {
	root := t.TempDir()
	t.Setenv(PersistentStorageEnvVar, root)

	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "*.txt"), "", Streaming, "fixed-id")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	want := filepath.Join(root, "cache-fixed-id")
	if s.cacheDir != want {
		t.Errorf("cacheDir = %q, want %q", s.cacheDir, want)
	}
	if s.ownedTmpDir != "" {
		t.Error("a persistent-storage-rooted cache dir must not be treated as an owned temp dir")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(want); err != nil {
		t.Error("Close must leave a persistent-storage-rooted cache dir in place")
	}
}

func TestScannerObjectPatternFiltersRecursedFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	base := time.Unix(1_700_000_000, 0)
	touch(t, filepath.Join(sub, "keep.log"), base)
	touch(t, filepath.Join(sub, "skip.txt"), base)

	s, err := New(dir, "*.log", Static, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	matches, err := s.matchingFilePaths()
	if err != nil {
		t.Fatalf("matchingFilePaths: %v", err)
	}
	if len(matches) != 1 || filepath.Base(matches[0]) != "keep.log" {
		t.Errorf("matchingFilePaths = %v, want exactly [.../keep.log]", matches)
	}
}

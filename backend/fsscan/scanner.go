package fsscan

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connlog"
)

// PollInterval is how long the scanner sleeps between directory re-scans
// when polling is enabled and nothing new was found (spec.md §4.2 step 5).
const PollInterval = 500 * time.Millisecond

// PersistentStorageEnvVar names the environment variable this module reads
// to locate a durable cache root, renamed from the original
// PATHWAY_PERSISTENT_STORAGE per SPEC_FULL.md §6.
const PersistentStorageEnvVar = "CONNIO_PERSISTENT_STORAGE"

type actionKind int

const (
	actionRead actionKind = iota
	actionDelete
)

type scannerAction struct {
	kind actionKind
	path string
}

// Scanner is the filesystem change-tracking engine described by spec.md
// §3/§4.2. It is not safe for concurrent use: it is driven cooperatively,
// single-threaded, by the reader that owns it.
type Scanner struct {
	pattern       string
	objectPattern string
	mode          Mode

	cacheDir    string
	ownedTmpDir string // non-empty when this scanner allocated its own temp dir and must remove it on Close

	knownFiles        map[string]int64 // path -> modified unix seconds
	cachedModifyTimes map[string]time.Time
	cachedMetadata    map[string]conn.SourceMetadata

	currentAction *scannerAction

	nextFileForInsertion    string
	hasNextFileForInsertion bool
}

// New builds a scanner for pattern, recursing into directories with
// objectPattern (an empty objectPattern defaults to "*", matching every
// regular file). persistentID, when non-empty, names the cache
// subdirectory deterministically so it survives process restarts; when
// empty a random one is used for the lifetime of this scanner.
func New(pattern, objectPattern string, mode Mode, persistentID string) (*Scanner, error) {
	if objectPattern == "" {
		objectPattern = "*"
	}
	s := &Scanner{
		pattern:           pattern,
		objectPattern:     objectPattern,
		mode:              mode,
		knownFiles:        make(map[string]int64),
		cachedModifyTimes: make(map[string]time.Time),
		cachedMetadata:    make(map[string]conn.SourceMetadata),
	}

	if !mode.DeletionsEnabled() {
		return s, nil
	}

	if root, ok := os.LookupEnv(PersistentStorageEnvVar); ok {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("ensure persistent storage root %q: %w", root, err)
		}
		id := persistentID
		if id == "" {
			id = uuid.NewString()
		}
		dir := filepath.Join(root, "cache-"+id)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure cache dir %q: %w", dir, err)
		}
		s.cacheDir = dir
		return s, nil
	}

	tmp, err := os.MkdirTemp("", "connio-fscache-*")
	if err != nil {
		return nil, fmt.Errorf("create temporary cache dir: %w", err)
	}
	s.cacheDir = tmp
	s.ownedTmpDir = tmp
	return s, nil
}

// Close removes the scanner's own temporary cache directory, if it
// allocated one (a persistent-storage-rooted cache dir outlives the
// process and is left in place).
func (s *Scanner) Close() error {
	if s.ownedTmpDir == "" {
		return nil
	}
	return os.RemoveAll(s.ownedTmpDir)
}

// HasPlannedInsertion reports whether a modification's reinsertion half is
// still pending (spec.md §3 commit_allowed invariant).
func (s *Scanner) HasPlannedInsertion() bool { return s.hasNextFileForInsertion }

// PollingEnabled reports whether the scanner's mode re-scans after
// exhausting the directory tree.
func (s *Scanner) PollingEnabled() bool { return s.mode.PollingEnabled() }

// CurrentEventKind reports the event kind of the in-flight action.
func (s *Scanner) CurrentEventKind() (conn.EventKind, bool) {
	if s.currentAction == nil {
		return 0, false
	}
	if s.currentAction.kind == actionDelete {
		return conn.Delete, true
	}
	return conn.Insert, true
}

// CurrentFile returns the path whose bytes should be read: the original
// path for an insertion, the cached copy for a deletion (spec.md §4.2
// "current-file resolution").
func (s *Scanner) CurrentFile() (string, bool) {
	if s.currentAction == nil {
		return "", false
	}
	if s.currentAction.kind == actionRead {
		return s.currentAction.path, true
	}
	cached, ok := s.cachedFilePath(s.currentAction.path)
	return cached, ok
}

// CurrentOffsetFile returns the original source path regardless of action
// kind, used for offset emission.
func (s *Scanner) CurrentOffsetFile() (string, bool) {
	if s.currentAction == nil {
		return "", false
	}
	return s.currentAction.path, true
}

func (s *Scanner) cachedFilePath(path string) (string, bool) {
	if s.cacheDir == "" {
		return "", false
	}
	h := xxh3.HashString128(path)
	return filepath.Join(s.cacheDir, fmt.Sprintf("%016x%016x", h.Hi, h.Lo)), true
}

// SeekToFile restores known_files to the set of currently matching files
// that sort at or before seekPath under (mtime, path), and positions
// current_action to read seekPath next (spec.md §4.2 "Seek"). If seekPath
// no longer exists, it logs and proceeds as if no state existed — the
// next read will trigger a full re-scan.
func (s *Scanner) SeekToFile(seekPath string) error {
	s.knownFiles = make(map[string]int64)

	info, err := os.Stat(seekPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			connlog.Errorf(connlog.Name(seekPath), "seek target no longer exists, falling back to a full re-scan")
			return nil
		}
		return err
	}
	target := info.ModTime()

	matches, err := s.matchingFilePaths()
	if err != nil {
		return err
	}
	for _, entry := range matches {
		mtime, ok := s.modifyTime(entry)
		if !ok {
			continue
		}
		if lessOrEqualPair(mtime, entry, target, seekPath) {
			s.knownFiles[entry] = mtime.Unix()
		}
	}

	s.currentAction = &scannerAction{kind: actionRead, path: seekPath}
	return nil
}

func lessOrEqualPair(mtimeA time.Time, pathA string, mtimeB time.Time, pathB string) bool {
	if mtimeA.Unix() != mtimeB.Unix() {
		return mtimeA.Unix() < mtimeB.Unix()
	}
	return pathA <= pathB
}

// modifyTime resolves entry's modification time, memoizing it in
// cached_modify_times when deletions are disabled (no re-stat is needed
// because a file, once inserted, is never revisited) and re-statting it
// every call when deletions are enabled (a file's mtime can legitimately
// change between scans).
func (s *Scanner) modifyTime(entry string) (time.Time, bool) {
	if s.mode.DeletionsEnabled() {
		info, err := os.Stat(entry)
		if err != nil {
			return time.Time{}, false
		}
		return info.ModTime(), true
	}
	if t, ok := s.cachedModifyTimes[entry]; ok {
		return t, true
	}
	info, err := os.Stat(entry)
	if err != nil {
		return time.Time{}, false
	}
	s.cachedModifyTimes[entry] = info.ModTime()
	return info.ModTime(), true
}

// matchingFilePaths evaluates the top-level glob; for every matched
// directory it recurses one level via a "{dir}/**/{object_pattern}"-style
// walk collecting regular files only. No example in this module's
// reference pack ships a "**"-capable glob library, so recursion is
// implemented with fs.WalkDir matching object_pattern against each
// basename, which is the closest idiomatic stdlib equivalent.
func (s *Scanner) matchingFilePaths() ([]string, error) {
	topMatches, err := filepath.Glob(s.pattern)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, entry := range topMatches {
		info, err := os.Lstat(entry)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if info.Mode().IsRegular() {
				result = append(result, entry)
			}
			continue
		}
		walkErr := filepath.WalkDir(entry, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip unreadable entries, matching the teacher's "log and continue" style
			}
			if d.IsDir() {
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			ok, matchErr := filepath.Match(s.objectPattern, filepath.Base(p))
			if matchErr != nil {
				return matchErr
			}
			if ok {
				result = append(result, p)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}
	sort.Strings(result)
	return result, nil
}

// NextAction runs the event pump described by spec.md §4.2: it finalizes
// the previous action, resolves a pending reinsertion, then looks for a
// deletion before an insertion. It returns (nil, nil) when nothing is
// immediately available — the caller decides whether to poll or finish.
func (s *Scanner) NextAction() (*conn.ReadResult, error) {
	if s.currentAction != nil && s.currentAction.kind == actionDelete {
		prev := s.currentAction.path
		s.currentAction = nil
		if s.cacheDir != "" {
			cached, _ := s.cachedFilePath(prev)
			if err := os.Remove(cached); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if s.hasNextFileForInsertion {
		path := s.nextFileForInsertion
		s.nextFileForInsertion = ""
		s.hasNextFileForInsertion = false

		if _, err := os.Stat(path); err == nil {
			result, err := s.initiateFileInsertion(path)
			if err != nil {
				return nil, err
			}
			return &result, nil
		}
		result := conn.FinishedSourceResult(true)
		return &result, nil
	}

	if s.mode.DeletionsEnabled() {
		if result := s.nextDeletionEntry(); result != nil {
			return result, nil
		}
	}

	return s.nextInsertionEntry()
}

// nextDeletionEntry selects, among known files whose mtime changed or
// which vanished, the one with the lexicographically greatest path
// (spec.md §4.2 "Selection ordering"; the asymmetry against insertion's
// (mtime, path)-minimum rule is intentional and preserved, see
// SPEC_FULL.md / DESIGN.md).
func (s *Scanner) nextDeletionEntry() *conn.ReadResult {
	var selected string
	for path, modifiedAt := range s.knownFiles {
		needsDeletion := false
		info, err := os.Stat(path)
		if err != nil {
			needsDeletion = errors.Is(err, fs.ErrNotExist)
		} else if info.ModTime().Unix() != modifiedAt {
			needsDeletion = true
		}
		if !needsDeletion {
			continue
		}
		if selected == "" || path > selected {
			selected = path
		}
	}
	if selected == "" {
		return nil
	}

	oldMeta, ok := s.cachedMetadata[selected]
	if !ok {
		connlog.Errorf(connlog.Name(selected), "inconsistency between known_files and cached_metadata")
	}
	delete(s.cachedMetadata, selected)
	delete(s.knownFiles, selected)

	s.currentAction = &scannerAction{kind: actionDelete, path: selected}
	if _, err := os.Stat(selected); err == nil {
		s.nextFileForInsertion = selected
		s.hasNextFileForInsertion = true
	}

	var metaPtr *conn.SourceMetadata
	if ok {
		m := oldMeta
		metaPtr = &m
	}
	result := conn.NewSourceResult(metaPtr)
	return &result
}

// nextInsertionEntry selects, among unseen files with a resolvable mtime,
// the one minimizing (mtime, path) lexicographically (spec.md §4.2
// "Selection ordering").
func (s *Scanner) nextInsertionEntry() (*conn.ReadResult, error) {
	matches, err := s.matchingFilePaths()
	if err != nil {
		return nil, err
	}

	var selectedPath string
	var selectedMtime time.Time
	haveSelection := false

	for _, entry := range matches {
		if _, known := s.knownFiles[entry]; known {
			continue
		}
		mtime, ok := s.modifyTime(entry)
		if !ok {
			continue
		}
		if !haveSelection || lessPair(mtime, entry, selectedMtime, selectedPath) {
			selectedPath, selectedMtime, haveSelection = entry, mtime, true
		}
	}

	if !haveSelection {
		return nil, nil
	}
	result, err := s.initiateFileInsertion(selectedPath)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func lessPair(mtimeA time.Time, pathA string, mtimeB time.Time, pathB string) bool {
	if mtimeA.Unix() != mtimeB.Unix() {
		return mtimeA.Unix() < mtimeB.Unix()
	}
	return pathA < pathB
}

func (s *Scanner) initiateFileInsertion(path string) (conn.ReadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return conn.ReadResult{}, err
	}

	meta := conn.SourceMetadata{
		Path:       path,
		ModifiedAt: info.ModTime(),
		Size:       info.Size(),
		Seen:       info.ModTime(),
	}
	s.cachedMetadata[path] = meta
	s.knownFiles[path] = info.ModTime().Unix()

	if s.cacheDir != "" {
		if err := copyFile(path, mustCachedPath(s, path)); err != nil {
			return conn.ReadResult{}, err
		}
	}

	s.currentAction = &scannerAction{kind: actionRead, path: path}
	m := meta
	return conn.NewSourceResult(&m), nil
}

func mustCachedPath(s *Scanner, path string) string {
	p, _ := s.cachedFilePath(path)
	return p
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

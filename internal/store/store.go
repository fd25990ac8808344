// Package store owns the in-memory library document and its canonical JSON
// file: load-or-seed, save, import and export.
package store

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/promptlib/internal/db"
	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/logging"
)

// Journal records library snapshots before the document is replaced.
type Journal interface {
	Record(reason, source string, content []byte, valid bool) (string, error)
	Get(id string) (*db.Snapshot, error)
	List(limit, offset int) ([]db.Snapshot, error)
	Count() (int, error)
}

// Options configures a Store.
type Options struct {
	Paths Paths

	// Journal is optional; without it no snapshots are taken and unreadable
	// files are preserved as sidecar files instead.
	Journal Journal

	// PreserveCorrupt keeps the bytes of an unreadable library before it is
	// replaced by the seed.
	PreserveCorrupt bool

	Logger *zap.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Store is the single writer of the library document.
type Store struct {
	mu       sync.Mutex
	paths    Paths
	lib      *library.Library
	journal  Journal
	preserve bool
	log      *zap.Logger
	now      func() time.Time
}

// LoadResult describes what Load did.
type LoadResult struct {
	Path       string `json:"path" yaml:"path"`
	Seeded     bool   `json:"seeded" yaml:"seeded"`
	Backfilled bool   `json:"backfilled" yaml:"backfilled"`

	// Warning is set when an existing file was unusable and the seed was
	// used instead.
	Warning error `json:"-" yaml:"-"`

	// PreservedAs names the snapshot id or sidecar file holding the bytes of
	// an unusable file.
	PreservedAs string `json:"preserved_as,omitempty" yaml:"preserved_as,omitempty"`
}

// Open creates the data directories and returns a Store holding an empty
// document. Call Load to read the canonical file. A directory creation error
// is the one failure that should stop the program.
func Open(opts Options) (*Store, error) {
	if err := opts.Paths.Ensure(); err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		paths:    opts.Paths,
		lib:      library.Empty(),
		journal:  opts.Journal,
		preserve: opts.PreserveCorrupt,
		log:      logging.OrNop(opts.Logger),
		now:      now,
	}, nil
}

// Paths returns the resolved locations.
func (s *Store) Paths() Paths {
	return s.paths
}

// Journal returns the snapshot journal, which may be nil.
func (s *Store) Journal() Journal {
	return s.journal
}

// Library returns a copy of the current document.
func (s *Store) Library() *library.Library {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib.Clone()
}

// View calls fn with the current document under the store lock. fn must not
// retain or modify the document.
func (s *Store) View(fn func(*library.Library) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.lib)
}

// Load reads the canonical file into memory.
//
// A missing file is replaced by the seed, which is persisted immediately. A
// file that cannot be read, parsed or validated is reported through
// LoadResult.Warning and the seed is used instead. Missing checkpoint fields
// are backfilled in memory only. The returned error is non-nil only when
// persisting the seed failed; the seed is still loaded in that case.
func (s *Store) Load() (*LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &LoadResult{Path: s.paths.LibraryPath}

	data, err := os.ReadFile(s.paths.LibraryPath)
	if stderrors.Is(err, os.ErrNotExist) {
		s.log.Info("library file not found, writing seed", zap.String("path", s.paths.LibraryPath))
		result.Seeded = true
		return result, s.useSeed()
	}
	if err != nil {
		// Unreadable but present: do not overwrite what we could not read.
		result.Seeded = true
		result.Warning = errors.NewIO("read library", err)
		s.log.Warn("could not read library, using seed in memory", zap.String("path", s.paths.LibraryPath), zap.Error(err))
		s.lib = library.Seed()
		return result, nil
	}

	lib, loadErr := decodeLibrary(data, s.paths.LibraryPath)
	if loadErr != nil {
		result.Seeded = true
		result.Warning = loadErr
		s.log.Warn("existing library is unusable, falling back to seed",
			zap.String("path", s.paths.LibraryPath), zap.Error(loadErr))
		if s.preserve {
			result.PreservedAs = s.preserveCorrupt(data)
		}
		return result, s.useSeed()
	}

	result.Backfilled = lib.Backfill()
	s.lib = lib
	return result, nil
}

// useSeed installs and persists a fresh seed document.
func (s *Store) useSeed() error {
	seed := library.Seed()
	s.lib = seed
	return s.write(seed)
}

// preserveCorrupt stores raw bytes of an unusable library in the journal, or
// next to the canonical file when there is no journal.
func (s *Store) preserveCorrupt(data []byte) string {
	if s.journal != nil {
		id, err := s.journal.Record(db.ReasonCorrupt, s.paths.LibraryPath, data, false)
		if err == nil {
			s.log.Warn("preserved unusable library in snapshot journal", zap.String("snapshot", id))
			return id
		}
		s.log.Error("failed to snapshot unusable library", zap.Error(err))
	}
	name := fmt.Sprintf("library.corrupt-%s.json", s.now().Format("20060102-150405"))
	sidecar := filepath.Join(s.paths.DataDir, name)
	if err := writeFileAtomic(sidecar, data, 0600); err != nil {
		s.log.Error("failed to preserve unusable library", zap.String("path", sidecar), zap.Error(err))
		return ""
	}
	s.log.Warn("preserved unusable library", zap.String("path", sidecar))
	return sidecar
}

// Save persists the current in-memory document.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(s.lib)
}

// SaveDocument validates and persists doc to the canonical path without
// changing the in-memory document.
func (s *Store) SaveDocument(doc *library.Library) error {
	if err := library.ValidateLibrary(doc); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(doc)
}

// write must be called with s.mu held.
func (s *Store) write(doc *library.Library) error {
	data, err := library.Encode(doc)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := writeFileAtomic(resolveTarget(s.paths.LibraryPath), data, 0600); err != nil {
		return errors.NewIO("write library", err)
	}
	s.log.Debug("library saved", zap.String("path", s.paths.LibraryPath), zap.Int("bytes", len(data)))
	return nil
}

// Update applies fn to a copy of the document, validates the result,
// persists it and only then makes it current. On any error the in-memory
// document and the file are left as they were.
func (s *Store) Update(fn func(*library.Library) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.lib.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := library.ValidateLibrary(next); err != nil {
		return err
	}
	if err := s.write(next); err != nil {
		return err
	}
	s.lib = next
	return nil
}

// ReplaceResult describes a whole-document replacement.
type ReplaceResult struct {
	Previous   library.Counts `json:"previous" yaml:"previous"`
	Current    library.Counts `json:"current" yaml:"current"`
	SnapshotID string         `json:"snapshot_id,omitempty" yaml:"snapshot_id,omitempty"`
}

// Replace swaps in next after snapshotting the current document under
// reason. source names where next came from, for the journal.
func (s *Store) Replace(reason, source string, next *library.Library) (*ReplaceResult, error) {
	if err := library.ValidateLibrary(next); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &ReplaceResult{
		Previous: s.lib.Counts(),
		Current:  next.Counts(),
	}

	if s.journal != nil {
		current, err := library.Encode(s.lib)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		id, err := s.journal.Record(reason, source, current, true)
		if err != nil {
			return nil, err
		}
		result.SnapshotID = id
	}

	if err := s.write(next); err != nil {
		return nil, err
	}
	s.lib = next.Clone()
	s.log.Info("library replaced", zap.String("reason", reason), zap.String("source", source),
		zap.String("snapshot", result.SnapshotID))
	return result, nil
}

// decodeLibrary parses, validates and types raw library bytes.
func decodeLibrary(data []byte, source string) (*library.Library, error) {
	raw, err := library.Parse(data)
	if err != nil {
		return nil, errors.NewParse(source, err)
	}
	return decodeValue(raw)
}

func decodeValue(raw any) (*library.Library, error) {
	if err := library.Validate(raw); err != nil {
		return nil, err
	}
	lib, err := library.FromValue(raw)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return lib, nil
}

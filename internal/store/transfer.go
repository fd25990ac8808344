package store

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hpungsan/promptlib/internal/db"
	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
)

// ImportResult describes a completed import.
type ImportResult struct {
	Path          string `json:"path" yaml:"path"`
	ReplaceResult `yaml:",inline"`
}

// ReadCandidate reads path and returns the validated, backfilled document it
// holds.
func ReadCandidate(path string) (*library.Library, error) {
	if path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewFileNotFound(path)
		}
		return nil, errors.NewIO("read import file", err)
	}
	return DecodeDocument(data, path)
}

// DecodeDocument applies the import rules to raw bytes: parse, unwrap a
// top-level "data" member (an export envelope), validate and backfill.
func DecodeDocument(data []byte, source string) (*library.Library, error) {
	raw, err := library.Parse(data)
	if err != nil {
		return nil, errors.NewParse(source, err)
	}
	lib, err := decodeValue(library.Unwrap(raw))
	if err != nil {
		return nil, err
	}
	lib.Backfill()
	return lib, nil
}

// Import replaces the current document with the one in path. On any failure
// the current document is unchanged.
func (s *Store) Import(path string) (*ImportResult, error) {
	lib, err := ReadCandidate(path)
	if err != nil {
		s.log.Warn("import rejected", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	res, err := s.Replace(db.ReasonImport, path, lib)
	if err != nil {
		return nil, err
	}
	return &ImportResult{Path: path, ReplaceResult: *res}, nil
}

// ExportResult describes a completed export.
type ExportResult struct {
	Path       string         `json:"path" yaml:"path"`
	ExportedAt string         `json:"exported_at" yaml:"exported_at"`
	Counts     library.Counts `json:"counts" yaml:"counts"`
}

// Export writes the current document wrapped in an envelope to path, or to
// a timestamped file in the exports directory when path is empty. Neither the
// in-memory document nor the canonical file is touched.
func (s *Store) Export(path string) (*ExportResult, error) {
	now := s.now()
	if path == "" {
		path = filepath.Join(s.paths.ExportsDir, fmt.Sprintf("%s-%s.json", library.AppName, now.Format("20060102-150405")))
	}

	if info, err := os.Lstat(path); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return nil, errors.NewInvalidRequest("export path must not be a symlink")
		}
		if info.IsDir() {
			return nil, errors.NewInvalidRequest("export path is a directory")
		}
	}

	lib := s.Library()
	exportedAt := library.Timestamp(now)
	data, err := library.MarshalIndent(library.NewEnvelope(lib, exportedAt))
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := writeFileAtomic(path, data, 0600); err != nil {
		return nil, errors.NewIO("write export", err)
	}

	s.log.Info("library exported", zap.String("path", path))
	return &ExportResult{
		Path:       path,
		ExportedAt: exportedAt,
		Counts:     lib.Counts(),
	}, nil
}

package ops

import (
	"os"

	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// StatsOutput describes the library and where it lives.
type StatsOutput struct {
	LibraryPath string         `json:"library_path" yaml:"library_path"`
	DataDir     string         `json:"data_dir" yaml:"data_dir"`
	ExportsDir  string         `json:"exports_dir" yaml:"exports_dir"`
	FileBytes   int64          `json:"file_bytes" yaml:"file_bytes"`
	Counts      library.Counts `json:"counts" yaml:"counts"`
	Snapshots   *int           `json:"snapshots,omitempty" yaml:"snapshots,omitempty"`
}

// Stats returns collection counts and storage locations.
func Stats(s *store.Store) (*StatsOutput, error) {
	paths := s.Paths()
	out := &StatsOutput{
		LibraryPath: paths.LibraryPath,
		DataDir:     paths.DataDir,
		ExportsDir:  paths.ExportsDir,
	}
	_ = s.View(func(l *library.Library) error {
		out.Counts = l.Counts()
		return nil
	})
	if info, err := os.Stat(paths.LibraryPath); err == nil {
		out.FileBytes = info.Size()
	}
	if journal := s.Journal(); journal != nil {
		n, err := journal.Count()
		if err != nil {
			return nil, err
		}
		out.Snapshots = &n
	}
	return out, nil
}

package ops

import (
	"github.com/hpungsan/promptlib/internal/config"
	"github.com/hpungsan/promptlib/internal/store"
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string

	// Restricted applies ValidatePath; set for paths from MCP clients.
	Restricted bool
}

// Import replaces the library with the document in a file. The file may be
// a bare library or an export envelope.
func Import(s *store.Store, cfg *config.Config, input ImportInput) (*store.ImportResult, error) {
	if input.Restricted {
		if err := ValidatePath(input.Path, PathCheckRead, s.Paths().ExportsDir, cfg); err != nil {
			return nil, err
		}
	}
	return s.Import(input.Path)
}

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path string // optional, default: <data dir>/exports/promptlib-<timestamp>.json

	// Restricted applies ValidatePath; set for paths from MCP clients.
	Restricted bool
}

// Export writes the library wrapped in an export envelope.
func Export(s *store.Store, cfg *config.Config, input ExportInput) (*store.ExportResult, error) {
	if input.Restricted && input.Path != "" {
		if err := ValidatePath(input.Path, PathCheckWrite, s.Paths().ExportsDir, cfg); err != nil {
			return nil, err
		}
	}
	return s.Export(input.Path)
}

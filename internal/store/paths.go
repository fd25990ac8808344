package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Names inside the data directory.
const (
	AppDirName      = "promptlib"
	LibraryFileName = "library.json"
	ExportsDirName  = "exports"
)

// Paths holds the resolved on-disk locations.
type Paths struct {
	DataDir     string
	LibraryPath string
	ExportsDir  string
}

// ResolvePaths returns the per-user locations. A non-empty override is used
// as the data directory verbatim; otherwise $XDG_DATA_HOME/promptlib, or the
// platform's conventional user data directory.
func ResolvePaths(override string) (Paths, error) {
	dataDir := override
	if dataDir == "" {
		base, err := userDataDir()
		if err != nil {
			return Paths{}, err
		}
		dataDir = filepath.Join(base, AppDirName)
	}
	return PathsIn(dataDir), nil
}

// PathsIn returns the layout rooted at dataDir.
func PathsIn(dataDir string) Paths {
	return Paths{
		DataDir:     dataDir,
		LibraryPath: filepath.Join(dataDir, LibraryFileName),
		ExportsDir:  filepath.Join(dataDir, ExportsDirName),
	}
}

// Ensure creates the data and exports directories. Safe to call on every start.
func (p Paths) Ensure() error {
	if err := os.MkdirAll(p.DataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(p.ExportsDir, 0700); err != nil {
		return fmt.Errorf("failed to create exports directory: %w", err)
	}
	return nil
}

func userDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg, nil
	}
	switch runtime.GOOS {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return local, nil
		}
		return os.UserConfigDir()
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
)

// Config holds application configuration.
type Config struct {
	// SnapshotKeep is how many library snapshots the journal retains.
	SnapshotKeep int `json:"snapshot_keep"`

	// PreserveCorrupt keeps the bytes of an unreadable library file in the
	// snapshot journal before the seed replaces it. Pointer so that an
	// explicit false in an overlay can turn it off.
	PreserveCorrupt *bool `json:"preserve_corrupt,omitempty"`

	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string `json:"log_level,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// AllowedPaths are extra directories MCP import/export may use besides
	// the exports directory. Only absolute paths are honored.
	AllowedPaths []string `json:"allowed_paths,omitempty"`

	// AllowUnsafePaths lifts the directory restriction on MCP import/export.
	// Symlinks are still rejected.
	AllowUnsafePaths bool `json:"allow_unsafe_paths,omitempty"`

	// WebBind is the address the web UI listens on.
	WebBind string `json:"web_bind,omitempty"`

	// WebPort is the port the web UI listens on.
	WebPort int `json:"web_port,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	preserve := true
	return &Config{
		SnapshotKeep:    20,
		PreserveCorrupt: &preserve,
		LogLevel:        "warn",
		WebBind:         "127.0.0.1",
		WebPort:         8765,
	}
}

// ShouldPreserveCorrupt reports the effective preserve_corrupt setting.
func (c *Config) ShouldPreserveCorrupt() bool {
	if c == nil || c.PreserveCorrupt == nil {
		return true
	}
	return *c.PreserveCorrupt
}

// FileName is the configuration file inside the data directory.
const FileName = "config.json"

// EnvPrefix prefixes environment variables that override config.json.
const EnvPrefix = "PROMPTLIB_"

// Load reads dataDir/config.json over the defaults, then applies
// PROMPTLIB_* environment overrides. A missing file is not an error.
func Load(dataDir string) (*Config, error) {
	file, err := loadFile(filepath.Join(dataDir, FileName))
	if err != nil {
		return nil, err
	}
	env, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	return Merge(Merge(DefaultConfig(), file), env), nil
}

// loadFile returns the zero Config when path does not exist.
func loadFile(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.SnapshotKeep < 0 {
		return nil, fmt.Errorf("%s: snapshot_keep must not be negative", path)
	}
	return cfg, nil
}

// FromEnv builds an overlay from PROMPTLIB_LOG_LEVEL, PROMPTLIB_SNAPSHOT_KEEP,
// PROMPTLIB_PRESERVE_CORRUPT, PROMPTLIB_WEB_BIND and PROMPTLIB_WEB_PORT.
// Unset variables leave their field zero.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		LogLevel: getenv(EnvPrefix + "LOG_LEVEL"),
		WebBind:  getenv(EnvPrefix + "WEB_BIND"),
	}

	var err error
	if v := getenv(EnvPrefix + "SNAPSHOT_KEEP"); v != "" {
		if cfg.SnapshotKeep, err = cast.ToIntE(v); err != nil || cfg.SnapshotKeep < 0 {
			return nil, fmt.Errorf("%sSNAPSHOT_KEEP: invalid count %q", EnvPrefix, v)
		}
	}
	if v := getenv(EnvPrefix + "WEB_PORT"); v != "" {
		if cfg.WebPort, err = cast.ToIntE(v); err != nil {
			return nil, fmt.Errorf("%sWEB_PORT: invalid port %q", EnvPrefix, v)
		}
	}
	if v := getenv(EnvPrefix + "PRESERVE_CORRUPT"); v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, fmt.Errorf("%sPRESERVE_CORRUPT: invalid bool %q", EnvPrefix, v)
		}
		cfg.PreserveCorrupt = &b
	}
	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.SnapshotKeep = overlay.SnapshotKeep
	if result.SnapshotKeep == 0 {
		result.SnapshotKeep = base.SnapshotKeep
	}

	result.LogLevel = strings.TrimSpace(overlay.LogLevel)
	if result.LogLevel == "" {
		result.LogLevel = base.LogLevel
	}

	result.WebBind = strings.TrimSpace(overlay.WebBind)
	if result.WebBind == "" {
		result.WebBind = base.WebBind
	}

	result.WebPort = overlay.WebPort
	if result.WebPort == 0 {
		result.WebPort = base.WebPort
	}

	result.AllowUnsafePaths = base.AllowUnsafePaths || overlay.AllowUnsafePaths

	result.PreserveCorrupt = overlay.PreserveCorrupt
	if result.PreserveCorrupt == nil {
		result.PreserveCorrupt = base.PreserveCorrupt
	}

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.AllowedPaths = mergeStringSlice(base.AllowedPaths, overlay.AllowedPaths)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, list := range [][]string{a, b} {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s != "" && !seen[s] {
				seen[s] = true
				result = append(result, s)
			}
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/agm/pkg/errors"
)

// Environment variable names
const (
	// EnvAgmDataDir overrides the XDG data directory for agm
	EnvAgmDataDir = "AGM_DATA_DIR"

	// EnvAgmConfigDir overrides the XDG config directory for agm
	EnvAgmConfigDir = "AGM_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define agm's on-disk record layout and are NOT
// user-configurable. User-configurable settings belong in pkg/config.
const (
	// AppDirName is the directory name for agm-specific files
	AppDirName = "AGM"

	// ProfilesDir holds one <profile>.yaml per game
	ProfilesDir = "profiles"

	// PresetsDir holds presets/<game>/<preset>.yaml
	PresetsDir = "presets"

	// StorageDir holds storage/<game>/<mod>/ with extracted mod files
	StorageDir = "storage"

	// StateDir holds state/<game>.yaml
	StateDir = "state"

	// RecordExt is the extension of every persisted record
	RecordExt = ".yaml"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"
)

// Paths provides centralized path management for agm
type Paths interface {
	DataDir() string
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	ProfilesDir() string
	ProfilePath(name string) string
	GamePresetsDir(game string) string
	PresetPath(game, preset string) string
	GameStorageDir(game string) string
	ModDir(game, mod string) string
	ModSpecPath(game, mod string) string
	GameStatePath(game string) string
	NormalizePath(path string) (string, error)
}

// paths provides centralized path management for agm
type paths struct {
	// xdgData is the XDG data directory
	xdgData string

	// xdgConfig is the XDG config directory
	xdgConfig string
}

// New creates a new Paths instance. If dataDir is empty it is determined from
// AGM_DATA_DIR or the XDG data home.
func New(dataDir string) (Paths, error) {
	p := &paths{}

	if dataDir == "" {
		if env := os.Getenv(EnvAgmDataDir); env != "" {
			dataDir = env
		} else {
			dataDir = filepath.Join(xdg.DataHome, AppDirName)
		}
	}

	abs, err := filepath.Abs(expandHome(dataDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for data dir")
	}
	p.xdgData = abs

	if configDir := os.Getenv(EnvAgmConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	return p, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// DataDir returns the XDG data directory for agm
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for agm
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFilePath returns the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// getDataSubdir returns a subdirectory path under the data directory.
func (p *paths) getDataSubdir(name string) string {
	return filepath.Join(p.xdgData, name)
}

// StateDir returns the directory holding per-game state records
func (p *paths) StateDir() string {
	return p.getDataSubdir(StateDir)
}

// ProfilesDir returns the directory holding profile records
func (p *paths) ProfilesDir() string {
	return p.getDataSubdir(ProfilesDir)
}

// ProfilePath returns the record file for a profile
func (p *paths) ProfilePath(name string) string {
	return filepath.Join(p.ProfilesDir(), name+RecordExt)
}

// GamePresetsDir returns the directory holding a game's presets
func (p *paths) GamePresetsDir(game string) string {
	return filepath.Join(p.getDataSubdir(PresetsDir), game)
}

// PresetPath returns the record file for a preset
func (p *paths) PresetPath(game, preset string) string {
	return filepath.Join(p.GamePresetsDir(game), preset+RecordExt)
}

// GameStorageDir returns the directory holding a game's installed mods
func (p *paths) GameStorageDir(game string) string {
	return filepath.Join(p.getDataSubdir(StorageDir), game)
}

// ModDir returns the storage directory of one mod
func (p *paths) ModDir(game, mod string) string {
	return filepath.Join(p.GameStorageDir(game), mod)
}

// ModSpecPath returns the sidecar manifest of a mod. The sidecar lives
// inside the mod's storage directory and is named after the mod.
func (p *paths) ModSpecPath(game, mod string) string {
	return filepath.Join(p.ModDir(game, mod), SidecarName(mod))
}

// GameStatePath returns the state record of a game
func (p *paths) GameStatePath(game string) string {
	return filepath.Join(p.StateDir(), game+RecordExt)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// SidecarName is the file name of a mod's manifest
func SidecarName(mod string) string {
	return mod + RecordExt
}

// ValidateName rejects record names that cannot be used as a single path
// component.
func ValidateName(kind, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Newf(errors.ErrInvalidInput, "%s name must not be empty", kind)
	case name == "." || name == "..":
		return errors.Newf(errors.ErrInvalidInput, "invalid %s name %q", kind, name)
	case strings.ContainsAny(name, `/\`):
		return errors.Newf(errors.ErrInvalidInput, "%s name %q must not contain path separators", kind, name)
	}
	return nil
}

// IsWithin reports whether target is root itself or lies beneath it
func IsWithin(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments with proper dependencies

package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agm/pkg/datastore"
	"github.com/arthur-debert/agm/pkg/filesystem"
	"github.com/arthur-debert/agm/pkg/paths"
	"github.com/arthur-debert/agm/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// DataDir holds agm's records
	DataDir string
	// GamesDir holds one install directory per game
	GamesDir string
	// ConfigFile is where the environment's config.toml would live
	ConfigFile string

	DataStore datastore.DataStore
	FS        types.FS
	Paths     paths.Paths

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.DataDir = "/virtual/data/AGM"
		env.GamesDir = "/virtual/games"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		tempDir := t.TempDir()
		env.DataDir = filepath.Join(tempDir, "data", "AGM")
		env.GamesDir = filepath.Join(tempDir, "games")
		env.FS = filesystem.NewOS()
		t.Setenv("AGM_CONFIG_DIR", filepath.Join(tempDir, "config"))
		t.Setenv("XDG_STATE_HOME", filepath.Join(tempDir, "state"))
	}

	for _, dir := range []string{env.DataDir, env.GamesDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	p, err := paths.New(env.DataDir)
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p
	env.ConfigFile = p.ConfigFilePath()
	env.DataStore = datastore.New(env.FS, p)

	return env
}

// GamePath is the install directory of game
func (env *TestEnvironment) GamePath(game string) string {
	return filepath.Join(env.GamesDir, game)
}

// AddProfile saves a profile for game whose install directory is
// GamePath(game), and creates that directory.
func (env *TestEnvironment) AddProfile(game string, layout ...types.LayoutNode) *types.Profile {
	env.t.Helper()

	profile := types.NewProfile(game, env.GamePath(game))
	profile.Layout = append(profile.Layout, layout...)
	if err := env.FS.MkdirAll(profile.Game.Path, 0755); err != nil {
		env.t.Fatalf("Failed to create game dir: %v", err)
	}
	if err := env.DataStore.SaveProfile(game, profile); err != nil {
		env.t.Fatalf("Failed to save profile %s: %v", game, err)
	}
	return profile
}

// AddPreset saves a preset made of plain mod names and records it in the
// game's state.
func (env *TestEnvironment) AddPreset(game, name string, mods ...string) *types.Preset {
	env.t.Helper()

	preset := types.NewPreset(name)
	for _, mod := range mods {
		preset.AddMod(mod)
	}
	if err := env.DataStore.SavePreset(game, preset); err != nil {
		env.t.Fatalf("Failed to save preset %s: %v", name, err)
	}
	env.updateState(game, func(s *types.GameState) { s.AddPreset(name) })
	return preset
}

// AddMod writes an installed mod: one file per entry in storage, with the
// given points, and its sidecar. File content is "<mod>:<target>".
func (env *TestEnvironment) AddMod(game, mod string, files ...types.FileEntry) *types.ModSpec {
	env.t.Helper()

	dir := env.DataStore.ModDir(game, mod)
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.Target))
		if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
			env.t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := env.FS.WriteFile(path, []byte(fmt.Sprintf("%s:%s", mod, f.Target)), 0644); err != nil {
			env.t.Fatalf("Failed to write %s: %v", path, err)
		}
	}

	spec := &types.ModSpec{Name: mod, Files: append([]types.FileEntry{}, files...)}
	if err := env.DataStore.SaveModSpec(game, spec); err != nil {
		env.t.Fatalf("Failed to save mod spec %s: %v", mod, err)
	}
	env.updateState(game, func(s *types.GameState) { s.AddMod(mod) })
	return spec
}

// SetActive records preset as the game's active preset without linking
// anything.
func (env *TestEnvironment) SetActive(game, preset string) {
	env.t.Helper()
	env.updateState(game, func(s *types.GameState) { s.ActivePreset = preset })
}

// State loads the game's state record
func (env *TestEnvironment) State(game string) *types.GameState {
	env.t.Helper()
	state, err := env.DataStore.LoadGameState(game)
	if err != nil {
		env.t.Fatalf("Failed to load state for %s: %v", game, err)
	}
	return state
}

func (env *TestEnvironment) updateState(game string, fn func(*types.GameState)) {
	env.t.Helper()
	state := env.State(game)
	fn(state)
	if err := env.DataStore.SaveGameState(state); err != nil {
		env.t.Fatalf("Failed to save state for %s: %v", game, err)
	}
}

// WithFileTree creates a complete file tree structure under base
func (env *TestEnvironment) WithFileTree(base string, tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, base, tree)
}

// FileTree represents a directory structure for testing
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}
	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			// It's a file
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			// It's a directory
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// ModDir is shorthand for a moddir layout node
func ModDir(name string, mime ...string) types.LayoutNode {
	return types.LayoutNode{Name: name, Kind: types.KindModDir, Mime: mime}
}

// Dir is shorthand for a plain directory layout node
func Dir(name string, sub ...types.LayoutNode) types.LayoutNode {
	return types.LayoutNode{Name: name, Kind: types.KindDir, Sub: sub}
}

// File is shorthand for a file entry
func File(target string, point types.Point) types.FileEntry {
	return types.FileEntry{Target: target, Point: point}
}

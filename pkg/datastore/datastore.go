package datastore

import "github.com/arthur-debert/agm/pkg/types"

// DataStore manages agm's records on the filesystem.
type DataStore interface {
	// LoadProfile reads profiles/<name>.yaml.
	LoadProfile(name string) (*types.Profile, error)
	SaveProfile(name string, profile *types.Profile) error
	// SaveProfileRaw stores hand-authored profile content after checking
	// that it parses.
	SaveProfileRaw(name string, content []byte) error
	ProfileExists(name string) (bool, error)
	DeleteProfile(name string) error
	ListProfiles() ([]string, error)

	LoadPreset(game, name string) (*types.Preset, error)
	SavePreset(game string, preset *types.Preset) error
	SavePresetRaw(game, name string, content []byte) error
	PresetExists(game, name string) (bool, error)
	DeletePreset(game, name string) error
	ListPresets(game string) ([]string, error)

	// GameStorageDir holds every installed mod of a game.
	GameStorageDir(game string) string
	// ModDir is the storage directory holding a mod's extracted files.
	ModDir(game, mod string) string
	LoadModSpec(game, mod string) (*types.ModSpec, error)
	SaveModSpec(game string, spec *types.ModSpec) error
	ModSpecExists(game, mod string) (bool, error)
	// DeleteMod removes the mod's storage directory, sidecar included.
	DeleteMod(game, mod string) error
	// ListStoredMods lists the mod directories present in storage.
	ListStoredMods(game string) ([]string, error)
	DeleteGameStorage(game string) error

	// LoadGameState returns a fresh inactive state when none was saved yet.
	LoadGameState(game string) (*types.GameState, error)
	SaveGameState(state *types.GameState) error
	DeleteGameState(game string) error
	ListGames() ([]string, error)
}

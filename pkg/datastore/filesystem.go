package datastore

import (
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/paths"
	"github.com/arthur-debert/agm/pkg/types"
	"gopkg.in/yaml.v3"
)

type filesystemDataStore struct {
	fs    types.FS
	paths paths.Paths
}

// New creates a new DataStore instance that interacts with the filesystem.
func New(fs types.FS, paths paths.Paths) DataStore {
	return &filesystemDataStore{
		fs:    fs,
		paths: paths,
	}
}

// readRecord decodes the YAML file at path into out. A missing file is
// reported with notFound so callers get the specific record code.
func (s *filesystemDataStore) readRecord(path string, notFound errors.ErrorCode, what string, out interface{}) error {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(err, notFound, "%s not found", what).WithDetail("path", path)
		}
		return errors.WrapFS(err, "failed to read %s", what).WithDetail("path", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, errors.ErrMalformed, "failed to parse %s", what).WithDetail("path", path)
	}
	return nil
}

func (s *filesystemDataStore) writeRecord(path, what string, in interface{}) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMalformed, "failed to encode %s", what)
	}
	if err := writeFileAtomic(s.fs, path, data, 0644); err != nil {
		return errors.WrapFS(err, "failed to save %s", what).WithDetail("path", path)
	}
	logger := logging.GetLogger("datastore")
	logger.Trace().Str("path", path).Msgf("Saved %s", what)
	return nil
}

func (s *filesystemDataStore) exists(path string) (bool, error) {
	_, err := s.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.WrapFS(err, "failed to check %s", path)
}

func (s *filesystemDataStore) remove(path, what string) error {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapFS(err, "failed to remove %s", what).WithDetail("path", path)
	}
	return nil
}

// listRecords returns the base names of *.yaml files in dir, sorted.
func (s *filesystemDataStore) listRecords(dir string) ([]string, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.WrapFS(err, "failed to read %s", dir)
	}

	names := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, paths.RecordExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, paths.RecordExt))
	}
	sort.Strings(names)
	return names, nil
}

// Profiles

func (s *filesystemDataStore) LoadProfile(name string) (*types.Profile, error) {
	var profile types.Profile
	if err := s.readRecord(s.paths.ProfilePath(name), errors.ErrProfileNotFound, "profile '"+name+"'", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *filesystemDataStore) SaveProfile(name string, profile *types.Profile) error {
	if err := paths.ValidateName("profile", name); err != nil {
		return err
	}
	return s.writeRecord(s.paths.ProfilePath(name), "profile '"+name+"'", profile)
}

func (s *filesystemDataStore) SaveProfileRaw(name string, content []byte) error {
	if err := paths.ValidateName("profile", name); err != nil {
		return err
	}
	var profile types.Profile
	if err := yaml.Unmarshal(content, &profile); err != nil {
		return errors.Wrapf(err, errors.ErrMalformed, "profile '%s' does not parse", name)
	}
	if err := writeFileAtomic(s.fs, s.paths.ProfilePath(name), content, 0644); err != nil {
		return errors.WrapFS(err, "failed to save profile '%s'", name)
	}
	return nil
}

func (s *filesystemDataStore) ProfileExists(name string) (bool, error) {
	return s.exists(s.paths.ProfilePath(name))
}

func (s *filesystemDataStore) DeleteProfile(name string) error {
	return s.remove(s.paths.ProfilePath(name), "profile '"+name+"'")
}

func (s *filesystemDataStore) ListProfiles() ([]string, error) {
	return s.listRecords(s.paths.ProfilesDir())
}

// Presets

func (s *filesystemDataStore) LoadPreset(game, name string) (*types.Preset, error) {
	var preset types.Preset
	what := "preset '" + name + "' for game '" + game + "'"
	if err := s.readRecord(s.paths.PresetPath(game, name), errors.ErrPresetNotFound, what, &preset); err != nil {
		return nil, err
	}
	// The file name is the preset's identity; a stale name field must not
	// redirect later saves to another file.
	if preset.Name != "" && preset.Name != name {
		logger := logging.GetLogger("datastore")
		logger.Warn().
			Str("game", game).
			Str("preset", name).
			Str("recorded", preset.Name).
			Msg("Preset name does not match its file, using the file name")
	}
	preset.Name = name
	return &preset, nil
}

func (s *filesystemDataStore) SavePreset(game string, preset *types.Preset) error {
	if err := paths.ValidateName("preset", preset.Name); err != nil {
		return err
	}
	if preset.Mods == nil {
		preset.Mods = []types.ModEntry{}
	}
	return s.writeRecord(s.paths.PresetPath(game, preset.Name), "preset '"+preset.Name+"'", preset)
}

func (s *filesystemDataStore) SavePresetRaw(game, name string, content []byte) error {
	if err := paths.ValidateName("preset", name); err != nil {
		return err
	}
	var preset types.Preset
	if err := yaml.Unmarshal(content, &preset); err != nil {
		return errors.Wrapf(err, errors.ErrMalformed, "preset '%s' does not parse", name)
	}
	if preset.Name != "" && preset.Name != name {
		return errors.Newf(errors.ErrInvalidInput, "preset file '%s' declares name '%s'", name, preset.Name).
			WithDetail("game", game)
	}
	if err := writeFileAtomic(s.fs, s.paths.PresetPath(game, name), content, 0644); err != nil {
		return errors.WrapFS(err, "failed to save preset '%s'", name)
	}
	return nil
}

func (s *filesystemDataStore) PresetExists(game, name string) (bool, error) {
	return s.exists(s.paths.PresetPath(game, name))
}

func (s *filesystemDataStore) DeletePreset(game, name string) error {
	return s.remove(s.paths.PresetPath(game, name), "preset '"+name+"'")
}

func (s *filesystemDataStore) ListPresets(game string) ([]string, error) {
	return s.listRecords(s.paths.GamePresetsDir(game))
}

// Mod specs

func (s *filesystemDataStore) GameStorageDir(game string) string {
	return s.paths.GameStorageDir(game)
}

func (s *filesystemDataStore) ModDir(game, mod string) string {
	return s.paths.ModDir(game, mod)
}

func (s *filesystemDataStore) LoadModSpec(game, mod string) (*types.ModSpec, error) {
	var spec types.ModSpec
	what := "mod spec '" + mod + "' for game '" + game + "'"
	if err := s.readRecord(s.paths.ModSpecPath(game, mod), errors.ErrModSpecNotFound, what, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *filesystemDataStore) SaveModSpec(game string, spec *types.ModSpec) error {
	if err := paths.ValidateName("mod", spec.Name); err != nil {
		return err
	}
	if spec.Files == nil {
		spec.Files = []types.FileEntry{}
	}
	return s.writeRecord(s.paths.ModSpecPath(game, spec.Name), "mod spec '"+spec.Name+"'", spec)
}

func (s *filesystemDataStore) ModSpecExists(game, mod string) (bool, error) {
	return s.exists(s.paths.ModSpecPath(game, mod))
}

func (s *filesystemDataStore) DeleteMod(game, mod string) error {
	if err := paths.ValidateName("mod", mod); err != nil {
		return err
	}
	if err := s.fs.RemoveAll(s.paths.ModDir(game, mod)); err != nil {
		return errors.WrapFS(err, "failed to remove mod '%s' from storage", mod)
	}
	return nil
}

func (s *filesystemDataStore) ListStoredMods(game string) ([]string, error) {
	dir := s.paths.GameStorageDir(game)
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.WrapFS(err, "failed to read %s", dir)
	}

	mods := []string{}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			mods = append(mods, entry.Name())
		}
	}
	sort.Strings(mods)
	return mods, nil
}

func (s *filesystemDataStore) DeleteGameStorage(game string) error {
	if err := paths.ValidateName("game", game); err != nil {
		return err
	}
	if err := s.fs.RemoveAll(s.paths.GameStorageDir(game)); err != nil {
		return errors.WrapFS(err, "failed to remove storage for game '%s'", game)
	}
	return nil
}

// Game state

func (s *filesystemDataStore) LoadGameState(game string) (*types.GameState, error) {
	state := types.NewGameState(game)
	err := s.readRecord(s.paths.GameStatePath(game), errors.ErrNotFound, "state for game '"+game+"'", state)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return types.NewGameState(game), nil
		}
		return nil, err
	}
	if state.Profile == "" {
		state.Profile = game
	}
	return state, nil
}

func (s *filesystemDataStore) SaveGameState(state *types.GameState) error {
	if err := paths.ValidateName("game", state.Profile); err != nil {
		return err
	}
	return s.writeRecord(s.paths.GameStatePath(state.Profile), "state for game '"+state.Profile+"'", state)
}

func (s *filesystemDataStore) DeleteGameState(game string) error {
	return s.remove(s.paths.GameStatePath(game), "state for game '"+game+"'")
}

func (s *filesystemDataStore) ListGames() ([]string, error) {
	return s.listRecords(s.paths.StateDir())
}

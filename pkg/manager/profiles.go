package manager

import (
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/layout"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/paths"
	"github.com/arthur-debert/agm/pkg/types"
	"gopkg.in/yaml.v3"
)

// AddProfile creates the profile name from YAML content. An empty content
// creates a profile with an empty layout. A non-empty gamePath overrides
// the game path in content. The game gets a fresh state and an empty
// default preset.
func (m *Manager) AddProfile(name string, content []byte, gamePath string) (*types.Profile, error) {
	log := logging.ForGame("manager", name)

	if err := paths.ValidateName("profile", name); err != nil {
		return nil, err
	}
	exists, err := m.store.ProfileExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Newf(errors.ErrAlreadyExists, "profile '%s' already exists", name)
	}

	profile, err := parseProfile(name, content)
	if err != nil {
		return nil, err
	}
	if gamePath != "" {
		profile.Game.Path = paths.ExpandHome(gamePath)
	}
	for _, p := range layout.Validate(profile) {
		log.Warn().Str("problem", p.String()).Msg("Profile has a layout problem")
	}

	if err := m.store.SaveProfile(name, profile); err != nil {
		return nil, err
	}

	state := types.NewGameState(name)
	defaultPreset := m.cfg.Install.DefaultPresetName
	if exists, err := m.store.PresetExists(name, defaultPreset); err != nil {
		return nil, err
	} else if !exists {
		if err := m.store.SavePreset(name, types.NewPreset(defaultPreset)); err != nil {
			return nil, err
		}
	}
	state.AddPreset(defaultPreset)
	if err := m.store.SaveGameState(state); err != nil {
		return nil, err
	}

	log.Info().Str("path", profile.Game.Path).Msg("Added profile")
	return profile, nil
}

func parseProfile(name string, content []byte) (*types.Profile, error) {
	profile := types.NewProfile(name, "")
	if len(content) > 0 {
		if err := yaml.Unmarshal(content, profile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrMalformed, "profile '%s' does not parse", name)
		}
	}
	if profile.Game.Name == "" {
		profile.Game.Name = name
	}
	if profile.Layout == nil {
		profile.Layout = []types.LayoutNode{}
	}
	return profile, nil
}

// EditProfile replaces the content of an existing profile. The content is
// stored as written so comments survive.
func (m *Manager) EditProfile(name string, content []byte) (*types.Profile, error) {
	if _, err := m.store.LoadProfile(name); err != nil {
		return nil, err
	}
	if err := m.store.SaveProfileRaw(name, content); err != nil {
		return nil, err
	}
	profile, err := m.store.LoadProfile(name)
	if err != nil {
		return nil, err
	}
	logger := logging.ForGame("manager", name)
	for _, p := range layout.Validate(profile) {
		logger.Warn().Str("problem", p.String()).Msg("Profile has a layout problem")
	}
	return profile, nil
}

// Profile loads one profile
func (m *Manager) Profile(name string) (*types.Profile, error) {
	return m.store.LoadProfile(name)
}

// RemoveProfile deletes a profile. Links of an active preset are removed
// first. With removePresets the game's presets and state go too; with
// removeMods so does its mod storage.
func (m *Manager) RemoveProfile(name string, removePresets, removeMods bool) error {
	log := logging.ForGame("manager", name)

	if _, err := m.store.LoadProfile(name); err != nil {
		return err
	}
	state, err := m.store.LoadGameState(name)
	if err != nil {
		return err
	}
	if state.IsActive() {
		if _, err := m.engine.DisablePreset(name); err != nil {
			return err
		}
	}

	if removePresets {
		presets, err := m.store.ListPresets(name)
		if err != nil {
			return err
		}
		for _, p := range presets {
			if err := m.store.DeletePreset(name, p); err != nil {
				return err
			}
		}
		if err := m.store.DeleteGameState(name); err != nil {
			return err
		}
	}
	if removeMods {
		if err := m.store.DeleteGameStorage(name); err != nil {
			return err
		}
		if !removePresets {
			if err := m.engine.UpdateState(name, func(s *types.GameState) error {
				s.Mods = []string{}
				return nil
			}); err != nil {
				return err
			}
		}
	}

	if err := m.store.DeleteProfile(name); err != nil {
		return err
	}
	log.Info().Bool("presets", removePresets).Bool("mods", removeMods).Msg("Removed profile")
	return nil
}

// ProfileNames lists the names of all profiles
func (m *Manager) ProfileNames() ([]string, error) {
	return m.store.ListProfiles()
}

// ProfileInfo summarizes one profile
type ProfileInfo struct {
	Name         string
	Profile      *types.Profile
	ActivePreset string
	Presets      int
	Mods         int
}

// ListProfiles loads every profile with a summary of its game state
func (m *Manager) ListProfiles() ([]ProfileInfo, error) {
	names, err := m.store.ListProfiles()
	if err != nil {
		return nil, err
	}
	infos := make([]ProfileInfo, 0, len(names))
	for _, name := range names {
		profile, err := m.store.LoadProfile(name)
		if err != nil {
			return nil, err
		}
		state, err := m.store.LoadGameState(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, ProfileInfo{
			Name:         name,
			Profile:      profile,
			ActivePreset: state.ActivePreset,
			Presets:      len(state.Presets),
			Mods:         len(state.Mods),
		})
	}
	return infos, nil
}

package manager

import (
	"github.com/arthur-debert/agm/pkg/activation"
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/paths"
	"github.com/arthur-debert/agm/pkg/types"
)

// AddPreset creates a preset for game. Empty content creates an empty
// preset; otherwise content is stored as written.
func (m *Manager) AddPreset(game, name string, content []byte) (*types.Preset, error) {
	if err := paths.ValidateName("preset", name); err != nil {
		return nil, err
	}
	if _, err := m.store.LoadProfile(game); err != nil {
		return nil, err
	}
	exists, err := m.store.PresetExists(game, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Newf(errors.ErrAlreadyExists, "preset '%s' already exists for game '%s'", name, game)
	}

	if len(content) == 0 {
		err = m.store.SavePreset(game, types.NewPreset(name))
	} else {
		err = m.store.SavePresetRaw(game, name, content)
	}
	if err != nil {
		return nil, err
	}
	if err := m.engine.UpdateState(game, func(s *types.GameState) error {
		s.AddPreset(name)
		return nil
	}); err != nil {
		return nil, err
	}

	logger := logging.ForGame("manager", game)
	logger.Info().Str("preset", name).Msg("Added preset")
	return m.store.LoadPreset(game, name)
}

// EditPreset replaces the content of an existing preset. Links are not
// touched; switch to the preset again to apply the change.
func (m *Manager) EditPreset(game, name string, content []byte) (*types.Preset, error) {
	if _, err := m.store.LoadPreset(game, name); err != nil {
		return nil, err
	}
	if err := m.store.SavePresetRaw(game, name, content); err != nil {
		return nil, err
	}
	return m.store.LoadPreset(game, name)
}

// Preset loads one preset
func (m *Manager) Preset(game, name string) (*types.Preset, error) {
	return m.store.LoadPreset(game, name)
}

// ListPresets lists the preset names of game
func (m *Manager) ListPresets(game string) ([]string, error) {
	if _, err := m.store.LoadProfile(game); err != nil {
		return nil, err
	}
	return m.store.ListPresets(game)
}

// IsPresetActive reports whether preset is game's active preset
func (m *Manager) IsPresetActive(game, preset string) (bool, error) {
	state, err := m.store.LoadGameState(game)
	if err != nil {
		return false, err
	}
	return state.IsPresetActive(preset), nil
}

// SwitchPreset makes preset the active preset of game
func (m *Manager) SwitchPreset(game, preset string) (*activation.SwitchResult, error) {
	return m.engine.SwitchPreset(game, preset)
}

// DisablePreset removes the links of game's active preset and leaves the
// game inactive
func (m *Manager) DisablePreset(game string) ([]string, error) {
	return m.engine.DisablePreset(game)
}

// RemovePreset deletes a preset, deactivating it first when active
func (m *Manager) RemovePreset(game, name string) error {
	if _, err := m.store.LoadPreset(game, name); err != nil {
		return err
	}
	return m.engine.RemovePreset(game, name)
}

// AddModToPresets appends mod to each of presets. Presets already holding
// mod are left unchanged. Links are not touched.
func (m *Manager) AddModToPresets(game, mod string, presets []string) error {
	for _, name := range presets {
		if _, err := m.AddModsToPreset(game, name, []string{mod}); err != nil {
			return err
		}
	}
	return nil
}

// AddModsToPreset appends mods to a preset, skipping duplicates, and
// returns the ones actually added
func (m *Manager) AddModsToPreset(game, name string, mods []string) ([]string, error) {
	preset, err := m.store.LoadPreset(game, name)
	if err != nil {
		return nil, err
	}

	added := []string{}
	for _, mod := range mods {
		if err := paths.ValidateName("mod", mod); err != nil {
			return nil, err
		}
		if preset.AddMod(mod) {
			added = append(added, mod)
		}
	}
	if len(added) == 0 {
		return added, nil
	}
	if err := m.store.SavePreset(game, preset); err != nil {
		return nil, err
	}
	logger := logging.ForGame("manager", game)
	logger.Debug().Str("preset", name).Strs("mods", added).Msg("Added mods to preset")
	return added, nil
}

// RemoveModFromPreset drops mod from a preset. When the preset is active
// the mod's links are removed first. It reports whether the preset held
// the mod.
func (m *Manager) RemoveModFromPreset(game, name, mod string) (bool, error) {
	preset, err := m.store.LoadPreset(game, name)
	if err != nil {
		return false, err
	}
	if !preset.Contains(mod) {
		return false, nil
	}

	active, err := m.IsPresetActive(game, name)
	if err != nil {
		return false, err
	}
	if active {
		if _, err := m.engine.DeactivateMod(game, mod); err != nil {
			return false, err
		}
	}

	preset.RemoveMod(mod)
	if err := m.store.SavePreset(game, preset); err != nil {
		return false, err
	}
	return true, nil
}

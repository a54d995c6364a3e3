package manager

import (
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/install"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/types"
)

// InstallOptions extends the installer's options with presets to add the
// new mod to
type InstallOptions struct {
	install.Options
	Presets []string
}

// Install installs a mod. Overwrite and case-insensitive matching are also
// enabled when the configuration asks for them.
func (m *Manager) Install(opts InstallOptions) (*install.Result, error) {
	o := opts.Options
	o.Overwrite = o.Overwrite || m.cfg.Install.Overwrite
	o.CaseInsensitive = o.CaseInsensitive || m.cfg.Install.CaseInsensitiveExt

	result, err := m.installer.Install(o)
	if err != nil {
		return nil, err
	}
	if err := m.AddModToPresets(o.Game, result.Spec.Name, opts.Presets); err != nil {
		return result, err
	}
	return result, nil
}

// Reclassify runs classification again for an installed mod
func (m *Manager) Reclassify(game, mod string, placer install.Placer) (*install.Result, error) {
	return m.installer.Reclassify(game, mod, placer, m.cfg.Install.CaseInsensitiveExt)
}

// SetPoint changes the placement of one file of an installed mod
func (m *Manager) SetPoint(game, mod, target string, point types.Point) (*types.ModSpec, error) {
	return m.installer.SetPoint(game, mod, target, point)
}

// ModSpec loads the sidecar of an installed mod
func (m *Manager) ModSpec(game, mod string) (*types.ModSpec, error) {
	return m.store.LoadModSpec(game, mod)
}

// ListMods lists the mods tracked in game's state
func (m *Manager) ListMods(game string) ([]string, error) {
	if _, err := m.store.LoadProfile(game); err != nil {
		return nil, err
	}
	state, err := m.store.LoadGameState(game)
	if err != nil {
		return nil, err
	}
	return state.Mods, nil
}

// ListStoredMods lists the mod directories in game's storage
func (m *Manager) ListStoredMods(game string) ([]string, error) {
	return m.store.ListStoredMods(game)
}

// RemoveMod forgets a mod: its links are removed if the active preset
// holds it, it is dropped from every preset and from the tracked set. With
// purge its storage is deleted too.
func (m *Manager) RemoveMod(game, mod string, purge bool) error {
	log := logging.ForGame("manager", game).With().Str("mod", mod).Logger()

	state, err := m.store.LoadGameState(game)
	if err != nil {
		return err
	}
	stored, err := m.store.ModSpecExists(game, mod)
	if err != nil {
		return err
	}
	if !stored && !state.HasMod(mod) {
		return errors.Newf(errors.ErrNotFound, "mod '%s' is not installed for game '%s'", mod, game)
	}

	if state.IsActive() {
		active, err := m.store.LoadPreset(game, state.ActivePreset)
		if err != nil && !errors.IsErrorCode(err, errors.ErrPresetNotFound) {
			return err
		}
		if active != nil && active.Contains(mod) {
			if _, err := m.engine.DeactivateMod(game, mod); err != nil {
				return err
			}
		}
	}

	presets, err := m.store.ListPresets(game)
	if err != nil {
		return err
	}
	for _, name := range presets {
		preset, err := m.store.LoadPreset(game, name)
		if err != nil {
			return err
		}
		if preset.RemoveMod(mod) {
			if err := m.store.SavePreset(game, preset); err != nil {
				return err
			}
			log.Debug().Str("preset", name).Msg("Removed mod from preset")
		}
	}

	if err := m.engine.UpdateState(game, func(s *types.GameState) error {
		s.RemoveMod(mod)
		return nil
	}); err != nil {
		return err
	}

	if purge {
		if err := m.store.DeleteMod(game, mod); err != nil {
			return err
		}
	}
	log.Info().Bool("purge", purge).Msg("Removed mod")
	return nil
}

// SyncResult lists what SyncMods changed for one game
type SyncResult struct {
	Game    string
	Added   []string
	Dropped []string
}

// SyncMods rebuilds every game's tracked mods from storage: mods with a
// sidecar are tracked, tracked mods without one are dropped.
func (m *Manager) SyncMods() ([]SyncResult, error) {
	games, err := m.store.ListProfiles()
	if err != nil {
		return nil, err
	}

	results := make([]SyncResult, 0, len(games))
	for _, game := range games {
		result := SyncResult{Game: game, Added: []string{}, Dropped: []string{}}
		err := m.engine.UpdateState(game, func(s *types.GameState) error {
			stored, err := m.store.ListStoredMods(game)
			if err != nil {
				return err
			}
			installed := map[string]bool{}
			for _, mod := range stored {
				ok, err := m.store.ModSpecExists(game, mod)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				installed[mod] = true
				if !s.HasMod(mod) {
					s.AddMod(mod)
					result.Added = append(result.Added, mod)
				}
			}
			for _, mod := range append([]string{}, s.Mods...) {
				if !installed[mod] {
					s.RemoveMod(mod)
					result.Dropped = append(result.Dropped, mod)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

package activation

import (
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/types"
)

// DeactivatePreset removes the links of the game's active preset and
// returns the removed paths. With no active preset it does nothing. The
// active preset record is left as is; see DisablePreset.
func (e *Engine) DeactivatePreset(game string) ([]string, error) {
	defer e.locks.lock(game)()

	state, err := e.store.LoadGameState(game)
	if err != nil {
		return nil, err
	}
	if !state.IsActive() {
		return []string{}, nil
	}

	profile, err := e.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	removed, err := e.deactivate(profile, game, state.ActivePreset)
	return destinations(removed), err
}

// DeactivateMod removes the links of one mod
func (e *Engine) DeactivateMod(game, mod string) ([]string, error) {
	defer e.locks.lock(game)()

	profile, err := e.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	removed, err := e.deactivateMod(profile, game, mod)
	return destinations(removed), err
}

// deactivate removes the links of every mod in preset. When the preset
// record is gone, every link from the game directory into the game's
// storage is removed instead.
func (e *Engine) deactivate(profile *types.Profile, game, name string) ([]types.Link, error) {
	log := logging.ForGame("activation", game).With().Str("preset", name).Logger()

	preset, err := e.store.LoadPreset(game, name)
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrPresetNotFound) {
			return nil, err
		}
		log.Warn().Msg("Active preset record is missing, removing every mod link found")
		return e.removeStorageLinks(profile, game)
	}

	removed := []types.Link{}
	for _, mod := range preset.ModNames() {
		links, err := e.deactivateMod(profile, game, mod)
		removed = append(removed, links...)
		if err != nil {
			return removed, err
		}
	}
	log.Debug().Int("removed", len(removed)).Msg("Deactivated preset")
	return removed, nil
}

func (e *Engine) deactivateMod(profile *types.Profile, game, mod string) ([]types.Link, error) {
	removed := []types.Link{}

	spec, err := e.store.LoadModSpec(game, mod)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrModSpecNotFound) {
			logger := logging.ForGame("activation", game)
			logger.Warn().Str("mod", mod).Msg("Mod is not installed, skipping")
			return removed, nil
		}
		return removed, err
	}

	storageDir := e.store.ModDir(game, mod)
	for _, entry := range spec.Files {
		if entry.Point.IsEmpty() {
			continue
		}
		link, ok := Destination(profile, storageDir, entry)
		if !ok {
			continue
		}
		target, ok, err := e.removeLink(link.Destination)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, types.Link{Source: target, Destination: link.Destination})
		}
	}
	return removed, nil
}

func (e *Engine) removeStorageLinks(profile *types.Profile, game string) ([]types.Link, error) {
	found, err := ScanLinks(e.fs, profile.Game.Path, e.store.GameStorageDir(game))
	if err != nil {
		return nil, err
	}

	removed := []types.Link{}
	for _, link := range found {
		target, ok, err := e.removeLink(link.Destination)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, types.Link{Source: target, Destination: link.Destination})
		}
	}
	return removed, nil
}

func destinations(links []types.Link) []string {
	paths := make([]string, 0, len(links))
	for _, l := range links {
		paths = append(paths, l.Destination)
	}
	return paths
}

package activation

import (
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/types"
)

// ActivateMod links every file of an installed mod into the game directory
// and returns the links it created.
//
// A mod without a sidecar, or with any unresolved file, yields no links and
// no error. Files whose point does not resolve are skipped. The first
// failure stops the loop; links created before it are returned together
// with the error and are not undone.
func (e *Engine) ActivateMod(game, mod string) ([]types.Link, error) {
	defer e.locks.lock(game)()

	profile, err := e.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	return e.activateMod(profile, game, mod)
}

func (e *Engine) activateMod(profile *types.Profile, game, mod string) ([]types.Link, error) {
	log := logging.ForGame("activation", game).With().Str("mod", mod).Logger()
	links := []types.Link{}

	spec, err := e.store.LoadModSpec(game, mod)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrModSpecNotFound) {
			log.Warn().Msg("Mod is not installed, skipping")
			return links, nil
		}
		return links, err
	}

	if unresolved := spec.Unresolved(); len(unresolved) > 0 {
		log.Warn().Strs("files", unresolved).Msg("Mod has unresolved files, not linking it")
		return links, nil
	}

	storageDir := e.store.ModDir(game, mod)
	for _, entry := range spec.Files {
		link, ok := Destination(profile, storageDir, entry)
		if !ok {
			log.Warn().
				Str("target", entry.Target).
				Str("point", entry.Point.String()).
				Msg("Point does not resolve, skipping file")
			continue
		}

		created, err := e.createLink(link)
		if err != nil {
			return links, err
		}
		if created {
			log.Trace().Str("dest", link.Destination).Msg("Linked")
			links = append(links, link)
		}
	}

	log.Debug().Int("links", len(links)).Msg("Activated mod")
	return links, nil
}

// ActivatePreset activates every mod of a preset in order. It does not
// touch the game's active preset record.
func (e *Engine) ActivatePreset(game, preset string) ([]types.Link, error) {
	defer e.locks.lock(game)()

	profile, err := e.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	return e.activatePreset(profile, game, preset)
}

func (e *Engine) activatePreset(profile *types.Profile, game, name string) ([]types.Link, error) {
	preset, err := e.store.LoadPreset(game, name)
	if err != nil {
		return nil, err
	}

	links := []types.Link{}
	for _, mod := range preset.ModNames() {
		created, err := e.activateMod(profile, game, mod)
		links = append(links, created...)
		if err != nil {
			return links, err
		}
	}
	return links, nil
}

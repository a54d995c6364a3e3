package install

import (
	"strings"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/layout"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/paths"
	"github.com/arthur-debert/agm/pkg/types"
)

// Reclassify walks an installed mod's storage again. Entries that already
// have a point keep it; new files and unresolved entries are classified by
// the current layout and then offered to placer. Entries whose file vanished
// are dropped.
func (i *Installer) Reclassify(game, mod string, placer Placer, caseInsensitive bool) (*Result, error) {
	log := logging.ForGame("install", game).With().Str("mod", mod).Logger()

	profile, err := i.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	spec, err := i.store.LoadModSpec(game, mod)
	if err != nil {
		return nil, err
	}

	storageDir := i.store.ModDir(game, mod)
	entries, err := Classify(i.fs, profile, storageDir, paths.SidecarName(mod), caseInsensitive)
	if err != nil {
		return nil, err
	}

	result := &Result{StorageDir: storageDir}
	for n := range entries {
		if old := spec.Entry(entries[n].Target); old != nil && !old.Point.IsEmpty() {
			entries[n].Point = old.Point
			continue
		}
		if !entries[n].Point.IsEmpty() {
			result.Classified++
		}
	}

	if placer == nil {
		placer = SkipPlacer{}
	}
	result.Placed, err = place(entries, layout.ModDirNames(profile.Layout), placer)
	if err != nil {
		return nil, err
	}

	spec.Files = entries
	if err := i.store.SaveModSpec(game, spec); err != nil {
		return nil, err
	}
	result.Spec = spec
	result.Unresolved = spec.Unresolved()
	log.Debug().
		Int("classified", result.Classified).
		Int("placed", result.Placed).
		Int("unresolved", len(result.Unresolved)).
		Msg("Reclassified mod")
	return result, nil
}

// SetPoint records an explicit point for one file of an installed mod. A
// symbolic point must name a moddir of the game's layout; an empty point
// marks the file unresolved again. Surrounding whitespace is dropped, so a
// blank point also clears.
func (i *Installer) SetPoint(game, mod, target string, point types.Point) (*types.ModSpec, error) {
	point = types.Point(strings.TrimSpace(string(point)))
	profile, err := i.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	spec, err := i.store.LoadModSpec(game, mod)
	if err != nil {
		return nil, err
	}

	entry := spec.Entry(target)
	if entry == nil {
		return nil, errors.Newf(errors.ErrNotFound, "mod '%s' has no file %s", mod, target)
	}
	if point.IsSymbolic() {
		if _, ok := layout.ResolvePoint(profile.Layout, point); !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, "no moddir named '%s' in profile '%s'", point.Name(), game).
				WithDetail("moddirs", layout.ModDirNames(profile.Layout))
		}
	}
	entry.Point = point
	if err := i.store.SaveModSpec(game, spec); err != nil {
		return nil, err
	}
	logger := logging.ForGame("install", game)
	logger.Debug().
		Str("mod", mod).
		Str("target", target).
		Str("point", point.String()).
		Msg("Set point")
	return spec, nil
}

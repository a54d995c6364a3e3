package install

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/agm/pkg/archive"
	"github.com/arthur-debert/agm/pkg/datastore"
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/layout"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/paths"
	"github.com/arthur-debert/agm/pkg/types"
)

// Options configures one installation
type Options struct {
	// Game is the profile name the mod is installed for
	Game string
	// ModName defaults to the archive's stem or the source directory's name
	ModName string
	// Archive is the mod archive to unpack. Exactly one of Archive and
	// Source must be set.
	Archive string
	// Source is an already unpacked mod directory to copy
	Source string
	// URL is recorded in the sidecar
	URL string
	// Placer resolves files the layout does not classify. Nil means
	// SkipPlacer.
	Placer Placer
	// Overwrite replaces an installed mod with the same name
	Overwrite bool
	// CaseInsensitive matches extensions ignoring case
	CaseInsensitive bool
}

// Result describes a finished installation
type Result struct {
	Spec       *types.ModSpec
	StorageDir string
	// Classified counts files placed by the layout
	Classified int
	// Placed counts files placed by the Placer
	Placed int
	// Unresolved lists targets left without a point
	Unresolved []string
	Warnings   []string
}

// Installer installs mods into the data store's storage
type Installer struct {
	fs        types.FS
	store     datastore.DataStore
	extractor archive.Extractor
}

// New returns an installer. Storage must live on fs; archives are unpacked
// by extractor.
func New(fs types.FS, store datastore.DataStore, extractor archive.Extractor) *Installer {
	if extractor == nil {
		extractor = archive.New()
	}
	return &Installer{fs: fs, store: store, extractor: extractor}
}

// Install unpacks or copies a mod into storage, classifies its files and
// saves the sidecar. Files are staged next to the final directory and only
// moved into place once every step succeeded, so a failed or quit install
// leaves storage, including a mod being overwritten, as it was.
func (i *Installer) Install(opts Options) (*Result, error) {
	if (opts.Archive == "") == (opts.Source == "") {
		return nil, errors.New(errors.ErrInvalidInput, "exactly one of archive or source must be given")
	}

	modName := opts.ModName
	if modName == "" {
		if opts.Archive != "" {
			modName = archive.StemName(opts.Archive)
		} else {
			modName = filepath.Base(filepath.Clean(opts.Source))
		}
	}
	if err := paths.ValidateName("mod", modName); err != nil {
		return nil, err
	}

	log := logging.ForGame("install", opts.Game).With().Str("mod", modName).Logger()
	done := logging.LogOperationStart(log, "install")

	profile, err := i.store.LoadProfile(opts.Game)
	if err != nil {
		return nil, err
	}

	storageDir := i.store.ModDir(opts.Game, modName)
	replacing, err := i.checkStorage(opts.Game, modName, storageDir, opts.Overwrite)
	if err != nil {
		return nil, err
	}

	staging := siblingPath(storageDir, "staging")
	result := &Result{StorageDir: storageDir}
	fail := func(err error) (*Result, error) {
		if rmErr := i.fs.RemoveAll(staging); rmErr != nil {
			log.Warn().Err(rmErr).Str("dir", staging).Msg("Failed to clean up staging directory")
		}
		done()
		return nil, err
	}

	if err := i.fill(opts, staging, result); err != nil {
		return fail(err)
	}

	entries, err := Classify(i.fs, profile, staging, paths.SidecarName(modName), opts.CaseInsensitive)
	if err != nil {
		return fail(err)
	}
	for _, e := range entries {
		if !e.Point.IsEmpty() {
			result.Classified++
		}
	}

	placer := opts.Placer
	if placer == nil {
		placer = SkipPlacer{}
	}
	result.Placed, err = place(entries, layout.ModDirNames(profile.Layout), placer)
	if err != nil {
		log.Info().Msg("Installation interrupted, discarding staged files")
		return fail(err)
	}

	spec := &types.ModSpec{Name: modName, URL: opts.URL, Files: entries}
	if err := i.commit(opts.Game, spec, staging, storageDir, replacing); err != nil {
		return fail(err)
	}
	if err := i.track(opts.Game, modName); err != nil {
		done()
		return nil, err
	}

	result.Spec = spec
	result.Unresolved = spec.Unresolved()
	if len(result.Unresolved) > 0 {
		log.Warn().Strs("files", result.Unresolved).Msg("Mod has unresolved files and cannot be activated yet")
	}
	done()
	return result, nil
}

// checkStorage reports whether the install replaces an existing mod. A mod
// that the active preset links is never replaced: its links would point
// at files that may no longer exist.
func (i *Installer) checkStorage(game, mod, storageDir string, overwrite bool) (bool, error) {
	_, err := i.fs.Stat(storageDir)
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, errors.WrapFS(err, "failed to check %s", storageDir)
	case !overwrite:
		return false, errors.Newf(errors.ErrAlreadyExists, "mod '%s' is already installed for '%s'", mod, game).
			WithDetail("dir", storageDir)
	}

	state, err := i.store.LoadGameState(game)
	if err != nil {
		return false, err
	}
	if !state.IsActive() {
		return true, nil
	}
	preset, err := i.store.LoadPreset(game, state.ActivePreset)
	if err != nil {
		if errors.IsNotFound(err) {
			return true, nil
		}
		return false, err
	}
	if preset.Contains(mod) {
		return false, errors.Newf(errors.ErrAlreadyExists,
			"mod '%s' is linked by the active preset '%s'; disable the preset before reinstalling", mod, preset.Name).
			WithDetail("preset", preset.Name)
	}
	return true, nil
}

// commit moves the staged files to storageDir and writes the sidecar. An
// existing installation is set aside first and put back if anything fails.
func (i *Installer) commit(game string, spec *types.ModSpec, staging, storageDir string, replacing bool) error {
	var previous string
	if replacing {
		previous = siblingPath(storageDir, "previous")
		if err := i.fs.Rename(storageDir, previous); err != nil {
			return errors.WrapFS(err, "failed to move aside %s", storageDir)
		}
	}
	restore := func() {
		_ = i.fs.RemoveAll(storageDir)
		if previous != "" {
			if err := i.fs.Rename(previous, storageDir); err != nil {
				logger := logging.ForGame("install", game)
				logger.Error().Err(err).Str("dir", previous).Msg("Failed to restore the previous installation")
			}
		}
	}

	if err := i.fs.Rename(staging, storageDir); err != nil {
		restore()
		return errors.WrapFS(err, "failed to move staged files to %s", storageDir)
	}
	if err := i.store.SaveModSpec(game, spec); err != nil {
		restore()
		return err
	}
	if previous != "" {
		if err := i.fs.RemoveAll(previous); err != nil {
			logger := logging.ForGame("install", game)
			logger.Warn().Err(err).Str("dir", previous).Msg("Failed to remove the previous installation")
		}
	}
	return nil
}

// siblingPath names a hidden directory next to dir. Hidden entries are not
// listed as stored mods.
func siblingPath(dir, kind string) string {
	return filepath.Join(filepath.Dir(dir),
		fmt.Sprintf(".%s.%s-%d-%d", filepath.Base(dir), kind, os.Getpid(), time.Now().UnixNano()))
}

// fill puts the mod's files into storageDir
func (i *Installer) fill(opts Options, storageDir string, result *Result) error {
	if opts.Source != "" {
		return copyTree(i.fs, opts.Source, storageDir)
	}

	if archive.Detect(opts.Archive) == archive.FormatUnknown {
		// Not an archive we can open: keep the file itself as the mod.
		result.Warnings = append(result.Warnings,
			"unsupported archive format, stored "+filepath.Base(opts.Archive)+" as is")
		return copyFile(i.fs, opts.Archive, filepath.Join(storageDir, filepath.Base(opts.Archive)))
	}
	return i.extractor.Extract(opts.Archive, storageDir)
}

func (i *Installer) track(game, mod string) error {
	state, err := i.store.LoadGameState(game)
	if err != nil {
		return err
	}
	state.AddMod(mod)
	return i.store.SaveGameState(state)
}

package activation

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/paths"
	"github.com/arthur-debert/agm/pkg/types"
)

// ScanLinks walks root and returns every symlink whose target lies under
// storageRoot, sorted by destination. Symlinked directories are not
// followed.
func ScanLinks(fs types.FS, root, storageRoot string) ([]types.Link, error) {
	links := []types.Link{}

	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := fs.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return errors.WrapFS(err, "failed to read %s", dir)
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			switch {
			case entry.Type()&os.ModeSymlink != 0:
				target, err := fs.Readlink(path)
				if err != nil {
					return errors.WrapFS(err, "failed to read link %s", path)
				}
				if !filepath.IsAbs(target) {
					target = filepath.Join(dir, target)
				}
				if paths.IsWithin(storageRoot, target) {
					links = append(links, types.Link{Source: target, Destination: path})
				}
			case entry.IsDir():
				if err := walk(path); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Destination < links[j].Destination })
	return links, nil
}

// Links lists the symlinks currently pointing from the game directory into
// the game's mod storage
func (e *Engine) Links(game string) ([]types.Link, error) {
	defer e.locks.lock(game)()

	profile, err := e.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	return ScanLinks(e.fs, profile.Game.Path, e.store.GameStorageDir(game))
}

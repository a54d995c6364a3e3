package activation

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/layout"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/paths"
	"github.com/arthur-debert/agm/pkg/types"
)

// Destination computes where entry of a mod stored in storageDir is linked.
// It reports false when the point does not resolve or the result would
// leave the game directory.
func Destination(profile *types.Profile, storageDir string, entry types.FileEntry) (types.Link, bool) {
	rel, ok := layout.ResolvePoint(profile.Layout, entry.Point)
	if !ok {
		return types.Link{}, false
	}

	target := filepath.FromSlash(entry.Target)
	dest := filepath.Join(profile.Game.Path, filepath.FromSlash(rel), target)
	if !paths.IsWithin(profile.Game.Path, dest) || dest == filepath.Clean(profile.Game.Path) {
		return types.Link{}, false
	}
	return types.Link{
		Source:      filepath.Join(storageDir, target),
		Destination: dest,
	}, true
}

// createLink symlinks link.Destination to link.Source, creating parent
// directories. A symlink already pointing at the source is accepted and
// reported with created=false. Anything else at the destination is an
// ErrAlreadyExists error.
func (e *Engine) createLink(link types.Link) (created bool, err error) {
	info, err := e.fs.Lstat(link.Destination)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			if current, rerr := e.fs.Readlink(link.Destination); rerr == nil && current == link.Source {
				return false, nil
			}
		}
		return false, errors.Newf(errors.ErrAlreadyExists, "%s already exists", link.Destination).
			WithDetail("source", link.Source)
	case !os.IsNotExist(err):
		return false, errors.WrapFS(err, "failed to check %s", link.Destination)
	}

	if err := e.fs.MkdirAll(filepath.Dir(link.Destination), 0755); err != nil {
		return false, errors.WrapFS(err, "failed to create %s", filepath.Dir(link.Destination))
	}
	if err := e.fs.Symlink(link.Source, link.Destination); err != nil {
		return false, errors.WrapFS(err, "failed to link %s", link.Destination).
			WithDetail("source", link.Source)
	}
	return true, nil
}

// removeLink removes path if it is a symlink. It returns the link's target
// and whether anything was removed; missing paths and non-symlinks are
// left alone.
func (e *Engine) removeLink(path string) (string, bool, error) {
	info, err := e.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.WrapFS(err, "failed to check %s", path)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		logger := logging.GetLogger("activation")
		logger.Warn().Str("path", path).Msg("Not a symlink, leaving it in place")
		return "", false, nil
	}

	target, err := e.fs.Readlink(path)
	if err != nil {
		return "", false, errors.WrapFS(err, "failed to read link %s", path)
	}
	if err := e.fs.Remove(path); err != nil {
		return "", false, errors.WrapFS(err, "failed to remove %s", path)
	}
	return target, true, nil
}

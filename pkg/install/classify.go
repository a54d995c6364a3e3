package install

import (
	"path"
	"path/filepath"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/layout"
	"github.com/arthur-debert/agm/pkg/types"
)

// Classify lists every regular file under root, except the sidecar at its
// top level, and assigns each the layout's point for its extension. Files
// are returned in lexical walk order with slash-separated targets; files no
// moddir accepts get an empty point.
func Classify(fs types.FS, profile *types.Profile, root, sidecarName string, caseInsensitive bool) ([]types.FileEntry, error) {
	classifier := layout.NewClassifier(profile.Layout, caseInsensitive)
	entries := []types.FileEntry{}

	var walk func(dir, rel string) error
	walk = func(dir, rel string) error {
		children, err := fs.ReadDir(dir)
		if err != nil {
			return errors.WrapFS(err, "failed to read %s", dir)
		}
		for _, child := range children {
			name := child.Name()
			target := path.Join(rel, name)
			switch {
			case child.IsDir():
				if err := walk(filepath.Join(dir, name), target); err != nil {
					return err
				}
			case child.Type().IsRegular():
				if rel == "" && name == sidecarName {
					continue
				}
				entries = append(entries, types.FileEntry{
					Target: target,
					Point:  classifier.ClassifyFile(target),
				})
			}
		}
		return nil
	}

	if err := walk(root, ""); err != nil {
		return nil, err
	}
	return entries, nil
}

// place asks placer about every unresolved entry, in order. It returns how
// many entries the placer resolved.
func place(entries []types.FileEntry, moddirs []string, placer Placer) (int, error) {
	placed := 0
	for i := range entries {
		if !entries[i].Point.IsEmpty() {
			continue
		}
		point, err := placer.ChoosePlacement(entries[i].Target, moddirs)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrInterrupted) {
				return placed, err
			}
			return placed, errors.Wrapf(err, errors.ErrInterrupted, "placement of %s aborted", entries[i].Target)
		}
		if point.IsEmpty() {
			continue
		}
		entries[i].Point = point
		placed++
	}
	return placed, nil
}

package datastore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/types"
)

// writeFileAtomic writes data to a sibling temp file and renames it over
// path, so readers see either the old or the new content.
func writeFileAtomic(fs types.FS, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.WrapFS(err, "failed to create directory %s", dir)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), time.Now().UnixNano()))
	if err := fs.WriteFile(tmp, data, perm); err != nil {
		_ = fs.Remove(tmp) // best-effort cleanup
		return errors.WrapFS(err, "failed to write temp file for %s", path)
	}

	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp) // best-effort cleanup
		return errors.WrapFS(err, "failed to rename temp file to %s", path)
	}
	return nil
}

package install

import (
	"path/filepath"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/types"
)

// copyTree copies the regular files and directories under src into dst
func copyTree(fs types.FS, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return errors.WrapFS(err, "failed to read mod source %s", src)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "mod source %s is not a directory", src)
	}
	if err := fs.MkdirAll(dst, 0755); err != nil {
		return errors.WrapFS(err, "failed to create %s", dst)
	}

	children, err := fs.ReadDir(src)
	if err != nil {
		return errors.WrapFS(err, "failed to read %s", src)
	}
	for _, child := range children {
		from := filepath.Join(src, child.Name())
		to := filepath.Join(dst, child.Name())
		switch {
		case child.IsDir():
			if err := copyTree(fs, from, to); err != nil {
				return err
			}
		case child.Type().IsRegular():
			if err := copyFile(fs, from, to); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(fs types.FS, src, dst string) error {
	data, err := fs.ReadFile(src)
	if err != nil {
		return errors.WrapFS(err, "failed to read %s", src)
	}
	if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.WrapFS(err, "failed to create %s", filepath.Dir(dst))
	}
	if err := fs.WriteFile(dst, data, 0644); err != nil {
		return errors.WrapFS(err, "failed to write %s", dst)
	}
	return nil
}

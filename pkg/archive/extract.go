package archive

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/paths"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Extractor unpacks an archive into a directory
type Extractor interface {
	Extract(archivePath, destDir string) error
}

// ExtractorFunc adapts a function to Extractor
type ExtractorFunc func(archivePath, destDir string) error

// Extract calls f
func (f ExtractorFunc) Extract(archivePath, destDir string) error {
	return f(archivePath, destDir)
}

type defaultExtractor struct{}

// New returns the extractor for every format Detect recognises
func New() Extractor {
	return defaultExtractor{}
}

// Extract unpacks archivePath into destDir, creating destDir if needed.
// Unknown formats fail with ErrUnsupported.
func (defaultExtractor) Extract(archivePath, destDir string) error {
	return Extract(archivePath, destDir)
}

// Extract unpacks archivePath into destDir with the default extractor
func Extract(archivePath, destDir string) error {
	format := Detect(archivePath)
	log := logging.GetLogger("archive")
	log.Debug().
		Str("archive", archivePath).
		Str("format", string(format)).
		Str("dest", destDir).
		Msg("Extracting archive")

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.WrapFS(err, "failed to create %s", destDir)
	}

	switch format {
	case FormatZip:
		return extractZip(archivePath, destDir)
	case FormatTar, FormatTarGz, FormatTarZst:
		return extractTarFile(archivePath, destDir, format)
	default:
		return errors.Newf(errors.ErrUnsupported, "unsupported archive format: %s", filepath.Base(archivePath)).
			WithDetail("archive", archivePath)
	}
}

// isRoot reports whether an entry names the archive root itself ("./")
func isRoot(name string) bool {
	return filepath.Clean(filepath.FromSlash(strings.TrimLeft(name, `/\`))) == "."
}

// entryPath maps an archive entry name to its location under destDir
func entryPath(destDir, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimLeft(name, `/\`)))
	target := filepath.Join(destDir, clean)
	if clean == "." || !paths.IsWithin(destDir, target) {
		return "", errors.Newf(errors.ErrInvalidInput, "archive entry %q escapes the destination", name)
	}
	return target, nil
}

func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMalformed, "failed to open zip %s", archivePath)
	}
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		mode := f.Mode()
		if mode&os.ModeSymlink != 0 {
			logger := logging.GetLogger("archive")
			logger.Warn().Str("entry", f.Name).Msg("Skipping symlink entry")
			continue
		}
		if isRoot(f.Name) {
			continue
		}

		target, err := entryPath(destDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.WrapFS(err, "failed to create %s", target)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return errors.Wrapf(err, errors.ErrMalformed, "failed to read zip entry %s", f.Name)
		}
		err = writeEntry(target, rc, mode.Perm())
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func extractTarFile(archivePath, destDir string, format Format) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return errors.WrapFS(err, "failed to open %s", archivePath)
	}
	defer func() { _ = file.Close() }()

	var r io.Reader = file
	switch format {
	case FormatTarGz:
		gz, err := gzip.NewReader(file)
		if err != nil {
			return errors.Wrapf(err, errors.ErrMalformed, "failed to read gzip stream %s", archivePath)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	case FormatTarZst:
		zr, err := zstd.NewReader(file)
		if err != nil {
			return errors.Wrapf(err, errors.ErrMalformed, "failed to read zstd stream %s", archivePath)
		}
		defer zr.Close()
		r = zr
	}

	return extractTar(r, destDir)
}

func extractTar(r io.Reader, destDir string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrMalformed, "failed to read tar entry")
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if isRoot(hdr.Name) {
				continue
			}
			target, err := entryPath(destDir, hdr.Name)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.WrapFS(err, "failed to create %s", target)
			}
		case tar.TypeReg:
			target, err := entryPath(destDir, hdr.Name)
			if err != nil {
				return err
			}
			if err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			logger := logging.GetLogger("archive")
			logger.Warn().
				Str("entry", hdr.Name).
				Int("type", int(hdr.Typeflag)).
				Msg("Skipping non-regular tar entry")
		}
	}
}

func writeEntry(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.WrapFS(err, "failed to create %s", filepath.Dir(target))
	}
	if perm == 0 {
		perm = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0600)
	if err != nil {
		return errors.WrapFS(err, "failed to create %s", target)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrIO, "failed to write %s", target)
	}
	if err := out.Close(); err != nil {
		return errors.WrapFS(err, "failed to close %s", target)
	}
	return nil
}

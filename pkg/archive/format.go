package archive

import (
	"path/filepath"
	"strings"
)

// Format identifies an archive encoding
type Format string

const (
	FormatUnknown Format = ""
	FormatZip     Format = "zip"
	FormatTar     Format = "tar"
	FormatTarGz   Format = "tar.gz"
	FormatTarZst  Format = "tar.zst"
)

// suffixes are checked in order, longest first
var suffixes = []struct {
	suffix string
	format Format
}{
	{".tar.gz", FormatTarGz},
	{".tar.zst", FormatTarZst},
	{".tgz", FormatTarGz},
	{".tzst", FormatTarZst},
	{".tar", FormatTar},
	{".zip", FormatZip},
}

// Detect returns the archive format implied by path's name
func Detect(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	for _, s := range suffixes {
		if strings.HasSuffix(base, s.suffix) {
			return s.format
		}
	}
	return FormatUnknown
}

// StemName returns the archive's base name without its archive suffix
// (mod.tar.gz -> mod). Names with an unknown suffix lose only their last
// extension.
func StemName(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) && len(base) > len(s.suffix) {
			return base[:len(base)-len(s.suffix)]
		}
	}
	if ext := filepath.Ext(base); ext != "" && ext != base {
		return strings.TrimSuffix(base, ext)
	}
	return base
}

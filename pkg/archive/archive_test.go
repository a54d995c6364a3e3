// pkg/archive/archive_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test format detection and extraction of zip and tar archives

package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	name    string
	content string
	link    string
	dir     bool
}

var modEntries = []entry{
	{name: "textures/", dir: true},
	{name: "textures/sky.dds", content: "dds"},
	{name: "plugin.esp", content: "esp"},
	{name: "docs/readme.txt", content: "hello"},
}

func writeZip(t *testing.T, path string, entries []entry) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		if !e.dir {
			_, err = io.WriteString(w, e.content)
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func tarBytes(t *testing.T, entries []entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0644}
		switch {
		case e.dir:
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0755
		case e.link != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = e.link
		default:
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.content))
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Typeflag == tar.TypeReg {
			_, err := io.WriteString(tw, e.content)
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func writeTarGz(t *testing.T, path string, entries []entry) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(tarBytes(t, entries))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func writeTarZst(t *testing.T, path string, entries []entry) {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write(tarBytes(t, entries))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func assertModFiles(t *testing.T, dest string) {
	t.Helper()
	for _, e := range modEntries {
		if e.dir {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(e.name)))
		require.NoError(t, err, e.name)
		assert.Equal(t, e.content, string(data))
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"mod.zip", FormatZip},
		{"Mod.ZIP", FormatZip},
		{"mod.tar", FormatTar},
		{"mod.tar.gz", FormatTarGz},
		{"mod.tgz", FormatTarGz},
		{"mod.tar.zst", FormatTarZst},
		{"mod.tzst", FormatTarZst},
		{"mod.7z", FormatUnknown},
		{"mod", FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(filepath.Join("/downloads", tt.path)))
		})
	}
}

func TestStemName(t *testing.T) {
	assert.Equal(t, "SkyUI", StemName("/tmp/SkyUI.zip"))
	assert.Equal(t, "mod-1.2", StemName("mod-1.2.tar.gz"))
	assert.Equal(t, "mod", StemName("mod.TGZ"))
	assert.Equal(t, "mod", StemName("mod.7z"))
	assert.Equal(t, "mod", StemName("mod"))
	assert.Equal(t, ".zip", StemName(".zip"))
}

func TestExtractFormats(t *testing.T) {
	writers := map[string]func(*testing.T, string, []entry){
		"mod.zip":     writeZip,
		"mod.tar.gz":  writeTarGz,
		"mod.tar.zst": writeTarZst,
		"mod.tar": func(t *testing.T, path string, entries []entry) {
			require.NoError(t, os.WriteFile(path, tarBytes(t, entries), 0644))
		},
	}

	for name, write := range writers {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			archivePath := filepath.Join(dir, name)
			write(t, archivePath, modEntries)

			dest := filepath.Join(dir, "out", "mod")
			require.NoError(t, New().Extract(archivePath, dest))
			assertModFiles(t, dest)
		})
	}
}

func TestExtractRejectsTraversal(t *testing.T) {
	dir := t.TempDir()

	tarPath := filepath.Join(dir, "evil.tar")
	require.NoError(t, os.WriteFile(tarPath, tarBytes(t, []entry{{name: "../evil.txt", content: "x"}}), 0644))
	err := Extract(tarPath, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	zipPath := filepath.Join(dir, "evil.zip")
	writeZip(t, zipPath, []entry{{name: "a/../../evil.txt", content: "x"}})
	err = Extract(zipPath, filepath.Join(dir, "out2"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, statErr := os.Stat(filepath.Join(dir, "evil.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractSkipsSymlinks(t *testing.T) {
	dir := t.TempDir()
	tarPath := filepath.Join(dir, "links.tar")
	require.NoError(t, os.WriteFile(tarPath, tarBytes(t, []entry{
		{name: "./", dir: true},
		{name: "real.txt", content: "r"},
		{name: "link.txt", link: "/etc/passwd"},
	}), 0644))

	dest := filepath.Join(dir, "out")
	require.NoError(t, Extract(tarPath, dest))

	_, err := os.Lstat(filepath.Join(dest, "link.txt"))
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(dest, "real.txt"))
	require.NoError(t, err)
	assert.Equal(t, "r", string(data))
}

func TestExtractUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.rar")
	require.NoError(t, os.WriteFile(path, []byte("rar"), 0644))

	err := Extract(path, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupported))
}

func TestExtractCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	err := Extract(path, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformed))
}

func TestExtractorFunc(t *testing.T) {
	var got []string
	ex := ExtractorFunc(func(archivePath, destDir string) error {
		got = append(got, archivePath, destDir)
		return nil
	})
	require.NoError(t, ex.Extract("a.zip", "/dest"))
	assert.Equal(t, []string{"a.zip", "/dest"}, got)
}

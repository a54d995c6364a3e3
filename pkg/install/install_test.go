// pkg/install/install_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (TestEnvironment), mock Placer
// PURPOSE: Test mod installation, classification and placement prompts

package install_test

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agm/pkg/activation"
	"github.com/arthur-debert/agm/pkg/archive"
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/install"
	"github.com/arthur-debert/agm/pkg/testutil"
	"github.com/arthur-debert/agm/pkg/types"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPlacer is a mock implementation of install.Placer
type MockPlacer struct {
	mock.Mock
}

func (m *MockPlacer) ChoosePlacement(target string, moddirs []string) (types.Point, error) {
	args := m.Called(target, moddirs)
	return args.Get(0).(types.Point), args.Error(1)
}

func skyrim(env *testutil.TestEnvironment) *types.Profile {
	return env.AddProfile("skyrim",
		testutil.ModDir("Data", "esp", "bsa"),
		testutil.Dir("Data",
			testutil.ModDir("textures", "dds"),
			testutil.ModDir("meshes", "nif"),
		),
	)
}

func modSource(t *testing.T, env *testutil.TestEnvironment, tree testutil.FileTree) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "CoolMod")
	env.WithFileTree(src, tree)
	return src
}

func TestInstall_ClassifiesByExtension(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	src := modSource(t, env, testutil.FileTree{
		"cool.esp": "esp",
		"textures": testutil.FileTree{"a.dds": "a", "b.dds": "b"},
		"meshes":   testutil.FileTree{"m.nif": "m"},
	})

	placer := new(MockPlacer)
	inst := install.New(env.FS, env.DataStore, nil)
	result, err := inst.Install(install.Options{Game: "skyrim", Source: src, Placer: placer})
	require.NoError(t, err)

	assert.Equal(t, "CoolMod", result.Spec.Name)
	assert.Equal(t, []types.FileEntry{
		{Target: "cool.esp", Point: "@Data"},
		{Target: "meshes/m.nif", Point: "@meshes"},
		{Target: "textures/a.dds", Point: "@textures"},
		{Target: "textures/b.dds", Point: "@textures"},
	}, result.Spec.Files)
	assert.Equal(t, 4, result.Classified)
	assert.Equal(t, 0, result.Placed)
	assert.Empty(t, result.Unresolved)
	placer.AssertNotCalled(t, "ChoosePlacement", mock.Anything, mock.Anything)

	stored, err := env.DataStore.LoadModSpec("skyrim", "CoolMod")
	require.NoError(t, err)
	assert.Equal(t, result.Spec, stored)
	assert.True(t, env.State("skyrim").HasMod("CoolMod"))
}

func TestInstall_AsksPlacerForUnclassified(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	src := modSource(t, env, testutil.FileTree{
		"cool.esp":   "esp",
		"readme.txt": "read me",
		"LICENSE":    "mit",
	})

	moddirs := []string{"Data", "textures", "meshes"}
	placer := new(MockPlacer)
	placer.On("ChoosePlacement", "LICENSE", moddirs).Return(types.Point(""), nil).Once()
	placer.On("ChoosePlacement", "readme.txt", moddirs).Return(types.Point("docs"), nil).Once()

	inst := install.New(env.FS, env.DataStore, nil)
	result, err := inst.Install(install.Options{Game: "skyrim", Source: src, Placer: placer})
	require.NoError(t, err)
	placer.AssertExpectations(t)

	assert.Equal(t, []types.FileEntry{
		{Target: "LICENSE", Point: ""},
		{Target: "cool.esp", Point: "@Data"},
		{Target: "readme.txt", Point: "docs"},
	}, result.Spec.Files)
	assert.Equal(t, 1, result.Placed)
	assert.Equal(t, []string{"LICENSE"}, result.Unresolved)
}

func TestInstall_QuitRemovesStorage(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	src := modSource(t, env, testutil.FileTree{"readme.txt": "x"})

	placer := install.PlacerFunc(func(string, []string) (types.Point, error) {
		return "", install.ErrQuit
	})
	inst := install.New(env.FS, env.DataStore, nil)
	_, err := inst.Install(install.Options{Game: "skyrim", Source: src, Placer: placer})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInterrupted))

	testutil.AssertNotExists(t, env.DataStore.ModDir("skyrim", "CoolMod"))
	assert.False(t, env.State("skyrim").HasMod("CoolMod"))
}

func TestInstall_PlacerErrorIsInterrupted(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	src := modSource(t, env, testutil.FileTree{"readme.txt": "x"})

	placer := install.PlacerFunc(func(string, []string) (types.Point, error) {
		return "", os.ErrClosed
	})
	_, err := install.New(env.FS, env.DataStore, nil).
		Install(install.Options{Game: "skyrim", Source: src, Placer: placer})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInterrupted))
}

func TestInstall_ReadmeOnlyModIsUnresolved(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddProfile("g", testutil.ModDir("mods", "zip"))
	src := modSource(t, env, testutil.FileTree{"readme.txt": "hi"})

	result, err := install.New(env.FS, env.DataStore, nil).
		Install(install.Options{Game: "g", Source: src, Placer: install.SkipPlacer{}})
	require.NoError(t, err)

	require.Len(t, result.Spec.Files, 1)
	assert.Equal(t, "readme.txt", result.Spec.Files[0].Target)
	assert.True(t, result.Spec.Files[0].Point.IsEmpty())
	assert.True(t, result.Spec.HasUnresolved())

	links, err := activation.New(env.FS, env.DataStore).ActivateMod("g", result.Spec.Name)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestInstall_Archive(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)

	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	for name, content := range map[string]string{"plugin.esp": "p", "textures/t.dds": "t"} {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(content)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	var gzBuf bytes.Buffer
	gz := gzip.NewWriter(&gzBuf)
	_, err := gz.Write(tarBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	archivePath := filepath.Join(t.TempDir(), "Fancy-1.0.tar.gz")
	require.NoError(t, os.WriteFile(archivePath, gzBuf.Bytes(), 0644))

	result, err := install.New(env.FS, env.DataStore, archive.New()).
		Install(install.Options{Game: "skyrim", Archive: archivePath, URL: "https://example.org/fancy"})
	require.NoError(t, err)

	assert.Equal(t, "Fancy-1.0", result.Spec.Name)
	assert.Equal(t, "https://example.org/fancy", result.Spec.URL)
	assert.Equal(t, []types.FileEntry{
		{Target: "plugin.esp", Point: "@Data"},
		{Target: "textures/t.dds", Point: "@textures"},
	}, result.Spec.Files)
}

func TestInstall_UnsupportedArchiveStoredVerbatim(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)

	archivePath := filepath.Join(t.TempDir(), "Patch.esp")
	require.NoError(t, os.WriteFile(archivePath, []byte("plugin"), 0644))

	result, err := install.New(env.FS, env.DataStore, nil).
		Install(install.Options{Game: "skyrim", Archive: archivePath})
	require.NoError(t, err)

	assert.Equal(t, "Patch", result.Spec.Name)
	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, []types.FileEntry{{Target: "Patch.esp", Point: "@Data"}}, result.Spec.Files)
}

func TestInstall_ExtractorFailureCleansUp(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)

	failing := archive.ExtractorFunc(func(_, dest string) error {
		_ = os.MkdirAll(dest, 0755)
		_ = os.WriteFile(filepath.Join(dest, "partial.esp"), []byte("x"), 0644)
		return errors.New(errors.ErrMalformed, "corrupt")
	})
	_, err := install.New(env.FS, env.DataStore, failing).
		Install(install.Options{Game: "skyrim", Archive: "/downloads/Broken.zip"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformed))
	testutil.AssertNotExists(t, env.DataStore.ModDir("skyrim", "Broken"))
}

func TestInstall_AlreadyInstalled(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	src := modSource(t, env, testutil.FileTree{"a.esp": "1"})
	inst := install.New(env.FS, env.DataStore, nil)

	_, err := inst.Install(install.Options{Game: "skyrim", Source: src})
	require.NoError(t, err)

	_, err = inst.Install(install.Options{Game: "skyrim", Source: src})
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	require.NoError(t, os.WriteFile(filepath.Join(src, "b.esp"), []byte("2"), 0644))
	result, err := inst.Install(install.Options{Game: "skyrim", Source: src, Overwrite: true})
	require.NoError(t, err)
	assert.Len(t, result.Spec.Files, 2)
}

func TestInstall_OverwriteQuitKeepsPreviousInstall(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	src := modSource(t, env, testutil.FileTree{"a.esp": "old"})
	inst := install.New(env.FS, env.DataStore, nil)

	_, err := inst.Install(install.Options{Game: "skyrim", Source: src})
	require.NoError(t, err)

	env.WithFileTree(src, testutil.FileTree{"a.esp": "new", "readme.txt": "x"})
	quit := install.PlacerFunc(func(string, []string) (types.Point, error) {
		return "", install.ErrQuit
	})
	_, err = inst.Install(install.Options{Game: "skyrim", Source: src, Overwrite: true, Placer: quit})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInterrupted))

	storage := env.DataStore.ModDir("skyrim", "CoolMod")
	testutil.AssertRegularFile(t, filepath.Join(storage, "a.esp"), "old")
	testutil.AssertNotExists(t, filepath.Join(storage, "readme.txt"))
	spec, err := env.DataStore.LoadModSpec("skyrim", "CoolMod")
	require.NoError(t, err)
	assert.Len(t, spec.Files, 1)
	assert.True(t, env.State("skyrim").HasMod("CoolMod"))

	mods, err := env.DataStore.ListStoredMods("skyrim")
	require.NoError(t, err)
	assert.Equal(t, []string{"CoolMod"}, mods, "no staging leftovers")
}

func TestInstall_OverwriteExtractorFailureKeepsPreviousInstall(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	src := modSource(t, env, testutil.FileTree{"a.esp": "old"})
	_, err := install.New(env.FS, env.DataStore, nil).
		Install(install.Options{Game: "skyrim", Source: src, ModName: "Broken"})
	require.NoError(t, err)

	failing := archive.ExtractorFunc(func(_, dest string) error {
		_ = os.MkdirAll(dest, 0755)
		_ = os.WriteFile(filepath.Join(dest, "partial.esp"), []byte("x"), 0644)
		return errors.New(errors.ErrMalformed, "corrupt")
	})
	_, err = install.New(env.FS, env.DataStore, failing).
		Install(install.Options{Game: "skyrim", Archive: "/downloads/Broken.zip", Overwrite: true})
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformed))

	storage := env.DataStore.ModDir("skyrim", "Broken")
	testutil.AssertRegularFile(t, filepath.Join(storage, "a.esp"), "old")
	testutil.AssertNotExists(t, filepath.Join(storage, "partial.esp"))
}

func TestInstall_OverwriteRefusedWhileActive(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	src := modSource(t, env, testutil.FileTree{"a.esp": "old"})
	inst := install.New(env.FS, env.DataStore, nil)

	_, err := inst.Install(install.Options{Game: "skyrim", Source: src})
	require.NoError(t, err)
	env.AddPreset("skyrim", "main", "CoolMod")
	_, err = activation.New(env.FS, env.DataStore).SwitchPreset("skyrim", "main")
	require.NoError(t, err)

	env.WithFileTree(src, testutil.FileTree{"b.esp": "new"})
	_, err = inst.Install(install.Options{Game: "skyrim", Source: src, Overwrite: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	assert.Contains(t, err.Error(), "active preset 'main'")

	storage := env.DataStore.ModDir("skyrim", "CoolMod")
	testutil.AssertRegularFile(t, filepath.Join(storage, "a.esp"), "old")
	testutil.AssertNotExists(t, filepath.Join(storage, "b.esp"))
	testutil.AssertSymlink(t, filepath.Join(env.GamePath("skyrim"), "Data", "a.esp"), filepath.Join(storage, "a.esp"))

	// once the preset is switched off the reinstall goes through
	_, err = activation.New(env.FS, env.DataStore).DisablePreset("skyrim")
	require.NoError(t, err)
	result, err := inst.Install(install.Options{Game: "skyrim", Source: src, Overwrite: true})
	require.NoError(t, err)
	assert.Len(t, result.Spec.Files, 2)
	testutil.AssertRegularFile(t, filepath.Join(storage, "b.esp"), "new")
}

func TestInstall_InputErrors(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	inst := install.New(env.FS, env.DataStore, nil)

	_, err := inst.Install(install.Options{Game: "skyrim"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = inst.Install(install.Options{Game: "skyrim", Source: "/a", Archive: "/b.zip"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = inst.Install(install.Options{Game: "skyrim", Source: t.TempDir()})
	assert.True(t, errors.IsNotFound(err))
}

func TestInstall_CaseInsensitive(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	src := modSource(t, env, testutil.FileTree{"LOUD.ESP": "x"})

	result, err := install.New(env.FS, env.DataStore, nil).
		Install(install.Options{Game: "skyrim", Source: src, CaseInsensitive: true})
	require.NoError(t, err)
	assert.Equal(t, types.Point("@Data"), result.Spec.Files[0].Point)
}

func TestClassify_SkipsTopLevelSidecar(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	profile := types.NewProfile("g", "/g")
	profile.Layout = []types.LayoutNode{testutil.ModDir("cfg", "yaml")}

	root := "/storage/m"
	env.WithFileTree(root, testutil.FileTree{
		"m.yaml": "sidecar",
		"sub":    testutil.FileTree{"m.yaml": "not a sidecar"},
	})

	entries, err := install.Classify(env.FS, profile, root, "m.yaml", false)
	require.NoError(t, err)
	assert.Equal(t, []types.FileEntry{{Target: "sub/m.yaml", Point: "@cfg"}}, entries)
}

func TestReclassify(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	env.AddMod("skyrim", "m",
		testutil.File("a.esp", "custom/dir"),
		testutil.File("b.dds", ""),
		testutil.File("notes.txt", ""),
	)

	placer := new(MockPlacer)
	placer.On("ChoosePlacement", "notes.txt", mock.Anything).Return(types.Point("@Data"), nil)

	inst := install.New(env.FS, env.DataStore, nil)
	result, err := inst.Reclassify("skyrim", "m", placer, false)
	require.NoError(t, err)
	placer.AssertExpectations(t)

	assert.Equal(t, []types.FileEntry{
		{Target: "a.esp", Point: "custom/dir"},
		{Target: "b.dds", Point: "@textures"},
		{Target: "notes.txt", Point: "@Data"},
	}, result.Spec.Files)
	assert.Equal(t, 1, result.Classified)
	assert.Equal(t, 1, result.Placed)
	assert.Empty(t, result.Unresolved)
}

func TestSetPoint(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	skyrim(env)
	env.AddMod("skyrim", "m", testutil.File("readme.txt", ""))
	inst := install.New(env.FS, env.DataStore, nil)

	spec, err := inst.SetPoint("skyrim", "m", "readme.txt", "@textures")
	require.NoError(t, err)
	assert.False(t, spec.HasUnresolved())

	_, err = inst.SetPoint("skyrim", "m", "readme.txt", "@nowhere")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = inst.SetPoint("skyrim", "m", "missing.txt", "docs")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	spec, err = inst.SetPoint("skyrim", "m", "readme.txt", " @meshes\t")
	require.NoError(t, err)
	assert.Equal(t, types.Point("@meshes"), spec.Files[0].Point)

	spec, err = inst.SetPoint("skyrim", "m", "readme.txt", "  ")
	require.NoError(t, err)
	assert.Equal(t, types.Point(""), spec.Files[0].Point)

	stored, err := env.DataStore.LoadModSpec("skyrim", "m")
	require.NoError(t, err)
	assert.True(t, stored.HasUnresolved())
}

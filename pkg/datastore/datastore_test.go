// pkg/datastore/datastore_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem (afero)
// PURPOSE: Test persistence of profiles, presets, mod specs and game state

package datastore_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/agm/pkg/datastore"
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/filesystem"
	"github.com/arthur-debert/agm/pkg/paths"
	"github.com/arthur-debert/agm/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (datastore.DataStore, types.FS, paths.Paths) {
	t.Helper()
	fs := filesystem.NewMemory()
	p, err := paths.New("/data")
	require.NoError(t, err)
	return datastore.New(fs, p), fs, p
}

func TestProfileRoundTrip(t *testing.T) {
	store, _, _ := newStore(t)

	profile := types.NewProfile("skyrim", "/games/skyrim")
	profile.Layout = []types.LayoutNode{
		{Name: "Data", Kind: types.KindModDir, Mime: []string{"esp", "bsa"}},
	}
	require.NoError(t, store.SaveProfile("skyrim", profile))

	loaded, err := store.LoadProfile("skyrim")
	require.NoError(t, err)
	assert.Equal(t, profile, loaded)

	exists, err := store.ProfileExists("skyrim")
	require.NoError(t, err)
	assert.True(t, exists)

	names, err := store.ListProfiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"skyrim"}, names)

	require.NoError(t, store.DeleteProfile("skyrim"))
	exists, err = store.ProfileExists("skyrim")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoadProfileErrors(t *testing.T) {
	store, fs, p := newStore(t)

	_, err := store.LoadProfile("missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, fs.MkdirAll(p.ProfilesDir(), 0755))
	require.NoError(t, fs.WriteFile(p.ProfilePath("broken"), []byte("layout: [\n"), 0644))
	_, err = store.LoadProfile("broken")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformed))

	require.NoError(t, fs.WriteFile(p.ProfilePath("badkind"), []byte(`
game: {name: g, path: /g}
layout:
  - {name: x, type: folder}
`), 0644))
	_, err = store.LoadProfile("badkind")
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformed))

	require.NoError(t, fs.WriteFile(p.ProfilePath("nokind"), []byte(`
game: {name: g, path: /g}
layout:
  - {name: textures, mime: [dds]}
`), 0644))
	_, err = store.LoadProfile("nokind")
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformed))
}

func TestSaveProfileRaw(t *testing.T) {
	store, _, _ := newStore(t)

	err := store.SaveProfileRaw("bad", []byte("game: [unterminated"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformed))

	content := []byte("# hand written\ngame:\n  name: g\n  path: /g\nlayout: []\n")
	require.NoError(t, store.SaveProfileRaw("g", content))
	loaded, err := store.LoadProfile("g")
	require.NoError(t, err)
	assert.Equal(t, "/g", loaded.Game.Path)
}

func TestSaveRejectsBadNames(t *testing.T) {
	store, _, _ := newStore(t)

	err := store.SaveProfile("../escape", types.NewProfile("x", "/x"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = store.SavePreset("g", types.NewPreset(""))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestPresetRoundTrip(t *testing.T) {
	store, _, _ := newStore(t)

	preset := types.NewPreset("modded")
	preset.Mods = []types.ModEntry{
		types.SimpleMod("a"),
		types.DetailedMod(types.ModInfo{Name: "b", URL: "https://example.org/b"}),
	}
	require.NoError(t, store.SavePreset("g", preset))

	loaded, err := store.LoadPreset("g", "modded")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, loaded.ModNames())
	assert.False(t, loaded.Mods[0].IsDetailed())
	assert.True(t, loaded.Mods[1].IsDetailed())

	require.NoError(t, store.SavePreset("g", types.NewPreset("vanilla")))
	names, err := store.ListPresets("g")
	require.NoError(t, err)
	assert.Equal(t, []string{"modded", "vanilla"}, names)

	other, err := store.ListPresets("other")
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = store.LoadPreset("g", "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPresetNotFound))
}

func TestLoadPresetDefaultsName(t *testing.T) {
	store, _, _ := newStore(t)

	require.NoError(t, store.SavePresetRaw("g", "quick", []byte("mods: [a, b]\n")))
	preset, err := store.LoadPreset("g", "quick")
	require.NoError(t, err)
	assert.Equal(t, "quick", preset.Name)
	assert.Equal(t, []string{"a", "b"}, preset.ModNames())
}

func TestPresetFileNameIsIdentity(t *testing.T) {
	store, fs, p := newStore(t)

	err := store.SavePresetRaw("g", "foo", []byte("name: bar\nmods: []\n"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	exists, err := store.PresetExists("g", "foo")
	require.NoError(t, err)
	assert.False(t, exists)

	// a record edited by hand with a stale name still saves back to its file
	path := p.PresetPath("g", "foo")
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fs.WriteFile(path, []byte("name: bar\nmods: []\n"), 0644))

	preset, err := store.LoadPreset("g", "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", preset.Name)
	preset.AddMod("x")
	require.NoError(t, store.SavePreset("g", preset))

	names, err := store.ListPresets("g")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo"}, names)
	reloaded, err := store.LoadPreset("g", "foo")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, reloaded.ModNames())
}

func TestModSpecRoundTrip(t *testing.T) {
	store, fs, p := newStore(t)

	spec := &types.ModSpec{
		Name: "m",
		Files: []types.FileEntry{
			{Target: "plugin.esp", Point: "@Data"},
			{Target: "readme.txt", Point: ""},
		},
	}
	require.NoError(t, store.SaveModSpec("g", spec))

	sidecar := filepath.Join(p.ModDir("g", "m"), "m.yaml")
	_, err := fs.Stat(sidecar)
	require.NoError(t, err)

	loaded, err := store.LoadModSpec("g", "m")
	require.NoError(t, err)
	assert.Equal(t, spec, loaded)
	assert.True(t, loaded.HasUnresolved())

	mods, err := store.ListStoredMods("g")
	require.NoError(t, err)
	assert.Equal(t, []string{"m"}, mods)

	require.NoError(t, store.DeleteMod("g", "m"))
	_, err = store.LoadModSpec("g", "m")
	assert.True(t, errors.IsErrorCode(err, errors.ErrModSpecNotFound))
}

func TestGameState(t *testing.T) {
	store, _, _ := newStore(t)

	state, err := store.LoadGameState("g")
	require.NoError(t, err)
	assert.Equal(t, "g", state.Profile)
	assert.False(t, state.IsActive())

	state.AddPreset("vanilla")
	state.AddMod("m")
	state.ActivePreset = "vanilla"
	require.NoError(t, store.SaveGameState(state))

	loaded, err := store.LoadGameState("g")
	require.NoError(t, err)
	assert.Equal(t, state, loaded)

	games, err := store.ListGames()
	require.NoError(t, err)
	assert.Equal(t, []string{"g"}, games)

	require.NoError(t, store.DeleteGameState("g"))
	require.NoError(t, store.DeleteGameState("g"))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	store, fs, p := newStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveGameState(types.NewGameState("g")))
	}

	entries, err := fs.ReadDir(p.StateDir())
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.Contains(entry.Name(), ".tmp-"), entry.Name())
	}
	assert.Len(t, entries, 1)
}

func TestSaveOnReadOnlyStorage(t *testing.T) {
	p, err := paths.New("/data")
	require.NoError(t, err)
	store := datastore.New(filesystem.NewAferoFS(afero.NewReadOnlyFs(afero.NewMemMapFs())), p)

	err = store.SaveGameState(types.NewGameState("g"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
	assert.Contains(t, err.Error(), "[IO] failed to create directory")
}

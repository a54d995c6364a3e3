// pkg/status/status_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem with symlinks (TestEnvironment)
// PURPOSE: Test link status reports against activated presets

package status_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agm/pkg/activation"
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/status"
	"github.com/arthur-debert/agm/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const game = "morrowind"

func setup(t *testing.T) (*testutil.TestEnvironment, *activation.Engine, *status.Checker) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddProfile(game,
		testutil.ModDir("plugins", "esp"),
		testutil.Dir("data", testutil.ModDir("meshes", "nif")),
	)
	env.AddMod(game, "a",
		testutil.File("a.esp", "@plugins"),
		testutil.File("x/a.nif", "@meshes"),
	)
	env.AddPreset(game, "main", "a")
	return env, activation.New(env.FS, env.DataStore), status.NewChecker(env.FS, env.DataStore)
}

func statesByTarget(report *status.Report) map[string]status.LinkState {
	states := map[string]status.LinkState{}
	for _, e := range report.Entries {
		states[e.Mod+"/"+e.Target] = e.State
	}
	return states
}

func TestCheck_Inactive(t *testing.T) {
	_, _, checker := setup(t)

	report, err := checker.Check(game)
	require.NoError(t, err)
	assert.Equal(t, game, report.Game)
	assert.Empty(t, report.ActivePreset)
	assert.Empty(t, report.Entries)
	assert.Empty(t, report.Stray)
	assert.True(t, report.Healthy())
}

func TestCheck_AllLinked(t *testing.T) {
	_, engine, checker := setup(t)
	_, err := engine.SwitchPreset(game, "main")
	require.NoError(t, err)

	report, err := checker.Check(game)
	require.NoError(t, err)
	assert.Equal(t, "main", report.ActivePreset)
	assert.Equal(t, map[string]status.LinkState{
		"a/a.esp":   status.StateLinked,
		"a/x/a.nif": status.StateLinked,
	}, statesByTarget(report))
	assert.Empty(t, report.Stray)
	assert.True(t, report.Healthy())
	assert.Equal(t, 2, report.Counts()[status.StateLinked])
}

func TestCheck_MissingAndConflict(t *testing.T) {
	env, _, checker := setup(t)
	env.SetActive(game, "main")

	conflict := filepath.Join(env.GamePath(game), "plugins", "a.esp")
	require.NoError(t, os.MkdirAll(filepath.Dir(conflict), 0755))
	require.NoError(t, os.WriteFile(conflict, []byte("mine"), 0644))

	report, err := checker.Check(game)
	require.NoError(t, err)
	assert.Equal(t, map[string]status.LinkState{
		"a/a.esp":   status.StateConflict,
		"a/x/a.nif": status.StateMissing,
	}, statesByTarget(report))
	assert.False(t, report.Healthy())
}

func TestCheck_DanglingAndForeign(t *testing.T) {
	env, engine, checker := setup(t)
	_, err := engine.SwitchPreset(game, "main")
	require.NoError(t, err)

	storage := env.DataStore.ModDir(game, "a")
	require.NoError(t, os.Remove(filepath.Join(storage, "a.esp")))

	nif := filepath.Join(env.GamePath(game), "data", "meshes", "x", "a.nif")
	other := filepath.Join(t.TempDir(), "other.nif")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	require.NoError(t, os.Remove(nif))
	require.NoError(t, os.Symlink(other, nif))

	report, err := checker.Check(game)
	require.NoError(t, err)
	assert.Equal(t, map[string]status.LinkState{
		"a/a.esp":   status.StateDangling,
		"a/x/a.nif": status.StateForeign,
	}, statesByTarget(report))
	for _, e := range report.Entries {
		if e.State == status.StateForeign {
			assert.Equal(t, other, e.Actual)
		}
	}
	assert.False(t, report.Healthy())
}

func TestCheck_BlockedSkippedAndNotInstalled(t *testing.T) {
	env, _, checker := setup(t)
	env.AddMod(game, "b",
		testutil.File("b.esp", "@plugins"),
		testutil.File("readme.txt", ""),
	)
	env.AddMod(game, "c", testutil.File("c.esp", "@nowhere"))
	env.AddPreset(game, "full", "a", "b", "c", "ghost")
	env.SetActive(game, "full")

	report, err := checker.Check(game)
	require.NoError(t, err)
	states := statesByTarget(report)
	assert.Equal(t, status.StateBlocked, states["b/b.esp"])
	assert.Equal(t, status.StateBlocked, states["b/readme.txt"])
	assert.Equal(t, status.StateSkipped, states["c/c.esp"])
	assert.Equal(t, status.StateNotInstalled, states["ghost/"])
	assert.Equal(t, status.StateMissing, states["a/a.esp"])
}

func TestCheck_StrayLinks(t *testing.T) {
	env, engine, checker := setup(t)
	env.AddMod(game, "b", testutil.File("b.esp", "@plugins"))
	_, err := engine.ActivateMod(game, "b")
	require.NoError(t, err)

	report, err := checker.Check(game)
	require.NoError(t, err)
	require.Len(t, report.Stray, 1)
	assert.Equal(t, filepath.Join(env.GamePath(game), "plugins", "b.esp"), report.Stray[0].Destination)
	assert.False(t, report.Healthy())

	links, err := checker.ScanLinks(game)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestCheck_MissingActivePresetRecord(t *testing.T) {
	env, engine, checker := setup(t)
	_, err := engine.SwitchPreset(game, "main")
	require.NoError(t, err)
	require.NoError(t, env.DataStore.DeletePreset(game, "main"))

	report, err := checker.Check(game)
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Len(t, report.Stray, 2)
}

func TestCheck_UnknownGame(t *testing.T) {
	_, _, checker := setup(t)

	_, err := checker.Check("oblivion")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
}

func TestCheckAll(t *testing.T) {
	env, engine, checker := setup(t)
	env.AddProfile("daggerfall", testutil.ModDir("arena2", "bsa"))
	env.AddProfile("arena")
	_, err := engine.SwitchPreset(game, "main")
	require.NoError(t, err)

	reports, err := checker.CheckAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "arena", reports[0].Game)
	assert.Equal(t, "daggerfall", reports[1].Game)
	assert.Equal(t, game, reports[2].Game)
	assert.Len(t, reports[2].Entries, 2)
}

func TestCheckAll_Cancelled(t *testing.T) {
	_, _, checker := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := checker.CheckAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Environment variables
// PURPOSE: Test record path layout and name validation

package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		dataDir  string
		envSetup map[string]string
		validate func(t *testing.T, p Paths)
	}{
		{
			name:    "explicit data dir",
			dataDir: "/tmp/agm-data",
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/tmp/agm-data", p.DataDir())
			},
		},
		{
			name: "from AGM_DATA_DIR env",
			envSetup: map[string]string{
				EnvAgmDataDir: "/env/agm",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/env/agm", p.DataDir())
			},
		},
		{
			name: "xdg default",
			validate: func(t *testing.T, p Paths) {
				assert.True(t, filepath.IsAbs(p.DataDir()))
				assert.Equal(t, AppDirName, filepath.Base(p.DataDir()))
			},
		},
		{
			name:    "expand tilde",
			dataDir: "~/agm",
			validate: func(t *testing.T, p Paths) {
				homeDir, _ := os.UserHomeDir()
				assert.Equal(t, filepath.Join(homeDir, "agm"), p.DataDir())
			},
		},
		{
			name: "config dir override",
			envSetup: map[string]string{
				EnvAgmConfigDir: "/custom/config",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/custom/config", p.ConfigDir())
				assert.Equal(t, "/custom/config/config.toml", p.ConfigFilePath())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAgmDataDir, "")
			t.Setenv(EnvAgmConfigDir, "")
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.dataDir)
			require.NoError(t, err)
			tt.validate(t, p)
		})
	}
}

func TestRecordLayout(t *testing.T) {
	p, err := New("/data")
	require.NoError(t, err)

	assert.Equal(t, "/data/profiles/skyrim.yaml", p.ProfilePath("skyrim"))
	assert.Equal(t, "/data/presets/skyrim", p.GamePresetsDir("skyrim"))
	assert.Equal(t, "/data/presets/skyrim/vanilla.yaml", p.PresetPath("skyrim", "vanilla"))
	assert.Equal(t, "/data/storage/skyrim", p.GameStorageDir("skyrim"))
	assert.Equal(t, "/data/storage/skyrim/skyui", p.ModDir("skyrim", "skyui"))
	assert.Equal(t, "/data/storage/skyrim/skyui/skyui.yaml", p.ModSpecPath("skyrim", "skyui"))
	assert.Equal(t, "/data/state/skyrim.yaml", p.GameStatePath("skyrim"))
}

func TestNormalizePath(t *testing.T) {
	p, err := New("/data")
	require.NoError(t, err)

	got, err := p.NormalizePath("/games/skyrim/../skyrim/")
	require.NoError(t, err)
	assert.Equal(t, "/games/skyrim", got)

	_, err = p.NormalizePath("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("preset", "vanilla"))
	assert.NoError(t, ValidateName("mod", "SkyUI 5.2"))

	for _, bad := range []string{"", "  ", ".", "..", "a/b", `a\b`} {
		err := ValidateName("preset", bad)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "name %q", bad)
	}
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("/games/skyrim", "/games/skyrim"))
	assert.True(t, IsWithin("/games/skyrim", "/games/skyrim/Data/x.esp"))
	assert.False(t, IsWithin("/games/skyrim", "/games/skyrim2/x"))
	assert.False(t, IsWithin("/games/skyrim", "/games/x"))
	assert.True(t, IsWithin("/games/skyrim", "/games/skyrim/..hidden/x"))
}

func TestExpandHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, homeDir, ExpandHome("~"))
	assert.Equal(t, filepath.Join(homeDir, "games"), ExpandHome("~/games"))
	assert.Equal(t, "~other/games", ExpandHome("~other/games"))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
}

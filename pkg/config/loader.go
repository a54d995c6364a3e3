package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	agmerrors "github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable. Sections are
// separated from keys by a double underscore: AGM_INSTALL__OVERWRITE.
const EnvPrefix = "AGM_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load builds the configuration from, in increasing precedence: embedded
// defaults, the TOML file at path (skipped when empty or missing),
// AGM_* environment variables and overrides (flat "section.key" names).
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	return load(true, path, overrides)
}

func load(withEnv bool, path string, overrides map[string]interface{}) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, agmerrors.Wrap(err, agmerrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, agmerrors.Wrapf(err, agmerrors.ErrConfigLoad, "failed to load config from %s", path)
			}
			log.Debug().Str("path", path).Msg("Loaded user config")
		}
	}

	// 3. Environment
	if withEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, agmerrors.Wrap(err, agmerrors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, agmerrors.Wrap(err, agmerrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, agmerrors.Wrap(err, agmerrors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps AGM_INSTALL__CASE_INSENSITIVE_EXT to install.case_insensitive_ext.
// Variables without a section separator only match top-level keys.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

package config

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"

	agmerrors "github.com/arthur-debert/agm/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Save writes cfg as TOML to path
func Save(cfg *Config, path string) error {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return agmerrors.Wrap(err, agmerrors.ErrConfigSave, "failed to encode configuration")
	}
	return writeConfigFile(path, data)
}

// Keys lists every configuration key as "section.key", sorted
func Keys() []string {
	k := defaultsKoanf()
	keys := k.Keys()
	sort.Strings(keys)
	return keys
}

// Set updates a single key in the user config file at path, keeping every
// other value already there. The value is parsed according to the type of
// the key's default.
func Set(path, key, value string) error {
	defaults := defaultsKoanf()
	if !defaults.Exists(key) {
		return agmerrors.Newf(agmerrors.ErrConfigValid, "unknown configuration key %q", key).
			WithDetail("known", Keys())
	}

	var typed interface{} = value
	if _, isBool := defaults.Get(key).(bool); isBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return agmerrors.Wrapf(err, agmerrors.ErrConfigValid, "%s expects true or false", key)
		}
		typed = b
	}

	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return agmerrors.Wrapf(err, agmerrors.ErrConfigLoad, "failed to load config from %s", path)
		}
	}
	if err := k.Set(key, typed); err != nil {
		return agmerrors.Wrapf(err, agmerrors.ErrConfigSave, "failed to set %s", key)
	}

	// Reject values the loader would refuse later.
	if _, err := load(false, "", k.All()); err != nil {
		return err
	}

	data, err := gotoml.Marshal(k.Raw())
	if err != nil {
		return agmerrors.Wrap(err, agmerrors.ErrConfigSave, "failed to encode configuration")
	}
	return writeConfigFile(path, data)
}

func defaultsKoanf() *koanf.Koanf {
	k := koanf.New(".")
	_ = k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser())
	return k
}

func writeConfigFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return agmerrors.Wrapf(err, agmerrors.ErrConfigSave, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return agmerrors.Wrap(err, agmerrors.ErrConfigSave, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return agmerrors.Wrap(err, agmerrors.ErrConfigSave, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		return agmerrors.Wrap(err, agmerrors.ErrConfigSave, "failed to close temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return agmerrors.Wrapf(err, agmerrors.ErrConfigSave, "failed to write %s", path)
	}
	return nil
}

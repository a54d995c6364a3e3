package config

import (
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/paths"
)

// Config is agm's user-facing configuration
type Config struct {
	Editor     string     `koanf:"editor" toml:"editor"`
	Install    Install    `koanf:"install" toml:"install"`
	Activation Activation `koanf:"activation" toml:"activation"`
}

// Install controls how mods are installed and classified
type Install struct {
	Interactive        bool   `koanf:"interactive" toml:"interactive"`
	Overwrite          bool   `koanf:"overwrite" toml:"overwrite"`
	CaseInsensitiveExt bool   `koanf:"case_insensitive_ext" toml:"case_insensitive_ext"`
	DefaultPresetName  string `koanf:"default_preset_name" toml:"default_preset_name"`
}

// Activation controls preset switching
type Activation struct {
	Rollback bool `koanf:"rollback" toml:"rollback"`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := load(false, "", nil)
	if err != nil {
		// the embedded defaults are covered by tests
		panic(err)
	}
	return cfg
}

// Validate checks values that cannot be expressed by types alone
func (c *Config) Validate() error {
	if err := paths.ValidateName("preset", c.Install.DefaultPresetName); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid install.default_preset_name")
	}
	return nil
}

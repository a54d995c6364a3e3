// Package config handles configuration management for agm.
// It layers the embedded defaults, the user's config.toml, environment
// variables and command-line overrides with koanf, and writes user changes
// back as TOML.
package config

// Package testutil provides utilities for testing agm components.
//
// Key components:
//   - TestEnvironment: isolated data directory and game install directory
//     with a real DataStore, plus helpers to write profiles, presets and
//     installed mods without going through the installer
//   - FileTree: declarative file setup
//   - Link assertions: collect and compare the symlinks under a game
//
// Usage guidelines:
//   - Use EnvIsolated for anything that creates symlinks
//   - EnvMemoryOnly runs on an in-memory filesystem without symlink support
//   - All test data should be defined inline, not in external files
package testutil

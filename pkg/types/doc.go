// Package types defines the core data model shared across agm: game
// profiles and their layout trees, placement points, mod specs, presets and
// the per-game state record, plus the filesystem interface every component
// performs I/O through.
package types

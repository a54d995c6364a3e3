// Package datastore provides a high-level interface for agm's persisted
// records: game profiles, presets, mod spec sidecars and per-game state. It
// abstracts away the physical layout of the data directory (see pkg/paths)
// and the YAML encoding, so the installer and the activation engine only
// deal with typed records.
//
// Every save goes through a write-new-then-rename step so a crash never
// leaves a half-written record behind.
package datastore

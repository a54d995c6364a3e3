// Package manager ties agm's stores, installer and activation engine into
// the operations the command line exposes.
//
// A Manager owns no state of its own beyond its collaborators. Profiles,
// presets, sidecars and game state all live in the DataStore; symlinks are
// created and removed only through the activation Engine, so every
// operation that may touch links is serialized per game.
package manager

// Package activation links installed mods into game directories.
//
// A game is either inactive or has exactly one active preset, recorded in
// its state file. Activating a mod creates one symlink per file of its
// sidecar, from storage/<game>/<mod>/<target> to
// <game path>/<resolved point>/<target>. A mod with any unresolved file is
// not linked at all, while a file whose point no longer resolves against the
// layout is skipped on its own.
//
// Existing files in the game directory are never replaced and deactivation
// only ever removes symlinks, so a game's own files survive any sequence of
// operations.
//
// All operations on one game are serialized by the Engine; different games
// proceed independently.
package activation

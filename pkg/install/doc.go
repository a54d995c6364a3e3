// Package install brings a mod into a game's storage and records where each
// of its files belongs.
//
// Installing unpacks (or copies) the mod into storage/<game>/<mod>/, walks
// every regular file in it and gives each one a placement point. Points come
// from the profile's layout first: the first moddir whose mime list contains
// the file's extension wins. Files nothing accepts are handed to a Placer,
// which is how front ends ask the user. The result is persisted as the mod's
// sidecar manifest.
//
// A Placer may leave a file unresolved (empty point). Such a mod installs
// fine but cannot be activated until the file is placed, either by
// Reclassify or by SetPoint.
package install

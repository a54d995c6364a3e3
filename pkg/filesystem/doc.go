// Package filesystem provides the types.FS implementations agm runs on.
//
// Everything goes through afero: NewOS wraps afero's OsFs for production,
// NewMemory wraps a MemMapFs for tests that never touch symlinks.
package filesystem

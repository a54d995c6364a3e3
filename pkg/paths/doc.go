// Package paths centralizes every filesystem location agm reads or writes.
//
// Layout under the data directory:
//
//	profiles/<profile>.yaml
//	presets/<game>/<preset>.yaml
//	storage/<game>/<mod>/<mod>.yaml   (sidecar next to the extracted files)
//	state/<game>.yaml
//
// The data directory defaults to $XDG_DATA_HOME/AGM and can be overridden
// with AGM_DATA_DIR; the configuration directory defaults to
// $XDG_CONFIG_HOME/AGM and can be overridden with AGM_CONFIG_DIR.
package paths

package types

// FileEntry records where one file delivered by a mod goes
type FileEntry struct {
	// Target is the file path relative to the mod's storage directory,
	// always slash-separated
	Target string `yaml:"target"`
	Point  Point  `yaml:"point"`
}

// ModSpec is the sidecar manifest stored next to a mod's extracted files
type ModSpec struct {
	Name  string      `yaml:"name"`
	URL   string      `yaml:"url,omitempty"`
	Files []FileEntry `yaml:"files"`
}

// HasUnresolved reports whether any file still lacks a placement. Such a
// mod cannot be activated.
func (m *ModSpec) HasUnresolved() bool {
	for _, f := range m.Files {
		if f.Point.IsEmpty() {
			return true
		}
	}
	return false
}

// Unresolved returns the targets of all files without a placement
func (m *ModSpec) Unresolved() []string {
	var targets []string
	for _, f := range m.Files {
		if f.Point.IsEmpty() {
			targets = append(targets, f.Target)
		}
	}
	return targets
}

// Entry returns a pointer to the file entry for target, or nil
func (m *ModSpec) Entry(target string) *FileEntry {
	for i := range m.Files {
		if m.Files[i].Target == target {
			return &m.Files[i]
		}
	}
	return nil
}

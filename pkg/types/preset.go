package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ModInfo is the detailed form of a preset entry
type ModInfo struct {
	Name  string   `yaml:"name"`
	URL   string   `yaml:"url,omitempty"`
	Files []string `yaml:"files,omitempty"`
}

// ModEntry references a mod from a preset. On disk it is either a bare mod
// name or a mapping carrying extra metadata; both forms round-trip.
type ModEntry struct {
	name   string
	detail *ModInfo
}

// SimpleMod returns an entry in the bare-name form
func SimpleMod(name string) ModEntry {
	return ModEntry{name: name}
}

// DetailedMod returns an entry in the mapping form
func DetailedMod(info ModInfo) ModEntry {
	return ModEntry{name: info.Name, detail: &info}
}

// EffectiveName is the mod name regardless of form
func (m ModEntry) EffectiveName() string {
	if m.detail != nil {
		return m.detail.Name
	}
	return m.name
}

// IsDetailed reports whether the entry uses the mapping form
func (m ModEntry) IsDetailed() bool {
	return m.detail != nil
}

// Detail returns the metadata of a detailed entry
func (m ModEntry) Detail() (ModInfo, bool) {
	if m.detail == nil {
		return ModInfo{}, false
	}
	return *m.detail, true
}

// UnmarshalYAML decodes either a scalar name or a ModInfo mapping
func (m *ModEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		*m = SimpleMod(name)
		return nil
	case yaml.MappingNode:
		var info ModInfo
		if err := value.Decode(&info); err != nil {
			return err
		}
		if info.Name == "" {
			return fmt.Errorf("line %d: mod entry is missing a name", value.Line)
		}
		*m = DetailedMod(info)
		return nil
	default:
		return fmt.Errorf("line %d: mod entry must be a name or a mapping", value.Line)
	}
}

// MarshalYAML writes the entry back in the form it was read in
func (m ModEntry) MarshalYAML() (interface{}, error) {
	if m.detail != nil {
		return m.detail, nil
	}
	return m.name, nil
}

// Preset is a named, ordered set of mods meant to be active together
type Preset struct {
	Name string     `yaml:"name"`
	Mods []ModEntry `yaml:"mods"`
}

// NewPreset returns an empty preset
func NewPreset(name string) *Preset {
	return &Preset{Name: name, Mods: []ModEntry{}}
}

// ModNames returns the effective names of all entries in order
func (p *Preset) ModNames() []string {
	names := make([]string, 0, len(p.Mods))
	for _, m := range p.Mods {
		names = append(names, m.EffectiveName())
	}
	return names
}

// Contains reports whether the preset references mod
func (p *Preset) Contains(mod string) bool {
	for _, m := range p.Mods {
		if m.EffectiveName() == mod {
			return true
		}
	}
	return false
}

// AddMod appends mod as a bare entry unless it is already present
func (p *Preset) AddMod(mod string) bool {
	if p.Contains(mod) {
		return false
	}
	p.Mods = append(p.Mods, SimpleMod(mod))
	return true
}

// RemoveMod drops every entry referencing mod and reports whether any did
func (p *Preset) RemoveMod(mod string) bool {
	kept := p.Mods[:0]
	removed := false
	for _, m := range p.Mods {
		if m.EffectiveName() == mod {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	p.Mods = kept
	return removed
}

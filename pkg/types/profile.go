package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// NodeKind tags a layout node as a plain directory or a mod directory
type NodeKind string

const (
	// KindDir is a structural directory that never receives mod files itself
	KindDir NodeKind = "dir"
	// KindModDir is a directory that accepts mod files with matching extensions
	KindModDir NodeKind = "moddir"
)

// UnmarshalYAML accepts only the known node kinds, case-insensitively
func (k *NodeKind) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch NodeKind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindDir:
		*k = KindDir
	case KindModDir:
		*k = KindModDir
	default:
		return fmt.Errorf("line %d: unknown layout node type %q (want dir or moddir)", value.Line, raw)
	}
	return nil
}

// Game identifies the moddable title and where it is installed
type Game struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// LayoutNode is one directory in a game's layout tree
type LayoutNode struct {
	Name string       `yaml:"name"`
	Kind NodeKind     `yaml:"type"`
	Sub  []LayoutNode `yaml:"sub,omitempty"`
	// Mime lists the file extensions (without dot) a moddir accepts
	Mime []string `yaml:"mime,omitempty"`
}

// UnmarshalYAML requires every node to state its type
func (n *LayoutNode) UnmarshalYAML(value *yaml.Node) error {
	type plain LayoutNode
	var decoded plain
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	if decoded.Kind == "" {
		return fmt.Errorf("line %d: layout node %q has no type (want dir or moddir)", value.Line, decoded.Name)
	}
	*n = LayoutNode(decoded)
	return nil
}

// IsModDir reports whether the node accepts mod files
func (n LayoutNode) IsModDir() bool {
	return n.Kind == KindModDir
}

// Accepts reports whether a moddir node lists ext among its extensions
func (n LayoutNode) Accepts(ext string, caseInsensitive bool) bool {
	if !n.IsModDir() {
		return false
	}
	for _, m := range n.Mime {
		if m == ext || (caseInsensitive && strings.EqualFold(m, ext)) {
			return true
		}
	}
	return false
}

// Profile describes a game: its install location and directory layout.
// Profiles are persisted as profiles/<name>.yaml and read-only while an
// operation runs.
type Profile struct {
	Game   Game         `yaml:"game"`
	Layout []LayoutNode `yaml:"layout"`
}

// NewProfile returns a profile with an empty layout
func NewProfile(name, path string) *Profile {
	return &Profile{
		Game:   Game{Name: name, Path: path},
		Layout: []LayoutNode{},
	}
}

package layout

import (
	"path"
	"strings"

	"github.com/arthur-debert/agm/pkg/types"
)

// FindMatchingModDirPoint searches node's subtree for the first moddir that
// accepts ext and returns its symbolic point.
func FindMatchingModDirPoint(node types.LayoutNode, ext string) (types.Point, bool) {
	return findMatching(node, ext, false)
}

func findMatching(node types.LayoutNode, ext string, caseInsensitive bool) (types.Point, bool) {
	if node.Accepts(ext, caseInsensitive) {
		return types.SymbolicPoint(node.Name), true
	}
	for _, child := range node.Sub {
		if p, ok := findMatching(child, ext, caseInsensitive); ok {
			return p, true
		}
	}
	return "", false
}

// Classifier maps files to points using a profile's layout
type Classifier struct {
	roots           []types.LayoutNode
	caseInsensitive bool
}

// NewClassifier returns a classifier over the given layout roots. When
// caseInsensitive is set, "DDS" matches a moddir listing "dds".
func NewClassifier(roots []types.LayoutNode, caseInsensitive bool) *Classifier {
	return &Classifier{roots: roots, caseInsensitive: caseInsensitive}
}

// Classify returns the point of the first moddir accepting ext, trying each
// top-level root in order.
func (c *Classifier) Classify(ext string) (types.Point, bool) {
	if ext == "" {
		return "", false
	}
	for _, root := range c.roots {
		if p, ok := findMatching(root, ext, c.caseInsensitive); ok {
			return p, true
		}
	}
	return "", false
}

// ClassifyFile classifies a slash-separated target by its extension. Files
// without an extension get an empty point.
func (c *Classifier) ClassifyFile(target string) types.Point {
	p, _ := c.Classify(Extension(target))
	return p
}

// Extension returns the text after the last dot of the base name, without
// the dot. Dotfiles such as ".gitignore" and names ending in a dot have none.
func Extension(target string) string {
	base := path.Base(target)
	i := strings.LastIndex(base, ".")
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return base[i+1:]
}

// Classify is Classifier.Classify with exact extension matching
func Classify(roots []types.LayoutNode, ext string) (types.Point, bool) {
	return NewClassifier(roots, false).Classify(ext)
}

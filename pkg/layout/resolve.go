package layout

import (
	"path"

	"github.com/arthur-debert/agm/pkg/types"
)

// ResolvePoint turns a point into a slash-separated directory relative to the
// game root. Literal points are returned verbatim without any existence
// check. Symbolic points are looked up in the layout tree. The boolean is
// false for empty points and for symbolic names that match no moddir.
func ResolvePoint(roots []types.LayoutNode, point types.Point) (string, bool) {
	if point.IsEmpty() {
		return "", false
	}
	if !point.IsSymbolic() {
		return string(point), true
	}

	name := point.Name()
	var buf []string
	for _, root := range roots {
		if found, ok := findModDir(root, name, &buf); ok {
			return found, true
		}
	}
	return "", false
}

// findModDir walks node's subtree keeping the names from the root in buf.
// buf is restored before returning so siblings start from the same prefix.
func findModDir(node types.LayoutNode, name string, buf *[]string) (string, bool) {
	*buf = append(*buf, node.Name)
	defer func() { *buf = (*buf)[:len(*buf)-1] }()

	if node.IsModDir() && node.Name == name {
		return path.Join(*buf...), true
	}
	for _, child := range node.Sub {
		if found, ok := findModDir(child, name, buf); ok {
			return found, true
		}
	}
	return "", false
}

// ModDirNames lists every moddir name in pre-order
func ModDirNames(roots []types.LayoutNode) []string {
	var names []string
	var walk func(n types.LayoutNode)
	walk = func(n types.LayoutNode) {
		if n.IsModDir() {
			names = append(names, n.Name)
		}
		for _, child := range n.Sub {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return names
}

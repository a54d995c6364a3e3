package types

import "strings"

// PointPrefix marks a symbolic point referring to a moddir by name
const PointPrefix = "@"

// Point is a placement reference attached to one mod file. It is either
// symbolic ("@textures"), a literal path relative to the game directory, or
// empty when the file has no placement yet.
type Point string

// SymbolicPoint builds the symbolic point for a moddir name
func SymbolicPoint(moddir string) Point {
	return Point(PointPrefix + moddir)
}

// IsEmpty reports whether the point is unresolved
func (p Point) IsEmpty() bool {
	return p == ""
}

// IsSymbolic reports whether the point names a moddir
func (p Point) IsSymbolic() bool {
	return strings.HasPrefix(string(p), PointPrefix)
}

// Name returns the moddir name of a symbolic point, or "" for other points
func (p Point) Name() string {
	if !p.IsSymbolic() {
		return ""
	}
	return strings.TrimPrefix(string(p), PointPrefix)
}

func (p Point) String() string {
	return string(p)
}

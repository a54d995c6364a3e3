// Package layout implements the searches over a game's layout tree:
// resolving a placement point to a directory relative to the game root, and
// classifying a file extension into the symbolic point of the moddir that
// accepts it.
//
// Both searches are depth-first and pre-order, visiting children in declared
// order; the first match wins. Moddir names should be unique within a
// profile, but duplicates are tolerated and resolve to the first occurrence.
package layout

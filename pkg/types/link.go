package types

// Link is one symlink managed by the activation engine: Destination inside
// the game tree points at Source inside mod storage.
type Link struct {
	Source      string
	Destination string
}

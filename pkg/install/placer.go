package install

import (
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/types"
)

// ErrQuit is returned by a Placer to abort the whole installation
var ErrQuit = errors.New(errors.ErrInterrupted, "installation interrupted")

// Placer decides the point of a file the layout could not classify.
// Returning an empty point leaves the file unresolved; returning an error
// aborts the installation.
type Placer interface {
	ChoosePlacement(target string, moddirs []string) (types.Point, error)
}

// PlacerFunc adapts a function to Placer
type PlacerFunc func(target string, moddirs []string) (types.Point, error)

// ChoosePlacement calls f
func (f PlacerFunc) ChoosePlacement(target string, moddirs []string) (types.Point, error) {
	return f(target, moddirs)
}

// SkipPlacer leaves every unclassified file unresolved
type SkipPlacer struct{}

// ChoosePlacement always skips
func (SkipPlacer) ChoosePlacement(string, []string) (types.Point, error) {
	return "", nil
}

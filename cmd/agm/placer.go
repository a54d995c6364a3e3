package agm

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/install"
	"github.com/arthur-debert/agm/pkg/types"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// promptPlacer asks on the terminal where each unclassified file goes
type promptPlacer struct{}

func (promptPlacer) ChoosePlacement(target string, moddirs []string) (types.Point, error) {
	options := make([]string, 0, len(moddirs)+3)
	for _, m := range moddirs {
		options = append(options, string(types.SymbolicPoint(m)))
	}
	options = append(options, MsgPlaceCustom, MsgPlaceSkip, MsgPlaceQuit)

	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(fmt.Sprintf(MsgPlacePrompt, target)).
		Show()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInterrupted, "placement prompt failed")
	}

	switch choice {
	case MsgPlaceSkip:
		return "", nil
	case MsgPlaceQuit:
		return "", install.ErrQuit
	case MsgPlaceCustom:
		path, err := pterm.DefaultInteractiveTextInput.
			WithDefaultText(MsgPlaceCustomPrompt).
			Show()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInterrupted, "placement prompt failed")
		}
		return types.Point(strings.TrimSpace(path)), nil
	}
	return types.Point(choice), nil
}

// placerFor prompts only when asked to and stdin is a terminal
func placerFor(interactive bool) install.Placer {
	if !interactive || !isatty.IsTerminal(os.Stdin.Fd()) {
		return install.SkipPlacer{}
	}
	return promptPlacer{}
}

package activation

import (
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/types"
	"github.com/rs/zerolog"
)

// SwitchResult describes a preset switch
type SwitchResult struct {
	Previous string
	Preset   string
	// Removed are the links of the previous preset that were removed
	Removed []string
	// Created are the links of the new preset
	Created []types.Link
	// RolledBack is set when a failed switch restored the previous preset
	RolledBack bool
}

// SwitchPreset deactivates the active preset, activates preset and records
// it as active.
//
// If activation fails and rollback is enabled, the links created so far are
// removed and the removed links are restored. When that succeeds the game
// keeps its previous preset; when it does not, the game is recorded as
// inactive. Without rollback the partial state is kept and recorded as the
// new preset, so a later deactivation cleans it up. In all cases the
// returned error is the original failure.
func (e *Engine) SwitchPreset(game, preset string) (*SwitchResult, error) {
	defer e.locks.lock(game)()
	log := logging.ForGame("activation", game).With().Str("preset", preset).Logger()
	done := logging.LogOperationStart(log, "switch")
	defer done()

	profile, err := e.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	// Fail before touching any link when the target does not exist.
	if exists, err := e.store.PresetExists(game, preset); err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.Newf(errors.ErrPresetNotFound, "preset '%s' not found for game '%s'", preset, game)
	}

	state, err := e.store.LoadGameState(game)
	if err != nil {
		return nil, err
	}
	result := &SwitchResult{Previous: state.ActivePreset, Preset: preset, Removed: []string{}}

	var removed []types.Link
	if state.IsActive() {
		removed, err = e.deactivate(profile, game, state.ActivePreset)
		result.Removed = destinations(removed)
		if err != nil {
			return result, e.abortSwitch(log, state, nil, removed, result, err)
		}
	}

	created, err := e.activatePreset(profile, game, preset)
	result.Created = created
	if err != nil {
		return result, e.abortSwitch(log, state, created, removed, result, err)
	}

	state.ActivePreset = preset
	state.AddPreset(preset)
	if err := e.store.SaveGameState(state); err != nil {
		return result, err
	}
	log.Info().
		Str("previous", result.Previous).
		Int("removed", len(result.Removed)).
		Int("created", len(created)).
		Msg("Switched preset")
	return result, nil
}

// abortSwitch handles a failure in the middle of a switch and returns cause
func (e *Engine) abortSwitch(log zerolog.Logger, state *types.GameState, created, removed []types.Link, result *SwitchResult, cause error) error {
	log.Error().Err(cause).Msg("Preset switch failed")

	if !e.rollback {
		state.ActivePreset = result.Preset
		state.AddPreset(result.Preset)
		if err := e.store.SaveGameState(state); err != nil {
			log.Error().Err(err).Msg("Failed to record partial switch")
		}
		return cause
	}

	restoreErr := e.restore(created, removed)
	if restoreErr == nil {
		result.RolledBack = true
		log.Info().Str("previous", result.Previous).Msg("Rolled back to previous preset")
		return cause
	}

	log.Error().Err(restoreErr).Msg("Rollback failed, marking game inactive")
	state.ActivePreset = ""
	if err := e.store.SaveGameState(state); err != nil {
		log.Error().Err(err).Msg("Failed to record inactive game")
	}
	if agmErr, ok := cause.(*errors.AgmError); ok {
		return agmErr.WithDetail("rollback_error", restoreErr.Error())
	}
	return cause
}

// restore removes the created links and recreates the removed ones. It
// keeps going after failures and reports the first.
func (e *Engine) restore(created, removed []types.Link) error {
	var first error
	for i := len(created) - 1; i >= 0; i-- {
		if _, _, err := e.removeLink(created[i].Destination); err != nil && first == nil {
			first = err
		}
	}
	for _, link := range removed {
		if _, err := e.createLink(link); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return errors.Wrap(first, errors.ErrRollback, "failed to restore previous preset")
	}
	return nil
}

// DisablePreset deactivates the active preset and marks the game inactive
func (e *Engine) DisablePreset(game string) ([]string, error) {
	defer e.locks.lock(game)()

	state, err := e.store.LoadGameState(game)
	if err != nil {
		return nil, err
	}
	if !state.IsActive() {
		return []string{}, nil
	}

	profile, err := e.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	removed, err := e.deactivate(profile, game, state.ActivePreset)
	if err != nil {
		return destinations(removed), err
	}

	state.ActivePreset = ""
	return destinations(removed), e.store.SaveGameState(state)
}

// RemovePreset deletes a preset. An active preset is deactivated first and
// the game becomes inactive.
func (e *Engine) RemovePreset(game, name string) error {
	defer e.locks.lock(game)()

	state, err := e.store.LoadGameState(game)
	if err != nil {
		return err
	}

	if state.IsPresetActive(name) {
		profile, err := e.store.LoadProfile(game)
		if err != nil {
			return err
		}
		if _, err := e.deactivate(profile, game, name); err != nil {
			return err
		}
		state.ActivePreset = ""
	}

	if err := e.store.DeletePreset(game, name); err != nil {
		return err
	}
	state.RemovePreset(name)
	if err := e.store.SaveGameState(state); err != nil {
		return err
	}
	logger := logging.ForGame("activation", game)
	logger.Debug().Str("preset", name).Msg("Removed preset")
	return nil
}

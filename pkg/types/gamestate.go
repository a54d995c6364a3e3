package types

// GameState is the per-game record of known presets, tracked mods and the
// active preset. At most one preset is active per game.
type GameState struct {
	Profile      string   `yaml:"profile"`
	Presets      []string `yaml:"presets"`
	Mods         []string `yaml:"mods"`
	ActivePreset string   `yaml:"active_preset,omitempty"`
}

// NewGameState returns an inactive state for game
func NewGameState(game string) *GameState {
	return &GameState{
		Profile: game,
		Presets: []string{},
		Mods:    []string{},
	}
}

// IsActive reports whether any preset is active
func (s *GameState) IsActive() bool {
	return s.ActivePreset != ""
}

// IsPresetActive reports whether preset is the active one
func (s *GameState) IsPresetActive(preset string) bool {
	return s.ActivePreset != "" && s.ActivePreset == preset
}

// AddPreset records a known preset
func (s *GameState) AddPreset(name string) {
	s.Presets = addUnique(s.Presets, name)
}

// RemovePreset forgets a preset, clearing the active pointer if it matched
func (s *GameState) RemovePreset(name string) {
	s.Presets = removeAll(s.Presets, name)
	if s.ActivePreset == name {
		s.ActivePreset = ""
	}
}

// HasPreset reports whether the preset is known
func (s *GameState) HasPreset(name string) bool {
	return contains(s.Presets, name)
}

// AddMod records a tracked mod
func (s *GameState) AddMod(name string) {
	s.Mods = addUnique(s.Mods, name)
}

// RemoveMod stops tracking a mod
func (s *GameState) RemoveMod(name string) {
	s.Mods = removeAll(s.Mods, name)
}

// HasMod reports whether the mod is tracked
func (s *GameState) HasMod(name string) bool {
	return contains(s.Mods, name)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func addUnique(list []string, v string) []string {
	if contains(list, v) {
		return list
	}
	return append(list, v)
}

func removeAll(list []string, v string) []string {
	out := list[:0]
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

package status

import (
	"os"
	"sort"

	"github.com/arthur-debert/agm/pkg/activation"
	"github.com/arthur-debert/agm/pkg/datastore"
	"github.com/arthur-debert/agm/pkg/errors"
	"github.com/arthur-debert/agm/pkg/logging"
	"github.com/arthur-debert/agm/pkg/types"
)

// LinkState is the condition of one expected link
type LinkState string

const (
	// StateLinked means the symlink exists and points at the mod file
	StateLinked LinkState = "linked"
	// StateMissing means nothing exists at the destination
	StateMissing LinkState = "missing"
	// StateDangling means the symlink exists but the mod file is gone
	StateDangling LinkState = "dangling"
	// StateConflict means a regular file or directory sits at the destination
	StateConflict LinkState = "conflict"
	// StateForeign means a symlink at the destination points elsewhere
	StateForeign LinkState = "foreign"
	// StateBlocked means the mod has unresolved files and is never linked
	StateBlocked LinkState = "blocked"
	// StateSkipped means the file's point does not resolve
	StateSkipped LinkState = "skipped"
	// StateNotInstalled means the preset names a mod without a sidecar
	StateNotInstalled LinkState = "not-installed"
)

// Entry is the status of one mod file
type Entry struct {
	Mod         string
	Target      string
	Point       types.Point
	Source      string
	Destination string
	State       LinkState
	// Actual is the current symlink target for foreign links
	Actual string
}

// Report is the status of one game
type Report struct {
	Game         string
	ActivePreset string
	Entries      []Entry
	// Stray are symlinks into the game's storage no entry expects
	Stray []types.Link
}

// Healthy reports whether every linkable file is linked and nothing stray
// is left
func (r *Report) Healthy() bool {
	if len(r.Stray) > 0 {
		return false
	}
	for _, e := range r.Entries {
		switch e.State {
		case StateLinked, StateBlocked, StateSkipped, StateNotInstalled:
		default:
			return false
		}
	}
	return true
}

// Counts tallies entries by state
func (r *Report) Counts() map[LinkState]int {
	counts := map[LinkState]int{}
	for _, e := range r.Entries {
		counts[e.State]++
	}
	return counts
}

// Checker builds status reports
type Checker struct {
	fs    types.FS
	store datastore.DataStore
}

// NewChecker creates a checker reading links from fs
func NewChecker(fs types.FS, store datastore.DataStore) *Checker {
	return &Checker{fs: fs, store: store}
}

// ScanLinks lists every symlink under the game directory pointing into the
// game's mod storage
func (c *Checker) ScanLinks(game string) ([]types.Link, error) {
	profile, err := c.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	return activation.ScanLinks(c.fs, profile.Game.Path, c.store.GameStorageDir(game))
}

// Check builds the report of one game
func (c *Checker) Check(game string) (*Report, error) {
	log := logging.ForGame("status", game)

	profile, err := c.store.LoadProfile(game)
	if err != nil {
		return nil, err
	}
	state, err := c.store.LoadGameState(game)
	if err != nil {
		return nil, err
	}

	report := &Report{Game: game, ActivePreset: state.ActivePreset, Entries: []Entry{}}
	expected := map[string]bool{}

	if state.IsActive() {
		mods := []string{}
		preset, err := c.store.LoadPreset(game, state.ActivePreset)
		switch {
		case errors.IsErrorCode(err, errors.ErrPresetNotFound):
			log.Warn().Str("preset", state.ActivePreset).Msg("Active preset record is missing")
		case err != nil:
			return nil, err
		default:
			mods = preset.ModNames()
		}
		for _, mod := range mods {
			entries, err := c.checkMod(profile, game, mod)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if e.Destination != "" {
					expected[e.Destination] = true
				}
			}
			report.Entries = append(report.Entries, entries...)
		}
	}

	found, err := activation.ScanLinks(c.fs, profile.Game.Path, c.store.GameStorageDir(game))
	if err != nil {
		return nil, err
	}
	report.Stray = []types.Link{}
	for _, link := range found {
		if !expected[link.Destination] {
			report.Stray = append(report.Stray, link)
		}
	}

	log.Debug().
		Int("entries", len(report.Entries)).
		Int("stray", len(report.Stray)).
		Msg("Checked game")
	return report, nil
}

func (c *Checker) checkMod(profile *types.Profile, game, mod string) ([]Entry, error) {
	spec, err := c.store.LoadModSpec(game, mod)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrModSpecNotFound) {
			return []Entry{{Mod: mod, State: StateNotInstalled}}, nil
		}
		return nil, err
	}

	blocked := spec.HasUnresolved()
	storageDir := c.store.ModDir(game, mod)
	entries := make([]Entry, 0, len(spec.Files))
	for _, file := range spec.Files {
		entry := Entry{Mod: mod, Target: file.Target, Point: file.Point}
		link, ok := activation.Destination(profile, storageDir, file)
		switch {
		case blocked:
			entry.State = StateBlocked
		case !ok:
			entry.State = StateSkipped
		default:
			entry.Source = link.Source
			entry.Destination = link.Destination
			if err := c.inspect(&entry); err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// inspect fills the state of an entry with a computed destination
func (c *Checker) inspect(entry *Entry) error {
	info, err := c.fs.Lstat(entry.Destination)
	if err != nil {
		if os.IsNotExist(err) {
			entry.State = StateMissing
			return nil
		}
		return errors.WrapFS(err, "failed to check %s", entry.Destination)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		entry.State = StateConflict
		return nil
	}

	target, err := c.fs.Readlink(entry.Destination)
	if err != nil {
		return errors.WrapFS(err, "failed to read link %s", entry.Destination)
	}
	if target != entry.Source {
		entry.State = StateForeign
		entry.Actual = target
		return nil
	}
	if _, err := c.fs.Stat(entry.Destination); err != nil {
		entry.State = StateDangling
		return nil
	}
	entry.State = StateLinked
	return nil
}

// sortReports orders reports by game name
func sortReports(reports []*Report) {
	sort.Slice(reports, func(i, j int) bool { return reports[i].Game < reports[j].Game })
}

package agm

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A per-game mod manager"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Print the man page"
	MsgStatusShort     = "Show the link status of one or all games"

	MsgProfileShort       = "Manage game profiles"
	MsgProfileListShort   = "List profiles"
	MsgProfileAddShort    = "Create a profile"
	MsgProfileShowShort   = "Print a profile"
	MsgProfileEditShort   = "Edit a profile in your editor"
	MsgProfileRemoveShort = "Remove a profile"

	MsgPresetShort          = "Manage presets"
	MsgPresetListShort      = "List the presets of a game"
	MsgPresetAddShort       = "Create a preset"
	MsgPresetShowShort      = "Print a preset"
	MsgPresetEditShort      = "Edit a preset in your editor"
	MsgPresetSwitchShort    = "Make a preset the active one"
	MsgPresetDisableShort   = "Remove the active preset's links"
	MsgPresetRemoveShort    = "Remove a preset"
	MsgPresetAddModShort    = "Add mods to a preset"
	MsgPresetRemoveModShort = "Remove a mod from a preset"

	MsgModShort           = "Manage installed mods"
	MsgModListShort       = "List the mods of a game"
	MsgModInstallShort    = "Install a mod from an archive or a directory"
	MsgModShowShort       = "Print a mod's files and their placement"
	MsgModRemoveShort     = "Remove a mod"
	MsgModReclassifyShort = "Classify a mod's files again"
	MsgModSetPointShort   = "Set the placement of one file"
	MsgModSyncShort       = "Rebuild tracked mods from storage"

	MsgConfigShort         = "Show and change configuration"
	MsgConfigShowShort     = "Print the effective configuration"
	MsgConfigSetShort      = "Set a configuration value"
	MsgConfigGenerateShort = "Print a commented configuration file"

	// Examples
	MsgModInstallExample = `  agm mod install skyrim ~/Downloads/SkyUI_5_2.7z --preset vanilla
  agm mod install skyrim ./unpacked-mod --name skyui --no-prompt`
	MsgModSetPointExample = `  agm mod set-point skyrim skyui readme.txt @Docs
  agm mod set-point skyrim skyui textures/sky.dds Data/Textures`
	MsgPresetSwitchExample = `  agm preset switch skyrim survival`

	MsgTopicsHint = "Run 'agm help topics' for guides on profiles, points and presets."

	// Results
	MsgProfileAdded      = "Added profile '%s' (%s)\n"
	MsgProfileSaved      = "Saved profile '%s'\n"
	MsgProfileRemoved    = "Removed profile '%s'\n"
	MsgPresetAdded       = "Added preset '%s' to '%s'\n"
	MsgPresetSaved       = "Saved preset '%s'\n"
	MsgPresetRemoved     = "Removed preset '%s'\n"
	MsgPresetSwitched    = "Switched '%s' to preset '%s': %d links removed, %d created\n"
	MsgPresetRolledBack  = "Switch failed; preset '%s' was restored\n"
	MsgPresetDisabled    = "Disabled '%s': %d links removed\n"
	MsgModsAdded         = "Added %s to preset '%s'\n"
	MsgModsNothingAdded  = "Preset '%s' already has every mod given\n"
	MsgModRemovedPreset  = "Removed '%s' from preset '%s'\n"
	MsgModNotInPreset    = "Preset '%s' does not contain '%s'\n"
	MsgModInstalled      = "Installed '%s': %d files, %d classified, %d placed by hand\n"
	MsgModUnresolved     = "%d files have no placement; use `agm mod set-point` before activating:\n"
	MsgModRemoved        = "Removed mod '%s'\n"
	MsgModPointSet       = "Set %s of '%s' to %s\n"
	MsgModSynced         = "%s: %d added, %d dropped\n"
	MsgConfigSet         = "Set %s = %s in %s\n"
	MsgConfigWritten     = "Wrote %s\n"
	MsgWarning           = "warning: %s\n"
	MsgProfileLine       = "%-20s %-12s %s\n"
	MsgUnresolvedItem    = "  %s\n"
	MsgPlacePrompt       = "Where should %s go?"
	MsgPlaceCustomPrompt = "Path relative to the game directory"
	MsgPlaceCustom       = "custom path..."
	MsgPlaceSkip         = "skip (leave unresolved)"
	MsgPlaceQuit         = "quit (abort installation)"

	// Version output
	MsgVersionFormat = "agm version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrEditor     = "editor %s failed: %w"
	MsgErrReadInput  = "failed to read %s: %w"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDataDir  = "Directory holding agm's records (default $XDG_DATA_HOME/AGM)"
	MsgFlagConfig   = "Configuration file (default $XDG_CONFIG_HOME/AGM/config.toml)"
	MsgFlagFile     = "Read the content from a file instead of the editor"
	MsgFlagGamePath = "Game install directory, overriding the profile's game.path"
	MsgFlagPresets  = "Also remove the game's presets and state"
	MsgFlagMods     = "Also remove the game's mod storage"
	MsgFlagModName  = "Mod name (default: archive stem or directory name)"
	MsgFlagURL      = "Where the mod was downloaded from"
	MsgFlagPreset   = "Add the installed mod to this preset (repeatable)"
	MsgFlagOverride = "Replace an installed mod with the same name"
	MsgFlagNoPrompt = "Never ask where unclassified files go"
	MsgFlagPurge    = "Also delete the mod's storage"
	MsgFlagStored   = "List mod directories in storage instead of tracked mods"
	MsgFlagLinks    = "List every managed link instead of the report"
	MsgFlagWrite    = "Write the file to the configuration path instead of stdout"
	MsgFlagAddMods  = "Mods to put in the new preset"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)

package agm

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/agm/pkg/style"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPresetCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "preset",
		Aliases: []string{"presets"},
		Short:   MsgPresetShort,
		GroupID: "core",
	}
	cmd.AddCommand(
		newPresetListCmd(opts),
		newPresetAddCmd(opts),
		newPresetShowCmd(opts),
		newPresetEditCmd(opts),
		newPresetSwitchCmd(opts),
		newPresetDisableCmd(opts),
		newPresetRemoveCmd(opts),
		newPresetAddModCmd(opts),
		newPresetRemoveModCmd(opts),
	)
	return cmd
}

func newPresetListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "list <game>",
		Short:             MsgPresetListShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			game := args[0]
			presets, err := a.mgr.ListPresets(game)
			if err != nil {
				return err
			}
			state, err := a.mgr.Store().LoadGameState(game)
			if err != nil {
				return err
			}
			r := style.NewRenderer(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), r.RenderList("Presets of "+game, presets, state.ActivePreset))
			return nil
		},
	}
}

func newPresetAddCmd(opts *rootOptions) *cobra.Command {
	var file string
	var mods []string
	cmd := &cobra.Command{
		Use:               "add <game> <name>",
		Short:             MsgPresetAddShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			game, name := args[0], args[1]
			content, err := readInput(file)
			if err != nil {
				return err
			}
			if _, err := a.mgr.AddPreset(game, name, content); err != nil {
				return err
			}
			if len(mods) > 0 {
				if _, err := a.mgr.AddModsToPreset(game, name, mods); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgPresetAdded, name, game)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", MsgFlagFile)
	cmd.Flags().StringSliceVarP(&mods, "mods", "m", nil, MsgFlagAddMods)
	return cmd
}

func newPresetShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "show <game> <name>",
		Short:             MsgPresetShowShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			preset, err := a.mgr.Preset(args[0], args[1])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(preset)
			if err != nil {
				return err
			}
			_, _ = cmd.OutOrStdout().Write(data)
			return nil
		},
	}
}

func newPresetEditCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:               "edit <game> <name>",
		Short:             MsgPresetEditShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			game, name := args[0], args[1]
			if _, err := a.mgr.Preset(game, name); err != nil {
				return err
			}

			content, err := readInput(file)
			if err != nil {
				return err
			}
			if content == nil {
				current, err := os.ReadFile(a.paths.PresetPath(game, name))
				if err != nil {
					return err
				}
				if content, err = editContent(editorCommand(a.cfg.Editor), "agm-preset-*.yaml", current); err != nil {
					return err
				}
			}
			if _, err := a.mgr.EditPreset(game, name, content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgPresetSaved, name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", MsgFlagFile)
	return cmd
}

func newPresetSwitchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "switch <game> <name>",
		Aliases:           []string{"activate"},
		Short:             MsgPresetSwitchShort,
		Example:           MsgPresetSwitchExample,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			game, name := args[0], args[1]
			result, err := a.mgr.SwitchPreset(game, name)
			if err != nil {
				if result != nil && result.RolledBack {
					fmt.Fprintf(cmd.ErrOrStderr(), MsgPresetRolledBack, result.Previous)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgPresetSwitched, game, name, len(result.Removed), len(result.Created))
			return nil
		},
	}
}

func newPresetDisableCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "disable <game>",
		Aliases:           []string{"deactivate"},
		Short:             MsgPresetDisableShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			removed, err := a.mgr.DisablePreset(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgPresetDisabled, args[0], len(removed))
			return nil
		},
	}
}

func newPresetRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "remove <game> <name>",
		Aliases:           []string{"rm"},
		Short:             MsgPresetRemoveShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			if err := a.mgr.RemovePreset(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgPresetRemoved, args[1])
			return nil
		},
	}
}

func newPresetAddModCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "add-mod <game> <preset> <mod>...",
		Short:             MsgPresetAddModShort,
		Args:              cobra.MinimumNArgs(3),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			added, err := a.mgr.AddModsToPreset(args[0], args[1], args[2:])
			if err != nil {
				return err
			}
			if len(added) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), MsgModsNothingAdded, args[1])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgModsAdded, strings.Join(added, ", "), args[1])
			return nil
		},
	}
}

func newPresetRemoveModCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "remove-mod <game> <preset> <mod>",
		Short:             MsgPresetRemoveModShort,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			removed, err := a.mgr.RemoveModFromPreset(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), MsgModRemovedPreset, args[2], args[1])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), MsgModNotInPreset, args[1], args[2])
			}
			return nil
		},
	}
}

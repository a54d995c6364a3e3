package agm

import (
	"fmt"
	"os"

	"github.com/arthur-debert/agm/pkg/layout"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// profileTemplate is what the editor starts from for a new profile
const profileTemplate = `game:
  name: %s
  path: %s
# Directories mods may place files in. A moddir accepts the listed
# extensions; a dir only groups other nodes.
layout:
  - name: Data
    type: moddir
    mime: [esp, esm, bsa]
`

func newProfileCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"profiles"},
		Short:   MsgProfileShort,
		GroupID: "core",
	}
	cmd.AddCommand(
		newProfileListCmd(opts),
		newProfileAddCmd(opts),
		newProfileShowCmd(opts),
		newProfileEditCmd(opts),
		newProfileRemoveCmd(opts),
	)
	return cmd
}

func newProfileListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgProfileListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			infos, err := a.mgr.ListProfiles()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, info := range infos {
				active := info.ActivePreset
				if active == "" {
					active = "-"
				}
				fmt.Fprintf(out, MsgProfileLine, info.Name, active, info.Profile.Game.Path)
			}
			return nil
		},
	}
}

func newProfileAddCmd(opts *rootOptions) *cobra.Command {
	var file, gamePath string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: MsgProfileAddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			name := args[0]

			content, err := readInput(file)
			if err != nil {
				return err
			}
			if content == nil && canEdit() {
				initial := fmt.Sprintf(profileTemplate, name, gamePath)
				if content, err = editContent(editorCommand(a.cfg.Editor), "agm-profile-*.yaml", []byte(initial)); err != nil {
					return err
				}
			}

			profile, err := a.mgr.AddProfile(name, content, gamePath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgProfileAdded, name, profile.Game.Path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", MsgFlagFile)
	cmd.Flags().StringVar(&gamePath, "game-path", "", MsgFlagGamePath)
	return cmd
}

func newProfileShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "show <name>",
		Short:             MsgProfileShowShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			profile, err := a.mgr.Profile(args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(profile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = out.Write(data)
			for _, p := range layout.Validate(profile) {
				fmt.Fprintf(cmd.ErrOrStderr(), MsgWarning, p)
			}
			return nil
		},
	}
}

func newProfileEditCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:               "edit <name>",
		Short:             MsgProfileEditShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			name := args[0]
			if _, err := a.mgr.Profile(name); err != nil {
				return err
			}

			content, err := readInput(file)
			if err != nil {
				return err
			}
			if content == nil {
				current, err := os.ReadFile(a.paths.ProfilePath(name))
				if err != nil {
					return err
				}
				if content, err = editContent(editorCommand(a.cfg.Editor), "agm-profile-*.yaml", current); err != nil {
					return err
				}
			}

			if _, err := a.mgr.EditProfile(name, content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgProfileSaved, name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", MsgFlagFile)
	return cmd
}

func newProfileRemoveCmd(opts *rootOptions) *cobra.Command {
	var presets, mods bool
	cmd := &cobra.Command{
		Use:               "remove <name>",
		Aliases:           []string{"rm"},
		Short:             MsgProfileRemoveShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			if err := a.mgr.RemoveProfile(args[0], presets, mods); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgProfileRemoved, args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&presets, "presets", false, MsgFlagPresets)
	cmd.Flags().BoolVar(&mods, "mods", false, MsgFlagMods)
	return cmd
}

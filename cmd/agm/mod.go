package agm

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/agm/pkg/install"
	"github.com/arthur-debert/agm/pkg/manager"
	"github.com/arthur-debert/agm/pkg/style"
	"github.com/arthur-debert/agm/pkg/types"
	"github.com/spf13/cobra"
)

func newModCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mod",
		Aliases: []string{"mods"},
		Short:   MsgModShort,
		GroupID: "core",
	}
	cmd.AddCommand(
		newModListCmd(opts),
		newModInstallCmd(opts),
		newModShowCmd(opts),
		newModRemoveCmd(opts),
		newModReclassifyCmd(opts),
		newModSetPointCmd(opts),
		newModSyncCmd(opts),
	)
	return cmd
}

func newModListCmd(opts *rootOptions) *cobra.Command {
	var stored bool
	cmd := &cobra.Command{
		Use:               "list <game>",
		Short:             MsgModListShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			list, title := a.mgr.ListMods, "Mods of "
			if stored {
				list, title = a.mgr.ListStoredMods, "Stored mods of "
			}
			mods, err := list(args[0])
			if err != nil {
				return err
			}
			r := style.NewRenderer(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), r.RenderList(title+args[0], mods, ""))
			return nil
		},
	}
	cmd.Flags().BoolVar(&stored, "stored", false, MsgFlagStored)
	return cmd
}

func newModInstallCmd(opts *rootOptions) *cobra.Command {
	var (
		name, url string
		presets   []string
		overwrite bool
		noPrompt  bool
	)
	cmd := &cobra.Command{
		Use:               "install <game> <archive-or-dir>",
		Short:             MsgModInstallShort,
		Example:           MsgModInstallExample,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			game, from := args[0], args[1]

			installOpts := install.Options{
				Game:      game,
				ModName:   name,
				URL:       url,
				Overwrite: overwrite,
				Placer:    placerFor(a.cfg.Install.Interactive && !noPrompt),
			}
			info, err := os.Stat(from)
			if err != nil {
				return fmt.Errorf(MsgErrReadInput, from, err)
			}
			if info.IsDir() {
				installOpts.Source = from
			} else {
				installOpts.Archive = from
			}

			result, err := a.mgr.Install(manager.InstallOptions{Options: installOpts, Presets: presets})
			if err != nil {
				return err
			}
			printInstallResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagModName)
	cmd.Flags().StringVar(&url, "url", "", MsgFlagURL)
	cmd.Flags().StringSliceVarP(&presets, "preset", "p", nil, MsgFlagPreset)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, MsgFlagOverride)
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, MsgFlagNoPrompt)
	return cmd
}

func printInstallResult(out, errOut io.Writer, result *install.Result) {
	for _, w := range result.Warnings {
		fmt.Fprintf(errOut, MsgWarning, w)
	}
	fmt.Fprintf(out, MsgModInstalled, result.Spec.Name, len(result.Spec.Files), result.Classified, result.Placed)
	if len(result.Unresolved) > 0 {
		fmt.Fprintf(out, MsgModUnresolved, len(result.Unresolved))
		for _, target := range result.Unresolved {
			fmt.Fprintf(out, MsgUnresolvedItem, target)
		}
	}
}

func newModShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "show <game> <mod>",
		Short:             MsgModShowShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			spec, err := a.mgr.ModSpec(args[0], args[1])
			if err != nil {
				return err
			}
			r := style.NewRenderer(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), r.RenderModSpec(spec))
			return nil
		},
	}
}

func newModRemoveCmd(opts *rootOptions) *cobra.Command {
	var purge bool
	cmd := &cobra.Command{
		Use:               "remove <game> <mod>",
		Aliases:           []string{"rm"},
		Short:             MsgModRemoveShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			if err := a.mgr.RemoveMod(args[0], args[1], purge); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgModRemoved, args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&purge, "purge", false, MsgFlagPurge)
	return cmd
}

func newModReclassifyCmd(opts *rootOptions) *cobra.Command {
	var noPrompt bool
	cmd := &cobra.Command{
		Use:               "reclassify <game> <mod>",
		Short:             MsgModReclassifyShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			result, err := a.mgr.Reclassify(args[0], args[1], placerFor(a.cfg.Install.Interactive && !noPrompt))
			if err != nil {
				return err
			}
			printInstallResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, MsgFlagNoPrompt)
	return cmd
}

func newModSetPointCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "set-point <game> <mod> <file> <point>",
		Short:             MsgModSetPointShort,
		Example:           MsgModSetPointExample,
		Args:              cobra.ExactArgs(4),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			point := types.Point(args[3])
			if _, err := a.mgr.SetPoint(args[0], args[1], args[2], point); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgModPointSet, args[2], args[1], point)
			return nil
		},
	}
}

func newModSyncCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: MsgModSyncShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			results, err := a.mgr.SyncMods()
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), MsgModSynced, r.Game, len(r.Added), len(r.Dropped))
			}
			return nil
		},
	}
}

package agm

import (
	"fmt"

	"github.com/arthur-debert/agm/pkg/status"
	"github.com/arthur-debert/agm/pkg/style"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var links bool
	cmd := &cobra.Command{
		Use:               "status [game]",
		Short:             MsgStatusShort,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: gameNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			r := style.NewRenderer(out)

			if links {
				games := args
				if len(games) == 0 {
					if games, err = a.mgr.ProfileNames(); err != nil {
						return err
					}
				}
				for _, game := range games {
					found, err := a.mgr.Engine().Links(game)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, r.RenderLinks(game, found))
				}
				return nil
			}

			var reports []*status.Report
			if len(args) == 1 {
				report, err := a.mgr.Status(args[0])
				if err != nil {
					return err
				}
				reports = []*status.Report{report}
			} else if reports, err = a.mgr.StatusAll(cmd.Context()); err != nil {
				return err
			}

			for i, report := range reports {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, r.RenderReport(report))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&links, "links", false, MsgFlagLinks)
	return cmd
}

package status

import (
	"context"

	"github.com/arthur-debert/agm/pkg/logging"
	"golang.org/x/sync/errgroup"
)

// maxParallelChecks bounds how many games are checked at once
const maxParallelChecks = 4

// CheckAll checks every game with a profile. Games are independent and
// checked in parallel; the first failure cancels the remaining checks.
func (c *Checker) CheckAll(ctx context.Context) ([]*Report, error) {
	games, err := c.store.ListProfiles()
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, len(games))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelChecks)
	for i, game := range games {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := c.Check(game)
			if err != nil {
				logger := logging.ForGame("status", game)
				logger.Error().Err(err).Msg("Check failed")
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortReports(reports)
	return reports, nil
}

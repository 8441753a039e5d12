package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decolog/decolog/internal/stats"
	"github.com/decolog/decolog/internal/units"
)

func newStatsCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics over the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().Stats(cmd.Context())
		},
	}
}

// Stats aggregates the whole log and renders the summary in the preferred
// unit system.
func (a *App) Stats(ctx context.Context) error {
	records, err := a.dives.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No dives yet, so no stats. Log one with 'decolog dive add'.")
		return nil
	}

	sys, err := a.settings.Units(ctx)
	if err != nil {
		return err
	}

	s := stats.Compute(records)
	printKV(a.out, "Dives", fmt.Sprintf("%d", s.Count))
	printKV(a.out, "Total bottom time", units.BottomTime(s.TotalBottomTimeMin))
	printKV(a.out, "Max depth", units.Depth(s.MaxDepthMeters, sys))
	printKV(a.out, "Avg SAC", units.Sac(s.AvgSacLpm, sys))
	fmt.Fprintln(a.out, "Gas usage:")
	for _, g := range sortedGases(s.GasCounts) {
		fmt.Fprintf(a.out, "  %-8s %d\n", g, s.GasCounts[g])
	}
	return nil
}

// ABOUTME: Visualization CLI commands
// ABOUTME: Handles the ASCII pipeline board, dashboard and GraphViz graph generation
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/viz"
)

func newPipelineCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pipeline",
		Short: "Show the deal pipeline board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.fmt.Pipeline(a.store.Deals())
			if err != nil {
				a.log.Warn().Err(err).Msg("some pipeline values could not be formatted")
			}
			fmt.Fprint(cmd.OutOrStdout(), viz.RenderBoard(view))
			return nil
		},
	}
}

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show dashboard statistics and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := a.store.Snapshot()

			dash, err := a.fmt.Dashboard(metrics.Dashboard(snap, a.cfg.RecentActivity))
			if err != nil {
				a.log.Warn().Err(err).Msg("some dashboard values could not be formatted")
			}
			pipe, err := a.fmt.Pipeline(snap.Deals)
			if err != nil {
				a.log.Warn().Err(err).Msg("some pipeline values could not be formatted")
			}

			fmt.Fprint(cmd.OutOrStdout(), viz.RenderDashboard(dash, pipe, time.Now()))
			return nil
		},
	}
}

func newGraphCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "graph pipeline|account [customer-id]",
		Short:     "Generate a GraphViz DOT graph",
		ValidArgs: []string{"pipeline", "account"},
		Args:      cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			generator := viz.NewGraphGenerator(a.store.Snapshot(), a.fmt)

			var dot string
			var err error
			switch args[0] {
			case "pipeline":
				dot, err = generator.GeneratePipelineGraph(cmd.Context())
			case "account":
				if len(args) < 2 {
					return fmt.Errorf("customer ID required")
				}
				dot, err = generator.GenerateAccountGraph(cmd.Context(), args[1])
			default:
				return fmt.Errorf("unknown graph type: %s (valid types: pipeline, account)", args[0])
			}
			if err != nil {
				return err
			}

			if output != "" {
				return os.WriteFile(output, []byte(dot), 0644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dot)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

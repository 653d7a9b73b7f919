// ABOUTME: Deal CLI commands
// ABOUTME: Lists deals by stage, adds deals and moves them between stages
package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/pipeline/filter"
	"github.com/harperreed/pipeline/forms"
	"github.com/harperreed/pipeline/models"
)

func newDealsCommand(a *app) *cobra.Command {
	var crit filter.Criteria

	cmd := &cobra.Command{
		Use:   "deals",
		Short: "List deals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := a.store.Deals()
			shown, err := filter.Deals(all, crit)
			if err != nil {
				return err
			}

			view, err := a.fmt.DealList(shown, len(all), crit.Active())
			if err != nil {
				a.log.Warn().Err(err).Msg("some deals could not be formatted")
			}

			out := cmd.OutOrStdout()
			if len(view.Rows) == 0 {
				fmt.Fprintln(out, view.EmptyMessage)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TITLE\tAMOUNT\tSTAGE\tPROBABILITY\tCLOSE\tID")
			_, _ = fmt.Fprintln(w, "-----\t------\t-----\t-----------\t-----\t--")
			for _, row := range view.Rows {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					row.Title, row.Amount, row.Stage.Label, row.Probability, row.ExpectedClose, row.ID)
			}
			_ = w.Flush()

			fmt.Fprintf(out, "\n%s\n", view.Summary)

			totals, err := a.fmt.Pipeline(all)
			if err != nil {
				a.log.Warn().Err(err).Msg("some pipeline values could not be formatted")
			}
			fmt.Fprintf(out, "Total Pipeline Value: %s\n", totals.TotalValue)
			fmt.Fprintf(out, "Weighted Value:       %s\n", totals.WeightedValue)
			fmt.Fprintf(out, "Active Deals:         %d\n", totals.ActiveDeals)
			return nil
		},
	}

	cmd.Flags().StringVar(&crit.SearchTerm, "query", "", "Search title or description")
	cmd.Flags().StringVar(&crit.Status, "stage", filter.All, "Filter by stage")
	return cmd
}

func newAddDealCommand(a *app) *cobra.Command {
	var in forms.DealInput

	cmd := &cobra.Command{
		Use:   "add-deal",
		Short: "Add a deal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deal, err := in.Build(time.Now())
			if err != nil {
				return err
			}
			if err := a.store.AddDeal(deal); err != nil {
				return fmt.Errorf("failed to add deal: %w", err)
			}

			row, err := a.fmt.DealRow(deal)
			if err != nil {
				a.log.Warn().Err(err).Str("deal", deal.ID).Msg("amount could not be formatted")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Deal created: %s (ID: %s)\n", deal.Title, deal.ID)
			fmt.Fprintf(out, "  Amount: %s\n", row.Amount)
			fmt.Fprintf(out, "  Stage: %s\n", row.Stage.Label)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Deal title (required)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "Amount in major currency units")
	cmd.Flags().StringVar(&in.Currency, "deal-currency", "", "ISO 4217 currency code (default USD)")
	cmd.Flags().StringVar(&in.Stage, "stage", "", "Initial stage (default lead)")
	cmd.Flags().IntVar(&in.Probability, "probability", 0, "Win probability 0-100")
	cmd.Flags().StringVar(&in.CustomerID, "customer", "", "Customer ID")
	cmd.Flags().StringVar(&in.ContactID, "contact", "", "Contact ID")
	cmd.Flags().StringVar(&in.ExpectedCloseDate, "close", "", "Expected close date (YYYY-MM-DD)")
	return cmd
}

func newMoveDealCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move-deal <id> <stage>",
		Short: "Move a deal to another stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := models.ParseStage(args[1])
			if err != nil {
				return err
			}

			deal, err := a.store.MoveDeal(args[0], stage)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deal %q moved to %s\n", deal.Title, deal.Stage.Label())
			return nil
		},
	}
}

// ABOUTME: Customer CLI commands
// ABOUTME: Lists customers with search, status and industry filters and adds new ones
package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/pipeline/filter"
	"github.com/harperreed/pipeline/forms"
)

func newCustomersCommand(a *app) *cobra.Command {
	var crit filter.Criteria

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := a.store.Customers()
			shown, err := filter.Customers(all, crit)
			if err != nil {
				return err
			}

			view := a.fmt.CustomerList(shown, len(all), crit.Active())
			out := cmd.OutOrStdout()
			if len(view.Rows) == 0 {
				fmt.Fprintln(out, view.EmptyMessage)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tCOMPANY\tINDUSTRY\tSTATUS\tCREATED\tID")
			_, _ = fmt.Fprintln(w, "----\t-----\t-------\t--------\t------\t-------\t--")
			for _, row := range view.Rows {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					row.Name, row.Email, row.Company, row.Industry, row.Status.Label, row.Created, row.ID)
			}
			_ = w.Flush()

			fmt.Fprintf(out, "\n%s\n", view.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&crit.SearchTerm, "query", "", "Search name, email, company or phone")
	cmd.Flags().StringVar(&crit.Status, "status", filter.All, "Filter by status: all, active, inactive, prospect")
	cmd.Flags().StringVar(&crit.Category, "industry", filter.All, "Filter by industry")
	return cmd
}

func newAddCustomerCommand(a *app) *cobra.Command {
	var in forms.CustomerInput

	cmd := &cobra.Command{
		Use:   "add-customer",
		Short: "Add a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			customer, err := in.Build(time.Now())
			if err != nil {
				return err
			}
			if err := a.store.AddCustomer(customer); err != nil {
				return fmt.Errorf("failed to add customer: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Customer created: %s (ID: %s)\n", customer.Name, customer.ID)
			fmt.Fprintf(out, "  Email: %s\n", customer.Email)
			if customer.Company != "" {
				fmt.Fprintf(out, "  Company: %s\n", customer.Company)
			}
			fmt.Fprintf(out, "  Status: %s\n", customer.Status.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Customer name (required)")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.Company, "company", "", "Company name")
	cmd.Flags().StringVar(&in.Industry, "industry", "", "Industry")
	cmd.Flags().StringVar(&in.Status, "status", "", "active (default), inactive or prospect")
	return cmd
}

// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for listing and adding contacts
package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/pipeline/filter"
	"github.com/harperreed/pipeline/forms"
)

func newContactsCommand(a *app) *cobra.Command {
	var crit filter.Criteria

	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := a.store.Contacts()
			shown, err := filter.Contacts(all, crit)
			if err != nil {
				return err
			}

			view := a.fmt.ContactList(shown, len(all), crit.Active())
			out := cmd.OutOrStdout()
			if len(view.Rows) == 0 {
				fmt.Fprintln(out, view.EmptyMessage)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tPHONE\tPOSITION\tSTATUS\tID")
			_, _ = fmt.Fprintln(w, "----\t-----\t-----\t--------\t------\t--")
			for _, row := range view.Rows {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					row.Name, row.Email, row.Phone, row.Position, row.Status.Label, row.ID)
			}
			_ = w.Flush()

			fmt.Fprintf(out, "\n%s\n", view.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&crit.SearchTerm, "query", "", "Search name, email or position")
	cmd.Flags().StringVar(&crit.Status, "status", filter.All, "Filter by status: all, active, inactive")
	return cmd
}

func newAddContactCommand(a *app) *cobra.Command {
	var in forms.ContactInput

	cmd := &cobra.Command{
		Use:   "add-contact",
		Short: "Add a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.CustomerID != "" {
				if _, err := a.store.Customer(in.CustomerID); err != nil {
					return err
				}
			}

			contact, err := in.Build(time.Now())
			if err != nil {
				return err
			}
			if err := a.store.AddContact(contact); err != nil {
				return fmt.Errorf("failed to add contact: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Contact created: %s (ID: %s)\n", contact.FullName(), contact.ID)
			fmt.Fprintf(out, "  Email: %s\n", contact.Email)
			if contact.Position != "" {
				fmt.Fprintf(out, "  Position: %s\n", contact.Position)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name (required)")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.Position, "position", "", "Job title")
	cmd.Flags().StringVar(&in.CustomerID, "customer", "", "Customer ID")
	cmd.Flags().StringVar(&in.Status, "status", "", "active (default) or inactive")
	return cmd
}

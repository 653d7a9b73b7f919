// ABOUTME: Web UI subcommand
// ABOUTME: Serves the dashboard, list screens, pipeline board and JSON API until interrupted
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/pipeline/web"
)

func newWebCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Start the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.WebAddr
			}

			srv, err := web.NewServer(a.store, a.fmt, a.log, a.cfg.RecentActivity)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Start(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from CRM_WEB_ADDR or :8080)")
	return cmd
}

// ABOUTME: Terminal UI subcommand
// ABOUTME: Runs the full-screen interface with logs redirected to the XDG state directory
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harperreed/pipeline/config"
	"github.com/harperreed/pipeline/logging"
	"github.com/harperreed/pipeline/tui"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// The screen belongs to bubbletea, so logs go to a file.
			log, f, err := logging.NewFile(config.StateDir(), "tui.log", a.cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			return tui.Run(tui.NewModel(a.store, a.fmt, log, a.cfg.RecentActivity))
		},
	}
}

// ABOUTME: Root cobra command and shared per-run state
// ABOUTME: Loads config, data file, formatter and logger before any subcommand runs
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harperreed/pipeline/config"
	"github.com/harperreed/pipeline/logging"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/seed"
	"github.com/harperreed/pipeline/store"
)

// app is the state every subcommand works against.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *store.Memory
	fmt   *present.Formatter

	dataFile string
	locale   string
	currency string
	logLevel string
}

// NewRootCommand builds the pipeline command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pipeline",
		Short:         "Customer relationship manager with a sales pipeline",
		Long:          "Manage customers, contacts and deals from the terminal, a web UI or an MCP client.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.dataFile, "data", "", "YAML data file (default: built-in demo data)")
	flags.StringVar(&a.locale, "locale", "", "Display locale, e.g. en-US or de")
	flags.StringVar(&a.currency, "currency", "", "Base currency for totals, e.g. USD")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newCustomersCommand(a),
		newAddCustomerCommand(a),
		newContactsCommand(a),
		newAddContactCommand(a),
		newDealsCommand(a),
		newAddDealCommand(a),
		newMoveDealCommand(a),
		newPipelineCommand(a),
		newDashboardCommand(a),
		newGraphCommand(a),
		newWebCommand(a),
		newMCPCommand(a),
		newTUICommand(a),
	)
	return root
}

// setup resolves config with flags taking precedence over CRM_* variables.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.dataFile != "" {
		cfg.DataFile = a.dataFile
	}
	if a.locale != "" {
		cfg.Locale = a.locale
	}
	if a.currency != "" {
		cfg.Currency = a.currency
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	f, err := cfg.Formatter()
	if err != nil {
		return err
	}

	// Logs go to stderr so stdout stays clean for command output and MCP.
	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	data, err := loadData(cfg.DataFile)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.fmt = f
	a.log = log
	a.store = store.New(data.Collections())
	a.log.Debug().
		Str("locale", f.Locale()).
		Str("currency", f.BaseCurrency).
		Int("customers", len(data.Customers)).
		Int("deals", len(data.Deals)).
		Msg("loaded data")
	return nil
}

func loadData(path string) (*seed.Data, error) {
	if path == "" {
		return seed.Mock()
	}
	data, err := seed.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	return data, nil
}

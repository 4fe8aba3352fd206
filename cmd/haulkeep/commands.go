package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ecmhaul/haulkeep"
	"github.com/ecmhaul/haulkeep/internal/logger"
)

// command carries the global flags into the per-subcommand handlers.
type command struct {
	g *GlobalFlags
}

// openManager resolves config, installs the logger, and returns a loaded manager.
func (c *command) openManager(ctx context.Context) (*haulkeep.Manager, error) {
	cfg, err := haulkeep.LoadConfig(c.g.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.g.DSN != "" {
		cfg.DSN = c.g.DSN
	}
	slog.SetDefault(logger.New(cfg.Log))
	return haulkeep.Open(ctx, cfg)
}

func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	customerAddFlags := &CustomerAddFlags{}
	customerListFlags := &CustomerListFlags{}
	jobAddFlags := &JobAddFlags{}
	jobListFlags := &JobListFlags{}

	hk := command{g: globalFlags}

	root := createRootCommand(globalFlags)

	customerCmd := &cobra.Command{Use: "customer", Short: "Manage customer records"}
	customerCmd.AddCommand(
		createCustomerAddCommand(hk, customerAddFlags),
		createCustomerListCommand(hk, customerListFlags),
		createCustomerFindCommand(hk),
		createCustomerSearchCommand(hk),
	)

	jobCmd := &cobra.Command{Use: "job", Short: "Manage scheduled jobs"}
	jobCmd.AddCommand(
		createJobAddCommand(hk, jobAddFlags),
		createJobListCommand(hk, jobListFlags),
		createJobStatusCommand(hk),
	)

	root.AddCommand(customerCmd, jobCmd, createMenuCommand(hk))
	return root
}

func createRootCommand(flags *GlobalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "haulkeep",
		Short: "Boat-hauling business record keeper",
		Long: `Haulkeep tracks customers and scheduled hauling jobs for a small
boat-hauling operation, persisting them to a local store.

Examples:
  haulkeep customer add --name="John Smith" --phone=555-0101 --boat-make=Catalina
  haulkeep job add --customer=<id> --service="Haul Out" --at="2025-09-15 14:30" --origin="Town Marina"
  haulkeep job list --status=Scheduled
  haulkeep menu                     # interactive menu session`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "haulkeep.toml", "path to TOML config file (optional)")
	root.PersistentFlags().StringVar(&flags.DSN, "data", "", "store DSN: data directory or sqlite://records.db (overrides config)")

	return root
}

func createMenuCommand(hk command) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive text menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := hk.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()
			return runMenu(cmd.Context(), mgr, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

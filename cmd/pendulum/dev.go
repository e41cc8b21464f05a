// File: cmd/pendulum/dev.go
// Brief: CLI command wiring for the local development loop.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend/local"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/config"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/deploy"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/logging"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/teardown"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/ui"
)

// newDevCommand provides the local development loop: the same orchestration
// as deploy/destroy, run against the file-state backend with no journal, so
// the whole plan can be exercised offline in seconds.
func newDevCommand(opts *config.Options, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the deployment loop against the local file-state backend",
	}
	cmd.PersistentFlags().StringVar(&opts.LocalState, "state", opts.LocalState, "Path to the local backend state file")
	cmd.AddCommand(newDevUpCommand(opts, logLevel), newDevDownCommand(opts, logLevel))
	return cmd
}

func newDevUpCommand(opts *config.Options, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Deploy the plan locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, err := logging.New(*logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			graph, err := stack.LoadPlan(opts.PlanFile)
			if err != nil {
				return err
			}
			b := local.New(opts.LocalState, graph)
			console := ui.NewConsole(cmd.OutOrStdout(), ui.ConsoleOptions{Verbose: opts.Verbose})
			orch := &deploy.Orchestrator{Backend: b, Logger: logger, Observers: []stack.EventObserver{console}}
			dctx, err := orch.Deploy(ctx, graph)
			if err != nil {
				return err
			}
			printOutputs(cmd, graph, dctx)
			return nil
		},
	}
}

func newDevDownCommand(opts *config.Options, logLevel *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Tear down the local deployment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, err := logging.New(*logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			graph, err := stack.LoadPlan(opts.PlanFile)
			if err != nil {
				return err
			}
			// Local state is cheap to rebuild; one acknowledgement is enough.
			dec, err := approvalMode(cmd, yes, false)
			if err != nil {
				return err
			}
			if err := confirmAction(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), dec, "Tear down the local deployment? (yes/no):", confirmModeYes, ""); err != nil {
				return err
			}
			b := local.New(opts.LocalState, graph)
			console := ui.NewConsole(cmd.OutOrStdout(), ui.ConsoleOptions{Verbose: opts.Verbose})
			orch := &teardown.Orchestrator{Backend: b, Logger: logger, Observers: []stack.EventObserver{console}}
			report := orch.Teardown(ctx, graph)
			fmt.Fprintln(cmd.OutOrStdout())
			if err := teardown.PrintReport(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if report.Failed() {
				return fmt.Errorf("teardown attempted every stack but some failed; see report above")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

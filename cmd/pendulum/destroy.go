// File: cmd/pendulum/destroy.go
// Brief: CLI command wiring for 'pendulum destroy'.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/config"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/logging"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/teardown"
)

// destroyPhrase is the exact, case-sensitive phrase the second gate requires.
const destroyPhrase = "DESTROY"

func newDestroyCommand(opts *config.Options, logLevel *string) *cobra.Command {
	var backendKind string
	var yes bool
	var nonInteractive bool
	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Tear down every stack in reverse dependency order",
		Long: `Destroy deprovisions all declared stacks in reverse deploy order. Unlike
deploy it never stops at a failure: every stack is attempted and the outcome
report lists each one as destroyed, not found, or failed. Any failed entry
makes the command exit non-zero.

Destroying the database stack loses data irreversibly, so the command asks
twice: a yes/no acknowledgement, then typing DESTROY exactly.`,
		Args: cobra.NoArgs,
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
			b, err := newBackendFor(opts, backendKind, graph)
			if err != nil {
				return err
			}

			// Credential preflight runs before the prompts so a bad
			// profile fails fast instead of after two confirmations.
			if err := checkIdentity(ctx, b); err != nil {
				return err
			}

			dec, err := approvalMode(cmd, yes, nonInteractive)
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			errOut := cmd.ErrOrStderr()
			prompt := fmt.Sprintf("This tears down all %d stacks including stored data. Continue? (yes/no):", len(graph.Specs))
			if err := confirmAction(ctx, in, errOut, dec, prompt, confirmModeYes, ""); err != nil {
				return err
			}
			if err := confirmAction(ctx, in, errOut, dec, fmt.Sprintf("Type %s to confirm:", destroyPhrase), confirmModeExact, destroyPhrase); err != nil {
				return err
			}

			session := startRunSession(ctx, opts, logger, graph.Name, "destroy", cmd.OutOrStdout())
			defer session.Close()

			orch := &teardown.Orchestrator{Backend: b, Logger: logger, Observers: session.Observers}
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
	cmd.Flags().StringVar(&backendKind, "backend", "local", "Provisioning backend to use")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation prompts")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Fail instead of prompting (requires --yes)")
	return cmd
}

// File: cmd/pendulum/deploy.go
// Brief: CLI command wiring for 'pendulum deploy'.

package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/config"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/deploy"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/logging"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

func newDeployCommand(opts *config.Options, logLevel *string) *cobra.Command {
	var backendKind string
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision every stack in dependency order",
		Long: `Deploy provisions the plan's stacks sequentially, feeding each stack's
outputs into later stacks' parameters. A stack whose parameters reference its
own discovered outputs is provisioned with a placeholder first and
re-provisioned once with the real value after the primary pass.

The first provisioning failure aborts the run. Already-provisioned stacks are
left standing; rerunning the command is safe because backend operations are
idempotent per stack.`,
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
			if err := checkIdentity(ctx, b); err != nil {
				return err
			}

			session := startRunSession(ctx, opts, logger, graph.Name, "deploy", cmd.OutOrStdout())
			defer session.Close()

			orch := &deploy.Orchestrator{Backend: b, Logger: logger, Observers: session.Observers}
			dctx, err := orch.Deploy(ctx, graph)
			if err != nil {
				return err
			}
			printOutputs(cmd, graph, dctx)
			return nil
		},
	}
	cmd.Flags().StringVar(&backendKind, "backend", "local", "Provisioning backend to use")
	return cmd
}

func printOutputs(cmd *cobra.Command, graph *stack.Graph, dctx deploy.Context) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "\nSTACK\tOUTPUT\tVALUE")
	for _, name := range graph.Order() {
		outputs := dctx[name]
		keys := make([]string, 0, len(outputs))
		for k := range outputs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, k, outputs[k])
		}
	}
}

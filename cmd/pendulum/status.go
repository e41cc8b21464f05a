// File: cmd/pendulum/status.go
// Brief: CLI command wiring for 'pendulum status'.

package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/config"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/logging"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/outputs"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

func newStatusCommand(opts *config.Options, logLevel *string) *cobra.Command {
	var backendKind string
	var exportName string
	var required bool
	cmd := &cobra.Command{
		Use:   "status [STACK]",
		Short: "Show the outputs the backend currently reports",
		Long: `Status queries the backend's describe operation for each stack (or a single
stack) and prints the current output snapshot. The snapshot is best-effort and
may lag immediately after a deploy.

With --export it performs a single point lookup instead; an absent export is
reported, not an error, unless --required is set.`,
		Args: cobra.MaximumNArgs(1),
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
			resolver := &outputs.Resolver{Backend: b, Logger: logger}

			if exportName != "" {
				value, found, err := resolver.Export(ctx, exportName, required)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "export %s: (absent)\n", exportName)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "export %s: %s\n", exportName, value)
				return nil
			}

			names := graph.Order()
			if len(args) == 1 {
				if graph.ByName(args[0]) == nil {
					return fmt.Errorf("stack %q is not declared in the plan", args[0])
				}
				names = args
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer tw.Flush()
			fmt.Fprintln(tw, "STACK\tOUTPUT\tVALUE")
			for _, name := range names {
				snapshot, err := resolver.Snapshot(ctx, name)
				if err != nil {
					fmt.Fprintf(tw, "%s\t-\t(describe failed: %v)\n", name, err)
					continue
				}
				if len(snapshot) == 0 {
					fmt.Fprintf(tw, "%s\t-\t(no outputs)\n", name)
					continue
				}
				keys := make([]string, 0, len(snapshot))
				for k := range snapshot {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", name, k, snapshot[k])
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&backendKind, "backend", "local", "Provisioning backend to use")
	cmd.Flags().StringVar(&exportName, "export", "", "Look up a single export by name instead of describing stacks")
	cmd.Flags().BoolVar(&required, "required", false, "Treat an absent --export as an error")
	return cmd
}

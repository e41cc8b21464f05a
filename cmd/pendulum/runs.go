// File: cmd/pendulum/runs.go
// Brief: CLI command wiring for 'pendulum runs'.

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/config"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/journal"
)

func newRunsCommand(opts *config.Options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List journaled deploy and teardown runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openJournal(opts)
			if err != nil {
				return err
			}
			defer store.Close()
			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer tw.Flush()
			fmt.Fprintln(tw, "RUN\tPLAN\tCOMMAND\tSTATUS\tSTARTED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.RunID, r.PlanName, r.Command, strings.ToUpper(r.Status), r.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	cmd.AddCommand(newRunsShowCommand(opts))
	return cmd
}

func newRunsShowCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the journaled events of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openJournal(opts)
			if err != nil {
				return err
			}
			defer store.Close()
			events, err := store.Events(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return fmt.Errorf("no events for run %q", args[0])
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer tw.Flush()
			fmt.Fprintln(tw, "TIME\tSTACK\tTYPE\tSTATUS\tMESSAGE")
			for _, e := range events {
				msg := strings.TrimSpace(e.Message)
				if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
					msg = msg[:idx] + "..."
				}
				if len(msg) > 140 {
					msg = msg[:140] + "..."
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Time.Format("15:04:05"), e.Stack, e.Type, e.Status, msg)
			}
			return nil
		},
	}
}

func openJournal(opts *config.Options) (*journal.Store, error) {
	path, err := opts.JournalPath()
	if err != nil {
		return nil, err
	}
	return journal.Open(path)
}

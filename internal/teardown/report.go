// File: internal/teardown/report.go
// Brief: Human-friendly teardown report table.

package teardown

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
)

// PrintReport renders the teardown outcomes as a table, one row per stack in
// attempt order.
func PrintReport(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "STACK\tSTATUS\tDETAIL")
	for _, o := range r.Outcomes {
		detail := strings.TrimSpace(o.Detail)
		if len(detail) > 140 {
			detail = detail[:140] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Stack, statusLabel(o.Status), detail)
	}
	return nil
}

func statusLabel(s backend.DeprovisionStatus) string {
	switch s {
	case backend.DeprovisionDestroyed:
		return color.GreenString("DESTROYED")
	case backend.DeprovisionNotFound:
		return color.YellowString("NOT FOUND")
	default:
		return color.RedString("FAILED")
	}
}

// File: internal/ui/console.go
// Brief: Line-oriented run event console.

package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

type ConsoleOptions struct {
	Verbose bool
	Width   int
}

// Console renders run events one line at a time. It is safe for use as an
// observer from a single orchestrator goroutine; the mutex only guards
// against interleaving with Done.
type Console struct {
	out  io.Writer
	opts ConsoleOptions

	mu sync.Mutex
}

func NewConsole(out io.Writer, opts ConsoleOptions) *Console {
	if opts.Width <= 0 {
		if cols, ok := TerminalWidth(out); ok {
			opts.Width = cols
		} else {
			opts.Width = 120
		}
	}
	return &Console{out: out, opts: opts}
}

func (c *Console) ObserveEvent(ev stack.Event) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.formatEvent(ev)
	if !ok {
		return
	}
	fmt.Fprintln(c.out, truncate(line, c.opts.Width))
}

func (c *Console) formatEvent(ev stack.Event) (string, bool) {
	switch ev.Type {
	case stack.RunStarted:
		return fmt.Sprintf("%s %s (%s)", color.CyanString(">>"), ev.Message, ev.Phase), true
	case stack.RunCompleted:
		label := color.GreenString("run complete")
		if ev.Status == "failed" {
			label = color.RedString("run failed")
		}
		return fmt.Sprintf("%s %s", color.CyanString("<<"), label), true
	case stack.StackProvisioning:
		return fmt.Sprintf("   %s provisioning...", padStack(ev.Stack)), true
	case stack.StackSucceeded:
		return fmt.Sprintf("   %s %s", padStack(ev.Stack), color.GreenString("ok")), true
	case stack.StackFailed:
		return fmt.Sprintf("   %s %s %s", padStack(ev.Stack), color.RedString("FAILED"), ev.Message), true
	case stack.RedeployQueued:
		return fmt.Sprintf("   %s %s (%s)", padStack(ev.Stack), color.YellowString("redeploy queued"), ev.Message), true
	case stack.RedeployStarted:
		if c.opts.Verbose && strings.TrimSpace(ev.Message) != "" {
			return fmt.Sprintf("   %s redeploying with resolved values\n%s", padStack(ev.Stack), indent(ev.Message, "     ")), true
		}
		return fmt.Sprintf("   %s redeploying with resolved values", padStack(ev.Stack)), true
	case stack.RedeploySucceeded:
		return fmt.Sprintf("   %s %s", padStack(ev.Stack), color.GreenString("redeployed")), true
	case stack.RedeployFailed:
		return fmt.Sprintf("   %s %s %s", padStack(ev.Stack), color.YellowString("redeploy failed (non-fatal)"), ev.Message), true
	case stack.StackDestroying:
		return fmt.Sprintf("   %s destroying...", padStack(ev.Stack)), true
	case stack.StackDestroyed:
		return fmt.Sprintf("   %s %s", padStack(ev.Stack), color.GreenString("destroyed")), true
	case stack.StackNotFound:
		return fmt.Sprintf("   %s %s", padStack(ev.Stack), color.YellowString("not found (already absent)")), true
	case stack.StackDestroyFailed:
		return fmt.Sprintf("   %s %s %s", padStack(ev.Stack), color.RedString("FAILED"), ev.Message), true
	}
	return "", false
}

func padStack(name string) string {
	const width = 16
	pad := width - runewidth.StringWidth(name)
	if pad < 1 {
		pad = 1
	}
	return name + strings.Repeat(" ", pad)
}

// truncate trims a line to the terminal width, measuring display cells so
// wide runes do not wrap. Lines carrying ANSI color are left alone: cutting
// inside an escape sequence garbles the terminal.
func truncate(line string, width int) string {
	if width <= 0 || strings.Contains(line, "\x1b") || strings.Contains(line, "\n") {
		return line
	}
	if runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width-3, "...")
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ConsoleNotifier prints advisory setup notices for humans. Writes are best
// effort; a broken output stream never fails an installation.
type ConsoleNotifier struct {
	out io.Writer
}

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

func (notifier *ConsoleNotifier) SetupRequired(toolName, setupURL string) {
	info := color.New(color.FgBlue, color.Bold).Sprint("ℹ")
	arrow := color.New(color.FgCyan).Sprint("→")
	url := color.New(color.FgBlue, color.Underline).Sprint(setupURL)

	_, _ = fmt.Fprintf(notifier.out, "\n  %s Setup required for MCP tool '%s'\n", info, color.New(color.Bold).Sprint(toolName))
	_, _ = fmt.Fprintf(notifier.out, "  %s Get your API key here: %s\n", arrow, url)
}

// NopNotifier drops all notices. Used by tests and quiet mode.
type NopNotifier struct{}

func (NopNotifier) SetupRequired(string, string) {}

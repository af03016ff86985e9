package apm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
	"github.com/ahmed6ww/apm/internal/pkg/cli"
	"github.com/ahmed6ww/apm/internal/pkg/installer"
)

// UninstallCmd removes an installed agent's identity and skills from one
// target editor. Registered MCP tools stay in the target's registry.
type UninstallCmd struct {
	Target string `arg:"" required:"" enum:"claude,cursor,codex" help:"Target editor (claude|cursor|codex)."`
	Name   string `arg:"" required:"" help:"Name of the installed agent."`

	Global bool `default:"true" negatable:"" help:"Uninstall from the user-level configuration instead of the current project."`
}

func (command *UninstallCmd) Run(ctx context.Context) error {
	target, err := agent.ParseTarget(command.Target)
	if err != nil {
		return fmt.Errorf("parse target: %w", err)
	}

	inst, err := installer.New(target, command.Global, afero.NewOsFs(), cli.NopNotifier{})
	if err != nil {
		return err
	}

	if err := inst.Uninstall(ctx, command.Name); err != nil {
		return fmt.Errorf("uninstall agent %s: %w", command.Name, err)
	}

	slog.Info("Agent uninstalled.",
		slog.String("agent", command.Name),
		slog.String("target", string(target)),
	)

	return nil
}

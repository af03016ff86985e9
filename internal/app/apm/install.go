package apm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
	"github.com/ahmed6ww/apm/internal/pkg/cli"
	"github.com/ahmed6ww/apm/internal/pkg/installer"
	"github.com/ahmed6ww/apm/internal/pkg/manifest"
)

// InstallCmd installs an agent manifest into one target editor.
type InstallCmd struct {
	Target   string `arg:"" required:"" enum:"claude,cursor,codex" help:"Target editor (claude|cursor|codex)."`
	Manifest string `arg:"" required:"" type:"existingfile" help:"Path to the agent manifest file."`

	Global bool `default:"true" negatable:"" help:"Install into the user-level configuration instead of the current project."`

	Identity bool `default:"true" negatable:"" help:"Install the agent identity."`
	Skills   bool `default:"true" negatable:"" help:"Install the agent skills."`
	Tools    bool `default:"true" negatable:"" help:"Register the agent MCP tools."`
}

func (command *InstallCmd) Run(ctx context.Context) error {
	target, err := agent.ParseTarget(command.Target)
	if err != nil {
		return fmt.Errorf("parse target: %w", err)
	}

	installID := uuid.NewString()
	logger := slog.With(
		slog.String("installId", installID),
		slog.String("target", string(target)),
	)

	fs := afero.NewOsFs()

	config, err := manifest.Load(fs, command.Manifest)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	logger.Info("Installing agent.",
		slog.String("agent", config.Name),
		slog.Bool("global", command.Global),
	)

	notifier := cli.NewConsoleNotifier(os.Stdout)

	inst, err := installer.New(target, command.Global, fs, notifier)
	if err != nil {
		return err
	}

	phases := installer.Phases{
		Identity: command.Identity,
		Skills:   command.Skills,
		Tools:    command.Tools,
	}

	if err := installer.Run(ctx, inst, config, phases); err != nil {
		return fmt.Errorf("install agent %s: %w", config.Name, err)
	}

	logger.Info("Agent installed.", slog.String("agent", config.Name))

	return nil
}

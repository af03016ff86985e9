// Package installer selects the adapter for an installation target and runs
// the install sequence against it.
package installer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcuadros/go-defaults"
	"github.com/spf13/afero"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
	"github.com/ahmed6ww/apm/internal/pkg/cli"
	"github.com/ahmed6ww/apm/internal/pkg/installer/claude"
	"github.com/ahmed6ww/apm/internal/pkg/installer/codex"
	"github.com/ahmed6ww/apm/internal/pkg/installer/cursor"
)

// New resolves the target's configuration directory and returns the adapter
// for it. This is the only place that knows the full set of targets.
func New(target agent.Target, global bool, fs afero.Fs, notifier agent.Notifier) (agent.Installer, error) {
	baseDir, err := cli.ResolveConfigDir(target, global)
	if err != nil {
		return nil, fmt.Errorf("resolve %s config dir: %w", target.DisplayName(), err)
	}

	switch target {
	case agent.TargetClaude:
		return claude.NewInstaller(fs, baseDir, notifier), nil
	case agent.TargetCursor:
		return cursor.NewInstaller(fs, baseDir, notifier), nil
	case agent.TargetCodex:
		return codex.NewInstaller(fs, baseDir, notifier), nil
	default:
		return nil, fmt.Errorf("%w: %s", agent.ErrUnknownTarget, target)
	}
}

// Phases selects which install operations Run performs.
type Phases struct {
	Identity bool `default:"true"`
	Skills   bool `default:"true"`
	Tools    bool `default:"true"`
}

// DefaultPhases returns a Phases with every operation enabled.
func DefaultPhases() Phases {
	var phases Phases
	defaults.SetDefaults(&phases)
	return phases
}

// Run performs the install sequence: identity, then skills, then tools.
// Ordering is enforced here, not by the individual operations. A failed
// operation aborts the sequence; files written by earlier operations stay
// in place.
func Run(ctx context.Context, inst agent.Installer, config agent.Config, phases Phases) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("validate agent config: %w", err)
	}

	logger := slog.With(slog.String("agent", config.Name))

	if phases.Identity {
		if err := inst.InstallIdentity(ctx, config); err != nil {
			return fmt.Errorf("install identity: %w", err)
		}
		logger.Info("Identity installed.")
	}

	if phases.Skills {
		if err := inst.InstallSkills(ctx, config); err != nil {
			return fmt.Errorf("install skills: %w", err)
		}
		logger.Info("Skills installed.", slog.Int("count", len(config.Skills)))
	}

	if phases.Tools {
		if err := inst.InstallTools(ctx, config); err != nil {
			return fmt.Errorf("install tools: %w", err)
		}
		logger.Info("Tools installed.", slog.Int("count", len(config.MCP)))
	}

	return nil
}

// Package detect locates target editor executables on PATH. Detection is
// informational only; apm never runs the editors it installs into.
package detect

import (
	"context"

	"github.com/cli/safeexec"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
)

var executableCandidates = map[agent.Target][]string{
	agent.TargetClaude: {"claude", "claude-code"},
	agent.TargetCursor: {"cursor-agent", "cursor"},
	agent.TargetCodex:  {"codex"},
}

// Executable returns the resolved path of the target's CLI executable, or
// false when none of its known names are on PATH.
func Executable(ctx context.Context, target agent.Target) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	for _, candidate := range executableCandidates[target] {
		path, err := safeexec.LookPath(candidate)
		if err != nil {
			continue
		}
		return path, true, nil
	}

	return "", false, nil
}

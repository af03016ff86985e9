package agent

import (
	"context"
	"errors"
)

// Target identifies a supported editor installation target.
type Target string

const (
	TargetClaude Target = "claude"
	TargetCursor Target = "cursor"
	TargetCodex  Target = "codex"
)

// ErrUnknownTarget indicates the requested target is not supported.
var ErrUnknownTarget = errors.New("unknown target")

// Targets returns all supported targets in a stable order.
func Targets() []Target {
	return []Target{TargetClaude, TargetCursor, TargetCodex}
}

// ParseTarget converts a user-supplied selector into a Target.
func ParseTarget(value string) (Target, error) {
	switch Target(value) {
	case TargetClaude:
		return TargetClaude, nil
	case TargetCursor:
		return TargetCursor, nil
	case TargetCodex:
		return TargetCodex, nil
	default:
		return "", ErrUnknownTarget
	}
}

// DisplayName returns the human-readable name of the target editor.
func (target Target) DisplayName() string {
	switch target {
	case TargetClaude:
		return "Claude Code"
	case TargetCursor:
		return "Cursor"
	case TargetCodex:
		return "Codex"
	default:
		return string(target)
	}
}

// Installer translates an agent config into one target's on-disk layout.
//
// All operations are idempotent: repeated calls with the same config produce
// the same on-disk state, and Uninstall succeeds when nothing is installed.
// InstallTools merges into a registry file shared by every agent of the
// target; it must leave unrelated registry entries untouched. Uninstall
// deliberately does not reverse registry entries.
type Installer interface {
	// InstallIdentity writes (or fully overwrites) the agent's identity
	// document, creating missing parent directories.
	InstallIdentity(ctx context.Context, config Config) error

	// InstallSkills writes one file per skill into the agent's skill
	// location. Files for skills absent from config are left in place.
	// A config without skills is a successful no-op.
	InstallSkills(ctx context.Context, config Config) error

	// InstallTools merges the agent's MCP tools into the target's shared
	// registry, replacing entries of the same name wholesale. A config
	// without tools is a successful no-op.
	InstallTools(ctx context.Context, config Config) error

	// Uninstall removes the identity document and the agent's skill
	// location when present.
	Uninstall(ctx context.Context, agentName string) error
}

// Notifier receives advisory setup notices emitted during installation.
// Implementations must never fail the install; delivery is best effort.
type Notifier interface {
	// SetupRequired reports that a tool needs manual setup at the given URL.
	SetupRequired(toolName, setupURL string)
}

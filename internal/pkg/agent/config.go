package agent

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAgentNameInvalid indicates the agent name is missing or not filesystem-safe.
	ErrAgentNameInvalid = errors.New("agent name invalid")

	// ErrSkillNameInvalid indicates a skill name is missing or not filesystem-safe.
	ErrSkillNameInvalid = errors.New("skill name invalid")

	// ErrToolNameInvalid indicates an MCP tool name is missing.
	ErrToolNameInvalid = errors.New("mcp tool name invalid")

	// ErrSystemPromptMissing indicates the identity has no system prompt.
	ErrSystemPromptMissing = errors.New("system prompt missing")
)

// Config describes one agent to be installed into a target editor.
// It is read-only from the installer's point of view; adapters never mutate it.
type Config struct {
	// Name is the unique identifier, used as the filename and directory stem
	// across all targets. Must not contain path separators.
	Name string `json:"name"`

	// Description is a human-readable summary of the agent.
	Description string `json:"description"`

	Identity Identity `json:"identity"`

	// Skills are knowledge snippets rendered as one file each.
	Skills []Skill `json:"skills,omitempty"`

	// MCP lists the external tool integrations to register.
	MCP []MCPTool `json:"mcp,omitempty"`
}

// Identity carries the agent's system prompt and optional presentation overrides.
type Identity struct {
	SystemPrompt string `json:"systemPrompt"`

	// Model overrides the target's default model when set.
	Model *string `json:"model,omitempty"`

	// Icon overrides the target's default glyph when set.
	Icon *string `json:"icon,omitempty"`
}

// Skill is a single knowledge snippet, written verbatim as its own file.
type Skill struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// MCPTool describes one MCP server registration.
type MCPTool struct {
	Name    string            `json:"name"`
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`

	// SetupURL points at manual setup instructions (usually an API key page).
	// It is surfaced as an advisory notice during install, never persisted.
	SetupURL *string `json:"setupUrl,omitempty"`
}

// Validate checks the invariants the installers rely on.
func (config Config) Validate() error {
	if !isPathSafe(config.Name) {
		return fmt.Errorf("%w: %q", ErrAgentNameInvalid, config.Name)
	}

	if strings.TrimSpace(config.Identity.SystemPrompt) == "" {
		return fmt.Errorf("agent %s: %w", config.Name, ErrSystemPromptMissing)
	}

	for _, skill := range config.Skills {
		if !isPathSafe(skill.Name) {
			return fmt.Errorf("agent %s: %w: %q", config.Name, ErrSkillNameInvalid, skill.Name)
		}
	}

	for _, tool := range config.MCP {
		if strings.TrimSpace(tool.Name) == "" {
			return fmt.Errorf("agent %s: %w", config.Name, ErrToolNameInvalid)
		}
	}

	return nil
}

// isPathSafe reports whether name can be used as a single path element.
func isPathSafe(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

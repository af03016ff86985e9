package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Name:        "reviewer",
		Description: "Reviews code",
		Identity:    Identity{SystemPrompt: "Review code."},
		Skills:      []Skill{{Name: "style", Content: "x"}},
		MCP:         []MCPTool{{Name: "github", Command: "npx"}},
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name    string
		mutate  func(config *Config)
		wantErr error
	}{
		{
			name:    "empty name",
			mutate:  func(config *Config) { config.Name = "" },
			wantErr: ErrAgentNameInvalid,
		},
		{
			name:    "name with slash",
			mutate:  func(config *Config) { config.Name = "a/b" },
			wantErr: ErrAgentNameInvalid,
		},
		{
			name:    "name with backslash",
			mutate:  func(config *Config) { config.Name = `a\b` },
			wantErr: ErrAgentNameInvalid,
		},
		{
			name:    "dot-dot name",
			mutate:  func(config *Config) { config.Name = ".." },
			wantErr: ErrAgentNameInvalid,
		},
		{
			name:    "blank system prompt",
			mutate:  func(config *Config) { config.Identity.SystemPrompt = "   " },
			wantErr: ErrSystemPromptMissing,
		},
		{
			name:    "skill name with separator",
			mutate:  func(config *Config) { config.Skills[0].Name = "a/b" },
			wantErr: ErrSkillNameInvalid,
		},
		{
			name:    "empty tool name",
			mutate:  func(config *Config) { config.MCP[0].Name = "" },
			wantErr: ErrToolNameInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)

			err := config.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseTarget(t *testing.T) {
	for _, target := range Targets() {
		parsed, err := ParseTarget(string(target))
		require.NoError(t, err)
		assert.Equal(t, target, parsed)
	}

	_, err := ParseTarget("vscode")
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

func TestTarget_DisplayName(t *testing.T) {
	assert.Equal(t, "Claude Code", TargetClaude.DisplayName())
	assert.Equal(t, "Cursor", TargetCursor.DisplayName())
	assert.Equal(t, "Codex", TargetCodex.DisplayName())
}

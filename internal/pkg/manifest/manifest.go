// Package manifest loads agent definitions from YAML manifests into the
// in-memory agent model.
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
)

var (
	// ErrPromptMissing indicates the manifest declares neither an inline
	// system prompt nor a prompt file.
	ErrPromptMissing = errors.New("manifest identity needs systemPrompt or promptFile")

	// ErrSkillContentMissing indicates a skill declares neither inline
	// content nor a content file.
	ErrSkillContentMissing = errors.New("manifest skill needs content or file")
)

// Manifest is the on-disk YAML shape of an agent definition.
type Manifest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Identity    IdentityIn `json:"identity"`
	Skills      []SkillIn  `json:"skills,omitempty"`
	MCP         []ToolIn   `json:"mcp,omitempty"`
}

// IdentityIn declares the system prompt inline or via a file path relative
// to the manifest.
type IdentityIn struct {
	SystemPrompt string  `json:"systemPrompt,omitempty"`
	PromptFile   string  `json:"promptFile,omitempty"`
	Model        *string `json:"model,omitempty"`
	Icon         *string `json:"icon,omitempty"`
}

// SkillIn declares skill content inline or via a file path relative to the
// manifest.
type SkillIn struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	File    string `json:"file,omitempty"`
}

// ToolIn declares one MCP tool registration.
type ToolIn struct {
	Name     string            `json:"name"`
	Command  string            `json:"command"`
	Args     []string          `json:"args,omitempty"`
	Env      map[string]string `json:"env,omitempty"`
	SetupURL *string           `json:"setupUrl,omitempty"`
}

// Load parses the manifest at path, resolves file indirections, and returns
// a validated agent config.
func Load(fs afero.Fs, path string) (agent.Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return agent.Config{}, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.UnmarshalStrict(data, &manifest); err != nil {
		return agent.Config{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)

	config, err := manifest.resolve(fs, baseDir)
	if err != nil {
		return agent.Config{}, err
	}

	if err := config.Validate(); err != nil {
		return agent.Config{}, fmt.Errorf("manifest %s: %w", path, err)
	}

	return config, nil
}

func (manifest Manifest) resolve(fs afero.Fs, baseDir string) (agent.Config, error) {
	config := agent.Config{
		Name:        manifest.Name,
		Description: manifest.Description,
		Identity: agent.Identity{
			SystemPrompt: manifest.Identity.SystemPrompt,
			Model:        manifest.Identity.Model,
			Icon:         manifest.Identity.Icon,
		},
	}

	if config.Identity.SystemPrompt == "" {
		if manifest.Identity.PromptFile == "" {
			return agent.Config{}, ErrPromptMissing
		}

		prompt, err := readRelativeFile(fs, baseDir, manifest.Identity.PromptFile)
		if err != nil {
			return agent.Config{}, fmt.Errorf("read prompt file: %w", err)
		}
		config.Identity.SystemPrompt = prompt
	}

	for _, skill := range manifest.Skills {
		content := skill.Content
		if content == "" {
			if skill.File == "" {
				return agent.Config{}, fmt.Errorf("skill %s: %w", skill.Name, ErrSkillContentMissing)
			}

			fileContent, err := readRelativeFile(fs, baseDir, skill.File)
			if err != nil {
				return agent.Config{}, fmt.Errorf("read skill %s: %w", skill.Name, err)
			}
			content = fileContent
		}

		config.Skills = append(config.Skills, agent.Skill{
			Name:    skill.Name,
			Content: content,
		})
	}

	for _, tool := range manifest.MCP {
		config.MCP = append(config.MCP, agent.MCPTool{
			Name:     tool.Name,
			Command:  tool.Command,
			Args:     tool.Args,
			Env:      tool.Env,
			SetupURL: tool.SetupURL,
		})
	}

	return config, nil
}

func readRelativeFile(fs afero.Fs, baseDir, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

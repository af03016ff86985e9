// Package claude installs agents into the Claude Code configuration layout.
//
// Identities become Markdown files with YAML frontmatter under
// {root}/agents, skills live under {root}/skills/{agent}, and MCP tools are
// merged into the .claude.json file that sits next to the config root.
package claude

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
	"github.com/ahmed6ww/apm/internal/pkg/registry"
)

const (
	defaultModel = "sonnet"
	defaultIcon  = "🤖"
)

// frontmatter is the metadata header of a Claude agent file. Field order is
// the serialization order.
type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Model       string `yaml:"model"`
	Icon        string `yaml:"icon"`
}

type Installer struct {
	fs      afero.Fs
	baseDir string
	notify  agent.Notifier
}

func NewInstaller(fs afero.Fs, baseDir string, notifier agent.Notifier) *Installer {
	return &Installer{
		fs:      fs,
		baseDir: baseDir,
		notify:  notifier,
	}
}

func (installer *Installer) identityPath(agentName string) string {
	return filepath.Join(installer.baseDir, "agents", agentName+".md")
}

func (installer *Installer) skillsDir(agentName string) string {
	return filepath.Join(installer.baseDir, "skills", agentName)
}

// registryPath is the sibling .claude.json next to the config root, matching
// where Claude Code keeps its MCP server registry (~/.claude.json for a
// global install).
func (installer *Installer) registryPath() string {
	return filepath.Join(filepath.Dir(installer.baseDir), ".claude.json")
}

func (installer *Installer) InstallIdentity(ctx context.Context, config agent.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	document, err := renderIdentity(config)
	if err != nil {
		return fmt.Errorf("render identity: %w", err)
	}

	path := installer.identityPath(config.Name)
	if err := installer.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create agents dir: %w", err)
	}

	if err := afero.WriteFile(installer.fs, path, document, 0o644); err != nil {
		return fmt.Errorf("write identity %s: %w", path, err)
	}

	return nil
}

func (installer *Installer) InstallSkills(ctx context.Context, config agent.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(config.Skills) == 0 {
		return nil
	}

	skillsDir := installer.skillsDir(config.Name)
	if err := installer.fs.MkdirAll(skillsDir, 0o755); err != nil {
		return fmt.Errorf("create skills dir: %w", err)
	}

	for _, skill := range config.Skills {
		path := filepath.Join(skillsDir, skill.Name+".md")
		if err := afero.WriteFile(installer.fs, path, []byte(skill.Content), 0o644); err != nil {
			return fmt.Errorf("write skill %s: %w", path, err)
		}
	}

	return nil
}

func (installer *Installer) InstallTools(ctx context.Context, config agent.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(config.MCP) == 0 {
		return nil
	}

	if err := registry.Merge(installer.fs, installer.registryPath(), config.MCP); err != nil {
		return fmt.Errorf("merge claude registry: %w", err)
	}

	for _, tool := range config.MCP {
		if tool.SetupURL != nil {
			installer.notify.SetupRequired(tool.Name, *tool.SetupURL)
		}
	}

	return nil
}

func (installer *Installer) Uninstall(ctx context.Context, agentName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	identityPath := installer.identityPath(agentName)
	if err := installer.fs.Remove(identityPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove identity %s: %w", identityPath, err)
	}

	if err := installer.fs.RemoveAll(installer.skillsDir(agentName)); err != nil {
		return fmt.Errorf("remove skills dir: %w", err)
	}

	return nil
}

func renderIdentity(config agent.Config) ([]byte, error) {
	header := frontmatter{
		Name:        config.Name,
		Description: config.Description,
		Model:       defaultModel,
		Icon:        defaultIcon,
	}
	if config.Identity.Model != nil {
		header.Model = *config.Identity.Model
	}
	if config.Identity.Icon != nil {
		header.Icon = *config.Identity.Icon
	}

	headerYAML, err := yaml.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	document := fmt.Sprintf("---\n%s---\n\n%s", headerYAML, config.Identity.SystemPrompt)

	return []byte(document), nil
}

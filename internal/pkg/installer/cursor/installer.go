// Package cursor installs agents into the Cursor configuration layout.
//
// Identities become .mdc rule files under {root}/rules, skills live under
// {root}/skills/{agent}, and MCP tools are merged into {root}/mcp.json.
package cursor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
	"github.com/ahmed6ww/apm/internal/pkg/registry"
)

const (
	defaultModel = "auto"
	defaultIcon  = "🤖"
)

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
	return filepath.Join(installer.baseDir, "rules", agentName+".mdc")
}

func (installer *Installer) skillsDir(agentName string) string {
	return filepath.Join(installer.baseDir, "skills", agentName)
}

func (installer *Installer) registryPath() string {
	return filepath.Join(installer.baseDir, "mcp.json")
}

func (installer *Installer) InstallIdentity(ctx context.Context, config agent.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := installer.identityPath(config.Name)
	if err := installer.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create rules dir: %w", err)
	}

	document := renderRule(config)
	if err := afero.WriteFile(installer.fs, path, []byte(document), 0o644); err != nil {
		return fmt.Errorf("write rule %s: %w", path, err)
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
		return fmt.Errorf("merge cursor registry: %w", err)
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
		return fmt.Errorf("remove rule %s: %w", identityPath, err)
	}

	if err := installer.fs.RemoveAll(installer.skillsDir(agentName)); err != nil {
		return fmt.Errorf("remove skills dir: %w", err)
	}

	return nil
}

// renderRule produces an .mdc document: rule frontmatter followed by the
// verbatim system prompt. alwaysApply stays false so the rule is attached by
// agent selection, not to every conversation.
func renderRule(config agent.Config) string {
	model := defaultModel
	if config.Identity.Model != nil {
		model = *config.Identity.Model
	}

	icon := defaultIcon
	if config.Identity.Icon != nil {
		icon = *config.Identity.Icon
	}

	return fmt.Sprintf(`---
description: %s
model: %s
icon: %s
alwaysApply: false
---

%s`, config.Description, model, icon, config.Identity.SystemPrompt)
}

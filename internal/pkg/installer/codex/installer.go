// Package codex installs agents into the Codex CLI configuration layout:
//
//	{root}/agents/{name}.md      identity, delimited header + system prompt
//	{root}/skills/{name}/*.md    one file per skill
//	{root}/config.json           shared MCP tool registry
package codex

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
	defaultModel = "gpt-4o"
	defaultIcon  = "🤖"
)

// Installer writes the Codex representation of an agent under baseDir.
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

func (installer *Installer) agentsDir() string {
	return filepath.Join(installer.baseDir, "agents")
}

func (installer *Installer) skillsDir(agentName string) string {
	return filepath.Join(installer.baseDir, "skills", agentName)
}

func (installer *Installer) identityPath(agentName string) string {
	return filepath.Join(installer.agentsDir(), agentName+".md")
}

func (installer *Installer) registryPath() string {
	return filepath.Join(installer.baseDir, "config.json")
}

func (installer *Installer) InstallIdentity(ctx context.Context, config agent.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := installer.fs.MkdirAll(installer.agentsDir(), 0o755); err != nil {
		return fmt.Errorf("create agents dir: %w", err)
	}

	document := renderIdentity(config)

	path := installer.identityPath(config.Name)
	if err := afero.WriteFile(installer.fs, path, []byte(document), 0o644); err != nil {
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
		return fmt.Errorf("merge codex registry: %w", err)
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

	skillsDir := installer.skillsDir(agentName)
	if err := installer.fs.RemoveAll(skillsDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove skills dir %s: %w", skillsDir, err)
	}

	return nil
}

// renderIdentity produces the identity document: a delimited metadata header
// in fixed field order, followed by the verbatim system prompt.
func renderIdentity(config agent.Config) string {
	model := defaultModel
	if config.Identity.Model != nil {
		model = *config.Identity.Model
	}

	icon := defaultIcon
	if config.Identity.Icon != nil {
		icon = *config.Identity.Icon
	}

	return fmt.Sprintf(`---
name: %s
description: %s
model: %s
icon: %s
---

%s`, config.Name, config.Description, model, icon, config.Identity.SystemPrompt)
}

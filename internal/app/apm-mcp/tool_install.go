package apm_mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
	"github.com/ahmed6ww/apm/internal/pkg/cli"
	"github.com/ahmed6ww/apm/internal/pkg/installer"
	"github.com/ahmed6ww/apm/internal/pkg/manifest"
)

func createInstallTool() mcpserver.ServerTool {
	tool := mcp.NewTool("install_agent",
		mcp.WithDescription("Installs an agent manifest into a target editor (identity, skills, and MCP tools)."),
		mcp.WithString("manifest",
			mcp.Description("Path to the agent manifest file."),
			mcp.Required(),
		),
		mcp.WithString("target",
			mcp.Description("Target editor: claude, cursor, or codex."),
			mcp.Required(),
		),
		mcp.WithBoolean("global",
			mcp.Description("Install into the user-level configuration. Defaults to true."),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		manifestPath, err := request.RequireString("manifest")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		targetValue, err := request.RequireString("target")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		target, err := agent.ParseTarget(targetValue)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("parse target: %s", err)), nil
		}

		global := request.GetBool("global", true)

		fs := afero.NewOsFs()

		config, err := manifest.Load(fs, manifestPath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load manifest: %s", err)), nil
		}

		// stdout carries the MCP protocol; advisory notices go to stderr.
		inst, err := installer.New(target, global, fs, cli.NewConsoleNotifier(os.Stderr))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := installer.Run(ctx, inst, config, installer.DefaultPhases()); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("install agent %s: %s", config.Name, err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Agent %s installed into %s.", config.Name, target.DisplayName())), nil
	}

	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: handler,
	}
}

func createUninstallTool() mcpserver.ServerTool {
	tool := mcp.NewTool("uninstall_agent",
		mcp.WithDescription("Removes an installed agent's identity and skills from a target editor. Registered MCP tools are left in place."),
		mcp.WithString("name",
			mcp.Description("Name of the installed agent."),
			mcp.Required(),
		),
		mcp.WithString("target",
			mcp.Description("Target editor: claude, cursor, or codex."),
			mcp.Required(),
		),
		mcp.WithBoolean("global",
			mcp.Description("Uninstall from the user-level configuration. Defaults to true."),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		agentName, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		targetValue, err := request.RequireString("target")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		target, err := agent.ParseTarget(targetValue)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("parse target: %s", err)), nil
		}

		global := request.GetBool("global", true)

		inst, err := installer.New(target, global, afero.NewOsFs(), cli.NopNotifier{})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := inst.Uninstall(ctx, agentName); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("uninstall agent %s: %s", agentName, err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Agent %s uninstalled from %s.", agentName, target.DisplayName())), nil
	}

	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: handler,
	}
}

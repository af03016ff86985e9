package apm_mcp

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ahmed6ww/apm/internal/pkg/cli"
)

type Command struct {
	Log cli.LogConfig `embed:"" prefix:"log-"`
}

func (command *Command) Run() error {
	server := mcpserver.NewMCPServer(
		"apm-mcp",
		"1.0.0",
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	server.AddTools(
		createInstallTool(),
		createUninstallTool(),
	)

	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}

	return nil
}

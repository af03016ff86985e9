package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	apmmcp "github.com/ahmed6ww/apm/internal/app/apm-mcp"
	"github.com/ahmed6ww/apm/internal/pkg/cli"
)

func main() {
	var command apmmcp.Command

	kongContext := kong.Parse(&command,
		kong.Name("apm-mcp"),
		kong.Description("MCP stdio server exposing agent install and uninstall as tools."),
		kong.UsageOnError(),
	)

	logger, err := cli.CreateLoggerFromConfig(command.Log)
	kongContext.FatalIfErrorf(err)
	slog.SetDefault(logger)

	kongContext.FatalIfErrorf(command.Run())
}

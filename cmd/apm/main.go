package main

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ahmed6ww/apm/internal/app/apm"
	"github.com/ahmed6ww/apm/internal/pkg/cli"
)

func main() {
	var command apm.Command

	kongContext := kong.Parse(&command,
		kong.Name("apm"),
		kong.Description("Installs portable agent definitions into AI coding editors."),
		kong.UsageOnError(),
	)

	logger, err := cli.CreateLoggerFromConfig(command.Log)
	kongContext.FatalIfErrorf(err)
	slog.SetDefault(logger)

	kongContext.BindTo(context.Background(), (*context.Context)(nil))

	kongContext.FatalIfErrorf(kongContext.Run())
}

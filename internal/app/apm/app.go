package apm

import "github.com/ahmed6ww/apm/internal/pkg/cli"

type Command struct {
	Log cli.LogConfig `embed:"" prefix:"log-"`

	Install   InstallCmd   `cmd:"" help:"Install an agent into a target editor"`
	Uninstall UninstallCmd `cmd:"" help:"Remove an installed agent from a target editor"`
	Targets   TargetsCmd   `cmd:"" help:"List supported targets and detected editors"`
}

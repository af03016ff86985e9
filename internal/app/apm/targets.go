package apm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
	"github.com/ahmed6ww/apm/internal/pkg/cli"
	"github.com/ahmed6ww/apm/internal/pkg/detect"
)

// TargetsOutputItem represents one target in the listing output.
type TargetsOutputItem struct {
	Target      agent.Target `json:"target"`
	DisplayName string       `json:"displayName"`
	ConfigDir   string       `json:"configDir"`
	Executable  string       `json:"executable,omitempty"`
	Detected    bool         `json:"detected"`
}

// TargetsOutput captures the listing payload for supported targets.
type TargetsOutput struct {
	Items []TargetsOutputItem `json:"items"`
	Count int                 `json:"count"`
}

// TargetsCmd lists supported targets, their config directories, and whether
// the editor executable is present on PATH.
type TargetsCmd struct {
	Global bool `default:"true" negatable:"" help:"Resolve user-level configuration directories."`
}

func (command *TargetsCmd) Run(ctx context.Context) error {
	items := make([]TargetsOutputItem, 0, len(agent.Targets()))

	for _, target := range agent.Targets() {
		configDir, err := cli.ResolveConfigDir(target, command.Global)
		if err != nil {
			return fmt.Errorf("resolve %s config dir: %w", target, err)
		}

		executable, detected, err := detect.Executable(ctx, target)
		if err != nil {
			return fmt.Errorf("detect %s executable: %w", target, err)
		}

		items = append(items, TargetsOutputItem{
			Target:      target,
			DisplayName: target.DisplayName(),
			ConfigDir:   configDir,
			Executable:  executable,
			Detected:    detected,
		})
	}

	output := TargetsOutput{
		Items: items,
		Count: len(items),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode targets output: %w", err)
	}

	return nil
}

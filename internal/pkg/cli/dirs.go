package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"github.com/mitchellh/go-homedir"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
)

// ResolveConfigDir returns the base configuration directory for a target.
// Global installs resolve under the user's home (~/.claude, ~/.cursor,
// ~/.codex); local installs resolve under the current working directory.
// An APM_<TARGET>_CONFIG_DIR environment variable overrides both.
func ResolveConfigDir(target agent.Target, global bool) (string, error) {
	envVarName := "APM_" + strcase.ToScreamingSnake(string(target)) + "_CONFIG_DIR"

	if envPath, ok := os.LookupEnv(envVarName); ok && envPath != "" {
		absPath, err := filepath.Abs(envPath)
		if err != nil {
			return "", fmt.Errorf("resolve %s path: %w", envVarName, err)
		}
		return absPath, nil
	}

	dotDir := "." + string(target)

	if global {
		expanded, err := homedir.Expand("~/" + dotDir)
		if err != nil {
			return "", fmt.Errorf("expand %s config dir: %w", target, err)
		}
		return expanded, nil
	}

	absPath, err := filepath.Abs(dotDir)
	if err != nil {
		return "", fmt.Errorf("resolve local %s config dir: %w", target, err)
	}

	return absPath, nil
}

// Package registry implements the read-merge-write cycle for the shared MCP
// tool registry file each target keeps (config.json, mcp.json, .claude.json).
//
// The file is process-external shared state with no locking. Concurrent
// installer invocations against the same registry are subject to a
// last-writer-wins race per key; for a local single-user CLI this is
// accepted rather than synchronized away.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
)

const serversKey = "mcpServers"

// Server is the persisted shape of one registry entry.
type Server struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// Merge writes each tool into the registry at path under mcpServers,
// replacing entries of the same name wholesale and leaving every other key
// in the file untouched. A missing, empty, or syntactically invalid registry
// file is treated as an empty object and overwritten.
func Merge(fs afero.Fs, path string, tools []agent.MCPTool) error {
	data, err := read(fs, path)
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}

	if !gjson.GetBytes(data, serversKey).IsObject() {
		data, err = sjson.SetRawBytes(data, serversKey, []byte("{}"))
		if err != nil {
			return fmt.Errorf("init %s: %w", serversKey, err)
		}
	}

	for _, tool := range tools {
		server := Server{
			Command: tool.Command,
			Args:    tool.Args,
			Env:     tool.Env,
		}
		if server.Args == nil {
			server.Args = []string{}
		}
		if server.Env == nil {
			server.Env = map[string]string{}
		}

		data, err = sjson.SetBytes(data, serversKey+"."+escapeKey(tool.Name), server)
		if err != nil {
			return fmt.Errorf("set registry entry %s: %w", tool.Name, err)
		}
	}

	if err := write(fs, path, pretty.Pretty(data)); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}

	return nil
}

// read returns raw registry bytes. Absent or unparseable content yields an
// empty object; the merge only adds or replaces named entries, so dropping a
// corrupt file is an explicit tolerance policy, not data loss. A top-level
// value that is valid JSON but not an object (an array or scalar) is just as
// unusable as a registry and gets the same treatment.
func read(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return []byte("{}"), nil
		}
		return nil, fmt.Errorf("read registry file: %w", err)
	}

	if len(data) == 0 || !json.Valid(data) {
		return []byte("{}"), nil
	}

	if !gjson.ParseBytes(data).IsObject() {
		return []byte("{}"), nil
	}

	return data, nil
}

// write replaces the registry file atomically: write to a temp file in the
// same directory, then rename over the destination.
func write(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}

	tmpPath := path + "~"

	if err := afero.WriteFile(fs, tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Path metacharacters recognized by gjson/sjson: separators (. |), wildcards
// (* ?), query and modifier markers (# @), and the escape itself.
var keyEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`|`, `\|`,
	`*`, `\*`,
	`?`, `\?`,
	`#`, `\#`,
	`@`, `\@`,
)

// escapeKey escapes gjson path metacharacters so a tool name always
// addresses a single object key.
func escapeKey(name string) string {
	return keyEscaper.Replace(name)
}

package registry

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
)

const registryPath = "/config/config.json"

func TestMerge_CreatesFileAndParentDir(t *testing.T) {
	fs := afero.NewMemMapFs()

	err := Merge(fs, registryPath, []agent.MCPTool{
		{Name: "github", Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-github"}},
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, registryPath)
	require.NoError(t, err)

	assert.True(t, json.Valid(data))
	assert.Equal(t, "npx", gjson.GetBytes(data, "mcpServers.github.command").String())
	assert.True(t, gjson.GetBytes(data, "mcpServers.github.args").IsArray())
	assert.True(t, gjson.GetBytes(data, "mcpServers.github.env").IsObject())
}

func TestMerge_PreservesUnrelatedKeys(t *testing.T) {
	fs := afero.NewMemMapFs()

	existing := `{
  "foo": 1,
  "mcpServers": {
    "bar": {"command": "node", "args": [], "env": {}}
  }
}`
	require.NoError(t, afero.WriteFile(fs, registryPath, []byte(existing), 0o644))

	err := Merge(fs, registryPath, []agent.MCPTool{
		{Name: "baz", Command: "python"},
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, registryPath)
	require.NoError(t, err)

	assert.Equal(t, int64(1), gjson.GetBytes(data, "foo").Int())
	assert.Equal(t, "node", gjson.GetBytes(data, "mcpServers.bar.command").String())
	assert.Equal(t, "python", gjson.GetBytes(data, "mcpServers.baz.command").String())
	assert.True(t, gjson.GetBytes(data, "mcpServers").IsObject())
}

func TestMerge_ReplacesEntryWholesale(t *testing.T) {
	fs := afero.NewMemMapFs()

	err := Merge(fs, registryPath, []agent.MCPTool{
		{Name: "baz", Command: "first", Env: map[string]string{"API_KEY": "old"}},
	})
	require.NoError(t, err)

	err = Merge(fs, registryPath, []agent.MCPTool{
		{Name: "baz", Command: "second"},
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, registryPath)
	require.NoError(t, err)

	assert.Equal(t, "second", gjson.GetBytes(data, "mcpServers.baz.command").String())
	// Replacement is whole-object, not a deep merge.
	assert.False(t, gjson.GetBytes(data, "mcpServers.baz.env.API_KEY").Exists())
}

func TestMerge_CorruptFileTreatedAsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, registryPath, []byte(`{"mcpServers": not json`), 0o644))

	err := Merge(fs, registryPath, []agent.MCPTool{
		{Name: "github", Command: "npx"},
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, registryPath)
	require.NoError(t, err)

	require.True(t, json.Valid(data))

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Len(t, parsed, 1)
	assert.Equal(t, "npx", gjson.GetBytes(data, "mcpServers.github.command").String())
}

func TestMerge_NonObjectFileTreatedAsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		existing string
	}{
		{name: "array", existing: `[1, 2, 3]`},
		{name: "string", existing: `"not a registry"`},
		{name: "number", existing: `42`},
		{name: "null", existing: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, registryPath, []byte(tt.existing), 0o644))

			err := Merge(fs, registryPath, []agent.MCPTool{
				{Name: "github", Command: "npx"},
			})
			require.NoError(t, err)

			data, err := afero.ReadFile(fs, registryPath)
			require.NoError(t, err)

			require.True(t, json.Valid(data))
			assert.True(t, gjson.GetBytes(data, "mcpServers").IsObject())
			assert.Equal(t, "npx", gjson.GetBytes(data, "mcpServers.github.command").String())
		})
	}
}

func TestMerge_ReplacesNonObjectServersKey(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, registryPath, []byte(`{"mcpServers": "broken", "foo": true}`), 0o644))

	err := Merge(fs, registryPath, []agent.MCPTool{
		{Name: "github", Command: "npx"},
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, registryPath)
	require.NoError(t, err)

	assert.True(t, gjson.GetBytes(data, "mcpServers").IsObject())
	assert.True(t, gjson.GetBytes(data, "foo").Bool())
}

func TestMerge_ToolNameWithPathMetacharacters(t *testing.T) {
	toolNames := []string{
		"acme.search",
		"a|b",
		"a*b",
		"a?b",
		"a#b",
		"a@b",
		`a\b`,
	}

	for _, toolName := range toolNames {
		t.Run(toolName, func(t *testing.T) {
			fs := afero.NewMemMapFs()

			err := Merge(fs, registryPath, []agent.MCPTool{
				{Name: toolName, Command: "acme-mcp"},
			})
			require.NoError(t, err)

			data, err := afero.ReadFile(fs, registryPath)
			require.NoError(t, err)

			var parsed struct {
				Servers map[string]Server `json:"mcpServers"`
			}
			require.NoError(t, json.Unmarshal(data, &parsed))

			require.Len(t, parsed.Servers, 1)
			server, ok := parsed.Servers[toolName]
			require.True(t, ok, "name must be a single key, neither nested nor dropped")
			assert.Equal(t, "acme-mcp", server.Command)
		})
	}
}

func TestMerge_WriteFailurePropagates(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := Merge(fs, registryPath, []agent.MCPTool{
		{Name: "github", Command: "npx"},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "write registry")
}

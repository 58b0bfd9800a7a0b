package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/config"
)

func noopHandler(context.Context, *Invocation) (interface{}, error) {
	return nil, nil
}

func TestRegistry_RegisterTool(t *testing.T) {
	tests := []struct {
		name    string
		info    *ToolInfo
		wantErr string
	}{
		{
			name:    "empty name",
			info:    &ToolInfo{Toolset: "issues", Handler: noopHandler},
			wantErr: "tool name cannot be empty",
		},
		{
			name:    "nil handler",
			info:    &ToolInfo{Name: "x", Toolset: "issues"},
			wantErr: "tool handler cannot be nil",
		},
		{
			name:    "missing toolset",
			info:    &ToolInfo{Name: "x", Handler: noopHandler},
			wantErr: "tool 'x' has no toolset",
		},
		{
			name: "valid",
			info: &ToolInfo{Name: "x", Toolset: "issues", Handler: noopHandler},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEmptyRegistry().RegisterTool(tt.info)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewEmptyRegistry()
	info := &ToolInfo{Name: "x", Toolset: "issues", Handler: noopHandler}

	require.NoError(t, r.RegisterTool(info))
	assert.EqualError(t, r.RegisterTool(info), "tool 'x' is already registered")
}

func TestRegistry_BuiltInCatalog(t *testing.T) {
	r := NewRegistry()

	tools := r.ListTools()
	require.NotEmpty(t, tools)
	for i := 1; i < len(tools); i++ {
		assert.Less(t, tools[i-1].Name, tools[i].Name, "tools must be sorted by name")
	}

	for _, name := range []string{
		"get_project", "list_merge_requests", "get_merge_request", "get_merge_request_changes",
		"list_issues", "create_issue", "list_pipelines", "list_pipeline_jobs",
		"list_commits", "get_commit", "list_branches", "list_labels", "create_label",
		"list_milestones", "get_current_user", "list_namespaces", "list_releases", "list_wiki_pages",
	} {
		_, ok := r.GetTool(name)
		assert.True(t, ok, "missing tool %s", name)
	}

	assert.Equal(t, []string{
		"discussions", "issues", "labels", "merge_requests", "milestones", "namespaces",
		"pipelines", "projects", "releases", "repository", "users", "wiki",
	}, r.Toolsets())
}

func TestRegistry_UnknownToolsets(t *testing.T) {
	r := NewRegistry()

	assert.Empty(t, r.UnknownToolsets([]string{"wiki", "releases"}))
	assert.Equal(t, []string{"wikis", "graphql"}, r.UnknownToolsets([]string{"wikis", "issues", "graphql"}))
	assert.Empty(t, r.UnknownToolsets(nil))
}

func TestToolInfo_Tool(t *testing.T) {
	r := NewRegistry()

	for _, info := range r.ListTools() {
		tool := info.Tool()
		assert.Equal(t, info.Name, tool.Name)
		assert.NotEmpty(t, tool.Description, info.Name)

		require.NotNil(t, tool.Annotations.ReadOnlyHint, info.Name)
		assert.Equal(t, !info.Mutating, *tool.Annotations.ReadOnlyHint, info.Name)
		require.NotNil(t, tool.Annotations.DestructiveHint, info.Name)
		assert.Equal(t, info.Mutating, *tool.Annotations.DestructiveHint, info.Name)
	}

	info, _ := r.GetTool("get_merge_request")
	tool := info.Tool()
	assert.Contains(t, tool.InputSchema.Required, argMergeRequestIID)
	assert.Contains(t, tool.InputSchema.Properties, argProjectID)
	assert.NotContains(t, tool.InputSchema.Required, argProjectID)
}

func TestRegistry_MutatingTools(t *testing.T) {
	r := NewRegistry()

	mutating := map[string]bool{}
	for _, info := range r.ListTools() {
		if info.Mutating {
			mutating[info.Name] = true
		}
	}

	for _, name := range []string{
		"create_merge_request", "update_merge_request", "merge_merge_request", "approve_merge_request",
		"create_issue", "update_issue", "close_issue", "create_merge_request_note", "create_issue_note",
		"resolve_discussion", "retry_pipeline", "cancel_pipeline", "create_branch", "delete_branch",
		"create_label", "delete_label", "create_milestone",
	} {
		assert.True(t, mutating[name], "%s should be mutating", name)
	}
	assert.Len(t, mutating, 17)
}

func TestRegistry_ListEnabledTools(t *testing.T) {
	r := NewRegistry()

	t.Run("all enabled", func(t *testing.T) {
		cfg := &config.Config{}
		assert.Len(t, r.ListEnabledTools(cfg), len(r.ListTools()))
	})

	t.Run("disabled toolset and tool", func(t *testing.T) {
		cfg := &config.Config{Tools: config.ToolsConfig{
			DisabledToolsets: []string{"wiki"},
			DisabledTools:    []string{"get_project"},
		}}

		enabled := r.ListEnabledTools(cfg)
		names := map[string]bool{}
		for _, info := range enabled {
			names[info.Name] = true
			assert.NotEqual(t, "wiki", info.Toolset)
		}
		assert.False(t, names["get_project"])
		assert.True(t, names["list_project_members"])
		assert.Len(t, enabled, len(r.ListTools())-3) // two wiki tools and get_project
	})

	t.Run("read-only keeps mutating tools listed", func(t *testing.T) {
		cfg := &config.Config{GitLab: config.GitLabConfig{ReadOnly: true}}
		assert.Len(t, r.ListEnabledTools(cfg), len(r.ListTools()))
	})
}

func TestRegistry_ServerTools(t *testing.T) {
	r := NewRegistry()
	cfg := &config.Config{Tools: config.ToolsConfig{DisabledToolsets: []string{"releases"}}}

	serverTools := r.ServerTools(newTestApp(testConfig("https://gitlab.example.com")), cfg)

	assert.Len(t, serverTools, len(r.ListEnabledTools(cfg)))
	for _, st := range serverTools {
		assert.NotNil(t, st.Handler)
		assert.NotEqual(t, "list_releases", st.Tool.Name)
	}
}

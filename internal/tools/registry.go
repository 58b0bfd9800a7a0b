package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/app"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/config"
)

// HandlerFunc implements one tool. The returned value is encoded as the JSON
// tool result.
type HandlerFunc func(ctx context.Context, inv *Invocation) (interface{}, error)

// ToolInfo contains metadata about a tool
type ToolInfo struct {
	Name        string           // Tool identifier exposed to agents
	Description string           // Human-readable description
	Toolset     string           // Toolset the tool belongs to (e.g. "issues", "wiki")
	Mutating    bool             // Whether the tool modifies GitLab data
	Options     []mcp.ToolOption // Argument schema
	Handler     HandlerFunc      // Implementation
}

// Tool builds the MCP tool definition
func (t *ToolInfo) Tool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(t.Description),
		mcp.WithReadOnlyHintAnnotation(!t.Mutating),
		mcp.WithDestructiveHintAnnotation(t.Mutating),
		mcp.WithOpenWorldHintAnnotation(true),
	}
	opts = append(opts, t.Options...)
	return mcp.NewTool(t.Name, opts...)
}

// Registry manages the available tools
type Registry struct {
	tools map[string]*ToolInfo
}

// NewRegistry creates a registry holding the built-in tool catalog
func NewRegistry() *Registry {
	registry := NewEmptyRegistry()
	registry.registerBuiltInTools()
	return registry
}

// NewEmptyRegistry creates a registry with no tools
func NewEmptyRegistry() *Registry {
	return &Registry{tools: make(map[string]*ToolInfo)}
}

// RegisterTool registers a new tool in the registry
func (r *Registry) RegisterTool(info *ToolInfo) error {
	if info.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	if info.Handler == nil {
		return fmt.Errorf("tool handler cannot be nil")
	}

	if info.Toolset == "" {
		return fmt.Errorf("tool '%s' has no toolset", info.Name)
	}

	if _, exists := r.tools[info.Name]; exists {
		return fmt.Errorf("tool '%s' is already registered", info.Name)
	}

	r.tools[info.Name] = info
	return nil
}

// mustRegister registers built-in tools, which are known to be valid
func (r *Registry) mustRegister(tools ...*ToolInfo) {
	for _, info := range tools {
		if err := r.RegisterTool(info); err != nil {
			panic(err)
		}
	}
}

// GetTool returns tool info by name
func (r *Registry) GetTool(name string) (*ToolInfo, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// ListTools returns all registered tools sorted by name
func (r *Registry) ListTools() []*ToolInfo {
	result := make([]*ToolInfo, 0, len(r.tools))
	for _, info := range r.tools {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// ListEnabledTools returns the tools allowed by cfg. Disabled toolsets and
// individually disabled tools are left out; mutating tools stay listed in
// read-only mode and are rejected when called.
func (r *Registry) ListEnabledTools(cfg *config.Config) []*ToolInfo {
	var result []*ToolInfo
	for _, info := range r.ListTools() {
		if cfg.ToolsetEnabled(info.Toolset) && cfg.ToolEnabled(info.Name) {
			result = append(result, info)
		}
	}
	return result
}

// ServerTools binds the enabled tools to a for registration on an MCP server
func (r *Registry) ServerTools(a *app.App, cfg *config.Config) []server.ServerTool {
	enabled := r.ListEnabledTools(cfg)
	result := make([]server.ServerTool, 0, len(enabled))
	for _, info := range enabled {
		result = append(result, server.ServerTool{
			Tool:    info.Tool(),
			Handler: Dispatch(a, info),
		})
	}
	return result
}

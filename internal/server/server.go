// Package server builds the MCP server exposing the GitLab tool catalog.
package server

import (
	"fmt"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/app"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/config"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/tools"
)

const Name = "gitlab-mcp"

// Version is set at build time via ldflags
var Version = "dev"

// New creates the MCP server with the tools enabled by cfg
func New(a *app.App, registry *tools.Registry, cfg *config.Config) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		Name,
		Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(Instructions(cfg)),
	)

	if unknown := registry.UnknownToolsets(cfg.Tools.DisabledToolsets); len(unknown) > 0 {
		a.Logger().Warn("Ignoring unknown toolsets in configuration",
			zap.Strings("toolsets", unknown),
			zap.Strings("known_toolsets", registry.Toolsets()),
		)
	}

	serverTools := registry.ServerTools(a, cfg)
	s.AddTools(serverTools...)

	a.Logger().Info("MCP server ready",
		zap.Int("tools", len(serverTools)),
		zap.String("access_mode", cfg.AccessMode()),
		zap.String("auth_mode", cfg.AuthMode()),
		zap.Strings("disabled_toolsets", cfg.Tools.DisabledToolsets),
	)
	return s
}

// Instructions describes the server to connecting agents
func Instructions(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString("Tools for the GitLab REST API. Results are reduced for readability: ")
	b.WriteString("users are flattened to usernames, timestamps are relative (\"3 hours ago\"), ")
	b.WriteString("and merge requests carry blockers, ready_to_merge and a one-line summary.\n")
	b.WriteString("List tools return one page; pass page and per_page (max 100) to continue.\n")

	if cfg.HasDefaultProject() {
		fmt.Fprintf(&b, "project_id defaults to %q.\n", cfg.GitLab.DefaultProjectID)
	} else {
		b.WriteString("No default project is configured; pass project_id (numeric ID or 'group/project').\n")
	}
	if cfg.GitLab.ReadOnly {
		b.WriteString("Read-only mode is enabled: tools that modify GitLab data will be rejected.\n")
	}
	return b.String()
}

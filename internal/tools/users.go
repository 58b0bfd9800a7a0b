package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
)

const toolsetUsers = "users"

func userTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "get_current_user",
			Description: "Get the user the configured credential authenticates as",
			Toolset:     toolsetUsers,
			Handler:     getCurrentUser,
		},
		{
			Name:        "search_users",
			Description: "Search users by name, username or public email",
			Toolset:     toolsetUsers,
			Options: options(
				mcp.WithString("search", mcp.Required(), mcp.Description("Text to search for")),
				withPagination(),
			),
			Handler: searchUsers,
		},
	}
}

func getCurrentUser(ctx context.Context, inv *Invocation) (interface{}, error) {
	client, err := inv.Client()
	if err != nil {
		return nil, err
	}
	return getEntity(ctx, inv, client, "user", nil, transform.NewUser)
}

type searchUsersOptions struct {
	ListOptions
	Search string `url:"search"`
}

func searchUsers(ctx context.Context, inv *Invocation) (interface{}, error) {
	search, err := requireString(inv.Request, "search")
	if err != nil {
		return nil, err
	}
	client, err := inv.Client()
	if err != nil {
		return nil, err
	}
	opt := &searchUsersOptions{ListOptions: listOptions(inv.Request), Search: search}
	return listEntities(ctx, inv, client, "user", "users", opt, transform.NewUser)
}

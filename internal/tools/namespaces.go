package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
)

const (
	toolsetNamespaces = "namespaces"
	argNamespace      = "namespace"
)

func namespaceTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "list_namespaces",
			Description: "List the user and group namespaces visible to the current user",
			Toolset:     toolsetNamespaces,
			Options: options(
				mcp.WithString("search", mcp.Description("Only namespaces whose path contains this text")),
				withPagination(),
			),
			Handler: listNamespaces,
		},
		{
			Name:        "get_namespace",
			Description: "Get a namespace by ID or full path",
			Toolset:     toolsetNamespaces,
			Options: options(
				mcp.WithString(argNamespace, mcp.Required(), mcp.Description("Namespace ID or full path, e.g. 'group/subgroup'")),
			),
			Handler: getNamespace,
		},
	}
}

type listNamespacesOptions struct {
	ListOptions
	Search string `url:"search,omitempty"`
}

func listNamespaces(ctx context.Context, inv *Invocation) (interface{}, error) {
	client, err := inv.Client()
	if err != nil {
		return nil, err
	}
	opt := &listNamespacesOptions{
		ListOptions: listOptions(inv.Request),
		Search:      optionalString(inv.Request, "search"),
	}
	return listEntities(ctx, inv, client, "namespace", "namespaces", opt, transform.NewNamespace)
}

func getNamespace(ctx context.Context, inv *Invocation) (interface{}, error) {
	id, err := requireString(inv.Request, argNamespace)
	if err != nil {
		return nil, err
	}
	client, err := inv.Client()
	if err != nil {
		return nil, err
	}
	return getEntity(ctx, inv, client, "namespaces/"+gogitlab.PathEscape(id), nil, transform.NewNamespace)
}

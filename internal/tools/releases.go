package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
)

const (
	toolsetReleases = "releases"
	argTagName      = "tag_name"
)

func releaseTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "list_releases",
			Description: "List project releases, newest first",
			Toolset:     toolsetReleases,
			Options:     options(withProjectID(), withPagination()),
			Handler:     listReleases,
		},
		{
			Name:        "get_release",
			Description: "Get a release by tag with its asset links",
			Toolset:     toolsetReleases,
			Options: options(
				withProjectID(),
				mcp.WithString(argTagName, mcp.Required(), mcp.Description("Tag the release is attached to")),
			),
			Handler: getRelease,
		},
	}
}

func listReleases(ctx context.Context, inv *Invocation) (interface{}, error) {
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	opt := listOptions(inv.Request)
	return listEntities(ctx, inv, project.Client, "release", project.Path("releases"), &opt, transform.NewRelease)
}

func getRelease(ctx context.Context, inv *Invocation) (interface{}, error) {
	tag, err := requireString(inv.Request, argTagName)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return getEntity(ctx, inv, project.Client, project.Path("releases", tag), nil, transform.NewRelease)
}

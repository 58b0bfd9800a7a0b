package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
)

const (
	toolsetWiki = "wiki"
	argSlug     = "slug"
)

func wikiTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "list_wiki_pages",
			Description: "List project wiki pages",
			Toolset:     toolsetWiki,
			Options: options(
				withProjectID(),
				mcp.WithBoolean("with_content", mcp.Description("Include page content")),
				withPagination(),
			),
			Handler: listWikiPages,
		},
		{
			Name:        "get_wiki_page",
			Description: "Get a wiki page with its content",
			Toolset:     toolsetWiki,
			Options: options(
				withProjectID(),
				mcp.WithString(argSlug, mcp.Required(), mcp.Description("Page slug, e.g. 'dev/setup'")),
			),
			Handler: getWikiPage,
		},
	}
}

type listWikiOptions struct {
	ListOptions
	WithContent bool `url:"with_content,omitempty"`
}

func listWikiPages(ctx context.Context, inv *Invocation) (interface{}, error) {
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	opt := &listWikiOptions{
		ListOptions: listOptions(inv.Request),
		WithContent: inv.Request.GetBool("with_content", false),
	}
	return listEntities(ctx, inv, project.Client, "wiki_page", project.Path("wikis"), opt, transform.NewWikiPage)
}

func getWikiPage(ctx context.Context, inv *Invocation) (interface{}, error) {
	slug, err := requireString(inv.Request, argSlug)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return getEntity(ctx, inv, project.Client, project.Path("wikis", slug), nil, transform.NewWikiPage)
}

package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
)

const toolsetProjects = "projects"

func projectTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "get_project",
			Description: "Get project details: path, default branch, visibility, activity and counts",
			Toolset:     toolsetProjects,
			Options:     options(withProjectID()),
			Handler:     getProject,
		},
		{
			Name:        "list_project_members",
			Description: "List members of a project, including inherited members",
			Toolset:     toolsetProjects,
			Options: options(
				withProjectID(),
				mcp.WithString("search", mcp.Description("Filter members by name or username")),
				withPagination(),
			),
			Handler: listProjectMembers,
		},
		{
			Name:        "list_project_events",
			Description: "List recent activity events of a project",
			Toolset:     toolsetProjects,
			Options: options(
				withProjectID(),
				mcp.WithString("action", mcp.Description("Only events of this action type"),
					mcp.Enum("created", "updated", "closed", "reopened", "pushed", "commented", "merged", "joined", "left", "destroyed", "expired", "approved")),
				mcp.WithString("target_type", mcp.Description("Only events for this target type"),
					mcp.Enum("issue", "milestone", "merge_request", "note", "project", "snippet", "user")),
				mcp.WithString("after", mcp.Description("Only events after this date (YYYY-MM-DD)")),
				mcp.WithString("before", mcp.Description("Only events before this date (YYYY-MM-DD)")),
				withPagination(),
			),
			Handler: listProjectEvents,
		},
	}
}

func getProject(ctx context.Context, inv *Invocation) (interface{}, error) {
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return getEntity(ctx, inv, project.Client, project.Path(), nil, transform.NewProject)
}

type listMembersOptions struct {
	ListOptions
	Query string `url:"query,omitempty"`
}

func listProjectMembers(ctx context.Context, inv *Invocation) (interface{}, error) {
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	opt := &listMembersOptions{
		ListOptions: listOptions(inv.Request),
		Query:       optionalString(inv.Request, "search"),
	}
	return listEntities(ctx, inv, project.Client, "user", project.Path("members", "all"), opt, transform.NewUser)
}

type listEventsOptions struct {
	ListOptions
	Action     string `url:"action,omitempty"`
	TargetType string `url:"target_type,omitempty"`
	After      string `url:"after,omitempty"`
	Before     string `url:"before,omitempty"`
}

func listProjectEvents(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	opt := &listEventsOptions{
		ListOptions: listOptions(req),
		Action:      optionalString(req, "action"),
		TargetType:  optionalString(req, "target_type"),
		After:       optionalString(req, "after"),
		Before:      optionalString(req, "before"),
	}

	err := apperrors.NewValidator().
		ValidateDate("after", opt.After).
		ValidateDate("before", opt.Before).
		ToAppError()
	if err != nil {
		return nil, err
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return listEntities(ctx, inv, project.Client, "event", project.Path("events"), opt, transform.NewEvent)
}

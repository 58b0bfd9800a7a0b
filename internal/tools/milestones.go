package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/utils"
)

const (
	toolsetMilestones = "milestones"
	argMilestoneID    = "milestone_id"
)

func milestoneTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "list_milestones",
			Description: "List project milestones",
			Toolset:     toolsetMilestones,
			Options: options(
				withProjectID(),
				mcp.WithString("state", mcp.Description("Filter by state"), mcp.Enum(utils.MilestoneActive, utils.MilestoneClosed)),
				mcp.WithString("search", mcp.Description("Only milestones whose title contains this text")),
				withPagination(),
			),
			Handler: listMilestones,
		},
		{
			Name:        "get_milestone",
			Description: "Get a project milestone",
			Toolset:     toolsetMilestones,
			Options:     options(withProjectID(), withIID(argMilestoneID, "Milestone ID")),
			Handler:     getMilestone,
		},
		{
			Name:        "create_milestone",
			Description: "Create a project milestone",
			Toolset:     toolsetMilestones,
			Mutating:    true,
			Options: options(
				withProjectID(),
				mcp.WithString("title", mcp.Required(), mcp.Description("Milestone title")),
				mcp.WithString("description", mcp.Description("Milestone description")),
				mcp.WithString("start_date", mcp.Description("Start date (YYYY-MM-DD)")),
				mcp.WithString("due_date", mcp.Description("Due date (YYYY-MM-DD)")),
			),
			Handler: createMilestone,
		},
	}
}

type listMilestonesOptions struct {
	ListOptions
	State  string `url:"state,omitempty"`
	Search string `url:"search,omitempty"`
}

func listMilestones(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	state, err := optionalEnum(req, "state", utils.MilestoneActive, utils.MilestoneClosed)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	opt := &listMilestonesOptions{
		ListOptions: listOptions(req),
		State:       state,
		Search:      optionalString(req, "search"),
	}
	return listEntities(ctx, inv, project.Client, "milestone", project.Path("milestones"), opt, transform.NewMilestone)
}

func getMilestone(ctx context.Context, inv *Invocation) (interface{}, error) {
	id, err := requirePositive(inv.Request, argMilestoneID)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return getEntity(ctx, inv, project.Client, project.Path("milestones", id), nil, transform.NewMilestone)
}

type createMilestoneBody struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

func createMilestone(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	body := &createMilestoneBody{
		Title:       optionalString(req, "title"),
		Description: req.GetString("description", ""),
		StartDate:   optionalString(req, "start_date"),
		DueDate:     optionalString(req, "due_date"),
	}

	err := apperrors.NewValidator().
		RequiredField("title", body.Title).
		MaxLength("title", body.Title, 255).
		ValidateDate("start_date", body.StartDate).
		ValidateDate("due_date", body.DueDate).
		ToAppError()
	if err != nil {
		return nil, err
	}
	if body.StartDate != "" && body.DueDate != "" && body.DueDate < body.StartDate {
		return nil, apperrors.NewValidationError("due_date", "must not be before start_date")
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return postEntity(ctx, inv, project.Client, project.Path("milestones"), body, transform.NewMilestone)
}

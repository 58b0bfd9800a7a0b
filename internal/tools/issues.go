package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/utils"
)

const (
	toolsetIssues = "issues"
	argIssueIID   = "issue_iid"
)

var issueStates = []string{utils.StateOpened, utils.StateClosed, utils.StateAll}

func withIssueIID() mcp.ToolOption {
	return withIID(argIssueIID, "Issue IID (the number shown in the UI)")
}

func issueTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "list_issues",
			Description: "List issues of a project",
			Toolset:     toolsetIssues,
			Options: options(
				withProjectID(),
				mcp.WithString("state", mcp.Description("Filter by state (default opened)"), mcp.Enum(issueStates...)),
				mcp.WithString("labels", mcp.Description("Comma separated label names; all must match")),
				mcp.WithString("assignee_username", mcp.Description("Only issues assigned to this user")),
				mcp.WithString("author_username", mcp.Description("Only issues created by this user")),
				mcp.WithString("milestone", mcp.Description("Only issues in this milestone")),
				mcp.WithString("search", mcp.Description("Search title and description")),
				mcp.WithString("order_by", mcp.Description("Sort field"), mcp.Enum(orderByValues...)),
				mcp.WithString("sort", mcp.Description("Sort direction"), mcp.Enum(sortValues...)),
				withPagination(),
			),
			Handler: listIssues,
		},
		{
			Name:        "get_issue",
			Description: "Get an issue with time tracking and related merge request counts",
			Toolset:     toolsetIssues,
			Options:     options(withProjectID(), withIssueIID()),
			Handler:     getIssue,
		},
		{
			Name:        "create_issue",
			Description: "Create an issue",
			Toolset:     toolsetIssues,
			Mutating:    true,
			Options: options(
				withProjectID(),
				mcp.WithString("title", mcp.Required(), mcp.Description("Issue title")),
				mcp.WithString("description", mcp.Description("Issue description (Markdown)")),
				mcp.WithString("labels", mcp.Description("Comma separated label names")),
				mcp.WithNumber("milestone_id", mcp.Description("Milestone ID")),
				mcp.WithBoolean("confidential", mcp.Description("Create a confidential issue")),
				mcp.WithString("due_date", mcp.Description("Due date (YYYY-MM-DD)")),
			),
			Handler: createIssue,
		},
		{
			Name:        "update_issue",
			Description: "Update the title, description, labels, due date or state of an issue",
			Toolset:     toolsetIssues,
			Mutating:    true,
			Options: options(
				withProjectID(),
				withIssueIID(),
				mcp.WithString("title", mcp.Description("New title")),
				mcp.WithString("description", mcp.Description("New description (Markdown)")),
				mcp.WithString("labels", mcp.Description("Comma separated label names, replacing the current ones; empty clears all labels")),
				mcp.WithString("due_date", mcp.Description("Due date (YYYY-MM-DD)")),
				mcp.WithString("state_event", mcp.Description("Close or reopen"), mcp.Enum(utils.StateEventClose, utils.StateEventReopen)),
			),
			Handler: updateIssue,
		},
		{
			Name:        "close_issue",
			Description: "Close an issue",
			Toolset:     toolsetIssues,
			Mutating:    true,
			Options:     options(withProjectID(), withIssueIID()),
			Handler:     closeIssue,
		},
	}
}

type listIssuesOptions struct {
	ListOptions
	State            string `url:"state,omitempty"`
	Labels           string `url:"labels,omitempty"`
	AssigneeUsername string `url:"assignee_username,omitempty"`
	AuthorUsername   string `url:"author_username,omitempty"`
	Milestone        string `url:"milestone,omitempty"`
	Search           string `url:"search,omitempty"`
	OrderBy          string `url:"order_by,omitempty"`
	Sort             string `url:"sort,omitempty"`
}

func listIssues(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	opt := &listIssuesOptions{
		ListOptions:      listOptions(req),
		State:            optionalString(req, "state"),
		Labels:           strings.Join(optionalStrings(req, "labels"), ","),
		AssigneeUsername: optionalString(req, "assignee_username"),
		AuthorUsername:   optionalString(req, "author_username"),
		Milestone:        optionalString(req, "milestone"),
		Search:           optionalString(req, "search"),
		OrderBy:          optionalString(req, "order_by"),
		Sort:             optionalString(req, "sort"),
	}
	if opt.State == "" {
		opt.State = utils.StateOpened
	}

	err := apperrors.NewValidator().
		ValidateEnum("state", opt.State, issueStates).
		ValidateGitLabUsername("assignee_username", opt.AssigneeUsername).
		ValidateGitLabUsername("author_username", opt.AuthorUsername).
		ToAppError()
	if err != nil {
		return nil, err
	}
	if err := validateOrdering(req); err != nil {
		return nil, err
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return listEntities(ctx, inv, project.Client, "issue", project.Path("issues"), opt, transform.NewIssue)
}

func getIssue(ctx context.Context, inv *Invocation) (interface{}, error) {
	iid, err := requirePositive(inv.Request, argIssueIID)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return getEntity(ctx, inv, project.Client, project.Path("issues", iid), nil, transform.NewIssue)
}

type createIssueBody struct {
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Labels       *string `json:"labels,omitempty"`
	MilestoneID  int     `json:"milestone_id,omitempty"`
	Confidential *bool   `json:"confidential,omitempty"`
	DueDate      string  `json:"due_date,omitempty"`
}

func createIssue(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	body := &createIssueBody{
		Title:        optionalString(req, "title"),
		Description:  req.GetString("description", ""),
		Labels:       labelList(optionalStrings(req, "labels")),
		MilestoneID:  req.GetInt("milestone_id", 0),
		Confidential: optionalBool(req, "confidential"),
		DueDate:      optionalString(req, "due_date"),
	}

	err := apperrors.NewValidator().
		RequiredField("title", body.Title).
		MaxLength("title", body.Title, 255).
		ValidateDate("due_date", body.DueDate).
		ToAppError()
	if err != nil {
		return nil, err
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return postEntity(ctx, inv, project.Client, project.Path("issues"), body, transform.NewIssue)
}

type updateIssueBody struct {
	Title       string  `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Labels      *string `json:"labels,omitempty"`
	DueDate     string  `json:"due_date,omitempty"`
	StateEvent  string  `json:"state_event,omitempty"`
}

func updateIssue(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	iid, err := requirePositive(req, argIssueIID)
	if err != nil {
		return nil, err
	}

	body := &updateIssueBody{
		Title:   optionalString(req, "title"),
		Labels:  replacementLabels(req),
		DueDate: optionalString(req, "due_date"),
	}
	if _, ok := req.GetArguments()["description"]; ok {
		description := req.GetString("description", "")
		body.Description = &description
	}
	if body.StateEvent, err = optionalEnum(req, "state_event", utils.StateEventClose, utils.StateEventReopen); err != nil {
		return nil, err
	}
	err = apperrors.NewValidator().
		MaxLength("title", body.Title, 255).
		ValidateDate("due_date", body.DueDate).
		ToAppError()
	if err != nil {
		return nil, err
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return putEntity(ctx, inv, project.Client, project.Path("issues", iid), body, transform.NewIssue)
}

func closeIssue(ctx context.Context, inv *Invocation) (interface{}, error) {
	iid, err := requirePositive(inv.Request, argIssueIID)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	body := &updateIssueBody{StateEvent: utils.StateEventClose}
	return putEntity(ctx, inv, project.Client, project.Path("issues", iid), body, transform.NewIssue)
}

package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
)

const (
	toolsetDiscussions = "discussions"
	argDiscussionID    = "discussion_id"
	maxNoteLength      = 1000000
)

func discussionTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "list_merge_request_discussions",
			Description: "List discussion threads of a merge request with resolution state and diff positions",
			Toolset:     toolsetDiscussions,
			Options:     options(withProjectID(), withMergeRequestIID(), withPagination()),
			Handler:     listMergeRequestDiscussions,
		},
		{
			Name:        "list_issue_discussions",
			Description: "List discussion threads of an issue",
			Toolset:     toolsetDiscussions,
			Options:     options(withProjectID(), withIssueIID(), withPagination()),
			Handler:     listIssueDiscussions,
		},
		{
			Name:        "create_merge_request_note",
			Description: "Add a comment to a merge request, optionally replying to a discussion",
			Toolset:     toolsetDiscussions,
			Mutating:    true,
			Options: options(
				withProjectID(),
				withMergeRequestIID(),
				mcp.WithString("body", mcp.Required(), mcp.Description("Comment text (Markdown)")),
				mcp.WithString(argDiscussionID, mcp.Description("Reply to this discussion instead of starting a new thread")),
			),
			Handler: createMergeRequestNote,
		},
		{
			Name:        "create_issue_note",
			Description: "Add a comment to an issue",
			Toolset:     toolsetDiscussions,
			Mutating:    true,
			Options: options(
				withProjectID(),
				withIssueIID(),
				mcp.WithString("body", mcp.Required(), mcp.Description("Comment text (Markdown)")),
			),
			Handler: createIssueNote,
		},
		{
			Name:        "resolve_discussion",
			Description: "Resolve or unresolve a merge request discussion thread",
			Toolset:     toolsetDiscussions,
			Mutating:    true,
			Options: options(
				withProjectID(),
				withMergeRequestIID(),
				mcp.WithString(argDiscussionID, mcp.Required(), mcp.Description("Discussion ID")),
				mcp.WithBoolean("resolved", mcp.Description("Resolve (default) or unresolve the thread")),
			),
			Handler: resolveDiscussion,
		},
	}
}

func listMergeRequestDiscussions(ctx context.Context, inv *Invocation) (interface{}, error) {
	return listDiscussions(ctx, inv, "merge_requests", argMergeRequestIID)
}

func listIssueDiscussions(ctx context.Context, inv *Invocation) (interface{}, error) {
	return listDiscussions(ctx, inv, "issues", argIssueIID)
}

func listDiscussions(ctx context.Context, inv *Invocation, noteable, iidArg string) (interface{}, error) {
	iid, err := requirePositive(inv.Request, iidArg)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	opt := listOptions(inv.Request)
	return listEntities(ctx, inv, project.Client, "discussion", project.Path(noteable, iid, "discussions"), &opt, transform.NewDiscussion)
}

type noteBody struct {
	Body string `json:"body"`
}

func readNoteBody(req mcp.CallToolRequest) (*noteBody, error) {
	body, err := requireString(req, "body")
	if err != nil {
		return nil, err
	}
	if err := apperrors.NewValidator().MaxLength("body", body, maxNoteLength).ToAppError(); err != nil {
		return nil, err
	}
	return &noteBody{Body: body}, nil
}

func createMergeRequestNote(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	iid, err := requirePositive(req, argMergeRequestIID)
	if err != nil {
		return nil, err
	}
	body, err := readNoteBody(req)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}

	if discussionID := optionalString(req, argDiscussionID); discussionID != "" {
		path := project.Path("merge_requests", iid, "discussions", discussionID, "notes")
		return postEntity(ctx, inv, project.Client, path, body, transform.NewNote)
	}
	return postEntity(ctx, inv, project.Client, project.Path("merge_requests", iid, "notes"), body, transform.NewNote)
}

func createIssueNote(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	iid, err := requirePositive(req, argIssueIID)
	if err != nil {
		return nil, err
	}
	body, err := readNoteBody(req)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return postEntity(ctx, inv, project.Client, project.Path("issues", iid, "notes"), body, transform.NewNote)
}

type resolveBody struct {
	Resolved bool `json:"resolved"`
}

func resolveDiscussion(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	iid, err := requirePositive(req, argMergeRequestIID)
	if err != nil {
		return nil, err
	}
	discussionID, err := requireString(req, argDiscussionID)
	if err != nil {
		return nil, err
	}
	body := &resolveBody{Resolved: req.GetBool("resolved", true)}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	path := project.Path("merge_requests", iid, "discussions", discussionID)
	return putEntity(ctx, inv, project.Client, path, body, transform.NewDiscussion)
}

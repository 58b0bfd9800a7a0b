package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/utils"
)

const (
	toolsetMergeRequests = "merge_requests"
	argMergeRequestIID   = "mr_iid"
	draftPrefix          = "Draft: "
)

var (
	mergeRequestStates = []string{utils.StateOpened, utils.StateClosed, utils.StateMerged, utils.StateLocked, utils.StateAll}
	orderByValues      = []string{"created_at", "updated_at"}
	sortValues         = []string{"asc", "desc"}
)

func withMergeRequestIID() mcp.ToolOption {
	return withIID(argMergeRequestIID, "Merge request IID (the number shown in the UI)")
}

func mergeRequestTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "list_merge_requests",
			Description: "List merge requests of a project with their merge readiness and blockers",
			Toolset:     toolsetMergeRequests,
			Options: options(
				withProjectID(),
				mcp.WithString("state", mcp.Description("Filter by state (default opened)"), mcp.Enum(mergeRequestStates...)),
				mcp.WithString("labels", mcp.Description("Comma separated label names; all must match")),
				mcp.WithString("author_username", mcp.Description("Only merge requests by this author")),
				mcp.WithString("reviewer_username", mcp.Description("Only merge requests with this reviewer")),
				mcp.WithString("target_branch", mcp.Description("Only merge requests into this branch")),
				mcp.WithString("search", mcp.Description("Search title and description")),
				mcp.WithString("order_by", mcp.Description("Sort field"), mcp.Enum(orderByValues...)),
				mcp.WithString("sort", mcp.Description("Sort direction"), mcp.Enum(sortValues...)),
				withPagination(),
			),
			Handler: listMergeRequests,
		},
		{
			Name:        "get_merge_request",
			Description: "Get a merge request with approvals, pipeline status, blockers and a one-line summary",
			Toolset:     toolsetMergeRequests,
			Options:     options(withProjectID(), withMergeRequestIID()),
			Handler:     getMergeRequest,
		},
		{
			Name:        "get_merge_request_changes",
			Description: "Get the files changed by a merge request with per-file line counts and truncated diffs",
			Toolset:     toolsetMergeRequests,
			Options: options(
				withProjectID(),
				withMergeRequestIID(),
				mcp.WithNumber("max_diff_lines", mcp.Description("Maximum diff lines kept per file (default 500)")),
				mcp.WithBoolean("summary_only", mcp.Description("Return file stats without diff text")),
			),
			Handler: getMergeRequestChanges,
		},
		{
			Name:        "get_merge_request_approvals",
			Description: "Get the approval state of a merge request",
			Toolset:     toolsetMergeRequests,
			Options:     options(withProjectID(), withMergeRequestIID()),
			Handler:     getMergeRequestApprovals,
		},
		{
			Name:        "create_merge_request",
			Description: "Create a merge request",
			Toolset:     toolsetMergeRequests,
			Mutating:    true,
			Options: options(
				withProjectID(),
				mcp.WithString("source_branch", mcp.Required(), mcp.Description("Branch with the changes")),
				mcp.WithString("target_branch", mcp.Description("Branch to merge into (default: project default branch)")),
				mcp.WithString("title", mcp.Required(), mcp.Description("Merge request title")),
				mcp.WithString("description", mcp.Description("Merge request description (Markdown)")),
				mcp.WithString("labels", mcp.Description("Comma separated label names")),
				mcp.WithBoolean("draft", mcp.Description("Mark the merge request as draft")),
				mcp.WithBoolean("remove_source_branch", mcp.Description("Delete the source branch after merge")),
			),
			Handler: createMergeRequest,
		},
		{
			Name:        "update_merge_request",
			Description: "Update the title, description, labels, target branch or state of a merge request",
			Toolset:     toolsetMergeRequests,
			Mutating:    true,
			Options: options(
				withProjectID(),
				withMergeRequestIID(),
				mcp.WithString("title", mcp.Description("New title")),
				mcp.WithString("description", mcp.Description("New description (Markdown)")),
				mcp.WithString("labels", mcp.Description("Comma separated label names, replacing the current ones; empty clears all labels")),
				mcp.WithString("target_branch", mcp.Description("New target branch")),
				mcp.WithString("state_event", mcp.Description("Close or reopen"), mcp.Enum(utils.StateEventClose, utils.StateEventReopen)),
			),
			Handler: updateMergeRequest,
		},
		{
			Name:        "merge_merge_request",
			Description: "Merge a merge request",
			Toolset:     toolsetMergeRequests,
			Mutating:    true,
			Options: options(
				withProjectID(),
				withMergeRequestIID(),
				mcp.WithString("merge_commit_message", mcp.Description("Custom merge commit message")),
				mcp.WithBoolean("squash", mcp.Description("Squash commits on merge")),
				mcp.WithBoolean("should_remove_source_branch", mcp.Description("Delete the source branch after merge")),
			),
			Handler: mergeMergeRequest,
		},
		{
			Name:        "approve_merge_request",
			Description: "Approve a merge request as the current user",
			Toolset:     toolsetMergeRequests,
			Mutating:    true,
			Options:     options(withProjectID(), withMergeRequestIID()),
			Handler:     approveMergeRequest,
		},
	}
}

type listMergeRequestsOptions struct {
	ListOptions
	State            string `url:"state,omitempty"`
	Labels           string `url:"labels,omitempty"`
	AuthorUsername   string `url:"author_username,omitempty"`
	ReviewerUsername string `url:"reviewer_username,omitempty"`
	TargetBranch     string `url:"target_branch,omitempty"`
	Search           string `url:"search,omitempty"`
	OrderBy          string `url:"order_by,omitempty"`
	Sort             string `url:"sort,omitempty"`
}

func listMergeRequests(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	opt := &listMergeRequestsOptions{
		ListOptions:      listOptions(req),
		State:            optionalString(req, "state"),
		Labels:           strings.Join(optionalStrings(req, "labels"), ","),
		AuthorUsername:   optionalString(req, "author_username"),
		ReviewerUsername: optionalString(req, "reviewer_username"),
		TargetBranch:     optionalString(req, "target_branch"),
		Search:           optionalString(req, "search"),
		OrderBy:          optionalString(req, "order_by"),
		Sort:             optionalString(req, "sort"),
	}
	if opt.State == "" {
		opt.State = utils.StateOpened
	}

	err := apperrors.NewValidator().
		ValidateEnum("state", opt.State, mergeRequestStates).
		ValidateGitLabUsername("author_username", opt.AuthorUsername).
		ValidateGitLabUsername("reviewer_username", opt.ReviewerUsername).
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
	return listEntities(ctx, inv, project.Client, "merge_request", project.Path("merge_requests"), opt, transform.NewMergeRequest)
}

func validateOrdering(req mcp.CallToolRequest) error {
	if _, err := optionalEnum(req, "order_by", orderByValues...); err != nil {
		return err
	}
	_, err := optionalEnum(req, "sort", sortValues...)
	return err
}

func getMergeRequest(ctx context.Context, inv *Invocation) (interface{}, error) {
	iid, err := requirePositive(inv.Request, argMergeRequestIID)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}

	var raw gitlab.MergeRequest
	if err := project.Client.Get(ctx, project.Path("merge_requests", iid), nil, &raw); err != nil {
		return nil, err
	}

	var approvals gitlab.ApprovalState
	err = project.Client.Get(ctx, project.Path("merge_requests", iid, "approvals"), nil, &approvals)
	switch {
	case err == nil:
		raw.Approvals = &approvals
	case apperrors.HasCode(err, apperrors.ErrNotFound):
		// approvals are unavailable on some editions
		inv.Log.Debug("Merge request approvals unavailable", zap.Int("mr_iid", iid))
	default:
		return nil, err
	}

	return transform.NewMergeRequest(&raw, inv.Now())
}

func getMergeRequestChanges(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	iid, err := requirePositive(req, argMergeRequestIID)
	if err != nil {
		return nil, err
	}
	opts := transform.DiffOptions{
		MaxLines:    req.GetInt("max_diff_lines", transform.DefaultMaxDiffLines),
		SummaryOnly: req.GetBool("summary_only", false),
	}
	if opts.MaxLines < 1 {
		return nil, apperrors.NewValidationError("max_diff_lines", "must be a positive integer")
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}

	var raw gitlab.MergeRequestChanges
	if err := project.Client.Get(ctx, project.Path("merge_requests", iid, "changes"), nil, &raw); err != nil {
		return nil, err
	}
	files := transform.Batch("file_change", raw.Changes, transform.FileChanges(opts), inv.Now(), inv.Log)
	return transform.NewChangesSummary(files), nil
}

func getMergeRequestApprovals(ctx context.Context, inv *Invocation) (interface{}, error) {
	iid, err := requirePositive(inv.Request, argMergeRequestIID)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return getEntity(ctx, inv, project.Client, project.Path("merge_requests", iid, "approvals"), nil, transform.NewApprovalState)
}

type createMergeRequestBody struct {
	SourceBranch       string  `json:"source_branch"`
	TargetBranch       string  `json:"target_branch"`
	Title              string  `json:"title"`
	Description        string  `json:"description,omitempty"`
	Labels             *string `json:"labels,omitempty"`
	RemoveSourceBranch *bool   `json:"remove_source_branch,omitempty"`
}

func createMergeRequest(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	body := &createMergeRequestBody{
		SourceBranch:       optionalString(req, "source_branch"),
		TargetBranch:       optionalString(req, "target_branch"),
		Title:              optionalString(req, "title"),
		Description:        req.GetString("description", ""),
		Labels:             labelList(optionalStrings(req, "labels")),
		RemoveSourceBranch: optionalBool(req, "remove_source_branch"),
	}

	err := apperrors.NewValidator().
		RequiredField("source_branch", body.SourceBranch).
		RequiredField("title", body.Title).
		MaxLength("title", body.Title, 255).
		ValidateGitBranchName("source_branch", body.SourceBranch).
		ValidateGitBranchName("target_branch", body.TargetBranch).
		ToAppError()
	if err != nil {
		return nil, err
	}
	if req.GetBool("draft", false) && !strings.HasPrefix(body.Title, draftPrefix) {
		body.Title = draftPrefix + body.Title
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	if body.TargetBranch == "" {
		body.TargetBranch = project.DefaultBranch
	}
	return postEntity(ctx, inv, project.Client, project.Path("merge_requests"), body, transform.NewMergeRequest)
}

type updateMergeRequestBody struct {
	Title        string  `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Labels       *string `json:"labels,omitempty"`
	TargetBranch string  `json:"target_branch,omitempty"`
	StateEvent   string  `json:"state_event,omitempty"`
}

func updateMergeRequest(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	iid, err := requirePositive(req, argMergeRequestIID)
	if err != nil {
		return nil, err
	}

	body := &updateMergeRequestBody{
		Title:        optionalString(req, "title"),
		Labels:       replacementLabels(req),
		TargetBranch: optionalString(req, "target_branch"),
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
		ValidateGitBranchName("target_branch", body.TargetBranch).
		ToAppError()
	if err != nil {
		return nil, err
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return putEntity(ctx, inv, project.Client, project.Path("merge_requests", iid), body, transform.NewMergeRequest)
}

type mergeBody struct {
	MergeCommitMessage       string `json:"merge_commit_message,omitempty"`
	Squash                   *bool  `json:"squash,omitempty"`
	ShouldRemoveSourceBranch *bool  `json:"should_remove_source_branch,omitempty"`
}

func mergeMergeRequest(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	iid, err := requirePositive(req, argMergeRequestIID)
	if err != nil {
		return nil, err
	}
	body := &mergeBody{
		MergeCommitMessage:       req.GetString("merge_commit_message", ""),
		Squash:                   optionalBool(req, "squash"),
		ShouldRemoveSourceBranch: optionalBool(req, "should_remove_source_branch"),
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return putEntity(ctx, inv, project.Client, project.Path("merge_requests", iid, "merge"), body, transform.NewMergeRequest)
}

func approveMergeRequest(ctx context.Context, inv *Invocation) (interface{}, error) {
	iid, err := requirePositive(inv.Request, argMergeRequestIID)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return postEntity(ctx, inv, project.Client, project.Path("merge_requests", iid, "approve"), nil, transform.NewApprovalState)
}

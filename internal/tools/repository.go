package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
)

const (
	toolsetRepository = "repository"
	argBranch         = "branch"
	argSHA            = "sha"
)

func repositoryTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "list_commits",
			Description: "List commits of a branch or tag, newest first",
			Toolset:     toolsetRepository,
			Options: options(
				withProjectID(),
				mcp.WithString("ref_name", mcp.Description("Branch, tag or SHA (default: project default branch)")),
				mcp.WithString("path", mcp.Description("Only commits touching this file path")),
				mcp.WithString("since", mcp.Description("Only commits after this date (YYYY-MM-DD)")),
				mcp.WithString("until", mcp.Description("Only commits before this date (YYYY-MM-DD)")),
				mcp.WithBoolean("with_stats", mcp.Description("Include line counts per commit")),
				withPagination(),
			),
			Handler: listCommits,
		},
		{
			Name:        "get_commit",
			Description: "Get a commit with line counts and the number of files changed",
			Toolset:     toolsetRepository,
			Options: options(
				withProjectID(),
				mcp.WithString(argSHA, mcp.Required(), mcp.Description("Commit SHA, branch or tag")),
			),
			Handler: getCommit,
		},
		{
			Name:        "list_branches",
			Description: "List repository branches with their head commit and protection state",
			Toolset:     toolsetRepository,
			Options: options(
				withProjectID(),
				mcp.WithString("search", mcp.Description("Only branches whose name contains this text")),
				withPagination(),
			),
			Handler: listBranches,
		},
		{
			Name:        "create_branch",
			Description: "Create a branch",
			Toolset:     toolsetRepository,
			Mutating:    true,
			Options: options(
				withProjectID(),
				mcp.WithString(argBranch, mcp.Required(), mcp.Description("Name of the new branch")),
				mcp.WithString("ref", mcp.Description("Branch, tag or SHA to start from (default: project default branch)")),
			),
			Handler: createBranch,
		},
		{
			Name:        "delete_branch",
			Description: "Delete a branch. The default branch cannot be deleted.",
			Toolset:     toolsetRepository,
			Mutating:    true,
			Options: options(
				withProjectID(),
				mcp.WithString(argBranch, mcp.Required(), mcp.Description("Branch to delete")),
			),
			Handler: deleteBranch,
		},
	}
}

type listCommitsOptions struct {
	ListOptions
	RefName   string `url:"ref_name,omitempty"`
	Path      string `url:"path,omitempty"`
	Since     string `url:"since,omitempty"`
	Until     string `url:"until,omitempty"`
	WithStats bool   `url:"with_stats,omitempty"`
}

func listCommits(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	opt := &listCommitsOptions{
		ListOptions: listOptions(req),
		RefName:     optionalString(req, "ref_name"),
		Path:        optionalString(req, "path"),
		Since:       optionalString(req, "since"),
		Until:       optionalString(req, "until"),
		WithStats:   req.GetBool("with_stats", false),
	}
	err := apperrors.NewValidator().
		ValidateDate("since", opt.Since).
		ValidateDate("until", opt.Until).
		ToAppError()
	if err != nil {
		return nil, err
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return listEntities(ctx, inv, project.Client, "commit", project.Path("repository", "commits"), opt, transform.NewCommit)
}

type commitOptions struct {
	Stats bool `url:"stats"`
}

func getCommit(ctx context.Context, inv *Invocation) (interface{}, error) {
	sha, err := requireString(inv.Request, argSHA)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}

	var raw gitlab.Commit
	if err := project.Client.Get(ctx, project.Path("repository", "commits", sha), &commitOptions{Stats: true}, &raw); err != nil {
		return nil, err
	}

	var diffs []gitlab.FileChange
	page, err := project.Client.List(ctx, project.Path("repository", "commits", sha, "diff"), &ListOptions{PerPage: 100}, &diffs)
	if err != nil {
		return nil, err
	}
	raw.FilesChanged = len(diffs)
	if page != nil && page.TotalItems > raw.FilesChanged {
		raw.FilesChanged = page.TotalItems
	}

	return transform.NewCommit(&raw, inv.Now())
}

type listBranchesOptions struct {
	ListOptions
	Search string `url:"search,omitempty"`
}

func listBranches(ctx context.Context, inv *Invocation) (interface{}, error) {
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	opt := &listBranchesOptions{
		ListOptions: listOptions(inv.Request),
		Search:      optionalString(inv.Request, "search"),
	}
	return listEntities(ctx, inv, project.Client, "branch", project.Path("repository", "branches"), opt, transform.NewBranch)
}

type createBranchBody struct {
	Branch string `json:"branch"`
	Ref    string `json:"ref"`
}

func createBranch(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	branch, err := requireString(req, argBranch)
	if err != nil {
		return nil, err
	}
	if err := apperrors.NewValidator().ValidateGitBranchName(argBranch, branch).ToAppError(); err != nil {
		return nil, err
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	body := &createBranchBody{Branch: branch, Ref: optionalString(req, "ref")}
	if body.Ref == "" {
		body.Ref = project.DefaultBranch
	}
	if body.Ref == "" {
		return nil, apperrors.NewValidationError("ref", "is required when the project has no default branch")
	}
	return postEntity(ctx, inv, project.Client, project.Path("repository", "branches"), body, transform.NewBranch)
}

func deleteBranch(ctx context.Context, inv *Invocation) (interface{}, error) {
	branch, err := requireString(inv.Request, argBranch)
	if err != nil {
		return nil, err
	}
	if err := apperrors.NewValidator().ValidateGitBranchName(argBranch, branch).ToAppError(); err != nil {
		return nil, err
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	if branch == project.DefaultBranch {
		return nil, apperrors.NewValidationError(argBranch, "cannot delete the default branch")
	}
	if err := project.Client.Delete(ctx, project.Path("repository", "branches", branch), nil); err != nil {
		return nil, err
	}
	return &DeleteResult{Deleted: true, Kind: "branch", Name: branch}, nil
}

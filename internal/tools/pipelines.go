package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
)

const (
	toolsetPipelines = "pipelines"
	argPipelineID    = "pipeline_id"
)

var (
	pipelineStatuses = []string{
		"created", "waiting_for_resource", "preparing", "pending", "running",
		"success", "failed", "canceled", "skipped", "manual", "scheduled",
	}
	jobScopes = []string{
		"created", "pending", "running", "failed", "success", "canceled", "skipped", "manual",
	}
)

func withPipelineID() mcp.ToolOption {
	return withIID(argPipelineID, "Pipeline ID")
}

func pipelineTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "list_pipelines",
			Description: "List CI pipelines of a project, newest first",
			Toolset:     toolsetPipelines,
			Options: options(
				withProjectID(),
				mcp.WithString("status", mcp.Description("Filter by status"), mcp.Enum(pipelineStatuses...)),
				mcp.WithString("ref", mcp.Description("Filter by branch or tag")),
				mcp.WithString("sha", mcp.Description("Filter by commit SHA")),
				mcp.WithString("username", mcp.Description("Filter by the user who triggered the pipeline")),
				withPagination(),
			),
			Handler: listPipelines,
		},
		{
			Name:        "get_pipeline",
			Description: "Get a CI pipeline",
			Toolset:     toolsetPipelines,
			Options:     options(withProjectID(), withPipelineID()),
			Handler:     getPipeline,
		},
		{
			Name:        "list_pipeline_jobs",
			Description: "List the jobs of a pipeline with their stage, status, duration and failure reason",
			Toolset:     toolsetPipelines,
			Options: options(
				withProjectID(),
				withPipelineID(),
				mcp.WithString("scope", mcp.Description("Comma separated job statuses to include")),
				withPagination(),
			),
			Handler: listPipelineJobs,
		},
		{
			Name:        "retry_pipeline",
			Description: "Retry the failed jobs of a pipeline",
			Toolset:     toolsetPipelines,
			Mutating:    true,
			Options:     options(withProjectID(), withPipelineID()),
			Handler:     retryPipeline,
		},
		{
			Name:        "cancel_pipeline",
			Description: "Cancel the running jobs of a pipeline",
			Toolset:     toolsetPipelines,
			Mutating:    true,
			Options:     options(withProjectID(), withPipelineID()),
			Handler:     cancelPipeline,
		},
	}
}

type listPipelinesOptions struct {
	ListOptions
	Status   string `url:"status,omitempty"`
	Ref      string `url:"ref,omitempty"`
	SHA      string `url:"sha,omitempty"`
	Username string `url:"username,omitempty"`
	OrderBy  string `url:"order_by,omitempty"`
	Sort     string `url:"sort,omitempty"`
}

func listPipelines(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	opt := &listPipelinesOptions{
		ListOptions: listOptions(req),
		Ref:         optionalString(req, "ref"),
		SHA:         optionalString(req, "sha"),
		Username:    optionalString(req, "username"),
		OrderBy:     "id",
		Sort:        "desc",
	}

	var err error
	if opt.Status, err = optionalEnum(req, "status", pipelineStatuses...); err != nil {
		return nil, err
	}
	if err := apperrors.NewValidator().ValidateGitLabUsername("username", opt.Username).ToAppError(); err != nil {
		return nil, err
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return listEntities(ctx, inv, project.Client, "pipeline", project.Path("pipelines"), opt, transform.NewPipeline)
}

func getPipeline(ctx context.Context, inv *Invocation) (interface{}, error) {
	id, err := requirePositive(inv.Request, argPipelineID)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return getEntity(ctx, inv, project.Client, project.Path("pipelines", id), nil, transform.NewPipeline)
}

type listJobsOptions struct {
	ListOptions
	Scope []string `url:"scope,omitempty,brackets"`
}

func listPipelineJobs(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	id, err := requirePositive(req, argPipelineID)
	if err != nil {
		return nil, err
	}
	opt := &listJobsOptions{
		ListOptions: listOptions(req),
		Scope:       optionalStrings(req, "scope"),
	}
	v := apperrors.NewValidator()
	for _, scope := range opt.Scope {
		v.ValidateEnum("scope", scope, jobScopes)
	}
	if err := v.ToAppError(); err != nil {
		return nil, err
	}

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return listEntities(ctx, inv, project.Client, "job", project.Path("pipelines", id, "jobs"), opt, transform.NewJob)
}

func retryPipeline(ctx context.Context, inv *Invocation) (interface{}, error) {
	return pipelineAction(ctx, inv, "retry")
}

func cancelPipeline(ctx context.Context, inv *Invocation) (interface{}, error) {
	return pipelineAction(ctx, inv, "cancel")
}

func pipelineAction(ctx context.Context, inv *Invocation, action string) (interface{}, error) {
	id, err := requirePositive(inv.Request, argPipelineID)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return postEntity(ctx, inv, project.Client, project.Path("pipelines", id, action), nil, transform.NewPipeline)
}

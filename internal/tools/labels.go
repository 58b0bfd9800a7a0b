package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
)

const (
	toolsetLabels = "labels"
	argLabelName  = "name"
)

func labelTools() []*ToolInfo {
	return []*ToolInfo{
		{
			Name:        "list_labels",
			Description: "List project labels with open issue and merge request counts",
			Toolset:     toolsetLabels,
			Options: options(
				withProjectID(),
				mcp.WithString("search", mcp.Description("Only labels whose name contains this text")),
				withPagination(),
			),
			Handler: listLabels,
		},
		{
			Name:        "create_label",
			Description: "Create a project label",
			Toolset:     toolsetLabels,
			Mutating:    true,
			Options: options(
				withProjectID(),
				mcp.WithString(argLabelName, mcp.Required(), mcp.Description("Label name")),
				mcp.WithString("color", mcp.Required(), mcp.Description("Hex color, e.g. '#FF0000' or 'F00'")),
				mcp.WithString("description", mcp.Description("Label description")),
				mcp.WithNumber("priority", mcp.Description("Label priority; lower sorts first")),
			),
			Handler: createLabel,
		},
		{
			Name:        "delete_label",
			Description: "Delete a project label",
			Toolset:     toolsetLabels,
			Mutating:    true,
			Options: options(
				withProjectID(),
				mcp.WithString(argLabelName, mcp.Required(), mcp.Description("Label name")),
			),
			Handler: deleteLabel,
		},
	}
}

type listLabelsOptions struct {
	ListOptions
	WithCounts bool   `url:"with_counts"`
	Search     string `url:"search,omitempty"`
}

func listLabels(ctx context.Context, inv *Invocation) (interface{}, error) {
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	opt := &listLabelsOptions{
		ListOptions: listOptions(inv.Request),
		WithCounts:  true,
		Search:      optionalString(inv.Request, "search"),
	}
	return listEntities(ctx, inv, project.Client, "label", project.Path("labels"), opt, transform.NewLabel)
}

type createLabelBody struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
	Priority    *int   `json:"priority,omitempty"`
}

func createLabel(ctx context.Context, inv *Invocation) (interface{}, error) {
	req := inv.Request
	body := &createLabelBody{
		Name:        optionalString(req, argLabelName),
		Color:       optionalString(req, "color"),
		Description: optionalString(req, "description"),
	}
	if _, ok := req.GetArguments()["priority"]; ok {
		priority := req.GetInt("priority", 0)
		body.Priority = &priority
	}

	err := apperrors.NewValidator().
		RequiredField(argLabelName, body.Name).
		MaxLength(argLabelName, body.Name, 255).
		RequiredField("color", body.Color).
		ValidateColor("color", body.Color).
		ToAppError()
	if err != nil {
		return nil, err
	}
	body.Color = apperrors.NormalizeColor(body.Color)

	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	return postEntity(ctx, inv, project.Client, project.Path("labels"), body, transform.NewLabel)
}

func deleteLabel(ctx context.Context, inv *Invocation) (interface{}, error) {
	name, err := requireString(inv.Request, argLabelName)
	if err != nil {
		return nil, err
	}
	project, err := inv.Project(ctx)
	if err != nil {
		return nil, err
	}
	if err := project.Client.Delete(ctx, project.Path("labels", name), nil); err != nil {
		return nil, err
	}
	return &DeleteResult{Deleted: true, Kind: "label", Name: name}, nil
}

package tools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
)

const (
	argProjectID = "project_id"
	argPage      = "page"
	argPerPage   = "per_page"
)

// ListOptions is embedded in list query options
type ListOptions struct {
	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"`
}

// Shared argument schemas

func withProjectID() mcp.ToolOption {
	return mcp.WithString(argProjectID,
		mcp.Description("Project ID or URL-encoded path (e.g. 'group/project'). Defaults to GITLAB_PROJECT_ID."),
	)
}

func withPagination() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber(argPage, mcp.Description("Page number, starting at 1")),
		mcp.WithNumber(argPerPage, mcp.Description("Results per page (1-100, default 20)")),
	}
}

func withIID(name, what string) mcp.ToolOption {
	return mcp.WithNumber(name, mcp.Required(), mcp.Description(what))
}

func options(groups ...interface{}) []mcp.ToolOption {
	var result []mcp.ToolOption
	for _, g := range groups {
		switch v := g.(type) {
		case mcp.ToolOption:
			result = append(result, v)
		case []mcp.ToolOption:
			result = append(result, v...)
		}
	}
	return result
}

// Argument readers

func listOptions(req mcp.CallToolRequest) ListOptions {
	page := req.GetInt(argPage, 1)
	if page < 1 {
		page = 1
	}
	return ListOptions{
		Page:    page,
		PerPage: apperrors.ClampPerPage(req.GetInt(argPerPage, 0)),
	}
}

func requireString(req mcp.CallToolRequest, name string) (string, error) {
	value := strings.TrimSpace(req.GetString(name, ""))
	if value == "" {
		return "", apperrors.NewValidationError(name, "is required")
	}
	return value, nil
}

func requirePositive(req mcp.CallToolRequest, name string) (int, error) {
	if _, ok := req.GetArguments()[name]; !ok {
		return 0, apperrors.NewValidationError(name, "is required")
	}
	value := req.GetInt(name, 0)
	if value <= 0 {
		return 0, apperrors.NewValidationError(name, "must be a positive integer")
	}
	return value, nil
}

func optionalString(req mcp.CallToolRequest, name string) string {
	return strings.TrimSpace(req.GetString(name, ""))
}

func optionalEnum(req mcp.CallToolRequest, name string, allowed ...string) (string, error) {
	value := optionalString(req, name)
	if value == "" {
		return "", nil
	}
	return value, apperrors.NewValidator().ValidateEnum(name, value, allowed).ToAppError()
}

// optionalBool returns nil when the argument is absent
func optionalBool(req mcp.CallToolRequest, name string) *bool {
	if _, ok := req.GetArguments()[name]; !ok {
		return nil
	}
	value := req.GetBool(name, false)
	return &value
}

// optionalStrings accepts either an array or a comma separated string
func optionalStrings(req mcp.CallToolRequest, name string) []string {
	if raw, ok := req.GetArguments()[name].(string); ok {
		var values []string
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		return values
	}
	return req.GetStringSlice(name, nil)
}

// labelList renders labels the way the API expects them in request bodies
func labelList(values []string) *string {
	if values == nil {
		return nil
	}
	joined := strings.Join(values, ",")
	return &joined
}

// replacementLabels returns nil when the argument is absent. A present but
// empty argument yields an empty string, which clears every label.
func replacementLabels(req mcp.CallToolRequest) *string {
	if raw, ok := req.GetArguments()["labels"]; !ok || raw == nil {
		return nil
	}
	joined := strings.Join(optionalStrings(req, "labels"), ",")
	return &joined
}

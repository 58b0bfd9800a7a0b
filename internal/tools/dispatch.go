package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/app"
	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/logging"
)

// Invocation is a single tool call
type Invocation struct {
	ID      string
	Tool    *ToolInfo
	App     *app.App
	Request mcp.CallToolRequest
	Log     *logging.Logger
}

// Project resolves the project_id argument, falling back to the default project
func (inv *Invocation) Project(ctx context.Context) (*gitlab.Project, error) {
	return inv.App.Project(ctx, inv.Request.GetString(argProjectID, ""))
}

// Now returns the reference time for relative timestamps
func (inv *Invocation) Now() time.Time {
	return inv.App.Now()
}

// Dispatch wraps a tool handler with the read-only guard, invocation logging
// and result encoding. Failures become MCP error results carrying the error
// code; they are never returned as protocol errors.
func Dispatch(a *app.App, info *ToolInfo) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inv := &Invocation{
			ID:      uuid.NewString(),
			Tool:    info,
			App:     a,
			Request: request,
		}
		inv.Log = a.Logger().With(zap.String("tool", info.Name), zap.String("invocation_id", inv.ID))
		start := time.Now()

		if info.Mutating {
			if err := guardWritable(a, info); err != nil {
				a.Logger().ToolWarn(info.Name, inv.ID, "Rejected mutating tool", zap.Error(err))
				return errorResult(err), nil
			}
		}

		a.Logger().ToolInfo(info.Name, inv.ID, "Tool invoked")

		result, err := info.Handler(ctx, inv)
		if err != nil {
			a.Logger().ToolError(info.Name, inv.ID, "Tool failed", err,
				zap.String("code", string(apperrors.CodeOf(err))),
				zap.Duration("duration", time.Since(start)),
			)
			return errorResult(err), nil
		}

		a.Logger().ToolInfo(info.Name, inv.ID, "Tool completed", zap.Duration("duration", time.Since(start)))
		return newToolResultJSON(result)
	}
}

// guardWritable rejects mutating tools in read-only mode before any request,
// including project resolution, is made
func guardWritable(a *app.App, info *ToolInfo) error {
	cfg, err := a.Config()
	if err != nil {
		return err
	}
	if cfg.GitLab.ReadOnly {
		return apperrors.NewReadOnlyModeError(info.Name)
	}
	return nil
}

// errorResult renders err as an MCP error result, e.g.
// "PROJECT_NOT_FOUND: Project 'x' not found"
func errorResult(err error) *mcp.CallToolResult {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", apperrors.ErrInternal, err.Error()))
	}

	text := fmt.Sprintf("%s: %s", appErr.Code, appErr.Message)
	if appErr.Details != "" {
		text += " (" + appErr.Details + ")"
	}
	if appErr.Attempts > 1 {
		text += fmt.Sprintf(" after %d attempts", appErr.Attempts)
	}
	return mcp.NewToolResultError(text)
}

// newToolResultJSON encodes v as the JSON text of a tool result
func newToolResultJSON(v interface{}) (*mcp.CallToolResult, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errorResult(apperrors.NewErrorWithCause(apperrors.ErrInternal, "Cannot encode tool result", err)), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

// Client returns the shared client for calls that are not project scoped
func (inv *Invocation) Client() (gitlab.API, error) {
	client, err := inv.App.Client()
	if err != nil {
		return nil, err
	}
	return client, nil
}

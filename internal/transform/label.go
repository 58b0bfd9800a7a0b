package transform

import (
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const (
	kindLabel = "label"

	// DefaultLabelTextColor is used when the upstream omits text_color
	DefaultLabelTextColor = "#FFFFFF"
)

// Label is the reduced project label returned to agents
type Label struct {
	ID                int    `json:"id,omitempty"`
	Name              string `json:"name"`
	Color             string `json:"color,omitempty"`
	TextColor         string `json:"text_color"`
	Description       string `json:"description,omitempty"`
	OpenIssues        int    `json:"open_issues,omitempty"`
	OpenMergeRequests int    `json:"open_merge_requests,omitempty"`
	Priority          *int   `json:"priority,omitempty"`
}

// NewLabel reduces a raw label
func NewLabel(raw *gitlab.Label, _ time.Time) (*Label, error) {
	if raw.Name == "" {
		return nil, apperrors.NewTransformError(kindLabel, "name")
	}

	label := &Label{
		ID:                raw.ID,
		Name:              raw.Name,
		Color:             raw.Color,
		TextColor:         raw.TextColor,
		Description:       trimmed(raw.Description),
		OpenIssues:        raw.OpenIssuesCount,
		OpenMergeRequests: raw.OpenMergeRequestsCount,
		Priority:          raw.Priority,
	}
	if label.TextColor == "" {
		label.TextColor = DefaultLabelTextColor
	}
	return label, nil
}

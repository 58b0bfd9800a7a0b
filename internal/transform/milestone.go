package transform

import (
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const kindMilestone = "milestone"

// Milestone is the reduced milestone returned to agents
type Milestone struct {
	ID          int    `json:"id"`
	IID         int    `json:"iid,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	State       string `json:"state,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	Expired     bool   `json:"expired,omitempty"`
	URL         string `json:"url,omitempty"`
	Created     string `json:"created,omitempty"`
	Updated     string `json:"updated,omitempty"`
}

// NewMilestone reduces a raw milestone. Due and start dates stay absolute.
func NewMilestone(raw *gitlab.Milestone, now time.Time) (*Milestone, error) {
	if raw.ID == 0 {
		return nil, apperrors.NewTransformError(kindMilestone, "id")
	}
	if raw.Title == "" {
		return nil, apperrors.NewTransformError(kindMilestone, "title")
	}

	return &Milestone{
		ID:          raw.ID,
		IID:         raw.IID,
		Title:       raw.Title,
		Description: trimmed(raw.Description),
		State:       raw.State,
		DueDate:     raw.DueDate,
		StartDate:   raw.StartDate,
		Expired:     raw.Expired,
		URL:         raw.WebURL,
		Created:     relative(raw.CreatedAt, now),
		Updated:     relative(raw.UpdatedAt, now),
	}, nil
}

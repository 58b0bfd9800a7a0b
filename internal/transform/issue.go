package transform

import (
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const kindIssue = "issue"

// Issue is the reduced issue returned to agents
type Issue struct {
	IID                int      `json:"iid"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	State              string   `json:"state"`
	Author             string   `json:"author"`
	Assignees          []string `json:"assignees,omitempty"`
	Labels             []string `json:"labels,omitempty"`
	Milestone          string   `json:"milestone,omitempty"`
	URL                string   `json:"url,omitempty"`
	Created            string   `json:"created,omitempty"`
	Updated            string   `json:"updated,omitempty"`
	Closed             string   `json:"closed,omitempty"`
	Confidential       bool     `json:"confidential,omitempty"`
	Weight             *int     `json:"weight,omitempty"`
	DueDate            string   `json:"due_date,omitempty"`
	TimeEstimate       string   `json:"time_estimate,omitempty"`
	TimeSpent          string   `json:"time_spent,omitempty"`
	UserNotesCount     int      `json:"user_notes_count,omitempty"`
	MergeRequestsCount int      `json:"merge_requests_count,omitempty"`
}

// NewIssue reduces a raw issue
func NewIssue(raw *gitlab.Issue, now time.Time) (*Issue, error) {
	switch {
	case raw.IID == 0:
		return nil, apperrors.NewTransformError(kindIssue, "iid")
	case raw.Title == "":
		return nil, apperrors.NewTransformError(kindIssue, "title")
	case raw.State == "":
		return nil, apperrors.NewTransformError(kindIssue, "state")
	case username(raw.Author) == "":
		return nil, apperrors.NewTransformError(kindIssue, "author")
	}

	issue := &Issue{
		IID:                raw.IID,
		Title:              raw.Title,
		Description:        trimmed(raw.Description),
		State:              raw.State,
		Author:             raw.Author.Username,
		Assignees:          usernames(raw.Assignees),
		Labels:             nonEmpty(raw.Labels),
		Milestone:          milestoneTitle(raw.Milestone),
		URL:                raw.WebURL,
		Created:            relative(raw.CreatedAt, now),
		Updated:            relative(raw.UpdatedAt, now),
		Closed:             relative(raw.ClosedAt, now),
		Confidential:       raw.Confidential,
		Weight:             raw.Weight,
		DueDate:            raw.DueDate,
		UserNotesCount:     raw.UserNotesCount,
		MergeRequestsCount: raw.MergeRequestsCount,
	}
	if ts := raw.TimeStats; ts != nil {
		issue.TimeEstimate = ts.HumanTimeEstimate
		issue.TimeSpent = ts.HumanTotalTimeSpent
	}
	return issue, nil
}

package transform

import (
	"fmt"
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/utils"
)

const kindMergeRequest = "merge_request"

// MergeRequest is the reduced merge request returned to agents
type MergeRequest struct {
	IID               int      `json:"iid"`
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	State             string   `json:"state"`
	Draft             bool     `json:"draft,omitempty"`
	Author            string   `json:"author"`
	Assignees         []string `json:"assignees,omitempty"`
	Reviewers         []string `json:"reviewers,omitempty"`
	Labels            []string `json:"labels,omitempty"`
	Milestone         string   `json:"milestone,omitempty"`
	SourceBranch      string   `json:"source_branch,omitempty"`
	TargetBranch      string   `json:"target_branch,omitempty"`
	URL               string   `json:"url,omitempty"`
	Created           string   `json:"created,omitempty"`
	Updated           string   `json:"updated,omitempty"`
	Merged            string   `json:"merged,omitempty"`
	Closed            string   `json:"closed,omitempty"`
	PipelineStatus    string   `json:"pipeline_status,omitempty"`
	ApprovalsRequired int      `json:"approvals_required,omitempty"`
	ApprovalsLeft     int      `json:"approvals_left,omitempty"`
	UserNotesCount    int      `json:"user_notes_count,omitempty"`
	Blockers          []string `json:"blockers"`
	ReadyToMerge      bool     `json:"ready_to_merge"`
	Summary           string   `json:"summary"`
}

// NewMergeRequest reduces a raw merge request. Approval counts are included
// when the raw payload carries an approval state.
func NewMergeRequest(raw *gitlab.MergeRequest, now time.Time) (*MergeRequest, error) {
	switch {
	case raw.IID == 0:
		return nil, apperrors.NewTransformError(kindMergeRequest, "iid")
	case raw.Title == "":
		return nil, apperrors.NewTransformError(kindMergeRequest, "title")
	case raw.State == "":
		return nil, apperrors.NewTransformError(kindMergeRequest, "state")
	case username(raw.Author) == "":
		return nil, apperrors.NewTransformError(kindMergeRequest, "author")
	}

	mr := &MergeRequest{
		IID:            raw.IID,
		Title:          raw.Title,
		Description:    trimmed(raw.Description),
		State:          raw.State,
		Draft:          raw.Draft || raw.WorkInProgress,
		Author:         raw.Author.Username,
		Assignees:      usernames(raw.Assignees),
		Reviewers:      usernames(raw.Reviewers),
		Labels:         nonEmpty(raw.Labels),
		Milestone:      milestoneTitle(raw.Milestone),
		SourceBranch:   raw.SourceBranch,
		TargetBranch:   raw.TargetBranch,
		URL:            raw.WebURL,
		Created:        relative(raw.CreatedAt, now),
		Updated:        relative(raw.UpdatedAt, now),
		Merged:         relative(raw.MergedAt, now),
		Closed:         relative(raw.ClosedAt, now),
		PipelineStatus: pipelineStatus(raw.HeadPipeline, raw.Pipeline),
		UserNotesCount: raw.UserNotesCount,
	}
	if raw.Approvals != nil {
		mr.ApprovalsRequired = raw.Approvals.ApprovalsRequired
		mr.ApprovalsLeft = raw.Approvals.ApprovalsLeft
	}

	mr.Blockers = mergeBlockers(raw, mr)
	mr.ReadyToMerge = mr.State == utils.StateOpened && len(mr.Blockers) == 0
	mr.Summary = mergeSummary(mr)
	return mr, nil
}

// mergeBlockers lists the reasons the merge request cannot be merged now
func mergeBlockers(raw *gitlab.MergeRequest, mr *MergeRequest) []string {
	blockers := []string{}

	switch mr.PipelineStatus {
	case "failed", "running", "pending":
		blockers = append(blockers, "Pipeline "+mr.PipelineStatus)
	}

	if raw.HasConflicts || raw.MergeStatus == "cannot_be_merged" {
		blockers = append(blockers, "Has conflicts")
	}

	switch {
	case mr.Draft || raw.DetailedMergeStatus == "draft":
		blockers = append(blockers, "MR is draft")
	case raw.DetailedMergeStatus == "discussions_not_resolved":
		blockers = append(blockers, "Unresolved discussions")
	case raw.DetailedMergeStatus == "blocked_status":
		blockers = append(blockers, "Blocked by rule")
	}

	switch {
	case mr.ApprovalsLeft == 1:
		blockers = append(blockers, "1 approval needed")
	case mr.ApprovalsLeft > 1:
		blockers = append(blockers, fmt.Sprintf("%d approvals needed", mr.ApprovalsLeft))
	}

	return blockers
}

func mergeSummary(mr *MergeRequest) string {
	ready := "not ready"
	if mr.ReadyToMerge {
		ready = "ready"
	}
	pipeline := mr.PipelineStatus
	if pipeline == "" {
		pipeline = "unknown"
	}
	return fmt.Sprintf("%s MR by %s - %s - %s", mr.State, mr.Author, ready, pipeline)
}

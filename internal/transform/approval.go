package transform

import (
	"time"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

// ApprovalState reports merge request approvals
type ApprovalState struct {
	Approved          bool     `json:"approved"`
	ApprovalsRequired int      `json:"approvals_required"`
	ApprovalsLeft     int      `json:"approvals_left"`
	ApprovedBy        []string `json:"approved_by,omitempty"`
}

// NewApprovalState reduces a raw approval state. Approved means no approvals
// are left, regardless of the upstream flag.
func NewApprovalState(raw *gitlab.ApprovalState, _ time.Time) (*ApprovalState, error) {
	state := &ApprovalState{
		Approved:          raw.ApprovalsLeft == 0,
		ApprovalsRequired: raw.ApprovalsRequired,
		ApprovalsLeft:     raw.ApprovalsLeft,
	}
	for _, a := range raw.ApprovedBy {
		if a.User.Username != "" {
			state.ApprovedBy = append(state.ApprovedBy, a.User.Username)
		}
	}
	return state, nil
}

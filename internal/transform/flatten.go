package transform

import (
	"strings"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const shortSHALength = 8

func username(u *gitlab.BasicUser) string {
	if u == nil {
		return ""
	}
	return u.Username
}

func usernames(users []gitlab.BasicUser) []string {
	if len(users) == 0 {
		return nil
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		if u.Username != "" {
			names = append(names, u.Username)
		}
	}
	return names
}

func milestoneTitle(m *gitlab.MilestoneRef) string {
	if m == nil {
		return ""
	}
	return m.Title
}

func pipelineStatus(refs ...*gitlab.PipelineRef) string {
	for _, p := range refs {
		if p != nil && p.Status != "" {
			return p.Status
		}
	}
	return ""
}

func shortSHA(sha string) string {
	if len(sha) > shortSHALength {
		return sha[:shortSHALength]
	}
	return sha
}

func nonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

package transform

import (
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const kindProject = "project"

// Project is the reduced project returned to agents
type Project struct {
	ID            int    `json:"id"`
	Name          string `json:"name,omitempty"`
	Path          string `json:"path"`
	Description   string `json:"description,omitempty"`
	DefaultBranch string `json:"default_branch,omitempty"`
	Visibility    string `json:"visibility,omitempty"`
	URL           string `json:"url,omitempty"`
	LastActivity  string `json:"last_activity,omitempty"`
	Stars         int    `json:"stars,omitempty"`
	Forks         int    `json:"forks,omitempty"`
	OpenIssues    int    `json:"open_issues,omitempty"`
	Archived      bool   `json:"archived,omitempty"`
}

// NewProject reduces a raw project. Path is the full namespace path.
func NewProject(raw *gitlab.ProjectInfo, now time.Time) (*Project, error) {
	if raw.ID == 0 {
		return nil, apperrors.NewTransformError(kindProject, "id")
	}
	if raw.PathWithNamespace == "" {
		return nil, apperrors.NewTransformError(kindProject, "path_with_namespace")
	}

	return &Project{
		ID:            raw.ID,
		Name:          raw.Name,
		Path:          raw.PathWithNamespace,
		Description:   trimmed(raw.Description),
		DefaultBranch: raw.DefaultBranch,
		Visibility:    raw.Visibility,
		URL:           raw.WebURL,
		LastActivity:  relative(raw.LastActivityAt, now),
		Stars:         raw.StarCount,
		Forks:         raw.ForksCount,
		OpenIssues:    raw.OpenIssuesCount,
		Archived:      raw.Archived,
	}, nil
}

package transform

import (
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const (
	kindCommit = "commit"
	kindBranch = "branch"
)

// Commit is the reduced commit returned to agents
type Commit struct {
	SHA          string `json:"sha"`
	Title        string `json:"title,omitempty"`
	Message      string `json:"message,omitempty"`
	Author       string `json:"author,omitempty"`
	Created      string `json:"created,omitempty"`
	ParentSHA    string `json:"parent_sha,omitempty"`
	FilesChanged int    `json:"files_changed,omitempty"`
	Insertions   *int   `json:"insertions,omitempty"`
	Deletions    *int   `json:"deletions,omitempty"`
	URL          string `json:"url,omitempty"`
}

// NewCommit reduces a raw commit. Line counts are present only when the
// payload carried stats.
func NewCommit(raw *gitlab.Commit, now time.Time) (*Commit, error) {
	if raw.ID == "" {
		return nil, apperrors.NewTransformError(kindCommit, "id")
	}

	commit := &Commit{
		SHA:          shortSHA(raw.ID),
		Title:        raw.Title,
		Author:       raw.AuthorName,
		Created:      relative(raw.CreatedAt, now),
		FilesChanged: raw.FilesChanged,
		URL:          raw.WebURL,
	}
	if msg := trimmed(raw.Message); msg != raw.Title {
		commit.Message = msg
	}
	if len(raw.ParentIDs) > 0 {
		commit.ParentSHA = shortSHA(raw.ParentIDs[0])
	}
	if raw.Stats != nil {
		insertions, deletions := raw.Stats.Additions, raw.Stats.Deletions
		commit.Insertions = &insertions
		commit.Deletions = &deletions
	}
	return commit, nil
}

// Branch is the reduced branch returned to agents
type Branch struct {
	Name         string `json:"name"`
	CommitSHA    string `json:"commit_sha,omitempty"`
	Protected    bool   `json:"protected"`
	Merged       bool   `json:"merged,omitempty"`
	Default      bool   `json:"default,omitempty"`
	LastActivity string `json:"last_activity,omitempty"`
	URL          string `json:"url,omitempty"`
}

// NewBranch reduces a raw branch, flattening its head commit to a short SHA
func NewBranch(raw *gitlab.Branch, now time.Time) (*Branch, error) {
	if raw.Name == "" {
		return nil, apperrors.NewTransformError(kindBranch, "name")
	}

	branch := &Branch{
		Name:      raw.Name,
		Protected: raw.Protected,
		Merged:    raw.Merged,
		Default:   raw.Default,
		URL:       raw.WebURL,
	}
	if c := raw.Commit; c != nil {
		branch.CommitSHA = shortSHA(c.ID)
		branch.LastActivity = relative(c.CommittedDate, now)
		if branch.LastActivity == "" {
			branch.LastActivity = relative(c.CreatedAt, now)
		}
	}
	return branch, nil
}

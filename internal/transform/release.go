package transform

import (
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const (
	kindRelease  = "release"
	kindWikiPage = "wiki_page"
)

// AssetLink is a named link attached to a release
type AssetLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Release is the reduced release returned to agents
type Release struct {
	Tag         string      `json:"tag"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Author      string      `json:"author,omitempty"`
	CommitSHA   string      `json:"commit_sha,omitempty"`
	Created     string      `json:"created,omitempty"`
	Released    string      `json:"released,omitempty"`
	Upcoming    bool        `json:"upcoming,omitempty"`
	URL         string      `json:"url,omitempty"`
	AssetLinks  []AssetLink `json:"asset_links,omitempty"`
}

// NewRelease reduces a raw release
func NewRelease(raw *gitlab.Release, now time.Time) (*Release, error) {
	if raw.TagName == "" {
		return nil, apperrors.NewTransformError(kindRelease, "tag_name")
	}

	release := &Release{
		Tag:         raw.TagName,
		Name:        raw.Name,
		Description: trimmed(raw.Description),
		Author:      username(raw.Author),
		Created:     relative(raw.CreatedAt, now),
		Released:    relative(raw.ReleasedAt, now),
		Upcoming:    raw.UpcomingRelease,
		URL:         raw.Links.Self,
	}
	if raw.Commit != nil {
		release.CommitSHA = shortSHA(raw.Commit.ID)
	}
	for _, link := range raw.Assets.Links {
		release.AssetLinks = append(release.AssetLinks, AssetLink{Name: link.Name, URL: link.URL})
	}
	return release, nil
}

// WikiPage is a reduced wiki page. Content is present only when fetched.
type WikiPage struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Format  string `json:"format,omitempty"`
	Content string `json:"content,omitempty"`
}

// NewWikiPage reduces a raw wiki page
func NewWikiPage(raw *gitlab.WikiPage, _ time.Time) (*WikiPage, error) {
	if raw.Slug == "" {
		return nil, apperrors.NewTransformError(kindWikiPage, "slug")
	}
	if raw.Title == "" {
		return nil, apperrors.NewTransformError(kindWikiPage, "title")
	}

	return &WikiPage{
		Slug:    raw.Slug,
		Title:   raw.Title,
		Format:  raw.Format,
		Content: raw.Content,
	}, nil
}

package transform

import (
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const (
	kindUser      = "user"
	kindEvent     = "event"
	kindNamespace = "namespace"
)

// User is a reduced user
type User struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name,omitempty"`
	State      string `json:"state,omitempty"`
	URL        string `json:"url,omitempty"`
	LastActive string `json:"last_active,omitempty"`
}

// NewUser reduces a raw user
func NewUser(raw *gitlab.User, now time.Time) (*User, error) {
	if raw.ID == 0 {
		return nil, apperrors.NewTransformError(kindUser, "id")
	}
	if raw.Username == "" {
		return nil, apperrors.NewTransformError(kindUser, "username")
	}

	return &User{
		ID:         raw.ID,
		Username:   raw.Username,
		Name:       raw.Name,
		State:      raw.State,
		URL:        raw.WebURL,
		LastActive: relativeDate(raw.LastActivityOn, now),
	}, nil
}

// Event is a reduced activity event
type Event struct {
	ID          int    `json:"id"`
	Action      string `json:"action,omitempty"`
	TargetType  string `json:"target_type,omitempty"`
	TargetTitle string `json:"target_title,omitempty"`
	TargetIID   int    `json:"target_iid,omitempty"`
	Author      string `json:"author,omitempty"`
	Created     string `json:"created,omitempty"`
}

// NewEvent reduces a raw event
func NewEvent(raw *gitlab.Event, now time.Time) (*Event, error) {
	if raw.ID == 0 {
		return nil, apperrors.NewTransformError(kindEvent, "id")
	}

	return &Event{
		ID:          raw.ID,
		Action:      raw.ActionName,
		TargetType:  raw.TargetType,
		TargetTitle: raw.TargetTitle,
		TargetIID:   raw.TargetIID,
		Author:      username(raw.Author),
		Created:     relative(raw.CreatedAt, now),
	}, nil
}

// Namespace is a reduced user or group namespace
type Namespace struct {
	ID       int    `json:"id"`
	Name     string `json:"name,omitempty"`
	Path     string `json:"path,omitempty"`
	FullPath string `json:"full_path"`
	Kind     string `json:"kind,omitempty"`
	URL      string `json:"url,omitempty"`
}

// NewNamespace reduces a raw namespace
func NewNamespace(raw *gitlab.Namespace, _ time.Time) (*Namespace, error) {
	if raw.ID == 0 {
		return nil, apperrors.NewTransformError(kindNamespace, "id")
	}
	if raw.FullPath == "" {
		return nil, apperrors.NewTransformError(kindNamespace, "full_path")
	}

	return &Namespace{
		ID:       raw.ID,
		Name:     raw.Name,
		Path:     raw.Path,
		FullPath: raw.FullPath,
		Kind:     raw.Kind,
		URL:      raw.WebURL,
	}, nil
}

package transform

import (
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const (
	kindNote       = "note"
	kindDiscussion = "discussion"
)

// NotePosition locates a diff comment
type NotePosition struct {
	Path    string `json:"path"`
	OldPath string `json:"old_path,omitempty"`
	NewLine *int   `json:"new_line,omitempty"`
	OldLine *int   `json:"old_line,omitempty"`
}

// Note is a reduced comment
type Note struct {
	ID         int           `json:"id"`
	Body       string        `json:"body"`
	Author     string        `json:"author"`
	Created    string        `json:"created,omitempty"`
	Updated    string        `json:"updated,omitempty"`
	System     bool          `json:"system,omitempty"`
	Resolvable bool          `json:"resolvable,omitempty"`
	Resolved   bool          `json:"resolved,omitempty"`
	Position   *NotePosition `json:"position,omitempty"`
}

// NewNote reduces a raw note
func NewNote(raw *gitlab.Note, now time.Time) (*Note, error) {
	if raw.ID == 0 {
		return nil, apperrors.NewTransformError(kindNote, "id")
	}
	if username(raw.Author) == "" {
		return nil, apperrors.NewTransformError(kindNote, "author")
	}

	note := &Note{
		ID:         raw.ID,
		Body:       raw.Body,
		Author:     raw.Author.Username,
		Created:    relative(raw.CreatedAt, now),
		System:     raw.System,
		Resolvable: raw.Resolvable,
		Resolved:   raw.Resolved,
	}
	if raw.UpdatedAt != nil && raw.CreatedAt != nil && !raw.UpdatedAt.Equal(*raw.CreatedAt) {
		note.Updated = relative(raw.UpdatedAt, now)
	}
	if pos := raw.Position; pos != nil {
		note.Position = &NotePosition{
			Path:    pos.NewPath,
			NewLine: pos.NewLine,
			OldLine: pos.OldLine,
		}
		if pos.OldPath != pos.NewPath {
			note.Position.OldPath = pos.OldPath
		}
	}
	return note, nil
}

// Discussion is a reduced discussion thread
type Discussion struct {
	ID             string  `json:"id"`
	IndividualNote bool    `json:"individual_note,omitempty"`
	Resolvable     bool    `json:"resolvable,omitempty"`
	Resolved       bool    `json:"resolved,omitempty"`
	Notes          []*Note `json:"notes"`
	Omitted        int     `json:"omitted,omitempty"`
	Created        string  `json:"created,omitempty"`
	Updated        string  `json:"updated,omitempty"`
}

// NewDiscussion reduces a raw discussion. A thread is resolved when every
// resolvable note in it is resolved. Notes that fail to transform are omitted.
func NewDiscussion(raw *gitlab.Discussion, now time.Time) (*Discussion, error) {
	if raw.ID == "" {
		return nil, apperrors.NewTransformError(kindDiscussion, "id")
	}

	notes := Batch(kindNote, raw.Notes, NewNote, now, nil)
	d := &Discussion{
		ID:             raw.ID,
		IndividualNote: raw.IndividualNote,
		Notes:          notes.Items,
		Omitted:        notes.Omitted,
	}

	resolved := true
	for _, n := range raw.Notes {
		if n.Resolvable {
			d.Resolvable = true
			resolved = resolved && n.Resolved
		}
	}
	d.Resolved = d.Resolvable && resolved

	if len(raw.Notes) > 0 {
		first, last := raw.Notes[0], raw.Notes[len(raw.Notes)-1]
		d.Created = relative(first.CreatedAt, now)
		if len(raw.Notes) > 1 {
			d.Updated = relative(last.CreatedAt, now)
		}
	}
	return d, nil
}

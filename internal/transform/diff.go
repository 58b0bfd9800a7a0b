package transform

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const (
	kindFileChange = "file_change"

	// DefaultMaxDiffLines bounds the diff text kept per file
	DefaultMaxDiffLines = 500
)

// FileChange is one file of a merge request or commit diff
type FileChange struct {
	Path      string `json:"path"`
	OldPath   string `json:"old_path,omitempty"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Diff      string `json:"diff,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

// ChangesSummary aggregates the files of a diff
type ChangesSummary struct {
	FilesChanged int           `json:"files_changed"`
	Additions    int           `json:"additions"`
	Deletions    int           `json:"deletions"`
	Files        []*FileChange `json:"files"`
	Omitted      int           `json:"omitted,omitempty"`
}

// DiffOptions controls how much diff text is kept
type DiffOptions struct {
	MaxLines    int
	SummaryOnly bool
}

// FileChanges returns a transformer for diff entries using opts
func FileChanges(opts DiffOptions) Func[gitlab.FileChange, FileChange] {
	if opts.MaxLines <= 0 {
		opts.MaxLines = DefaultMaxDiffLines
	}
	return func(raw *gitlab.FileChange, _ time.Time) (*FileChange, error) {
		return NewFileChange(raw, opts)
	}
}

// NewFileChange reduces a raw diff entry, counting changed lines and
// truncating the diff text to opts.MaxLines
func NewFileChange(raw *gitlab.FileChange, opts DiffOptions) (*FileChange, error) {
	if raw.NewPath == "" {
		return nil, apperrors.NewTransformError(kindFileChange, "new_path")
	}

	change := &FileChange{
		Path:   raw.NewPath,
		Status: changeStatus(raw),
	}
	if raw.RenamedFile && raw.OldPath != raw.NewPath {
		change.OldPath = raw.OldPath
	}

	lines := strings.Split(strings.TrimSuffix(raw.Diff, "\n"), "\n")
	change.Additions, change.Deletions = countChangedLines(lines)

	if opts.SummaryOnly || raw.Diff == "" {
		return change, nil
	}

	maxLines := opts.MaxLines
	if maxLines <= 0 {
		maxLines = DefaultMaxDiffLines
	}
	if len(lines) > maxLines {
		change.Diff = strings.Join(lines[:maxLines], "\n") +
			fmt.Sprintf("\n... %d more lines truncated", len(lines)-maxLines)
		change.Truncated = true
	} else {
		change.Diff = raw.Diff
	}
	return change, nil
}

// countChangedLines counts added and removed lines inside hunks. Lines before
// the first "@@" header are file headers; a diff without hunk headers is all
// content.
func countChangedLines(lines []string) (additions, deletions int) {
	inHunk := true
	for _, line := range lines {
		if strings.HasPrefix(line, "@@") {
			inHunk = false
			break
		}
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
	}
	return additions, deletions
}

// NewChangesSummary totals the transformed files of a diff
func NewChangesSummary(files *List[FileChange]) *ChangesSummary {
	summary := &ChangesSummary{
		FilesChanged: len(files.Items),
		Files:        files.Items,
		Omitted:      files.Omitted,
	}
	for _, f := range files.Items {
		summary.Additions += f.Additions
		summary.Deletions += f.Deletions
	}
	return summary
}

func changeStatus(raw *gitlab.FileChange) string {
	switch {
	case raw.NewFile:
		return "added"
	case raw.DeletedFile:
		return "deleted"
	case raw.RenamedFile:
		return "renamed"
	default:
		return "modified"
	}
}

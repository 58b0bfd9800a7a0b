package transform

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(ago time.Duration) *time.Time {
	t := fixedNow.Add(-ago)
	return &t
}

func intPtr(v int) *int {
	return &v
}

// decode parses a raw payload the way the client does
func decode[T any](t *testing.T, payload string) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(payload), &v))
	return &v
}

// keysOf returns the top-level JSON keys of v
func keysOf(t *testing.T, v interface{}) []string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func assertAllowed(t *testing.T, v interface{}, allowed ...string) {
	t.Helper()
	for _, k := range keysOf(t, v) {
		assert.Contains(t, allowed, k, "field %q is not in the allow-list", k)
	}
}

const mergeRequestPayload = `{
	"id": 9001,
	"iid": 12,
	"project_id": 42,
	"title": "Add login page",
	"description": "Implements login.\n",
	"state": "opened",
	"draft": false,
	"author": {"id": 1, "username": "alice", "name": "Alice", "avatar_url": "https://x/a.png"},
	"assignees": [{"id": 2, "username": "bob"}],
	"reviewers": [{"id": 3, "username": "carol"}],
	"labels": ["feature", "ui"],
	"milestone": {"id": 5, "iid": 1, "title": "v1.0", "due_date": "2024-07-01"},
	"source_branch": "feature/login",
	"target_branch": "main",
	"web_url": "https://gitlab.example.com/group/app/-/merge_requests/12",
	"created_at": "2024-06-15T09:00:00Z",
	"updated_at": "2024-06-15T11:30:00Z",
	"merge_status": "can_be_merged",
	"detailed_merge_status": "mergeable",
	"has_conflicts": false,
	"head_pipeline": {"id": 77, "status": "success", "sha": "abc"},
	"user_notes_count": 4,
	"sha": "0123456789abcdef",
	"time_stats": {"time_estimate": 0},
	"references": {"full": "group/app!12"}
}`

func TestNewMergeRequest(t *testing.T) {
	raw := decode[gitlab.MergeRequest](t, mergeRequestPayload)

	mr, err := NewMergeRequest(raw, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, 12, mr.IID)
	assert.Equal(t, "Implements login.", mr.Description)
	assert.Equal(t, "alice", mr.Author)
	assert.Equal(t, []string{"bob"}, mr.Assignees)
	assert.Equal(t, []string{"carol"}, mr.Reviewers)
	assert.Equal(t, "v1.0", mr.Milestone)
	assert.Equal(t, "3 hours ago", mr.Created)
	assert.Equal(t, "30 minutes ago", mr.Updated)
	assert.Empty(t, mr.Merged)
	assert.Equal(t, "success", mr.PipelineStatus)
	assert.Empty(t, mr.Blockers)
	assert.True(t, mr.ReadyToMerge)
	assert.Equal(t, "opened MR by alice - ready - success", mr.Summary)

	assertAllowed(t, mr,
		"iid", "title", "description", "state", "draft", "author", "assignees", "reviewers",
		"labels", "milestone", "source_branch", "target_branch", "url", "created", "updated",
		"merged", "closed", "pipeline_status", "approvals_required", "approvals_left",
		"user_notes_count", "blockers", "ready_to_merge", "summary")
}

func TestNewMergeRequest_Blockers(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(mr *gitlab.MergeRequest)
		expected []string
	}{
		{
			name:     "failed pipeline",
			mutate:   func(mr *gitlab.MergeRequest) { mr.HeadPipeline.Status = "failed" },
			expected: []string{"Pipeline failed"},
		},
		{
			name:     "running pipeline",
			mutate:   func(mr *gitlab.MergeRequest) { mr.HeadPipeline.Status = "running" },
			expected: []string{"Pipeline running"},
		},
		{
			name:     "conflicts",
			mutate:   func(mr *gitlab.MergeRequest) { mr.MergeStatus = "cannot_be_merged" },
			expected: []string{"Has conflicts"},
		},
		{
			name:     "draft",
			mutate:   func(mr *gitlab.MergeRequest) { mr.Draft = true },
			expected: []string{"MR is draft"},
		},
		{
			name:     "unresolved discussions",
			mutate:   func(mr *gitlab.MergeRequest) { mr.DetailedMergeStatus = "discussions_not_resolved" },
			expected: []string{"Unresolved discussions"},
		},
		{
			name:     "blocked by rule",
			mutate:   func(mr *gitlab.MergeRequest) { mr.DetailedMergeStatus = "blocked_status" },
			expected: []string{"Blocked by rule"},
		},
		{
			name: "approvals pending",
			mutate: func(mr *gitlab.MergeRequest) {
				mr.Approvals = &gitlab.ApprovalState{ApprovalsRequired: 2, ApprovalsLeft: 2}
			},
			expected: []string{"2 approvals needed"},
		},
		{
			name: "several blockers",
			mutate: func(mr *gitlab.MergeRequest) {
				mr.HeadPipeline.Status = "pending"
				mr.HasConflicts = true
				mr.Approvals = &gitlab.ApprovalState{ApprovalsRequired: 1, ApprovalsLeft: 1}
			},
			expected: []string{"Pipeline pending", "Has conflicts", "1 approval needed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decode[gitlab.MergeRequest](t, mergeRequestPayload)
			tt.mutate(raw)

			mr, err := NewMergeRequest(raw, fixedNow)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, mr.Blockers)
			assert.False(t, mr.ReadyToMerge)
			assert.Contains(t, mr.Summary, " - not ready - ")
		})
	}
}

func TestNewMergeRequest_MergedIsNeverReady(t *testing.T) {
	raw := decode[gitlab.MergeRequest](t, mergeRequestPayload)
	raw.State = "merged"
	raw.MergedAt = at(48 * time.Hour)
	raw.HeadPipeline = nil

	mr, err := NewMergeRequest(raw, fixedNow)

	require.NoError(t, err)
	assert.False(t, mr.ReadyToMerge)
	assert.Equal(t, "2 days ago", mr.Merged)
	assert.Equal(t, "merged MR by alice - not ready - unknown", mr.Summary)
}

func TestNewMergeRequest_MissingRequiredField(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(mr *gitlab.MergeRequest)
	}{
		{"iid", func(mr *gitlab.MergeRequest) { mr.IID = 0 }},
		{"title", func(mr *gitlab.MergeRequest) { mr.Title = "" }},
		{"state", func(mr *gitlab.MergeRequest) { mr.State = "" }},
		{"author", func(mr *gitlab.MergeRequest) { mr.Author = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			raw := decode[gitlab.MergeRequest](t, mergeRequestPayload)
			tt.mutate(raw)

			_, err := NewMergeRequest(raw, fixedNow)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrTransform, appErr.Code)
			assert.Equal(t, tt.field, appErr.Field)
			assert.Equal(t, "merge_request", appErr.Context["kind"])
		})
	}
}

func TestTransformIsDeterministic(t *testing.T) {
	first, err := NewMergeRequest(decode[gitlab.MergeRequest](t, mergeRequestPayload), fixedNow)
	require.NoError(t, err)
	second, err := NewMergeRequest(decode[gitlab.MergeRequest](t, mergeRequestPayload), fixedNow)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
	assert.Equal(t, string(a), string(b))
}

func TestNewFileChange(t *testing.T) {
	raw := &gitlab.FileChange{
		OldPath:     "old.go",
		NewPath:     "new.go",
		Diff:        "--- a/old.go\n+++ b/new.go\n@@ -1,2 +1,3 @@\n-one\n+uno\n+dos\n same\n",
		RenamedFile: true,
	}

	change, err := NewFileChange(raw, DiffOptions{})

	require.NoError(t, err)
	assert.Equal(t, "new.go", change.Path)
	assert.Equal(t, "old.go", change.OldPath)
	assert.Equal(t, "renamed", change.Status)
	assert.Equal(t, 2, change.Additions)
	assert.Equal(t, 1, change.Deletions)
	assert.Equal(t, raw.Diff, change.Diff)
	assert.False(t, change.Truncated)
	assertAllowed(t, change, "path", "old_path", "status", "additions", "deletions", "diff", "truncated")
}

func TestNewFileChange_ContentLinesLookingLikeHeaders(t *testing.T) {
	raw := &gitlab.FileChange{
		NewPath: "schema.sql",
		Diff:    "@@ -1,3 +1,2 @@\n----\n--- SQL comment\n+++x\n keep\n",
	}

	change, err := NewFileChange(raw, DiffOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, change.Additions)
	assert.Equal(t, 2, change.Deletions)
}

func TestCountChangedLines(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		additions int
		deletions int
	}{
		{"file headers skipped", []string{"--- a/x", "+++ b/x", "@@ -1 +1 @@", "-old", "+new"}, 1, 1},
		{"no hunk header", []string{"+a", "+b", "-c"}, 2, 1},
		{"several hunks", []string{"@@ -1 +1 @@", "+a", "@@ -9 +9 @@", "---", " ctx"}, 1, 1},
		{"empty", []string{""}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			additions, deletions := countChangedLines(tt.lines)
			assert.Equal(t, tt.additions, additions)
			assert.Equal(t, tt.deletions, deletions)
		})
	}
}

func TestNewFileChange_Status(t *testing.T) {
	assert.Equal(t, "added", changeStatus(&gitlab.FileChange{NewFile: true}))
	assert.Equal(t, "deleted", changeStatus(&gitlab.FileChange{DeletedFile: true}))
	assert.Equal(t, "renamed", changeStatus(&gitlab.FileChange{RenamedFile: true}))
	assert.Equal(t, "modified", changeStatus(&gitlab.FileChange{}))
}

func TestNewFileChange_Truncation(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "+line"
	}
	raw := &gitlab.FileChange{NewPath: "big.txt", NewFile: true, Diff: strings.Join(lines, "\n")}

	change, err := NewFileChange(raw, DiffOptions{MaxLines: 4})

	require.NoError(t, err)
	assert.Equal(t, 10, change.Additions)
	assert.True(t, change.Truncated)
	assert.Equal(t, "+line\n+line\n+line\n+line\n... 6 more lines truncated", change.Diff)
}

func TestNewFileChange_SummaryOnly(t *testing.T) {
	raw := &gitlab.FileChange{NewPath: "a.go", Diff: "+x\n-y\n"}

	change, err := NewFileChange(raw, DiffOptions{SummaryOnly: true})

	require.NoError(t, err)
	assert.Empty(t, change.Diff)
	assert.Equal(t, 1, change.Additions)
	assert.Equal(t, 1, change.Deletions)
}

func TestNewChangesSummary(t *testing.T) {
	raw := []gitlab.FileChange{
		{NewPath: "a.go", Diff: "+x\n+y\n"},
		{NewPath: "", Diff: "+broken\n"},
		{NewPath: "b.go", DeletedFile: true, Diff: "-z\n"},
	}

	files := Batch("file_change", raw, FileChanges(DiffOptions{SummaryOnly: true}), fixedNow, nil)
	summary := NewChangesSummary(files)

	assert.Equal(t, 2, summary.FilesChanged)
	assert.Equal(t, 2, summary.Additions)
	assert.Equal(t, 1, summary.Deletions)
	assert.Equal(t, 1, summary.Omitted)
}

func TestNewApprovalState(t *testing.T) {
	raw := decode[gitlab.ApprovalState](t, `{
		"approved": true,
		"approvals_required": 2,
		"approvals_left": 1,
		"approved_by": [{"user": {"id": 1, "username": "alice"}}]
	}`)

	state, err := NewApprovalState(raw, fixedNow)

	require.NoError(t, err)
	assert.False(t, state.Approved)
	assert.Equal(t, 2, state.ApprovalsRequired)
	assert.Equal(t, 1, state.ApprovalsLeft)
	assert.Equal(t, []string{"alice"}, state.ApprovedBy)
}

func TestNewIssue(t *testing.T) {
	raw := decode[gitlab.Issue](t, `{
		"id": 500,
		"iid": 7,
		"title": "Broken build",
		"description": null,
		"state": "opened",
		"author": {"id": 1, "username": "alice"},
		"assignees": [],
		"labels": ["bug"],
		"milestone": {"title": "v1.0"},
		"web_url": "https://gitlab.example.com/group/app/-/issues/7",
		"created_at": "2024-06-10T12:00:00Z",
		"updated_at": "2024-06-15T11:59:30Z",
		"confidential": false,
		"weight": 3,
		"due_date": "2024-06-30",
		"time_stats": {"time_estimate": 7200, "total_time_spent": 1800, "human_time_estimate": "2h", "human_total_time_spent": "30m"},
		"user_notes_count": 2,
		"merge_requests_count": 1
	}`)

	issue, err := NewIssue(raw, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, 7, issue.IID)
	assert.Empty(t, issue.Description)
	assert.Nil(t, issue.Assignees)
	assert.Equal(t, "v1.0", issue.Milestone)
	assert.Equal(t, "5 days ago", issue.Created)
	assert.Equal(t, "just now", issue.Updated)
	assert.Equal(t, intPtr(3), issue.Weight)
	assert.Equal(t, "2h", issue.TimeEstimate)
	assert.Equal(t, "30m", issue.TimeSpent)

	assertAllowed(t, issue,
		"iid", "title", "description", "state", "author", "assignees", "labels", "milestone",
		"url", "created", "updated", "closed", "confidential", "weight", "due_date",
		"time_estimate", "time_spent", "user_notes_count", "merge_requests_count")
}

func TestNewPipelineAndJob(t *testing.T) {
	pipeline, err := NewPipeline(decode[gitlab.Pipeline](t, `{
		"id": 77, "iid": 3, "status": "failed", "ref": "main",
		"sha": "0123456789abcdef", "source": "push",
		"web_url": "https://gitlab.example.com/p/77",
		"created_at": "2024-06-15T11:00:00Z", "duration": 125, "coverage": "81.5"
	}`), fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "01234567", pipeline.SHA)
	assert.Equal(t, "1 hour ago", pipeline.Created)
	assert.Equal(t, 125, pipeline.Duration)
	assertAllowed(t, pipeline, "id", "status", "ref", "sha", "source", "url", "created", "updated", "duration", "coverage")

	job, err := NewJob(decode[gitlab.Job](t, `{
		"id": 9, "name": "unit-tests", "stage": "test", "status": "failed",
		"duration": 61.6, "failure_reason": "script_failure",
		"artifacts": [{"file_type": "archive", "filename": "artifacts.zip"}, {"file_type": "trace", "filename": "job.log"}]
	}`), fixedNow)

	require.NoError(t, err)
	assert.Equal(t, 62, job.Duration)
	assert.Equal(t, []string{"artifacts.zip", "job.log"}, job.Artifacts)
	assertAllowed(t, job, "id", "name", "stage", "status", "url", "created", "duration", "failure_reason", "artifacts")

	_, err = NewPipeline(&gitlab.Pipeline{ID: 1}, fixedNow)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrTransform))
	_, err = NewJob(&gitlab.Job{ID: 1}, fixedNow)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrTransform))
}

func TestNewLabel_DefaultTextColor(t *testing.T) {
	label, err := NewLabel(&gitlab.Label{ID: 1, Name: "bug", Color: "#FF0000"}, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF", label.TextColor)
	assertAllowed(t, label, "id", "name", "color", "text_color", "description", "open_issues", "open_merge_requests", "priority")

	label, err = NewLabel(&gitlab.Label{Name: "docs", TextColor: "#333333"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "#333333", label.TextColor)

	_, err = NewLabel(&gitlab.Label{ID: 2}, fixedNow)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrTransform))
}

func TestNewCommit(t *testing.T) {
	raw := decode[gitlab.Commit](t, `{
		"id": "0123456789abcdef0123",
		"short_id": "0123456",
		"title": "Fix login",
		"message": "Fix login\n\nHandles empty passwords.\n",
		"author_name": "Alice",
		"created_at": "2024-06-13T12:00:00Z",
		"parent_ids": ["fedcba9876543210", "1111111122222222"],
		"stats": {"additions": 10, "deletions": 2, "total": 12}
	}`)
	raw.FilesChanged = 3

	commit, err := NewCommit(raw, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "01234567", commit.SHA)
	assert.Equal(t, "Fix login\n\nHandles empty passwords.", commit.Message)
	assert.Equal(t, "Alice", commit.Author)
	assert.Equal(t, "2 days ago", commit.Created)
	assert.Equal(t, "fedcba98", commit.ParentSHA)
	assert.Equal(t, 3, commit.FilesChanged)
	assert.Equal(t, intPtr(10), commit.Insertions)
	assert.Equal(t, intPtr(2), commit.Deletions)
	assertAllowed(t, commit,
		"sha", "title", "message", "author", "created", "parent_sha",
		"files_changed", "insertions", "deletions", "url")

	commit, err = NewCommit(&gitlab.Commit{ID: "abc", Title: "x", Message: "x\n"}, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, commit.Message)
	assert.Nil(t, commit.Insertions)
}

func TestNewBranch(t *testing.T) {
	raw := decode[gitlab.Branch](t, `{
		"name": "main",
		"protected": true,
		"default": true,
		"commit": {"id": "0123456789abcdef", "committed_date": "2024-06-15T10:00:00Z"}
	}`)

	branch, err := NewBranch(raw, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "01234567", branch.CommitSHA)
	assert.Equal(t, "2 hours ago", branch.LastActivity)
	assert.True(t, branch.Protected)
	assertAllowed(t, branch, "name", "commit_sha", "protected", "merged", "default", "last_activity", "url")
}

func TestNewDiscussion(t *testing.T) {
	raw := decode[gitlab.Discussion](t, `{
		"id": "6a9c1750b37d513a43987b574953fceb50b03ce7",
		"individual_note": false,
		"notes": [
			{"id": 1, "body": "Please rename", "author": {"username": "bob"}, "created_at": "2024-06-15T10:00:00Z",
			 "updated_at": "2024-06-15T10:00:00Z", "resolvable": true, "resolved": true,
			 "position": {"new_path": "a.go", "old_path": "a.go", "new_line": 12}},
			{"id": 2, "body": "Done", "author": {"username": "alice"}, "created_at": "2024-06-15T11:00:00Z",
			 "resolvable": true, "resolved": true},
			{"id": 3, "body": "orphan", "author": null}
		]
	}`)

	d, err := NewDiscussion(raw, fixedNow)

	require.NoError(t, err)
	assert.True(t, d.Resolvable)
	assert.True(t, d.Resolved)
	assert.Len(t, d.Notes, 2)
	assert.Equal(t, 1, d.Omitted)
	assert.Equal(t, "2 hours ago", d.Created)
	assert.Equal(t, "bob", d.Notes[0].Author)
	assert.Empty(t, d.Notes[0].Updated)
	assert.Equal(t, "a.go", d.Notes[0].Position.Path)
	assert.Empty(t, d.Notes[0].Position.OldPath)
	assert.Equal(t, intPtr(12), d.Notes[0].Position.NewLine)
	assertAllowed(t, d, "id", "individual_note", "resolvable", "resolved", "notes", "omitted", "created", "updated")
	assertAllowed(t, d.Notes[0], "id", "body", "author", "created", "updated", "system", "resolvable", "resolved", "position")

	raw.Notes[1].Resolved = false
	d, err = NewDiscussion(raw, fixedNow)
	require.NoError(t, err)
	assert.False(t, d.Resolved)
}

func TestNewMilestoneUserEventNamespace(t *testing.T) {
	milestone, err := NewMilestone(&gitlab.Milestone{ID: 5, IID: 1, Title: "v1.0", DueDate: "2024-07-01", State: "active"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", milestone.DueDate)
	assertAllowed(t, milestone,
		"id", "iid", "title", "description", "state", "due_date", "start_date", "expired", "url", "created", "updated")

	user, err := NewUser(decode[gitlab.User](t, `{"id": 1, "username": "alice", "name": "Alice", "state": "active", "last_activity_on": "2024-06-14"}`), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "1 day ago", user.LastActive)
	assertAllowed(t, user, "id", "username", "name", "state", "url", "last_active")

	event, err := NewEvent(decode[gitlab.Event](t, `{"id": 3, "action_name": "pushed to", "author": {"username": "bob"}, "created_at": "2024-06-15T11:58:00Z"}`), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "bob", event.Author)
	assert.Equal(t, "2 minutes ago", event.Created)
	assertAllowed(t, event, "id", "action", "target_type", "target_title", "target_iid", "author", "created")

	ns, err := NewNamespace(&gitlab.Namespace{ID: 4, Name: "Group", Path: "group", FullPath: "org/group", Kind: "group"}, fixedNow)
	require.NoError(t, err)
	assertAllowed(t, ns, "id", "name", "path", "full_path", "kind", "url")

	_, err = NewNamespace(&gitlab.Namespace{ID: 4}, fixedNow)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrTransform))
	_, err = NewUser(&gitlab.User{}, fixedNow)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrTransform))
}

func TestNewProjectReleaseWiki(t *testing.T) {
	project, err := NewProject(&gitlab.ProjectInfo{
		ID: 42, Name: "app", Path: "app", PathWithNamespace: "group/app",
		LastActivityAt: at(90 * 24 * time.Hour), StarCount: 5,
	}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "group/app", project.Path)
	assert.Equal(t, "2024-03-17", project.LastActivity)
	assertAllowed(t, project,
		"id", "name", "path", "description", "default_branch", "visibility", "url",
		"last_activity", "stars", "forks", "open_issues", "archived")

	release, err := NewRelease(decode[gitlab.Release](t, `{
		"tag_name": "v1.0.0", "name": "First", "author": {"username": "alice"},
		"commit": {"id": "0123456789abcdef"}, "released_at": "2024-06-14T12:00:00Z",
		"_links": {"self": "https://gitlab.example.com/group/app/-/releases/v1.0.0"},
		"assets": {"links": [{"id": 1, "name": "binary", "url": "https://dl/x"}]}
	}`), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "01234567", release.CommitSHA)
	assert.Equal(t, "1 day ago", release.Released)
	assert.Equal(t, []AssetLink{{Name: "binary", URL: "https://dl/x"}}, release.AssetLinks)
	assertAllowed(t, release,
		"tag", "name", "description", "author", "commit_sha", "created", "released", "upcoming", "url", "asset_links")

	page, err := NewWikiPage(&gitlab.WikiPage{Slug: "home", Title: "Home", Format: "markdown"}, fixedNow)
	require.NoError(t, err)
	assertAllowed(t, page, "slug", "title", "format", "content")

	_, err = NewWikiPage(&gitlab.WikiPage{Slug: "home"}, fixedNow)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrTransform))
}

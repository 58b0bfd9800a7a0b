package gitlab

import "time"

// Raw entities decoded from GitLab REST API v4 payloads. Only the fields the
// transformers read are declared; everything else in a payload is ignored.

// BasicUser is the nested user reference embedded in most payloads
type BasicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	State    string `json:"state"`
	WebURL   string `json:"web_url"`
}

// User represents a GitLab user
type User struct {
	BasicUser
	LastActivityOn string `json:"last_activity_on"` // YYYY-MM-DD
}

// MilestoneRef is the nested milestone reference on issues and merge requests
type MilestoneRef struct {
	ID    int    `json:"id"`
	IID   int    `json:"iid"`
	Title string `json:"title"`
}

// PipelineRef is the head pipeline embedded in merge requests
type PipelineRef struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
	WebURL string `json:"web_url"`
}

// MergeRequest represents a merge request payload
type MergeRequest struct {
	ID                          int           `json:"id"`
	IID                         int           `json:"iid"`
	ProjectID                   int           `json:"project_id"`
	Title                       string        `json:"title"`
	Description                 string        `json:"description"`
	State                       string        `json:"state"`
	Draft                       bool          `json:"draft"`
	WorkInProgress              bool          `json:"work_in_progress"`
	Author                      *BasicUser    `json:"author"`
	Assignees                   []BasicUser   `json:"assignees"`
	Reviewers                   []BasicUser   `json:"reviewers"`
	Labels                      []string      `json:"labels"`
	Milestone                   *MilestoneRef `json:"milestone"`
	SourceBranch                string        `json:"source_branch"`
	TargetBranch                string        `json:"target_branch"`
	WebURL                      string        `json:"web_url"`
	CreatedAt                   *time.Time    `json:"created_at"`
	UpdatedAt                   *time.Time    `json:"updated_at"`
	MergedAt                    *time.Time    `json:"merged_at"`
	ClosedAt                    *time.Time    `json:"closed_at"`
	MergeStatus                 string        `json:"merge_status"`
	DetailedMergeStatus         string        `json:"detailed_merge_status"`
	HasConflicts                bool          `json:"has_conflicts"`
	BlockingDiscussionsResolved *bool         `json:"blocking_discussions_resolved"`
	HeadPipeline                *PipelineRef  `json:"head_pipeline"`
	Pipeline                    *PipelineRef  `json:"pipeline"`
	UserNotesCount              int           `json:"user_notes_count"`
	SHA                         string        `json:"sha"`

	// Approvals is filled from the approvals endpoint, not the MR payload
	Approvals *ApprovalState `json:"-"`
}

// MergeRequestChanges is the payload of the merge request diffs endpoint
type MergeRequestChanges struct {
	Changes []FileChange `json:"changes"`
}

// FileChange represents a single file change in an MR or commit
type FileChange struct {
	OldPath     string `json:"old_path"`
	NewPath     string `json:"new_path"`
	AMode       string `json:"a_mode"`
	BMode       string `json:"b_mode"`
	NewFile     bool   `json:"new_file"`
	RenamedFile bool   `json:"renamed_file"`
	DeletedFile bool   `json:"deleted_file"`
	Diff        string `json:"diff"`
}

// ApprovalState is the payload of the merge request approvals endpoint
type ApprovalState struct {
	Approved          bool `json:"approved"`
	ApprovalsRequired int  `json:"approvals_required"`
	ApprovalsLeft     int  `json:"approvals_left"`
	ApprovedBy        []struct {
		User BasicUser `json:"user"`
	} `json:"approved_by"`
}

// TimeStats holds issue time tracking in seconds
type TimeStats struct {
	TimeEstimate        int    `json:"time_estimate"`
	TotalTimeSpent      int    `json:"total_time_spent"`
	HumanTimeEstimate   string `json:"human_time_estimate"`
	HumanTotalTimeSpent string `json:"human_total_time_spent"`
}

// Issue represents an issue payload
type Issue struct {
	ID                 int           `json:"id"`
	IID                int           `json:"iid"`
	ProjectID          int           `json:"project_id"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	State              string        `json:"state"`
	Author             *BasicUser    `json:"author"`
	Assignees          []BasicUser   `json:"assignees"`
	Labels             []string      `json:"labels"`
	Milestone          *MilestoneRef `json:"milestone"`
	WebURL             string        `json:"web_url"`
	CreatedAt          *time.Time    `json:"created_at"`
	UpdatedAt          *time.Time    `json:"updated_at"`
	ClosedAt           *time.Time    `json:"closed_at"`
	Confidential       bool          `json:"confidential"`
	Weight             *int          `json:"weight"`
	DueDate            string        `json:"due_date"` // YYYY-MM-DD
	TimeStats          *TimeStats    `json:"time_stats"`
	UserNotesCount     int           `json:"user_notes_count"`
	MergeRequestsCount int           `json:"merge_requests_count"`
}

// Pipeline represents a pipeline payload
type Pipeline struct {
	ID        int        `json:"id"`
	IID       int        `json:"iid"`
	Status    string     `json:"status"`
	Ref       string     `json:"ref"`
	SHA       string     `json:"sha"`
	Source    string     `json:"source"`
	WebURL    string     `json:"web_url"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	Duration  *int       `json:"duration"`
	Coverage  string     `json:"coverage"`
}

// JobArtifact is one artifact archive attached to a job
type JobArtifact struct {
	FileType   string `json:"file_type"`
	Filename   string `json:"filename"`
	FileFormat string `json:"file_format"`
	Size       int    `json:"size"`
}

// Job represents a CI job payload
type Job struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Stage         string        `json:"stage"`
	Status        string        `json:"status"`
	WebURL        string        `json:"web_url"`
	CreatedAt     *time.Time    `json:"created_at"`
	Duration      *float64      `json:"duration"`
	FailureReason string        `json:"failure_reason"`
	Artifacts     []JobArtifact `json:"artifacts"`
}

// Label represents a project label payload
type Label struct {
	ID                     int    `json:"id"`
	Name                   string `json:"name"`
	Color                  string `json:"color"`
	TextColor              string `json:"text_color"`
	Description            string `json:"description"`
	OpenIssuesCount        int    `json:"open_issues_count"`
	OpenMergeRequestsCount int    `json:"open_merge_requests_count"`
	Priority               *int   `json:"priority"`
}

// CommitStats holds line counts of a commit
type CommitStats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Total     int `json:"total"`
}

// Commit represents a commit payload
type Commit struct {
	ID            string       `json:"id"`
	ShortID       string       `json:"short_id"`
	Title         string       `json:"title"`
	Message       string       `json:"message"`
	AuthorName    string       `json:"author_name"`
	CreatedAt     *time.Time   `json:"created_at"`
	CommittedDate *time.Time   `json:"committed_date"`
	ParentIDs     []string     `json:"parent_ids"`
	Stats         *CommitStats `json:"stats"`
	WebURL        string       `json:"web_url"`

	// FilesChanged is filled from the commit diff endpoint when fetched
	FilesChanged int `json:"-"`
}

// Branch represents a repository branch payload
type Branch struct {
	Name      string  `json:"name"`
	Commit    *Commit `json:"commit"`
	Protected bool    `json:"protected"`
	Merged    bool    `json:"merged"`
	Default   bool    `json:"default"`
	WebURL    string  `json:"web_url"`
}

// NotePosition locates a diff note
type NotePosition struct {
	NewPath string `json:"new_path"`
	OldPath string `json:"old_path"`
	NewLine *int   `json:"new_line"`
	OldLine *int   `json:"old_line"`
}

// Note represents a comment payload
type Note struct {
	ID         int           `json:"id"`
	Body       string        `json:"body"`
	Author     *BasicUser    `json:"author"`
	CreatedAt  *time.Time    `json:"created_at"`
	UpdatedAt  *time.Time    `json:"updated_at"`
	System     bool          `json:"system"`
	Resolvable bool          `json:"resolvable"`
	Resolved   bool          `json:"resolved"`
	Position   *NotePosition `json:"position"`
}

// Discussion represents a discussion thread payload
type Discussion struct {
	ID             string `json:"id"`
	IndividualNote bool   `json:"individual_note"`
	Notes          []Note `json:"notes"`
}

// Milestone represents a milestone payload
type Milestone struct {
	ID          int        `json:"id"`
	IID         int        `json:"iid"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	State       string     `json:"state"`
	DueDate     string     `json:"due_date"`
	StartDate   string     `json:"start_date"`
	Expired     bool       `json:"expired"`
	WebURL      string     `json:"web_url"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// Event represents a project activity event payload
type Event struct {
	ID          int        `json:"id"`
	ActionName  string     `json:"action_name"`
	TargetType  string     `json:"target_type"`
	TargetTitle string     `json:"target_title"`
	TargetIID   int        `json:"target_iid"`
	Author      *BasicUser `json:"author"`
	CreatedAt   *time.Time `json:"created_at"`
}

// Namespace represents a user or group namespace payload
type Namespace struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	FullPath string `json:"full_path"`
	Kind     string `json:"kind"`
	WebURL   string `json:"web_url"`
}

// ProjectInfo represents a project payload
type ProjectInfo struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Path              string     `json:"path"`
	PathWithNamespace string     `json:"path_with_namespace"`
	Description       string     `json:"description"`
	DefaultBranch     string     `json:"default_branch"`
	Visibility        string     `json:"visibility"`
	WebURL            string     `json:"web_url"`
	LastActivityAt    *time.Time `json:"last_activity_at"`
	StarCount         int        `json:"star_count"`
	ForksCount        int        `json:"forks_count"`
	OpenIssuesCount   int        `json:"open_issues_count"`
	Archived          bool       `json:"archived"`
}

// ReleaseLink is an asset link attached to a release
type ReleaseLink struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	LinkType string `json:"link_type"`
}

// Release represents a release payload
type Release struct {
	TagName         string     `json:"tag_name"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Author          *BasicUser `json:"author"`
	Commit          *Commit    `json:"commit"`
	CreatedAt       *time.Time `json:"created_at"`
	ReleasedAt      *time.Time `json:"released_at"`
	UpcomingRelease bool       `json:"upcoming_release"`
	Links           struct {
		Self string `json:"self"`
	} `json:"_links"`
	Assets struct {
		Links []ReleaseLink `json:"links"`
	} `json:"assets"`
}

// WikiPage represents a wiki page payload
type WikiPage struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Format  string `json:"format"`
	Content string `json:"content"`
}

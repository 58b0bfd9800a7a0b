package transform

import (
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const (
	kindPipeline = "pipeline"
	kindJob      = "job"
)

// Pipeline is the reduced CI pipeline returned to agents
type Pipeline struct {
	ID       int    `json:"id"`
	Status   string `json:"status"`
	Ref      string `json:"ref,omitempty"`
	SHA      string `json:"sha,omitempty"`
	Source   string `json:"source,omitempty"`
	URL      string `json:"url,omitempty"`
	Created  string `json:"created,omitempty"`
	Updated  string `json:"updated,omitempty"`
	Duration int    `json:"duration,omitempty"` // seconds
	Coverage string `json:"coverage,omitempty"`
}

// NewPipeline reduces a raw pipeline
func NewPipeline(raw *gitlab.Pipeline, now time.Time) (*Pipeline, error) {
	if raw.ID == 0 {
		return nil, apperrors.NewTransformError(kindPipeline, "id")
	}
	if raw.Status == "" {
		return nil, apperrors.NewTransformError(kindPipeline, "status")
	}

	p := &Pipeline{
		ID:       raw.ID,
		Status:   raw.Status,
		Ref:      raw.Ref,
		SHA:      shortSHA(raw.SHA),
		Source:   raw.Source,
		URL:      raw.WebURL,
		Created:  relative(raw.CreatedAt, now),
		Updated:  relative(raw.UpdatedAt, now),
		Coverage: raw.Coverage,
	}
	if raw.Duration != nil {
		p.Duration = *raw.Duration
	}
	return p, nil
}

// Job is the reduced CI job returned to agents
type Job struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Stage         string   `json:"stage,omitempty"`
	Status        string   `json:"status,omitempty"`
	URL           string   `json:"url,omitempty"`
	Created       string   `json:"created,omitempty"`
	Duration      int      `json:"duration,omitempty"` // seconds
	FailureReason string   `json:"failure_reason,omitempty"`
	Artifacts     []string `json:"artifacts,omitempty"`
}

// NewJob reduces a raw job. Artifacts are flattened to file names.
func NewJob(raw *gitlab.Job, now time.Time) (*Job, error) {
	if raw.ID == 0 {
		return nil, apperrors.NewTransformError(kindJob, "id")
	}
	if raw.Name == "" {
		return nil, apperrors.NewTransformError(kindJob, "name")
	}

	job := &Job{
		ID:            raw.ID,
		Name:          raw.Name,
		Stage:         raw.Stage,
		Status:        raw.Status,
		URL:           raw.WebURL,
		Created:       relative(raw.CreatedAt, now),
		FailureReason: raw.FailureReason,
	}
	if raw.Duration != nil {
		job.Duration = int(*raw.Duration + 0.5)
	}
	for _, a := range raw.Artifacts {
		if a.Filename != "" {
			job.Artifacts = append(job.Artifacts, a.Filename)
		}
	}
	return job, nil
}

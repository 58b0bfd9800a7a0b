package gitlab

import "context"

// API is the set of GitLab operations tools depend on.
// This interface allows for easy mocking in tests.
type API interface {
	// Raw calls through the retry policy
	Read(ctx context.Context, operation string, call CallFunc) error
	Write(ctx context.Context, operation string, call CallFunc) error

	// JSON helpers
	Get(ctx context.Context, path string, opt interface{}, v interface{}) error
	List(ctx context.Context, path string, opt interface{}, v interface{}) (*Page, error)
	Post(ctx context.Context, path string, opt interface{}, v interface{}) error
	Put(ctx context.Context, path string, opt interface{}, v interface{}) error
	Delete(ctx context.Context, path string, opt interface{}) error

	ReadOnly() bool
}

// Verify that Client implements API interface
var _ API = (*Client)(nil)

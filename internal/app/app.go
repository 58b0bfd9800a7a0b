package app

import (
	"context"
	"time"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/config"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/logging"
)

// App owns the configuration resolver, the client factory and the project
// resolver for one process. Tools receive the App instead of reaching for
// package state, so tests build isolated instances.
type App struct {
	configs  gitlab.ConfigSource
	clients  *gitlab.Factory
	projects *gitlab.ProjectResolver
	log      *logging.Logger
	now      func() time.Time
}

type options struct {
	log        *logging.Logger
	now        func() time.Time
	clientOpts []gitlab.ClientOption
}

// Option customizes an App at construction
type Option func(*options)

// WithLogger sets the logger shared by the App and its client
func WithLogger(log *logging.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithClock replaces the time source used for relative timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithClientOptions passes options through to the GitLab client
func WithClientOptions(opts ...gitlab.ClientOption) Option {
	return func(o *options) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// New creates an App reading configuration from configs. Nothing is resolved
// or dialed until first use.
func New(configs gitlab.ConfigSource, opts ...Option) *App {
	o := &options{
		log: logging.NewNopLogger(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	clientOpts := append([]gitlab.ClientOption{gitlab.WithLogger(o.log)}, o.clientOpts...)
	clients := gitlab.NewFactory(configs, clientOpts...)

	return &App{
		configs:  configs,
		clients:  clients,
		projects: gitlab.NewProjectResolver(clients, configs, o.log),
		log:      o.log,
		now:      o.now,
	}
}

// Config returns the resolved configuration
func (a *App) Config() (*config.Config, error) {
	return a.configs.Resolve()
}

// Client returns the shared GitLab client
func (a *App) Client() (*gitlab.Client, error) {
	return a.clients.Client()
}

// Project resolves identifier, or the default project when it is empty
func (a *App) Project(ctx context.Context, identifier string) (*gitlab.Project, error) {
	return a.projects.Get(ctx, identifier)
}

// Logger returns the App logger
func (a *App) Logger() *logging.Logger {
	return a.log
}

// Now returns the current time from the App clock
func (a *App) Now() time.Time {
	return a.now()
}

package gitlab

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gogitlab "github.com/xanzy/go-gitlab"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/logging"
	"go.uber.org/zap"
)

// Project is a resolved project plus the client used to reach it
type Project struct {
	ID                int
	Name              string
	PathWithNamespace string
	WebURL            string
	DefaultBranch     string
	Client            API
}

// Path builds a project-scoped API path, e.g. Path("merge_requests", 5)
func (p *Project) Path(segments ...interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "projects/%d", p.ID)
	for _, s := range segments {
		b.WriteByte('/')
		switch v := s.(type) {
		case string:
			b.WriteString(gogitlab.PathEscape(v))
		default:
			fmt.Fprintf(&b, "%v", v)
		}
	}
	return b.String()
}

// ClientSource yields the shared client
type ClientSource interface {
	Client() (*Client, error)
}

// ProjectResolver resolves project identifiers to handles and caches them for
// the process lifetime
type ProjectResolver struct {
	clients ClientSource
	configs ConfigSource
	log     *logging.Logger
	cache   sync.Map // normalized identifier -> *Project
}

// NewProjectResolver creates a resolver using clients for lookups and configs
// for the default project
func NewProjectResolver(clients ClientSource, configs ConfigSource, log *logging.Logger) *ProjectResolver {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ProjectResolver{clients: clients, configs: configs, log: log}
}

// NormalizeIdentifier trims whitespace and surrounding slashes. Numeric and
// namespace/path identifiers are otherwise left as given.
func NormalizeIdentifier(identifier string) string {
	return strings.Trim(strings.TrimSpace(identifier), "/")
}

// Get returns the project for identifier, falling back to the configured
// default project when identifier is empty
func (r *ProjectResolver) Get(ctx context.Context, identifier string) (*Project, error) {
	id := NormalizeIdentifier(identifier)
	if id == "" {
		cfg, err := r.configs.Resolve()
		if err != nil {
			return nil, err
		}
		id = NormalizeIdentifier(cfg.GitLab.DefaultProjectID)
		if id == "" {
			return nil, apperrors.NewMissingProjectError()
		}
	}

	if cached, ok := r.cache.Load(id); ok {
		return cached.(*Project), nil
	}

	client, err := r.clients.Client()
	if err != nil {
		return nil, err
	}

	var remote *gogitlab.Project
	err = client.Read(ctx, "get project", func(api *gogitlab.Client, opts ...gogitlab.RequestOptionFunc) (*gogitlab.Response, error) {
		p, resp, err := api.Projects.GetProject(id, nil, opts...)
		remote = p
		return resp, err
	})
	if err != nil {
		switch {
		case apperrors.HasCode(err, apperrors.ErrNotFound):
			return nil, apperrors.NewProjectNotFoundError(id, err)
		case apperrors.HasCode(err, apperrors.ErrAuthentication):
			return nil, apperrors.NewAccessDeniedError(id, err)
		default:
			return nil, err
		}
	}

	project := &Project{
		ID:                remote.ID,
		Name:              remote.Name,
		PathWithNamespace: remote.PathWithNamespace,
		WebURL:            remote.WebURL,
		DefaultBranch:     remote.DefaultBranch,
		Client:            client,
	}

	actual, loaded := r.cache.LoadOrStore(id, project)
	if !loaded {
		r.log.Debug("Resolved project",
			zap.String("identifier", id),
			zap.Int("project_id", project.ID),
			zap.String("path", project.PathWithNamespace),
		)
	}
	return actual.(*Project), nil
}

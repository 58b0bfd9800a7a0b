package gitlab

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	gogitlab "github.com/xanzy/go-gitlab"
	"golang.org/x/time/rate"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/config"
	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/logging"
	"go.uber.org/zap"
)

const userAgent = "gitlab-mcp"

// CallFunc performs one raw API request against the underlying go-gitlab client
type CallFunc func(api *gogitlab.Client, opts ...gogitlab.RequestOptionFunc) (*gogitlab.Response, error)

// Page carries the pagination headers of a list response
type Page struct {
	Current    int `json:"page,omitempty"`
	Next       int `json:"next_page,omitempty"`
	TotalItems int `json:"total,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
}

// Client is the shared handle through which every GitLab call is made. It
// applies the request timeout, the retry policy and the read-only guard. It
// holds no per-call state and is safe for concurrent use.
type Client struct {
	api        *gogitlab.Client
	baseURL    string
	credential config.CredentialKind
	readOnly   bool
	retry      apperrors.RetryConfig
	log        *logging.Logger
}

// ClientOption customizes a Client at construction
type ClientOption func(*Client)

// WithRetryWait replaces the backoff sleep, used by tests to avoid real delays
func WithRetryWait(wait apperrors.WaitFunc) ClientOption {
	return func(c *Client) {
		c.retry.Wait = wait
	}
}

// WithLogger sets the client logger
func WithLogger(log *logging.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a GitLab API client from a resolved configuration
func NewClient(cfg *config.Config, opts ...ClientOption) (*Client, error) {
	httpClient, err := createHTTPClient(cfg.GitLab)
	if err != nil {
		return nil, apperrors.NewConfigurationError("Invalid TLS configuration", err.Error())
	}

	options := []gogitlab.ClientOptionFunc{
		gogitlab.WithBaseURL(cfg.GitLab.BaseURL + "/api/v4"),
		gogitlab.WithHTTPClient(httpClient),
		gogitlab.WithoutRetries(),
		gogitlab.WithCustomLimiter(rate.NewLimiter(rate.Inf, 0)),
	}

	var api *gogitlab.Client
	credential := cfg.GitLab.Credential
	switch credential.Kind {
	case config.CredentialOAuth:
		api, err = gogitlab.NewOAuthClient(credential.Secret, options...)
	case config.CredentialPersonalAccessToken, config.CredentialToken:
		api, err = gogitlab.NewClient(credential.Secret, options...)
	case config.CredentialSessionCookie:
		api, err = gogitlab.NewClient("", options...)
	default:
		return nil, apperrors.NewConfigurationError("No GitLab credential configured",
			fmt.Sprintf("unsupported credential kind %q", credential.Kind))
	}
	if err != nil {
		return nil, apperrors.NewConfigurationError("Failed to create GitLab client", err.Error())
	}
	api.UserAgent = userAgent

	c := &Client{
		api:        api,
		baseURL:    cfg.GitLab.BaseURL,
		credential: credential.Kind,
		readOnly:   cfg.GitLab.ReadOnly,
		retry:      apperrors.GitLabRetryConfig(cfg.GitLab.RetryCount, cfg.GitLab.RetryBackoff),
		log:        logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.retry.Logger = c.log
	return c, nil
}

// BaseURL returns the configured GitLab endpoint
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CredentialKind returns the active credential kind
func (c *Client) CredentialKind() config.CredentialKind {
	return c.credential
}

// ReadOnly reports whether mutating calls are rejected
func (c *Client) ReadOnly() bool {
	return c.readOnly
}

// Read executes a non-mutating call with retry
func (c *Client) Read(ctx context.Context, operation string, call CallFunc) error {
	return c.execute(ctx, operation, call)
}

// Write executes a mutating call with retry. In read-only mode it fails
// before any request is sent.
func (c *Client) Write(ctx context.Context, operation string, call CallFunc) error {
	if c.readOnly {
		return apperrors.NewReadOnlyModeError(operation)
	}
	return c.execute(ctx, operation, call)
}

func (c *Client) execute(ctx context.Context, operation string, call CallFunc) error {
	op := apperrors.NewRetryableOperation(operation, c.retry)
	return op.Execute(ctx, func() error {
		resp, err := call(c.api, gogitlab.WithContext(ctx))
		if err != nil {
			c.log.Debug("GitLab request failed",
				zap.String("operation", operation),
				zap.Int("status", statusOf(resp)),
				zap.Error(err),
			)
		}
		return classifyError(ctx, operation, resp, err)
	})
}

// Get decodes GET path into v
func (c *Client) Get(ctx context.Context, path string, opt interface{}, v interface{}) error {
	return c.Read(ctx, "GET "+path, request(http.MethodGet, path, opt, v, nil))
}

// List decodes one page of GET path into v and returns the pagination headers
func (c *Client) List(ctx context.Context, path string, opt interface{}, v interface{}) (*Page, error) {
	page := &Page{}
	err := c.Read(ctx, "GET "+path, request(http.MethodGet, path, opt, v, page))
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Post sends opt as a JSON body and decodes the response into v
func (c *Client) Post(ctx context.Context, path string, opt interface{}, v interface{}) error {
	return c.Write(ctx, "POST "+path, request(http.MethodPost, path, opt, v, nil))
}

// Put sends opt as a JSON body and decodes the response into v
func (c *Client) Put(ctx context.Context, path string, opt interface{}, v interface{}) error {
	return c.Write(ctx, "PUT "+path, request(http.MethodPut, path, opt, v, nil))
}

// Delete removes the resource at path
func (c *Client) Delete(ctx context.Context, path string, opt interface{}) error {
	return c.Write(ctx, "DELETE "+path, request(http.MethodDelete, path, opt, nil, nil))
}

func request(method, path string, opt interface{}, v interface{}, page *Page) CallFunc {
	return func(api *gogitlab.Client, opts ...gogitlab.RequestOptionFunc) (*gogitlab.Response, error) {
		req, err := api.NewRequest(method, path, opt, opts)
		if err != nil {
			return nil, apperrors.NewErrorWithCause(apperrors.ErrInvalidInput,
				fmt.Sprintf("Cannot build %s %s request", method, path), err)
		}
		resp, err := api.Do(req, v)
		if err == nil && page != nil && resp != nil {
			*page = Page{
				Current:    resp.CurrentPage,
				Next:       resp.NextPage,
				TotalItems: resp.TotalItems,
				TotalPages: resp.TotalPages,
			}
		}
		return resp, err
	}
}

// classifyError maps a go-gitlab result onto the application error kinds
func classifyError(ctx context.Context, operation string, resp *gogitlab.Response, err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(*apperrors.AppError); ok {
		return err
	}

	if ctx.Err() != nil || stderrors.Is(err, context.Canceled) {
		return apperrors.NewCancelledError(fmt.Sprintf("GitLab API %s cancelled", operation), err)
	}

	var errResp *gogitlab.ErrorResponse
	if stderrors.As(err, &errResp) && errResp.Response != nil {
		appErr := apperrors.NewGitLabError(operation, errResp.Response.StatusCode, errResp.Message)
		appErr.Cause = err
		return appErr
	}

	if status := statusOf(resp); status != 0 {
		if status >= http.StatusBadRequest {
			appErr := apperrors.NewGitLabError(operation, status, err.Error())
			appErr.Cause = err
			return appErr
		}
		// A successful status with an undecodable body will not improve on retry
		appErr := apperrors.NewDecodeError("response of "+operation, err)
		appErr.StatusCode = status
		return appErr
	}

	return apperrors.NewNetworkError(operation, err)
}

func statusOf(resp *gogitlab.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

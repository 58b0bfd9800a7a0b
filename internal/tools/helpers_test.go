package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/app"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/config"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

const testProjectJSON = `{
	"id": 42,
	"name": "app",
	"path_with_namespace": "group/app",
	"web_url": "https://gitlab.example.com/group/app",
	"default_branch": "main"
}`

// recordedRequest is one request seen by the fake GitLab
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   map[string]interface{}
}

type route struct {
	status  int
	body    string
	headers map[string]string
}

// fakeGitLab serves canned responses keyed by "METHOD escaped-path" and
// records every request it receives
type fakeGitLab struct {
	*httptest.Server
	mu       sync.Mutex
	routes   map[string]route
	requests []recordedRequest
}

func newFakeGitLab(t *testing.T) *fakeGitLab {
	t.Helper()
	f := &fakeGitLab{routes: map[string]route{}}
	f.handle(http.MethodGet, "/api/v4/projects/42", http.StatusOK, testProjectJSON)
	f.handle(http.MethodGet, "/api/v4/projects/group%2Fapp", http.StatusOK, testProjectJSON)

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.Query(),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}

		f.mu.Lock()
		f.requests = append(f.requests, rec)
		rt, ok := f.routes[r.Method+" "+rec.Path]
		f.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "404 Not Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		for k, v := range rt.headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(rt.status)
		_, _ = w.Write([]byte(rt.body))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeGitLab) handle(method, path string, status int, body string) {
	f.handleWithHeaders(method, path, status, body, nil)
}

func (f *fakeGitLab) handleWithHeaders(method, path string, status int, body string, headers map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = route{status: status, body: body, headers: headers}
}

// requestsTo returns the recorded requests for method and path
func (f *fakeGitLab) requestsTo(method, path string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []recordedRequest
	for _, r := range f.requests {
		if r.Method == method && r.Path == path {
			result = append(result, r)
		}
	}
	return result
}

func (f *fakeGitLab) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		GitLab: config.GitLabConfig{
			BaseURL:          baseURL,
			Credential:       config.Credential{Kind: config.CredentialPersonalAccessToken, Secret: "test-token"},
			DefaultProjectID: "42",
			RetryCount:       3,
			RetryBackoff:     500 * time.Millisecond,
			Timeout:          5 * time.Second,
		},
	}
}

func newTestApp(cfg *config.Config) *app.App {
	return newTestAppFrom(config.Static(cfg))
}

func newRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// callTool runs the named built-in tool through Dispatch
func callTool(t *testing.T, a *app.App, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	info, ok := NewRegistry().GetTool(name)
	require.True(t, ok, "tool %s not registered", name)

	result, err := Dispatch(a, info)(context.Background(), newRequest(name, args))
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

// decodeResult asserts a successful result and decodes its JSON text
func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.False(t, result.IsError, resultText(t, result))
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	return out
}

func newTestAppFrom(configs gitlab.ConfigSource) *app.App {
	return app.New(configs,
		app.WithClock(func() time.Time { return fixedNow }),
		app.WithClientOptions(gitlab.WithRetryWait(func(context.Context, time.Duration) error { return nil })),
	)
}

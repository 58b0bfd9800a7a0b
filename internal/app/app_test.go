package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/config"
	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Project(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/v4/projects/group%2Fapp", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 42, "path_with_namespace": "group/app"}`))
	}))
	defer server.Close()

	configs := config.NewResolver(config.MapLookup(map[string]string{
		"GITLAB_API_URL":    server.URL,
		"GITLAB_TOKEN":      "test-token",
		"GITLAB_PROJECT_ID": "group/app",
	}))
	a := New(configs)

	first, err := a.Project(context.Background(), "")
	require.NoError(t, err)
	second, err := a.Project(context.Background(), "group/app")
	require.NoError(t, err)

	assert.Equal(t, 42, first.ID)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}

func TestApp_IsolatedInstances(t *testing.T) {
	cfg := &config.Config{GitLab: config.GitLabConfig{
		BaseURL:    "https://gitlab.example.com",
		Credential: config.Credential{Kind: config.CredentialToken, Secret: "x"},
	}}

	a := New(config.Static(cfg))
	b := New(config.Static(cfg))

	clientA, err := a.Client()
	require.NoError(t, err)
	clientB, err := b.Client()
	require.NoError(t, err)

	assert.NotSame(t, clientA, clientB)
}

func TestApp_ConfigurationError(t *testing.T) {
	a := New(config.NewResolver(config.MapLookup(map[string]string{})))

	_, err := a.Config()
	assert.True(t, apperrors.HasCode(err, apperrors.ErrConfiguration))

	_, err = a.Project(context.Background(), "42")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrConfiguration))
}

func TestApp_Clock(t *testing.T) {
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	a := New(config.Static(&config.Config{}), WithClock(func() time.Time { return fixed }))

	assert.Equal(t, fixed, a.Now())
	assert.NotNil(t, a.Logger())
}

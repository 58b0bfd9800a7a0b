package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
)

const (
	DefaultGitLabURL    = "https://gitlab.com"
	DefaultRetryCount   = 3
	DefaultRetryBackoff = 500 * time.Millisecond
	DefaultTimeout      = 30 * time.Second
)

// CredentialKind identifies how requests authenticate against GitLab
type CredentialKind string

const (
	CredentialOAuth               CredentialKind = "oauth"
	CredentialPersonalAccessToken CredentialKind = "personal_access_token"
	CredentialToken               CredentialKind = "token"
	CredentialSessionCookie       CredentialKind = "session_cookie"
)

// credentialSources lists the credential variables in priority order
var credentialSources = []struct {
	env  string
	kind CredentialKind
}{
	{"GITLAB_OAUTH_TOKEN", CredentialOAuth},
	{"GITLAB_PERSONAL_ACCESS_TOKEN", CredentialPersonalAccessToken},
	{"GITLAB_TOKEN", CredentialToken},
	{"GITLAB_SESSION_COOKIE", CredentialSessionCookie},
}

// Credential is the single active credential
type Credential struct {
	Kind   CredentialKind
	Secret string
}

// String never prints the secret
func (c Credential) String() string {
	return fmt.Sprintf("%s(redacted)", c.Kind)
}

// Config holds application configuration
type Config struct {
	GitLab   GitLabConfig
	Server   ServerConfig
	Tools    ToolsConfig
	LogLevel string
}

// GitLabConfig holds GitLab API configuration
type GitLabConfig struct {
	BaseURL          string // no trailing slash, no /api/v4 suffix
	Credential       Credential
	DefaultProjectID string
	ReadOnly         bool
	RetryCount       int // retries after the first attempt
	RetryBackoff     time.Duration
	Timeout          time.Duration
	InsecureTLS      bool
	CACertPath       string
}

// ServerConfig holds the optional HTTP surface configuration
type ServerConfig struct {
	HTTPAddr string // empty serves MCP over stdio only
}

// ToolsConfig holds toolset and tool enablement
type ToolsConfig struct {
	ConfigPath       string
	DisabledToolsets []string
	DisabledTools    []string
}

// LookupFunc reads one environment variable
type LookupFunc func(key string) (string, bool)

// MapLookup adapts a map to a LookupFunc
func MapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// Resolver reads and validates configuration once and then serves the snapshot
type Resolver struct {
	lookup LookupFunc
	once   sync.Once
	cfg    *Config
	err    error
}

// NewResolver creates a resolver reading from lookup (os.LookupEnv when nil)
func NewResolver(lookup LookupFunc) *Resolver {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Resolver{lookup: lookup}
}

// Static returns a resolver that always yields cfg
func Static(cfg *Config) *Resolver {
	r := &Resolver{cfg: cfg}
	r.once.Do(func() {})
	return r
}

// Resolve returns the configuration, reading it on the first call only
func (r *Resolver) Resolve() (*Config, error) {
	r.once.Do(func() {
		r.cfg, r.err = r.load()
	})
	return r.cfg, r.err
}

// Load resolves configuration from the process environment
func Load() (*Config, error) {
	return NewResolver(os.LookupEnv).Resolve()
}

func (r *Resolver) load() (*Config, error) {
	baseURL, err := normalizeBaseURL(r.getEnv("GITLAB_API_URL", DefaultGitLabURL))
	if err != nil {
		return nil, err
	}

	credential, err := r.resolveCredential()
	if err != nil {
		return nil, err
	}

	retryCount, err := r.getNonNegativeInt("GITLAB_RETRY_COUNT", DefaultRetryCount)
	if err != nil {
		return nil, err
	}
	retryBackoff, err := r.getSeconds("GITLAB_RETRY_BACKOFF", DefaultRetryBackoff, true)
	if err != nil {
		return nil, err
	}
	timeout, err := r.getSeconds("GITLAB_TIMEOUT", DefaultTimeout, false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GitLab: GitLabConfig{
			BaseURL:          baseURL,
			Credential:       credential,
			DefaultProjectID: strings.TrimSpace(r.getEnv("GITLAB_PROJECT_ID", "")),
			ReadOnly:         parseFlag(r.getEnv("GITLAB_READ_ONLY_MODE", "false")),
			RetryCount:       retryCount,
			RetryBackoff:     retryBackoff,
			Timeout:          timeout,
			InsecureTLS:      parseFlag(r.getEnv("GITLAB_INSECURE_TLS", "false")),
			CACertPath:       r.getEnv("GITLAB_CA_CERT_PATH", ""),
		},
		Server: ServerConfig{
			HTTPAddr: r.getEnv("GITLAB_MCP_HTTP_ADDR", ""),
		},
		Tools: ToolsConfig{
			ConfigPath:       r.getEnv("GITLAB_MCP_TOOLS_CONFIG", ""),
			DisabledToolsets: parseList(r.getEnv("GITLAB_MCP_DISABLED_TOOLSETS", "")),
			DisabledTools:    parseList(r.getEnv("GITLAB_MCP_DISABLED_TOOLS", "")),
		},
		LogLevel: r.getEnv("LOG_LEVEL", "info"),
	}

	for toolset, env := range toolsetToggles {
		if parseFlag(r.getEnv(env, "false")) {
			cfg.Tools.DisabledToolsets = appendUnique(cfg.Tools.DisabledToolsets, toolset)
		}
	}

	if cfg.Tools.ConfigPath != "" {
		file, err := LoadToolsConfig(cfg.Tools.ConfigPath)
		if err != nil {
			return nil, apperrors.NewConfigurationError("Invalid tools configuration", err.Error())
		}
		file.applyTo(cfg)
	}

	return cfg, nil
}

// toolsetToggles maps toolsets to the variables that disable them
var toolsetToggles = map[string]string{
	"wiki":     "GITLAB_DISABLE_WIKI",
	"releases": "GITLAB_DISABLE_RELEASES",
}

func (r *Resolver) resolveCredential() (Credential, error) {
	for _, source := range credentialSources {
		if secret := strings.TrimSpace(r.getEnv(source.env, "")); secret != "" {
			return Credential{Kind: source.kind, Secret: secret}, nil
		}
	}
	return Credential{}, apperrors.NewConfigurationError(
		"No GitLab credential configured",
		"set one of GITLAB_OAUTH_TOKEN, GITLAB_PERSONAL_ACCESS_TOKEN, GITLAB_TOKEN or GITLAB_SESSION_COOKIE",
	)
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	trimmed = strings.TrimSuffix(trimmed, "/api/v4")
	trimmed = strings.TrimRight(trimmed, "/")

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", apperrors.NewConfigurationError("Malformed GITLAB_API_URL", err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", apperrors.NewConfigurationError("Malformed GITLAB_API_URL",
			fmt.Sprintf("scheme must be http or https, got %q", u.Scheme))
	}
	if u.Host == "" {
		return "", apperrors.NewConfigurationError("Malformed GITLAB_API_URL", "missing host")
	}
	return trimmed, nil
}

func (r *Resolver) getEnv(key, defaultValue string) string {
	if value, ok := r.lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func (r *Resolver) getNonNegativeInt(key string, defaultValue int) (int, error) {
	raw := r.getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, apperrors.NewConfigurationError(fmt.Sprintf("Invalid %s", key),
			fmt.Sprintf("expected a non-negative integer, got %q", raw))
	}
	return n, nil
}

// getSeconds parses a (possibly fractional) number of seconds
func (r *Resolver) getSeconds(key string, defaultValue time.Duration, allowZero bool) (time.Duration, error) {
	raw := r.getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 || (!allowZero && f == 0) {
		return 0, apperrors.NewConfigurationError(fmt.Sprintf("Invalid %s", key),
			fmt.Sprintf("expected a positive number of seconds, got %q", raw))
	}
	return time.Duration(f * float64(time.Second)), nil
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// parseList parses a comma-separated list
func parseList(value string) []string {
	result := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

// HasDefaultProject returns true if GITLAB_PROJECT_ID is configured
func (c *Config) HasDefaultProject() bool {
	return c.GitLab.DefaultProjectID != ""
}

// AuthMode describes the active credential kind
func (c *Config) AuthMode() string {
	return string(c.GitLab.Credential.Kind)
}

// AccessMode returns a description of the current access mode
func (c *Config) AccessMode() string {
	if c.GitLab.ReadOnly {
		return "read-only"
	}
	return "read-write"
}

// ToolsetEnabled reports whether a toolset has not been disabled
func (c *Config) ToolsetEnabled(toolset string) bool {
	for _, disabled := range c.Tools.DisabledToolsets {
		if disabled == toolset {
			return false
		}
	}
	return true
}

// ToolEnabled reports whether a single tool has not been disabled
func (c *Config) ToolEnabled(tool string) bool {
	for _, disabled := range c.Tools.DisabledTools {
		if disabled == tool {
			return false
		}
	}
	return true
}

package gitlab

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/config"
)

// SessionCookieName is the cookie GitLab reads a browser session from
const SessionCookieName = "_gitlab_session"

// createHTTPClient creates a pooled HTTP client with the configured timeout,
// TLS settings and, for session cookie credentials, the cookie transport.
func createHTTPClient(cfg config.GitLabConfig) (*http.Client, error) {
	transport := cleanhttp.DefaultPooledTransport()

	tlsConfig := &tls.Config{}

	if cfg.InsecureTLS {
		tlsConfig.InsecureSkipVerify = true
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate from %s: %w", cfg.CACertPath, err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate from %s", cfg.CACertPath)
		}

		tlsConfig.RootCAs = caCertPool
	}

	transport.TLSClientConfig = tlsConfig

	var rt http.RoundTripper = transport
	if cfg.Credential.Kind == config.CredentialSessionCookie {
		rt = &sessionCookieTransport{cookie: cfg.Credential.Secret, next: transport}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
	}, nil
}

// sessionCookieTransport authenticates with a browser session cookie instead
// of a token header
type sessionCookieTransport struct {
	cookie string
	next   http.RoundTripper
}

func (t *sessionCookieTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Del("PRIVATE-TOKEN")
	clone.AddCookie(&http.Cookie{Name: SessionCookieName, Value: t.cookie})
	return t.next.RoundTrip(clone)
}

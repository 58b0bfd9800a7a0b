package gitlab

import (
	"sync"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/config"
)

// ConfigSource yields the resolved configuration
type ConfigSource interface {
	Resolve() (*config.Config, error)
}

// Factory lazily builds the shared Client on first use
type Factory struct {
	configs ConfigSource
	opts    []ClientOption

	once   sync.Once
	client *Client
	err    error
}

// NewFactory creates a client factory reading configuration from configs
func NewFactory(configs ConfigSource, opts ...ClientOption) *Factory {
	return &Factory{configs: configs, opts: opts}
}

// Client returns the shared client, building it on the first call. Later
// calls return the same handle, or the same construction error.
func (f *Factory) Client() (*Client, error) {
	f.once.Do(func() {
		cfg, err := f.configs.Resolve()
		if err != nil {
			f.err = err
			return
		}
		f.client, f.err = NewClient(cfg, f.opts...)
	})
	return f.client, f.err
}

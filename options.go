package ninox

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ninoxdb/ninox-go/transport"
)

// Defaults applied by Auth.
const (
	DefaultBaseURL = "https://api.ninoxdb.de"
	DefaultVersion = "1"
)

// MaxPageSize is requested as both page count and page size when listing
// records. Results beyond it are truncated by the backend.
const MaxPageSize = 9999

// Option configures a Client.
type Option func(*clientConfig)

// clientConfig holds client configuration.
type clientConfig struct {
	transport  transport.Transport
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger
}

// defaultConfig returns the default client configuration.
func defaultConfig() *clientConfig {
	return &clientConfig{
		timeout:   30 * time.Second,
		userAgent: transport.DefaultUserAgent,
	}
}

// WithTransport replaces the HTTP transport, e.g. with a mock in tests.
func WithTransport(t transport.Transport) Option {
	return func(c *clientConfig) {
		c.transport = t
	}
}

// WithHTTPClient sets a custom HTTP client for the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout of the default transport (default: 30s).
// Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header of the default transport.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// AuthOptions are the inputs to Auth.
type AuthOptions struct {
	URI      string // API base address (default: DefaultBaseURL)
	Version  string // API version (default: DefaultVersion)
	AuthKey  string // Bearer token, required
	Team     string // Team display name, required
	Database string // Database display name, required
}

// RequestOption configures a single record read.
type RequestOption func(*requestConfig)

// requestConfig holds per-request configuration.
type requestConfig struct {
	include []string
	exclude []string
}

// WithFields keeps only the named fields, dropping those with falsy values.
func WithFields(names ...string) RequestOption {
	return func(c *requestConfig) {
		c.include = append(c.include, names...)
	}
}

// WithoutFields drops the named fields. It is applied after WithFields.
func WithoutFields(names ...string) RequestOption {
	return func(c *requestConfig) {
		c.exclude = append(c.exclude, names...)
	}
}

func newRequestConfig(opts []RequestOption) *requestConfig {
	rc := &requestConfig{}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// project applies the configured projections to one record.
func (rc *requestConfig) project(r *Record) {
	if len(rc.include) > 0 {
		r.Fields = ProjectInclude(r.Fields, rc.include)
	}
	if len(rc.exclude) > 0 {
		r.Fields = ProjectExclude(r.Fields, rc.exclude)
	}
}

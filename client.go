package ninox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ninoxdb/ninox-go/transport"
)

// Client is a Ninox session.
//
// A Client starts unresolved; Auth resolves the team and database names and
// makes it ready. Record, query and file operations fail with
// ErrSessionNotReady until then. Reads of the resolved state are safe from
// multiple goroutines; callers must drain in-flight calls before calling
// Auth again if they need them to observe the new state.
type Client struct {
	config    *clientConfig
	transport transport.Transport
	logger    *slog.Logger
	state     atomic.Pointer[session]
}

// session is an immutable snapshot of resolution state.
type session struct {
	baseURL    string
	version    string
	authKey    string
	teamID     string
	databaseID string
	teams      []Team
	databases  []Database
}

func (s *session) ready() bool {
	return s != nil && s.teamID != "" && s.databaseID != ""
}

// New creates a new, unresolved client with the given options.
//
// Example:
//
//	client, err := ninox.New(ninox.WithTimeout(10 * time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = client.Auth(ctx, ninox.AuthOptions{
//	    AuthKey:  os.Getenv("NINOX_AUTH_KEY"),
//	    Team:     "Acme",
//	    Database: "CRM",
//	})
func New(opts ...Option) (*Client, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	t := config.transport
	if t == nil {
		httpOpts := []transport.HTTPOption{
			transport.WithUserAgent(config.userAgent),
		}
		if config.httpClient != nil {
			httpOpts = append(httpOpts, transport.WithHTTPClient(config.httpClient))
		} else {
			httpOpts = append(httpOpts, transport.WithTimeout(config.timeout))
		}
		t = transport.NewHTTP(httpOpts...)
	}

	logger := config.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		config:    config,
		transport: t,
		logger:    logger,
	}, nil
}

// MustNew creates a new client with the given options.
// Panics if the configuration is invalid.
func MustNew(opts ...Option) *Client {
	client, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// validateConfig validates the client configuration.
func validateConfig(config *clientConfig) error {
	if config.timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

// Ready reports whether Auth has completed successfully.
func (c *Client) Ready() bool {
	return c.state.Load().ready()
}

// TeamID returns the resolved team id, or "" before Auth.
func (c *Client) TeamID() string {
	if s := c.state.Load(); s.ready() {
		return s.teamID
	}
	return ""
}

// DatabaseID returns the resolved database id, or "" before Auth.
func (c *Client) DatabaseID() string {
	if s := c.state.Load(); s.ready() {
		return s.databaseID
	}
	return ""
}

// Teams returns the team list fetched by the most recent Auth.
func (c *Client) Teams() []Team {
	if s := c.state.Load(); s != nil {
		return append([]Team(nil), s.teams...)
	}
	return nil
}

// Databases returns the database list fetched by the most recent Auth.
func (c *Client) Databases() []Database {
	if s := c.state.Load(); s != nil {
		return append([]Database(nil), s.databases...)
	}
	return nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	return c.transport.Close()
}

// readySession returns the current snapshot or ErrSessionNotReady.
func (c *Client) readySession() (*session, error) {
	s := c.state.Load()
	if !s.ready() {
		return nil, ErrSessionNotReady
	}
	return s, nil
}

// do sends one authorized request. body may be nil, a []byte sent as is, or
// a value encoded as JSON.
func (c *Client) do(ctx context.Context, s *session, method, path, query string, body any) (*transport.Response, error) {
	var data []byte
	switch b := body.(type) {
	case nil:
	case []byte:
		data = b
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		data = encoded
	}

	req := &transport.Request{
		ID:     uuid.NewString(),
		Method: method,
		URL:    buildURL(s.baseURL, s.version, path, query),
		Header: http.Header{
			transport.HeaderAuthorization: []string{"Bearer " + s.authKey},
			transport.HeaderContentType:   []string{"application/json"},
		},
		Body: data,
	}

	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed",
			"request_id", req.ID,
			"method", method,
			"path", path,
			"error", err,
		)
		return nil, transportError(err)
	}

	c.logger.DebugContext(ctx, "request",
		"request_id", req.ID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}

// decodeBody unmarshals a successful response body into v.
func decodeBody(resp *transport.Response, v any) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return &Error{
			Code:       CodeTransport,
			Message:    "invalid response body",
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Err:        err,
		}
	}
	return nil
}

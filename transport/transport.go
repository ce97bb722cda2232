// Package transport provides the HTTP transports used by the Ninox client.
package transport

import (
	"context"
	"net/http"
)

// Transport defines the interface for request/response transports.
type Transport interface {
	// Name returns the transport name (e.g., "http", "mock").
	Name() string

	// Do sends a request and returns the response.
	// Non-2xx statuses are returned as a Response, not as an error.
	Do(ctx context.Context, req *Request) (*Response, error)

	// Close releases any resources held by the transport.
	Close() error
}

// Request represents a single API request.
type Request struct {
	ID     string      // Correlation id, sent as X-Request-Id
	Method string      // HTTP method
	URL    string      // Absolute URL including query string
	Header http.Header // Request headers
	Body   []byte      // Request body, nil for none
}

// Response represents a single API response.
// The whole body is held in memory.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess returns true for 2xx statuses.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Common header names.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-Id"
	HeaderUserAgent     = "User-Agent"
)

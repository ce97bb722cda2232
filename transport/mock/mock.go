package mock

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/ninoxdb/ninox-go/transport"
)

// Transport implements transport.Transport with configurable responses and
// call recording for tests. It never performs network I/O.
type Transport struct {
	mu sync.Mutex

	// responses maps "METHOD URL" keys to predefined responses.
	responses map[string]*Response

	// DefaultResponse is returned when no method/URL-specific response exists.
	DefaultResponse *Response

	// Calls records each request observed by the mock.
	Calls []Call
}

// Response describes a synthetic response used by the mock.
type Response struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int
	// Body is the raw payload returned to callers.
	Body []byte
	// Header holds headers to include in the response.
	Header http.Header
	// Error, when set, is returned instead of a response.
	Error error
}

// Call captures a single request issued through the mock.
type Call struct {
	ID     string
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Config controls construction of a Transport.
type Config struct {
	// DefaultResponse is used when no specific response has been configured.
	DefaultResponse *Response
}

// New creates a new mock transport. Without a DefaultResponse, unmatched
// requests get a 404 with an empty JSON object.
func New(config Config) *Transport {
	defaultResp := config.DefaultResponse
	if defaultResp == nil {
		defaultResp = &Response{
			StatusCode: http.StatusNotFound,
			Body:       []byte(`{}`),
		}
	}

	return &Transport{
		responses:       make(map[string]*Response),
		DefaultResponse: defaultResp,
		Calls:           []Call{},
	}
}

var _ transport.Transport = (*Transport)(nil)

func (m *Transport) Name() string { return "mock" }

func (m *Transport) Close() error { return nil }

// Do records the request and returns the configured response.
func (m *Transport) Do(_ context.Context, req *transport.Request) (*transport.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := Call{
		ID:     req.ID,
		Method: req.Method,
		URL:    req.URL,
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		call.Body = append([]byte(nil), req.Body...)
	}
	m.Calls = append(m.Calls, call)

	resp := m.responseFor(req.Method, req.URL)
	if resp.Error != nil {
		return nil, resp.Error
	}

	out := &transport.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       append([]byte(nil), resp.Body...),
	}
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	return out, nil
}

// responseFor matches the full URL first, then the URL without its query.
// Must be called with lock held.
func (m *Transport) responseFor(method, url string) *Response {
	if resp, ok := m.responses[method+" "+url]; ok {
		return resp
	}
	if i := strings.IndexByte(url, '?'); i >= 0 {
		if resp, ok := m.responses[method+" "+url[:i]]; ok {
			return resp
		}
	}
	return m.DefaultResponse
}

// CallCount returns the number of recorded calls.
func (m *Transport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Reset clears recorded calls. Configured responses are kept.
func (m *Transport) Reset() {
	m.mu.Lock()
	m.Calls = []Call{}
	m.mu.Unlock()
}

// On starts configuration of a response for a given method and URL.
func (m *Transport) On(method, url string) *ResponseBuilder {
	return &ResponseBuilder{
		mock: m,
		key:  method + " " + url,
	}
}

// ResponseBuilder configures the response for a single method/URL pair.
type ResponseBuilder struct {
	mock *Transport
	key  string
}

func (b *ResponseBuilder) set(resp *Response) *Transport {
	b.mock.mu.Lock()
	b.mock.responses[b.key] = resp
	b.mock.mu.Unlock()
	return b.mock
}

// Return sets a raw response body.
func (b *ResponseBuilder) Return(status int, body []byte) *Transport {
	return b.set(&Response{StatusCode: status, Body: body})
}

// ReturnJSON sets a response whose body is v encoded as JSON.
// Panics if v cannot be encoded.
func (b *ResponseBuilder) ReturnJSON(status int, v any) *Transport {
	data, err := json.Marshal(v)
	if err != nil {
		panic("mock: cannot encode response: " + err.Error())
	}
	return b.set(&Response{
		StatusCode: status,
		Body:       data,
		Header:     http.Header{transport.HeaderContentType: []string{"application/json"}},
	})
}

// ReturnError makes the transport fail without a response.
func (b *ResponseBuilder) ReturnError(err error) *Transport {
	return b.set(&Response{Error: err})
}

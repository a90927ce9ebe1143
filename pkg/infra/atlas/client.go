package atlas

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/interfaces"
)

// ErrTagAPI marks errors returned by the Atlas Command API itself, as opposed
// to transport or encoding failures.
var ErrTagAPI = goerr.NewTag("atlas_api")

const defaultTimeout = 10 * time.Second

// Client is an HTTP client for the Atlas Command REST API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ interfaces.AtlasClient = (*Client)(nil)

// Option is a functional option for Client configuration
type Option func(*Client)

// WithToken sets the bearer token attached to every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout overrides the default 10s request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithTransport injects a custom RoundTripper. Tests use this to stub the API.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new Atlas Command client for the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do issues a JSON request and decodes the response into out when provided.
// Empty 2xx bodies are accepted regardless of out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request body",
				goerr.V("method", method), goerr.V("path", path))
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reqBody)
	if err != nil {
		return goerr.Wrap(err, "failed to create request",
			goerr.V("method", method), goerr.V("path", path))
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	data, _, err := c.send(req)
	if err != nil {
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return goerr.Wrap(err, "failed to decode response body",
				goerr.V("method", method), goerr.V("path", path))
		}
	}
	return nil
}

// doMultipart issues a multipart/form-data POST. Only the Authorization
// header is set; the content type comes from the multipart writer.
func (c *Client) doMultipart(ctx context.Context, path string, build func(w *multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := build(mw); err != nil {
		return goerr.Wrap(err, "failed to build multipart body", goerr.V("path", path))
	}
	if err := mw.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize multipart body", goerr.V("path", path))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path, nil), &buf)
	if err != nil {
		return goerr.Wrap(err, "failed to create multipart request", goerr.V("path", path))
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuth(req)

	data, _, err := c.send(req)
	if err != nil {
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return goerr.Wrap(err, "failed to decode response body", goerr.V("path", path))
		}
	}
	return nil
}

// doRaw issues a GET and returns the raw body with content metadata.
// Length is -1 when the server did not report a usable Content-Length.
func (c *Client) doRaw(ctx context.Context, path string) (data []byte, contentType string, length int64, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path, nil), nil)
	if err != nil {
		return nil, "", -1, goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	c.setAuth(req)

	data, header, err := c.send(req)
	if err != nil {
		return nil, "", -1, err
	}

	length = int64(-1)
	if header.Get("Content-Length") != "" {
		if parsed, perr := parseContentLength(header.Get("Content-Length")); perr == nil {
			length = parsed
		}
	}
	return data, header.Get("Content-Type"), length, nil
}

func (c *Client) send(req *http.Request) ([]byte, http.Header, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "atlas request failed",
			goerr.V("method", req.Method), goerr.V("path", req.URL.Path))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to read response body",
			goerr.V("method", req.Method), goerr.V("path", req.URL.Path))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, goerr.New("atlas API returned an error status",
			goerr.T(ErrTagAPI),
			goerr.V("method", req.Method),
			goerr.V("path", req.URL.Path),
			goerr.V("status_code", resp.StatusCode),
			goerr.V("body", truncate(string(data), 512)),
		)
	}

	return data, resp.Header, nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// StatusCode extracts the HTTP status code from an API error. Returns 0 when
// the error did not come from an API response.
func StatusCode(err error) int {
	if goErr := goerr.Unwrap(err); goErr != nil {
		if code, ok := goErr.Values()["status_code"].(int); ok {
			return code
		}
	}
	return 0
}

func parseContentLength(s string) (int64, error) {
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, goerr.New("non-numeric content length", goerr.V("value", s))
		}
		n = n*10 + int64(r-'0')
	}
	return n, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

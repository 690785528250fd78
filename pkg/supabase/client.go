package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a Supabase project over its REST surface: GoTrue for
// authentication, PostgREST for table access and the storage API for objects.
// Construct one Client at startup and inject it; it is safe for concurrent use.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
	observer   RequestObserver
}

// RequestObserver is notified after every platform round trip. service is the
// platform plane ("auth", "rest" or "storage"); status is the HTTP status
// code, or "error" when the platform was unreachable.
type RequestObserver func(service, status string, duration time.Duration)

// NewClient creates a client for the given project URL. The timeout bounds
// every platform round trip.
func NewClient(baseURL, anonKey, serviceKey string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("supabase base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid supabase URL: %w", err)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SetObserver installs a round-trip observer. Call before the client is
// shared across goroutines.
func (c *Client) SetObserver(observer RequestObserver) {
	c.observer = observer
}

// serviceForPath maps a request path to its platform plane
func serviceForPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/auth/"):
		return "auth"
	case strings.HasPrefix(path, "/rest/"):
		return "rest"
	case strings.HasPrefix(path, "/storage/"):
		return "storage"
	}
	return "unknown"
}

// request describes one platform round trip
type request struct {
	method  string
	path    string
	query   url.Values
	headers map[string]string
	body    io.Reader

	// bearer overrides the default service-role authorization
	bearer string
	// apikey overrides the default service-role apikey header
	apikey string
}

// do performs the round trip and returns the raw response. Callers own
// closing the body. A non-nil error means the platform was unreachable or the
// request could not be built; HTTP-level failures are returned as responses.
func (c *Client) do(ctx context.Context, req request) (*http.Response, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, req.body)
	if err != nil {
		return nil, fmt.Errorf("building platform request: %w", err)
	}

	apikey := req.apikey
	if apikey == "" {
		apikey = c.serviceKey
	}
	bearer := req.bearer
	if bearer == "" {
		bearer = c.serviceKey
	}

	httpReq.Header.Set("apikey", apikey)
	httpReq.Header.Set("Authorization", "Bearer "+bearer)
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if c.observer != nil {
		status := "error"
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		c.observer(serviceForPath(req.path), status, time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("platform request failed: %w", err)
	}
	return resp, nil
}

// doJSON performs the round trip and decodes a 2xx response body into dest.
// Non-2xx responses are drained and returned as *APIError.
func (c *Client) doJSON(ctx context.Context, req request, dest interface{}) error {
	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}

	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding platform response: %w", err)
	}
	return nil
}

// jsonBody marshals v for use as a request body
func jsonBody(v interface{}) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

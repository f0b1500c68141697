package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blackwell-systems/shelflog/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// Options tune a Client. Zero values pick defaults.
type Options struct {
	Timeout time.Duration
	// RatePerSec caps outgoing requests. Zero or negative disables the cap.
	RatePerSec float64
	// HTTPClient replaces the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client is an authenticated reading-log API client.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a Client for baseURL using token as the bearer credential.
func New(token, baseURL string, opts Options) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	burst := 1
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
		burst = int(opts.RatePerSec)
		if burst < 1 {
			burst = 1
		}
	}

	return &Client{
		token:   token,
		baseURL: baseURL,
		http:    hc,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do executes req with the standard headers. It waits on the rate limiter
// first and logs the round trip under a fresh request id.
func (c *Client) do(ctx context.Context, req *http.Request, auth bool) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	ctx = logging.ContextWithID(ctx, id)
	defer logging.Track(ctx, req.Method+" "+req.URL.Path)()

	req = req.WithContext(ctx)
	req.Header.Set("X-Request-ID", id)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if req.Header.Get("Content-Type") == "" && req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logging.For(ctx).WithError(err).Debug("request failed")
		return nil, err
	}
	return resp, nil
}

// doJSON sends a request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, req, true)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
		}
	}
	return nil
}

// url builds an API URL from a path and optional query.
func (c *Client) url(path string, q url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}

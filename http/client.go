package http

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

	"github.com/fwojciec/sentimeter"
	"golang.org/x/time/rate"
)

// DefaultClientTimeout is the default per-call timeout for classification
// service requests.
const DefaultClientTimeout = 10 * time.Second

// maxResponseBytes caps how much of a service response is read.
const maxResponseBytes = 10 << 20

// Ensure Client implements sentimeter.Classifier at compile time.
var _ sentimeter.Classifier = (*Client)(nil)

// Client talks to the remote sentiment classification service.
// Every call is a single attempt; Client never retries.
type Client struct {
	baseURL *url.URL
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientTimeout sets the per-call timeout.
// Defaults to DefaultClientTimeout (10s) if not specified.
// Ignored when WithHTTPClient is used.
func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimit paces outgoing requests to at most rps per second.
// Pacing delays a request; it never repeats one.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, sentimeter.Errorf(sentimeter.EINVALID, "invalid service URL %q", baseURL)
	}

	c := &Client{
		baseURL: u,
		timeout: DefaultClientTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c, nil
}

// Health probes GET /health. Any 2xx status means the service is reachable.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return sentimeter.WrapErrorf(err, sentimeter.EUNAVAILABLE,
			"classification service not reachable at %s; make sure the API is running", c.baseURL)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if !isSuccess(resp.StatusCode) {
		return sentimeter.Errorf(sentimeter.EUNAVAILABLE,
			"classification service at %s is not healthy (HTTP %d)", c.baseURL, resp.StatusCode)
	}
	return nil
}

// ClassifyBatch submits items in one POST /predict_batch request and returns
// results index-aligned with items.
func (c *Client) ClassifyBatch(ctx context.Context, items []string) (*sentimeter.AnalysisResult, error) {
	if len(items) == 0 {
		return nil, sentimeter.Errorf(sentimeter.EINVALID, "no items to classify")
	}

	body, err := json.Marshal(batchRequest{Comments: items})
	if err != nil {
		return nil, fmt.Errorf("encoding batch request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/predict_batch", body)
	if err != nil {
		return nil, sentimeter.WrapErrorf(err, sentimeter.EUNREACHABLE, "classification service unreachable: %v", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, sentimeter.TransportErrorf(resp.StatusCode, "classification service error: HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, sentimeter.WrapErrorf(err, sentimeter.EUNREACHABLE, "reading classification response: %v", err)
	}

	result, err := decodeBatchResponse(raw, items)
	if err != nil {
		return nil, sentimeter.WrapErrorf(err, sentimeter.EMALFORMED,
			"classification service returned a malformed response: %s", sentimeter.ErrorMessage(err))
	}
	return result, nil
}

// do sends one request relative to the base URL.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.client.Do(req)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

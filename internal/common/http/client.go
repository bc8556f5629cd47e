// internal/common/http/client.go
package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// BrowserUserAgent is sent to providers that reject non-browser clients.
const BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

// Options configures an outbound client for a single provider.
type Options struct {
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	Headers       map[string]string
}

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// BrowserTransport stamps identity headers on every request that does not
// already carry them.
type BrowserTransport struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

func (t *BrowserTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	base := t.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

func NewClient(timeout time.Duration) *Client {
	return NewClientWithOptions(Options{Timeout: timeout})
}

func NewClientWithOptions(opts Options) *Client {
	headers := map[string]string{"User-Agent": BrowserUserAgent}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: &BrowserTransport{Transport: http.DefaultTransport, Headers: headers},
		},
	}
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}
	return c
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.Do(req.WithContext(ctx))
}

// IsTimeout reports whether err came from a deadline or client timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline") ||
		strings.Contains(msg, "Client.Timeout")
}

// Package http provides net/http implementations of folio's fetching
// interfaces: a static page fetcher, an image downloader, and sitemap
// discovery. None of them execute JavaScript.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/folioworks/folio"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies requests as a desktop browser. Some
	// site builders serve a stripped page to unknown clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// DefaultMaxSize caps a single downloaded asset.
	DefaultMaxSize = 50 << 20
)

type options struct {
	timeout   time.Duration
	userAgent string
	maxSize   int64
}

func newOptions(opts []Option) options {
	o := options{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		maxSize:   DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures the HTTP clients in this package.
type Option func(*options)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithMaxSize caps the size of a downloaded asset in bytes.
// Only the Downloader uses it.
func WithMaxSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// userAgentTransport sets the User-Agent header on outgoing requests.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

func newClient(o options) *http.Client {
	return &http.Client{
		Timeout: o.timeout,
		Transport: &userAgentTransport{
			base:      http.DefaultTransport,
			userAgent: o.userAgent,
		},
	}
}

// get issues a GET with the given Accept header and returns the response
// when the server answered 200. Missing resources map to folio.ENOTFOUND so
// callers do not retry them; the caller closes the body.
func get(ctx context.Context, client *http.Client, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, folio.Errorf(folio.EINVALID, "bad URL %q: %v", url, err)
	}
	req.Header.Set("Accept", accept)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusNotFound, http.StatusGone:
		resp.Body.Close()
		return nil, folio.Errorf(folio.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
}

// Package rod provides a headless Chrome implementation of folio.Fetcher
// for site builders that assemble their galleries in JavaScript.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/folioworks/folio"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// scrollScript scrolls to the bottom so lazy-loaded images swap their
// placeholders for real sources.
const scrollScript = `() => window.scrollTo(0, document.body ? document.body.scrollHeight : 0)`

// Ensure Fetcher implements folio.Fetcher at compile time.
var _ folio.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser      *Browser
	fetchTimeout time.Duration
	maxPages     int
	renderDelay  atomic.Int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithRenderDelay sets the initial wait after load, see SetRenderDelay.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay.Store(int64(d))
	}
}

// WithMaxPages sets how many pages the browser renders before it is replaced.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		maxPages:     DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	browser, err := NewBrowser(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.browser = browser
	return f, nil
}

// SetRenderDelay sets how long Fetch waits after the load event before
// reading the DOM. Builders such as Wix hydrate galleries after load.
func (f *Fetcher) SetRenderDelay(d time.Duration) {
	f.renderDelay.Store(int64(d))
}

// Fetch navigates to the URL, scrolls to trigger lazy loading, waits for
// the render delay and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.browser.Acquire()
	if browser == nil {
		return "", folio.Errorf(folio.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", contextError(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextError(ctx, err)
	}
	if _, err := page.Eval(scrollScript); err != nil {
		return "", contextError(ctx, err)
	}

	if delay := time.Duration(f.renderDelay.Load()); delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", contextError(ctx, err)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}

// contextError prefers the context's error so callers can match
// context.DeadlineExceeded regardless of how rod wrapped it.
func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

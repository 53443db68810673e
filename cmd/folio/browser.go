package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/rod"
)

var _ folio.Fetcher = (*browser)(nil)

// browser is a rod.Fetcher that launches Chrome on the first Fetch, so
// commands that end up fetching over plain HTTP never start a browser.
type browser struct {
	timeout time.Duration

	// launch starts the fetcher. Defaults to rod.NewFetcher.
	launch func(opts ...rod.Option) (folio.Fetcher, error)

	mu      sync.Mutex
	fetcher folio.Fetcher
	err     error
	delay   time.Duration
}

func newBrowser(timeout time.Duration) *browser {
	return &browser{
		timeout: timeout,
		launch: func(opts ...rod.Option) (folio.Fetcher, error) {
			return rod.NewFetcher(opts...)
		},
	}
}

// SetRenderDelay applies to the running browser, or to the one launched later.
func (b *browser) SetRenderDelay(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.delay = d
	if c, ok := b.fetcher.(RenderDelayConfigurer); ok {
		c.SetRenderDelay(d)
	}
}

func (b *browser) Fetch(ctx context.Context, url string) (string, error) {
	f, err := b.start()
	if err != nil {
		return "", err
	}
	return f.Fetch(ctx, url)
}

func (b *browser) start() (folio.Fetcher, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fetcher != nil || b.err != nil {
		return b.fetcher, b.err
	}
	f, err := b.launch(rod.WithFetchTimeout(b.timeout), rod.WithRenderDelay(b.delay))
	if err != nil {
		b.err = fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		return nil, b.err
	}
	b.fetcher = f
	return f, nil
}

// Close stops the browser if it was started.
func (b *browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fetcher == nil {
		return nil
	}
	err := b.fetcher.Close()
	b.fetcher = nil
	return err
}

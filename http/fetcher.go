package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/folioworks/folio"
)

// maxPageSize caps the HTML read for one page.
const maxPageSize = 10 << 20

var _ folio.Fetcher = (*Fetcher)(nil)

// Fetcher downloads page HTML as the server sent it. Pages of builders that
// render in the browser come back mostly empty; use rod.Fetcher for those.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	return &Fetcher{client: newClient(newOptions(opts))}
}

// Fetch returns the body of url. Pages larger than 10 MiB are truncated.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := get(ctx, f.client, url, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}

// Close implements folio.Fetcher. There is nothing to release.
func (f *Fetcher) Close() error {
	return nil
}
